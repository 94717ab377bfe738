package services

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/mda_posting_engine/internal/apperrors"
	"github.com/SscSPs/mda_posting_engine/internal/core/domain"
	"golang.org/x/crypto/blake2b"
)

// Resolve picks the posting rule for code from one snapshot: the organization override,
// else the domain default, else MissingPostingConfiguration. It never guesses.
func Resolve(snapshot *domain.ConfigSnapshot, code domain.SmartCode) (domain.PostingRule, error) {
	key, err := domain.ParseSmartCode(code)
	if err != nil {
		return domain.PostingRule{}, apperrors.NewFieldError("smart_code", err.Error())
	}
	if rule, ok := snapshot.Overrides[key]; ok {
		return rule, nil
	}
	if rule, ok := snapshot.Defaults[key]; ok {
		return rule, nil
	}
	return domain.PostingRule{}, apperrors.NewEngineError(apperrors.CodeMissingPostingConfiguration,
		fmt.Sprintf("no posting rule for %s in organization %s", code, snapshot.OrganizationID))
}

// ResolveAccounts maps every role a rule references to its chart-of-accounts entry.
func ResolveAccounts(snapshot *domain.ConfigSnapshot, rule domain.PostingRule) (map[domain.AccountRole]domain.ChartAccount, error) {
	accounts := make(map[domain.AccountRole]domain.ChartAccount, len(rule.Entries))
	for _, role := range rule.Roles() {
		acc, ok := snapshot.Accounts[role]
		if !ok || acc.AccountCode == "" {
			err := apperrors.NewEngineError(apperrors.CodeMissingAccountMapping,
				fmt.Sprintf("account role %q is not mapped for organization %s", role, snapshot.OrganizationID))
			err.Field = string(role)
			return nil, err
		}
		accounts[role] = acc
	}
	return accounts, nil
}

// NewConfigSnapshot indexes raw reference data into an immutable snapshot.
// Its version is a content hash, so identical configuration yields identical versions.
func NewConfigSnapshot(settings domain.OrgSettings, rules []domain.PostingRule, accounts []domain.ChartAccount, rates []domain.TaxRate, loadedAt time.Time) (*domain.ConfigSnapshot, error) {
	snap := &domain.ConfigSnapshot{
		OrganizationID: settings.OrganizationID,
		Settings:       settings,
		Overrides:      make(map[domain.CategoryKey]domain.PostingRule),
		Defaults:       make(map[domain.CategoryKey]domain.PostingRule),
		Tax:            domain.NewTaxTable(settings.Jurisdiction, rates),
		Accounts:       make(map[domain.AccountRole]domain.ChartAccount, len(accounts)),
		LoadedAt:       loadedAt,
	}

	for _, rule := range rules {
		key, err := domain.ParseSmartCode(rule.SmartCode)
		if err != nil {
			return nil, apperrors.WrapEngineError(apperrors.CodeMissingPostingConfiguration, "stored posting rule is malformed", err)
		}
		rule.Key = key
		target := snap.Defaults
		if !rule.IsDefault() {
			if rule.OrganizationID != settings.OrganizationID {
				continue
			}
			target = snap.Overrides
		}
		if existing, ok := target[key]; ok && existing.Version >= rule.Version {
			continue
		}
		target[key] = rule
	}
	for _, acc := range accounts {
		snap.Accounts[acc.Role] = acc
	}

	version, err := snapshotVersion(settings, rules, accounts, rates)
	if err != nil {
		return nil, err
	}
	snap.Version = version
	return snap, nil
}

func snapshotVersion(settings domain.OrgSettings, rules []domain.PostingRule, accounts []domain.ChartAccount, rates []domain.TaxRate) (string, error) {
	sortedRules := append([]domain.PostingRule(nil), rules...)
	sort.Slice(sortedRules, func(i, j int) bool {
		if sortedRules[i].SmartCode != sortedRules[j].SmartCode {
			return sortedRules[i].SmartCode < sortedRules[j].SmartCode
		}
		if sortedRules[i].OrganizationID != sortedRules[j].OrganizationID {
			return sortedRules[i].OrganizationID < sortedRules[j].OrganizationID
		}
		return sortedRules[i].Version < sortedRules[j].Version
	})
	sortedAccounts := append([]domain.ChartAccount(nil), accounts...)
	sort.Slice(sortedAccounts, func(i, j int) bool { return sortedAccounts[i].Role < sortedAccounts[j].Role })
	sortedRates := append([]domain.TaxRate(nil), rates...)
	sort.Slice(sortedRates, func(i, j int) bool { return sortedRates[i].Category < sortedRates[j].Category })

	raw, err := json.Marshal(struct {
		Settings domain.OrgSettings    `json:"settings"`
		Rules    []domain.PostingRule  `json:"rules"`
		Accounts []domain.ChartAccount `json:"accounts"`
		Rates    []domain.TaxRate      `json:"rates"`
	}{settings, sortedRules, sortedAccounts, sortedRates})
	if err != nil {
		return "", fmt.Errorf("failed to hash config snapshot: %w", err)
	}
	sum := blake2b.Sum256(raw)
	return hex.EncodeToString(sum[:8]), nil
}
