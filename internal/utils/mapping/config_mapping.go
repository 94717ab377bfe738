package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/mda_posting_engine/internal/core/domain"
	"github.com/SscSPs/mda_posting_engine/internal/models"
)

// ToDomainPostingRule decodes a stored rule and its JSONB template entries.
func ToDomainPostingRule(m models.PostingRule) (domain.PostingRule, error) {
	d := domain.PostingRule{
		RuleID:              m.RuleID,
		SmartCode:           domain.SmartCode(m.SmartCode),
		TaxApplicable:       m.TaxApplicable,
		DefaultTaxInclusive: m.DefaultTaxInclusive,
		Version:             m.Version,
	}
	if m.OrganizationID != nil {
		d.OrganizationID = *m.OrganizationID
	}
	if err := json.Unmarshal(m.Entries, &d.Entries); err != nil {
		return domain.PostingRule{}, fmt.Errorf("decode entries of rule %s: %w", m.RuleID, err)
	}
	return d, nil
}

// ToModelPostingRule encodes a rule for storage.
func ToModelPostingRule(d domain.PostingRule) (models.PostingRule, error) {
	entries, err := json.Marshal(d.Entries)
	if err != nil {
		return models.PostingRule{}, fmt.Errorf("encode entries of rule %s: %w", d.RuleID, err)
	}
	m := models.PostingRule{
		RuleID:              d.RuleID,
		SmartCode:           string(d.SmartCode),
		Entries:             entries,
		TaxApplicable:       d.TaxApplicable,
		DefaultTaxInclusive: d.DefaultTaxInclusive,
		Version:             d.Version,
	}
	if !d.IsDefault() {
		org := d.OrganizationID
		m.OrganizationID = &org
	}
	return m, nil
}

// ToDomainChartAccount converts a model ChartAccount to a domain ChartAccount
func ToDomainChartAccount(m models.ChartAccount) domain.ChartAccount {
	return domain.ChartAccount{
		OrganizationID: m.OrganizationID,
		Role:           domain.AccountRole(m.Role),
		AccountCode:    m.AccountCode,
		AccountName:    m.AccountName,
		AccountType:    domain.AccountType(m.AccountType),
	}
}

// ToDomainTaxRate converts a model TaxRate to a domain TaxRate
func ToDomainTaxRate(m models.TaxRate) domain.TaxRate {
	return domain.TaxRate{
		Jurisdiction: m.Jurisdiction,
		Category:     m.Category,
		Rate:         m.Rate,
		Scheme:       domain.TaxScheme(m.Scheme),
	}
}

// ToDomainOrgSettings converts a model Organization to domain OrgSettings
func ToDomainOrgSettings(m models.Organization) domain.OrgSettings {
	return domain.OrgSettings{
		OrganizationID: m.OrganizationID,
		Jurisdiction:   m.Jurisdiction,
		BaseCurrency:   m.BaseCurrency,
	}
}
