package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/mda_posting_engine/internal/apperrors"
	"github.com/SscSPs/mda_posting_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/mda_posting_engine/internal/core/ports/repositories"
	"github.com/SscSPs/mda_posting_engine/internal/models"
	"github.com/SscSPs/mda_posting_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxConfigRepository reads posting rules, the chart of accounts, tax rates and organization settings.
type PgxConfigRepository struct {
	BaseRepository
}

func newPgxConfigRepository(pool *pgxpool.Pool) portsrepo.ConfigRepositoryFacade {
	return &PgxConfigRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ConfigRepositoryFacade = (*PgxConfigRepository)(nil)

// ListPostingRules returns the domain defaults plus the organization's overrides.
func (r *PgxConfigRepository) ListPostingRules(ctx context.Context, organizationID string) ([]domain.PostingRule, error) {
	query := `
		SELECT rule_id, organization_id, smart_code, entries, tax_applicable, default_tax_inclusive, version
		FROM posting_rules
		WHERE organization_id IS NULL OR organization_id = $1
		ORDER BY smart_code, version;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query posting rules", err)
	}
	defer rows.Close()

	rules := []domain.PostingRule{}
	for rows.Next() {
		var m models.PostingRule
		if err := rows.Scan(
			&m.RuleID,
			&m.OrganizationID,
			&m.SmartCode,
			&m.Entries,
			&m.TaxApplicable,
			&m.DefaultTaxInclusive,
			&m.Version,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan posting rule", err)
		}
		rule, err := mapping.ToDomainPostingRule(m)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to decode posting rule", err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating posting rule rows", err)
	}
	return rules, nil
}

// ListChartAccounts returns the role-to-account bindings of an organization.
func (r *PgxConfigRepository) ListChartAccounts(ctx context.Context, organizationID string) ([]domain.ChartAccount, error) {
	query := `
		SELECT organization_id, role, account_code, account_name, account_type
		FROM chart_accounts
		WHERE organization_id = $1
		ORDER BY account_code;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query chart of accounts", err)
	}
	defer rows.Close()

	accounts := []domain.ChartAccount{}
	for rows.Next() {
		var m models.ChartAccount
		if err := rows.Scan(&m.OrganizationID, &m.Role, &m.AccountCode, &m.AccountName, &m.AccountType); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan chart account", err)
		}
		accounts = append(accounts, mapping.ToDomainChartAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating chart account rows", err)
	}
	return accounts, nil
}

// ListTaxRates returns every rate row of a jurisdiction.
func (r *PgxConfigRepository) ListTaxRates(ctx context.Context, jurisdiction string) ([]domain.TaxRate, error) {
	query := `SELECT jurisdiction, category, rate, scheme FROM tax_rates WHERE jurisdiction = $1;`
	rows, err := r.Pool.Query(ctx, query, jurisdiction)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query tax rates for "+jurisdiction, err)
	}
	defer rows.Close()

	rates := []domain.TaxRate{}
	for rows.Next() {
		var m models.TaxRate
		if err := rows.Scan(&m.Jurisdiction, &m.Category, &m.Rate, &m.Scheme); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan tax rate", err)
		}
		rates = append(rates, mapping.ToDomainTaxRate(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating tax rate rows", err)
	}
	return rates, nil
}

// FindOrgSettings retrieves an organization's jurisdiction and base currency.
func (r *PgxConfigRepository) FindOrgSettings(ctx context.Context, organizationID string) (*domain.OrgSettings, error) {
	query := `SELECT organization_id, jurisdiction, base_currency FROM organizations WHERE organization_id = $1;`
	var m models.Organization
	err := r.Pool.QueryRow(ctx, query, organizationID).Scan(&m.OrganizationID, &m.Jurisdiction, &m.BaseCurrency)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find organization "+organizationID, err)
	}
	settings := mapping.ToDomainOrgSettings(m)
	return &settings, nil
}
