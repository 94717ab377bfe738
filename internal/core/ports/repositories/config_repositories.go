package repositories

import (
	"context"

	"github.com/SscSPs/mda_posting_engine/internal/core/domain"
)

// PostingRuleReader reads posting templates. Results include domain defaults (no organization)
// and the organization's own overrides.
type PostingRuleReader interface {
	ListPostingRules(ctx context.Context, organizationID string) ([]domain.PostingRule, error)
}

// ChartOfAccountsReader reads the role-to-account mapping of an organization.
type ChartOfAccountsReader interface {
	ListChartAccounts(ctx context.Context, organizationID string) ([]domain.ChartAccount, error)
}

// TaxRateReader reads a jurisdiction's VAT rate table.
type TaxRateReader interface {
	ListTaxRates(ctx context.Context, jurisdiction string) ([]domain.TaxRate, error)
}

// OrgSettingsReader reads per-organization settings; apperrors.ErrNotFound if the org is unknown.
type OrgSettingsReader interface {
	FindOrgSettings(ctx context.Context, organizationID string) (*domain.OrgSettings, error)
}

// ConfigRepositoryFacade combines the reference-data readers used to build a config snapshot.
type ConfigRepositoryFacade interface {
	PostingRuleReader
	ChartOfAccountsReader
	TaxRateReader
	OrgSettingsReader
}
