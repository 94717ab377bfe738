package resilience

import (
	"context"
	"time"

	"github.com/SscSPs/mda_posting_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/mda_posting_engine/internal/core/ports/repositories"
)

// WrapRepositories decorates every repository in the provider with the policy,
// keeping retry concerns out of the services.
func WrapRepositories(repos portsrepo.RepositoryProvider, p Policy) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		PeriodRepo:  &periodRepository{inner: repos.PeriodRepo, policy: p},
		JournalRepo: &journalRepository{inner: repos.JournalRepo, policy: p},
		ConfigRepo:  &configRepository{inner: repos.ConfigRepo, policy: p},
		POSRepo:     &posRepository{inner: repos.POSRepo, policy: p},
		AuditRepo:   &auditRepository{inner: repos.AuditRepo, policy: p},
	}
}

type periodRepository struct {
	inner  portsrepo.PeriodRepositoryFacade
	policy Policy
}

var _ portsrepo.PeriodRepositoryFacade = (*periodRepository)(nil)

func (r *periodRepository) FindPeriod(ctx context.Context, organizationID, periodCode string) (*domain.FiscalPeriod, error) {
	return Do(ctx, r.policy, "periods.find", func(ctx context.Context) (*domain.FiscalPeriod, error) {
		return r.inner.FindPeriod(ctx, organizationID, periodCode)
	})
}

type ensureResult struct {
	period  *domain.FiscalPeriod
	created bool
}

func (r *periodRepository) EnsurePeriod(ctx context.Context, period domain.FiscalPeriod) (*domain.FiscalPeriod, bool, error) {
	res, err := Do(ctx, r.policy, "periods.ensure", func(ctx context.Context) (ensureResult, error) {
		p, created, err := r.inner.EnsurePeriod(ctx, period)
		return ensureResult{period: p, created: created}, err
	})
	return res.period, res.created, err
}

func (r *periodRepository) UpdatePeriodStatus(ctx context.Context, organizationID, periodCode string, status domain.PeriodStatus, expectedVersion int, actor string, at time.Time) (*domain.FiscalPeriod, error) {
	return Do(ctx, r.policy, "periods.update_status", func(ctx context.Context) (*domain.FiscalPeriod, error) {
		return r.inner.UpdatePeriodStatus(ctx, organizationID, periodCode, status, expectedVersion, actor, at)
	})
}

type journalRepository struct {
	inner  portsrepo.JournalRepositoryFacade
	policy Policy
}

var _ portsrepo.JournalRepositoryFacade = (*journalRepository)(nil)

func (r *journalRepository) FindTransactionByID(ctx context.Context, organizationID, transactionID string) (*domain.PostedTransaction, error) {
	return Do(ctx, r.policy, "journals.find", func(ctx context.Context) (*domain.PostedTransaction, error) {
		return r.inner.FindTransactionByID(ctx, organizationID, transactionID)
	})
}

func (r *journalRepository) FindTransactionByIdempotencyKey(ctx context.Context, organizationID, key string) (*domain.PostedTransaction, error) {
	return Do(ctx, r.policy, "journals.find_by_idempotency_key", func(ctx context.Context) (*domain.PostedTransaction, error) {
		return r.inner.FindTransactionByIdempotencyKey(ctx, organizationID, key)
	})
}

type transactionPage struct {
	items []domain.PostedTransaction
	next  *string
}

func (r *journalRepository) ListTransactions(ctx context.Context, organizationID string, limit int, nextToken *string) ([]domain.PostedTransaction, *string, error) {
	page, err := Do(ctx, r.policy, "journals.list", func(ctx context.Context) (transactionPage, error) {
		items, next, err := r.inner.ListTransactions(ctx, organizationID, limit, nextToken)
		return transactionPage{items: items, next: next}, err
	})
	return page.items, page.next, err
}

// SaveTransaction is safe to retry: a commit whose acknowledgement was lost
// resurfaces as apperrors.ErrDuplicate on the idempotency key.
func (r *journalRepository) SaveTransaction(ctx context.Context, event domain.FinanceEvent, txn domain.PostedTransaction) error {
	return DoErr(ctx, r.policy, "journals.save", func(ctx context.Context) error {
		return r.inner.SaveTransaction(ctx, event, txn)
	})
}

type configRepository struct {
	inner  portsrepo.ConfigRepositoryFacade
	policy Policy
}

var _ portsrepo.ConfigRepositoryFacade = (*configRepository)(nil)

func (r *configRepository) ListPostingRules(ctx context.Context, organizationID string) ([]domain.PostingRule, error) {
	return Do(ctx, r.policy, "config.posting_rules", func(ctx context.Context) ([]domain.PostingRule, error) {
		return r.inner.ListPostingRules(ctx, organizationID)
	})
}

func (r *configRepository) ListChartAccounts(ctx context.Context, organizationID string) ([]domain.ChartAccount, error) {
	return Do(ctx, r.policy, "config.chart_of_accounts", func(ctx context.Context) ([]domain.ChartAccount, error) {
		return r.inner.ListChartAccounts(ctx, organizationID)
	})
}

func (r *configRepository) ListTaxRates(ctx context.Context, jurisdiction string) ([]domain.TaxRate, error) {
	return Do(ctx, r.policy, "config.tax_rates", func(ctx context.Context) ([]domain.TaxRate, error) {
		return r.inner.ListTaxRates(ctx, jurisdiction)
	})
}

func (r *configRepository) FindOrgSettings(ctx context.Context, organizationID string) (*domain.OrgSettings, error) {
	return Do(ctx, r.policy, "config.org_settings", func(ctx context.Context) (*domain.OrgSettings, error) {
		return r.inner.FindOrgSettings(ctx, organizationID)
	})
}

type posRepository struct {
	inner  portsrepo.POSSummaryRepositoryFacade
	policy Policy
}

var _ portsrepo.POSSummaryRepositoryFacade = (*posRepository)(nil)

func (r *posRepository) FindSummaryResult(ctx context.Context, organizationID string, businessDate time.Time) (*domain.POSResult, error) {
	return Do(ctx, r.policy, "pos.find_summary", func(ctx context.Context) (*domain.POSResult, error) {
		return r.inner.FindSummaryResult(ctx, organizationID, businessDate)
	})
}

func (r *posRepository) SaveSummaryWithJournals(ctx context.Context, summary domain.POSDailySummary, result domain.POSResult, events []domain.FinanceEvent) error {
	return DoErr(ctx, r.policy, "pos.save_summary", func(ctx context.Context) error {
		return r.inner.SaveSummaryWithJournals(ctx, summary, result, events)
	})
}

type auditRepository struct {
	inner  portsrepo.AuditWriter
	policy Policy
}

var _ portsrepo.AuditWriter = (*auditRepository)(nil)

func (r *auditRepository) SaveAuditEntries(ctx context.Context, entries []domain.AuditEntry) error {
	return DoErr(ctx, r.policy, "audit.save", func(ctx context.Context) error {
		return r.inner.SaveAuditEntries(ctx, entries)
	})
}
