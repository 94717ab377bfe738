package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/SscSPs/mda_posting_engine/internal/apperrors"
	"github.com/SscSPs/mda_posting_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/mda_posting_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mda_posting_engine/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

const testOrgID = "6f1c2b9e-8a4d-4c1e-9b7a-2d3e4f5a6b7c"

var fixedNow = time.Date(2025, time.October, 15, 9, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func entry(role domain.AccountRole, side domain.Side, basis domain.AmountBasis) domain.RoleTemplate {
	return domain.RoleTemplate{Role: role, Side: side, Basis: basis}
}

func componentEntry(role domain.AccountRole, component string) domain.RoleTemplate {
	return domain.RoleTemplate{Role: role, Side: domain.Debit, Basis: domain.BasisComponent, Component: component}
}

// defaultRules mirrors the seeded domain defaults.
func defaultRules() []domain.PostingRule {
	expense := func(code domain.SmartCode, role domain.AccountRole, taxed bool) domain.PostingRule {
		if !taxed {
			return domain.PostingRule{SmartCode: code, Version: 1, Entries: []domain.RoleTemplate{
				entry(role, domain.Debit, domain.BasisGross),
				entry(domain.RoleBank, domain.Credit, domain.BasisGross),
			}}
		}
		return domain.PostingRule{SmartCode: code, Version: 1, TaxApplicable: true, DefaultTaxInclusive: true, Entries: []domain.RoleTemplate{
			entry(role, domain.Debit, domain.BasisNet),
			entry(domain.RoleVATRecoverable, domain.Debit, domain.BasisTax),
			entry(domain.RoleBank, domain.Credit, domain.BasisGross),
		}}
	}
	revenue := func(code domain.SmartCode, role domain.AccountRole) domain.PostingRule {
		return domain.PostingRule{SmartCode: code, Version: 1, TaxApplicable: true, DefaultTaxInclusive: true, Entries: []domain.RoleTemplate{
			entry(domain.RoleCash, domain.Debit, domain.BasisGross),
			entry(role, domain.Credit, domain.BasisNet),
			entry(domain.RoleVATPayable, domain.Credit, domain.BasisTax),
		}}
	}
	return []domain.PostingRule{
		expense(domain.SmartCodeSalaryExpense, domain.RoleSalaryExpense, false),
		expense(domain.SmartCodeRentExpense, domain.RoleRentExpense, true),
		expense(domain.SmartCodeUtilitiesExpense, domain.RoleUtilitiesExpense, true),
		expense(domain.SmartCodeSuppliesExpense, domain.RoleSuppliesExpense, true),
		expense(domain.SmartCodeMarketingExpense, domain.RoleMarketingExpense, true),
		expense(domain.SmartCodeInventoryPurchase, domain.RoleInventory, true),
		expense(domain.SmartCodeBankFee, domain.RoleBankCharges, false),
		revenue(domain.SmartCodeServiceRevenue, domain.RoleServiceRevenue),
		revenue(domain.SmartCodeProductRevenue, domain.RoleProductRevenue),
		{SmartCode: domain.SmartCodePOSSales, Version: 1, TaxApplicable: true, DefaultTaxInclusive: true, Entries: []domain.RoleTemplate{
			componentEntry(domain.RoleCash, domain.ComponentCash),
			componentEntry(domain.RoleCardClearing, domain.ComponentCard),
			componentEntry(domain.RoleOtherTenders, domain.ComponentOther),
			entry(domain.RoleSalesRevenue, domain.Credit, domain.BasisNet),
			entry(domain.RoleVATPayable, domain.Credit, domain.BasisTax),
		}},
		{SmartCode: domain.SmartCodePOSCommission, Version: 1, Entries: []domain.RoleTemplate{
			entry(domain.RoleCommissionExpense, domain.Debit, domain.BasisGross),
			entry(domain.RoleCommissionsPayable, domain.Credit, domain.BasisGross),
		}},
	}
}

func defaultAccounts() []domain.ChartAccount {
	rows := []struct {
		role domain.AccountRole
		code string
		name string
		typ  domain.AccountType
	}{
		{domain.RoleCash, "1000", "Cash on Hand", domain.Asset},
		{domain.RoleBank, "1010", "Bank", domain.Asset},
		{domain.RoleCardClearing, "1020", "Card Clearing", domain.Asset},
		{domain.RoleOtherTenders, "1030", "Other Tenders", domain.Asset},
		{domain.RoleVATRecoverable, "1400", "VAT Recoverable", domain.Asset},
		{domain.RoleInventory, "1500", "Inventory", domain.Asset},
		{domain.RoleVATPayable, "2100", "VAT Payable", domain.Liability},
		{domain.RoleCommissionsPayable, "2200", "Commissions Payable", domain.Liability},
		{domain.RoleServiceRevenue, "4000", "Service Revenue", domain.Revenue},
		{domain.RoleProductRevenue, "4100", "Product Revenue", domain.Revenue},
		{domain.RoleSalesRevenue, "4200", "Sales Revenue", domain.Revenue},
		{domain.RoleSalaryExpense, "5000", "Salaries", domain.Expense},
		{domain.RoleRentExpense, "5100", "Rent", domain.Expense},
		{domain.RoleUtilitiesExpense, "5200", "Utilities", domain.Expense},
		{domain.RoleSuppliesExpense, "5300", "Supplies", domain.Expense},
		{domain.RoleMarketingExpense, "5400", "Marketing", domain.Expense},
		{domain.RoleBankCharges, "5500", "Bank Charges", domain.Expense},
		{domain.RoleCommissionExpense, "5600", "Commission Expense", domain.Expense},
	}
	out := make([]domain.ChartAccount, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.ChartAccount{OrganizationID: testOrgID, Role: r.role, AccountCode: r.code, AccountName: r.name, AccountType: r.typ})
	}
	return out
}

// fixtureConfigRepo serves fixed reference data for one organization.
type fixtureConfigRepo struct {
	settings domain.OrgSettings
	rules    []domain.PostingRule
	accounts []domain.ChartAccount
	rates    []domain.TaxRate
	loads    int
}

var _ portsrepo.ConfigRepositoryFacade = (*fixtureConfigRepo)(nil)

func newFixtureConfigRepo() *fixtureConfigRepo {
	return &fixtureConfigRepo{
		settings: domain.OrgSettings{OrganizationID: testOrgID, Jurisdiction: "AE", BaseCurrency: "AED"},
		rules:    defaultRules(),
		accounts: defaultAccounts(),
		rates: []domain.TaxRate{
			{Jurisdiction: "AE", Category: domain.StandardCategory, Rate: dec("0.05"), Scheme: domain.SchemeStandard},
		},
	}
}

func (f *fixtureConfigRepo) ListPostingRules(_ context.Context, _ string) ([]domain.PostingRule, error) {
	f.loads++
	return f.rules, nil
}

func (f *fixtureConfigRepo) ListChartAccounts(_ context.Context, _ string) ([]domain.ChartAccount, error) {
	return f.accounts, nil
}

func (f *fixtureConfigRepo) ListTaxRates(_ context.Context, _ string) ([]domain.TaxRate, error) {
	return f.rates, nil
}

func (f *fixtureConfigRepo) FindOrgSettings(_ context.Context, organizationID string) (*domain.OrgSettings, error) {
	if organizationID != f.settings.OrganizationID {
		return nil, apperrors.ErrNotFound
	}
	s := f.settings
	return &s, nil
}

func (f *fixtureConfigRepo) withoutAccount(role domain.AccountRole) *fixtureConfigRepo {
	kept := f.accounts[:0:0]
	for _, a := range f.accounts {
		if a.Role != role {
			kept = append(kept, a)
		}
	}
	f.accounts = kept
	return f
}

// memPeriodRepo is an in-memory create-if-absent period store.
type memPeriodRepo struct {
	mu      sync.Mutex
	periods map[string]domain.FiscalPeriod
	inserts int
}

var _ portsrepo.PeriodRepositoryFacade = (*memPeriodRepo)(nil)

func newMemPeriodRepo() *memPeriodRepo {
	return &memPeriodRepo{periods: make(map[string]domain.FiscalPeriod)}
}

func (r *memPeriodRepo) key(org, code string) string { return org + "|" + code }

func (r *memPeriodRepo) FindPeriod(_ context.Context, organizationID, periodCode string) (*domain.FiscalPeriod, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.periods[r.key(organizationID, periodCode)]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &p, nil
}

func (r *memPeriodRepo) EnsurePeriod(_ context.Context, period domain.FiscalPeriod) (*domain.FiscalPeriod, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := r.key(period.OrganizationID, period.PeriodCode)
	if existing, ok := r.periods[k]; ok {
		return &existing, false, nil
	}
	r.periods[k] = period
	r.inserts++
	return &period, true, nil
}

func (r *memPeriodRepo) UpdatePeriodStatus(_ context.Context, organizationID, periodCode string, status domain.PeriodStatus, expectedVersion int, actor string, at time.Time) (*domain.FiscalPeriod, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := r.key(organizationID, periodCode)
	p, ok := r.periods[k]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if p.Version != expectedVersion {
		return nil, apperrors.ErrConflict
	}
	p.Status = status
	p.Version++
	p.LastUpdatedAt = at
	p.LastUpdatedBy = actor
	r.periods[k] = p
	return &p, nil
}

func (r *memPeriodRepo) seed(code string, status domain.PeriodStatus) {
	start, _, _ := domain.PeriodBounds(code)
	p := domain.NewFiscalPeriod("seed-"+code, testOrgID, start, domain.SystemActor, fixedNow)
	p.Status = status
	r.periods[r.key(testOrgID, code)] = p
}

func (r *memPeriodRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.periods)
}

// MockJournalRepository is a mock type for the JournalRepositoryFacade interface
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindTransactionByID(ctx context.Context, organizationID, transactionID string) (*domain.PostedTransaction, error) {
	args := m.Called(ctx, organizationID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostedTransaction), args.Error(1)
}

func (m *MockJournalRepository) FindTransactionByIdempotencyKey(ctx context.Context, organizationID, key string) (*domain.PostedTransaction, error) {
	args := m.Called(ctx, organizationID, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostedTransaction), args.Error(1)
}

func (m *MockJournalRepository) ListTransactions(ctx context.Context, organizationID string, limit int, nextToken *string) ([]domain.PostedTransaction, *string, error) {
	args := m.Called(ctx, organizationID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		v := args.Get(1).(string)
		token = &v
	}
	return args.Get(0).([]domain.PostedTransaction), token, args.Error(2)
}

func (m *MockJournalRepository) SaveTransaction(ctx context.Context, event domain.FinanceEvent, txn domain.PostedTransaction) error {
	args := m.Called(ctx, event, txn)
	return args.Error(0)
}

// MockPOSRepository is a mock type for the POSSummaryRepositoryFacade interface
type MockPOSRepository struct {
	mock.Mock
}

var _ portsrepo.POSSummaryRepositoryFacade = (*MockPOSRepository)(nil)

func (m *MockPOSRepository) FindSummaryResult(ctx context.Context, organizationID string, businessDate time.Time) (*domain.POSResult, error) {
	args := m.Called(ctx, organizationID, businessDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.POSResult), args.Error(1)
}

func (m *MockPOSRepository) SaveSummaryWithJournals(ctx context.Context, summary domain.POSDailySummary, result domain.POSResult, events []domain.FinanceEvent) error {
	args := m.Called(ctx, summary, result, events)
	return args.Error(0)
}

// MockPostingWriter is a mock type for the PostingWriterSvc interface
type MockPostingWriter struct {
	mock.Mock
}

var _ portssvc.PostingWriterSvc = (*MockPostingWriter)(nil)

func (m *MockPostingWriter) Post(ctx context.Context, event domain.FinanceEvent, actor string) (*domain.PostingOutcome, error) {
	args := m.Called(ctx, event, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingOutcome), args.Error(1)
}

func (m *MockPostingWriter) Preview(ctx context.Context, event domain.FinanceEvent, actor string) (*domain.PostingOutcome, error) {
	args := m.Called(ctx, event, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingOutcome), args.Error(1)
}

// recordingAuditor keeps entries in memory.
type recordingAuditor struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
}

var _ portssvc.Auditor = (*recordingAuditor)(nil)

func (a *recordingAuditor) Record(_ context.Context, entry domain.AuditEntry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, entry)
}

func (a *recordingAuditor) actions(action string) []domain.AuditEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	var out []domain.AuditEntry
	for _, e := range a.entries {
		if e.Action == action {
			out = append(out, e)
		}
	}
	return out
}
