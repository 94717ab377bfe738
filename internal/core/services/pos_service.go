package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/mda_posting_engine/internal/apperrors"
	"github.com/SscSPs/mda_posting_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/mda_posting_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mda_posting_engine/internal/core/ports/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/text/currency"
)

// DefaultReconciliationTolerance is the largest tender/gross gap accepted.
var DefaultReconciliationTolerance = decimal.New(1, -2)

// posService turns an end-of-day summary into one sales journal plus one commission
// journal per staff member, committed together or not at all.
type posService struct {
	BaseService
	posRepo   portsrepo.POSSummaryRepositoryFacade
	posting   *PostingService
	snapshots SnapshotLoader
	tolerance decimal.Decimal
}

// NewPOSService creates the POS aggregator.
func NewPOSService(posRepo portsrepo.POSSummaryRepositoryFacade, posting *PostingService, snapshots SnapshotLoader, tolerance decimal.Decimal, auditor portssvc.Auditor) portssvc.POSSvc {
	if tolerance.IsNegative() || tolerance.IsZero() {
		tolerance = DefaultReconciliationTolerance
	}
	return &posService{
		BaseService: BaseService{Auditor: auditor},
		posRepo:     posRepo,
		posting:     posting,
		snapshots:   snapshots,
		tolerance:   tolerance,
	}
}

var _ portssvc.POSSvc = (*posService)(nil)

// Reconcile checks a summary before anything is derived from it. It returns every problem found
// and the error class of the first: SchemaViolation for malformed input, ReconciliationMismatch
// when tenders and gross sales disagree.
func Reconcile(summary domain.POSDailySummary, tolerance decimal.Decimal) ([]string, error) {
	var problems []string
	var firstErr error
	add := func(err *apperrors.EngineError) {
		problems = append(problems, err.Error())
		if firstErr == nil {
			firstErr = err
		}
	}

	if _, err := uuid.Parse(summary.OrganizationID); err != nil {
		add(apperrors.NewFieldError("organization_id", "must be a UUID"))
	}
	if summary.BusinessDate.IsZero() {
		add(apperrors.NewFieldError("business_date", "is required"))
	}
	if _, err := currency.ParseISO(summary.Currency); err != nil || len(summary.Currency) != 3 {
		add(apperrors.NewFieldError("currency", "must be an ISO 4217 currency code"))
	}
	if !summary.GrossSales.IsPositive() {
		add(apperrors.NewFieldError("gross_sales", "must be greater than zero"))
	}
	if summary.CashCollected.IsNegative() || summary.CardSettlement.IsNegative() {
		add(apperrors.NewFieldError("tenders", "must not be negative"))
	}
	for i, t := range summary.OtherTenders {
		if t.Amount.IsNegative() {
			add(apperrors.NewFieldError(fmt.Sprintf("other_tenders[%d].amount", i), "must not be negative"))
		}
	}
	if summary.VATCollected.IsNegative() || (summary.GrossSales.IsPositive() && summary.VATCollected.GreaterThanOrEqual(summary.GrossSales)) {
		add(apperrors.NewFieldError("vat_collected", "must be non-negative and below gross sales"))
	}
	seen := make(map[string]struct{}, len(summary.Commissions))
	for i, c := range summary.Commissions {
		if strings.TrimSpace(c.StaffID) == "" {
			add(apperrors.NewFieldError(fmt.Sprintf("commissions[%d].staff_id", i), "is required"))
		}
		if _, dup := seen[c.StaffID]; dup {
			add(apperrors.NewFieldError(fmt.Sprintf("commissions[%d].staff_id", i), "is listed twice"))
		}
		seen[c.StaffID] = struct{}{}
		if c.Amount.IsNegative() {
			add(apperrors.NewFieldError(fmt.Sprintf("commissions[%d].amount", i), "must not be negative"))
		}
	}

	tenders := summary.TenderTotal()
	if tenders.Sub(summary.GrossSales).Abs().GreaterThan(tolerance) {
		mismatch := apperrors.NewEngineError(apperrors.CodeReconciliationMismatch,
			fmt.Sprintf("tender total %s does not match gross sales %s",
				tenders.StringFixed(2), summary.GrossSales.StringFixed(2)))
		mismatch.Field = "gross_sales"
		add(mismatch)
	}
	return problems, firstErr
}

func normalizeSummary(summary domain.POSDailySummary) domain.POSDailySummary {
	summary.Currency = strings.ToUpper(strings.TrimSpace(summary.Currency))
	summary.SourceSystem = SanitizeText(summary.SourceSystem)
	summary.ExternalReference = SanitizeText(summary.ExternalReference)
	if !summary.BusinessDate.IsZero() {
		summary.BusinessDate = calendarDate(summary.BusinessDate)
	}
	for i := range summary.Commissions {
		summary.Commissions[i].StaffID = strings.TrimSpace(summary.Commissions[i].StaffID)
		summary.Commissions[i].StaffName = SanitizeText(summary.Commissions[i].StaffName)
	}
	if summary.SummaryID == "" {
		summary.SummaryID = uuid.NewString()
	}
	return summary
}

// ProcessDailySummary reconciles, derives and prepares every event, then commits them in one unit.
func (s *posService) ProcessDailySummary(ctx context.Context, summary domain.POSDailySummary, actor string) (result *domain.POSResult, err error) {
	ctx, span := s.StartSpan(ctx, "pos.ProcessDailySummary", summary.OrganizationID,
		attribute.String("mda.business_date", summary.BusinessDate.Format("2006-01-02")))
	defer func() { EndSpan(span, err) }()

	summary = normalizeSummary(summary)
	if problems, err := Reconcile(summary, s.tolerance); err != nil {
		s.LogInfo(ctx, "POS summary rejected",
			slog.String("organization_id", summary.OrganizationID),
			slog.Any("validation_errors", problems))
		s.auditSummary(ctx, summary, actor, "failure", err)
		return &domain.POSResult{Success: false, ValidationErrors: problems}, err
	}

	stored, err := s.posRepo.FindSummaryResult(ctx, summary.OrganizationID, summary.BusinessDate)
	switch {
	case err == nil:
		stored.Replayed = true
		return stored, nil
	case !errors.Is(err, apperrors.ErrNotFound):
		s.LogError(ctx, err, "Failed to look up POS summary", slog.String("organization_id", summary.OrganizationID))
		return nil, err
	}

	events, err := s.deriveEvents(ctx, summary)
	if err != nil {
		s.auditSummary(ctx, summary, actor, "failure", err)
		return &domain.POSResult{Success: false, ValidationErrors: []string{err.Error()}}, err
	}

	result = &domain.POSResult{
		Success:            true,
		SummaryID:          summary.SummaryID,
		JournalEntries:     make([]domain.PostedTransaction, 0, len(events)),
		CommissionAccruals: make([]domain.CommissionAccrual, 0, len(summary.Commissions)),
		Totals: domain.POSTotals{
			GrossSales:      summary.GrossSales,
			TotalVAT:        summary.VATCollected,
			TotalCommission: summary.TotalCommission(),
		},
	}
	prepared := make([]domain.FinanceEvent, 0, len(events))
	for _, event := range events {
		p, err := s.posting.prepare(ctx, event, actor, prepareMode{skipReplay: true})
		if err != nil {
			s.LogError(ctx, err, "POS derived event failed",
				slog.String("organization_id", summary.OrganizationID),
				slog.String("smart_code", string(event.SmartCode)))
			s.auditSummary(ctx, summary, actor, "failure", err)
			return &domain.POSResult{Success: false, SummaryID: summary.SummaryID, ValidationErrors: []string{err.Error()}}, err
		}
		prepared = append(prepared, p.event)
		result.JournalEntries = append(result.JournalEntries, p.txn)

		switch payload := p.event.Payload.(type) {
		case domain.SalesPayload:
			result.Totals.NetSales = p.split.Net
		case domain.CommissionPayload:
			result.CommissionAccruals = append(result.CommissionAccruals, domain.CommissionAccrual{
				StaffID:       payload.StaffID,
				StaffName:     payload.StaffName,
				Amount:        p.event.TotalAmount,
				TransactionID: p.txn.TransactionID,
			})
		}
	}

	if err := s.posRepo.SaveSummaryWithJournals(ctx, summary, *result, prepared); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			if stored, lookupErr := s.posRepo.FindSummaryResult(ctx, summary.OrganizationID, summary.BusinessDate); lookupErr == nil {
				stored.Replayed = true
				return stored, nil
			}
		}
		s.LogError(ctx, err, "Failed to commit POS summary", slog.String("organization_id", summary.OrganizationID))
		s.auditSummary(ctx, summary, actor, "failure", err)
		return nil, err
	}

	s.LogInfo(ctx, "POS summary posted",
		slog.String("organization_id", summary.OrganizationID),
		slog.String("summary_id", summary.SummaryID),
		slog.Int("journals", len(result.JournalEntries)))
	s.auditSummary(ctx, summary, actor, "success", nil)
	return result, nil
}

func (s *posService) deriveEvents(ctx context.Context, summary domain.POSDailySummary) ([]domain.FinanceEvent, error) {
	snapshot, err := s.snapshots.Load(ctx, summary.OrganizationID)
	if err != nil {
		return nil, err
	}
	base := snapshot.Settings.BaseCurrency
	rate := summary.ExchangeRate
	if summary.Currency == base {
		rate = decimal.NewFromInt(1)
	} else if !rate.IsPositive() {
		return nil, apperrors.NewFieldError("exchange_rate",
			fmt.Sprintf("is required to convert %s into base currency %s", summary.Currency, base))
	}

	day := summary.BusinessDate.Format("2006-01-02")
	source := summary.SourceSystem
	if source == "" {
		source = "pos"
	}
	newEvent := func(code domain.SmartCode, amount decimal.Decimal, key, note string, payload domain.Payload) domain.FinanceEvent {
		return domain.FinanceEvent{
			EventID:             uuid.NewString(),
			OrganizationID:      summary.OrganizationID,
			SmartCode:           code,
			TransactionDate:     summary.BusinessDate,
			TotalAmount:         amount,
			TransactionCurrency: summary.Currency,
			BaseCurrency:        base,
			ExchangeRate:        rate,
			Context:             domain.BusinessContext{Channel: "pos", Note: note},
			Payload:             payload,
			Metadata: domain.IngestionMetadata{
				SourceSystem:      source,
				ExternalReference: summary.ExternalReference,
				IdempotencyKey:    key,
			},
		}
	}

	events := []domain.FinanceEvent{newEvent(domain.SmartCodePOSSales, summary.GrossSales,
		"pos:"+day+":sales", "POS sales "+day,
		domain.SalesPayload{
			SummaryID:      summary.SummaryID,
			CashCollected:  summary.CashCollected,
			CardSettlement: summary.CardSettlement,
			OtherTenders:   summary.OtherTenders,
			VATCollected:   summary.VATCollected,
		})}
	for _, c := range summary.Commissions {
		if !c.Amount.IsPositive() {
			continue
		}
		name := c.StaffName
		if name == "" {
			name = c.StaffID
		}
		events = append(events, newEvent(domain.SmartCodePOSCommission, c.Amount,
			"pos:"+day+":commission:"+c.StaffID, "Commission "+name+" "+day,
			domain.CommissionPayload{SummaryID: summary.SummaryID, StaffID: c.StaffID, StaffName: c.StaffName}))
	}
	return events, nil
}

func (s *posService) auditSummary(ctx context.Context, summary domain.POSDailySummary, actor, outcome string, err error) {
	entry := domain.AuditEntry{
		OrganizationID: summary.OrganizationID,
		Actor:          actor,
		Action:         "process_pos_summary",
		Outcome:        outcome,
		Severity:       severityFor(err),
		SmartCode:      domain.SmartCodePOSSales,
		Amount:         summary.GrossSales,
		Currency:       summary.Currency,
		TargetID:       summary.SummaryID,
		Metadata:       map[string]string{"business_date": summary.BusinessDate.Format(time.DateOnly)},
	}
	if err != nil {
		entry.ErrorCode = string(apperrors.CodeOf(err))
		entry.Message = err.Error()
	}
	s.Audit(ctx, entry)
}
