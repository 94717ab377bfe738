package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/mda_posting_engine/internal/apperrors"
	"github.com/SscSPs/mda_posting_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/mda_posting_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mda_posting_engine/internal/core/ports/services"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// SnapshotLoader supplies the configuration snapshot one pipeline run reads from.
type SnapshotLoader interface {
	Load(ctx context.Context, organizationID string) (*domain.ConfigSnapshot, error)
}

// prepareMode selects the side effects prepare is allowed to have.
type prepareMode struct {
	dryRun     bool
	skipReplay bool
}

// preparedPosting is a fully built, not yet persisted journal.
type preparedPosting struct {
	event    domain.FinanceEvent
	txn      domain.PostedTransaction
	period   *domain.FiscalPeriod
	split    domain.TaxSplit
	version  string
	replayed *domain.PostedTransaction
}

// PostingService runs the validate, gate, resolve, split, build and persist pipeline.
type PostingService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	periods     portssvc.PeriodSvc
	snapshots   SnapshotLoader
	validator   *EventValidator
	builder     *JournalBuilder
	now         func() time.Time
}

// PostingOption configures the posting service.
type PostingOption func(*PostingService)

// WithPostingAuditor adds an audit sink.
func WithPostingAuditor(auditor portssvc.Auditor) PostingOption {
	return func(s *PostingService) {
		s.Auditor = auditor
	}
}

// WithPostingClock overrides the time source for audit fields.
func WithPostingClock(now func() time.Time) PostingOption {
	return func(s *PostingService) {
		s.now = now
	}
}

// NewPostingService creates the posting pipeline.
func NewPostingService(journalRepo portsrepo.JournalRepositoryFacade, periods portssvc.PeriodSvc, snapshots SnapshotLoader, validator *EventValidator, builder *JournalBuilder, options ...PostingOption) *PostingService {
	svc := &PostingService{
		journalRepo: journalRepo,
		periods:     periods,
		snapshots:   snapshots,
		validator:   validator,
		builder:     builder,
		now:         time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.PostingSvcFacade = (*PostingService)(nil)

// prepare runs every stage except persistence.
func (s *PostingService) prepare(ctx context.Context, event domain.FinanceEvent, actor string, mode prepareMode) (*preparedPosting, error) {
	event = normalizeEvent(SanitizeEvent(event))
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	if err := s.validator.Validate(event); err != nil {
		return nil, err
	}

	key := IdempotencyKeyFor(event)
	fingerprint := Fingerprint(event)
	event.Metadata.IdempotencyKey = key

	if !mode.skipReplay {
		existing, err := s.findByKey(ctx, event.OrganizationID, key, fingerprint)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return &preparedPosting{event: event, replayed: existing}, nil
		}
	}

	var gate *domain.PeriodValidation
	var err error
	if mode.dryRun {
		gate, err = s.periods.CheckForPosting(ctx, event.OrganizationID, event.TransactionDate)
	} else {
		gate, err = s.periods.ValidateForPosting(ctx, event.OrganizationID, event.TransactionDate, actor)
	}
	if err != nil {
		return nil, err
	}

	snapshot, err := s.snapshots.Load(ctx, event.OrganizationID)
	if err != nil {
		return nil, err
	}
	if event.BaseCurrency != snapshot.Settings.BaseCurrency {
		return nil, apperrors.NewFieldError("base_currency",
			fmt.Sprintf("must be the organization base currency %s", snapshot.Settings.BaseCurrency))
	}

	rule, err := Resolve(snapshot, event.SmartCode)
	if err != nil {
		return nil, err
	}
	accounts, err := ResolveAccounts(snapshot, rule)
	if err != nil {
		return nil, err
	}
	categoryKey, _ := domain.ParseSmartCode(event.SmartCode)
	split := ComputeTax(event, categoryKey, rule, snapshot.Tax)

	txn, err := s.builder.Build(event, gate.Period, rule, accounts, split)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	txn.TransactionID = uuid.NewString()
	txn.Status = domain.Posted
	if mode.dryRun {
		txn.Status = domain.Preview
	}
	txn.IdempotencyKey = key
	txn.Fingerprint = fingerprint
	if p, ok := event.Payload.(domain.SalesPayload); ok {
		txn.SummaryID = p.SummaryID
	}
	if p, ok := event.Payload.(domain.CommissionPayload); ok {
		txn.SummaryID = p.SummaryID
	}
	txn.AuditFields = domain.NewAuditFields(actor, now)
	for i := range txn.Lines {
		txn.Lines[i].EventID = event.EventID
	}

	return &preparedPosting{
		event:   event,
		txn:     *txn,
		period:  gate.Period,
		split:   split,
		version: snapshot.Version,
	}, nil
}

// findByKey returns the earlier transaction for key, nil if none, or IdempotencyConflict
// when the key was used for a different event.
func (s *PostingService) findByKey(ctx context.Context, organizationID, key, fingerprint string) (*domain.PostedTransaction, error) {
	if key == "" {
		return nil, nil
	}
	existing, err := s.journalRepo.FindTransactionByIdempotencyKey(ctx, organizationID, key)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if existing.Fingerprint != "" && existing.Fingerprint != fingerprint {
		err := apperrors.NewEngineError(apperrors.CodeIdempotencyConflict,
			fmt.Sprintf("idempotency key %q was already used for a different event", key))
		err.Field = "metadata.idempotency_key"
		return nil, err
	}
	return existing, nil
}

// replay returns a stored transaction as-is. Period and tax split are not re-derived.
func (s *PostingService) replay(ctx context.Context, organizationID string, txn domain.PostedTransaction) *domain.PostingOutcome {
	s.LogInfo(ctx, "Idempotent replay of posted transaction",
		slog.String("organization_id", organizationID),
		slog.String("transaction_id", txn.TransactionID))
	return &domain.PostingOutcome{Transaction: txn, Replayed: true}
}

// Post runs the pipeline and persists the journal atomically.
func (s *PostingService) Post(ctx context.Context, event domain.FinanceEvent, actor string) (outcome *domain.PostingOutcome, err error) {
	ctx, span := s.StartSpan(ctx, "posting.Post", event.OrganizationID,
		attribute.String("mda.smart_code", string(event.SmartCode)))
	defer func() { EndSpan(span, err) }()

	prepared, err := s.prepare(ctx, event, actor, prepareMode{})
	if err != nil {
		s.auditFailure(ctx, "post_event", event, actor, err)
		return nil, err
	}
	if prepared.replayed != nil {
		return s.replay(ctx, prepared.event.OrganizationID, *prepared.replayed), nil
	}

	if err := s.journalRepo.SaveTransaction(ctx, prepared.event, prepared.txn); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// A concurrent post with the same key wins the insert; anything else collided on event_id.
			existing, lookupErr := s.findByKey(ctx, prepared.event.OrganizationID, prepared.txn.IdempotencyKey, prepared.txn.Fingerprint)
			switch {
			case lookupErr != nil:
				err = lookupErr
			case existing != nil:
				return s.replay(ctx, prepared.event.OrganizationID, *existing), nil
			default:
				err = apperrors.NewFieldError("event_id", "was already used by another event")
			}
		}
		s.LogError(ctx, err, "Failed to persist transaction",
			slog.String("organization_id", prepared.event.OrganizationID),
			slog.String("event_id", prepared.event.EventID))
		s.auditFailure(ctx, "post_event", prepared.event, actor, err)
		return nil, err
	}

	s.LogInfo(ctx, "Transaction posted",
		slog.String("organization_id", prepared.event.OrganizationID),
		slog.String("transaction_id", prepared.txn.TransactionID),
		slog.String("smart_code", string(prepared.event.SmartCode)),
		slog.String("total_debit", prepared.txn.TotalDebit.String()))
	s.Audit(ctx, domain.AuditEntry{
		OrganizationID: prepared.event.OrganizationID,
		Actor:          actor,
		Action:         "post_event",
		Outcome:        "success",
		Severity:       domain.AuditInfo,
		SmartCode:      prepared.event.SmartCode,
		Amount:         prepared.event.TotalAmount,
		Currency:       prepared.event.TransactionCurrency,
		TargetID:       prepared.txn.TransactionID,
	})

	return &domain.PostingOutcome{
		Transaction:     prepared.txn,
		Period:          prepared.period,
		TaxSplit:        prepared.split,
		SnapshotVersion: prepared.version,
	}, nil
}

// Preview runs the pipeline read-only and returns the would-be journal.
func (s *PostingService) Preview(ctx context.Context, event domain.FinanceEvent, actor string) (outcome *domain.PostingOutcome, err error) {
	ctx, span := s.StartSpan(ctx, "posting.Preview", event.OrganizationID,
		attribute.String("mda.smart_code", string(event.SmartCode)))
	defer func() { EndSpan(span, err) }()

	prepared, err := s.prepare(ctx, event, actor, prepareMode{dryRun: true})
	if err != nil {
		s.auditFailure(ctx, "preview_event", event, actor, err)
		return nil, err
	}
	if prepared.replayed != nil {
		return &domain.PostingOutcome{Transaction: *prepared.replayed, Replayed: true, DryRun: true}, nil
	}
	return &domain.PostingOutcome{
		Transaction:     prepared.txn,
		Period:          prepared.period,
		TaxSplit:        prepared.split,
		SnapshotVersion: prepared.version,
		DryRun:          true,
	}, nil
}

// GetTransaction fetches one posted transaction with its lines.
func (s *PostingService) GetTransaction(ctx context.Context, organizationID, transactionID string) (*domain.PostedTransaction, error) {
	txn, err := s.journalRepo.FindTransactionByID(ctx, organizationID, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.WrapEngineError(apperrors.CodeNotFound,
				fmt.Sprintf("transaction %s not found", transactionID), err)
		}
		s.LogError(ctx, err, "Failed to fetch transaction", slog.String("transaction_id", transactionID))
		return nil, err
	}
	return txn, nil
}

// ListTransactions returns a page of posted transactions, newest first.
func (s *PostingService) ListTransactions(ctx context.Context, organizationID string, limit int, nextToken *string) ([]domain.PostedTransaction, *string, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	txns, token, err := s.journalRepo.ListTransactions(ctx, organizationID, limit, nextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			return nil, nil, apperrors.WrapEngineError(apperrors.CodeSchemaViolation, "invalid pagination token", err)
		}
		s.LogError(ctx, err, "Failed to list transactions", slog.String("organization_id", organizationID))
		return nil, nil, err
	}
	return txns, token, nil
}

func (s *PostingService) auditFailure(ctx context.Context, action string, event domain.FinanceEvent, actor string, err error) {
	s.Audit(ctx, domain.AuditEntry{
		OrganizationID: event.OrganizationID,
		Actor:          actor,
		Action:         action,
		Outcome:        "failure",
		Severity:       severityFor(err),
		SmartCode:      event.SmartCode,
		Amount:         event.TotalAmount,
		Currency:       event.TransactionCurrency,
		ErrorCode:      string(apperrors.CodeOf(err)),
		Message:        err.Error(),
	})
}
