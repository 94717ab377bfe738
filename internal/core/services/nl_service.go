package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/mda_posting_engine/internal/apperrors"
	"github.com/SscSPs/mda_posting_engine/internal/core/domain"
	portssvc "github.com/SscSPs/mda_posting_engine/internal/core/ports/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// nlService drafts events from free text. Drafts get no special treatment: they go through
// the same validator, resolver and builder as any structured caller.
type nlService struct {
	BaseService
	posting   portssvc.PostingWriterSvc
	snapshots SnapshotLoader
	now       func() time.Time
}

// NewNLService creates the natural-language entry point.
func NewNLService(posting portssvc.PostingWriterSvc, snapshots SnapshotLoader, auditor portssvc.Auditor) portssvc.NLSvc {
	return &nlService{
		BaseService: BaseService{Auditor: auditor},
		posting:     posting,
		snapshots:   snapshots,
		now:         time.Now,
	}
}

var _ portssvc.NLSvc = (*nlService)(nil)

// HandleCommand parses description and previews (dryRun) or posts the resulting draft.
// An unclassifiable text returns the parse with its suggestions alongside a CouldNotClassify error.
func (s *nlService) HandleCommand(ctx context.Context, organizationID, description string, dryRun bool, actor string) (outcome *domain.NLOutcome, err error) {
	ctx, span := s.StartSpan(ctx, "nl.HandleCommand", organizationID)
	defer func() { EndSpan(span, err) }()

	text := SanitizeText(description)
	if text == "" {
		return nil, apperrors.NewFieldError("description", "is required")
	}
	if _, err := uuid.Parse(organizationID); err != nil {
		return nil, apperrors.NewFieldError("organization_id", "must be a UUID")
	}

	snapshot, err := s.snapshots.Load(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	parse := ParseDescription(text, s.now(), snapshot.Settings.BaseCurrency)
	outcome = &domain.NLOutcome{Parse: parse}
	s.LogDebug(ctx, "Parsed instruction",
		slog.String("status", string(parse.Status)),
		slog.String("category", parse.Category),
		slog.String("amount", parse.Amount.String()))

	if parse.Status == domain.ParseCouldNotClassify {
		s.Audit(ctx, domain.AuditEntry{
			OrganizationID: organizationID,
			Actor:          actor,
			Action:         "nl_command",
			Outcome:        "could_not_classify",
			Severity:       domain.AuditInfo,
			Message:        text,
		})
		return outcome, apperrors.NewEngineError(apperrors.CodeCouldNotClassify,
			"could not classify the description; suggestions: "+strings.Join(parse.Suggestions, ", "))
	}
	if len(parse.Missing) > 0 {
		return outcome, apperrors.NewFieldError(parse.Missing[0], "could not be read from the description")
	}

	draft, err := s.draftEvent(organizationID, text, parse, snapshot)
	if err != nil {
		return outcome, err
	}
	outcome.Draft = &draft

	var posting *domain.PostingOutcome
	if dryRun {
		posting, err = s.posting.Preview(ctx, draft, actor)
	} else {
		posting, err = s.posting.Post(ctx, draft, actor)
	}
	if err != nil {
		return outcome, err
	}
	outcome.Posting = posting
	return outcome, nil
}

func (s *nlService) draftEvent(organizationID, text string, parse domain.ParseResult, snapshot *domain.ConfigSnapshot) (domain.FinanceEvent, error) {
	base := snapshot.Settings.BaseCurrency
	if parse.Currency != base {
		return domain.FinanceEvent{}, apperrors.NewFieldError("exchange_rate",
			fmt.Sprintf("%s instructions need an exchange rate into %s; submit a structured event instead", parse.Currency, base))
	}

	event := domain.FinanceEvent{
		EventID:             uuid.NewString(),
		OrganizationID:      organizationID,
		SmartCode:           parse.SmartCode,
		TransactionDate:     parse.Date,
		TotalAmount:         parse.Amount,
		TransactionCurrency: parse.Currency,
		BaseCurrency:        base,
		ExchangeRate:        decimal.NewFromInt(1),
		Context: domain.BusinessContext{
			Channel:       parse.Channel,
			Note:          text,
			CategoryLabel: parse.Category,
		},
		Metadata: domain.IngestionMetadata{SourceSystem: "nl"},
	}

	if parse.Operation == domain.OperationPOSEOD {
		key := domain.MustParseSmartCode(parse.SmartCode)
		rate := snapshot.Tax.RateFor(key.Category)
		split := SplitTax(parse.Amount, rate.Rate, domain.TaxInclusive)
		payload := domain.SalesPayload{VATCollected: split.Tax}
		if parse.Channel == "card" {
			payload.CardSettlement = parse.Amount
		} else {
			payload.CashCollected = parse.Amount
		}
		event.Payload = payload
	}
	return event, nil
}
