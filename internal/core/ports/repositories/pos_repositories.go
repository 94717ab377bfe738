package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/mda_posting_engine/internal/core/domain"
)

// POSSummaryReader reads processed daily summaries.
type POSSummaryReader interface {
	// FindSummaryResult rebuilds the stored result for (organization, business date), or apperrors.ErrNotFound.
	FindSummaryResult(ctx context.Context, organizationID string, businessDate time.Time) (*domain.POSResult, error)
}

// POSSummaryWriter persists a processed daily summary.
type POSSummaryWriter interface {
	// SaveSummaryWithJournals commits the summary row together with every derived event and journal
	// in one database transaction, serialized per (organization, business date).
	// A summary already stored for that date yields apperrors.ErrDuplicate and nothing is written.
	SaveSummaryWithJournals(ctx context.Context, summary domain.POSDailySummary, result domain.POSResult, events []domain.FinanceEvent) error
}

// POSSummaryRepositoryFacade combines POS summary read and write operations.
type POSSummaryRepositoryFacade interface {
	POSSummaryReader
	POSSummaryWriter
}
