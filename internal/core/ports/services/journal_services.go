package services

import (
	"context"

	"github.com/SscSPs/mda_posting_engine/internal/core/domain"
)

// PostingWriterSvc runs finance events through the posting pipeline.
type PostingWriterSvc interface {
	// Post validates, gates, resolves, splits, builds and atomically persists one event.
	// Re-posting an event with an already used idempotency key returns the original transaction.
	Post(ctx context.Context, event domain.FinanceEvent, actor string) (*domain.PostingOutcome, error)

	// Preview runs the same pipeline without persisting anything or creating periods.
	Preview(ctx context.Context, event domain.FinanceEvent, actor string) (*domain.PostingOutcome, error)
}

// PostingReaderSvc reads posted transactions.
type PostingReaderSvc interface {
	GetTransaction(ctx context.Context, organizationID, transactionID string) (*domain.PostedTransaction, error)
	ListTransactions(ctx context.Context, organizationID string, limit int, nextToken *string) ([]domain.PostedTransaction, *string, error)
}

// PostingSvcFacade combines all posting-related service interfaces.
type PostingSvcFacade interface {
	PostingWriterSvc
	PostingReaderSvc
}
