package repositories

import (
	"context"

	"github.com/SscSPs/mda_posting_engine/internal/core/domain"
)

// JournalReader defines read operations for posted transactions.
type JournalReader interface {
	// FindTransactionByID retrieves a posted transaction with its ordered GL lines.
	FindTransactionByID(ctx context.Context, organizationID, transactionID string) (*domain.PostedTransaction, error)

	// FindTransactionByIdempotencyKey returns the transaction previously posted under key, or apperrors.ErrNotFound.
	FindTransactionByIdempotencyKey(ctx context.Context, organizationID, key string) (*domain.PostedTransaction, error)

	// ListTransactions retrieves a page of posted transactions, newest first, using token-based pagination.
	ListTransactions(ctx context.Context, organizationID string, limit int, nextToken *string) ([]domain.PostedTransaction, *string, error)
}

// JournalWriter defines write operations for posted transactions.
type JournalWriter interface {
	// SaveTransaction persists the event, the transaction and its GL lines in one database transaction.
	// It returns apperrors.ErrDuplicate if the idempotency key has already been used.
	SaveTransaction(ctx context.Context, event domain.FinanceEvent, txn domain.PostedTransaction) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
