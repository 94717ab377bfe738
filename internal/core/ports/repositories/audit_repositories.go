package repositories

import (
	"context"

	"github.com/SscSPs/mda_posting_engine/internal/core/domain"
)

// AuditWriter appends audit entries. Entries are never updated.
type AuditWriter interface {
	SaveAuditEntries(ctx context.Context, entries []domain.AuditEntry) error
}
