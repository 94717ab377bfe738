package services

import (
	"context"

	"github.com/SscSPs/mda_posting_engine/internal/core/domain"
)

// Auditor records posting decisions. Critical entries must be durable before Record returns.
type Auditor interface {
	Record(ctx context.Context, entry domain.AuditEntry)
}
