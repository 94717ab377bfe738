package pgsql

import (
	"context"

	"github.com/SscSPs/mda_posting_engine/internal/apperrors"
	"github.com/SscSPs/mda_posting_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/mda_posting_engine/internal/core/ports/repositories"
	"github.com/SscSPs/mda_posting_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxAuditRepository appends audit entries.
type PgxAuditRepository struct {
	BaseRepository
}

func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditWriter {
	return &PgxAuditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditWriter = (*PgxAuditRepository)(nil)

// SaveAuditEntries inserts a batch of entries. Entry IDs make a re-sent batch harmless.
func (r *PgxAuditRepository) SaveAuditEntries(ctx context.Context, entries []domain.AuditEntry) error {
	if len(entries) == 0 {
		return nil
	}
	query := `
		INSERT INTO audit_entries (
			entry_id, organization_id, actor, action, outcome, severity, smart_code,
			amount, currency, target_id, error_code, message, metadata, occurred_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (entry_id) DO NOTHING;
	`
	batch := &pgx.Batch{}
	for _, entry := range entries {
		m, err := mapping.ToModelAuditEntry(entry)
		if err != nil {
			return apperrors.NewAppError(500, "failed to encode audit entry "+entry.EntryID, err)
		}
		batch.Queue(query,
			m.EntryID,
			m.OrganizationID,
			m.Actor,
			m.Action,
			m.Outcome,
			m.Severity,
			m.SmartCode,
			m.Amount,
			m.Currency,
			m.TargetID,
			m.ErrorCode,
			m.Message,
			m.Metadata,
			m.OccurredAt,
		)
	}
	// A batch sent on the pool runs as one implicit transaction.
	if err := r.Pool.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert audit entries", err)
	}
	return nil
}
