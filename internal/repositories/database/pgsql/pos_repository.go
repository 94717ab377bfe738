package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/mda_posting_engine/internal/apperrors"
	"github.com/SscSPs/mda_posting_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/mda_posting_engine/internal/core/ports/repositories"
	"github.com/SscSPs/mda_posting_engine/internal/models"
	"github.com/SscSPs/mda_posting_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxPOSRepository stores processed end-of-day summaries with their journals.
type PgxPOSRepository struct {
	BaseRepository
}

func newPgxPOSRepository(pool *pgxpool.Pool) portsrepo.POSSummaryRepositoryFacade {
	return &PgxPOSRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.POSSummaryRepositoryFacade = (*PgxPOSRepository)(nil)

// FindSummaryResult rebuilds the stored result of a business date, journals in their original order.
func (r *PgxPOSRepository) FindSummaryResult(ctx context.Context, organizationID string, businessDate time.Time) (*domain.POSResult, error) {
	query := `
		SELECT summary_id, organization_id, business_date, currency, gross_sales, vat_collected,
		       totals, commission_accruals, transaction_ids, source_system, external_reference,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM pos_summaries
		WHERE organization_id = $1 AND business_date = $2;
	`
	var m models.POSSummary
	err := r.Pool.QueryRow(ctx, query, organizationID, businessDate).Scan(
		&m.SummaryID,
		&m.OrganizationID,
		&m.BusinessDate,
		&m.Currency,
		&m.GrossSales,
		&m.VATCollected,
		&m.Totals,
		&m.Accruals,
		&m.TransactionIDs,
		&m.SourceSystem,
		&m.ExternalReference,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find POS summary", err)
	}

	journals, err := queryTransactions(ctx, r.Pool,
		`SELECT `+transactionColumns+` FROM posted_transactions t WHERE t.summary_id = $1;`, m.SummaryID)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.PostedTransaction, len(journals))
	for _, j := range journals {
		byID[j.TransactionID] = j
	}
	ordered := make([]domain.PostedTransaction, 0, len(m.TransactionIDs))
	for _, id := range m.TransactionIDs {
		if j, ok := byID[id]; ok {
			ordered = append(ordered, j)
		}
	}

	result, err := mapping.ToDomainPOSResult(m, ordered)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to decode POS summary "+m.SummaryID, err)
	}
	return &result, nil
}

// SaveSummaryWithJournals commits the summary and every derived journal in one transaction.
// A transaction-scoped advisory lock on (organization, business date) serializes competing
// submissions of the same day before the unique key is consulted.
func (r *PgxPOSRepository) SaveSummaryWithJournals(ctx context.Context, summary domain.POSDailySummary, result domain.POSResult, events []domain.FinanceEvent) error {
	if len(events) != len(result.JournalEntries) {
		return apperrors.NewAppError(500, "POS events and journals are misaligned", apperrors.ErrInternal)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // No-op once committed

	lockKey := summary.OrganizationID + "|" + summary.BusinessDate.Format(time.DateOnly)
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1));`, lockKey); err != nil {
		return apperrors.NewAppError(500, "failed to lock POS business date", err)
	}

	var exists bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM pos_summaries WHERE organization_id = $1 AND business_date = $2);`,
		summary.OrganizationID, summary.BusinessDate).Scan(&exists)
	if err != nil {
		return apperrors.NewAppError(500, "failed to check POS summary", err)
	}
	if exists {
		return apperrors.ErrDuplicate
	}

	audit := domain.NewAuditFields(domain.SystemActor, time.Now())
	if len(result.JournalEntries) > 0 {
		audit = result.JournalEntries[0].AuditFields
	}
	m, err := mapping.ToModelPOSSummary(summary, result, audit)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode POS summary", err)
	}
	insertSummary := `
		INSERT INTO pos_summaries (
			summary_id, organization_id, business_date, currency, gross_sales, vat_collected,
			totals, commission_accruals, transaction_ids, source_system, external_reference,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err = tx.Exec(ctx, insertSummary,
		m.SummaryID,
		m.OrganizationID,
		m.BusinessDate,
		m.Currency,
		m.GrossSales,
		m.VATCollected,
		m.Totals,
		m.Accruals,
		m.TransactionIDs,
		m.SourceSystem,
		m.ExternalReference,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert POS summary "+summary.SummaryID, err)
	}

	for i, event := range events {
		if err := insertPosting(ctx, tx, event, result.JournalEntries[i]); err != nil {
			return err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return err
	}
	return nil
}
