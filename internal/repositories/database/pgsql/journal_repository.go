package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/SscSPs/mda_posting_engine/internal/apperrors"
	"github.com/SscSPs/mda_posting_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/mda_posting_engine/internal/core/ports/repositories"
	"github.com/SscSPs/mda_posting_engine/internal/models"
	"github.com/SscSPs/mda_posting_engine/internal/utils/mapping"
	"github.com/SscSPs/mda_posting_engine/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `t.transaction_id, t.event_id, t.organization_id, t.period_code, t.smart_code,
	t.transaction_date, t.currency, t.base_currency, t.exchange_rate, t.total_amount, t.description,
	t.status, t.total_debit, t.total_credit, t.idempotency_key, t.fingerprint, t.source_system,
	t.external_reference, t.summary_id, t.created_at, t.created_by, t.last_updated_at, t.last_updated_by`

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for posted transactions.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

// SaveTransaction stores the event, the transaction header and its lines atomically.
func (r *PgxJournalRepository) SaveTransaction(ctx context.Context, event domain.FinanceEvent, txn domain.PostedTransaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // No-op once committed

	if err := insertPosting(ctx, tx, event, txn); err != nil {
		return err
	}
	if err := r.Commit(ctx, tx); err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return err
	}
	return nil
}

// insertPosting writes one event and its journal inside an open transaction.
// A reused idempotency key or event ID surfaces as apperrors.ErrDuplicate.
func insertPosting(ctx context.Context, tx pgx.Tx, event domain.FinanceEvent, txn domain.PostedTransaction) error {
	modelEvent, err := mapping.ToModelEvent(event, txn.CreatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode event "+event.EventID, err)
	}
	eventQuery := `
		INSERT INTO finance_events (
			event_id, organization_id, smart_code, transaction_date, total_amount,
			transaction_currency, base_currency, exchange_rate, business_context,
			payload_kind, payload, source_system, external_reference, idempotency_key, received_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err = tx.Exec(ctx, eventQuery,
		modelEvent.EventID,
		modelEvent.OrganizationID,
		modelEvent.SmartCode,
		modelEvent.TransactionDate,
		modelEvent.TotalAmount,
		modelEvent.TransactionCurrency,
		modelEvent.BaseCurrency,
		modelEvent.ExchangeRate,
		modelEvent.BusinessContext,
		modelEvent.PayloadKind,
		modelEvent.Payload,
		modelEvent.SourceSystem,
		modelEvent.ExternalReference,
		modelEvent.IdempotencyKey,
		modelEvent.ReceivedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert event "+event.EventID, err)
	}

	m := mapping.ToModelTransaction(txn)
	txnQuery := `
		INSERT INTO posted_transactions (
			transaction_id, event_id, organization_id, period_code, smart_code, transaction_date,
			currency, base_currency, exchange_rate, total_amount, description, status,
			total_debit, total_credit, idempotency_key, fingerprint, source_system,
			external_reference, summary_id, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23);
	`
	_, err = tx.Exec(ctx, txnQuery,
		m.TransactionID,
		m.EventID,
		m.OrganizationID,
		m.PeriodCode,
		m.SmartCode,
		m.TransactionDate,
		m.Currency,
		m.BaseCurrency,
		m.ExchangeRate,
		m.TotalAmount,
		m.Description,
		m.Status,
		m.TotalDebit,
		m.TotalCredit,
		m.IdempotencyKey,
		m.Fingerprint,
		m.SourceSystem,
		m.ExternalReference,
		m.SummaryID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert transaction "+txn.TransactionID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO gl_lines (
			line_id, transaction_id, line_number, account_code, account_name, role,
			debit, credit, debit_base, credit_base, description, currency, base_currency
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	for _, line := range txn.Lines {
		l := mapping.ToModelGLLine(line, txn.TransactionID)
		batch.Queue(lineQuery,
			l.LineID,
			l.TransactionID,
			l.LineNumber,
			l.AccountCode,
			l.AccountName,
			l.Role,
			l.Debit,
			l.Credit,
			l.DebitBase,
			l.CreditBase,
			l.Description,
			l.Currency,
			l.BaseCurrency,
		)
	}
	// Close reports the first failing statement of the batch.
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert lines for transaction "+txn.TransactionID, err)
	}
	return nil
}

func scanTransaction(row pgx.Row) (models.PostedTransaction, error) {
	var m models.PostedTransaction
	err := row.Scan(
		&m.TransactionID,
		&m.EventID,
		&m.OrganizationID,
		&m.PeriodCode,
		&m.SmartCode,
		&m.TransactionDate,
		&m.Currency,
		&m.BaseCurrency,
		&m.ExchangeRate,
		&m.TotalAmount,
		&m.Description,
		&m.Status,
		&m.TotalDebit,
		&m.TotalCredit,
		&m.IdempotencyKey,
		&m.Fingerprint,
		&m.SourceSystem,
		&m.ExternalReference,
		&m.SummaryID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// loadLines fetches the lines of the given transactions keyed by transaction ID, in line order.
func loadLines(ctx context.Context, q querier, transactionIDs []string) (map[string][]models.GLLine, error) {
	out := make(map[string][]models.GLLine, len(transactionIDs))
	if len(transactionIDs) == 0 {
		return out, nil
	}
	query := `
		SELECT line_id, transaction_id, line_number, account_code, account_name, role,
		       debit, credit, debit_base, credit_base, description, currency, base_currency
		FROM gl_lines
		WHERE transaction_id = ANY($1)
		ORDER BY transaction_id, line_number;
	`
	rows, err := q.Query(ctx, query, transactionIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query GL lines", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l models.GLLine
		if err := rows.Scan(
			&l.LineID,
			&l.TransactionID,
			&l.LineNumber,
			&l.AccountCode,
			&l.AccountName,
			&l.Role,
			&l.Debit,
			&l.Credit,
			&l.DebitBase,
			&l.CreditBase,
			&l.Description,
			&l.Currency,
			&l.BaseCurrency,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan GL line", err)
		}
		out[l.TransactionID] = append(out[l.TransactionID], l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating GL line rows", err)
	}
	return out, nil
}

// queryTransactions runs a header query and attaches the lines of every row returned.
func queryTransactions(ctx context.Context, q querier, query string, args ...any) ([]domain.PostedTransaction, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions", err)
	}
	headers := []models.PostedTransaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			rows.Close()
			return nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		headers = append(headers, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating transaction rows", err)
	}

	ids := make([]string, len(headers))
	for i, h := range headers {
		ids[i] = h.TransactionID
	}
	lines, err := loadLines(ctx, q, ids)
	if err != nil {
		return nil, err
	}

	out := make([]domain.PostedTransaction, len(headers))
	for i, h := range headers {
		out[i] = mapping.ToDomainTransaction(h, lines[h.TransactionID])
	}
	return out, nil
}

func (r *PgxJournalRepository) findOne(ctx context.Context, where string, args ...any) (*domain.PostedTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM posted_transactions t WHERE ` + where + ` LIMIT 1;`
	txns, err := queryTransactions(ctx, r.Pool, query, args...)
	if err != nil {
		return nil, err
	}
	if len(txns) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &txns[0], nil
}

// FindTransactionByID retrieves a posted transaction with its lines.
func (r *PgxJournalRepository) FindTransactionByID(ctx context.Context, organizationID, transactionID string) (*domain.PostedTransaction, error) {
	return r.findOne(ctx, `t.organization_id = $1 AND t.transaction_id = $2`, organizationID, transactionID)
}

// FindTransactionByIdempotencyKey retrieves the transaction posted under key.
func (r *PgxJournalRepository) FindTransactionByIdempotencyKey(ctx context.Context, organizationID, key string) (*domain.PostedTransaction, error) {
	return r.findOne(ctx, `t.organization_id = $1 AND t.idempotency_key = $2`, organizationID, key)
}

// ListTransactions retrieves a page of transactions for an organization using token-based pagination.
func (r *PgxJournalRepository) ListTransactions(ctx context.Context, organizationID string, limit int, nextToken *string) ([]domain.PostedTransaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// One extra row tells us whether another page exists.
	fetchLimit := limit + 1

	query := `SELECT ` + transactionColumns + ` FROM posted_transactions t WHERE t.organization_id = $1`
	args := []any{organizationID}
	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, errors.Join(apperrors.ErrValidation, err)
		}
		query += ` AND (t.transaction_date, t.created_at, t.transaction_id) < ($2, $3, $4)`
		args = append(args, cursor.TransactionDate, cursor.CreatedAt, cursor.TransactionID)
	}
	query += ` ORDER BY t.transaction_date DESC, t.created_at DESC, t.transaction_id DESC LIMIT $` + strconv.Itoa(len(args)+1) + `;`
	args = append(args, fetchLimit)

	txns, err := queryTransactions(ctx, r.Pool, query, args...)
	if err != nil {
		return nil, nil, err
	}

	var next *string
	if len(txns) > limit {
		last := txns[limit-1]
		token := pagination.EncodeToken(pagination.Cursor{
			TransactionDate: last.TransactionDate,
			CreatedAt:       last.CreatedAt,
			TransactionID:   last.TransactionID,
		})
		next = &token
		txns = txns[:limit]
	}
	return txns, next, nil
}
