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

const periodColumns = `period_id, organization_id, period_code, fiscal_year, start_date, end_date,
	status, version, created_at, created_by, last_updated_at, last_updated_by`

type PgxPeriodRepository struct {
	BaseRepository
}

func newPgxPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodRepositoryFacade {
	return &PgxPeriodRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PeriodRepositoryFacade = (*PgxPeriodRepository)(nil)

func scanPeriod(row pgx.Row) (*domain.FiscalPeriod, error) {
	var m models.FiscalPeriod
	if err := row.Scan(
		&m.PeriodID,
		&m.OrganizationID,
		&m.PeriodCode,
		&m.FiscalYear,
		&m.StartDate,
		&m.EndDate,
		&m.Status,
		&m.Version,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	); err != nil {
		return nil, err
	}
	p := mapping.ToDomainPeriod(m)
	return &p, nil
}

// FindPeriod retrieves one organization-month.
func (r *PgxPeriodRepository) FindPeriod(ctx context.Context, organizationID, periodCode string) (*domain.FiscalPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM fiscal_periods WHERE organization_id = $1 AND period_code = $2;`
	p, err := scanPeriod(r.Pool.QueryRow(ctx, query, organizationID, periodCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find period "+periodCode, err)
	}
	return p, nil
}

// EnsurePeriod inserts the period unless one already exists and returns the stored row.
// Concurrent first touches race on the unique key; exactly one insert wins and the
// rest read the winner's row.
func (r *PgxPeriodRepository) EnsurePeriod(ctx context.Context, period domain.FiscalPeriod) (*domain.FiscalPeriod, bool, error) {
	m := mapping.ToModelPeriod(period)
	query := `
		INSERT INTO fiscal_periods (` + periodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (organization_id, period_code) DO NOTHING
		RETURNING ` + periodColumns + `;`
	stored, err := scanPeriod(r.Pool.QueryRow(ctx, query,
		m.PeriodID,
		m.OrganizationID,
		m.PeriodCode,
		m.FiscalYear,
		m.StartDate,
		m.EndDate,
		m.Status,
		m.Version,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	))
	if err == nil {
		return stored, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, apperrors.NewAppError(500, "failed to insert period "+period.PeriodCode, err)
	}

	existing, err := r.FindPeriod(ctx, period.OrganizationID, period.PeriodCode)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// UpdatePeriodStatus performs a version-checked status change.
func (r *PgxPeriodRepository) UpdatePeriodStatus(ctx context.Context, organizationID, periodCode string, status domain.PeriodStatus, expectedVersion int, actor string, at time.Time) (*domain.FiscalPeriod, error) {
	query := `
		UPDATE fiscal_periods
		SET status = $1, version = version + 1, last_updated_at = $2, last_updated_by = $3
		WHERE organization_id = $4 AND period_code = $5 AND version = $6
		RETURNING ` + periodColumns + `;`
	p, err := scanPeriod(r.Pool.QueryRow(ctx, query, string(status), at, actor, organizationID, periodCode, expectedVersion))
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewAppError(500, "failed to update period "+periodCode, err)
	}

	// No row matched: either the period is missing or the version moved.
	if _, findErr := r.FindPeriod(ctx, organizationID, periodCode); findErr != nil {
		return nil, findErr
	}
	return nil, apperrors.ErrConflict
}
