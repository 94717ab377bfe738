package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/mda_posting_engine/internal/core/domain"
)

// PeriodReader defines read operations for fiscal periods.
type PeriodReader interface {
	// FindPeriod returns the period or apperrors.ErrNotFound.
	FindPeriod(ctx context.Context, organizationID, periodCode string) (*domain.FiscalPeriod, error)
}

// PeriodWriter defines write operations for fiscal periods.
type PeriodWriter interface {
	// EnsurePeriod atomically inserts the period if no record exists for (organization, period code)
	// and returns the stored record. created is true only for the caller whose insert won.
	EnsurePeriod(ctx context.Context, period domain.FiscalPeriod) (stored *domain.FiscalPeriod, created bool, err error)

	// UpdatePeriodStatus moves a period to status if its version still equals expectedVersion.
	// A stale version yields apperrors.ErrConflict.
	UpdatePeriodStatus(ctx context.Context, organizationID, periodCode string, status domain.PeriodStatus, expectedVersion int, actor string, at time.Time) (*domain.FiscalPeriod, error)
}

// PeriodRepositoryFacade combines period read and write operations.
type PeriodRepositoryFacade interface {
	PeriodReader
	PeriodWriter
}
