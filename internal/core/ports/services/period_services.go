package services

import (
	"context"
	"time"

	"github.com/SscSPs/mda_posting_engine/internal/core/domain"
)

// PeriodSvc gates postings by fiscal period state.
type PeriodSvc interface {
	// ValidateForPosting resolves or lazily creates the period for date and reports whether it is postable.
	ValidateForPosting(ctx context.Context, organizationID string, date time.Time, actor string) (*domain.PeriodValidation, error)

	// CheckForPosting is the read-only variant used by previews; it never creates a period.
	CheckForPosting(ctx context.Context, organizationID string, date time.Time) (*domain.PeriodValidation, error)

	GetPeriod(ctx context.Context, organizationID, periodCode string) (*domain.FiscalPeriod, error)

	// ClosePeriod transitions a period to closed if expectedVersion is still current.
	ClosePeriod(ctx context.Context, organizationID, periodCode string, expectedVersion int, actor string) (*domain.FiscalPeriod, error)
}
