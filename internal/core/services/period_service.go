package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/mda_posting_engine/internal/apperrors"
	"github.com/SscSPs/mda_posting_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/mda_posting_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mda_posting_engine/internal/core/ports/services"
	"github.com/google/uuid"
)

// periodService gates posting dates against fiscal period state.
type periodService struct {
	BaseService
	repo            portsrepo.PeriodRepositoryFacade
	futureGraceDays int
	now             func() time.Time
}

// PeriodOption configures the period service.
type PeriodOption func(*periodService)

// WithPeriodClock overrides the time source used for the posting horizon.
func WithPeriodClock(now func() time.Time) PeriodOption {
	return func(s *periodService) {
		s.now = now
	}
}

// WithPeriodAuditor adds an audit sink.
func WithPeriodAuditor(auditor portssvc.Auditor) PeriodOption {
	return func(s *periodService) {
		s.Auditor = auditor
	}
}

// NewPeriodService creates the fiscal period gate. Dates on or after the first day of next
// month plus futureGraceDays are rejected.
func NewPeriodService(repo portsrepo.PeriodRepositoryFacade, futureGraceDays int, options ...PeriodOption) portssvc.PeriodSvc {
	svc := &periodService{
		repo:            repo,
		futureGraceDays: futureGraceDays,
		now:             time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.PeriodSvc = (*periodService)(nil)

// horizon is the first date that may not be posted.
func (s *periodService) horizon() time.Time {
	now := s.now().UTC()
	nextMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return nextMonth.AddDate(0, 0, s.futureGraceDays)
}

func (s *periodService) checkHorizon(date time.Time) error {
	limit := s.horizon()
	if !date.Before(limit) {
		err := apperrors.NewEngineError(apperrors.CodeFuturePeriodRejected,
			fmt.Sprintf("%s is after the posting horizon (last postable date %s)",
				date.Format("2006-01-02"), limit.AddDate(0, 0, -1).Format("2006-01-02")))
		err.Field = "transaction_date"
		return err
	}
	return nil
}

func gateStatus(period *domain.FiscalPeriod) error {
	switch period.Status {
	case domain.PeriodClosed:
		return apperrors.NewEngineError(apperrors.CodePeriodClosed,
			fmt.Sprintf("period %s is closed", period.PeriodCode))
	case domain.PeriodFutureBlocked:
		return apperrors.NewEngineError(apperrors.CodeFuturePeriodRejected,
			fmt.Sprintf("period %s is blocked for future postings", period.PeriodCode))
	}
	if !period.Status.Postable() {
		return apperrors.NewEngineError(apperrors.CodeInternal,
			fmt.Sprintf("period %s has unknown status %q", period.PeriodCode, period.Status))
	}
	return nil
}

func calendarDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ValidateForPosting resolves the period for date, creating it as current on first touch.
// On a gate failure the returned validation still carries the period when one exists.
func (s *periodService) ValidateForPosting(ctx context.Context, organizationID string, date time.Time, actor string) (*domain.PeriodValidation, error) {
	date = calendarDate(date)
	if err := s.checkHorizon(date); err != nil {
		return &domain.PeriodValidation{CanPost: false}, err
	}

	now := s.now().UTC()
	candidate := domain.NewFiscalPeriod(uuid.NewString(), organizationID, date, actor, now)
	period, created, err := s.repo.EnsurePeriod(ctx, candidate)
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve fiscal period",
			slog.String("organization_id", organizationID),
			slog.String("period_code", candidate.PeriodCode))
		return nil, err
	}
	if created {
		s.LogInfo(ctx, "Fiscal period created",
			slog.String("organization_id", organizationID),
			slog.String("period_code", period.PeriodCode))
		s.Audit(ctx, domain.AuditEntry{
			OrganizationID: organizationID,
			Actor:          actor,
			Action:         "period_created",
			Outcome:        "success",
			Severity:       domain.AuditInfo,
			TargetID:       period.PeriodCode,
		})
	}

	if err := gateStatus(period); err != nil {
		return &domain.PeriodValidation{CanPost: false, Period: period}, err
	}
	return &domain.PeriodValidation{CanPost: true, Period: period}, nil
}

// CheckForPosting answers the same question without creating anything.
func (s *periodService) CheckForPosting(ctx context.Context, organizationID string, date time.Time) (*domain.PeriodValidation, error) {
	date = calendarDate(date)
	if err := s.checkHorizon(date); err != nil {
		return &domain.PeriodValidation{CanPost: false}, err
	}

	code := domain.PeriodCodeFor(date)
	period, err := s.repo.FindPeriod(ctx, organizationID, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			draft := domain.NewFiscalPeriod("", organizationID, date, domain.SystemActor, s.now().UTC())
			return &domain.PeriodValidation{CanPost: true, Period: &draft, WouldCreate: true}, nil
		}
		s.LogError(ctx, err, "Failed to look up fiscal period",
			slog.String("organization_id", organizationID),
			slog.String("period_code", code))
		return nil, err
	}

	if err := gateStatus(period); err != nil {
		return &domain.PeriodValidation{CanPost: false, Period: period}, err
	}
	return &domain.PeriodValidation{CanPost: true, Period: period}, nil
}

// GetPeriod returns a stored period.
func (s *periodService) GetPeriod(ctx context.Context, organizationID, periodCode string) (*domain.FiscalPeriod, error) {
	if _, _, err := domain.PeriodBounds(periodCode); err != nil {
		return nil, apperrors.NewFieldError("period_code", "must be formatted YYYY-MM")
	}
	period, err := s.repo.FindPeriod(ctx, organizationID, periodCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.WrapEngineError(apperrors.CodeNotFound,
				fmt.Sprintf("period %s not found", periodCode), err)
		}
		return nil, err
	}
	return period, nil
}

// ClosePeriod moves a period to closed when expectedVersion is still current.
// Closing an already closed period at its current version is a no-op.
func (s *periodService) ClosePeriod(ctx context.Context, organizationID, periodCode string, expectedVersion int, actor string) (*domain.FiscalPeriod, error) {
	period, err := s.GetPeriod(ctx, organizationID, periodCode)
	if err != nil {
		return nil, err
	}
	if period.Version != expectedVersion {
		return nil, versionConflict(periodCode, expectedVersion, period.Version)
	}
	if period.Status == domain.PeriodClosed {
		return period, nil
	}

	updated, err := s.repo.UpdatePeriodStatus(ctx, organizationID, periodCode, domain.PeriodClosed, expectedVersion, actor, s.now().UTC())
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, versionConflict(periodCode, expectedVersion, -1)
		}
		s.LogError(ctx, err, "Failed to close fiscal period",
			slog.String("organization_id", organizationID),
			slog.String("period_code", periodCode))
		return nil, err
	}

	s.LogInfo(ctx, "Fiscal period closed",
		slog.String("organization_id", organizationID),
		slog.String("period_code", periodCode),
		slog.Int("version", updated.Version))
	s.Audit(ctx, domain.AuditEntry{
		OrganizationID: organizationID,
		Actor:          actor,
		Action:         "period_closed",
		Outcome:        "success",
		Severity:       domain.AuditCritical,
		TargetID:       periodCode,
	})
	return updated, nil
}

func versionConflict(periodCode string, expected, actual int) error {
	msg := fmt.Sprintf("period %s was modified concurrently (expected version %d)", periodCode, expected)
	if actual >= 0 {
		msg = fmt.Sprintf("period %s is at version %d, not %d", periodCode, actual, expected)
	}
	err := apperrors.WrapEngineError(apperrors.CodeVersionConflict, msg, apperrors.ErrConflict)
	err.Field = "expected_version"
	return err
}
