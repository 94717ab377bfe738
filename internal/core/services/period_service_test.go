package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/mda_posting_engine/internal/apperrors"
	"github.com/SscSPs/mda_posting_engine/internal/core/domain"
	portssvc "github.com/SscSPs/mda_posting_engine/internal/core/ports/services"
	"github.com/SscSPs/mda_posting_engine/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type PeriodServiceTestSuite struct {
	suite.Suite
	repo    *memPeriodRepo
	auditor *recordingAuditor
	svc     portssvc.PeriodSvc
}

func (suite *PeriodServiceTestSuite) SetupTest() {
	suite.repo = newMemPeriodRepo()
	suite.auditor = &recordingAuditor{}
	suite.svc = services.NewPeriodService(suite.repo, 0,
		services.WithPeriodClock(clock), services.WithPeriodAuditor(suite.auditor))
}

func (suite *PeriodServiceTestSuite) TestValidateForPosting_CreatesCurrentPeriodOnFirstTouch() {
	result, err := suite.svc.ValidateForPosting(context.Background(), testOrgID, day(2025, time.October, 3), "user-1")

	suite.Require().NoError(err)
	suite.True(result.CanPost)
	suite.Require().NotNil(result.Period)
	suite.Equal("2025-10", result.Period.PeriodCode)
	suite.Equal(2025, result.Period.FiscalYear)
	suite.Equal(domain.PeriodCurrent, result.Period.Status)
	suite.Equal(1, result.Period.Version)
	suite.Equal(day(2025, time.October, 31), result.Period.EndDate)
	suite.Len(suite.auditor.actions("period_created"), 1)
}

func (suite *PeriodServiceTestSuite) TestValidateForPosting_HorizonIsEndOfCurrentMonth() {
	_, err := suite.svc.ValidateForPosting(context.Background(), testOrgID, day(2025, time.October, 31), "user-1")
	suite.NoError(err)

	_, err = suite.svc.ValidateForPosting(context.Background(), testOrgID, day(2025, time.November, 1), "user-1")
	suite.ErrorIs(err, apperrors.ErrFuturePeriodRejected)
	suite.Equal(1, suite.repo.count())
}

func (suite *PeriodServiceTestSuite) TestValidateForPosting_GraceDaysExtendHorizon() {
	svc := services.NewPeriodService(suite.repo, 3, services.WithPeriodClock(clock))

	_, err := svc.ValidateForPosting(context.Background(), testOrgID, day(2025, time.November, 3), "user-1")
	suite.NoError(err)

	_, err = svc.ValidateForPosting(context.Background(), testOrgID, day(2025, time.November, 4), "user-1")
	suite.ErrorIs(err, apperrors.ErrFuturePeriodRejected)
}

func (suite *PeriodServiceTestSuite) TestValidateForPosting_ClosedAndBlocked() {
	suite.repo.seed("2025-08", domain.PeriodClosed)
	suite.repo.seed("2025-09", domain.PeriodFutureBlocked)

	result, err := suite.svc.ValidateForPosting(context.Background(), testOrgID, day(2025, time.August, 12), "user-1")
	suite.ErrorIs(err, apperrors.ErrPeriodClosed)
	suite.False(result.CanPost)
	suite.NotNil(result.Period)

	_, err = suite.svc.ValidateForPosting(context.Background(), testOrgID, day(2025, time.September, 12), "user-1")
	suite.ErrorIs(err, apperrors.ErrFuturePeriodRejected)
}

func (suite *PeriodServiceTestSuite) TestValidateForPosting_OpenPeriodIsPostable() {
	suite.repo.seed("2025-07", domain.PeriodOpen)

	result, err := suite.svc.ValidateForPosting(context.Background(), testOrgID, day(2025, time.July, 1), "user-1")

	suite.Require().NoError(err)
	suite.True(result.CanPost)
	suite.Empty(suite.auditor.actions("period_created"))
}

func (suite *PeriodServiceTestSuite) TestCheckForPosting_NeverCreates() {
	result, err := suite.svc.CheckForPosting(context.Background(), testOrgID, day(2025, time.October, 3))

	suite.Require().NoError(err)
	suite.True(result.CanPost)
	suite.True(result.WouldCreate)
	suite.Zero(suite.repo.count())
}

func (suite *PeriodServiceTestSuite) TestClosePeriod_VersionedTransition() {
	suite.repo.seed("2025-09", domain.PeriodCurrent)

	closed, err := suite.svc.ClosePeriod(context.Background(), testOrgID, "2025-09", 1, "controller")
	suite.Require().NoError(err)
	suite.Equal(domain.PeriodClosed, closed.Status)
	suite.Equal(2, closed.Version)
	suite.Equal("controller", closed.LastUpdatedBy)

	critical := suite.auditor.actions("period_closed")
	suite.Require().Len(critical, 1)
	suite.Equal(domain.AuditCritical, critical[0].Severity)

	_, err = suite.svc.ClosePeriod(context.Background(), testOrgID, "2025-09", 1, "controller")
	suite.True(apperrors.IsCode(err, apperrors.CodeVersionConflict))
}

func (suite *PeriodServiceTestSuite) TestGetPeriod_Errors() {
	_, err := suite.svc.GetPeriod(context.Background(), testOrgID, "2025/09")
	suite.ErrorIs(err, apperrors.ErrSchemaViolation)

	_, err = suite.svc.GetPeriod(context.Background(), testOrgID, "2024-01")
	suite.True(apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestPeriodService(t *testing.T) {
	suite.Run(t, new(PeriodServiceTestSuite))
}

func TestValidateForPosting_ConcurrentFirstTouchCreatesOneRecord(t *testing.T) {
	repo := newMemPeriodRepo()
	auditor := &recordingAuditor{}
	svc := services.NewPeriodService(repo, 0, services.WithPeriodClock(clock), services.WithPeriodAuditor(auditor))

	const workers = 64
	ids := make([]string, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			result, err := svc.ValidateForPosting(context.Background(), testOrgID, day(2025, time.October, 9), "user-1")
			errs[i] = err
			if err == nil {
				ids[i] = result.Period.PeriodID
			}
		}(i)
	}
	close(start)
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, 1, repo.count())
	assert.Equal(t, 1, repo.inserts)
	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
	assert.Len(t, auditor.actions("period_created"), 1)
}
