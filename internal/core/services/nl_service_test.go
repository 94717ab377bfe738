package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/mda_posting_engine/internal/apperrors"
	"github.com/SscSPs/mda_posting_engine/internal/core/domain"
	portssvc "github.com/SscSPs/mda_posting_engine/internal/core/ports/services"
	"github.com/SscSPs/mda_posting_engine/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type NLServiceTestSuite struct {
	suite.Suite
	posting *MockPostingWriter
	auditor *recordingAuditor
	svc     portssvc.NLSvc
}

func (suite *NLServiceTestSuite) SetupTest() {
	suite.posting = new(MockPostingWriter)
	suite.auditor = &recordingAuditor{}
	suite.svc = services.NewNLService(suite.posting, services.NewConfigSnapshotService(newFixtureConfigRepo(), time.Minute), suite.auditor)
}

func (suite *NLServiceTestSuite) TestHandleCommand_DryRunPreviewsDraft() {
	preview := &domain.PostingOutcome{DryRun: true}
	suite.posting.On("Preview", mock.Anything, mock.MatchedBy(func(e domain.FinanceEvent) bool {
		return e.SmartCode == domain.SmartCodeSalaryExpense &&
			e.TotalAmount.Equal(dec("15000")) &&
			e.TransactionCurrency == "AED" &&
			e.TransactionDate.Equal(day(2025, time.October, 5)) &&
			len(e.Lines) == 0 &&
			e.Metadata.SourceSystem == "nl"
	}), "user-1").Return(preview, nil).Once()

	outcome, err := suite.svc.HandleCommand(context.Background(), testOrgID,
		"Paid stylist salary AED 15,000 on 2025-10-05", true, "user-1")

	suite.Require().NoError(err)
	suite.Equal("SALARY", outcome.Parse.Category)
	suite.Require().NotNil(outcome.Draft)
	suite.Same(preview, outcome.Posting)
	suite.posting.AssertNotCalled(suite.T(), "Post", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *NLServiceTestSuite) TestHandleCommand_PostsWhenNotDryRun() {
	suite.posting.On("Post", mock.Anything, mock.AnythingOfType("domain.FinanceEvent"), "user-1").
		Return(&domain.PostingOutcome{}, nil).Once()

	_, err := suite.svc.HandleCommand(context.Background(), testOrgID, "Paid rent 4000 on 1 Oct", false, "user-1")

	suite.Require().NoError(err)
	suite.posting.AssertExpectations(suite.T())
}

func (suite *NLServiceTestSuite) TestHandleCommand_CouldNotClassify() {
	outcome, err := suite.svc.HandleCommand(context.Background(), testOrgID, "Paid salery 500", true, "user-1")

	suite.ErrorIs(err, apperrors.ErrCouldNotClassify)
	suite.Require().NotNil(outcome)
	suite.Equal(domain.ParseCouldNotClassify, outcome.Parse.Status)
	suite.Contains(outcome.Parse.Suggestions, "SALARY")
	suite.Nil(outcome.Draft)
	suite.Len(suite.auditor.actions("nl_command"), 1)
	suite.posting.AssertNotCalled(suite.T(), "Preview", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *NLServiceTestSuite) TestHandleCommand_ContradictingVerbDoesNotPost() {
	outcome, err := suite.svc.HandleCommand(context.Background(), testOrgID, "Paid AED 800 for cleaning service on 2025-10-03", false, "user-1")

	suite.ErrorIs(err, apperrors.ErrCouldNotClassify)
	suite.Require().NotNil(outcome)
	suite.Equal(domain.OperationExpense, outcome.Parse.Operation)
	suite.NotContains(outcome.Parse.Suggestions, "SERVICE")
	suite.Nil(outcome.Draft)
	suite.posting.AssertNotCalled(suite.T(), "Post", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *NLServiceTestSuite) TestHandleCommand_ExcessDecimalsReachTheValidator() {
	var drafted domain.FinanceEvent
	suite.posting.On("Preview", mock.Anything, mock.AnythingOfType("domain.FinanceEvent"), "user-1").
		Run(func(args mock.Arguments) { drafted = args.Get(1).(domain.FinanceEvent) }).
		Return(nil, apperrors.NewFieldError("total_amount", "must have at most two decimal places")).Once()

	outcome, err := suite.svc.HandleCommand(context.Background(), testOrgID, "Paid AED 10.555 for office supplies on 2025-10-03", true, "user-1")

	var engineErr *apperrors.EngineError
	suite.Require().ErrorAs(err, &engineErr)
	suite.Equal("total_amount", engineErr.Field)
	suite.Nil(outcome.Posting)
	suite.True(drafted.TotalAmount.Equal(dec("10.555")))
	suite.Error(services.NewEventValidator(services.DefaultMaxEventAmount).Validate(drafted))
}

func (suite *NLServiceTestSuite) TestHandleCommand_MissingAmount() {
	_, err := suite.svc.HandleCommand(context.Background(), testOrgID, "Paid rent", true, "user-1")

	var engineErr *apperrors.EngineError
	suite.Require().ErrorAs(err, &engineErr)
	suite.Equal("amount", engineErr.Field)
}

func (suite *NLServiceTestSuite) TestHandleCommand_ForeignCurrencyNeedsStructuredEvent() {
	_, err := suite.svc.HandleCommand(context.Background(), testOrgID, "Paid rent USD 4000", true, "user-1")

	var engineErr *apperrors.EngineError
	suite.Require().ErrorAs(err, &engineErr)
	suite.Equal("exchange_rate", engineErr.Field)
}

func (suite *NLServiceTestSuite) TestHandleCommand_EndOfDayDraftCarriesVAT() {
	suite.posting.On("Preview", mock.Anything, mock.MatchedBy(func(e domain.FinanceEvent) bool {
		p, ok := e.Payload.(domain.SalesPayload)
		return ok && p.CardSettlement.Equal(dec("1050")) && p.VATCollected.Equal(dec("50"))
	}), "user-1").Return(&domain.PostingOutcome{DryRun: true}, nil).Once()

	_, err := suite.svc.HandleCommand(context.Background(), testOrgID, "End of day 1050 card", true, "user-1")

	suite.Require().NoError(err)
	suite.posting.AssertExpectations(suite.T())
}

func (suite *NLServiceTestSuite) TestHandleCommand_RejectsEmptyText() {
	_, err := suite.svc.HandleCommand(context.Background(), testOrgID, "<b></b>", true, "user-1")

	suite.ErrorIs(err, apperrors.ErrSchemaViolation)
}

func TestNLService(t *testing.T) {
	suite.Run(t, new(NLServiceTestSuite))
}
