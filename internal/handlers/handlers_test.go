package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/mda_posting_engine/internal/apperrors"
	"github.com/SscSPs/mda_posting_engine/internal/core/domain"
	portssvc "github.com/SscSPs/mda_posting_engine/internal/core/ports/services"
	"github.com/SscSPs/mda_posting_engine/internal/dto"
	"github.com/SscSPs/mda_posting_engine/internal/handlers"
	"github.com/SscSPs/mda_posting_engine/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const testOrgID = "00000000-0000-4000-8000-000000000001"

// --- Mock PostingService ---
type MockPostingService struct {
	mock.Mock
}

func (m *MockPostingService) Post(ctx context.Context, event domain.FinanceEvent, actor string) (*domain.PostingOutcome, error) {
	args := m.Called(ctx, event, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingOutcome), args.Error(1)
}

func (m *MockPostingService) Preview(ctx context.Context, event domain.FinanceEvent, actor string) (*domain.PostingOutcome, error) {
	args := m.Called(ctx, event, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingOutcome), args.Error(1)
}

func (m *MockPostingService) GetTransaction(ctx context.Context, organizationID, transactionID string) (*domain.PostedTransaction, error) {
	args := m.Called(ctx, organizationID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostedTransaction), args.Error(1)
}

func (m *MockPostingService) ListTransactions(ctx context.Context, organizationID string, limit int, nextToken *string) ([]domain.PostedTransaction, *string, error) {
	args := m.Called(ctx, organizationID, limit, nextToken)
	var txns []domain.PostedTransaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.PostedTransaction)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return txns, token, args.Error(2)
}

var _ portssvc.PostingSvcFacade = (*MockPostingService)(nil)

// --- Mock PeriodService ---
type MockPeriodService struct {
	mock.Mock
}

func (m *MockPeriodService) ValidateForPosting(ctx context.Context, organizationID string, date time.Time, actor string) (*domain.PeriodValidation, error) {
	args := m.Called(ctx, organizationID, date, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PeriodValidation), args.Error(1)
}

func (m *MockPeriodService) CheckForPosting(ctx context.Context, organizationID string, date time.Time) (*domain.PeriodValidation, error) {
	args := m.Called(ctx, organizationID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PeriodValidation), args.Error(1)
}

func (m *MockPeriodService) GetPeriod(ctx context.Context, organizationID, periodCode string) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, organizationID, periodCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockPeriodService) ClosePeriod(ctx context.Context, organizationID, periodCode string, expectedVersion int, actor string) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, organizationID, periodCode, expectedVersion, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

var _ portssvc.PeriodSvc = (*MockPeriodService)(nil)

// --- Mock POSService ---
type MockPOSService struct {
	mock.Mock
}

func (m *MockPOSService) ProcessDailySummary(ctx context.Context, summary domain.POSDailySummary, actor string) (*domain.POSResult, error) {
	args := m.Called(ctx, summary, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.POSResult), args.Error(1)
}

var _ portssvc.POSSvc = (*MockPOSService)(nil)

// --- Mock NLService ---
type MockNLService struct {
	mock.Mock
}

func (m *MockNLService) HandleCommand(ctx context.Context, organizationID, description string, dryRun bool, actor string) (*domain.NLOutcome, error) {
	args := m.Called(ctx, organizationID, description, dryRun, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NLOutcome), args.Error(1)
}

var _ portssvc.NLSvc = (*MockNLService)(nil)

// --- Test Suite ---
type HandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockPosting *MockPostingService
	mockPeriod  *MockPeriodService
	mockPOS     *MockPOSService
	mockNL      *MockNLService
	jwtSecret   string
	token       string
}

const testUserID = "user-1"

// generateTestToken creates a dummy JWT for testing.
func (suite *HandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "mda-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.token = suite.generateTestToken(testUserID)

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockPosting = new(MockPostingService)
	suite.mockPeriod = new(MockPeriodService)
	suite.mockPOS = new(MockPOSService)
	suite.mockNL = new(MockNLService)

	org := suite.router.Group("/api/v1/organizations/:organization_id")
	handlers.RegisterPostingRoutes(org, suite.mockPosting)
	handlers.RegisterNLRoutes(org, suite.mockNL)
	handlers.RegisterPeriodRoutes(org, suite.mockPeriod)
	handlers.RegisterPOSRoutes(org, suite.mockPOS)
}

func (suite *HandlerTestSuite) TearDownTest() {
	suite.mockPosting.AssertExpectations(suite.T())
	suite.mockPeriod.AssertExpectations(suite.T())
	suite.mockPOS.AssertExpectations(suite.T())
	suite.mockNL.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) do(method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
		}
	}
	req, err := http.NewRequest(method, path, &buf)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.token)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) decodeError(w *httptest.ResponseRecorder) dto.ErrorBody {
	var resp dto.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.Success)
	return resp.Error
}

func orgPath(suffix string) string {
	return "/api/v1/organizations/" + testOrgID + suffix
}

func salaryRequest() map[string]any {
	return map[string]any{
		"smart_code":           "FIN.EXP.SALARY.STAFF.v1",
		"transaction_date":     "2025-10-05",
		"total_amount":         "15000",
		"transaction_currency": "AED",
		"metadata":             map[string]any{"source_system": "payroll", "idempotency_key": "body-key"},
	}
}

func sampleTransaction() domain.PostedTransaction {
	amount := decimal.NewFromInt(15000)
	return domain.PostedTransaction{
		TransactionID:   "txn-1",
		EventID:         "evt-1",
		OrganizationID:  testOrgID,
		PeriodCode:      "2025-10",
		SmartCode:       domain.SmartCodeSalaryExpense,
		TransactionDate: time.Date(2025, 10, 5, 0, 0, 0, 0, time.UTC),
		Currency:        "AED",
		BaseCurrency:    "AED",
		ExchangeRate:    decimal.NewFromInt(1),
		TotalAmount:     amount,
		Status:          domain.Posted,
		TotalDebit:      amount,
		TotalCredit:     amount,
		Lines: []domain.GLLine{
			{LineNumber: 1, AccountCode: "6100", Debit: amount, Credit: decimal.Zero, DebitBase: amount, CreditBase: decimal.Zero},
			{LineNumber: 2, AccountCode: "1000", Debit: decimal.Zero, Credit: amount, DebitBase: decimal.Zero, CreditBase: amount},
		},
	}
}

// --- Posting ---

func (suite *HandlerTestSuite) TestPostEvent_Created() {
	outcome := &domain.PostingOutcome{Transaction: sampleTransaction(), SnapshotVersion: "v1"}
	suite.mockPosting.On("Post", mock.Anything, mock.MatchedBy(func(e domain.FinanceEvent) bool {
		return e.OrganizationID == testOrgID &&
			e.SmartCode == domain.SmartCodeSalaryExpense &&
			e.TotalAmount.Equal(decimal.NewFromInt(15000)) &&
			e.TransactionDate.Equal(time.Date(2025, 10, 5, 0, 0, 0, 0, time.UTC)) &&
			e.Metadata.IdempotencyKey == "body-key"
	}), testUserID).Return(outcome, nil).Once()

	w := suite.do(http.MethodPost, orgPath("/events"), salaryRequest(), nil)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.PostingResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Success)
	suite.Equal("txn-1", resp.Transaction.TransactionID)
	suite.Len(resp.Transaction.Lines, 2)
	suite.True(resp.Transaction.TotalDebit.Equal(resp.Transaction.TotalCredit))
}

func (suite *HandlerTestSuite) TestPostEvent_ReplayUsesHeaderKey() {
	outcome := &domain.PostingOutcome{Transaction: sampleTransaction(), Replayed: true}
	suite.mockPosting.On("Post", mock.Anything, mock.MatchedBy(func(e domain.FinanceEvent) bool {
		return e.Metadata.IdempotencyKey == "header-key"
	}), testUserID).Return(outcome, nil).Once()

	w := suite.do(http.MethodPost, orgPath("/events"), salaryRequest(), map[string]string{
		handlers.IdempotencyKeyHeader: "header-key",
	})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.PostingResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Replayed)
}

func (suite *HandlerTestSuite) TestPostEvent_Unauthorized() {
	suite.token = ""
	w := suite.do(http.MethodPost, orgPath("/events"), salaryRequest(), map[string]string{"Authorization": ""})
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestPostEvent_InvalidOrganizationID() {
	w := suite.do(http.MethodPost, "/api/v1/organizations/not-a-uuid/events", salaryRequest(), nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	body := suite.decodeError(w)
	suite.Equal("SchemaViolation", body.Code)
	suite.Equal("organization_id", body.Field)
}

func (suite *HandlerTestSuite) TestPostEvent_BindFailure() {
	req := salaryRequest()
	delete(req, "smart_code")

	w := suite.do(http.MethodPost, orgPath("/events"), req, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	body := suite.decodeError(w)
	suite.Equal("SchemaViolation", body.Code)
	suite.Equal("input", body.Category)
}

func (suite *HandlerTestSuite) TestPostEvent_ErrorMapping() {
	testCases := []struct {
		name         string
		err          error
		wantStatus   int
		wantCode     string
		wantCategory string
		wantField    string
		wantMessage  string
	}{
		{"field error", apperrors.NewFieldError("exchange_rate", "must be greater than zero"), http.StatusBadRequest, "SchemaViolation", "input", "exchange_rate", "must be greater than zero"},
		{"closed period", apperrors.NewEngineError(apperrors.CodePeriodClosed, "period 2025-09 is closed"), http.StatusConflict, "PeriodClosed", "period", "", "period 2025-09 is closed"},
		{"future period", apperrors.NewEngineError(apperrors.CodeFuturePeriodRejected, "too far ahead"), http.StatusUnprocessableEntity, "FuturePeriodRejected", "period", "", "too far ahead"},
		{"missing rule", apperrors.NewEngineError(apperrors.CodeMissingPostingConfiguration, "no rule"), http.StatusUnprocessableEntity, "MissingPostingConfiguration", "configuration", "", "no rule"},
		{"unbalanced", apperrors.NewEngineError(apperrors.CodeUnbalancedJournal, "off by 0.10"), http.StatusUnprocessableEntity, "UnbalancedJournal", "invariant", "", "off by 0.10"},
		{"retry exhausted", apperrors.WrapEngineError(apperrors.CodeRetryExhausted, "storage unavailable", errors.New("conn refused")), http.StatusServiceUnavailable, "RetryExhausted", "transient", "", "storage unavailable"},
		{"idempotency conflict", apperrors.NewEngineError(apperrors.CodeIdempotencyConflict, "key reused"), http.StatusConflict, "IdempotencyConflict", "conflict", "", "key reused"},
		{"internal", errors.New("pq: relation does not exist"), http.StatusInternalServerError, "Internal", "internal", "", "internal error"},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.mockPosting.On("Post", mock.Anything, mock.Anything, testUserID).Return(nil, tc.err).Once()

			w := suite.do(http.MethodPost, orgPath("/events"), salaryRequest(), nil)

			suite.Equal(tc.wantStatus, w.Code)
			body := suite.decodeError(w)
			suite.Equal(tc.wantCode, body.Code)
			suite.Equal(tc.wantCategory, body.Category)
			suite.Equal(tc.wantField, body.Field)
			suite.Equal(tc.wantMessage, body.Message)
		})
	}
}

func (suite *HandlerTestSuite) TestPreviewEvent() {
	txn := sampleTransaction()
	txn.Status = domain.Preview
	outcome := &domain.PostingOutcome{Transaction: txn, DryRun: true}
	suite.mockPosting.On("Preview", mock.Anything, mock.AnythingOfType("domain.FinanceEvent"), testUserID).Return(outcome, nil).Once()

	w := suite.do(http.MethodPost, orgPath("/events/preview"), salaryRequest(), nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.PostingResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.DryRun)
	suite.Equal("PREVIEW", resp.Transaction.Status)
}

func (suite *HandlerTestSuite) TestGetTransaction() {
	txn := sampleTransaction()
	suite.mockPosting.On("GetTransaction", mock.Anything, testOrgID, "txn-1").Return(&txn, nil).Once()

	w := suite.do(http.MethodGet, orgPath("/transactions/txn-1"), nil, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("2025-10-05", resp.TransactionDate)
	suite.Equal("2025-10", resp.PeriodCode)
}

func (suite *HandlerTestSuite) TestGetTransaction_NotFound() {
	notFound := apperrors.WrapEngineError(apperrors.CodeNotFound, "transaction missing not found", apperrors.ErrNotFound)
	suite.mockPosting.On("GetTransaction", mock.Anything, testOrgID, "missing").Return(nil, notFound).Once()

	w := suite.do(http.MethodGet, orgPath("/transactions/missing"), nil, nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("NotFound", suite.decodeError(w).Code)
}

func (suite *HandlerTestSuite) TestListTransactions_PassesToken() {
	next := "next-page"
	suite.mockPosting.On("ListTransactions", mock.Anything, testOrgID, 2, mock.MatchedBy(func(tok *string) bool {
		return tok != nil && *tok == "abc"
	})).Return([]domain.PostedTransaction{sampleTransaction()}, &next, nil).Once()

	w := suite.do(http.MethodGet, orgPath("/transactions?limit=2&next_token=abc"), nil, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListTransactionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Transactions, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal("next-page", *resp.NextToken)
}

func (suite *HandlerTestSuite) TestListTransactions_FirstPageHasNilToken() {
	suite.mockPosting.On("ListTransactions", mock.Anything, testOrgID, 0, (*string)(nil)).
		Return([]domain.PostedTransaction{}, nil, nil).Once()

	w := suite.do(http.MethodGet, orgPath("/transactions"), nil, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.NotContains(w.Body.String(), "next_token")
}

func (suite *HandlerTestSuite) TestListTransactions_LimitOutOfRange() {
	w := suite.do(http.MethodGet, orgPath("/transactions?limit=500"), nil, nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

// --- NL ---

func (suite *HandlerTestSuite) TestNLCommand_DryRun() {
	txn := sampleTransaction()
	draft := domain.FinanceEvent{EventID: "evt-1", SmartCode: domain.SmartCodeSalaryExpense, TransactionDate: txn.TransactionDate, TotalAmount: txn.TotalAmount, TransactionCurrency: "AED", BaseCurrency: "AED"}
	outcome := &domain.NLOutcome{
		Parse: domain.ParseResult{
			Status:    domain.ParseClassified,
			Operation: domain.OperationExpense,
			Amount:    txn.TotalAmount,
			Currency:  "AED",
			Date:      txn.TransactionDate,
			Category:  "SALARY",
			SmartCode: domain.SmartCodeSalaryExpense,
		},
		Draft:   &draft,
		Posting: &domain.PostingOutcome{Transaction: txn, DryRun: true},
	}
	suite.mockNL.On("HandleCommand", mock.Anything, testOrgID, "Paid salary 15000 AED on 5 Oct", true, testUserID).Return(outcome, nil).Once()

	w := suite.do(http.MethodPost, orgPath("/nl/commands"), dto.NLCommandRequest{Description: "Paid salary 15000 AED on 5 Oct", DryRun: true}, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.NLCommandResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Success)
	suite.Equal("SALARY", resp.Parse.Category)
	suite.Equal("2025-10-05", resp.Parse.Date)
	suite.Require().NotNil(resp.Draft)
	suite.Equal("FIN.EXP.SALARY.STAFF.v1", resp.Draft.SmartCode)
}

func (suite *HandlerTestSuite) TestNLCommand_CouldNotClassify() {
	outcome := &domain.NLOutcome{Parse: domain.ParseResult{
		Status:      domain.ParseCouldNotClassify,
		Suggestions: []string{"SALARY", "SUPPLIES"},
	}}
	suite.mockNL.On("HandleCommand", mock.Anything, testOrgID, "Paid salry 100", false, testUserID).
		Return(outcome, apperrors.NewEngineError(apperrors.CodeCouldNotClassify, "no category keyword found")).Once()

	w := suite.do(http.MethodPost, orgPath("/nl/commands"), dto.NLCommandRequest{Description: "Paid salry 100"}, nil)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	var resp dto.NLCommandResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.Success)
	suite.Require().NotNil(resp.Error)
	suite.Equal("CouldNotClassify", resp.Error.Code)
	suite.Equal("ambiguity", resp.Error.Category)
	suite.Equal([]string{"SALARY", "SUPPLIES"}, resp.Parse.Suggestions)
	suite.Nil(resp.Posting)
}

func (suite *HandlerTestSuite) TestNLCommand_MissingDescription() {
	w := suite.do(http.MethodPost, orgPath("/nl/commands"), `{"dry_run": true}`, nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

// --- Periods ---

func (suite *HandlerTestSuite) TestValidatePeriod_Closed() {
	period := domain.NewFiscalPeriod("p-1", testOrgID, time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC), testUserID, time.Now())
	period.Status = domain.PeriodClosed
	suite.mockPeriod.On("ValidateForPosting", mock.Anything, testOrgID, time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC), testUserID).
		Return(&domain.PeriodValidation{CanPost: false, Period: &period},
			apperrors.NewEngineError(apperrors.CodePeriodClosed, "period 2025-09 is closed")).Once()

	w := suite.do(http.MethodPost, orgPath("/periods/validate"), dto.ValidatePeriodRequest{Date: "2025-09-10"}, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ValidatePeriodResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.CanPost)
	suite.Require().NotNil(resp.Period)
	suite.Equal("closed", resp.Period.Status)
	suite.Require().NotNil(resp.Error)
	suite.Equal("PeriodClosed", resp.Error.Code)
}

func (suite *HandlerTestSuite) TestValidatePeriod_BadDate() {
	w := suite.do(http.MethodPost, orgPath("/periods/validate"), dto.ValidatePeriodRequest{Date: "10/09/2025"}, nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestClosePeriod() {
	period := domain.NewFiscalPeriod("p-1", testOrgID, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), testUserID, time.Now())
	period.Status = domain.PeriodClosed
	period.Version = 2
	suite.mockPeriod.On("ClosePeriod", mock.Anything, testOrgID, "2025-09", 1, testUserID).Return(&period, nil).Once()

	w := suite.do(http.MethodPost, orgPath("/periods/2025-09/close"), dto.ClosePeriodRequest{ExpectedVersion: 1}, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.PeriodResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(2, resp.Version)
	suite.Equal("2025-09-30", resp.EndDate)
}

func (suite *HandlerTestSuite) TestClosePeriod_VersionConflict() {
	suite.mockPeriod.On("ClosePeriod", mock.Anything, testOrgID, "2025-09", 1, testUserID).
		Return(nil, apperrors.NewEngineError(apperrors.CodeVersionConflict, "expected version 1, found 2")).Once()

	w := suite.do(http.MethodPost, orgPath("/periods/2025-09/close"), dto.ClosePeriodRequest{ExpectedVersion: 1}, nil)

	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("VersionConflict", suite.decodeError(w).Code)
}

func (suite *HandlerTestSuite) TestClosePeriod_BadCode() {
	w := suite.do(http.MethodPost, orgPath("/periods/September/close"), dto.ClosePeriodRequest{ExpectedVersion: 1}, nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

// --- POS ---

func posRequest() dto.DailySummaryRequest {
	return dto.DailySummaryRequest{
		BusinessDate:   "2025-10-14",
		Currency:       "AED",
		CashCollected:  decimal.NewFromInt(600),
		CardSettlement: decimal.NewFromInt(450),
		GrossSales:     decimal.NewFromInt(1050),
		VATCollected:   decimal.NewFromInt(50),
		Commissions: []dto.StaffCommissionRequest{
			{StaffID: "staff-a", Amount: decimal.NewFromInt(30)},
		},
	}
}

func (suite *HandlerTestSuite) TestPOSDailySummary_Created() {
	result := &domain.POSResult{
		Success:        true,
		JournalEntries: []domain.PostedTransaction{sampleTransaction(), sampleTransaction()},
		CommissionAccruals: []domain.CommissionAccrual{
			{StaffID: "staff-a", Amount: decimal.NewFromInt(30), TransactionID: "txn-2"},
		},
		Totals: domain.POSTotals{GrossSales: decimal.NewFromInt(1050), NetSales: decimal.NewFromInt(1000)},
	}
	suite.mockPOS.On("ProcessDailySummary", mock.Anything, mock.MatchedBy(func(s domain.POSDailySummary) bool {
		return s.OrganizationID == testOrgID &&
			s.BusinessDate.Equal(time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC)) &&
			len(s.Commissions) == 1 &&
			s.TenderTotal().Equal(decimal.NewFromInt(1050))
	}), testUserID).Return(result, nil).Once()

	w := suite.do(http.MethodPost, orgPath("/pos/daily-summaries"), posRequest(), nil)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.POSResultResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Success)
	suite.Len(resp.JournalEntries, 2)
	suite.True(resp.Totals.NetSales.Equal(decimal.NewFromInt(1000)))
	suite.Equal("txn-2", resp.CommissionAccruals[0].TransactionID)
}

func (suite *HandlerTestSuite) TestPOSDailySummary_Mismatch() {
	result := &domain.POSResult{Success: false, ValidationErrors: []string{"tender total 1000.00 does not match gross sales 1050.00"}}
	suite.mockPOS.On("ProcessDailySummary", mock.Anything, mock.AnythingOfType("domain.POSDailySummary"), testUserID).
		Return(result, apperrors.NewEngineError(apperrors.CodeReconciliationMismatch, "tenders do not reconcile")).Once()

	w := suite.do(http.MethodPost, orgPath("/pos/daily-summaries"), posRequest(), nil)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	var resp dto.POSResultResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.Success)
	suite.Len(resp.ValidationErrors, 1)
	suite.Require().NotNil(resp.Error)
	suite.Equal("ReconciliationMismatch", resp.Error.Code)
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
