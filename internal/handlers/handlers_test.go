package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/apperrors"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
	portssvc "github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/ports/services"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/dto"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/handlers"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type HandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	jwtSecret     string
	ownerID       string
	mockMember    *MockMemberService
	mockProfile   *MockProfileService
	mockPettyCash *MockPettyCashService
	mockPayroll   *MockPayrollService
	mockInsights  *MockInsightsService
	mockReporting *MockReportingService
	mockPlanLimit *MockPlanLimitService
}

// generateTestToken creates a signed JWT whose subject is ownerID.
func (suite *HandlerTestSuite) generateTestToken(ownerID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "messflow-test",
		Subject:   ownerID,
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
	suite.ownerID = uuid.NewString()

	suite.mockMember = new(MockMemberService)
	suite.mockProfile = new(MockProfileService)
	suite.mockPettyCash = new(MockPettyCashService)
	suite.mockPayroll = new(MockPayrollService)
	suite.mockInsights = new(MockInsightsService)
	suite.mockReporting = new(MockReportingService)
	suite.mockPlanLimit = new(MockPlanLimitService)

	cfg := &config.Config{
		JWTSecret:    suite.jwtSecret,
		JWTIssuer:    "messflow-test",
		IsProduction: true,
	}
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Member:    suite.mockMember,
		PettyCash: suite.mockPettyCash,
		Payroll:   suite.mockPayroll,
		Profile:   suite.mockProfile,
		PlanLimit: suite.mockPlanLimit,
		Insights:  suite.mockInsights,
		Reporting: suite.mockReporting,
	})
}

// activeProfile makes the subscription gate let writes through.
func (suite *HandlerTestSuite) activeProfile() *domain.Profile {
	profile := domain.DefaultProfile(suite.ownerID)
	suite.mockProfile.On("GetProfile", mock.Anything, suite.ownerID).Return(&profile, nil)
	return &profile
}

func (suite *HandlerTestSuite) do(method, url string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.ownerID))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) errorBody(w *httptest.ResponseRecorder) string {
	var body map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

// --- Test Cases ---

func (suite *HandlerTestSuite) TestHealth() {
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *HandlerTestSuite) TestMissingToken_Unauthorized() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/members", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockMember.AssertNotCalled(suite.T(), "ListMembers")
}

func (suite *HandlerTestSuite) TestWrongIssuer_Unauthorized() {
	claims := jwt.RegisteredClaims{
		Issuer:    "someone-else",
		Subject:   suite.ownerID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(suite.jwtSecret))
	suite.Require().NoError(err)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/members", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestCreateMember_Success() {
	suite.activeProfile()
	created := &domain.Member{
		MemberID:   uuid.NewString(),
		OwnerID:    suite.ownerID,
		Name:       "Asha",
		MonthlyFee: decimal.NewFromInt(3000),
		Status:     domain.MemberActive,
	}
	suite.mockMember.On("CreateMember", mock.Anything, suite.ownerID,
		mock.MatchedBy(func(req dto.CreateMemberRequest) bool {
			return req.Name == "Asha" && req.MonthlyFee.Equal(decimal.NewFromInt(3000))
		}),
	).Return(created, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/members", map[string]any{"name": "Asha", "monthlyFee": "3000"})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.MemberResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.MemberID, resp.MemberID)
	suite.True(resp.MonthlyFee.Equal(decimal.NewFromInt(3000)))
	suite.mockMember.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCreateMember_InvalidStatus() {
	suite.activeProfile()

	w := suite.do(http.MethodPost, "/api/v1/members", map[string]any{"name": "Asha", "monthlyFee": "3000", "status": "paused"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockMember.AssertNotCalled(suite.T(), "CreateMember", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateMember_PlanLimitReached() {
	suite.activeProfile()
	suite.mockMember.On("CreateMember", mock.Anything, suite.ownerID, mock.Anything).
		Return(nil, apperrors.ErrPlanLimitReached).Once()

	w := suite.do(http.MethodPost, "/api/v1/members", map[string]any{"name": "Asha", "monthlyFee": "3000"})

	suite.Equal(http.StatusPaymentRequired, w.Code)
	suite.Contains(suite.errorBody(w), "plan limit")
}

func (suite *HandlerTestSuite) TestWrite_SubscriptionLapsed() {
	expired := domain.SubscriptionExpired
	profile := domain.DefaultProfile(suite.ownerID)
	profile.SubscriptionStatus = &expired
	suite.mockProfile.On("GetProfile", mock.Anything, suite.ownerID).Return(&profile, nil)

	w := suite.do(http.MethodDelete, "/api/v1/members/"+uuid.NewString(), nil)

	suite.Equal(http.StatusPaymentRequired, w.Code)
	suite.mockMember.AssertNotCalled(suite.T(), "DeleteMember", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestRead_SkipsSubscriptionGate() {
	suite.mockMember.On("ListMembers", mock.Anything, suite.ownerID,
		mock.MatchedBy(func(p dto.ListMembersParams) bool { return p.Limit == 50 && p.Search == "ash" }),
	).Return([]domain.Member{}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/members?q=ash", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockProfile.AssertNotCalled(suite.T(), "GetProfile", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestListExpiringMembers_DaysToWindow() {
	suite.mockMember.On("ListExpiringMembers", mock.Anything, suite.ownerID, 3*24*time.Hour).
		Return([]domain.Member{}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/members/expiring?days=3", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockMember.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestGetMember_NotFound() {
	memberID := uuid.NewString()
	suite.mockMember.On("GetMember", mock.Anything, suite.ownerID, memberID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodGet, "/api/v1/members/"+memberID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestGetMember_InternalErrorIsGeneric() {
	memberID := uuid.NewString()
	suite.mockMember.On("GetMember", mock.Anything, suite.ownerID, memberID).
		Return(nil, errors.New("connection reset by peer")).Once()

	w := suite.do(http.MethodGet, "/api/v1/members/"+memberID, nil)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.Equal("Failed to retrieve member", suite.errorBody(w))
}

func (suite *HandlerTestSuite) TestIssueInvoice_Created() {
	suite.activeProfile()
	memberID := uuid.NewString()
	invoice := &domain.Invoice{
		Number:   "INV-0007",
		Sequence: 7,
		MemberID: memberID,
		Total:    decimal.NewFromInt(3150),
	}
	suite.mockProfile.On("IssueInvoice", mock.Anything, suite.ownerID, memberID).Return(invoice, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/members/"+memberID+"/invoices", nil)

	suite.Equal(http.StatusCreated, w.Code)
	var resp domain.Invoice
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("INV-0007", resp.Number)
}

func (suite *HandlerTestSuite) TestPettyCashBalance() {
	inr := "INR"
	profile := domain.DefaultProfile(suite.ownerID)
	profile.CurrencyCode = &inr
	suite.mockProfile.On("GetProfile", mock.Anything, suite.ownerID).Return(&profile, nil)
	suite.mockPettyCash.On("CurrentBalance", mock.Anything, suite.ownerID).
		Return(decimal.RequireFromString("1500.50"), nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/petty-cash/balance", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.PettyCashBalanceResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("INR", resp.CurrencyCode)
	suite.True(resp.Balance.Equal(decimal.RequireFromString("1500.50")))
	suite.NotEmpty(resp.Formatted)
}

func (suite *HandlerTestSuite) TestPettyCashExpense_InsufficientBalance() {
	suite.activeProfile()
	suite.mockPettyCash.On("AddSmallExpense", mock.Anything, suite.ownerID, mock.Anything).
		Return(nil, apperrors.ErrInsufficientBalance).Once()

	w := suite.do(http.MethodPost, "/api/v1/petty-cash/expenses", map[string]any{"amount": "900", "description": "gas cylinder"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(suite.errorBody(w), "insufficient")
}

func (suite *HandlerTestSuite) TestPettyCashRefill_WithExpense() {
	suite.activeProfile()
	expenseID := uuid.NewString()
	entry := &domain.PettyCashTransaction{
		ID:              uuid.NewString(),
		Type:            domain.PettyCashRefill,
		Amount:          decimal.NewFromInt(2000),
		BalanceAfter:    decimal.NewFromInt(2000),
		LinkedExpenseID: &expenseID,
	}
	expense := &domain.Expense{ExpenseID: expenseID, Amount: decimal.NewFromInt(2000)}
	suite.mockPettyCash.On("AddRefill", mock.Anything, suite.ownerID,
		mock.MatchedBy(func(req dto.PettyCashRefillRequest) bool { return req.RecordAsExpense }),
	).Return(entry, expense, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/petty-cash/refills", map[string]any{"amount": "2000", "recordAsExpense": true})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.PettyCashRefillResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(entry.ID, resp.Entry.ID)
	suite.Require().NotNil(resp.Expense)
	suite.Equal(expenseID, resp.Expense.ExpenseID)
}

func (suite *HandlerTestSuite) TestPettyCashDelete_NoContent() {
	suite.activeProfile()
	entryID := uuid.NewString()
	suite.mockPettyCash.On("DeleteEntry", mock.Anything, suite.ownerID, entryID).Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/petty-cash/"+entryID, nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockPettyCash.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestRecordSalaryPayment_Duplicate() {
	suite.activeProfile()
	suite.mockPayroll.On("RecordSalaryPayment", mock.Anything, suite.ownerID, mock.Anything).
		Return(nil, apperrors.ErrDuplicate).Once()

	w := suite.do(http.MethodPost, "/api/v1/salary-payments", map[string]any{
		"staffID":   uuid.NewString(),
		"amount":    "12000",
		"monthYear": "2026-09",
	})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestRecordSalaryPayment_InvalidMonth() {
	suite.activeProfile()

	w := suite.do(http.MethodPost, "/api/v1/salary-payments", map[string]any{
		"staffID":   uuid.NewString(),
		"amount":    "12000",
		"monthYear": "September",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockPayroll.AssertNotCalled(suite.T(), "RecordSalaryPayment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestAuditReport_PassesMonth() {
	report := &domain.AuditReport{Month: "2026-09", NetProfit: decimal.NewFromInt(4200)}
	suite.mockReporting.On("BuildAuditReport", mock.Anything, suite.ownerID, "2026-09").Return(report, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/audit?month=2026-09", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp domain.AuditReport
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("2026-09", resp.Month)
	suite.True(resp.NetProfit.Equal(decimal.NewFromInt(4200)))
}

func (suite *HandlerTestSuite) TestAuditReport_InvalidMonth() {
	w := suite.do(http.MethodGet, "/api/v1/reports/audit?month=2026-13", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockReporting.AssertNotCalled(suite.T(), "BuildAuditReport", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestAlerts_EmptyListIsArray() {
	suite.mockInsights.On("GetAlerts", mock.Anything, suite.ownerID).Return(nil, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/insights/alerts", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"alerts":[]}`, w.Body.String())
}

func (suite *HandlerTestSuite) TestLimits() {
	usage := &domain.PlanUsage{
		Plan:    domain.PlanFree,
		Members: domain.ResourceUsage{Resource: domain.ResourceMembers, Count: 50, Limit: domain.FreeMemberLimit},
	}
	suite.mockPlanLimit.On("GetUsage", mock.Anything, suite.ownerID).Return(usage, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/limits", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp domain.PlanUsage
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.CanAddMember())
	suite.EqualValues(50, resp.Members.Count)
}

// --- Run Test Suite ---
func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
