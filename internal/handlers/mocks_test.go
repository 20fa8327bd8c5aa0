package handlers_test

import (
	"context"
	"time"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
	portssvc "github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/ports/services"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock MemberService ---
type MockMemberService struct {
	mock.Mock
}

func (m *MockMemberService) GetMember(ctx context.Context, ownerID, memberID string) (*domain.Member, error) {
	args := m.Called(ctx, ownerID, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}
func (m *MockMemberService) ListMembers(ctx context.Context, ownerID string, params dto.ListMembersParams) ([]domain.Member, error) {
	args := m.Called(ctx, ownerID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Member), args.Error(1)
}
func (m *MockMemberService) ListExpiringMembers(ctx context.Context, ownerID string, within time.Duration) ([]domain.Member, error) {
	args := m.Called(ctx, ownerID, within)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Member), args.Error(1)
}
func (m *MockMemberService) CreateMember(ctx context.Context, ownerID string, req dto.CreateMemberRequest) (*domain.Member, error) {
	args := m.Called(ctx, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}
func (m *MockMemberService) UpdateMember(ctx context.Context, ownerID, memberID string, req dto.UpdateMemberRequest) (*domain.Member, error) {
	args := m.Called(ctx, ownerID, memberID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}
func (m *MockMemberService) DeleteMember(ctx context.Context, ownerID, memberID string) error {
	args := m.Called(ctx, ownerID, memberID)
	return args.Error(0)
}

var _ portssvc.MemberSvcFacade = (*MockMemberService)(nil)

// --- Mock ProfileService ---
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) GetProfile(ctx context.Context, ownerID string) (*domain.Profile, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}
func (m *MockProfileService) UpdateProfile(ctx context.Context, ownerID string, req dto.UpdateProfileRequest) (*domain.Profile, error) {
	args := m.Called(ctx, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}
func (m *MockProfileService) UpdatePlan(ctx context.Context, ownerID string, req dto.UpdatePlanRequest) (*domain.Profile, error) {
	args := m.Called(ctx, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}
func (m *MockProfileService) IssueInvoice(ctx context.Context, ownerID, memberID string) (*domain.Invoice, error) {
	args := m.Called(ctx, ownerID, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

var _ portssvc.ProfileSvcFacade = (*MockProfileService)(nil)

// --- Mock PettyCashService ---
type MockPettyCashService struct {
	mock.Mock
}

func (m *MockPettyCashService) CurrentBalance(ctx context.Context, ownerID string) (decimal.Decimal, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockPettyCashService) ListEntries(ctx context.Context, ownerID string, params dto.ListPettyCashParams) ([]domain.PettyCashTransaction, error) {
	args := m.Called(ctx, ownerID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PettyCashTransaction), args.Error(1)
}
func (m *MockPettyCashService) AddRefill(ctx context.Context, ownerID string, req dto.PettyCashRefillRequest) (*domain.PettyCashTransaction, *domain.Expense, error) {
	args := m.Called(ctx, ownerID, req)
	var expense *domain.Expense
	if args.Get(1) != nil {
		expense = args.Get(1).(*domain.Expense)
	}
	if args.Get(0) == nil {
		return nil, expense, args.Error(2)
	}
	return args.Get(0).(*domain.PettyCashTransaction), expense, args.Error(2)
}
func (m *MockPettyCashService) AddSmallExpense(ctx context.Context, ownerID string, req dto.PettyCashExpenseRequest) (*domain.PettyCashTransaction, error) {
	args := m.Called(ctx, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PettyCashTransaction), args.Error(1)
}
func (m *MockPettyCashService) DeleteEntry(ctx context.Context, ownerID, entryID string) error {
	args := m.Called(ctx, ownerID, entryID)
	return args.Error(0)
}
func (m *MockPettyCashService) Rebalance(ctx context.Context, ownerID string) (int, error) {
	args := m.Called(ctx, ownerID)
	return args.Int(0), args.Error(1)
}

var _ portssvc.PettyCashSvcFacade = (*MockPettyCashService)(nil)

// --- Mock PayrollService ---
type MockPayrollService struct {
	mock.Mock
}

func (m *MockPayrollService) CreateStaff(ctx context.Context, ownerID string, req dto.CreateStaffRequest) (*domain.Staff, error) {
	args := m.Called(ctx, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Staff), args.Error(1)
}
func (m *MockPayrollService) GetStaff(ctx context.Context, ownerID, staffID string) (*domain.Staff, error) {
	args := m.Called(ctx, ownerID, staffID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Staff), args.Error(1)
}
func (m *MockPayrollService) ListStaff(ctx context.Context, ownerID string) ([]domain.Staff, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Staff), args.Error(1)
}
func (m *MockPayrollService) UpdateStaff(ctx context.Context, ownerID, staffID string, req dto.UpdateStaffRequest) (*domain.Staff, error) {
	args := m.Called(ctx, ownerID, staffID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Staff), args.Error(1)
}
func (m *MockPayrollService) DeleteStaff(ctx context.Context, ownerID, staffID string) error {
	args := m.Called(ctx, ownerID, staffID)
	return args.Error(0)
}
func (m *MockPayrollService) RecordSalaryPayment(ctx context.Context, ownerID string, req dto.CreateSalaryPaymentRequest) (*domain.SalaryPayment, error) {
	args := m.Called(ctx, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SalaryPayment), args.Error(1)
}
func (m *MockPayrollService) ListSalaryPayments(ctx context.Context, ownerID string, params dto.ListSalaryPaymentsParams) ([]domain.SalaryPayment, error) {
	args := m.Called(ctx, ownerID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SalaryPayment), args.Error(1)
}
func (m *MockPayrollService) DeleteSalaryPayment(ctx context.Context, ownerID, paymentID string) error {
	args := m.Called(ctx, ownerID, paymentID)
	return args.Error(0)
}

var _ portssvc.PayrollSvcFacade = (*MockPayrollService)(nil)

// --- Mock InsightsService ---
type MockInsightsService struct {
	mock.Mock
}

func (m *MockInsightsService) GetAlerts(ctx context.Context, ownerID string) ([]domain.Alert, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Alert), args.Error(1)
}
func (m *MockInsightsService) GetVariance(ctx context.Context, ownerID string) ([]domain.CategoryVariance, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategoryVariance), args.Error(1)
}
func (m *MockInsightsService) GetDashboard(ctx context.Context, ownerID string) (*domain.Dashboard, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Dashboard), args.Error(1)
}

var _ portssvc.InsightsSvc = (*MockInsightsService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) BuildAuditReport(ctx context.Context, ownerID, month string) (*domain.AuditReport, error) {
	args := m.Called(ctx, ownerID, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuditReport), args.Error(1)
}

var _ portssvc.ReportingSvc = (*MockReportingService)(nil)

// --- Mock PlanLimitService ---
type MockPlanLimitService struct {
	mock.Mock
}

func (m *MockPlanLimitService) GetUsage(ctx context.Context, ownerID string) (*domain.PlanUsage, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlanUsage), args.Error(1)
}
func (m *MockPlanLimitService) EnsureAllowed(ctx context.Context, ownerID string, resource domain.PlanResource) error {
	args := m.Called(ctx, ownerID, resource)
	return args.Error(0)
}

var _ portssvc.PlanLimitSvc = (*MockPlanLimitService)(nil)
