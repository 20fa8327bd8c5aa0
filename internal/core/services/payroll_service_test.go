package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/apperrors"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
	portssvc "github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/ports/services"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/services"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PayrollServiceTestSuite struct {
	suite.Suite
	staffRepo  *MockStaffRepository
	salaryRepo *MockSalaryRepository
	service    portssvc.PayrollSvcFacade
}

func (suite *PayrollServiceTestSuite) SetupTest() {
	suite.staffRepo = new(MockStaffRepository)
	suite.salaryRepo = new(MockSalaryRepository)
	now := time.Date(2025, 3, 28, 18, 0, 0, 0, time.UTC)
	suite.service = services.NewPayrollService(suite.staffRepo, suite.salaryRepo,
		services.WithClock(func() time.Time { return now }))
}

func (suite *PayrollServiceTestSuite) TestRecordSalaryPayment_Success() {
	ctx := context.Background()
	aisha := &domain.Staff{StaffID: "s-1", OwnerID: owner, Name: "Aisha", Role: "Cook", BaseSalary: amount(15000)}
	suite.staffRepo.On("FindStaffByID", ctx, owner, "s-1").Return(aisha, nil).Once()
	suite.salaryRepo.On("SaveSalaryPayment", ctx, mock.MatchedBy(func(p domain.SalaryPayment) bool {
		return p.StaffID == "s-1" && p.MonthYear == "March 2025" && p.Amount.Equal(amount(15000))
	})).Return(nil).Once()

	payment, err := suite.service.RecordSalaryPayment(ctx, owner, dto.CreateSalaryPaymentRequest{
		StaffID:   "s-1",
		Amount:    amount(15000),
		MonthYear: "2025-03",
	})

	suite.Require().NoError(err)
	suite.NotEmpty(payment.PaymentID)
	suite.salaryRepo.AssertExpectations(suite.T())
}

func (suite *PayrollServiceTestSuite) TestRecordSalaryPayment_DuplicateMonth() {
	ctx := context.Background()
	suite.staffRepo.On("FindStaffByID", ctx, owner, "s-1").Return(&domain.Staff{StaffID: "s-1"}, nil).Once()
	suite.salaryRepo.On("SaveSalaryPayment", ctx, mock.AnythingOfType("domain.SalaryPayment")).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.RecordSalaryPayment(ctx, owner, dto.CreateSalaryPaymentRequest{
		StaffID:   "s-1",
		Amount:    amount(15000),
		MonthYear: "2025-03",
	})

	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *PayrollServiceTestSuite) TestRecordSalaryPayment_UnknownStaff() {
	ctx := context.Background()
	suite.staffRepo.On("FindStaffByID", ctx, owner, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.RecordSalaryPayment(ctx, owner, dto.CreateSalaryPaymentRequest{
		StaffID:   "ghost",
		Amount:    amount(100),
		MonthYear: "2025-03",
	})

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PayrollServiceTestSuite) TestRecordSalaryPayment_BadMonth() {
	_, err := suite.service.RecordSalaryPayment(context.Background(), owner, dto.CreateSalaryPaymentRequest{
		StaffID:   "s-1",
		Amount:    amount(100),
		MonthYear: "03-2025",
	})
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.staffRepo.AssertNotCalled(suite.T(), "FindStaffByID", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PayrollServiceTestSuite) TestListSalaryPayments_RequiresSelector() {
	_, err := suite.service.ListSalaryPayments(context.Background(), owner, dto.ListSalaryPaymentsParams{})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PayrollServiceTestSuite) TestListSalaryPayments_ByMonth() {
	ctx := context.Background()
	suite.salaryRepo.On("ListSalaryPaymentsByMonth", ctx, owner, "March 2025").
		Return([]domain.SalaryPayment{{PaymentID: "p-1"}}, nil).Once()

	payments, err := suite.service.ListSalaryPayments(ctx, owner, dto.ListSalaryPaymentsParams{Month: "2025-03"})

	suite.Require().NoError(err)
	suite.Len(payments, 1)
}

func (suite *PayrollServiceTestSuite) TestUpdateStaff_RejectsNegativeSalary() {
	ctx := context.Background()
	suite.staffRepo.On("FindStaffByID", ctx, owner, "s-1").Return(&domain.Staff{StaffID: "s-1", Name: "Aisha"}, nil).Once()
	negative := amount(-1)

	_, err := suite.service.UpdateStaff(ctx, owner, "s-1", dto.UpdateStaffRequest{BaseSalary: &negative})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.staffRepo.AssertNotCalled(suite.T(), "UpdateStaff", mock.Anything, mock.Anything)
}

func TestPayrollServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PayrollServiceTestSuite))
}
