package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/apperrors"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
	portsrepo "github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/ports/repositories"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/services"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/views"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/dto"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type reportingFixture struct {
	txns     *MockTransactionRepository
	expenses *MockExpenseRepository
	staff    *MockStaffRepository
	salaries *MockSalaryRepository
	profiles *MockProfileRepository
	members  *MockMemberRepository
	ledger   *memoryPettyCash
}

func newReportingFixture() *reportingFixture {
	return &reportingFixture{
		txns:     new(MockTransactionRepository),
		expenses: new(MockExpenseRepository),
		staff:    new(MockStaffRepository),
		salaries: new(MockSalaryRepository),
		profiles: new(MockProfileRepository),
		members:  new(MockMemberRepository),
		ledger:   newMemoryPettyCash(),
	}
}

func (f *reportingFixture) provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		MemberRepo:      f.members,
		TransactionRepo: f.txns,
		ExpenseRepo:     f.expenses,
		PettyCashRepo:   f.ledger,
		StaffRepo:       f.staff,
		SalaryRepo:      f.salaries,
		ProfileRepo:     f.profiles,
	}
}

func TestReportingService_BuildsAndCachesMonth(t *testing.T) {
	ctx := context.Background()
	f := newReportingFixture()
	march := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	f.profiles.On("FindProfile", ctx, owner).Return(nil, apperrors.ErrNotFound)
	f.txns.On("ListTransactions", ctx, owner, mock.AnythingOfType("domain.TransactionFilter")).Return([]domain.Transaction{
		{TransactionID: "t-1", Type: domain.TransactionPayment, Amount: amount(10000), Date: march},
	}, nil).Once()
	f.expenses.On("ListExpenses", ctx, owner, mock.AnythingOfType("domain.ExpenseFilter")).Return([]domain.Expense{
		{ExpenseID: "e-1", Category: domain.CategoryRent, Amount: amount(3000), Date: march},
		{ExpenseID: "e-2", Category: domain.CategoryGroceries, Amount: amount(2000), Date: march},
	}, nil).Once()
	f.staff.On("ListStaff", ctx, owner).Return([]domain.Staff{
		{StaffID: "s-1", Name: "Aisha", Role: "Cook", BaseSalary: amount(1500)},
	}, nil).Once()
	f.salaries.On("ListSalaryPaymentsByMonth", ctx, owner, "March 2025").Return([]domain.SalaryPayment{
		{PaymentID: "p-1", StaffID: "s-1", Amount: amount(1500), MonthYear: "March 2025", PaidAt: march},
	}, nil).Once()

	bus := events.NewBus(nil)
	cache, err := views.NewReportCache(8, bus, nil)
	require.NoError(t, err)
	svc := services.NewReportingService(f.provider(),
		services.WithViewCache(cache),
		services.WithClock(func() time.Time { return march }))

	report, err := svc.BuildAuditReport(ctx, owner, "2025-03")
	require.NoError(t, err)
	assert.Equal(t, "March 2025", report.MonthLabel)
	assert.True(t, report.TotalRevenue.Equal(amount(10000)))
	assert.True(t, report.TotalFixedCosts.Equal(amount(4500)))
	assert.True(t, report.TotalVariableCosts.Equal(amount(2000)))
	assert.True(t, report.NetProfit.Equal(amount(3500)))
	require.Len(t, report.SalaryManifest, 1)
	assert.Equal(t, domain.SalaryPaid, report.SalaryManifest[0].Status)

	again, err := svc.BuildAuditReport(ctx, owner, "")
	require.NoError(t, err)
	assert.True(t, again.NetProfit.Equal(report.NetProfit))
	f.txns.AssertNumberOfCalls(t, "ListTransactions", 1)

	bus.Publish(ctx, events.Event{Entity: events.EntityTransactions, Op: events.OpInsert, OwnerID: owner})
	assert.Equal(t, 0, cache.Len())
}

func TestReportingService_SalaryRecordedThroughPayrollShowsAsPaid(t *testing.T) {
	ctx := context.Background()
	f := newReportingFixture()
	march := time.Date(2025, 3, 28, 18, 0, 0, 0, time.UTC)
	clock := services.WithClock(func() time.Time { return march })
	aisha := domain.Staff{StaffID: "s-1", Name: "Aisha", Role: "Cook", BaseSalary: amount(1500)}

	var stored domain.SalaryPayment
	f.staff.On("FindStaffByID", ctx, owner, "s-1").Return(&aisha, nil).Once()
	f.salaries.On("SaveSalaryPayment", ctx, mock.AnythingOfType("domain.SalaryPayment")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(domain.SalaryPayment) }).
		Return(nil).Once()

	payroll := services.NewPayrollService(f.staff, f.salaries, clock)
	_, err := payroll.RecordSalaryPayment(ctx, owner, dto.CreateSalaryPaymentRequest{
		StaffID:   "s-1",
		Amount:    amount(1500),
		MonthYear: "2025-03",
	})
	require.NoError(t, err)
	assert.Equal(t, "March 2025", stored.MonthYear)

	f.profiles.On("FindProfile", ctx, owner).Return(nil, apperrors.ErrNotFound)
	f.txns.On("ListTransactions", ctx, owner, mock.AnythingOfType("domain.TransactionFilter")).Return([]domain.Transaction{
		{TransactionID: "t-1", Type: domain.TransactionPayment, Amount: amount(5000), Date: march},
	}, nil).Once()
	f.expenses.On("ListExpenses", ctx, owner, mock.AnythingOfType("domain.ExpenseFilter")).Return([]domain.Expense{}, nil).Once()
	f.staff.On("ListStaff", ctx, owner).Return([]domain.Staff{aisha}, nil).Once()
	f.salaries.On("ListSalaryPaymentsByMonth", ctx, owner, stored.MonthYear).Return([]domain.SalaryPayment{stored}, nil).Once()

	report, err := services.NewReportingService(f.provider(), clock).BuildAuditReport(ctx, owner, "2025-03")
	require.NoError(t, err)
	require.Len(t, report.SalaryManifest, 1)
	assert.Equal(t, domain.SalaryPaid, report.SalaryManifest[0].Status)
	assert.True(t, report.SalaryManifest[0].PaidAmount.Equal(amount(1500)))
	assert.True(t, report.TotalFixedCosts.Equal(amount(1500)))
	assert.True(t, report.NetProfit.Equal(amount(3500)))
}

func TestReportingService_WriteDuringBuildIsNotCached(t *testing.T) {
	ctx := context.Background()
	f := newReportingFixture()
	march := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	bus := events.NewBus(nil)
	cache, err := views.NewReportCache(8, bus, nil)
	require.NoError(t, err)

	f.profiles.On("FindProfile", ctx, owner).Return(nil, apperrors.ErrNotFound)
	f.txns.On("ListTransactions", ctx, owner, mock.AnythingOfType("domain.TransactionFilter")).Return([]domain.Transaction{}, nil)
	f.expenses.On("ListExpenses", ctx, owner, mock.AnythingOfType("domain.ExpenseFilter")).
		Run(func(mock.Arguments) {
			bus.Publish(ctx, events.Event{Entity: events.EntityExpenses, Op: events.OpInsert, OwnerID: owner, RecordID: "e-9"})
		}).
		Return([]domain.Expense{}, nil).Once()
	f.expenses.On("ListExpenses", ctx, owner, mock.AnythingOfType("domain.ExpenseFilter")).Return([]domain.Expense{}, nil).Once()
	f.staff.On("ListStaff", ctx, owner).Return([]domain.Staff{}, nil)
	f.salaries.On("ListSalaryPaymentsByMonth", ctx, owner, "March 2025").Return([]domain.SalaryPayment{}, nil)

	svc := services.NewReportingService(f.provider(),
		services.WithViewCache(cache),
		services.WithClock(func() time.Time { return march }))

	_, err = svc.BuildAuditReport(ctx, owner, "2025-03")
	require.NoError(t, err)
	assert.Equal(t, 0, cache.Len())

	_, err = svc.BuildAuditReport(ctx, owner, "2025-03")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len())
	f.expenses.AssertNumberOfCalls(t, "ListExpenses", 2)
}

func TestReportingService_RejectsBadMonth(t *testing.T) {
	ctx := context.Background()
	f := newReportingFixture()
	f.profiles.On("FindProfile", ctx, owner).Return(nil, apperrors.ErrNotFound)
	svc := services.NewReportingService(f.provider())

	_, err := svc.BuildAuditReport(ctx, owner, "March")

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestInsightsService_Dashboard(t *testing.T) {
	ctx := context.Background()
	f := newReportingFixture()
	now := time.Date(2025, 3, 20, 9, 0, 0, 0, time.UTC)
	soon := now.Add(48 * time.Hour)

	f.profiles.On("FindProfile", ctx, owner).Return(nil, apperrors.ErrNotFound)
	f.members.On("ListMembers", ctx, owner, domain.MemberFilter{}).Return([]domain.Member{
		{MemberID: "m-1", Status: domain.MemberActive, Balance: amount(500), PlanExpiryDate: &soon},
		{MemberID: "m-2", Status: domain.MemberInactive, Balance: amount(250)},
	}, nil)
	f.expenses.On("ListExpenses", ctx, owner, mock.AnythingOfType("domain.ExpenseFilter")).Return([]domain.Expense{
		{ExpenseID: "e-1", Category: domain.CategoryGroceries, Amount: amount(700), Date: now},
		{ExpenseID: "e-2", Category: domain.CategoryGroceries, Amount: amount(100), Date: now.AddDate(0, -1, 0)},
	}, nil)
	f.txns.On("ListTransactions", ctx, owner, mock.AnythingOfType("domain.TransactionFilter")).Return([]domain.Transaction{
		{TransactionID: "t-1", Type: domain.TransactionPayment, Amount: amount(4000), Date: now},
	}, nil)

	usage := domain.PlanUsage{Plan: domain.PlanFree}
	limits := new(MockPlanLimitSvc)
	limits.On("GetUsage", ctx, owner).Return(&usage, nil)

	opts := []services.ServiceOption{services.WithClock(func() time.Time { return now })}
	pettyCash := services.NewPettyCashService(f.ledger, f.profiles, opts...)
	svc := services.NewInsightsService(f.provider(), limits, pettyCash, opts...)

	dashboard, err := svc.GetDashboard(ctx, owner)

	require.NoError(t, err)
	assert.Equal(t, "2025-03", dashboard.Month)
	assert.Equal(t, "INR", dashboard.CurrencyCode)
	assert.Equal(t, 2, dashboard.TotalMembers)
	assert.Equal(t, 1, dashboard.ActiveMembers)
	assert.Equal(t, 1, dashboard.ExpiringMembers)
	assert.True(t, dashboard.TotalDues.Equal(amount(750)))
	assert.True(t, dashboard.MonthRevenue.Equal(amount(4000)))
	assert.True(t, dashboard.MonthExpenses.Equal(amount(700)))
	assert.True(t, dashboard.PettyCashBalance.IsZero())
	assert.Equal(t, 1, dashboard.AlertCount, "groceries at 700 against a trailing average of 33 is a spike")
}
