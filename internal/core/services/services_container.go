package services

import (
	portsrepo "github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/ports/repositories"
	portssvc "github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// receipts may be nil, which disables attachment uploads.
func NewServiceContainer(repos portsrepo.RepositoryProvider, receipts portsrepo.ReceiptStore, options ...ServiceOption) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The plan gate is shared by every service that creates a gated resource.
	container.PlanLimit = NewPlanLimitService(repos.ProfileRepo, repos.MemberRepo, repos.ExpenseRepo, options...)

	container.Member = NewMemberService(repos.MemberRepo, container.PlanLimit, options...)
	container.Transaction = NewTransactionService(repos.TransactionRepo, repos.MemberRepo, repos.ProfileRepo, options...)

	expenseOptions := []ExpenseOption{WithExpensePlanLimits(container.PlanLimit)}
	if receipts != nil {
		expenseOptions = append(expenseOptions, WithReceiptStore(receipts))
	}
	container.Expense = NewExpenseService(repos.ExpenseRepo, repos.ProfileRepo, expenseOptions, options...)

	container.PettyCash = NewPettyCashService(repos.PettyCashRepo, repos.ProfileRepo, options...)
	container.Payroll = NewPayrollService(repos.StaffRepo, repos.SalaryRepo, options...)
	container.Inventory = NewInventoryService(repos.InventoryRepo, options...)
	container.Profile = NewProfileService(repos.ProfileRepo, repos.MemberRepo, container.PlanLimit, options...)
	container.Insights = NewInsightsService(repos, container.PlanLimit, container.PettyCash, options...)
	container.Reporting = NewReportingService(repos, options...)

	return container
}
