package services

// ServiceContainer holds instances of all the application services.
// Handlers and CLI commands reach functionality only through it.
type ServiceContainer struct {
	Member      MemberSvcFacade
	Transaction TransactionSvcFacade
	Expense     ExpenseSvcFacade
	PettyCash   PettyCashSvcFacade
	Payroll     PayrollSvcFacade
	Inventory   InventorySvcFacade
	Profile     ProfileSvcFacade
	PlanLimit   PlanLimitSvc
	Insights    InsightsSvc
	Reporting   ReportingSvc
}
