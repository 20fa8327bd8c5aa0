package repositories

// RepositoryProvider holds all repository interfaces needed by services.
type RepositoryProvider struct {
	MemberRepo      MemberRepositoryFacade
	TransactionRepo TransactionRepositoryFacade
	ExpenseRepo     ExpenseRepositoryFacade
	PettyCashRepo   PettyCashRepositoryFacade
	StaffRepo       StaffRepositoryFacade
	SalaryRepo      SalaryPaymentRepositoryFacade
	InventoryRepo   InventoryRepositoryFacade
	ProfileRepo     ProfileRepositoryFacade
}
