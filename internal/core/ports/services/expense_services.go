package services

import (
	"context"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/dto"
)

// ExpenseReaderSvc defines read operations for expenses.
type ExpenseReaderSvc interface {
	GetExpense(ctx context.Context, ownerID, expenseID string) (*domain.Expense, error)
	ListExpenses(ctx context.Context, ownerID string, params dto.ListExpensesParams) (*dto.ListExpensesResponse, error)
}

// ExpenseWriterSvc defines write operations for expenses.
type ExpenseWriterSvc interface {
	CreateExpense(ctx context.Context, ownerID string, req dto.CreateExpenseRequest) (*domain.Expense, error)
	UpdateExpense(ctx context.Context, ownerID, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, ownerID, expenseID string) error

	// AttachReceipt stores an attachment for the expense, subject to the
	// plan's receipt limit and the tenant's storage quota.
	AttachReceipt(ctx context.Context, ownerID, expenseID string, upload dto.ReceiptUpload) (*domain.Expense, error)
}

// ExpenseSvcFacade combines all expense service interfaces.
type ExpenseSvcFacade interface {
	ExpenseReaderSvc
	ExpenseWriterSvc
}
