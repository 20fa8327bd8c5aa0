package repositories

import (
	"context"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
)

// ExpenseReader defines read operations for main-ledger expenses.
type ExpenseReader interface {
	FindExpenseByID(ctx context.Context, ownerID, expenseID string) (*domain.Expense, error)

	// ListExpenses orders by date then creation, newest first. A zero
	// filter.Limit returns every match.
	ListExpenses(ctx context.Context, ownerID string, filter domain.ExpenseFilter) ([]domain.Expense, error)

	// CountReceipts counts expenses carrying an attachment.
	CountReceipts(ctx context.Context, ownerID string) (int64, error)
}

// ExpenseWriter defines write operations for expenses. Operations touching a
// receipt keep the profile storage counter in step within the same transaction.
type ExpenseWriter interface {
	SaveExpense(ctx context.Context, expense domain.Expense) error
	UpdateExpense(ctx context.Context, expense domain.Expense) error
	DeleteExpense(ctx context.Context, ownerID, expenseID string) error
	AttachReceipt(ctx context.Context, ownerID, expenseID, receiptURL string, sizeBytes int64) (*domain.Expense, error)
}

// ExpenseRepositoryFacade combines all expense repository interfaces.
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
}
