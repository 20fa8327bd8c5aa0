package dto

import (
	"io"
	"time"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest defines the data needed to record an expense.
type CreateExpenseRequest struct {
	Description string                 `json:"description" binding:"required,max=500"`
	Amount      decimal.Decimal        `json:"amount"`
	Category    domain.ExpenseCategory `json:"category" binding:"required,expense_category"`
	Date        *time.Time             `json:"date"` // defaults to now
}

// UpdateExpenseRequest defines the fields that may change on an expense.
type UpdateExpenseRequest struct {
	Description *string                 `json:"description" binding:"omitempty,max=500"`
	Amount      *decimal.Decimal        `json:"amount"`
	Category    *domain.ExpenseCategory `json:"category" binding:"omitempty,expense_category"`
	Date        *time.Time              `json:"date"`
}

// ExpenseResponse defines the data returned for an expense.
type ExpenseResponse struct {
	ExpenseID     string                 `json:"expenseID"`
	Description   string                 `json:"description"`
	Amount        decimal.Decimal        `json:"amount"`
	Category      domain.ExpenseCategory `json:"category"`
	Date          time.Time              `json:"date"`
	ReceiptURL    *string                `json:"receiptURL,omitempty"`
	FileSizeBytes int64                  `json:"fileSizeBytes"`
	CreatedAt     time.Time              `json:"createdAt"`
	CreatedBy     string                 `json:"createdBy"`
}

// ListExpensesParams defines query parameters for listing expenses.
type ListExpensesParams struct {
	From      string  `form:"from"`
	To        string  `form:"to"`
	Category  string  `form:"category" binding:"omitempty,expense_category"`
	Limit     int     `form:"limit,default=50" binding:"min=1,max=200"`
	NextToken *string `form:"nextToken"`
}

// ListExpensesResponse wraps a page of expenses.
type ListExpensesResponse struct {
	Expenses  []ExpenseResponse `json:"expenses"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ReceiptUpload is an attachment handed from the transport to the expense service.
type ReceiptUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// ToExpenseResponse converts a domain.Expense to ExpenseResponse DTO.
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:     e.ExpenseID,
		Description:   e.Description,
		Amount:        e.Amount,
		Category:      e.Category,
		Date:          e.Date,
		ReceiptURL:    e.ReceiptURL,
		FileSizeBytes: e.FileSizeBytes,
		CreatedAt:     e.CreatedAt,
		CreatedBy:     e.CreatedBy,
	}
}

// ToExpenseResponses converts a slice of domain.Expense.
func ToExpenseResponses(expenses []domain.Expense) []ExpenseResponse {
	res := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		res[i] = ToExpenseResponse(&expenses[i])
	}
	return res
}
