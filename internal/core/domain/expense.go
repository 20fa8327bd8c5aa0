package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseCategory is one of the fixed spending buckets.
type ExpenseCategory string

const (
	CategoryGroceries   ExpenseCategory = "groceries"
	CategoryUtilities   ExpenseCategory = "utilities"
	CategoryRent        ExpenseCategory = "rent"
	CategorySalaries    ExpenseCategory = "salaries"
	CategoryMaintenance ExpenseCategory = "maintenance"
	CategoryOther       ExpenseCategory = "other"
)

// ExpenseCategories lists every category in display order.
var ExpenseCategories = []ExpenseCategory{
	CategoryGroceries,
	CategoryUtilities,
	CategoryRent,
	CategorySalaries,
	CategoryMaintenance,
	CategoryOther,
}

// IsValid reports whether c is one of the fixed categories.
func (c ExpenseCategory) IsValid() bool {
	for _, known := range ExpenseCategories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseExpenseCategory normalises s into a known category.
func ParseExpenseCategory(s string) (ExpenseCategory, bool) {
	c := ExpenseCategory(strings.ToLower(strings.TrimSpace(s)))
	return c, c.IsValid()
}

// Expense is a main-ledger spending record.
type Expense struct {
	ExpenseID     string          `json:"expenseID"`
	OwnerID       string          `json:"ownerID"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Category      ExpenseCategory `json:"category"`
	Date          time.Time       `json:"date"`
	ReceiptURL    *string         `json:"receiptURL,omitempty"`
	FileSizeBytes int64           `json:"fileSizeBytes"`
	AuditFields
}

// HasReceipt reports whether an attachment was uploaded for the expense.
func (e Expense) HasReceipt() bool {
	return e.ReceiptURL != nil && *e.ReceiptURL != ""
}

// ExpenseFilter narrows an expense listing. Zero values mean unbounded.
type ExpenseFilter struct {
	From      *time.Time
	To        *time.Time
	Category  *ExpenseCategory
	Limit     int
	NextToken *string
}

// CashWithdrawalDescription is the main-ledger description for a petty cash refill.
func CashWithdrawalDescription(refillDescription string) string {
	if refillDescription == "" {
		return "Cash Withdrawal"
	}
	return "Cash Withdrawal - " + refillDescription
}
