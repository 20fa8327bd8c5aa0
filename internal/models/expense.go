package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is the expenses row.
type Expense struct {
	ExpenseID     string          `db:"expense_id"`
	OwnerID       string          `db:"owner_id"`
	Description   string          `db:"description"`
	Amount        decimal.Decimal `db:"amount"`
	Category      string          `db:"category"`
	ExpenseDate   time.Time       `db:"expense_date"`
	ReceiptURL    *string         `db:"receipt_url"`
	FileSizeBytes int64           `db:"file_size_bytes"`
	AuditFields
}

// PettyCashTransaction is the petty_cash_transactions row.
type PettyCashTransaction struct {
	ID              string          `db:"id"`
	OwnerID         string          `db:"owner_id"`
	Amount          decimal.Decimal `db:"amount"`
	Type            string          `db:"type"`
	Description     string          `db:"description"`
	BalanceAfter    decimal.Decimal `db:"balance_after"`
	TxnDate         time.Time       `db:"txn_date"`
	LinkedExpenseID *string         `db:"linked_expense_id"`
	AuditFields
}
