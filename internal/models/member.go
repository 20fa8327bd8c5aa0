package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Member is the members row.
type Member struct {
	MemberID       string          `db:"member_id"`
	OwnerID        string          `db:"owner_id"`
	Name           string          `db:"name"`
	Phone          *string         `db:"phone"`
	MonthlyFee     decimal.Decimal `db:"monthly_fee"`
	Balance        decimal.Decimal `db:"balance"`
	Status         string          `db:"status"`
	PlanExpiryDate *time.Time      `db:"plan_expiry_date"`
	AuditFields
}

// Transaction is the transactions row.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	OwnerID       string          `db:"owner_id"`
	MemberID      string          `db:"member_id"`
	Type          string          `db:"type"`
	Amount        decimal.Decimal `db:"amount"`
	TxnDate       time.Time       `db:"txn_date"`
	Notes         *string         `db:"notes"`
	AuditFields
}
