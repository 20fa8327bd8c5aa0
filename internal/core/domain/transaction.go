package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType distinguishes money received from money billed.
type TransactionType string

const (
	TransactionPayment TransactionType = "payment"
	TransactionCharge  TransactionType = "charge"
)

// Transaction is a member billing event. Payments feed revenue aggregates.
type Transaction struct {
	TransactionID string          `json:"transactionID"`
	OwnerID       string          `json:"ownerID"`
	MemberID      string          `json:"memberID"`
	Type          TransactionType `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	Notes         *string         `json:"notes,omitempty"`
	AuditFields
}

// IsPayment reports whether the transaction is money received.
func (t Transaction) IsPayment() bool {
	return t.Type == TransactionPayment
}

// BalanceDelta is the change this transaction applies to the member's amount owed.
func (t Transaction) BalanceDelta() decimal.Decimal {
	if t.Type == TransactionPayment {
		return t.Amount.Neg()
	}
	return t.Amount
}

// TransactionFilter narrows a transaction listing. Zero values mean unbounded.
type TransactionFilter struct {
	From      *time.Time
	To        *time.Time
	MemberID  *string
	Type      *TransactionType
	Limit     int
	NextToken *string
}
