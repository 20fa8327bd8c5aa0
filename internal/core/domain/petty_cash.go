package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PettyCashType distinguishes float top-ups from small cash spends.
type PettyCashType string

const (
	PettyCashRefill  PettyCashType = "refill"
	PettyCashExpense PettyCashType = "expense"
)

// PettyCashTransaction is one entry of the running-balance cash ledger.
// BalanceAfter of the latest entry (by Date, then CreatedAt) is the current float.
type PettyCashTransaction struct {
	ID              string          `json:"id"`
	OwnerID         string          `json:"ownerID"`
	Amount          decimal.Decimal `json:"amount"`
	Type            PettyCashType   `json:"type"`
	Description     string          `json:"description"`
	BalanceAfter    decimal.Decimal `json:"balanceAfter"`
	Date            time.Time       `json:"date"`
	LinkedExpenseID *string         `json:"linkedExpenseID,omitempty"`
	AuditFields
}

// SignedAmount is the effect of the entry on the float.
func (p PettyCashTransaction) SignedAmount() decimal.Decimal {
	if p.Type == PettyCashExpense {
		return p.Amount.Neg()
	}
	return p.Amount
}

// PettyCashDraft is what a ledger writer appends once the current balance is known.
// Expense, when set, is persisted in the same unit of work and linked to the entry.
type PettyCashDraft struct {
	Entry   PettyCashTransaction
	Expense *Expense
}

// PettyCashBuilder turns the locked current balance into the entry to append.
type PettyCashBuilder func(current decimal.Decimal) (PettyCashDraft, error)
