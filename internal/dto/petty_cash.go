package dto

import (
	"time"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PettyCashRefillRequest tops up the float. RecordAsExpense also books the
// withdrawal in the main ledger.
type PettyCashRefillRequest struct {
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description" binding:"max=500"`
	RecordAsExpense bool            `json:"recordAsExpense"`
}

// PettyCashExpenseRequest spends from the float.
type PettyCashExpenseRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" binding:"required,max=500"`
}

// PettyCashEntryResponse defines the data returned for a ledger entry.
type PettyCashEntryResponse struct {
	ID              string               `json:"id"`
	Type            domain.PettyCashType `json:"type"`
	Amount          decimal.Decimal      `json:"amount"`
	Description     string               `json:"description"`
	BalanceAfter    decimal.Decimal      `json:"balanceAfter"`
	Date            time.Time            `json:"date"`
	LinkedExpenseID *string              `json:"linkedExpenseID,omitempty"`
	CreatedAt       time.Time            `json:"createdAt"`
}

// PettyCashRefillResponse carries the new entry and, when requested, the booked expense.
type PettyCashRefillResponse struct {
	Entry   PettyCashEntryResponse `json:"entry"`
	Expense *ExpenseResponse       `json:"expense,omitempty"`
}

// PettyCashBalanceResponse is the current float.
type PettyCashBalanceResponse struct {
	Balance      decimal.Decimal `json:"balance"`
	CurrencyCode string          `json:"currencyCode"`
	Formatted    string          `json:"formatted"`
}

// ListPettyCashParams bounds a ledger listing by YYYY-MM-DD dates.
type ListPettyCashParams struct {
	From string `form:"from"`
	To   string `form:"to"`
}

// ToPettyCashEntryResponse converts a domain.PettyCashTransaction.
func ToPettyCashEntryResponse(p *domain.PettyCashTransaction) PettyCashEntryResponse {
	return PettyCashEntryResponse{
		ID:              p.ID,
		Type:            p.Type,
		Amount:          p.Amount,
		Description:     p.Description,
		BalanceAfter:    p.BalanceAfter,
		Date:            p.Date,
		LinkedExpenseID: p.LinkedExpenseID,
		CreatedAt:       p.CreatedAt,
	}
}

// ToPettyCashEntryResponses converts a slice of ledger entries.
func ToPettyCashEntryResponses(entries []domain.PettyCashTransaction) []PettyCashEntryResponse {
	res := make([]PettyCashEntryResponse, len(entries))
	for i := range entries {
		res[i] = ToPettyCashEntryResponse(&entries[i])
	}
	return res
}
