package dto

import (
	"time"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest records a payment or charge against a member.
type CreateTransactionRequest struct {
	MemberID string                 `json:"memberID" binding:"required"`
	Type     domain.TransactionType `json:"type" binding:"required,transaction_type"`
	Amount   decimal.Decimal        `json:"amount"`
	Date     *time.Time             `json:"date"` // defaults to now
	Notes    *string                `json:"notes" binding:"omitempty,max=500"`
}

// UpdateTransactionRequest defines the fields that may change on a transaction.
type UpdateTransactionRequest struct {
	Type   *domain.TransactionType `json:"type" binding:"omitempty,transaction_type"`
	Amount *decimal.Decimal        `json:"amount"`
	Date   *time.Time              `json:"date"`
	Notes  *string                 `json:"notes" binding:"omitempty,max=500"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID string                 `json:"transactionID"`
	MemberID      string                 `json:"memberID"`
	Type          domain.TransactionType `json:"type"`
	Amount        decimal.Decimal        `json:"amount"`
	Date          time.Time              `json:"date"`
	Notes         *string                `json:"notes,omitempty"`
	CreatedAt     time.Time              `json:"createdAt"`
	CreatedBy     string                 `json:"createdBy"`
}

// ListTransactionsParams defines query parameters for listing transactions.
// From and To are YYYY-MM-DD dates, inclusive.
type ListTransactionsParams struct {
	From      string  `form:"from"`
	To        string  `form:"to"`
	MemberID  string  `form:"memberID"`
	Type      string  `form:"type" binding:"omitempty,oneof=payment charge"`
	Limit     int     `form:"limit,default=50" binding:"min=1,max=200"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		MemberID:      t.MemberID,
		Type:          t.Type,
		Amount:        t.Amount,
		Date:          t.Date,
		Notes:         t.Notes,
		CreatedAt:     t.CreatedAt,
		CreatedBy:     t.CreatedBy,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}
