package services

import (
	"context"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/dto"
	"github.com/shopspring/decimal"
)

// PettyCashReaderSvc defines read operations for the petty cash ledger.
type PettyCashReaderSvc interface {
	// CurrentBalance is the balance after the latest entry, or zero for an empty ledger.
	CurrentBalance(ctx context.Context, ownerID string) (decimal.Decimal, error)
	ListEntries(ctx context.Context, ownerID string, params dto.ListPettyCashParams) ([]domain.PettyCashTransaction, error)
}

// PettyCashWriterSvc defines write operations for the petty cash ledger.
type PettyCashWriterSvc interface {
	AddRefill(ctx context.Context, ownerID string, req dto.PettyCashRefillRequest) (*domain.PettyCashTransaction, *domain.Expense, error)

	// AddSmallExpense fails with ErrInsufficientBalance when amount exceeds the float.
	AddSmallExpense(ctx context.Context, ownerID string, req dto.PettyCashExpenseRequest) (*domain.PettyCashTransaction, error)
	DeleteEntry(ctx context.Context, ownerID, entryID string) error

	// Rebalance recomputes every stored balance and returns how many were corrected.
	Rebalance(ctx context.Context, ownerID string) (int, error)
}

// PettyCashSvcFacade combines all petty cash service interfaces.
type PettyCashSvcFacade interface {
	PettyCashReaderSvc
	PettyCashWriterSvc
}
