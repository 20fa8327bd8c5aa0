package repositories

import (
	"context"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
)

// TransactionReader defines read operations for member billing transactions.
type TransactionReader interface {
	FindTransactionByID(ctx context.Context, ownerID, transactionID string) (*domain.Transaction, error)

	// ListTransactions orders by date then creation, newest first. A zero
	// filter.Limit returns every match.
	ListTransactions(ctx context.Context, ownerID string, filter domain.TransactionFilter) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations. Each call also moves the linked
// member's cached balance by the transaction's delta in the same database transaction.
type TransactionWriter interface {
	SaveTransaction(ctx context.Context, txn domain.Transaction) error
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error
	DeleteTransaction(ctx context.Context, ownerID, transactionID string) error
}

// TransactionRepositoryFacade combines all transaction repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
