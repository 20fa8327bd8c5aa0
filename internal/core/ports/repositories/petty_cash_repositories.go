package repositories

import (
	"context"
	"time"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
)

// PettyCashReader defines read operations for the petty cash ledger.
type PettyCashReader interface {
	// ListPettyCash returns entries dated within [from, to] ordered newest
	// first. Nil bounds are open.
	ListPettyCash(ctx context.Context, ownerID string, from, to *time.Time) ([]domain.PettyCashTransaction, error)

	// LatestPettyCash returns the entry holding the current balance, or ErrNotFound.
	LatestPettyCash(ctx context.Context, ownerID string) (*domain.PettyCashTransaction, error)
}

// PettyCashWriter serializes ledger writes per tenant. The builder runs while
// the tenant's ledger is locked, so the balance it receives cannot go stale
// before the entry is stored.
type PettyCashWriter interface {
	// AppendPettyCash stores the draft returned by build, together with its
	// optional linked expense, atomically.
	AppendPettyCash(ctx context.Context, ownerID string, build domain.PettyCashBuilder) (*domain.PettyCashTransaction, *domain.Expense, error)

	// DeletePettyCash removes an entry, deletes its linked expense, and
	// re-chains every later balance. It fails with ErrInsufficientBalance,
	// changing nothing, when a later balance would go negative.
	DeletePettyCash(ctx context.Context, ownerID, entryID string) (*domain.PettyCashTransaction, error)

	// RechainPettyCash recomputes every balance from zero and returns the
	// number of entries corrected.
	RechainPettyCash(ctx context.Context, ownerID string) (int, error)
}

// PettyCashRepositoryFacade combines all petty cash repository interfaces.
type PettyCashRepositoryFacade interface {
	PettyCashReader
	PettyCashWriter
}
