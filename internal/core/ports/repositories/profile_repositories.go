package repositories

import (
	"context"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
)

// ProfileRepositoryFacade persists the per-tenant settings record.
type ProfileRepositoryFacade interface {
	// FindProfile returns ErrNotFound when the tenant never saved settings.
	FindProfile(ctx context.Context, ownerID string) (*domain.Profile, error)
	UpsertProfile(ctx context.Context, profile domain.Profile) error

	// NextInvoiceSequence atomically increments and returns the invoice
	// counter, creating the profile row if needed.
	NextInvoiceSequence(ctx context.Context, ownerID string) (int64, error)
}
