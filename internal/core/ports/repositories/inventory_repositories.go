package repositories

import (
	"context"
	"time"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InventoryReader defines read operations for inventory.
type InventoryReader interface {
	FindInventoryItemByID(ctx context.Context, ownerID, itemID string) (*domain.InventoryItem, error)
	ListInventoryItems(ctx context.Context, ownerID string, limit, offset int) ([]domain.InventoryItem, error)
}

// InventoryWriter defines write operations for inventory.
type InventoryWriter interface {
	SaveInventoryItem(ctx context.Context, item domain.InventoryItem) error
	UpdateInventoryItem(ctx context.Context, item domain.InventoryItem) error
	DeleteInventoryItem(ctx context.Context, ownerID, itemID string) error

	// AdjustInventoryQuantity adds delta atomically. A result below zero
	// fails with ErrValidation and leaves the item unchanged.
	AdjustInventoryQuantity(ctx context.Context, ownerID, itemID string, delta decimal.Decimal, actorID string, now time.Time) (*domain.InventoryItem, error)
}

// InventoryRepositoryFacade combines all inventory repository interfaces.
type InventoryRepositoryFacade interface {
	InventoryReader
	InventoryWriter
}
