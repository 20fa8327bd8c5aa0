package services

import (
	"context"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/dto"
)

// InventorySvcFacade manages stocked items.
type InventorySvcFacade interface {
	CreateItem(ctx context.Context, ownerID string, req dto.CreateInventoryItemRequest) (*domain.InventoryItem, error)
	GetItem(ctx context.Context, ownerID, itemID string) (*domain.InventoryItem, error)
	ListItems(ctx context.Context, ownerID string, params dto.ListInventoryParams) ([]domain.InventoryItem, error)
	UpdateItem(ctx context.Context, ownerID, itemID string, req dto.UpdateInventoryItemRequest) (*domain.InventoryItem, error)
	DeleteItem(ctx context.Context, ownerID, itemID string) error
	AdjustQuantity(ctx context.Context, ownerID, itemID string, req dto.AdjustInventoryRequest) (*domain.InventoryItem, error)
}
