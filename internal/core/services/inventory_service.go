package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/apperrors"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
	portsrepo "github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/ports/repositories"
	portssvc "github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/ports/services"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/dto"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/events"
	"github.com/google/uuid"
)

type inventoryService struct {
	BaseService
	inventoryRepo portsrepo.InventoryRepositoryFacade
}

// NewInventoryService creates the stock service.
func NewInventoryService(repo portsrepo.InventoryRepositoryFacade, options ...ServiceOption) portssvc.InventorySvcFacade {
	return &inventoryService{BaseService: newBaseService(options), inventoryRepo: repo}
}

var _ portssvc.InventorySvcFacade = (*inventoryService)(nil)

func (s *inventoryService) CreateItem(ctx context.Context, ownerID string, req dto.CreateInventoryItemRequest) (*domain.InventoryItem, error) {
	name, err := requireText("item name", req.ItemName)
	if err != nil {
		return nil, err
	}
	unit, err := requireText("unit", req.Unit)
	if err != nil {
		return nil, err
	}
	if err := requireNonNegative("quantity", req.Quantity); err != nil {
		return nil, err
	}
	item := domain.InventoryItem{
		ItemID:      uuid.NewString(),
		OwnerID:     ownerID,
		ItemName:    name,
		Quantity:    req.Quantity,
		Unit:        unit,
		Description: req.Description,
		AuditFields: domain.NewAuditFields(ownerID, s.now()),
	}
	if err := s.inventoryRepo.SaveInventoryItem(ctx, item); err != nil {
		s.LogError(ctx, err, "Failed to save inventory item", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to create inventory item: %w", err)
	}
	s.emit(ctx, events.EntityInventory, events.OpInsert, ownerID, item.ItemID)
	return &item, nil
}

func (s *inventoryService) GetItem(ctx context.Context, ownerID, itemID string) (*domain.InventoryItem, error) {
	item, err := s.inventoryRepo.FindInventoryItemByID(ctx, ownerID, itemID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to find inventory item", slog.String("item_id", itemID))
		return nil, err
	}
	return item, nil
}

func (s *inventoryService) ListItems(ctx context.Context, ownerID string, params dto.ListInventoryParams) ([]domain.InventoryItem, error) {
	items, err := s.inventoryRepo.ListInventoryItems(ctx, ownerID, params.Limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list inventory", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	if items == nil {
		return []domain.InventoryItem{}, nil
	}
	return items, nil
}

func (s *inventoryService) UpdateItem(ctx context.Context, ownerID, itemID string, req dto.UpdateInventoryItemRequest) (*domain.InventoryItem, error) {
	item, err := s.inventoryRepo.FindInventoryItemByID(ctx, ownerID, itemID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to find inventory item for update", slog.String("item_id", itemID))
		return nil, err
	}
	if req.ItemName != nil {
		if item.ItemName, err = requireText("item name", *req.ItemName); err != nil {
			return nil, err
		}
	}
	if req.Unit != nil {
		if item.Unit, err = requireText("unit", *req.Unit); err != nil {
			return nil, err
		}
	}
	if req.Quantity != nil {
		if err := requireNonNegative("quantity", *req.Quantity); err != nil {
			return nil, err
		}
		item.Quantity = *req.Quantity
	}
	if req.Description != nil {
		item.Description = req.Description
	}
	item.Touch(ownerID, s.now())

	if err := s.inventoryRepo.UpdateInventoryItem(ctx, *item); err != nil {
		s.logFailure(ctx, err, "Failed to update inventory item", slog.String("item_id", itemID))
		return nil, fmt.Errorf("failed to update inventory item: %w", err)
	}
	s.emit(ctx, events.EntityInventory, events.OpUpdate, ownerID, itemID)
	return item, nil
}

func (s *inventoryService) DeleteItem(ctx context.Context, ownerID, itemID string) error {
	if err := s.inventoryRepo.DeleteInventoryItem(ctx, ownerID, itemID); err != nil {
		s.logFailure(ctx, err, "Failed to delete inventory item", slog.String("item_id", itemID))
		return err
	}
	s.emit(ctx, events.EntityInventory, events.OpDelete, ownerID, itemID)
	return nil
}

func (s *inventoryService) AdjustQuantity(ctx context.Context, ownerID, itemID string, req dto.AdjustInventoryRequest) (*domain.InventoryItem, error) {
	if req.Delta.IsZero() {
		return nil, fmt.Errorf("%w: delta must not be zero", apperrors.ErrValidation)
	}
	item, err := s.inventoryRepo.AdjustInventoryQuantity(ctx, ownerID, itemID, req.Delta, ownerID, s.now())
	if err != nil {
		s.logFailure(ctx, err, "Failed to adjust inventory", slog.String("item_id", itemID), slog.String("delta", req.Delta.String()))
		return nil, err
	}
	s.emit(ctx, events.EntityInventory, events.OpUpdate, ownerID, itemID)
	s.LogDebug(ctx, "Inventory adjusted",
		slog.String("item_id", itemID),
		slog.String("delta", req.Delta.String()),
		slog.String("quantity", item.Quantity.String()))
	return item, nil
}
