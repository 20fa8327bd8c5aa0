package dto

import (
	"time"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInventoryItemRequest defines the data needed to stock an item.
type CreateInventoryItemRequest struct {
	ItemName    string          `json:"itemName" binding:"required,max=200"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit" binding:"required,max=32"`
	Description *string         `json:"description" binding:"omitempty,max=500"`
}

// UpdateInventoryItemRequest defines the fields that may change on an item.
type UpdateInventoryItemRequest struct {
	ItemName    *string          `json:"itemName" binding:"omitempty,max=200"`
	Quantity    *decimal.Decimal `json:"quantity"`
	Unit        *string          `json:"unit" binding:"omitempty,max=32"`
	Description *string          `json:"description" binding:"omitempty,max=500"`
}

// AdjustInventoryRequest moves stock by Delta, which may be negative.
type AdjustInventoryRequest struct {
	Delta decimal.Decimal `json:"delta"`
}

// InventoryItemResponse defines the data returned for an item.
type InventoryItemResponse struct {
	ItemID        string          `json:"itemID"`
	ItemName      string          `json:"itemName"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
	Description   *string         `json:"description,omitempty"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ListInventoryParams defines query parameters for listing items.
type ListInventoryParams struct {
	Limit  int `form:"limit,default=50" binding:"min=1,max=200"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

// ToInventoryItemResponse converts a domain.InventoryItem.
func ToInventoryItemResponse(i *domain.InventoryItem) InventoryItemResponse {
	return InventoryItemResponse{
		ItemID:        i.ItemID,
		ItemName:      i.ItemName,
		Quantity:      i.Quantity,
		Unit:          i.Unit,
		Description:   i.Description,
		LastUpdatedAt: i.LastUpdatedAt,
	}
}

// ToInventoryItemResponses converts a slice of domain.InventoryItem.
func ToInventoryItemResponses(items []domain.InventoryItem) []InventoryItemResponse {
	res := make([]InventoryItemResponse, len(items))
	for i := range items {
		res[i] = ToInventoryItemResponse(&items[i])
	}
	return res
}
