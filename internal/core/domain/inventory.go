package domain

import "github.com/shopspring/decimal"

// InventoryItem is a stocked kitchen item.
type InventoryItem struct {
	ItemID      string          `json:"itemID"`
	OwnerID     string          `json:"ownerID"`
	ItemName    string          `json:"itemName"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	Description *string         `json:"description,omitempty"`
	AuditFields
}
