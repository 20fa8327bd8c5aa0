package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Staff is the staff row.
type Staff struct {
	StaffID    string          `db:"staff_id"`
	OwnerID    string          `db:"owner_id"`
	Name       string          `db:"name"`
	Role       string          `db:"role"`
	BaseSalary decimal.Decimal `db:"base_salary"`
	Phone      *string         `db:"phone"`
	AuditFields
}

// SalaryPayment is the salary_payments row.
type SalaryPayment struct {
	PaymentID string          `db:"payment_id"`
	OwnerID   string          `db:"owner_id"`
	StaffID   string          `db:"staff_id"`
	Amount    decimal.Decimal `db:"amount"`
	MonthYear string          `db:"month_year"`
	PaidAt    time.Time       `db:"paid_at"`
	Notes     *string         `db:"notes"`
	AuditFields
}

// InventoryItem is the inventory_items row.
type InventoryItem struct {
	ItemID      string          `db:"item_id"`
	OwnerID     string          `db:"owner_id"`
	ItemName    string          `db:"item_name"`
	Quantity    decimal.Decimal `db:"quantity"`
	Unit        string          `db:"unit"`
	Description *string         `db:"description"`
	AuditFields
}
