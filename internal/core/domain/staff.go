package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Staff is an employee on the mess payroll.
type Staff struct {
	StaffID    string          `json:"staffID"`
	OwnerID    string          `json:"ownerID"`
	Name       string          `json:"name"`
	Role       string          `json:"role"`
	BaseSalary decimal.Decimal `json:"baseSalary"`
	Phone      *string         `json:"phone,omitempty"`
	AuditFields
}

// SalaryPayment records a salary paid to a staff member for one month.
type SalaryPayment struct {
	PaymentID string          `json:"paymentID"`
	OwnerID   string          `json:"ownerID"`
	StaffID   string          `json:"staffID"`
	Amount    decimal.Decimal `json:"amount"`
	MonthYear string          `json:"monthYear"` // manifest label, e.g. "March 2025"
	PaidAt    time.Time       `json:"paidAt"`
	Notes     *string         `json:"notes,omitempty"`
	AuditFields
}

// SalaryKey identifies the manifest slot a payment fills.
func SalaryKey(staffID, monthYear string) string {
	return fmt.Sprintf("%s|%s", staffID, monthYear)
}
