package dto

import (
	"time"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateStaffRequest defines the data needed to add an employee.
type CreateStaffRequest struct {
	Name       string          `json:"name" binding:"required,max=200"`
	Role       string          `json:"role" binding:"required,max=100"`
	BaseSalary decimal.Decimal `json:"baseSalary"`
	Phone      *string         `json:"phone" binding:"omitempty,max=32"`
}

// UpdateStaffRequest defines the fields that may change on an employee.
type UpdateStaffRequest struct {
	Name       *string          `json:"name" binding:"omitempty,max=200"`
	Role       *string          `json:"role" binding:"omitempty,max=100"`
	BaseSalary *decimal.Decimal `json:"baseSalary"`
	Phone      *string          `json:"phone" binding:"omitempty,max=32"`
}

// StaffResponse defines the data returned for an employee.
type StaffResponse struct {
	StaffID    string          `json:"staffID"`
	Name       string          `json:"name"`
	Role       string          `json:"role"`
	BaseSalary decimal.Decimal `json:"baseSalary"`
	Phone      *string         `json:"phone,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// CreateSalaryPaymentRequest marks a month's salary as paid.
type CreateSalaryPaymentRequest struct {
	StaffID   string          `json:"staffID" binding:"required"`
	Amount    decimal.Decimal `json:"amount"`
	MonthYear string          `json:"monthYear" binding:"required,month_year"`
	PaidAt    *time.Time      `json:"paidAt"` // defaults to now
	Notes     *string         `json:"notes" binding:"omitempty,max=500"`
}

// SalaryPaymentResponse defines the data returned for a salary payment.
type SalaryPaymentResponse struct {
	PaymentID string          `json:"paymentID"`
	StaffID   string          `json:"staffID"`
	Amount    decimal.Decimal `json:"amount"`
	MonthYear string          `json:"monthYear"`
	PaidAt    time.Time       `json:"paidAt"`
	Notes     *string         `json:"notes,omitempty"`
}

// ListSalaryPaymentsParams selects payments by month or by employee; one is required.
type ListSalaryPaymentsParams struct {
	Month   string `form:"month" binding:"omitempty,month_year"`
	StaffID string `form:"staffID"`
}

// ToStaffResponse converts a domain.Staff.
func ToStaffResponse(s *domain.Staff) StaffResponse {
	return StaffResponse{
		StaffID:    s.StaffID,
		Name:       s.Name,
		Role:       s.Role,
		BaseSalary: s.BaseSalary,
		Phone:      s.Phone,
		CreatedAt:  s.CreatedAt,
	}
}

// ToStaffResponses converts a slice of domain.Staff.
func ToStaffResponses(staff []domain.Staff) []StaffResponse {
	res := make([]StaffResponse, len(staff))
	for i := range staff {
		res[i] = ToStaffResponse(&staff[i])
	}
	return res
}

// ToSalaryPaymentResponse converts a domain.SalaryPayment.
func ToSalaryPaymentResponse(p *domain.SalaryPayment) SalaryPaymentResponse {
	return SalaryPaymentResponse{
		PaymentID: p.PaymentID,
		StaffID:   p.StaffID,
		Amount:    p.Amount,
		MonthYear: p.MonthYear,
		PaidAt:    p.PaidAt,
		Notes:     p.Notes,
	}
}

// ToSalaryPaymentResponses converts a slice of domain.SalaryPayment.
func ToSalaryPaymentResponses(payments []domain.SalaryPayment) []SalaryPaymentResponse {
	res := make([]SalaryPaymentResponse, len(payments))
	for i := range payments {
		res[i] = ToSalaryPaymentResponse(&payments[i])
	}
	return res
}
