package repositories

import (
	"context"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
)

// StaffReader defines read operations for staff.
type StaffReader interface {
	FindStaffByID(ctx context.Context, ownerID, staffID string) (*domain.Staff, error)
	ListStaff(ctx context.Context, ownerID string) ([]domain.Staff, error)
}

// StaffWriter defines write operations for staff.
type StaffWriter interface {
	SaveStaff(ctx context.Context, staff domain.Staff) error
	UpdateStaff(ctx context.Context, staff domain.Staff) error
	DeleteStaff(ctx context.Context, ownerID, staffID string) error
}

// StaffRepositoryFacade combines all staff repository interfaces.
type StaffRepositoryFacade interface {
	StaffReader
	StaffWriter
}

// SalaryPaymentReader defines read operations for salary payments.
type SalaryPaymentReader interface {
	FindSalaryPaymentByID(ctx context.Context, ownerID, paymentID string) (*domain.SalaryPayment, error)
	ListSalaryPaymentsByMonth(ctx context.Context, ownerID, monthYear string) ([]domain.SalaryPayment, error)
	ListSalaryPaymentsByStaff(ctx context.Context, ownerID, staffID string) ([]domain.SalaryPayment, error)
}

// SalaryPaymentWriter defines write operations for salary payments. Saving a
// second payment for the same staff member and month fails with ErrDuplicate.
type SalaryPaymentWriter interface {
	SaveSalaryPayment(ctx context.Context, payment domain.SalaryPayment) error
	DeleteSalaryPayment(ctx context.Context, ownerID, paymentID string) error
}

// SalaryPaymentRepositoryFacade combines all salary payment repository interfaces.
type SalaryPaymentRepositoryFacade interface {
	SalaryPaymentReader
	SalaryPaymentWriter
}
