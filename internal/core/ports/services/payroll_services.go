package services

import (
	"context"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/dto"
)

// StaffSvc manages employees.
type StaffSvc interface {
	CreateStaff(ctx context.Context, ownerID string, req dto.CreateStaffRequest) (*domain.Staff, error)
	GetStaff(ctx context.Context, ownerID, staffID string) (*domain.Staff, error)
	ListStaff(ctx context.Context, ownerID string) ([]domain.Staff, error)
	UpdateStaff(ctx context.Context, ownerID, staffID string, req dto.UpdateStaffRequest) (*domain.Staff, error)
	DeleteStaff(ctx context.Context, ownerID, staffID string) error
}

// SalarySvc records salary payments.
type SalarySvc interface {
	// RecordSalaryPayment fails with ErrDuplicate when the month is already paid.
	RecordSalaryPayment(ctx context.Context, ownerID string, req dto.CreateSalaryPaymentRequest) (*domain.SalaryPayment, error)
	ListSalaryPayments(ctx context.Context, ownerID string, params dto.ListSalaryPaymentsParams) ([]domain.SalaryPayment, error)
	DeleteSalaryPayment(ctx context.Context, ownerID, paymentID string) error
}

// PayrollSvcFacade combines staff and salary operations.
type PayrollSvcFacade interface {
	StaffSvc
	SalarySvc
}
