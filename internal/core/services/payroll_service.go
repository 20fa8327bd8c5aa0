package services

import (
	"context"
	"errors"
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

type payrollService struct {
	BaseService
	staffRepo  portsrepo.StaffRepositoryFacade
	salaryRepo portsrepo.SalaryPaymentRepositoryFacade
}

// NewPayrollService creates the staff and salary service.
func NewPayrollService(staffRepo portsrepo.StaffRepositoryFacade, salaryRepo portsrepo.SalaryPaymentRepositoryFacade, options ...ServiceOption) portssvc.PayrollSvcFacade {
	return &payrollService{
		BaseService: newBaseService(options),
		staffRepo:   staffRepo,
		salaryRepo:  salaryRepo,
	}
}

var _ portssvc.PayrollSvcFacade = (*payrollService)(nil)

func (s *payrollService) CreateStaff(ctx context.Context, ownerID string, req dto.CreateStaffRequest) (*domain.Staff, error) {
	name, err := requireText("name", req.Name)
	if err != nil {
		return nil, err
	}
	role, err := requireText("role", req.Role)
	if err != nil {
		return nil, err
	}
	if err := requireNonNegative("base salary", req.BaseSalary); err != nil {
		return nil, err
	}
	staff := domain.Staff{
		StaffID:     uuid.NewString(),
		OwnerID:     ownerID,
		Name:        name,
		Role:        role,
		BaseSalary:  req.BaseSalary,
		Phone:       req.Phone,
		AuditFields: domain.NewAuditFields(ownerID, s.now()),
	}
	if err := s.staffRepo.SaveStaff(ctx, staff); err != nil {
		s.LogError(ctx, err, "Failed to save staff", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to create staff: %w", err)
	}
	s.emit(ctx, events.EntityStaff, events.OpInsert, ownerID, staff.StaffID)
	s.LogInfo(ctx, "Staff created", slog.String("staff_id", staff.StaffID))
	return &staff, nil
}

func (s *payrollService) GetStaff(ctx context.Context, ownerID, staffID string) (*domain.Staff, error) {
	staff, err := s.staffRepo.FindStaffByID(ctx, ownerID, staffID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to find staff", slog.String("staff_id", staffID))
		return nil, err
	}
	return staff, nil
}

func (s *payrollService) ListStaff(ctx context.Context, ownerID string) ([]domain.Staff, error) {
	staff, err := s.staffRepo.ListStaff(ctx, ownerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list staff", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	if staff == nil {
		return []domain.Staff{}, nil
	}
	return staff, nil
}

func (s *payrollService) UpdateStaff(ctx context.Context, ownerID, staffID string, req dto.UpdateStaffRequest) (*domain.Staff, error) {
	staff, err := s.staffRepo.FindStaffByID(ctx, ownerID, staffID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to find staff for update", slog.String("staff_id", staffID))
		return nil, err
	}
	if req.Name != nil {
		if staff.Name, err = requireText("name", *req.Name); err != nil {
			return nil, err
		}
	}
	if req.Role != nil {
		if staff.Role, err = requireText("role", *req.Role); err != nil {
			return nil, err
		}
	}
	if req.BaseSalary != nil {
		if err := requireNonNegative("base salary", *req.BaseSalary); err != nil {
			return nil, err
		}
		staff.BaseSalary = *req.BaseSalary
	}
	if req.Phone != nil {
		staff.Phone = req.Phone
	}
	staff.Touch(ownerID, s.now())

	if err := s.staffRepo.UpdateStaff(ctx, *staff); err != nil {
		s.logFailure(ctx, err, "Failed to update staff", slog.String("staff_id", staffID))
		return nil, fmt.Errorf("failed to update staff: %w", err)
	}
	s.emit(ctx, events.EntityStaff, events.OpUpdate, ownerID, staffID)
	return staff, nil
}

func (s *payrollService) DeleteStaff(ctx context.Context, ownerID, staffID string) error {
	if err := s.staffRepo.DeleteStaff(ctx, ownerID, staffID); err != nil {
		s.logFailure(ctx, err, "Failed to delete staff", slog.String("staff_id", staffID))
		return err
	}
	s.emit(ctx, events.EntityStaff, events.OpDelete, ownerID, staffID)
	return nil
}

func (s *payrollService) RecordSalaryPayment(ctx context.Context, ownerID string, req dto.CreateSalaryPaymentRequest) (*domain.SalaryPayment, error) {
	if err := requirePositive("amount", req.Amount); err != nil {
		return nil, err
	}
	month, err := domain.ParseMonth(req.MonthYear, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if _, err := s.staffRepo.FindStaffByID(ctx, ownerID, req.StaffID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: staff %s does not exist", apperrors.ErrValidation, req.StaffID)
		}
		s.LogError(ctx, err, "Failed to look up staff for salary", slog.String("staff_id", req.StaffID))
		return nil, err
	}

	now := s.now()
	paidAt := now
	if req.PaidAt != nil {
		paidAt = *req.PaidAt
	}
	payment := domain.SalaryPayment{
		PaymentID:   uuid.NewString(),
		OwnerID:     ownerID,
		StaffID:     req.StaffID,
		Amount:      req.Amount,
		MonthYear:   month.Label(),
		PaidAt:      paidAt,
		Notes:       req.Notes,
		AuditFields: domain.NewAuditFields(ownerID, now),
	}
	if err := s.salaryRepo.SaveSalaryPayment(ctx, payment); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			s.LogDebug(ctx, "Salary already paid for month",
				slog.String("staff_id", payment.StaffID),
				slog.String("month_year", payment.MonthYear))
			return nil, fmt.Errorf("salary for %s already paid: %w", payment.MonthYear, err)
		}
		s.LogError(ctx, err, "Failed to save salary payment", slog.String("staff_id", payment.StaffID))
		return nil, fmt.Errorf("failed to record salary payment: %w", err)
	}
	s.emit(ctx, events.EntitySalaryPayments, events.OpInsert, ownerID, payment.PaymentID)
	s.LogInfo(ctx, "Salary paid",
		slog.String("staff_id", payment.StaffID),
		slog.String("month_year", payment.MonthYear),
		slog.String("amount", payment.Amount.String()))
	return &payment, nil
}

func (s *payrollService) ListSalaryPayments(ctx context.Context, ownerID string, params dto.ListSalaryPaymentsParams) ([]domain.SalaryPayment, error) {
	var (
		payments []domain.SalaryPayment
		err      error
	)
	switch {
	case params.Month != "":
		month, perr := domain.ParseMonth(params.Month, nil)
		if perr != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, perr)
		}
		payments, err = s.salaryRepo.ListSalaryPaymentsByMonth(ctx, ownerID, month.Label())
	case params.StaffID != "":
		payments, err = s.salaryRepo.ListSalaryPaymentsByStaff(ctx, ownerID, params.StaffID)
	default:
		return nil, fmt.Errorf("%w: month or staffID is required", apperrors.ErrValidation)
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to list salary payments", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to list salary payments: %w", err)
	}
	if payments == nil {
		return []domain.SalaryPayment{}, nil
	}
	return payments, nil
}

func (s *payrollService) DeleteSalaryPayment(ctx context.Context, ownerID, paymentID string) error {
	if err := s.salaryRepo.DeleteSalaryPayment(ctx, ownerID, paymentID); err != nil {
		s.logFailure(ctx, err, "Failed to delete salary payment", slog.String("payment_id", paymentID))
		return err
	}
	s.emit(ctx, events.EntitySalaryPayments, events.OpDelete, ownerID, paymentID)
	return nil
}
