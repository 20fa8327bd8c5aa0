package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/apperrors"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
	portsrepo "github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/ports/repositories"
	portssvc "github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/ports/services"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/views"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/utils/accounting"
)

type reportingService struct {
	BaseService
	repos portsrepo.RepositoryProvider
}

// NewReportingService creates the monthly audit report service.
func NewReportingService(repos portsrepo.RepositoryProvider, options ...ServiceOption) portssvc.ReportingSvc {
	return &reportingService{BaseService: newBaseService(options), repos: repos}
}

var _ portssvc.ReportingSvc = (*reportingService)(nil)

func (s *reportingService) BuildAuditReport(ctx context.Context, ownerID, monthKey string) (*domain.AuditReport, error) {
	profile, err := loadProfile(ctx, s.repos.ProfileRepo, ownerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load profile for audit report", slog.String("owner_id", ownerID))
		return nil, err
	}
	loc := profile.Location()
	month := domain.MonthOf(s.now().In(loc))
	if monthKey != "" {
		if month, err = domain.ParseMonth(monthKey, loc); err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
	}

	key := views.Key{OwnerID: ownerID, View: views.ViewAudit, Period: month.Key()}
	v, generation, ok := s.cached(key)
	if ok {
		report := v.(domain.AuditReport)
		return &report, nil
	}

	in, err := s.loadAuditInput(ctx, ownerID, month)
	if err != nil {
		s.LogError(ctx, err, "Failed to load audit records",
			slog.String("owner_id", ownerID),
			slog.String("month", month.Key()))
		return nil, err
	}
	report := accounting.BuildAuditReport(in)
	s.remember(key, generation, report)
	s.LogInfo(ctx, "Audit report built",
		slog.String("owner_id", ownerID),
		slog.String("month", month.Key()),
		slog.String("net_profit", report.NetProfit.String()))
	return &report, nil
}

func (s *reportingService) loadAuditInput(ctx context.Context, ownerID string, month domain.Month) (accounting.AuditInput, error) {
	from, to := month.Start(), month.End()
	in := accounting.AuditInput{Month: month}
	var err error

	payment := domain.TransactionPayment
	if in.Transactions, err = s.repos.TransactionRepo.ListTransactions(ctx, ownerID, domain.TransactionFilter{From: &from, To: &to, Type: &payment}); err != nil {
		return in, fmt.Errorf("failed to load transactions: %w", err)
	}
	if in.Expenses, err = s.repos.ExpenseRepo.ListExpenses(ctx, ownerID, domain.ExpenseFilter{From: &from, To: &to}); err != nil {
		return in, fmt.Errorf("failed to load expenses: %w", err)
	}
	if in.Staff, err = s.repos.StaffRepo.ListStaff(ctx, ownerID); err != nil {
		return in, fmt.Errorf("failed to load staff: %w", err)
	}
	if in.SalaryPayments, err = s.repos.SalaryRepo.ListSalaryPaymentsByMonth(ctx, ownerID, month.Label()); err != nil {
		return in, fmt.Errorf("failed to load salary payments: %w", err)
	}
	if in.PettyCash, err = s.repos.PettyCashRepo.ListPettyCash(ctx, ownerID, &from, &to); err != nil {
		return in, fmt.Errorf("failed to load petty cash: %w", err)
	}
	return in, nil
}
