package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
	portsrepo "github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/ports/repositories"
	portssvc "github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/ports/services"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/views"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/utils/accounting"
)

const expiringWindow = 7 * 24 * time.Hour

type insightsService struct {
	BaseService
	repos     portsrepo.RepositoryProvider
	limits    portssvc.PlanLimitSvc
	pettyCash portssvc.PettyCashReaderSvc
}

// NewInsightsService creates the alerts and dashboard service.
func NewInsightsService(repos portsrepo.RepositoryProvider, limits portssvc.PlanLimitSvc, pettyCash portssvc.PettyCashReaderSvc, options ...ServiceOption) portssvc.InsightsSvc {
	return &insightsService{
		BaseService: newBaseService(options),
		repos:       repos,
		limits:      limits,
		pettyCash:   pettyCash,
	}
}

var _ portssvc.InsightsSvc = (*insightsService)(nil)

// localNow is the current time in the tenant timezone.
func (s *insightsService) localNow(ctx context.Context, ownerID string) (*domain.Profile, time.Time, error) {
	profile, err := loadProfile(ctx, s.repos.ProfileRepo, ownerID)
	if err != nil {
		return nil, time.Time{}, err
	}
	return profile, s.now().In(profile.Location()), nil
}

// trailingExpenses loads expenses from the start of the third month before now.
func (s *insightsService) trailingExpenses(ctx context.Context, ownerID string, now time.Time) ([]domain.Expense, error) {
	from := domain.MonthOf(now).AddMonths(-3).Start()
	expenses, err := s.repos.ExpenseRepo.ListExpenses(ctx, ownerID, domain.ExpenseFilter{From: &from})
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}
	return expenses, nil
}

func (s *insightsService) monthPayments(ctx context.Context, ownerID string, month domain.Month) ([]domain.Transaction, error) {
	from, to := month.Start(), month.End()
	payment := domain.TransactionPayment
	txns, err := s.repos.TransactionRepo.ListTransactions(ctx, ownerID, domain.TransactionFilter{From: &from, To: &to, Type: &payment})
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	return txns, nil
}

func (s *insightsService) GetAlerts(ctx context.Context, ownerID string) ([]domain.Alert, error) {
	_, now, err := s.localNow(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	// Every alert window is made of whole local days, so a day key is exact.
	key := views.Key{OwnerID: ownerID, View: views.ViewAlerts, Period: now.Format(dateLayout)}
	v, generation, ok := s.cached(key)
	if ok {
		return v.([]domain.Alert), nil
	}

	expenses, err := s.trailingExpenses(ctx, ownerID, now)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute alerts", slog.String("owner_id", ownerID))
		return nil, err
	}
	payments, err := s.monthPayments(ctx, ownerID, domain.MonthOf(now))
	if err != nil {
		s.LogError(ctx, err, "Failed to compute alerts", slog.String("owner_id", ownerID))
		return nil, err
	}
	alerts := accounting.ComputeAlerts(expenses, payments, now)
	if alerts == nil {
		alerts = []domain.Alert{}
	}
	s.remember(key, generation, alerts)
	s.LogDebug(ctx, "Alerts computed", slog.String("owner_id", ownerID), slog.Int("count", len(alerts)))
	return alerts, nil
}

func (s *insightsService) GetVariance(ctx context.Context, ownerID string) ([]domain.CategoryVariance, error) {
	_, now, err := s.localNow(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	key := views.Key{OwnerID: ownerID, View: views.ViewVariance, Period: domain.MonthOf(now).Key()}
	v, generation, ok := s.cached(key)
	if ok {
		return v.([]domain.CategoryVariance), nil
	}
	expenses, err := s.trailingExpenses(ctx, ownerID, now)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute variance", slog.String("owner_id", ownerID))
		return nil, err
	}
	chart := accounting.VarianceChart(expenses, now)
	s.remember(key, generation, chart)
	return chart, nil
}

func (s *insightsService) GetDashboard(ctx context.Context, ownerID string) (*domain.Dashboard, error) {
	profile, now, err := s.localNow(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	month := domain.MonthOf(now)
	key := views.Key{OwnerID: ownerID, View: views.ViewDashboard, Period: now.Format(dateLayout)}
	v, generation, ok := s.cached(key)
	if ok {
		d := v.(domain.Dashboard)
		return &d, nil
	}

	members, err := s.repos.MemberRepo.ListMembers(ctx, ownerID, domain.MemberFilter{})
	if err != nil {
		s.LogError(ctx, err, "Failed to load members for dashboard", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to load members: %w", err)
	}
	expenses, err := s.trailingExpenses(ctx, ownerID, now)
	if err != nil {
		s.LogError(ctx, err, "Failed to load expenses for dashboard", slog.String("owner_id", ownerID))
		return nil, err
	}
	payments, err := s.monthPayments(ctx, ownerID, month)
	if err != nil {
		s.LogError(ctx, err, "Failed to load payments for dashboard", slog.String("owner_id", ownerID))
		return nil, err
	}
	balance, err := s.pettyCash.CurrentBalance(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	usage, err := s.limits.GetUsage(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	dashboard := domain.Dashboard{
		Month:            month.Key(),
		CurrencyCode:     profile.Currency(),
		TotalMembers:     len(members),
		TotalDues:        accounting.TotalDues(members),
		MonthRevenue:     accounting.SumPayments(payments, month),
		MonthExpenses:    accounting.SumExpenses(expenses, func(e domain.Expense) bool { return month.Contains(e.Date) }),
		PettyCashBalance: balance,
		AlertCount:       len(accounting.ComputeAlerts(expenses, payments, now)),
		Usage:            *usage,
	}
	for _, m := range members {
		if m.IsActive() {
			dashboard.ActiveMembers++
		}
		if m.PlanExpiresWithin(now, expiringWindow) {
			dashboard.ExpiringMembers++
		}
	}
	s.remember(key, generation, dashboard)
	return &dashboard, nil
}
