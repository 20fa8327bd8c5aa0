package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/apperrors"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
	portsrepo "github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/ports/repositories"
	portssvc "github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/ports/services"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/utils"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/utils/accounting"
)

type planLimitService struct {
	BaseService
	profileRepo portsrepo.ProfileRepositoryFacade
	memberRepo  portsrepo.MemberReader
	expenseRepo portsrepo.ExpenseReader
}

// NewPlanLimitService creates the free-tier gate.
func NewPlanLimitService(profileRepo portsrepo.ProfileRepositoryFacade, memberRepo portsrepo.MemberReader, expenseRepo portsrepo.ExpenseReader, options ...ServiceOption) portssvc.PlanLimitSvc {
	return &planLimitService{
		BaseService: newBaseService(options),
		profileRepo: profileRepo,
		memberRepo:  memberRepo,
		expenseRepo: expenseRepo,
	}
}

var _ portssvc.PlanLimitSvc = (*planLimitService)(nil)

// GetUsage counts members, receipts and issued invoices. Counts are read
// without locking, so concurrent creates may overshoot a ceiling by the
// number of racing requests.
func (s *planLimitService) GetUsage(ctx context.Context, ownerID string) (*domain.PlanUsage, error) {
	profile, err := loadProfile(ctx, s.profileRepo, ownerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load profile for plan usage", slog.String("owner_id", ownerID))
		return nil, err
	}
	members, err := s.memberRepo.CountMembers(ctx, ownerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count members", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to count members: %w", err)
	}
	receipts, err := s.expenseRepo.CountReceipts(ctx, ownerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count receipts", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to count receipts: %w", err)
	}
	usage := accounting.EvaluatePlanUsage(profile.Plan(), members, profile.InvoiceCounter, receipts)
	return &usage, nil
}

func (s *planLimitService) EnsureAllowed(ctx context.Context, ownerID string, resource domain.PlanResource) error {
	usage, err := s.GetUsage(ctx, ownerID)
	if err != nil {
		return err
	}
	entry := usage.For(resource)
	if entry.Allowed {
		return nil
	}
	s.LogInfo(ctx, "Plan limit reached",
		slog.String("owner_id", ownerID),
		slog.String("resource", string(resource)),
		slog.Int64("count", entry.Count),
		slog.Int64("limit", entry.Limit))
	s.track(ownerID, utils.EventPlanLimitReached, map[string]any{
		"resource": string(resource),
		"count":    entry.Count,
		"limit":    entry.Limit,
		"plan":     string(usage.Plan),
	})
	return fmt.Errorf("%w: %s limit of %d on the %s plan", apperrors.ErrPlanLimitReached, resource, entry.Limit, usage.Plan)
}
