package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/apperrors"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
	portsrepo "github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/ports/repositories"
	portssvc "github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/ports/services"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/dto"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/events"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type memberService struct {
	BaseService
	memberRepo portsrepo.MemberRepositoryFacade
	limits     portssvc.PlanLimitSvc
}

// NewMemberService creates a member service. limits may be nil to disable the plan gate.
func NewMemberService(repo portsrepo.MemberRepositoryFacade, limits portssvc.PlanLimitSvc, options ...ServiceOption) portssvc.MemberSvcFacade {
	return &memberService{
		BaseService: newBaseService(options),
		memberRepo:  repo,
		limits:      limits,
	}
}

var _ portssvc.MemberSvcFacade = (*memberService)(nil)

func (s *memberService) CreateMember(ctx context.Context, ownerID string, req dto.CreateMemberRequest) (*domain.Member, error) {
	name, err := requireText("name", req.Name)
	if err != nil {
		return nil, err
	}
	if err := requireNonNegative("monthly fee", req.MonthlyFee); err != nil {
		return nil, err
	}
	status := domain.MemberActive
	if req.Status != nil {
		status = *req.Status
	}
	if s.limits != nil {
		if err := s.limits.EnsureAllowed(ctx, ownerID, domain.ResourceMembers); err != nil {
			return nil, err
		}
	}

	member := domain.Member{
		MemberID:       uuid.NewString(),
		OwnerID:        ownerID,
		Name:           name,
		Phone:          req.Phone,
		MonthlyFee:     req.MonthlyFee,
		Balance:        decimal.Zero,
		Status:         status,
		PlanExpiryDate: req.PlanExpiryDate,
		AuditFields:    domain.NewAuditFields(ownerID, s.now()),
	}
	if err := s.memberRepo.SaveMember(ctx, member); err != nil {
		s.LogError(ctx, err, "Failed to save member", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to create member: %w", err)
	}
	s.emit(ctx, events.EntityMembers, events.OpInsert, ownerID, member.MemberID)
	s.LogInfo(ctx, "Member created", slog.String("member_id", member.MemberID), slog.String("owner_id", ownerID))
	return &member, nil
}

func (s *memberService) GetMember(ctx context.Context, ownerID, memberID string) (*domain.Member, error) {
	member, err := s.memberRepo.FindMemberByID(ctx, ownerID, memberID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to find member", slog.String("member_id", memberID))
		return nil, err
	}
	return member, nil
}

func (s *memberService) ListMembers(ctx context.Context, ownerID string, params dto.ListMembersParams) ([]domain.Member, error) {
	filter := domain.MemberFilter{
		Search: strings.TrimSpace(params.Search),
		Limit:  params.Limit,
		Offset: params.Offset,
	}
	if params.Status != "" {
		status := domain.MemberStatus(params.Status)
		filter.Status = &status
	}
	members, err := s.memberRepo.ListMembers(ctx, ownerID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list members", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	if members == nil {
		return []domain.Member{}, nil
	}
	return members, nil
}

func (s *memberService) ListExpiringMembers(ctx context.Context, ownerID string, within time.Duration) ([]domain.Member, error) {
	if within <= 0 {
		return nil, fmt.Errorf("%w: window must be positive", apperrors.ErrValidation)
	}
	now := s.now()
	members, err := s.memberRepo.ListMembersExpiringBetween(ctx, ownerID, now, now.Add(within))
	if err != nil {
		s.LogError(ctx, err, "Failed to list expiring members", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to list expiring members: %w", err)
	}
	if members == nil {
		return []domain.Member{}, nil
	}
	return members, nil
}

func (s *memberService) UpdateMember(ctx context.Context, ownerID, memberID string, req dto.UpdateMemberRequest) (*domain.Member, error) {
	member, err := s.memberRepo.FindMemberByID(ctx, ownerID, memberID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to find member for update", slog.String("member_id", memberID))
		return nil, err
	}

	if req.Name != nil {
		name, err := requireText("name", *req.Name)
		if err != nil {
			return nil, err
		}
		member.Name = name
	}
	if req.Phone != nil {
		member.Phone = req.Phone
	}
	if req.MonthlyFee != nil {
		if err := requireNonNegative("monthly fee", *req.MonthlyFee); err != nil {
			return nil, err
		}
		member.MonthlyFee = *req.MonthlyFee
	}
	if req.Status != nil {
		member.Status = *req.Status
	}
	if req.PlanExpiryDate != nil {
		member.PlanExpiryDate = req.PlanExpiryDate
	}
	member.Touch(ownerID, s.now())

	if err := s.memberRepo.UpdateMember(ctx, *member); err != nil {
		s.logFailure(ctx, err, "Failed to update member", slog.String("member_id", memberID))
		return nil, fmt.Errorf("failed to update member: %w", err)
	}
	s.emit(ctx, events.EntityMembers, events.OpUpdate, ownerID, memberID)
	return member, nil
}

func (s *memberService) DeleteMember(ctx context.Context, ownerID, memberID string) error {
	if err := s.memberRepo.DeleteMember(ctx, ownerID, memberID); err != nil {
		s.logFailure(ctx, err, "Failed to delete member", slog.String("member_id", memberID))
		return err
	}
	s.emit(ctx, events.EntityMembers, events.OpDelete, ownerID, memberID)
	s.LogInfo(ctx, "Member deleted", slog.String("member_id", memberID), slog.String("owner_id", ownerID))
	return nil
}
