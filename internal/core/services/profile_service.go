package services

import (
	"context"
	"errors"
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
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/utils"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

var (
	hundred    = decimal.NewFromInt(100)
	maxTaxRate = decimal.NewFromInt(100)
)

type profileService struct {
	BaseService
	profileRepo portsrepo.ProfileRepositoryFacade
	memberRepo  portsrepo.MemberReader
	limits      portssvc.PlanLimitSvc
}

// NewProfileService creates the tenant settings service.
func NewProfileService(profileRepo portsrepo.ProfileRepositoryFacade, memberRepo portsrepo.MemberReader, limits portssvc.PlanLimitSvc, options ...ServiceOption) portssvc.ProfileSvcFacade {
	return &profileService{
		BaseService: newBaseService(options),
		profileRepo: profileRepo,
		memberRepo:  memberRepo,
		limits:      limits,
	}
}

var _ portssvc.ProfileSvcFacade = (*profileService)(nil)

func (s *profileService) GetProfile(ctx context.Context, ownerID string) (*domain.Profile, error) {
	profile, err := loadProfile(ctx, s.profileRepo, ownerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load profile", slog.String("owner_id", ownerID))
		return nil, err
	}
	return profile, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, ownerID string, req dto.UpdateProfileRequest) (*domain.Profile, error) {
	profile, err := s.GetProfile(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if req.BusinessName != nil {
		name := strings.TrimSpace(*req.BusinessName)
		profile.BusinessName = &name
	}
	if req.CurrencyCode != nil {
		unit, err := currency.ParseISO(*req.CurrencyCode)
		if err != nil {
			return nil, fmt.Errorf("%w: unknown currency %q", apperrors.ErrValidation, *req.CurrencyCode)
		}
		code := unit.String()
		profile.CurrencyCode = &code
	}
	if req.TaxEnabled != nil {
		profile.TaxEnabled = req.TaxEnabled
	}
	if req.TaxRate != nil {
		if req.TaxRate.IsNegative() || req.TaxRate.GreaterThan(maxTaxRate) {
			return nil, fmt.Errorf("%w: tax rate must be between 0 and 100", apperrors.ErrValidation)
		}
		profile.TaxRate = req.TaxRate
	}
	if req.TaxName != nil {
		profile.TaxName = req.TaxName
	}
	if req.Timezone != nil {
		if _, err := time.LoadLocation(*req.Timezone); err != nil {
			return nil, fmt.Errorf("%w: unknown timezone %q", apperrors.ErrValidation, *req.Timezone)
		}
		profile.Timezone = req.Timezone
	}
	if req.InvoicePrefix != nil {
		prefix := strings.ToUpper(strings.TrimSpace(*req.InvoicePrefix))
		profile.InvoicePrefix = &prefix
	}
	return s.save(ctx, profile)
}

func (s *profileService) UpdatePlan(ctx context.Context, ownerID string, req dto.UpdatePlanRequest) (*domain.Profile, error) {
	profile, err := s.GetProfile(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if req.PlanType != nil {
		switch *req.PlanType {
		case domain.PlanFree, domain.PlanPro:
		default:
			return nil, fmt.Errorf("%w: unknown plan %q", apperrors.ErrValidation, *req.PlanType)
		}
		profile.PlanType = req.PlanType
	}
	if req.SubscriptionStatus != nil {
		switch *req.SubscriptionStatus {
		case domain.SubscriptionTrial, domain.SubscriptionActive, domain.SubscriptionExpired, domain.SubscriptionCancelled:
		default:
			return nil, fmt.Errorf("%w: unknown subscription status %q", apperrors.ErrValidation, *req.SubscriptionStatus)
		}
		profile.SubscriptionStatus = req.SubscriptionStatus
	}
	if req.SubscriptionExpiry != nil {
		profile.SubscriptionExpiry = req.SubscriptionExpiry
	}
	if req.StorageLimitBytes != nil {
		if *req.StorageLimitBytes <= 0 {
			return nil, fmt.Errorf("%w: storage limit must be positive", apperrors.ErrValidation)
		}
		profile.StorageLimitBytes = req.StorageLimitBytes
	}
	return s.save(ctx, profile)
}

func (s *profileService) save(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	now := s.now()
	if profile.CreatedAt.IsZero() {
		profile.AuditFields = domain.NewAuditFields(profile.OwnerID, now)
	} else {
		profile.Touch(profile.OwnerID, now)
	}
	profile.SchemaVersion = domain.ProfileSchemaVersion

	if err := s.profileRepo.UpsertProfile(ctx, *profile); err != nil {
		s.LogError(ctx, err, "Failed to save profile", slog.String("owner_id", profile.OwnerID))
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	s.emit(ctx, events.EntityProfiles, events.OpUpdate, profile.OwnerID, profile.OwnerID)
	return profile, nil
}

func (s *profileService) IssueInvoice(ctx context.Context, ownerID, memberID string) (*domain.Invoice, error) {
	member, err := s.memberRepo.FindMemberByID(ctx, ownerID, memberID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to find member for invoice", slog.String("member_id", memberID))
		return nil, err
	}
	if s.limits != nil {
		if err := s.limits.EnsureAllowed(ctx, ownerID, domain.ResourceInvoices); err != nil {
			return nil, err
		}
	}
	profile, err := s.GetProfile(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	seq, err := s.profileRepo.NextInvoiceSequence(ctx, ownerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to allocate invoice number", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to allocate invoice number: %w", err)
	}

	now := s.now().In(profile.Location())
	code := profile.Currency()
	precision := int32(utils.CurrencyPrecision(code))
	rate := profile.EffectiveTaxRate()
	subtotal := member.MonthlyFee
	tax := subtotal.Mul(rate).Div(hundred).Round(precision)

	invoice := &domain.Invoice{
		Number:             profile.FormatInvoiceNumber(seq),
		Sequence:           seq,
		MemberID:           member.MemberID,
		MemberName:         member.Name,
		Period:             domain.MonthOf(now).Label(),
		CurrencyCode:       code,
		Subtotal:           subtotal,
		TaxRate:            rate,
		TaxAmount:          tax,
		Total:              subtotal.Add(tax),
		OutstandingBalance: member.Balance,
		IssuedAt:           now,
	}
	if profile.TaxIsEnabled() {
		invoice.TaxName = profile.TaxLabel()
	}

	s.emit(ctx, events.EntityProfiles, events.OpUpdate, ownerID, ownerID)
	s.track(ownerID, utils.EventInvoiceIssued, map[string]any{
		"sequence": seq,
		"currency": code,
	})
	s.LogInfo(ctx, "Invoice issued",
		slog.String("number", invoice.Number),
		slog.String("member_id", memberID),
		slog.String("total", invoice.Total.String()))
	return invoice, nil
}
