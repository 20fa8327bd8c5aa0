package services

import (
	"context"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/dto"
)

// ProfileSvcFacade manages tenant settings and invoice numbering.
type ProfileSvcFacade interface {
	// GetProfile returns the stored profile, or the defaults when none was saved.
	GetProfile(ctx context.Context, ownerID string) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, ownerID string, req dto.UpdateProfileRequest) (*domain.Profile, error)
	UpdatePlan(ctx context.Context, ownerID string, req dto.UpdatePlanRequest) (*domain.Profile, error)

	// IssueInvoice numbers and prices a monthly bill for the member, subject
	// to the plan's invoice limit.
	IssueInvoice(ctx context.Context, ownerID, memberID string) (*domain.Invoice, error)
}
