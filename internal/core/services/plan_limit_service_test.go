package services_test

import (
	"context"
	"testing"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/apperrors"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanLimitService_FreeTierBlocksFiftyFirstMember(t *testing.T) {
	ctx := context.Background()
	profiles := new(MockProfileRepository)
	members := new(MockMemberRepository)
	expenses := new(MockExpenseRepository)
	profiles.On("FindProfile", ctx, owner).Return(nil, apperrors.ErrNotFound)
	members.On("CountMembers", ctx, owner).Return(int64(50), nil)
	expenses.On("CountReceipts", ctx, owner).Return(int64(3), nil)

	svc := services.NewPlanLimitService(profiles, members, expenses)

	usage, err := svc.GetUsage(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, domain.PlanFree, usage.Plan)
	assert.False(t, usage.CanAddMember())
	assert.True(t, usage.CanUploadReceipt())
	assert.True(t, usage.CanIssueInvoice())

	assert.ErrorIs(t, svc.EnsureAllowed(ctx, owner, domain.ResourceMembers), apperrors.ErrPlanLimitReached)
	assert.NoError(t, svc.EnsureAllowed(ctx, owner, domain.ResourceReceipts))
}

func TestPlanLimitService_InvoiceCountComesFromProfileCounter(t *testing.T) {
	ctx := context.Background()
	profile := domain.DefaultProfile(owner)
	profile.InvoiceCounter = 50
	profiles := new(MockProfileRepository)
	members := new(MockMemberRepository)
	expenses := new(MockExpenseRepository)
	profiles.On("FindProfile", ctx, owner).Return(&profile, nil)
	members.On("CountMembers", ctx, owner).Return(int64(0), nil)
	expenses.On("CountReceipts", ctx, owner).Return(int64(0), nil)

	svc := services.NewPlanLimitService(profiles, members, expenses)

	assert.ErrorIs(t, svc.EnsureAllowed(ctx, owner, domain.ResourceInvoices), apperrors.ErrPlanLimitReached)
}

func TestPlanLimitService_ProIsUnlimited(t *testing.T) {
	ctx := context.Background()
	pro := domain.PlanPro
	profile := domain.DefaultProfile(owner)
	profile.PlanType = &pro
	profile.InvoiceCounter = 5000
	profiles := new(MockProfileRepository)
	members := new(MockMemberRepository)
	expenses := new(MockExpenseRepository)
	profiles.On("FindProfile", ctx, owner).Return(&profile, nil)
	members.On("CountMembers", ctx, owner).Return(int64(900), nil)
	expenses.On("CountReceipts", ctx, owner).Return(int64(400), nil)

	svc := services.NewPlanLimitService(profiles, members, expenses)

	for _, r := range []domain.PlanResource{domain.ResourceMembers, domain.ResourceInvoices, domain.ResourceReceipts} {
		assert.NoError(t, svc.EnsureAllowed(ctx, owner, r), r)
	}
}

func TestPlanLimitService_CountErrorPropagates(t *testing.T) {
	ctx := context.Background()
	profiles := new(MockProfileRepository)
	members := new(MockMemberRepository)
	expenses := new(MockExpenseRepository)
	profiles.On("FindProfile", ctx, owner).Return(nil, apperrors.ErrNotFound)
	members.On("CountMembers", ctx, owner).Return(int64(0), assert.AnError)

	svc := services.NewPlanLimitService(profiles, members, expenses)

	_, err := svc.GetUsage(ctx, owner)
	assert.ErrorIs(t, err, assert.AnError)
}
