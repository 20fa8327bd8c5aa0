package services

import (
	"context"
	"time"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/dto"
)

// MemberReaderSvc defines read operations for members.
type MemberReaderSvc interface {
	GetMember(ctx context.Context, ownerID, memberID string) (*domain.Member, error)
	ListMembers(ctx context.Context, ownerID string, params dto.ListMembersParams) ([]domain.Member, error)

	// ListExpiringMembers returns members whose plan ends within the window from now.
	ListExpiringMembers(ctx context.Context, ownerID string, within time.Duration) ([]domain.Member, error)
}

// MemberWriterSvc defines write operations for members.
type MemberWriterSvc interface {
	// CreateMember enrols a member, subject to the plan's member limit.
	CreateMember(ctx context.Context, ownerID string, req dto.CreateMemberRequest) (*domain.Member, error)
	UpdateMember(ctx context.Context, ownerID, memberID string, req dto.UpdateMemberRequest) (*domain.Member, error)
	DeleteMember(ctx context.Context, ownerID, memberID string) error
}

// MemberSvcFacade combines all member service interfaces.
type MemberSvcFacade interface {
	MemberReaderSvc
	MemberWriterSvc
}
