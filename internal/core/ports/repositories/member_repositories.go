package repositories

import (
	"context"
	"time"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
)

// MemberReader defines read operations for members. Every call is scoped to ownerID.
type MemberReader interface {
	FindMemberByID(ctx context.Context, ownerID, memberID string) (*domain.Member, error)
	ListMembers(ctx context.Context, ownerID string, filter domain.MemberFilter) ([]domain.Member, error)
	CountMembers(ctx context.Context, ownerID string) (int64, error)

	// ListMembersExpiringBetween returns members whose plan ends within [from, to].
	ListMembersExpiringBetween(ctx context.Context, ownerID string, from, to time.Time) ([]domain.Member, error)
}

// MemberWriter defines write operations for members.
type MemberWriter interface {
	SaveMember(ctx context.Context, member domain.Member) error
	UpdateMember(ctx context.Context, member domain.Member) error
	DeleteMember(ctx context.Context, ownerID, memberID string) error
}

// MemberRepositoryFacade combines all member repository interfaces.
type MemberRepositoryFacade interface {
	MemberReader
	MemberWriter
}
