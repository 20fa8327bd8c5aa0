package dto

import (
	"time"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateMemberRequest defines the data needed to enrol a member.
type CreateMemberRequest struct {
	Name           string               `json:"name" binding:"required,max=200"`
	Phone          *string              `json:"phone" binding:"omitempty,max=32"`
	MonthlyFee     decimal.Decimal      `json:"monthlyFee"`
	Status         *domain.MemberStatus `json:"status" binding:"omitempty,member_status"`
	PlanExpiryDate *time.Time           `json:"planExpiryDate"`
}

// UpdateMemberRequest defines the fields that may change on a member.
// Balance is not here; it only moves through transactions.
type UpdateMemberRequest struct {
	Name           *string              `json:"name" binding:"omitempty,max=200"`
	Phone          *string              `json:"phone" binding:"omitempty,max=32"`
	MonthlyFee     *decimal.Decimal     `json:"monthlyFee"`
	Status         *domain.MemberStatus `json:"status" binding:"omitempty,member_status"`
	PlanExpiryDate *time.Time           `json:"planExpiryDate"`
}

// MemberResponse defines the data returned for a member.
type MemberResponse struct {
	MemberID       string              `json:"memberID"`
	Name           string              `json:"name"`
	Phone          *string             `json:"phone,omitempty"`
	MonthlyFee     decimal.Decimal     `json:"monthlyFee"`
	Balance        decimal.Decimal     `json:"balance"`
	Status         domain.MemberStatus `json:"status"`
	PlanExpiryDate *time.Time          `json:"planExpiryDate,omitempty"`
	CreatedAt      time.Time           `json:"createdAt"`
	LastUpdatedAt  time.Time           `json:"lastUpdatedAt"`
}

// ListMembersParams defines query parameters for listing members.
type ListMembersParams struct {
	Status string `form:"status" binding:"omitempty,oneof=active inactive"`
	Search string `form:"q" binding:"omitempty,max=100"`
	Limit  int    `form:"limit,default=50" binding:"min=1,max=200"`
	Offset int    `form:"offset,default=0" binding:"min=0"`
}

// ListExpiringMembersParams defines the look-ahead window in days.
type ListExpiringMembersParams struct {
	Days int `form:"days,default=7" binding:"min=1,max=90"`
}

// ListMembersResponse wraps the list of members.
type ListMembersResponse struct {
	Members []MemberResponse `json:"members"`
}

// ToMemberResponse converts a domain.Member to MemberResponse DTO.
func ToMemberResponse(m *domain.Member) MemberResponse {
	return MemberResponse{
		MemberID:       m.MemberID,
		Name:           m.Name,
		Phone:          m.Phone,
		MonthlyFee:     m.MonthlyFee,
		Balance:        m.Balance,
		Status:         m.Status,
		PlanExpiryDate: m.PlanExpiryDate,
		CreatedAt:      m.CreatedAt,
		LastUpdatedAt:  m.LastUpdatedAt,
	}
}

// ToListMembersResponse converts a slice of domain.Member.
func ToListMembersResponse(members []domain.Member) ListMembersResponse {
	res := make([]MemberResponse, len(members))
	for i := range members {
		res[i] = ToMemberResponse(&members[i])
	}
	return ListMembersResponse{Members: res}
}
