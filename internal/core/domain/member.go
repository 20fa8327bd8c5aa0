package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MemberStatus is the billing state of a mess member.
type MemberStatus string

const (
	MemberActive   MemberStatus = "active"
	MemberInactive MemberStatus = "inactive"
)

// Member is a diner billed monthly by the mess.
// Balance is the cached amount owed; charges raise it and payments lower it.
type Member struct {
	MemberID       string          `json:"memberID"`
	OwnerID        string          `json:"ownerID"`
	Name           string          `json:"name"`
	Phone          *string         `json:"phone,omitempty"`
	MonthlyFee     decimal.Decimal `json:"monthlyFee"`
	Balance        decimal.Decimal `json:"balance"`
	Status         MemberStatus    `json:"status"`
	PlanExpiryDate *time.Time      `json:"planExpiryDate,omitempty"`
	AuditFields
}

// IsActive reports whether the member is currently billed.
func (m Member) IsActive() bool {
	return m.Status == MemberActive
}

// PlanExpiresWithin reports whether the member's plan ends in [now, now+window].
func (m Member) PlanExpiresWithin(now time.Time, window time.Duration) bool {
	if m.PlanExpiryDate == nil {
		return false
	}
	exp := *m.PlanExpiryDate
	return !exp.Before(now) && !exp.After(now.Add(window))
}

// MemberFilter narrows a member listing.
type MemberFilter struct {
	Status *MemberStatus
	Search string
	Limit  int
	Offset int
}
