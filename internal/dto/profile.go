package dto

import (
	"time"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpdateProfileRequest defines the settings a tenant may change. Plan and
// subscription fields are owned by billing and are not accepted here.
type UpdateProfileRequest struct {
	BusinessName  *string          `json:"businessName" binding:"omitempty,max=200"`
	CurrencyCode  *string          `json:"currencyCode" binding:"omitempty,len=3,uppercase"`
	TaxEnabled    *bool            `json:"taxEnabled"`
	TaxRate       *decimal.Decimal `json:"taxRate"`
	TaxName       *string          `json:"taxName" binding:"omitempty,max=32"`
	Timezone      *string          `json:"timezone" binding:"omitempty,max=64"`
	InvoicePrefix *string          `json:"invoicePrefix" binding:"omitempty,max=10,alphanum"`
}

// UpdatePlanRequest is the billing-side change applied by the admin CLI.
type UpdatePlanRequest struct {
	PlanType           *domain.PlanType           `json:"planType"`
	SubscriptionStatus *domain.SubscriptionStatus `json:"subscriptionStatus"`
	SubscriptionExpiry *time.Time                 `json:"subscriptionExpiry"`
	StorageLimitBytes  *int64                     `json:"storageLimitBytes"`
}

// ProfileResponse is the profile with defaults applied.
type ProfileResponse struct {
	BusinessName       string                    `json:"businessName"`
	CurrencyCode       string                    `json:"currencyCode"`
	TaxEnabled         bool                      `json:"taxEnabled"`
	TaxRate            decimal.Decimal           `json:"taxRate"`
	TaxName            string                    `json:"taxName"`
	Timezone           string                    `json:"timezone"`
	PlanType           domain.PlanType           `json:"planType"`
	SubscriptionStatus domain.SubscriptionStatus `json:"subscriptionStatus"`
	SubscriptionExpiry *time.Time                `json:"subscriptionExpiry,omitempty"`
	StorageUsedBytes   int64                     `json:"storageUsedBytes"`
	StorageLimitBytes  int64                     `json:"storageLimitBytes"`
	InvoicePrefix      string                    `json:"invoicePrefix"`
	InvoiceCounter     int64                     `json:"invoiceCounter"`
}

// ToProfileResponse resolves every optional field of p.
func ToProfileResponse(p *domain.Profile) ProfileResponse {
	res := ProfileResponse{
		CurrencyCode:       p.Currency(),
		TaxEnabled:         p.TaxIsEnabled(),
		TaxRate:            p.EffectiveTaxRate(),
		TaxName:            p.TaxLabel(),
		Timezone:           p.Location().String(),
		PlanType:           p.Plan(),
		SubscriptionStatus: p.Subscription(),
		SubscriptionExpiry: p.SubscriptionExpiry,
		StorageUsedBytes:   p.StorageUsedBytes,
		StorageLimitBytes:  p.StorageLimit(),
		InvoicePrefix:      p.InvoiceNumberPrefix(),
		InvoiceCounter:     p.InvoiceCounter,
	}
	if p.BusinessName != nil {
		res.BusinessName = *p.BusinessName
	}
	return res
}
