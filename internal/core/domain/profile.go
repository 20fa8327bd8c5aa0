package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PlanType is the subscription tier.
type PlanType string

const (
	PlanFree PlanType = "free"
	PlanPro  PlanType = "pro"
)

// SubscriptionStatus is the billing state of the tenant's own subscription.
type SubscriptionStatus string

const (
	SubscriptionTrial     SubscriptionStatus = "trial"
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionExpired   SubscriptionStatus = "expired"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

// ProfileSchemaVersion is written with every saved profile. Version 1 rows
// predate timezone, invoice prefix and storage limit.
const ProfileSchemaVersion = 2

// Defaults applied when a profile field was never set.
const (
	DefaultCurrencyCode      = "INR"
	DefaultTaxName           = "GST"
	DefaultInvoicePrefix     = "INV"
	DefaultTimezone          = "UTC"
	DefaultStorageLimitBytes = int64(100 * 1024 * 1024)
)

// Profile is the per-tenant settings record. Optional fields are nil until set;
// read them through the accessor methods, which apply the defaults above.
type Profile struct {
	OwnerID            string              `json:"ownerID"`
	SchemaVersion      int                 `json:"schemaVersion"`
	BusinessName       *string             `json:"businessName,omitempty"`
	CurrencyCode       *string             `json:"currencyCode,omitempty"`
	TaxEnabled         *bool               `json:"taxEnabled,omitempty"`
	TaxRate            *decimal.Decimal    `json:"taxRate,omitempty"`
	TaxName            *string             `json:"taxName,omitempty"`
	Timezone           *string             `json:"timezone,omitempty"`
	PlanType           *PlanType           `json:"planType,omitempty"`
	SubscriptionStatus *SubscriptionStatus `json:"subscriptionStatus,omitempty"`
	SubscriptionExpiry *time.Time          `json:"subscriptionExpiry,omitempty"`
	StorageUsedBytes   int64               `json:"storageUsedBytes"`
	StorageLimitBytes  *int64              `json:"storageLimitBytes,omitempty"`
	InvoicePrefix      *string             `json:"invoicePrefix,omitempty"`
	InvoiceCounter     int64               `json:"invoiceCounter"`
	AuditFields
}

// DefaultProfile is the profile of a tenant that has saved nothing yet.
func DefaultProfile(ownerID string) Profile {
	return Profile{OwnerID: ownerID, SchemaVersion: ProfileSchemaVersion}
}

func (p Profile) Currency() string {
	if p.CurrencyCode == nil || *p.CurrencyCode == "" {
		return DefaultCurrencyCode
	}
	return *p.CurrencyCode
}

func (p Profile) TaxIsEnabled() bool {
	return p.TaxEnabled != nil && *p.TaxEnabled
}

// EffectiveTaxRate is the percentage applied to invoices; zero when tax is off.
func (p Profile) EffectiveTaxRate() decimal.Decimal {
	if !p.TaxIsEnabled() || p.TaxRate == nil {
		return decimal.Zero
	}
	return *p.TaxRate
}

func (p Profile) TaxLabel() string {
	if p.TaxName == nil || *p.TaxName == "" {
		return DefaultTaxName
	}
	return *p.TaxName
}

func (p Profile) Plan() PlanType {
	if p.PlanType == nil || *p.PlanType == "" {
		return PlanFree
	}
	return *p.PlanType
}

func (p Profile) Subscription() SubscriptionStatus {
	if p.SubscriptionStatus == nil || *p.SubscriptionStatus == "" {
		return SubscriptionTrial
	}
	return *p.SubscriptionStatus
}

// SubscriptionLapsed reports whether writes should be refused at now.
func (p Profile) SubscriptionLapsed(now time.Time) bool {
	if p.Subscription() == SubscriptionExpired {
		return true
	}
	return p.SubscriptionExpiry != nil && p.SubscriptionExpiry.Before(now)
}

func (p Profile) StorageLimit() int64 {
	if p.StorageLimitBytes == nil || *p.StorageLimitBytes <= 0 {
		return DefaultStorageLimitBytes
	}
	return *p.StorageLimitBytes
}

func (p Profile) InvoiceNumberPrefix() string {
	if p.InvoicePrefix == nil || *p.InvoicePrefix == "" {
		return DefaultInvoicePrefix
	}
	return *p.InvoicePrefix
}

// Location resolves the tenant timezone, falling back to UTC on unknown names.
func (p Profile) Location() *time.Location {
	name := DefaultTimezone
	if p.Timezone != nil && *p.Timezone != "" {
		name = *p.Timezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// FormatInvoiceNumber renders sequence n with the tenant prefix, e.g. INV-0007.
func (p Profile) FormatInvoiceNumber(n int64) string {
	return fmt.Sprintf("%s-%04d", p.InvoiceNumberPrefix(), n)
}

// Invoice is a numbered monthly bill issued to a member.
type Invoice struct {
	Number             string          `json:"number"`
	Sequence           int64           `json:"sequence"`
	MemberID           string          `json:"memberID"`
	MemberName         string          `json:"memberName"`
	Period             string          `json:"period"`
	CurrencyCode       string          `json:"currencyCode"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	TaxName            string          `json:"taxName,omitempty"`
	TaxRate            decimal.Decimal `json:"taxRate"`
	TaxAmount          decimal.Decimal `json:"taxAmount"`
	Total              decimal.Decimal `json:"total"`
	OutstandingBalance decimal.Decimal `json:"outstandingBalance"`
	IssuedAt           time.Time       `json:"issuedAt"`
}
