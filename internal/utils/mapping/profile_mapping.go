package mapping

import (
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/models"
)

// ToModelProfile converts a domain Profile to a model Profile
func ToModelProfile(d domain.Profile) models.Profile {
	m := models.Profile{
		OwnerID:            d.OwnerID,
		SchemaVersion:      d.SchemaVersion,
		BusinessName:       d.BusinessName,
		CurrencyCode:       d.CurrencyCode,
		TaxEnabled:         d.TaxEnabled,
		TaxRate:            d.TaxRate,
		TaxName:            d.TaxName,
		Timezone:           d.Timezone,
		SubscriptionExpiry: d.SubscriptionExpiry,
		StorageUsedBytes:   d.StorageUsedBytes,
		StorageLimitBytes:  d.StorageLimitBytes,
		InvoicePrefix:      d.InvoicePrefix,
		InvoiceCounter:     d.InvoiceCounter,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
	if d.PlanType != nil {
		plan := string(*d.PlanType)
		m.PlanType = &plan
	}
	if d.SubscriptionStatus != nil {
		status := string(*d.SubscriptionStatus)
		m.SubscriptionStatus = &status
	}
	return m
}

// ToDomainProfile converts a model Profile to a domain Profile
func ToDomainProfile(m models.Profile) domain.Profile {
	d := domain.Profile{
		OwnerID:            m.OwnerID,
		SchemaVersion:      m.SchemaVersion,
		BusinessName:       m.BusinessName,
		CurrencyCode:       m.CurrencyCode,
		TaxEnabled:         m.TaxEnabled,
		TaxRate:            m.TaxRate,
		TaxName:            m.TaxName,
		Timezone:           m.Timezone,
		SubscriptionExpiry: m.SubscriptionExpiry,
		StorageUsedBytes:   m.StorageUsedBytes,
		StorageLimitBytes:  m.StorageLimitBytes,
		InvoicePrefix:      m.InvoicePrefix,
		InvoiceCounter:     m.InvoiceCounter,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
	if m.PlanType != nil {
		plan := domain.PlanType(*m.PlanType)
		d.PlanType = &plan
	}
	if m.SubscriptionStatus != nil {
		status := domain.SubscriptionStatus(*m.SubscriptionStatus)
		d.SubscriptionStatus = &status
	}
	return d
}
