package domain_test

import (
	"testing"
	"time"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestProfile_DefaultsWhenUnset(t *testing.T) {
	p := domain.DefaultProfile("owner-1")

	assert.Equal(t, domain.ProfileSchemaVersion, p.SchemaVersion)
	assert.Equal(t, "INR", p.Currency())
	assert.False(t, p.TaxIsEnabled())
	assert.True(t, p.EffectiveTaxRate().IsZero())
	assert.Equal(t, "GST", p.TaxLabel())
	assert.Equal(t, domain.PlanFree, p.Plan())
	assert.Equal(t, domain.SubscriptionTrial, p.Subscription())
	assert.Equal(t, domain.DefaultStorageLimitBytes, p.StorageLimit())
	assert.Equal(t, "INV-0007", p.FormatInvoiceNumber(7))
	assert.Equal(t, time.UTC, p.Location())
}

func TestProfile_TaxRateOnlyWhenEnabled(t *testing.T) {
	rate := decimal.NewFromInt(18)
	off := false
	on := true

	p := domain.Profile{TaxRate: &rate, TaxEnabled: &off}
	assert.True(t, p.EffectiveTaxRate().IsZero())

	p.TaxEnabled = &on
	assert.True(t, p.EffectiveTaxRate().Equal(rate))
}

func TestProfile_SubscriptionLapsed(t *testing.T) {
	now := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	expired := domain.SubscriptionExpired
	active := domain.SubscriptionActive
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	assert.True(t, domain.Profile{SubscriptionStatus: &expired}.SubscriptionLapsed(now))
	assert.True(t, domain.Profile{SubscriptionStatus: &active, SubscriptionExpiry: &yesterday}.SubscriptionLapsed(now))
	assert.False(t, domain.Profile{SubscriptionStatus: &active, SubscriptionExpiry: &tomorrow}.SubscriptionLapsed(now))
	assert.False(t, domain.DefaultProfile("o").SubscriptionLapsed(now))
}

func TestProfile_UnknownTimezoneFallsBackToUTC(t *testing.T) {
	tz := "Mars/Olympus"
	assert.Equal(t, time.UTC, domain.Profile{Timezone: &tz}.Location())
}
