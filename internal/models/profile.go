package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Profile is the profiles row. Nullable columns stay pointers so that unset
// settings survive a round trip and pick up domain defaults on read.
type Profile struct {
	OwnerID            string           `db:"owner_id"`
	SchemaVersion      int              `db:"schema_version"`
	BusinessName       *string          `db:"business_name"`
	CurrencyCode       *string          `db:"currency_code"`
	TaxEnabled         *bool            `db:"tax_enabled"`
	TaxRate            *decimal.Decimal `db:"tax_rate"`
	TaxName            *string          `db:"tax_name"`
	Timezone           *string          `db:"timezone"`
	PlanType           *string          `db:"plan_type"`
	SubscriptionStatus *string          `db:"subscription_status"`
	SubscriptionExpiry *time.Time       `db:"subscription_expiry"`
	StorageUsedBytes   int64            `db:"storage_used_bytes"`
	StorageLimitBytes  *int64           `db:"storage_limit_bytes"`
	InvoicePrefix      *string          `db:"invoice_prefix"`
	InvoiceCounter     int64            `db:"invoice_counter"`
	AuditFields
}
