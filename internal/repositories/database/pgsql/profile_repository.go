package pgsql

import (
	"context"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
	portsrepo "github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/ports/repositories"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/models"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const profileColumns = `owner_id, schema_version, business_name, currency_code, tax_enabled, tax_rate, tax_name, timezone,
		       plan_type, subscription_status, subscription_expiry, storage_used_bytes, storage_limit_bytes,
		       invoice_prefix, invoice_counter, created_at, created_by, last_updated_at, last_updated_by`

// PgxProfileRepository stores the per-tenant settings row.
type PgxProfileRepository struct {
	BaseRepository
}

func newPgxProfileRepository(pool *pgxpool.Pool) portsrepo.ProfileRepositoryFacade {
	return &PgxProfileRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ProfileRepositoryFacade = (*PgxProfileRepository)(nil)

func (r *PgxProfileRepository) FindProfile(ctx context.Context, ownerID string) (*domain.Profile, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+profileColumns+` FROM profiles WHERE owner_id = $1`, ownerID)
	if err != nil {
		return nil, mapPgError(err, "failed to query profile for owner "+ownerID)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Profile])
	if err != nil {
		return nil, mapPgError(err, "failed to scan profile for owner "+ownerID)
	}
	profile := mapping.ToDomainProfile(m)
	return &profile, nil
}

// UpsertProfile writes the settings columns. The storage and invoice counters
// are maintained by their own atomic statements and are not overwritten.
func (r *PgxProfileRepository) UpsertProfile(ctx context.Context, profile domain.Profile) error {
	m := mapping.ToModelProfile(profile)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO profiles (owner_id, schema_version, business_name, currency_code, tax_enabled, tax_rate, tax_name, timezone,
		                      plan_type, subscription_status, subscription_expiry, storage_limit_bytes, invoice_prefix,
		                      created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (owner_id) DO UPDATE
		SET schema_version = EXCLUDED.schema_version,
		    business_name = EXCLUDED.business_name,
		    currency_code = EXCLUDED.currency_code,
		    tax_enabled = EXCLUDED.tax_enabled,
		    tax_rate = EXCLUDED.tax_rate,
		    tax_name = EXCLUDED.tax_name,
		    timezone = EXCLUDED.timezone,
		    plan_type = EXCLUDED.plan_type,
		    subscription_status = EXCLUDED.subscription_status,
		    subscription_expiry = EXCLUDED.subscription_expiry,
		    storage_limit_bytes = EXCLUDED.storage_limit_bytes,
		    invoice_prefix = EXCLUDED.invoice_prefix,
		    last_updated_at = EXCLUDED.last_updated_at,
		    last_updated_by = EXCLUDED.last_updated_by;
	`, m.OwnerID, m.SchemaVersion, m.BusinessName, m.CurrencyCode, m.TaxEnabled, m.TaxRate, m.TaxName, m.Timezone,
		m.PlanType, m.SubscriptionStatus, m.SubscriptionExpiry, m.StorageLimitBytes, m.InvoicePrefix,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	return mapPgError(err, "failed to upsert profile for owner "+m.OwnerID)
}

func (r *PgxProfileRepository) NextInvoiceSequence(ctx context.Context, ownerID string) (int64, error) {
	var next int64
	err := r.Pool.QueryRow(ctx, `
		INSERT INTO profiles (owner_id, invoice_counter, created_by, last_updated_by)
		VALUES ($1, 1, $1, $1)
		ON CONFLICT (owner_id) DO UPDATE
		SET invoice_counter = profiles.invoice_counter + 1
		RETURNING invoice_counter
	`, ownerID).Scan(&next)
	if err != nil {
		return 0, mapPgError(err, "failed to advance invoice counter for owner "+ownerID)
	}
	return next, nil
}
