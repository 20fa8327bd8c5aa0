package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/apperrors"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
	portsrepo "github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/ports/repositories"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/models"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const inventoryColumns = `item_id, owner_id, item_name, quantity, unit, description,
		       created_at, created_by, last_updated_at, last_updated_by`

// PgxInventoryRepository implements the inventory repository interfaces using pgx.
type PgxInventoryRepository struct {
	BaseRepository
}

func newPgxInventoryRepository(pool *pgxpool.Pool) portsrepo.InventoryRepositoryFacade {
	return &PgxInventoryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.InventoryRepositoryFacade = (*PgxInventoryRepository)(nil)

func (r *PgxInventoryRepository) FindInventoryItemByID(ctx context.Context, ownerID, itemID string) (*domain.InventoryItem, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+inventoryColumns+` FROM inventory_items WHERE owner_id = $1 AND item_id = $2`, ownerID, itemID)
	if err != nil {
		return nil, mapPgError(err, "failed to query inventory item "+itemID)
	}
	return collectInventoryItem(rows, itemID)
}

func collectInventoryItem(rows pgx.Rows, itemID string) (*domain.InventoryItem, error) {
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.InventoryItem])
	if err != nil {
		return nil, mapPgError(err, "failed to scan inventory item "+itemID)
	}
	item := mapping.ToDomainInventoryItem(m)
	return &item, nil
}

func (r *PgxInventoryRepository) ListInventoryItems(ctx context.Context, ownerID string, limit, offset int) ([]domain.InventoryItem, error) {
	args := argList{ownerID}
	query := `SELECT ` + inventoryColumns + ` FROM inventory_items WHERE owner_id = $1 ORDER BY item_name, item_id`
	if limit > 0 {
		query += ` LIMIT ` + args.add(limit)
	}
	if offset > 0 {
		query += ` OFFSET ` + args.add(offset)
	}
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapPgError(err, "failed to query inventory for owner "+ownerID)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.InventoryItem])
	if err != nil {
		return nil, mapPgError(err, "failed to scan inventory for owner "+ownerID)
	}
	return mapping.ToDomainInventoryItemSlice(ms), nil
}

func (r *PgxInventoryRepository) SaveInventoryItem(ctx context.Context, item domain.InventoryItem) error {
	m := mapping.ToModelInventoryItem(item)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO inventory_items (item_id, owner_id, item_name, quantity, unit, description,
		                             created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`, m.ItemID, m.OwnerID, m.ItemName, m.Quantity, m.Unit, m.Description,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	return mapPgError(err, "failed to insert inventory item "+m.ItemID)
}

func (r *PgxInventoryRepository) UpdateInventoryItem(ctx context.Context, item domain.InventoryItem) error {
	m := mapping.ToModelInventoryItem(item)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE inventory_items
		SET item_name = $3, quantity = $4, unit = $5, description = $6, last_updated_at = $7, last_updated_by = $8
		WHERE owner_id = $1 AND item_id = $2;
	`, m.OwnerID, m.ItemID, m.ItemName, m.Quantity, m.Unit, m.Description, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return mapPgError(err, "failed to update inventory item "+m.ItemID)
	}
	return requireAffected(tag)
}

func (r *PgxInventoryRepository) DeleteInventoryItem(ctx context.Context, ownerID, itemID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM inventory_items WHERE owner_id = $1 AND item_id = $2`, ownerID, itemID)
	if err != nil {
		return mapPgError(err, "failed to delete inventory item "+itemID)
	}
	return requireAffected(tag)
}

// AdjustInventoryQuantity applies delta in a single guarded UPDATE. When no row
// matches, a follow-up lookup tells a missing item from a stock shortfall.
func (r *PgxInventoryRepository) AdjustInventoryQuantity(ctx context.Context, ownerID, itemID string, delta decimal.Decimal, actorID string, now time.Time) (*domain.InventoryItem, error) {
	rows, err := r.Pool.Query(ctx, `
		UPDATE inventory_items
		SET quantity = quantity + $3::numeric, last_updated_at = $4, last_updated_by = $5
		WHERE owner_id = $1 AND item_id = $2 AND quantity + $3::numeric >= 0
		RETURNING `+inventoryColumns,
		ownerID, itemID, delta, now, actorID)
	if err != nil {
		return nil, mapPgError(err, "failed to adjust inventory item "+itemID)
	}
	item, err := collectInventoryItem(rows, itemID)
	if err == nil || !isNotFound(err) {
		return item, err
	}

	current, findErr := r.FindInventoryItemByID(ctx, ownerID, itemID)
	if findErr != nil {
		return nil, findErr
	}
	return nil, fmt.Errorf("%w: cannot remove %s %s from %s, only %s in stock",
		apperrors.ErrValidation, delta.Neg().String(), current.Unit, current.ItemName, current.Quantity.String())
}
