package pgsql

import (
	"context"
	"fmt"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/apperrors"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
	portsrepo "github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/ports/repositories"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/models"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/utils/mapping"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const expenseColumns = `expense_id, owner_id, description, amount, category, expense_date, receipt_url, file_size_bytes,
		       created_at, created_by, last_updated_at, last_updated_by`

// PgxExpenseRepository implements the main expense ledger using pgx.
type PgxExpenseRepository struct {
	BaseRepository
}

func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, ownerID, expenseID string) (*domain.Expense, error) {
	return findExpense(ctx, r.Pool, ownerID, expenseID, false)
}

func findExpense(ctx context.Context, q querier, ownerID, expenseID string, forUpdate bool) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE owner_id = $1 AND expense_id = $2`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	rows, err := q.Query(ctx, query, ownerID, expenseID)
	if err != nil {
		return nil, mapPgError(err, "failed to query expense "+expenseID)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Expense])
	if err != nil {
		return nil, mapPgError(err, "failed to scan expense "+expenseID)
	}
	expense := mapping.ToDomainExpense(m)
	return &expense, nil
}

// ListExpenses uses keyset pagination on (expense_date, created_at, expense_id).
func (r *PgxExpenseRepository) ListExpenses(ctx context.Context, ownerID string, filter domain.ExpenseFilter) ([]domain.Expense, error) {
	args := argList{ownerID}
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE owner_id = $1`
	if filter.From != nil {
		query += ` AND expense_date >= ` + args.add(*filter.From)
	}
	if filter.To != nil {
		query += ` AND expense_date <= ` + args.add(*filter.To)
	}
	if filter.Category != nil {
		query += ` AND category = ` + args.add(string(*filter.Category))
	}
	if filter.NextToken != nil && *filter.NextToken != "" {
		cursor, err := pagination.DecodeToken(*filter.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, err)
		}
		query += fmt.Sprintf(` AND (expense_date, created_at, expense_id) < (%s, %s, %s)`,
			args.add(cursor.RecordDate), args.add(cursor.CreatedAt), args.add(cursor.ID))
	}
	query += ` ORDER BY expense_date DESC, created_at DESC, expense_id DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ` + args.add(filter.Limit)
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapPgError(err, "failed to query expenses for owner "+ownerID)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Expense])
	if err != nil {
		return nil, mapPgError(err, "failed to scan expenses for owner "+ownerID)
	}
	return mapping.ToDomainExpenseSlice(ms), nil
}

func (r *PgxExpenseRepository) CountReceipts(ctx context.Context, ownerID string) (int64, error) {
	var count int64
	err := r.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM expenses
		WHERE owner_id = $1 AND receipt_url IS NOT NULL AND receipt_url <> ''
	`, ownerID).Scan(&count)
	if err != nil {
		return 0, mapPgError(err, "failed to count receipts for owner "+ownerID)
	}
	return count, nil
}

func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		if err := insertExpense(ctx, tx, expense); err != nil {
			return err
		}
		return adjustStorageUsed(ctx, tx, expense.OwnerID, expense.FileSizeBytes)
	})
}

func insertExpense(ctx context.Context, tx pgx.Tx, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	_, err := tx.Exec(ctx, `
		INSERT INTO expenses (expense_id, owner_id, description, amount, category, expense_date, receipt_url, file_size_bytes,
		                      created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`, m.ExpenseID, m.OwnerID, m.Description, m.Amount, m.Category, m.ExpenseDate, m.ReceiptURL, m.FileSizeBytes,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	return mapPgError(err, "failed to insert expense "+m.ExpenseID)
}

// UpdateExpense writes the ledger columns. Receipt columns change only
// through AttachReceipt.
func (r *PgxExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE expenses
		SET description = $3, amount = $4, category = $5, expense_date = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE owner_id = $1 AND expense_id = $2;
	`, m.OwnerID, m.ExpenseID, m.Description, m.Amount, m.Category, m.ExpenseDate,
		m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return mapPgError(err, "failed to update expense "+m.ExpenseID)
	}
	return requireAffected(tag)
}

func (r *PgxExpenseRepository) DeleteExpense(ctx context.Context, ownerID, expenseID string) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return deleteExpense(ctx, tx, ownerID, expenseID)
	})
}

// deleteExpense removes the row and releases its receipt bytes from the quota.
func deleteExpense(ctx context.Context, tx pgx.Tx, ownerID, expenseID string) error {
	var size int64
	err := tx.QueryRow(ctx, `
		DELETE FROM expenses WHERE owner_id = $1 AND expense_id = $2
		RETURNING file_size_bytes
	`, ownerID, expenseID).Scan(&size)
	if err != nil {
		return mapPgError(err, "failed to delete expense "+expenseID)
	}
	return adjustStorageUsed(ctx, tx, ownerID, -size)
}

func (r *PgxExpenseRepository) AttachReceipt(ctx context.Context, ownerID, expenseID, receiptURL string, sizeBytes int64) (*domain.Expense, error) {
	var updated *domain.Expense
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		current, err := findExpense(ctx, tx, ownerID, expenseID, true)
		if err != nil {
			return err
		}
		rows, err := tx.Query(ctx, `
			UPDATE expenses
			SET receipt_url = $3, file_size_bytes = $4, last_updated_at = now(), last_updated_by = $1
			WHERE owner_id = $1 AND expense_id = $2
			RETURNING `+expenseColumns,
			ownerID, expenseID, receiptURL, sizeBytes)
		if err != nil {
			return mapPgError(err, "failed to attach receipt to expense "+expenseID)
		}
		m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Expense])
		if err != nil {
			return mapPgError(err, "failed to scan expense "+expenseID)
		}
		expense := mapping.ToDomainExpense(m)
		updated = &expense
		return adjustStorageUsed(ctx, tx, ownerID, sizeBytes-current.FileSizeBytes)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// adjustStorageUsed moves the tenant's storage counter by delta, creating the
// profile row when the tenant has none. The counter never drops below zero.
func adjustStorageUsed(ctx context.Context, tx pgx.Tx, ownerID string, delta int64) error {
	if delta == 0 {
		return nil
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO profiles (owner_id, storage_used_bytes, created_by, last_updated_by)
		VALUES ($1, GREATEST($2::bigint, 0), $1, $1)
		ON CONFLICT (owner_id) DO UPDATE
		SET storage_used_bytes = GREATEST(profiles.storage_used_bytes + $2::bigint, 0),
		    last_updated_at = now();
	`, ownerID, delta)
	return mapPgError(err, "failed to adjust storage usage for owner "+ownerID)
}
