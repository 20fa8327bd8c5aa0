package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/apperrors"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
	portsrepo "github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/ports/repositories"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/models"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/utils/accounting"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const pettyCashColumns = `id, owner_id, amount, type, description, balance_after, txn_date, linked_expense_id,
		       created_at, created_by, last_updated_at, last_updated_by`

const pettyCashLockScope = "petty_cash"

// PgxPettyCashRepository implements the running-balance cash ledger. Writes
// for one tenant are serialized with a transaction-scoped advisory lock.
type PgxPettyCashRepository struct {
	BaseRepository
}

func newPgxPettyCashRepository(pool *pgxpool.Pool) portsrepo.PettyCashRepositoryFacade {
	return &PgxPettyCashRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PettyCashRepositoryFacade = (*PgxPettyCashRepository)(nil)

func (r *PgxPettyCashRepository) ListPettyCash(ctx context.Context, ownerID string, from, to *time.Time) ([]domain.PettyCashTransaction, error) {
	args := argList{ownerID}
	query := `SELECT ` + pettyCashColumns + ` FROM petty_cash_transactions WHERE owner_id = $1`
	if from != nil {
		query += ` AND txn_date >= ` + args.add(*from)
	}
	if to != nil {
		query += ` AND txn_date <= ` + args.add(*to)
	}
	query += ` ORDER BY txn_date DESC, created_at DESC`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapPgError(err, "failed to query petty cash for owner "+ownerID)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.PettyCashTransaction])
	if err != nil {
		return nil, mapPgError(err, "failed to scan petty cash for owner "+ownerID)
	}
	return mapping.ToDomainPettyCashSlice(ms), nil
}

func (r *PgxPettyCashRepository) LatestPettyCash(ctx context.Context, ownerID string) (*domain.PettyCashTransaction, error) {
	return latestPettyCash(ctx, r.Pool, ownerID)
}

func latestPettyCash(ctx context.Context, q querier, ownerID string) (*domain.PettyCashTransaction, error) {
	rows, err := q.Query(ctx, `SELECT `+pettyCashColumns+` FROM petty_cash_transactions
		WHERE owner_id = $1
		ORDER BY txn_date DESC, created_at DESC
		LIMIT 1`, ownerID)
	if err != nil {
		return nil, mapPgError(err, "failed to query latest petty cash for owner "+ownerID)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.PettyCashTransaction])
	if err != nil {
		return nil, mapPgError(err, "failed to scan latest petty cash for owner "+ownerID)
	}
	entry := mapping.ToDomainPettyCash(m)
	return &entry, nil
}

// AppendPettyCash locks the tenant ledger, hands the current balance to build
// and stores what it returns. A linked expense is inserted first so the entry
// can reference it.
func (r *PgxPettyCashRepository) AppendPettyCash(ctx context.Context, ownerID string, build domain.PettyCashBuilder) (*domain.PettyCashTransaction, *domain.Expense, error) {
	var draft domain.PettyCashDraft
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		if err := lockOwner(ctx, tx, pettyCashLockScope, ownerID); err != nil {
			return err
		}
		current := decimal.Zero
		latest, err := latestPettyCash(ctx, tx, ownerID)
		switch {
		case err == nil:
			current = latest.BalanceAfter
		case !errors.Is(err, apperrors.ErrNotFound):
			return err
		}

		draft, err = build(current)
		if err != nil {
			return err
		}
		if draft.Expense != nil {
			if err := insertExpense(ctx, tx, *draft.Expense); err != nil {
				return err
			}
			draft.Entry.LinkedExpenseID = &draft.Expense.ExpenseID
		}
		return insertPettyCash(ctx, tx, draft.Entry)
	})
	if err != nil {
		return nil, nil, err
	}
	return &draft.Entry, draft.Expense, nil
}

func insertPettyCash(ctx context.Context, tx pgx.Tx, entry domain.PettyCashTransaction) error {
	m := mapping.ToModelPettyCash(entry)
	_, err := tx.Exec(ctx, `
		INSERT INTO petty_cash_transactions (id, owner_id, amount, type, description, balance_after, txn_date, linked_expense_id,
		                                     created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`, m.ID, m.OwnerID, m.Amount, m.Type, m.Description, m.BalanceAfter, m.TxnDate, m.LinkedExpenseID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	return mapPgError(err, "failed to insert petty cash entry "+m.ID)
}

func (r *PgxPettyCashRepository) DeletePettyCash(ctx context.Context, ownerID, entryID string) (*domain.PettyCashTransaction, error) {
	var deleted *domain.PettyCashTransaction
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		if err := lockOwner(ctx, tx, pettyCashLockScope, ownerID); err != nil {
			return err
		}
		entries, err := loadLedger(ctx, tx, ownerID)
		if err != nil {
			return err
		}
		remaining := make([]domain.PettyCashTransaction, 0, len(entries))
		for i := range entries {
			if entries[i].ID == entryID {
				deleted = &entries[i]
				continue
			}
			remaining = append(remaining, entries[i])
		}
		if deleted == nil {
			return apperrors.ErrNotFound
		}

		changed, err := accounting.RechainPettyCash(decimal.Zero, remaining)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM petty_cash_transactions WHERE owner_id = $1 AND id = $2`, ownerID, entryID); err != nil {
			return mapPgError(err, "failed to delete petty cash entry "+entryID)
		}
		if deleted.LinkedExpenseID != nil {
			err := deleteExpense(ctx, tx, ownerID, *deleted.LinkedExpenseID)
			if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
				return err
			}
		}
		return updateBalances(ctx, tx, remaining, changed)
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func (r *PgxPettyCashRepository) RechainPettyCash(ctx context.Context, ownerID string) (int, error) {
	var corrected int
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		if err := lockOwner(ctx, tx, pettyCashLockScope, ownerID); err != nil {
			return err
		}
		entries, err := loadLedger(ctx, tx, ownerID)
		if err != nil {
			return err
		}
		changed, err := accounting.RechainPettyCash(decimal.Zero, entries)
		if err != nil {
			return err
		}
		corrected = len(changed)
		return updateBalances(ctx, tx, entries, changed)
	})
	if err != nil {
		return 0, err
	}
	return corrected, nil
}

// loadLedger reads every entry of the tenant oldest first.
func loadLedger(ctx context.Context, tx pgx.Tx, ownerID string) ([]domain.PettyCashTransaction, error) {
	rows, err := tx.Query(ctx, `SELECT `+pettyCashColumns+` FROM petty_cash_transactions
		WHERE owner_id = $1
		ORDER BY txn_date, created_at`, ownerID)
	if err != nil {
		return nil, mapPgError(err, "failed to load petty cash ledger for owner "+ownerID)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.PettyCashTransaction])
	if err != nil {
		return nil, mapPgError(err, "failed to scan petty cash ledger for owner "+ownerID)
	}
	entries := mapping.ToDomainPettyCashSlice(ms)
	accounting.SortPettyCash(entries)
	return entries, nil
}

// updateBalances writes balance_after for entries[changed] in one batch.
func updateBalances(ctx context.Context, tx pgx.Tx, entries []domain.PettyCashTransaction, changed []int) error {
	if len(changed) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, i := range changed {
		batch.Queue(`UPDATE petty_cash_transactions SET balance_after = $3 WHERE owner_id = $1 AND id = $2`,
			entries[i].OwnerID, entries[i].ID, entries[i].BalanceAfter)
	}
	results := tx.SendBatch(ctx, batch)
	for range changed {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return mapPgError(err, "failed to update petty cash balances")
		}
	}
	if err := results.Close(); err != nil {
		return mapPgError(err, "failed to close petty cash balance batch")
	}
	return nil
}
