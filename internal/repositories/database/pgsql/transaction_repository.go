package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/apperrors"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
	portsrepo "github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/ports/repositories"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/models"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/utils/mapping"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `transaction_id, owner_id, member_id, type, amount, txn_date, notes,
		       created_at, created_by, last_updated_at, last_updated_by`

// PgxTransactionRepository implements the member billing ledger using pgx.
// Every write also moves the member's cached balance in the same transaction.
type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, ownerID, transactionID string) (*domain.Transaction, error) {
	return findTransaction(ctx, r.Pool, ownerID, transactionID, false)
}

func findTransaction(ctx context.Context, q querier, ownerID, transactionID string, forUpdate bool) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE owner_id = $1 AND transaction_id = $2`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	rows, err := q.Query(ctx, query, ownerID, transactionID)
	if err != nil {
		return nil, mapPgError(err, "failed to query transaction "+transactionID)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Transaction])
	if err != nil {
		return nil, mapPgError(err, "failed to scan transaction "+transactionID)
	}
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

// ListTransactions uses keyset pagination on (txn_date, created_at, transaction_id).
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, ownerID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	args := argList{ownerID}
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE owner_id = $1`
	if filter.From != nil {
		query += ` AND txn_date >= ` + args.add(*filter.From)
	}
	if filter.To != nil {
		query += ` AND txn_date <= ` + args.add(*filter.To)
	}
	if filter.MemberID != nil {
		query += ` AND member_id = ` + args.add(*filter.MemberID)
	}
	if filter.Type != nil {
		query += ` AND type = ` + args.add(string(*filter.Type))
	}
	if filter.NextToken != nil && *filter.NextToken != "" {
		cursor, err := pagination.DecodeToken(*filter.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, err)
		}
		query += fmt.Sprintf(` AND (txn_date, created_at, transaction_id) < (%s, %s, %s)`,
			args.add(cursor.RecordDate), args.add(cursor.CreatedAt), args.add(cursor.ID))
	}
	query += ` ORDER BY txn_date DESC, created_at DESC, transaction_id DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ` + args.add(filter.Limit)
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapPgError(err, "failed to query transactions for owner "+ownerID)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Transaction])
	if err != nil {
		return nil, mapPgError(err, "failed to scan transactions for owner "+ownerID)
	}
	return mapping.ToDomainTransactionSlice(ms), nil
}

func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	return r.inTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO transactions (transaction_id, owner_id, member_id, type, amount, txn_date, notes,
			                          created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
		`, m.TransactionID, m.OwnerID, m.MemberID, m.Type, m.Amount, m.TxnDate, m.Notes,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
		if err != nil {
			return mapPgError(err, "failed to insert transaction "+m.TransactionID)
		}
		err = adjustMemberBalance(ctx, tx, txn.OwnerID, txn.MemberID, txn.BalanceDelta(), txn.CreatedBy, txn.CreatedAt)
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: member %s does not exist", apperrors.ErrValidation, txn.MemberID)
		}
		return err
	})
}

// UpdateTransaction reverses the stored row's effect on its member and
// applies the new one. Members deleted since are skipped.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	return r.inTx(ctx, func(tx pgx.Tx) error {
		old, err := findTransaction(ctx, tx, txn.OwnerID, txn.TransactionID, true)
		if err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `
			UPDATE transactions
			SET member_id = $3, type = $4, amount = $5, txn_date = $6, notes = $7,
			    last_updated_at = $8, last_updated_by = $9
			WHERE owner_id = $1 AND transaction_id = $2;
		`, m.OwnerID, m.TransactionID, m.MemberID, m.Type, m.Amount, m.TxnDate, m.Notes,
			m.LastUpdatedAt, m.LastUpdatedBy)
		if err != nil {
			return mapPgError(err, "failed to update transaction "+m.TransactionID)
		}
		if err := requireAffected(tag); err != nil {
			return err
		}

		err = adjustMemberBalance(ctx, tx, old.OwnerID, old.MemberID, old.BalanceDelta().Neg(), txn.LastUpdatedBy, txn.LastUpdatedAt)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		err = adjustMemberBalance(ctx, tx, txn.OwnerID, txn.MemberID, txn.BalanceDelta(), txn.LastUpdatedBy, txn.LastUpdatedAt)
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: member %s does not exist", apperrors.ErrValidation, txn.MemberID)
		}
		return err
	})
}

func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, ownerID, transactionID string) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		old, err := findTransaction(ctx, tx, ownerID, transactionID, true)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM transactions WHERE owner_id = $1 AND transaction_id = $2`, ownerID, transactionID); err != nil {
			return mapPgError(err, "failed to delete transaction "+transactionID)
		}
		err = adjustMemberBalance(ctx, tx, ownerID, old.MemberID, old.BalanceDelta().Neg(), ownerID, time.Now().UTC())
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return nil
	})
}
