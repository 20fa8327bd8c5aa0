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

const salaryColumns = `payment_id, owner_id, staff_id, amount, month_year, paid_at, notes,
		       created_at, created_by, last_updated_at, last_updated_by`

// PgxSalaryPaymentRepository stores payroll payments. The table's unique
// constraint on (owner_id, staff_id, month_year) enforces one payment per slot.
type PgxSalaryPaymentRepository struct {
	BaseRepository
}

func newPgxSalaryPaymentRepository(pool *pgxpool.Pool) portsrepo.SalaryPaymentRepositoryFacade {
	return &PgxSalaryPaymentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.SalaryPaymentRepositoryFacade = (*PgxSalaryPaymentRepository)(nil)

func (r *PgxSalaryPaymentRepository) FindSalaryPaymentByID(ctx context.Context, ownerID, paymentID string) (*domain.SalaryPayment, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+salaryColumns+` FROM salary_payments WHERE owner_id = $1 AND payment_id = $2`, ownerID, paymentID)
	if err != nil {
		return nil, mapPgError(err, "failed to query salary payment "+paymentID)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.SalaryPayment])
	if err != nil {
		return nil, mapPgError(err, "failed to scan salary payment "+paymentID)
	}
	payment := mapping.ToDomainSalaryPayment(m)
	return &payment, nil
}

func (r *PgxSalaryPaymentRepository) ListSalaryPaymentsByMonth(ctx context.Context, ownerID, monthYear string) ([]domain.SalaryPayment, error) {
	return r.list(ctx, `SELECT `+salaryColumns+` FROM salary_payments
		WHERE owner_id = $1 AND month_year = $2
		ORDER BY paid_at, payment_id`, ownerID, monthYear)
}

func (r *PgxSalaryPaymentRepository) ListSalaryPaymentsByStaff(ctx context.Context, ownerID, staffID string) ([]domain.SalaryPayment, error) {
	return r.list(ctx, `SELECT `+salaryColumns+` FROM salary_payments
		WHERE owner_id = $1 AND staff_id = $2
		ORDER BY month_year DESC, paid_at DESC`, ownerID, staffID)
}

func (r *PgxSalaryPaymentRepository) list(ctx context.Context, query, ownerID, key string) ([]domain.SalaryPayment, error) {
	rows, err := r.Pool.Query(ctx, query, ownerID, key)
	if err != nil {
		return nil, mapPgError(err, "failed to query salary payments for owner "+ownerID)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.SalaryPayment])
	if err != nil {
		return nil, mapPgError(err, "failed to scan salary payments for owner "+ownerID)
	}
	return mapping.ToDomainSalaryPaymentSlice(ms), nil
}

func (r *PgxSalaryPaymentRepository) SaveSalaryPayment(ctx context.Context, payment domain.SalaryPayment) error {
	m := mapping.ToModelSalaryPayment(payment)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO salary_payments (payment_id, owner_id, staff_id, amount, month_year, paid_at, notes,
		                             created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`, m.PaymentID, m.OwnerID, m.StaffID, m.Amount, m.MonthYear, m.PaidAt, m.Notes,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	return mapPgError(err, "failed to insert salary payment "+m.PaymentID)
}

func (r *PgxSalaryPaymentRepository) DeleteSalaryPayment(ctx context.Context, ownerID, paymentID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM salary_payments WHERE owner_id = $1 AND payment_id = $2`, ownerID, paymentID)
	if err != nil {
		return mapPgError(err, "failed to delete salary payment "+paymentID)
	}
	return requireAffected(tag)
}
