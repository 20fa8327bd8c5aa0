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

const staffColumns = `staff_id, owner_id, name, role, base_salary, phone,
		       created_at, created_by, last_updated_at, last_updated_by`

// PgxStaffRepository implements the staff repository interfaces using pgx.
type PgxStaffRepository struct {
	BaseRepository
}

func newPgxStaffRepository(pool *pgxpool.Pool) portsrepo.StaffRepositoryFacade {
	return &PgxStaffRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.StaffRepositoryFacade = (*PgxStaffRepository)(nil)

func (r *PgxStaffRepository) FindStaffByID(ctx context.Context, ownerID, staffID string) (*domain.Staff, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+staffColumns+` FROM staff WHERE owner_id = $1 AND staff_id = $2`, ownerID, staffID)
	if err != nil {
		return nil, mapPgError(err, "failed to query staff "+staffID)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Staff])
	if err != nil {
		return nil, mapPgError(err, "failed to scan staff "+staffID)
	}
	staff := mapping.ToDomainStaff(m)
	return &staff, nil
}

func (r *PgxStaffRepository) ListStaff(ctx context.Context, ownerID string) ([]domain.Staff, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+staffColumns+` FROM staff WHERE owner_id = $1 ORDER BY name, staff_id`, ownerID)
	if err != nil {
		return nil, mapPgError(err, "failed to query staff for owner "+ownerID)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Staff])
	if err != nil {
		return nil, mapPgError(err, "failed to scan staff for owner "+ownerID)
	}
	return mapping.ToDomainStaffSlice(ms), nil
}

func (r *PgxStaffRepository) SaveStaff(ctx context.Context, staff domain.Staff) error {
	m := mapping.ToModelStaff(staff)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO staff (staff_id, owner_id, name, role, base_salary, phone,
		                   created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`, m.StaffID, m.OwnerID, m.Name, m.Role, m.BaseSalary, m.Phone,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	return mapPgError(err, "failed to insert staff "+m.StaffID)
}

func (r *PgxStaffRepository) UpdateStaff(ctx context.Context, staff domain.Staff) error {
	m := mapping.ToModelStaff(staff)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE staff
		SET name = $3, role = $4, base_salary = $5, phone = $6, last_updated_at = $7, last_updated_by = $8
		WHERE owner_id = $1 AND staff_id = $2;
	`, m.OwnerID, m.StaffID, m.Name, m.Role, m.BaseSalary, m.Phone, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return mapPgError(err, "failed to update staff "+m.StaffID)
	}
	return requireAffected(tag)
}

// DeleteStaff keeps salary history; payments reference staff weakly.
func (r *PgxStaffRepository) DeleteStaff(ctx context.Context, ownerID, staffID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM staff WHERE owner_id = $1 AND staff_id = $2`, ownerID, staffID)
	if err != nil {
		return mapPgError(err, "failed to delete staff "+staffID)
	}
	return requireAffected(tag)
}
