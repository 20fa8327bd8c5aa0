package pgsql

import (
	"context"
	"time"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
	portsrepo "github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/ports/repositories"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/models"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const memberColumns = `member_id, owner_id, name, phone, monthly_fee, balance, status, plan_expiry_date,
		       created_at, created_by, last_updated_at, last_updated_by`

// PgxMemberRepository implements the member repository interfaces using pgx.
type PgxMemberRepository struct {
	BaseRepository
}

// newPgxMemberRepository creates a new repository for member data.
func newPgxMemberRepository(pool *pgxpool.Pool) portsrepo.MemberRepositoryFacade {
	return &PgxMemberRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.MemberRepositoryFacade = (*PgxMemberRepository)(nil)

func (r *PgxMemberRepository) FindMemberByID(ctx context.Context, ownerID, memberID string) (*domain.Member, error) {
	return findMember(ctx, r.Pool, ownerID, memberID, false)
}

// findMember loads one member through q; forUpdate row-locks it inside a transaction.
func findMember(ctx context.Context, q querier, ownerID, memberID string, forUpdate bool) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE owner_id = $1 AND member_id = $2`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	rows, err := q.Query(ctx, query, ownerID, memberID)
	if err != nil {
		return nil, mapPgError(err, "failed to query member "+memberID)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Member])
	if err != nil {
		return nil, mapPgError(err, "failed to scan member "+memberID)
	}
	member := mapping.ToDomainMember(m)
	return &member, nil
}

func (r *PgxMemberRepository) ListMembers(ctx context.Context, ownerID string, filter domain.MemberFilter) ([]domain.Member, error) {
	args := argList{ownerID}
	query := `SELECT ` + memberColumns + ` FROM members WHERE owner_id = $1`
	if filter.Status != nil {
		query += ` AND status = ` + args.add(string(*filter.Status))
	}
	if filter.Search != "" {
		p := args.add("%" + filter.Search + "%")
		query += ` AND (name ILIKE ` + p + ` OR phone ILIKE ` + p + `)`
	}
	query += ` ORDER BY name, member_id`
	if filter.Limit > 0 {
		query += ` LIMIT ` + args.add(filter.Limit)
	}
	if filter.Offset > 0 {
		query += ` OFFSET ` + args.add(filter.Offset)
	}
	return r.collect(ctx, query, args, "failed to list members for owner "+ownerID)
}

func (r *PgxMemberRepository) CountMembers(ctx context.Context, ownerID string) (int64, error) {
	var count int64
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM members WHERE owner_id = $1`, ownerID).Scan(&count)
	if err != nil {
		return 0, mapPgError(err, "failed to count members for owner "+ownerID)
	}
	return count, nil
}

func (r *PgxMemberRepository) ListMembersExpiringBetween(ctx context.Context, ownerID string, from, to time.Time) ([]domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members
		WHERE owner_id = $1 AND plan_expiry_date BETWEEN $2 AND $3
		ORDER BY plan_expiry_date, name`
	return r.collect(ctx, query, argList{ownerID, from, to}, "failed to list expiring members for owner "+ownerID)
}

func (r *PgxMemberRepository) collect(ctx context.Context, query string, args argList, msg string) ([]domain.Member, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapPgError(err, msg)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Member])
	if err != nil {
		return nil, mapPgError(err, msg)
	}
	return mapping.ToDomainMemberSlice(ms), nil
}

func (r *PgxMemberRepository) SaveMember(ctx context.Context, member domain.Member) error {
	m := mapping.ToModelMember(member)
	query := `
		INSERT INTO members (member_id, owner_id, name, phone, monthly_fee, balance, status, plan_expiry_date,
		                     created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.MemberID, m.OwnerID, m.Name, m.Phone, m.MonthlyFee, m.Balance, m.Status, m.PlanExpiryDate,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapPgError(err, "failed to insert member "+m.MemberID)
}

// UpdateMember writes the editable columns. Balance is owned by the
// transaction repository and is never overwritten here.
func (r *PgxMemberRepository) UpdateMember(ctx context.Context, member domain.Member) error {
	m := mapping.ToModelMember(member)
	query := `
		UPDATE members
		SET name = $3, phone = $4, monthly_fee = $5, status = $6, plan_expiry_date = $7,
		    last_updated_at = $8, last_updated_by = $9
		WHERE owner_id = $1 AND member_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.OwnerID, m.MemberID, m.Name, m.Phone, m.MonthlyFee, m.Status, m.PlanExpiryDate,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "failed to update member "+m.MemberID)
	}
	return requireAffected(tag)
}

func (r *PgxMemberRepository) DeleteMember(ctx context.Context, ownerID, memberID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM members WHERE owner_id = $1 AND member_id = $2`, ownerID, memberID)
	if err != nil {
		return mapPgError(err, "failed to delete member "+memberID)
	}
	return requireAffected(tag)
}

// adjustMemberBalance moves a member's cached balance by delta inside tx.
// It returns ErrNotFound when the member no longer exists.
func adjustMemberBalance(ctx context.Context, tx pgx.Tx, ownerID, memberID string, delta decimal.Decimal, actorID string, now time.Time) error {
	tag, err := tx.Exec(ctx, `
		UPDATE members SET balance = balance + $3::numeric, last_updated_at = $4, last_updated_by = $5
		WHERE owner_id = $1 AND member_id = $2;
	`, ownerID, memberID, delta, now, actorID)
	if err != nil {
		return mapPgError(err, "failed to adjust balance of member "+memberID)
	}
	return requireAffected(tag)
}
