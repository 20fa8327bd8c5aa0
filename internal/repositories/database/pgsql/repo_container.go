package pgsql

import (
	portsrepo "github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgx repository onto one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		MemberRepo:      newPgxMemberRepository(dbPool),
		TransactionRepo: newPgxTransactionRepository(dbPool),
		ExpenseRepo:     newPgxExpenseRepository(dbPool),
		PettyCashRepo:   newPgxPettyCashRepository(dbPool),
		StaffRepo:       newPgxStaffRepository(dbPool),
		SalaryRepo:      newPgxSalaryPaymentRepository(dbPool),
		InventoryRepo:   newPgxInventoryRepository(dbPool),
		ProfileRepo:     newPgxProfileRepository(dbPool),
	}
}
