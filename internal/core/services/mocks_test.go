package services_test

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/apperrors"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
	portsrepo "github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/ports/repositories"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Member repository ---

type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) FindMemberByID(ctx context.Context, ownerID, memberID string) (*domain.Member, error) {
	args := m.Called(ctx, ownerID, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

func (m *MockMemberRepository) ListMembers(ctx context.Context, ownerID string, filter domain.MemberFilter) ([]domain.Member, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Member), args.Error(1)
}

func (m *MockMemberRepository) CountMembers(ctx context.Context, ownerID string) (int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMemberRepository) ListMembersExpiringBetween(ctx context.Context, ownerID string, from, to time.Time) ([]domain.Member, error) {
	args := m.Called(ctx, ownerID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Member), args.Error(1)
}

func (m *MockMemberRepository) SaveMember(ctx context.Context, member domain.Member) error {
	return m.Called(ctx, member).Error(0)
}

func (m *MockMemberRepository) UpdateMember(ctx context.Context, member domain.Member) error {
	return m.Called(ctx, member).Error(0)
}

func (m *MockMemberRepository) DeleteMember(ctx context.Context, ownerID, memberID string) error {
	return m.Called(ctx, ownerID, memberID).Error(0)
}

// --- Transaction repository ---

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, ownerID, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, ownerID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, ownerID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	return m.Called(ctx, txn).Error(0)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	return m.Called(ctx, txn).Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, ownerID, transactionID string) error {
	return m.Called(ctx, ownerID, transactionID).Error(0)
}

// --- Expense repository ---

type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) FindExpenseByID(ctx context.Context, ownerID, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, ownerID, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) ListExpenses(ctx context.Context, ownerID string, filter domain.ExpenseFilter) ([]domain.Expense, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) CountReceipts(ctx context.Context, ownerID string) (int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	return m.Called(ctx, expense).Error(0)
}

func (m *MockExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	return m.Called(ctx, expense).Error(0)
}

func (m *MockExpenseRepository) DeleteExpense(ctx context.Context, ownerID, expenseID string) error {
	return m.Called(ctx, ownerID, expenseID).Error(0)
}

func (m *MockExpenseRepository) AttachReceipt(ctx context.Context, ownerID, expenseID, receiptURL string, sizeBytes int64) (*domain.Expense, error) {
	args := m.Called(ctx, ownerID, expenseID, receiptURL, sizeBytes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

// --- Profile repository ---

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) FindProfile(ctx context.Context, ownerID string) (*domain.Profile, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepository) UpsertProfile(ctx context.Context, profile domain.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockProfileRepository) NextInvoiceSequence(ctx context.Context, ownerID string) (int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

// --- Staff and salary repositories ---

type MockStaffRepository struct {
	mock.Mock
}

func (m *MockStaffRepository) FindStaffByID(ctx context.Context, ownerID, staffID string) (*domain.Staff, error) {
	args := m.Called(ctx, ownerID, staffID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Staff), args.Error(1)
}

func (m *MockStaffRepository) ListStaff(ctx context.Context, ownerID string) ([]domain.Staff, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Staff), args.Error(1)
}

func (m *MockStaffRepository) SaveStaff(ctx context.Context, staff domain.Staff) error {
	return m.Called(ctx, staff).Error(0)
}

func (m *MockStaffRepository) UpdateStaff(ctx context.Context, staff domain.Staff) error {
	return m.Called(ctx, staff).Error(0)
}

func (m *MockStaffRepository) DeleteStaff(ctx context.Context, ownerID, staffID string) error {
	return m.Called(ctx, ownerID, staffID).Error(0)
}

type MockSalaryRepository struct {
	mock.Mock
}

func (m *MockSalaryRepository) FindSalaryPaymentByID(ctx context.Context, ownerID, paymentID string) (*domain.SalaryPayment, error) {
	args := m.Called(ctx, ownerID, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SalaryPayment), args.Error(1)
}

func (m *MockSalaryRepository) ListSalaryPaymentsByMonth(ctx context.Context, ownerID, monthYear string) ([]domain.SalaryPayment, error) {
	args := m.Called(ctx, ownerID, monthYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SalaryPayment), args.Error(1)
}

func (m *MockSalaryRepository) ListSalaryPaymentsByStaff(ctx context.Context, ownerID, staffID string) ([]domain.SalaryPayment, error) {
	args := m.Called(ctx, ownerID, staffID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SalaryPayment), args.Error(1)
}

func (m *MockSalaryRepository) SaveSalaryPayment(ctx context.Context, payment domain.SalaryPayment) error {
	return m.Called(ctx, payment).Error(0)
}

func (m *MockSalaryRepository) DeleteSalaryPayment(ctx context.Context, ownerID, paymentID string) error {
	return m.Called(ctx, ownerID, paymentID).Error(0)
}

// --- Plan gate and receipt store ---

// --- Inventory repository ---

type MockInventoryRepository struct {
	mock.Mock
}

var _ portsrepo.InventoryRepositoryFacade = (*MockInventoryRepository)(nil)

func (m *MockInventoryRepository) FindInventoryItemByID(ctx context.Context, ownerID, itemID string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, ownerID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) ListInventoryItems(ctx context.Context, ownerID string, limit, offset int) ([]domain.InventoryItem, error) {
	args := m.Called(ctx, ownerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) SaveInventoryItem(ctx context.Context, item domain.InventoryItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockInventoryRepository) UpdateInventoryItem(ctx context.Context, item domain.InventoryItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockInventoryRepository) DeleteInventoryItem(ctx context.Context, ownerID, itemID string) error {
	return m.Called(ctx, ownerID, itemID).Error(0)
}

func (m *MockInventoryRepository) AdjustInventoryQuantity(ctx context.Context, ownerID, itemID string, delta decimal.Decimal, actorID string, now time.Time) (*domain.InventoryItem, error) {
	args := m.Called(ctx, ownerID, itemID, delta, actorID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

type MockPlanLimitSvc struct {
	mock.Mock
}

func (m *MockPlanLimitSvc) GetUsage(ctx context.Context, ownerID string) (*domain.PlanUsage, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlanUsage), args.Error(1)
}

func (m *MockPlanLimitSvc) EnsureAllowed(ctx context.Context, ownerID string, resource domain.PlanResource) error {
	return m.Called(ctx, ownerID, resource).Error(0)
}

type MockReceiptStore struct {
	mock.Mock
}

func (m *MockReceiptStore) Save(ctx context.Context, ownerID, expenseID, filename string, body io.Reader) (*portsrepo.StoredObject, error) {
	args := m.Called(ctx, ownerID, expenseID, filename, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portsrepo.StoredObject), args.Error(1)
}

func (m *MockReceiptStore) Delete(ctx context.Context, url string) error {
	return m.Called(ctx, url).Error(0)
}

// --- In-memory petty cash ledger ---

// memoryPettyCash serializes appends with a mutex the way the database
// implementation serializes them with a per-tenant lock.
type memoryPettyCash struct {
	mu       sync.Mutex
	entries  map[string][]domain.PettyCashTransaction
	expenses map[string][]domain.Expense
}

func newMemoryPettyCash() *memoryPettyCash {
	return &memoryPettyCash{
		entries:  map[string][]domain.PettyCashTransaction{},
		expenses: map[string][]domain.Expense{},
	}
}

var _ portsrepo.PettyCashRepositoryFacade = (*memoryPettyCash)(nil)

func (r *memoryPettyCash) ListPettyCash(_ context.Context, ownerID string, from, to *time.Time) ([]domain.PettyCashTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.PettyCashTransaction
	for _, e := range r.entries[ownerID] {
		if from != nil && e.Date.Before(*from) {
			continue
		}
		if to != nil && e.Date.After(*to) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *memoryPettyCash) LatestPettyCash(_ context.Context, ownerID string) (*domain.PettyCashTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	latest := accounting.LatestPettyCash(r.entries[ownerID])
	if latest == nil {
		return nil, apperrors.ErrNotFound
	}
	return latest, nil
}

func (r *memoryPettyCash) AppendPettyCash(_ context.Context, ownerID string, build domain.PettyCashBuilder) (*domain.PettyCashTransaction, *domain.Expense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	draft, err := build(accounting.CurrentPettyCashBalance(r.entries[ownerID]))
	if err != nil {
		return nil, nil, err
	}
	r.entries[ownerID] = append(r.entries[ownerID], draft.Entry)
	if draft.Expense != nil {
		r.expenses[ownerID] = append(r.expenses[ownerID], *draft.Expense)
	}
	return &draft.Entry, draft.Expense, nil
}

func (r *memoryPettyCash) DeletePettyCash(_ context.Context, ownerID, entryID string) (*domain.PettyCashTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entries := r.entries[ownerID]
	idx := -1
	for i, e := range entries {
		if e.ID == entryID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, apperrors.ErrNotFound
	}
	deleted := entries[idx]
	remaining := make([]domain.PettyCashTransaction, 0, len(entries)-1)
	remaining = append(remaining, entries[:idx]...)
	remaining = append(remaining, entries[idx+1:]...)
	accounting.SortPettyCash(remaining)
	if _, err := accounting.RechainPettyCash(decimal.Zero, remaining); err != nil {
		return nil, err
	}
	r.entries[ownerID] = remaining
	if deleted.LinkedExpenseID != nil {
		kept := r.expenses[ownerID][:0]
		for _, e := range r.expenses[ownerID] {
			if e.ExpenseID != *deleted.LinkedExpenseID {
				kept = append(kept, e)
			}
		}
		r.expenses[ownerID] = kept
	}
	return &deleted, nil
}

func (r *memoryPettyCash) RechainPettyCash(_ context.Context, ownerID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entries := r.entries[ownerID]
	accounting.SortPettyCash(entries)
	changed, err := accounting.RechainPettyCash(decimal.Zero, entries)
	if err != nil {
		return 0, err
	}
	return len(changed), nil
}
