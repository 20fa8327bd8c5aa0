package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/apperrors"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
	portsrepo "github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/ports/repositories"
	portssvc "github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/ports/services"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/dto"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/events"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/utils"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/utils/pagination"
	"github.com/google/uuid"
)

type expenseService struct {
	BaseService
	expenseRepo portsrepo.ExpenseRepositoryFacade
	profileRepo portsrepo.ProfileRepositoryFacade
	receipts    portsrepo.ReceiptStore
	limits      portssvc.PlanLimitSvc
}

// ExpenseOption configures optional expense service dependencies.
type ExpenseOption func(*expenseService)

// WithReceiptStore enables receipt attachments.
func WithReceiptStore(store portsrepo.ReceiptStore) ExpenseOption {
	return func(s *expenseService) {
		s.receipts = store
	}
}

// WithExpensePlanLimits gates receipt uploads on the tenant plan.
func WithExpensePlanLimits(limits portssvc.PlanLimitSvc) ExpenseOption {
	return func(s *expenseService) {
		s.limits = limits
	}
}

// NewExpenseService creates the main-ledger expense service.
func NewExpenseService(expenseRepo portsrepo.ExpenseRepositoryFacade, profileRepo portsrepo.ProfileRepositoryFacade, expenseOptions []ExpenseOption, options ...ServiceOption) portssvc.ExpenseSvcFacade {
	svc := &expenseService{
		BaseService: newBaseService(options),
		expenseRepo: expenseRepo,
		profileRepo: profileRepo,
	}
	for _, option := range expenseOptions {
		option(svc)
	}
	return svc
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

func (s *expenseService) CreateExpense(ctx context.Context, ownerID string, req dto.CreateExpenseRequest) (*domain.Expense, error) {
	description, err := requireText("description", req.Description)
	if err != nil {
		return nil, err
	}
	if err := requirePositive("amount", req.Amount); err != nil {
		return nil, err
	}
	if !req.Category.IsValid() {
		return nil, fmt.Errorf("%w: unknown category %q", apperrors.ErrValidation, req.Category)
	}

	now := s.now()
	date := now
	if req.Date != nil {
		date = *req.Date
	}
	expense := domain.Expense{
		ExpenseID:   uuid.NewString(),
		OwnerID:     ownerID,
		Description: description,
		Amount:      req.Amount,
		Category:    req.Category,
		Date:        date,
		AuditFields: domain.NewAuditFields(ownerID, now),
	}
	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		s.LogError(ctx, err, "Failed to save expense", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}
	s.emit(ctx, events.EntityExpenses, events.OpInsert, ownerID, expense.ExpenseID)
	s.LogInfo(ctx, "Expense recorded",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("category", string(expense.Category)),
		slog.String("amount", expense.Amount.String()))
	return &expense, nil
}

func (s *expenseService) GetExpense(ctx context.Context, ownerID, expenseID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, ownerID, expenseID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to find expense", slog.String("expense_id", expenseID))
		return nil, err
	}
	return expense, nil
}

func (s *expenseService) ListExpenses(ctx context.Context, ownerID string, params dto.ListExpensesParams) (*dto.ListExpensesResponse, error) {
	profile, err := loadProfile(ctx, s.profileRepo, ownerID)
	if err != nil {
		return nil, err
	}
	from, to, err := parseDateRange(params.From, params.To, profile.Location())
	if err != nil {
		return nil, err
	}
	if params.NextToken != nil {
		if _, err := pagination.DecodeToken(*params.NextToken); err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
	}

	limit := pagination.ClampLimit(params.Limit)
	filter := domain.ExpenseFilter{From: from, To: to, Limit: limit + 1, NextToken: params.NextToken}
	if params.Category != "" {
		category, ok := domain.ParseExpenseCategory(params.Category)
		if !ok {
			return nil, fmt.Errorf("%w: unknown category %q", apperrors.ErrValidation, params.Category)
		}
		filter.Category = &category
	}

	expenses, err := s.expenseRepo.ListExpenses(ctx, ownerID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list expenses", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	var nextToken *string
	if len(expenses) > limit {
		expenses = expenses[:limit]
		last := expenses[limit-1]
		token := pagination.EncodeToken(pagination.Cursor{RecordDate: last.Date, CreatedAt: last.CreatedAt, ID: last.ExpenseID})
		nextToken = &token
	}
	return &dto.ListExpensesResponse{Expenses: dto.ToExpenseResponses(expenses), NextToken: nextToken}, nil
}

func (s *expenseService) UpdateExpense(ctx context.Context, ownerID, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, ownerID, expenseID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to find expense for update", slog.String("expense_id", expenseID))
		return nil, err
	}
	if req.Description != nil {
		description, err := requireText("description", *req.Description)
		if err != nil {
			return nil, err
		}
		expense.Description = description
	}
	if req.Amount != nil {
		if err := requirePositive("amount", *req.Amount); err != nil {
			return nil, err
		}
		expense.Amount = *req.Amount
	}
	if req.Category != nil {
		if !req.Category.IsValid() {
			return nil, fmt.Errorf("%w: unknown category %q", apperrors.ErrValidation, *req.Category)
		}
		expense.Category = *req.Category
	}
	if req.Date != nil {
		expense.Date = *req.Date
	}
	expense.Touch(ownerID, s.now())

	if err := s.expenseRepo.UpdateExpense(ctx, *expense); err != nil {
		s.logFailure(ctx, err, "Failed to update expense", slog.String("expense_id", expenseID))
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}
	s.emit(ctx, events.EntityExpenses, events.OpUpdate, ownerID, expenseID)
	return expense, nil
}

func (s *expenseService) DeleteExpense(ctx context.Context, ownerID, expenseID string) error {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, ownerID, expenseID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to find expense for delete", slog.String("expense_id", expenseID))
		return err
	}
	if err := s.expenseRepo.DeleteExpense(ctx, ownerID, expenseID); err != nil {
		s.logFailure(ctx, err, "Failed to delete expense", slog.String("expense_id", expenseID))
		return err
	}
	if expense.HasReceipt() {
		s.removeReceiptFile(ctx, *expense.ReceiptURL)
		s.emit(ctx, events.EntityProfiles, events.OpUpdate, ownerID, ownerID)
	}
	s.emit(ctx, events.EntityExpenses, events.OpDelete, ownerID, expenseID)
	s.LogInfo(ctx, "Expense deleted", slog.String("expense_id", expenseID))
	return nil
}

func (s *expenseService) AttachReceipt(ctx context.Context, ownerID, expenseID string, upload dto.ReceiptUpload) (*domain.Expense, error) {
	if s.receipts == nil {
		return nil, apperrors.NewAppError(503, "receipt storage is not configured", nil)
	}
	if upload.Body == nil {
		return nil, fmt.Errorf("%w: receipt file is required", apperrors.ErrValidation)
	}
	expense, err := s.expenseRepo.FindExpenseByID(ctx, ownerID, expenseID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to find expense for receipt", slog.String("expense_id", expenseID))
		return nil, err
	}
	// Replacing an attachment does not count against the receipt ceiling.
	if !expense.HasReceipt() && s.limits != nil {
		if err := s.limits.EnsureAllowed(ctx, ownerID, domain.ResourceReceipts); err != nil {
			return nil, err
		}
	}
	profile, err := loadProfile(ctx, s.profileRepo, ownerID)
	if err != nil {
		return nil, err
	}

	stored, err := s.receipts.Save(ctx, ownerID, expenseID, upload.Filename, upload.Body)
	if err != nil {
		s.LogError(ctx, err, "Failed to store receipt", slog.String("expense_id", expenseID))
		return nil, fmt.Errorf("failed to store receipt: %w", err)
	}
	projected := profile.StorageUsedBytes - expense.FileSizeBytes + stored.SizeBytes
	if projected > profile.StorageLimit() {
		s.removeReceiptFile(ctx, stored.URL)
		return nil, fmt.Errorf("%w: storage quota of %d bytes exceeded", apperrors.ErrPlanLimitReached, profile.StorageLimit())
	}

	updated, err := s.expenseRepo.AttachReceipt(ctx, ownerID, expenseID, stored.URL, stored.SizeBytes)
	if err != nil {
		s.removeReceiptFile(ctx, stored.URL)
		s.logFailure(ctx, err, "Failed to attach receipt", slog.String("expense_id", expenseID))
		return nil, fmt.Errorf("failed to attach receipt: %w", err)
	}
	if expense.HasReceipt() && *expense.ReceiptURL != stored.URL {
		s.removeReceiptFile(ctx, *expense.ReceiptURL)
	}

	s.emit(ctx, events.EntityExpenses, events.OpUpdate, ownerID, expenseID)
	s.emit(ctx, events.EntityProfiles, events.OpUpdate, ownerID, ownerID)
	s.track(ownerID, utils.EventReceiptUploaded, map[string]any{
		"size_bytes":   stored.SizeBytes,
		"content_type": upload.ContentType,
	})
	s.LogInfo(ctx, "Receipt attached",
		slog.String("expense_id", expenseID),
		slog.Int64("size_bytes", stored.SizeBytes))
	return updated, nil
}

func (s *expenseService) removeReceiptFile(ctx context.Context, url string) {
	if s.receipts == nil {
		return
	}
	if err := s.receipts.Delete(ctx, url); err != nil {
		s.LogError(ctx, err, "Failed to remove receipt file", slog.String("url", url))
	}
}
