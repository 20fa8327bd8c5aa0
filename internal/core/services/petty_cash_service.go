package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/apperrors"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
	portsrepo "github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/ports/repositories"
	portssvc "github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/ports/services"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/dto"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/events"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/utils"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type pettyCashService struct {
	BaseService
	pettyCashRepo portsrepo.PettyCashRepositoryFacade
	profileRepo   portsrepo.ProfileRepositoryFacade
}

// NewPettyCashService creates the petty cash ledger service.
func NewPettyCashService(pettyCashRepo portsrepo.PettyCashRepositoryFacade, profileRepo portsrepo.ProfileRepositoryFacade, options ...ServiceOption) portssvc.PettyCashSvcFacade {
	return &pettyCashService{
		BaseService:   newBaseService(options),
		pettyCashRepo: pettyCashRepo,
		profileRepo:   profileRepo,
	}
}

var _ portssvc.PettyCashSvcFacade = (*pettyCashService)(nil)

func (s *pettyCashService) CurrentBalance(ctx context.Context, ownerID string) (decimal.Decimal, error) {
	latest, err := s.pettyCashRepo.LatestPettyCash(ctx, ownerID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to read petty cash balance", slog.String("owner_id", ownerID))
		return decimal.Zero, fmt.Errorf("failed to read petty cash balance: %w", err)
	}
	return latest.BalanceAfter, nil
}

func (s *pettyCashService) ListEntries(ctx context.Context, ownerID string, params dto.ListPettyCashParams) ([]domain.PettyCashTransaction, error) {
	profile, err := loadProfile(ctx, s.profileRepo, ownerID)
	if err != nil {
		return nil, err
	}
	from, to, err := parseDateRange(params.From, params.To, profile.Location())
	if err != nil {
		return nil, err
	}
	entries, err := s.pettyCashRepo.ListPettyCash(ctx, ownerID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to list petty cash", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to list petty cash: %w", err)
	}
	if entries == nil {
		return []domain.PettyCashTransaction{}, nil
	}
	return entries, nil
}

func (s *pettyCashService) AddRefill(ctx context.Context, ownerID string, req dto.PettyCashRefillRequest) (*domain.PettyCashTransaction, *domain.Expense, error) {
	description := strings.TrimSpace(req.Description)
	entry, expense, err := s.pettyCashRepo.AppendPettyCash(ctx, ownerID, func(current decimal.Decimal) (domain.PettyCashDraft, error) {
		next, err := accounting.NextPettyCashBalance(current, domain.PettyCashRefill, req.Amount)
		if err != nil {
			return domain.PettyCashDraft{}, err
		}
		now := s.now()
		draft := domain.PettyCashDraft{
			Entry: domain.PettyCashTransaction{
				ID:           uuid.NewString(),
				OwnerID:      ownerID,
				Amount:       req.Amount,
				Type:         domain.PettyCashRefill,
				Description:  description,
				BalanceAfter: next,
				Date:         now,
				AuditFields:  domain.NewAuditFields(ownerID, now),
			},
		}
		// The withdrawal is booked as "other" on purpose: cash moved to the
		// float is spent without a category, so it counts as discretionary
		// spend in alerts and as a variable cost in the audit report.
		if req.RecordAsExpense {
			withdrawal := domain.Expense{
				ExpenseID:   uuid.NewString(),
				OwnerID:     ownerID,
				Description: domain.CashWithdrawalDescription(description),
				Amount:      req.Amount,
				Category:    domain.CategoryOther,
				Date:        now,
				AuditFields: domain.NewAuditFields(ownerID, now),
			}
			draft.Expense = &withdrawal
			draft.Entry.LinkedExpenseID = &withdrawal.ExpenseID
		}
		return draft, nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to add petty cash refill", slog.String("owner_id", ownerID))
		return nil, nil, err
	}

	s.emit(ctx, events.EntityPettyCash, events.OpInsert, ownerID, entry.ID)
	if expense != nil {
		s.emit(ctx, events.EntityExpenses, events.OpInsert, ownerID, expense.ExpenseID)
	}
	s.LogInfo(ctx, "Petty cash refilled",
		slog.String("entry_id", entry.ID),
		slog.String("amount", entry.Amount.String()),
		slog.String("balance_after", entry.BalanceAfter.String()),
		slog.Bool("recorded_as_expense", expense != nil))
	return entry, expense, nil
}

func (s *pettyCashService) AddSmallExpense(ctx context.Context, ownerID string, req dto.PettyCashExpenseRequest) (*domain.PettyCashTransaction, error) {
	description, err := requireText("description", req.Description)
	if err != nil {
		return nil, err
	}
	var available decimal.Decimal
	entry, _, err := s.pettyCashRepo.AppendPettyCash(ctx, ownerID, func(current decimal.Decimal) (domain.PettyCashDraft, error) {
		available = current
		next, err := accounting.NextPettyCashBalance(current, domain.PettyCashExpense, req.Amount)
		if err != nil {
			return domain.PettyCashDraft{}, err
		}
		now := s.now()
		return domain.PettyCashDraft{
			Entry: domain.PettyCashTransaction{
				ID:           uuid.NewString(),
				OwnerID:      ownerID,
				Amount:       req.Amount,
				Type:         domain.PettyCashExpense,
				Description:  description,
				BalanceAfter: next,
				Date:         now,
				AuditFields:  domain.NewAuditFields(ownerID, now),
			},
		}, nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrInsufficientBalance) {
			s.LogInfo(ctx, "Petty cash expense exceeds balance",
				slog.String("owner_id", ownerID),
				slog.String("amount", req.Amount.String()),
				slog.String("available", available.String()))
			s.track(ownerID, utils.EventInsufficientFloat, map[string]any{
				"amount":    req.Amount.String(),
				"available": available.String(),
			})
			return nil, err
		}
		s.logFailure(ctx, err, "Failed to add petty cash expense", slog.String("owner_id", ownerID))
		return nil, err
	}

	s.emit(ctx, events.EntityPettyCash, events.OpInsert, ownerID, entry.ID)
	s.LogInfo(ctx, "Petty cash spent",
		slog.String("entry_id", entry.ID),
		slog.String("amount", entry.Amount.String()),
		slog.String("balance_after", entry.BalanceAfter.String()))
	return entry, nil
}

func (s *pettyCashService) DeleteEntry(ctx context.Context, ownerID, entryID string) error {
	deleted, err := s.pettyCashRepo.DeletePettyCash(ctx, ownerID, entryID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to delete petty cash entry", slog.String("entry_id", entryID))
		return err
	}
	s.emit(ctx, events.EntityPettyCash, events.OpDelete, ownerID, entryID)
	if deleted.LinkedExpenseID != nil {
		s.emit(ctx, events.EntityExpenses, events.OpDelete, ownerID, *deleted.LinkedExpenseID)
	}
	s.LogInfo(ctx, "Petty cash entry deleted",
		slog.String("entry_id", entryID),
		slog.String("type", string(deleted.Type)),
		slog.String("amount", deleted.Amount.String()))
	return nil
}

func (s *pettyCashService) Rebalance(ctx context.Context, ownerID string) (int, error) {
	changed, err := s.pettyCashRepo.RechainPettyCash(ctx, ownerID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to rebalance petty cash", slog.String("owner_id", ownerID))
		return 0, err
	}
	if changed > 0 {
		s.emit(ctx, events.EntityPettyCash, events.OpUpdate, ownerID, "")
	}
	s.LogInfo(ctx, "Petty cash rebalanced", slog.String("owner_id", ownerID), slog.Int("corrected", changed))
	return changed, nil
}
