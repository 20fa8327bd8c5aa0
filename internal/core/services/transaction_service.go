package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/apperrors"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
	portsrepo "github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/ports/repositories"
	portssvc "github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/ports/services"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/dto"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/events"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/utils/pagination"
	"github.com/google/uuid"
)

type transactionService struct {
	BaseService
	txnRepo     portsrepo.TransactionRepositoryFacade
	memberRepo  portsrepo.MemberReader
	profileRepo portsrepo.ProfileRepositoryFacade
}

// NewTransactionService creates the member billing service.
func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade, memberRepo portsrepo.MemberReader, profileRepo portsrepo.ProfileRepositoryFacade, options ...ServiceOption) portssvc.TransactionSvcFacade {
	return &transactionService{
		BaseService: newBaseService(options),
		txnRepo:     txnRepo,
		memberRepo:  memberRepo,
		profileRepo: profileRepo,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) RecordTransaction(ctx context.Context, ownerID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	if err := requirePositive("amount", req.Amount); err != nil {
		return nil, err
	}
	if _, err := s.memberRepo.FindMemberByID(ctx, ownerID, req.MemberID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: member %s does not exist", apperrors.ErrValidation, req.MemberID)
		}
		s.LogError(ctx, err, "Failed to look up member for transaction", slog.String("member_id", req.MemberID))
		return nil, err
	}

	now := s.now()
	date := now
	if req.Date != nil {
		date = *req.Date
	}
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		OwnerID:       ownerID,
		MemberID:      req.MemberID,
		Type:          req.Type,
		Amount:        req.Amount,
		Date:          date,
		Notes:         req.Notes,
		AuditFields:   domain.NewAuditFields(ownerID, now),
	}
	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction",
			slog.String("member_id", txn.MemberID),
			slog.String("type", string(txn.Type)))
		return nil, fmt.Errorf("failed to record transaction: %w", err)
	}
	s.emit(ctx, events.EntityTransactions, events.OpInsert, ownerID, txn.TransactionID)
	s.emit(ctx, events.EntityMembers, events.OpUpdate, ownerID, txn.MemberID)
	s.LogInfo(ctx, "Transaction recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("member_id", txn.MemberID),
		slog.String("type", string(txn.Type)),
		slog.String("amount", txn.Amount.String()))
	return &txn, nil
}

func (s *transactionService) GetTransaction(ctx context.Context, ownerID, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, ownerID, transactionID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to find transaction", slog.String("transaction_id", transactionID))
		return nil, err
	}
	return txn, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, ownerID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
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
	filter := domain.TransactionFilter{
		From:      from,
		To:        to,
		Limit:     limit + 1,
		NextToken: params.NextToken,
	}
	if params.MemberID != "" {
		filter.MemberID = &params.MemberID
	}
	if params.Type != "" {
		t := domain.TransactionType(params.Type)
		filter.Type = &t
	}

	txns, err := s.txnRepo.ListTransactions(ctx, ownerID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	var nextToken *string
	if len(txns) > limit {
		txns = txns[:limit]
		last := txns[limit-1]
		token := pagination.EncodeToken(pagination.Cursor{RecordDate: last.Date, CreatedAt: last.CreatedAt, ID: last.TransactionID})
		nextToken = &token
	}
	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}

func (s *transactionService) UpdateTransaction(ctx context.Context, ownerID, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, ownerID, transactionID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to find transaction for update", slog.String("transaction_id", transactionID))
		return nil, err
	}
	if req.Type != nil {
		txn.Type = *req.Type
	}
	if req.Amount != nil {
		if err := requirePositive("amount", *req.Amount); err != nil {
			return nil, err
		}
		txn.Amount = *req.Amount
	}
	if req.Date != nil {
		txn.Date = *req.Date
	}
	if req.Notes != nil {
		txn.Notes = req.Notes
	}
	txn.Touch(ownerID, s.now())

	if err := s.txnRepo.UpdateTransaction(ctx, *txn); err != nil {
		s.logFailure(ctx, err, "Failed to update transaction", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	s.emit(ctx, events.EntityTransactions, events.OpUpdate, ownerID, transactionID)
	s.emit(ctx, events.EntityMembers, events.OpUpdate, ownerID, txn.MemberID)
	return txn, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, ownerID, transactionID string) error {
	if err := s.txnRepo.DeleteTransaction(ctx, ownerID, transactionID); err != nil {
		s.logFailure(ctx, err, "Failed to delete transaction", slog.String("transaction_id", transactionID))
		return err
	}
	s.emit(ctx, events.EntityTransactions, events.OpDelete, ownerID, transactionID)
	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}
