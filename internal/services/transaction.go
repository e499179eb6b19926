package services

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/finance-dashboard/internal/dto"
	"github.com/GregMSThompson/finance-dashboard/internal/errs"
	"github.com/GregMSThompson/finance-dashboard/internal/models"
	"github.com/GregMSThompson/finance-dashboard/pkg/logger"
)

type transactionStore interface {
	ListTransactions(ctx context.Context, f dto.TransactionFilter) ([]models.Transaction, error)
	InsertTransaction(ctx context.Context, t *models.Transaction) error
}

type balanceStore interface {
	AdjustBalance(ctx context.Context, userID, accountID int64, delta decimal.Decimal) (decimal.Decimal, error)
}

// unitOfWork runs fn so that every store call made with its context
// commits or rolls back together.
type unitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type transactionService struct {
	txs      transactionStore
	balances balanceStore
	uow      unitOfWork
	clockNow func() time.Time
}

func NewTransactionService(txs transactionStore, balances balanceStore, uow unitOfWork) *transactionService {
	return &transactionService{
		txs:      txs,
		balances: balances,
		uow:      uow,
		clockNow: time.Now,
	}
}

// List returns the user's transactions newest first. Without AccountID
// the listing spans all of the user's accounts.
func (s *transactionService) List(ctx context.Context, f dto.TransactionFilter) ([]models.Transaction, error) {
	if f.Limit < 0 {
		return nil, errs.NewValidationError("limit must not be negative")
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return nil, errs.NewValidationError("endDate must not be before startDate")
	}
	return s.txs.ListTransactions(ctx, f)
}

// Create stores the transaction and moves the account balance by its
// signed amount as one unit. If either step fails neither is kept.
func (s *transactionService) Create(ctx context.Context, userID int64, req dto.CreateTransactionRequest) (dto.TransactionCreatedResponse, error) {
	t, err := s.newTransaction(req)
	if err != nil {
		return dto.TransactionCreatedResponse{}, err
	}

	var balance decimal.Decimal
	err = s.uow.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.txs.InsertTransaction(ctx, &t); err != nil {
			return err
		}
		balance, err = s.balances.AdjustBalance(ctx, userID, t.AccountID, t.Amount)
		return err
	})
	if err != nil {
		return dto.TransactionCreatedResponse{}, err
	}

	logger.FromContext(ctx).Info("transaction created",
		"transaction_id", t.ID,
		"account_id", t.AccountID,
		"type", t.Type,
	)
	return dto.TransactionCreatedResponse{Transaction: t, Balance: balance}, nil
}

func (s *transactionService) newTransaction(req dto.CreateTransactionRequest) (models.Transaction, error) {
	desc := strings.TrimSpace(req.Description)
	switch {
	case req.AccountID <= 0:
		return models.Transaction{}, errs.NewValidationError("account_id is required")
	case desc == "":
		return models.Transaction{}, errs.NewValidationError("description is required")
	case !req.Type.Valid():
		return models.Transaction{}, errs.NewValidationError("type must be credit or debit")
	case req.Amount == nil || req.Amount.IsZero():
		return models.Transaction{}, errs.NewValidationError("amount must be non-zero")
	case !req.Amount.Equal(req.Amount.Round(2)):
		// amounts are stored as NUMERIC(14,2)
		return models.Transaction{}, errs.NewValidationError("amount must have at most two decimal places")
	}

	date := s.clockNow()
	if req.Date != nil {
		date = req.Date.Time
	}

	return models.Transaction{
		AccountID:   req.AccountID,
		Description: desc,
		Amount:      models.SignedAmount(req.Type, *req.Amount),
		Type:        req.Type,
		Category:    req.Category,
		Date:        date,
	}, nil
}
