package services

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/finance-dashboard/internal/dto"
	"github.com/GregMSThompson/finance-dashboard/internal/errs"
	"github.com/GregMSThompson/finance-dashboard/internal/models"
	"github.com/GregMSThompson/finance-dashboard/pkg/logger"
)

const defaultCurrency = "BRL"

type accountStore interface {
	ListAccounts(ctx context.Context, userID int64) ([]models.Account, error)
	GetAccount(ctx context.Context, userID, accountID int64) (models.Account, error)
	CreateAccount(ctx context.Context, a *models.Account) error
	UpdateAccount(ctx context.Context, a *models.Account) error
	DeleteAccount(ctx context.Context, userID, accountID int64) error
}

type accountService struct {
	accounts accountStore
}

func NewAccountService(accounts accountStore) *accountService {
	return &accountService{accounts: accounts}
}

func (s *accountService) List(ctx context.Context, userID int64) ([]models.Account, error) {
	return s.accounts.ListAccounts(ctx, userID)
}

func (s *accountService) Create(ctx context.Context, userID int64, req dto.CreateAccountRequest) (models.Account, error) {
	a := models.Account{
		UserID:   userID,
		Name:     strings.TrimSpace(req.Name),
		Type:     req.Type,
		Balance:  decimal.Zero,
		Currency: req.Currency,
	}
	if req.Balance != nil {
		a.Balance = *req.Balance
	}
	if a.Currency == "" {
		a.Currency = defaultCurrency
	}
	if err := validateAccount(a); err != nil {
		return models.Account{}, err
	}

	if err := s.accounts.CreateAccount(ctx, &a); err != nil {
		return models.Account{}, err
	}
	logger.FromContext(ctx).Info("account created", "account_id", a.ID, "type", a.Type)
	return a, nil
}

func (s *accountService) Update(ctx context.Context, userID, accountID int64, patch dto.AccountPatch) (models.Account, error) {
	a, err := s.accounts.GetAccount(ctx, userID, accountID)
	if err != nil {
		return models.Account{}, err
	}
	patch.Apply(&a)
	if err := validateAccount(a); err != nil {
		return models.Account{}, err
	}
	if err := s.accounts.UpdateAccount(ctx, &a); err != nil {
		return models.Account{}, err
	}
	return a, nil
}

// Delete removes the account and, through the schema, its transactions.
func (s *accountService) Delete(ctx context.Context, userID, accountID int64) error {
	if err := s.accounts.DeleteAccount(ctx, userID, accountID); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("account deleted", "account_id", accountID)
	return nil
}

func validateAccount(a models.Account) error {
	if a.Name == "" {
		return errs.NewValidationError("name is required")
	}
	if !a.Type.Valid() {
		return errs.NewValidationError("type must be one of checking, savings, investment")
	}
	return nil
}
