package services

import (
	"context"
	"strings"
	"time"

	"github.com/GregMSThompson/finance-dashboard/internal/dto"
	"github.com/GregMSThompson/finance-dashboard/internal/errs"
	"github.com/GregMSThompson/finance-dashboard/internal/models"
	"github.com/GregMSThompson/finance-dashboard/pkg/logger"
)

type budgetStore interface {
	ListBudgets(ctx context.Context, userID int64, f dto.BudgetFilter) ([]models.Budget, error)
	GetBudget(ctx context.Context, userID, budgetID int64) (models.Budget, error)
	CreateBudget(ctx context.Context, b *models.Budget) error
	UpdateBudget(ctx context.Context, b *models.Budget) error
	DeleteBudget(ctx context.Context, userID, budgetID int64) error
}

type budgetService struct {
	budgets  budgetStore
	clockNow func() time.Time
}

func NewBudgetService(budgets budgetStore) *budgetService {
	return &budgetService{budgets: budgets, clockNow: time.Now}
}

func (s *budgetService) List(ctx context.Context, userID int64, f dto.BudgetFilter) ([]models.Budget, error) {
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return nil, errs.NewValidationError("endDate must not be before startDate")
	}
	return s.budgets.ListBudgets(ctx, userID, f)
}

// Create defaults the period to monthly and the start to the first day of
// the current month.
func (s *budgetService) Create(ctx context.Context, userID int64, req dto.CreateBudgetRequest) (models.Budget, error) {
	now := s.clockNow()
	b := models.Budget{
		UserID:    userID,
		Category:  strings.TrimSpace(req.Category),
		Period:    req.Period,
		StartDate: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC),
		EndDate:   req.EndDate.Ptr(),
	}
	if req.Amount != nil {
		b.Amount = *req.Amount
	}
	if b.Period == "" {
		b.Period = models.BudgetMonthly
	}
	if req.StartDate != nil {
		b.StartDate = req.StartDate.Time
	}
	if err := validateBudget(b); err != nil {
		return models.Budget{}, err
	}

	if err := s.budgets.CreateBudget(ctx, &b); err != nil {
		return models.Budget{}, err
	}
	logger.FromContext(ctx).Info("budget created", "budget_id", b.ID, "category", b.Category)
	return b, nil
}

func (s *budgetService) Update(ctx context.Context, userID, budgetID int64, patch dto.BudgetPatch) (models.Budget, error) {
	b, err := s.budgets.GetBudget(ctx, userID, budgetID)
	if err != nil {
		return models.Budget{}, err
	}
	patch.Apply(&b)
	if err := validateBudget(b); err != nil {
		return models.Budget{}, err
	}
	if err := s.budgets.UpdateBudget(ctx, &b); err != nil {
		return models.Budget{}, err
	}
	return b, nil
}

func (s *budgetService) Delete(ctx context.Context, userID, budgetID int64) error {
	return s.budgets.DeleteBudget(ctx, userID, budgetID)
}

func validateBudget(b models.Budget) error {
	switch {
	case b.Category == "":
		return errs.NewValidationError("category is required")
	case !b.Amount.IsPositive():
		return errs.NewValidationError("amount must be greater than zero")
	case !b.Period.Valid():
		return errs.NewValidationError("period must be one of monthly, quarterly, annual")
	case b.EndDate != nil && b.EndDate.Before(b.StartDate):
		return errs.NewValidationError("end_date must not be before start_date")
	}
	return nil
}
