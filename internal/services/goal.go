package services

import (
	"context"
	"strings"
	"time"

	"github.com/GregMSThompson/finance-dashboard/internal/analytics"
	"github.com/GregMSThompson/finance-dashboard/internal/dto"
	"github.com/GregMSThompson/finance-dashboard/internal/errs"
	"github.com/GregMSThompson/finance-dashboard/internal/models"
	"github.com/GregMSThompson/finance-dashboard/pkg/logger"
)

type goalStore interface {
	ListGoals(ctx context.Context, userID int64) ([]models.SavingsGoal, error)
	GetGoal(ctx context.Context, userID, goalID int64) (models.SavingsGoal, error)
	CreateGoal(ctx context.Context, g *models.SavingsGoal) error
	UpdateGoal(ctx context.Context, g *models.SavingsGoal) error
	DeleteGoal(ctx context.Context, userID, goalID int64) error
}

type goalService struct {
	goals    goalStore
	clockNow func() time.Time
}

func NewGoalService(goals goalStore) *goalService {
	return &goalService{goals: goals, clockNow: time.Now}
}

// List returns each goal with its progress, clamped remaining amount and
// status as of now.
func (s *goalService) List(ctx context.Context, userID int64) ([]dto.GoalView, error) {
	goals, err := s.goals.ListGoals(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.clockNow()
	out := make([]dto.GoalView, 0, len(goals))
	for _, g := range goals {
		out = append(out, dto.GoalView{SavingsGoal: g, GoalStatus: analytics.EvaluateGoal(g, now)})
	}
	return out, nil
}

func (s *goalService) Create(ctx context.Context, userID int64, req dto.CreateGoalRequest) (models.SavingsGoal, error) {
	g := models.SavingsGoal{
		UserID:     userID,
		Name:       strings.TrimSpace(req.Name),
		TargetDate: req.TargetDate.Ptr(),
	}
	if req.TargetAmount != nil {
		g.TargetAmount = *req.TargetAmount
	}
	if req.CurrentAmount != nil {
		g.CurrentAmount = *req.CurrentAmount
	}
	if err := validateGoal(g); err != nil {
		return models.SavingsGoal{}, err
	}

	if err := s.goals.CreateGoal(ctx, &g); err != nil {
		return models.SavingsGoal{}, err
	}
	logger.FromContext(ctx).Info("savings goal created", "goal_id", g.ID)
	return g, nil
}

func (s *goalService) Update(ctx context.Context, userID, goalID int64, patch dto.GoalPatch) (models.SavingsGoal, error) {
	g, err := s.goals.GetGoal(ctx, userID, goalID)
	if err != nil {
		return models.SavingsGoal{}, err
	}
	patch.Apply(&g)
	if err := validateGoal(g); err != nil {
		return models.SavingsGoal{}, err
	}
	if err := s.goals.UpdateGoal(ctx, &g); err != nil {
		return models.SavingsGoal{}, err
	}
	return g, nil
}

func (s *goalService) Delete(ctx context.Context, userID, goalID int64) error {
	return s.goals.DeleteGoal(ctx, userID, goalID)
}

func validateGoal(g models.SavingsGoal) error {
	switch {
	case g.Name == "":
		return errs.NewValidationError("name is required")
	case !g.TargetAmount.IsPositive():
		return errs.NewValidationError("target_amount must be greater than zero")
	case g.CurrentAmount.IsNegative():
		return errs.NewValidationError("current_amount must not be negative")
	}
	return nil
}
