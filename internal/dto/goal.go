package dto

import (
	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/finance-dashboard/internal/analytics"
	"github.com/GregMSThompson/finance-dashboard/internal/models"
)

type CreateGoalRequest struct {
	UserID        *int64           `json:"userId,omitempty"`
	Name          string           `json:"name"`
	TargetAmount  *decimal.Decimal `json:"target_amount"`
	CurrentAmount *decimal.Decimal `json:"current_amount"`
	TargetDate    *Date            `json:"target_date"`
}

type GoalPatch struct {
	Name            *string          `json:"name"`
	TargetAmount    *decimal.Decimal `json:"target_amount"`
	CurrentAmount   *decimal.Decimal `json:"current_amount"`
	TargetDate      *Date            `json:"target_date"`
	ClearTargetDate bool             `json:"clear_target_date"`
}

func (p GoalPatch) Apply(g *models.SavingsGoal) {
	if p.Name != nil {
		g.Name = *p.Name
	}
	if p.TargetAmount != nil {
		g.TargetAmount = *p.TargetAmount
	}
	if p.CurrentAmount != nil {
		g.CurrentAmount = *p.CurrentAmount
	}
	switch {
	case p.ClearTargetDate:
		g.TargetDate = nil
	case p.TargetDate != nil:
		g.TargetDate = p.TargetDate.Ptr()
	}
}

// GoalView is a goal with its derived progress, remaining and status.
type GoalView struct {
	models.SavingsGoal
	analytics.GoalStatus
}

type GoalListResponse struct {
	Goals []GoalView `json:"goals"`
}
