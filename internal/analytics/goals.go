package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/finance-dashboard/internal/models"
)

type GoalStatusValue string

const (
	GoalCompleted GoalStatusValue = "completed"
	GoalOverdue   GoalStatusValue = "overdue"
	GoalActive    GoalStatusValue = "active"
)

type GoalProgress struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Current   decimal.Decimal `json:"current"`
	Target    decimal.Decimal `json:"target"`
	Progress  decimal.Decimal `json:"progress"`
	Remaining decimal.Decimal `json:"remaining"`
}

type GoalStatus struct {
	Progress  decimal.Decimal `json:"progress"`
	Remaining decimal.Decimal `json:"remaining"`
	Status    GoalStatusValue `json:"status"`
}

// GoalsAnalysis reports progress per goal. Remaining is target minus
// current and goes negative once a goal is overfunded.
func GoalsAnalysis(goals []models.SavingsGoal) []GoalProgress {
	out := make([]GoalProgress, 0, len(goals))
	for _, g := range goals {
		out = append(out, GoalProgress{
			ID:        g.ID,
			Name:      g.Name,
			Current:   g.CurrentAmount,
			Target:    g.TargetAmount,
			Progress:  Percent(g.CurrentAmount, g.TargetAmount),
			Remaining: g.TargetAmount.Sub(g.CurrentAmount),
		})
	}
	return out
}

// EvaluateGoal derives the status view of a goal. Completion wins over a
// passed target date.
func EvaluateGoal(g models.SavingsGoal, now time.Time) GoalStatus {
	progress := Percent(g.CurrentAmount, g.TargetAmount)
	remaining := decimal.Max(decimal.Zero, g.TargetAmount.Sub(g.CurrentAmount))

	status := GoalActive
	switch {
	case progress.GreaterThanOrEqual(hundred):
		status = GoalCompleted
	case g.TargetDate != nil && g.TargetDate.Before(now):
		status = GoalOverdue
	}

	return GoalStatus{Progress: progress, Remaining: remaining, Status: status}
}
