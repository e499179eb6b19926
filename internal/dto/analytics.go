package dto

import (
	"github.com/GregMSThompson/finance-dashboard/internal/analytics"
	"github.com/GregMSThompson/finance-dashboard/internal/rules"
)

type AnalyticsResponse struct {
	Period     string                   `json:"period"`
	Summary    analytics.Summary        `json:"summary"`
	Categories analytics.Categories     `json:"categories"`
	Monthly    analytics.MonthlySeries  `json:"monthly"`
	Goals      []analytics.GoalProgress `json:"goals"`
	Budgets    []analytics.BudgetUsage  `json:"budgets"`
	Trends     analytics.TrendDelta     `json:"trends"`
	Insights   []rules.Alert            `json:"insights"`
}
