package dto

import (
	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/finance-dashboard/internal/analytics"
	"github.com/GregMSThompson/finance-dashboard/internal/models"
)

type AssistantRequest struct {
	UserID   *int64 `json:"userId,omitempty"`
	Question string `json:"question"`
}

type AssistantResponse struct {
	Answer string `json:"answer"`
}

type InsightRequest struct {
	UserID *int64 `json:"userId,omitempty"`
}

type InsightMetrics struct {
	Summary            analytics.Summary        `json:"summary"`
	SavingsRate        decimal.Decimal          `json:"savingsRate"`
	ExpensesByCategory *analytics.CategoryTotals `json:"expensesByCategory"`
	Goals              []analytics.GoalProgress `json:"goals"`
}

type InsightResponse struct {
	Insight string         `json:"insight"`
	Metrics InsightMetrics `json:"metrics"`
}

type InsightListResponse struct {
	Insights []models.FinancialInsight `json:"insights"`
}

type ForecastRequest struct {
	UserID *int64 `json:"userId,omitempty"`
	Months *int   `json:"months"`
}

type MonthlyForecast struct {
	Month    string          `json:"month"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Balance  decimal.Decimal `json:"balance"`
}

// Forecast is the projection returned by POST /forecasts. The text
// generator is asked to answer in exactly this shape.
type Forecast struct {
	MonthlyForecasts       []MonthlyForecast `json:"monthlyForecasts"`
	TotalProjectedIncome   decimal.Decimal   `json:"totalProjectedIncome"`
	TotalProjectedExpenses decimal.Decimal   `json:"totalProjectedExpenses"`
	FinalBalance           decimal.Decimal   `json:"finalBalance"`
	Recommendations        []string          `json:"recommendations"`
	Alerts                 []string          `json:"alerts"`
}
