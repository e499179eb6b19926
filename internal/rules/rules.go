// Package rules turns aggregated figures into user-facing alerts.
package rules

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/finance-dashboard/internal/analytics"
	"github.com/GregMSThompson/finance-dashboard/internal/format"
)

type AlertType string

const (
	AlertInfo    AlertType = "info"
	AlertWarning AlertType = "warning"
	AlertError   AlertType = "error"
)

const (
	TitleExpensesExceedIncome = "Expenses Exceed Income"
	TitleHighSpendCategory    = "High-Spend Category"
	TitleLowEmergencyReserve  = "Low Emergency Reserve"
	TitleBudgetExceeded       = "Budget Exceeded"
	TitleBudgetAlert          = "Budget Alert"
	TitleSpendingIncrease     = "Spending Increase"
	TitleIncomeDrop           = "Income Drop"
)

var (
	highSpendShare   = decimal.RequireFromString("0.4")
	reserveMonths    = decimal.NewFromInt(3)
	budgetAlertUsage = decimal.NewFromInt(80)
	fullUsage        = decimal.NewFromInt(100)
	trendSwing       = decimal.NewFromInt(20)
)

type Alert struct {
	Type        AlertType       `json:"type"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    string          `json:"category,omitempty"`
	BudgetID    int64           `json:"budgetId,omitempty"`
	Percentage  decimal.Decimal `json:"percentage,omitzero"`
}

type Input struct {
	Summary    analytics.Summary
	Categories analytics.Categories
	Budgets    []analytics.BudgetUsage
	// Trends is optional; swing alerts are skipped without it.
	Trends *analytics.TrendDelta
}

// Evaluate runs every rule in a fixed order and returns the alerts that
// fired, in that order.
func Evaluate(in Input, loc format.Locale) []Alert {
	out := []Alert{}
	s := in.Summary

	if s.TotalExpenses.GreaterThan(s.TotalIncome) {
		out = append(out, Alert{
			Type:  AlertWarning,
			Title: TitleExpensesExceedIncome,
			Description: fmt.Sprintf("Your expenses are %s higher than your income in this period.",
				loc.Money(s.TotalExpenses.Sub(s.TotalIncome))),
		})
	}

	if cat, value, ok := in.Categories.ExpensesByCategory.Top(); ok {
		if value.GreaterThan(s.TotalIncome.Mul(highSpendShare)) {
			share := analytics.Percent(value, s.TotalIncome)
			out = append(out, Alert{
				Type:  AlertInfo,
				Title: TitleHighSpendCategory,
				Description: fmt.Sprintf("%s accounts for %s of your income (%s).",
					cat, loc.Percent(share), loc.Money(value)),
				Category:   cat,
				Percentage: share,
			})
		}
	}

	if s.TotalBalance.LessThan(s.TotalExpenses.Mul(reserveMonths)) {
		out = append(out, Alert{
			Type:        AlertWarning,
			Title:       TitleLowEmergencyReserve,
			Description: "Your balance covers less than three months of expenses. Consider building an emergency reserve.",
		})
	}

	out = append(out, BudgetAlerts(in.Budgets, loc)...)

	if in.Trends != nil {
		if in.Trends.Expenses.GreaterThan(trendSwing) {
			out = append(out, Alert{
				Type:        AlertWarning,
				Title:       TitleSpendingIncrease,
				Description: fmt.Sprintf("Expenses grew %s compared with the previous period.", loc.Percent(in.Trends.Expenses)),
				Percentage:  in.Trends.Expenses,
			})
		}
		if in.Trends.Income.LessThan(trendSwing.Neg()) {
			out = append(out, Alert{
				Type:        AlertWarning,
				Title:       TitleIncomeDrop,
				Description: fmt.Sprintf("Income fell %s compared with the previous period.", loc.Percent(in.Trends.Income.Abs())),
				Percentage:  in.Trends.Income,
			})
		}
	}

	return out
}

// BudgetAlerts returns one alert per budget at or above 80% usage.
func BudgetAlerts(budgets []analytics.BudgetUsage, loc format.Locale) []Alert {
	out := []Alert{}
	for _, b := range budgets {
		if b.Usage.LessThan(budgetAlertUsage) {
			continue
		}
		a := Alert{
			Type:       AlertWarning,
			Title:      TitleBudgetAlert,
			Category:   b.Category,
			BudgetID:   b.ID,
			Percentage: b.Usage,
			Description: fmt.Sprintf("You have used %s of your %s budget (%s of %s).",
				loc.Percent(b.Usage), b.Category, loc.Money(b.Spent), loc.Money(b.Budgeted)),
		}
		if b.Usage.GreaterThanOrEqual(fullUsage) {
			a.Type = AlertError
			a.Title = TitleBudgetExceeded
		}
		out = append(out, a)
	}
	return out
}
