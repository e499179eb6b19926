package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/finance-dashboard/internal/models"
)

type BudgetStatus string

const (
	BudgetGood     BudgetStatus = "good"
	BudgetWarning  BudgetStatus = "warning"
	BudgetExceeded BudgetStatus = "exceeded"
)

var (
	warningUsage = decimal.NewFromInt(80)
)

type BudgetUsage struct {
	ID        int64           `json:"id"`
	Category  string          `json:"category"`
	Budgeted  decimal.Decimal `json:"budgeted"`
	Spent     decimal.Decimal `json:"spent"`
	Remaining decimal.Decimal `json:"remaining"`
	Usage     decimal.Decimal `json:"usage"`
	Status    BudgetStatus    `json:"status"`
}

// BudgetAnalysis compares each budget with the expenses recorded under its
// exact category name.
func BudgetAnalysis(budgets []models.Budget, expensesByCategory *CategoryTotals) []BudgetUsage {
	out := make([]BudgetUsage, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, NewBudgetUsage(b, expensesByCategory.Get(b.Category)))
	}
	return out
}

// NewBudgetUsage builds the usage view of one budget given what was spent.
// Usage is not clamped so overspending stays visible.
func NewBudgetUsage(b models.Budget, spent decimal.Decimal) BudgetUsage {
	usage := Percent(spent, b.Amount)

	status := BudgetGood
	switch {
	case usage.GreaterThan(hundred):
		status = BudgetExceeded
	case usage.GreaterThan(warningUsage):
		status = BudgetWarning
	}

	return BudgetUsage{
		ID:        b.ID,
		Category:  b.Category,
		Budgeted:  b.Amount,
		Spent:     spent,
		Remaining: decimal.Max(decimal.Zero, b.Amount.Sub(spent)),
		Usage:     usage,
		Status:    status,
	}
}

// BudgetSpent sums the expenses of the budget's category inside its
// window, end date included in full. Open budgets run until now.
func BudgetSpent(b models.Budget, txs []models.Transaction, now time.Time) decimal.Decimal {
	spent := decimal.Zero
	for _, t := range txs {
		if t.Amount.Sign() >= 0 || t.CategoryOrDefault() != b.Category {
			continue
		}
		if !b.ActiveAt(t.Date) || (b.EndDate == nil && t.Date.After(now)) {
			continue
		}
		spent = spent.Add(t.Amount.Abs())
	}
	return spent
}
