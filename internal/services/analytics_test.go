package services

import (
	"testing"
	"time"

	"github.com/GregMSThompson/finance-dashboard/internal/analytics"
	"github.com/GregMSThompson/finance-dashboard/internal/format"
	"github.com/GregMSThompson/finance-dashboard/internal/models"
	"github.com/GregMSThompson/finance-dashboard/internal/rules"
	"github.com/GregMSThompson/finance-dashboard/pkg/helpers"
)

var analyticsNow = time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)

func newTestAnalyticsService(l *fakeLedger, goals *stubGoals, budgets *stubBudgets) *analyticsService {
	svc := NewAnalyticsService(l, l, goals, budgets, format.Default)
	svc.clockNow = func() time.Time { return analyticsNow }
	return svc
}

func TestDashboardSplitsCurrentAndPreviousWindows(t *testing.T) {
	l := newFakeLedger(
		models.Account{ID: 1, UserID: 7, Balance: dec("1000")},
		models.Account{ID: 2, UserID: 7, Balance: dec("500")},
	)
	l.txs = []models.Transaction{
		{AccountID: 1, Amount: dec("2000"), Type: models.Credit, Date: analyticsNow.AddDate(0, 0, -5)},
		{AccountID: 2, Amount: dec("-900"), Type: models.Debit, Category: helpers.Ptr("Food"), Date: analyticsNow.AddDate(0, 0, -3)},
		{AccountID: 1, Amount: dec("2000"), Type: models.Credit, Date: analyticsNow.AddDate(0, -1, -5)},
		{AccountID: 1, Amount: dec("-600"), Type: models.Debit, Category: helpers.Ptr("Food"), Date: analyticsNow.AddDate(0, -1, -3)},
	}
	budgets := &stubBudgets{budgets: []models.Budget{{ID: 4, Category: "Food", Amount: dec("1000")}}}
	svc := newTestAnalyticsService(l, &stubGoals{goals: []models.SavingsGoal{{ID: 3, Name: "Trip", TargetAmount: dec("1000"), CurrentAmount: dec("250")}}}, budgets)

	resp, err := svc.Dashboard(helpers.TestCtx(), 7, "")
	if err != nil {
		t.Fatalf("Dashboard returned error: %v", err)
	}

	if resp.Period != analytics.PeriodMonth {
		t.Fatalf("period mismatch: got %s", resp.Period)
	}
	s := resp.Summary
	if !s.TotalIncome.Equal(dec("2000")) || !s.TotalExpenses.Equal(dec("900")) || !s.TotalBalance.Equal(dec("1500")) {
		t.Fatalf("summary mismatch: %+v", s)
	}
	if s.AccountsCount != 2 || s.TransactionsCount != 2 {
		t.Fatalf("counts mismatch: %+v", s)
	}
	if !resp.Trends.Expenses.Equal(dec("50")) || !resp.Trends.Income.IsZero() {
		t.Fatalf("trend mismatch: %+v", resp.Trends)
	}
	if len(resp.Budgets) != 1 || resp.Budgets[0].Status != analytics.BudgetWarning || !resp.Budgets[0].Usage.Equal(dec("90")) {
		t.Fatalf("budget usage mismatch: %+v", resp.Budgets)
	}
	if len(resp.Monthly) != 2 {
		t.Fatalf("monthly should cover both windows, got %d buckets", len(resp.Monthly))
	}
	if budgets.filter.From == nil || budgets.filter.To == nil {
		t.Fatalf("budgets not filtered by the current window: %+v", budgets.filter)
	}

	titles := map[string]bool{}
	for _, a := range resp.Insights {
		titles[a.Title] = true
	}
	for _, want := range []string{rules.TitleHighSpendCategory, rules.TitleBudgetAlert, rules.TitleSpendingIncrease} {
		if !titles[want] {
			t.Fatalf("expected %q alert, got %+v", want, resp.Insights)
		}
	}
}

func TestDashboardRejectsUnknownPeriod(t *testing.T) {
	svc := newTestAnalyticsService(newFakeLedger(), &stubGoals{}, &stubBudgets{})
	if _, err := svc.Dashboard(helpers.TestCtx(), 7, "decade"); err == nil {
		t.Fatalf("expected error for unknown period")
	}
}

func TestTrendsDefaultsToMonthly(t *testing.T) {
	l := newFakeLedger(models.Account{ID: 1, UserID: 7})
	l.txs = []models.Transaction{
		{AccountID: 1, Amount: dec("-100"), Type: models.Debit, Date: time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)},
		{AccountID: 1, Amount: dec("-150"), Type: models.Debit, Date: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{AccountID: 1, Amount: dec("200"), Type: models.Credit, Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		{AccountID: 1, Amount: dec("300"), Type: models.Credit, Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
	}
	svc := newTestAnalyticsService(l, &stubGoals{}, &stubBudgets{})

	points, err := svc.Trends(helpers.TestCtx(), 7, "")
	if err != nil {
		t.Fatalf("Trends returned error: %v", err)
	}
	if len(points) != 12 {
		t.Fatalf("expected 12 monthly buckets, got %d", len(points))
	}
	last := points[11]
	if last.DateLabel != "2024-03" || !last.Expenses.Equal(dec("150")) || !last.Income.Equal(dec("300")) || !last.Trend.Equal(dec("50")) {
		t.Fatalf("last bucket mismatch: %+v", last)
	}
}
