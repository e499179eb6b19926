package services

import (
	"strings"
	"testing"
	"time"

	"github.com/GregMSThompson/finance-dashboard/internal/errs"
	"github.com/GregMSThompson/finance-dashboard/internal/format"
	"github.com/GregMSThompson/finance-dashboard/internal/models"
	"github.com/GregMSThompson/finance-dashboard/internal/rules"
	"github.com/GregMSThompson/finance-dashboard/pkg/helpers"
)

var insightNow = time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)

func insightLedger() *fakeLedger {
	l := newFakeLedger(models.Account{ID: 1, UserID: 7, Balance: dec("100")})
	l.txs = []models.Transaction{
		{AccountID: 1, Amount: dec("1000"), Type: models.Credit, Date: insightNow.AddDate(0, 0, -2)},
		{AccountID: 1, Amount: dec("-1500"), Type: models.Debit, Category: helpers.Ptr("Rent"), Date: insightNow.AddDate(0, 0, -1)},
	}
	return l
}

func newTestInsightService(gen textGenerator, insights *fakeInsights) *insightService {
	l := insightLedger()
	svc := NewInsightService(l, l, &stubGoals{}, gen, insights, format.Default)
	svc.clockNow = func() time.Time { return insightNow }
	return svc
}

func TestInsightGenerateUsesGeneratorText(t *testing.T) {
	insights := &fakeInsights{}
	svc := newTestInsightService(&fakeGenerator{text: "Rent is eating your income."}, insights)

	resp, err := svc.Generate(helpers.TestCtx(), 7)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	if resp.Insight != "Rent is eating your income." {
		t.Fatalf("insight mismatch: %q", resp.Insight)
	}
	if !resp.Metrics.SavingsRate.Equal(dec("-50")) {
		t.Fatalf("savings rate mismatch: got %s", resp.Metrics.SavingsRate)
	}
	if !resp.Metrics.ExpensesByCategory.Get("Rent").Equal(dec("1500")) {
		t.Fatalf("category metrics mismatch")
	}
	if len(insights.saved) != 1 || insights.saved[0].Category != models.InsightCategoryGeneral {
		t.Fatalf("general insight not persisted: %+v", insights.saved)
	}
}

func TestInsightGenerateFallsBackToRuleText(t *testing.T) {
	insights := &fakeInsights{}
	svc := newTestInsightService(&fakeGenerator{err: errUpstream}, insights)

	resp, err := svc.Generate(helpers.TestCtx(), 7)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	for _, want := range []string{rules.TitleExpensesExceedIncome, rules.TitleLowEmergencyReserve} {
		if !strings.Contains(resp.Insight, want) {
			t.Fatalf("fallback text missing %q: %s", want, resp.Insight)
		}
	}
	if insights.saved[0].Content != resp.Insight {
		t.Fatalf("persisted content differs from response")
	}
}

func TestRuleTextWithoutAlerts(t *testing.T) {
	if got := ruleText(nil); got != noAlertsInsight {
		t.Fatalf("ruleText mismatch: %q", got)
	}
}

func TestInsightListLimits(t *testing.T) {
	insights := &fakeInsights{}
	for i := 0; i < 30; i++ {
		insights.saved = append(insights.saved, models.FinancialInsight{Category: models.InsightCategoryForecast})
	}
	svc := newTestInsightService(&fakeGenerator{}, insights)

	got, err := svc.List(helpers.TestCtx(), 7, "", 0)
	if err != nil || len(got) != defaultInsightLimit {
		t.Fatalf("default limit mismatch: %d %v", len(got), err)
	}
	if _, err := svc.List(helpers.TestCtx(), 7, "", 500); err == nil {
		t.Fatalf("expected error above max limit")
	} else if _, ok := err.(*errs.ValidationError); !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
