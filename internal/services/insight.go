package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/GregMSThompson/finance-dashboard/internal/analytics"
	"github.com/GregMSThompson/finance-dashboard/internal/dto"
	"github.com/GregMSThompson/finance-dashboard/internal/errs"
	"github.com/GregMSThompson/finance-dashboard/internal/format"
	"github.com/GregMSThompson/finance-dashboard/internal/models"
	"github.com/GregMSThompson/finance-dashboard/internal/rules"
	"github.com/GregMSThompson/finance-dashboard/pkg/logger"
)

const (
	defaultInsightLimit = 20
	maxInsightLimit     = 100

	insightTitle    = "Monthly financial insight"
	noAlertsInsight = "Your finances look balanced this month. Keep it up."
)

type insightService struct {
	accounts accountLister
	txs      transactionLister
	goals    goalLister
	gen      textGenerator
	insights insightStore
	locale   format.Locale
	clockNow func() time.Time
}

func NewInsightService(accounts accountLister, txs transactionLister, goals goalLister, gen textGenerator, insights insightStore, locale format.Locale) *insightService {
	return &insightService{
		accounts: accounts,
		txs:      txs,
		goals:    goals,
		gen:      gen,
		insights: insights,
		locale:   locale,
		clockNow: time.Now,
	}
}

// Generate computes the user's metrics for the last month and asks the
// generator to comment on them. Without a usable answer the insight is
// the text of the rule alerts.
func (s *insightService) Generate(ctx context.Context, userID int64) (dto.InsightResponse, error) {
	current, _, err := analytics.PeriodWindows(analytics.PeriodMonth, s.clockNow())
	if err != nil {
		return dto.InsightResponse{}, err
	}

	accounts, err := s.accounts.ListAccounts(ctx, userID)
	if err != nil {
		return dto.InsightResponse{}, err
	}
	txs, err := s.txs.ListTransactions(ctx, dto.TransactionFilter{UserID: userID, From: &current.From, To: &current.To})
	if err != nil {
		return dto.InsightResponse{}, err
	}
	goals, err := s.goals.ListGoals(ctx, userID)
	if err != nil {
		return dto.InsightResponse{}, err
	}

	summary := analytics.Summarize(txs, accounts)
	categories := analytics.ByCategory(txs)
	metrics := dto.InsightMetrics{
		Summary:            summary,
		SavingsRate:        analytics.Percent(summary.NetIncome, summary.TotalIncome),
		ExpensesByCategory: categories.ExpensesByCategory,
		Goals:              analytics.GoalsAnalysis(goals),
	}

	text, err := s.generateText(ctx, metrics)
	if err != nil {
		logger.FromContext(ctx).Warn("insight generation failed, using rule alerts", "error", err)
		text = ruleText(rules.Evaluate(rules.Input{Summary: summary, Categories: categories}, s.locale))
	}

	if err := s.insights.CreateInsight(ctx, &models.FinancialInsight{
		UserID:   userID,
		Title:    insightTitle,
		Content:  text,
		Category: models.InsightCategoryGeneral,
	}); err != nil {
		return dto.InsightResponse{}, err
	}

	return dto.InsightResponse{Insight: text, Metrics: metrics}, nil
}

// List returns the newest insights, optionally of one category.
func (s *insightService) List(ctx context.Context, userID int64, category string, limit int) ([]models.FinancialInsight, error) {
	switch {
	case limit == 0:
		limit = defaultInsightLimit
	case limit < 0 || limit > maxInsightLimit:
		return nil, errs.NewValidationError(fmt.Sprintf("limit must be between 1 and %d", maxInsightLimit))
	}
	return s.insights.ListInsights(ctx, userID, category, limit)
}

func (s *insightService) generateText(ctx context.Context, m dto.InsightMetrics) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Income this month: %s\n", s.locale.Money(m.Summary.TotalIncome))
	fmt.Fprintf(&b, "Expenses this month: %s\n", s.locale.Money(m.Summary.TotalExpenses))
	fmt.Fprintf(&b, "Total balance: %s\n", s.locale.Money(m.Summary.TotalBalance))
	fmt.Fprintf(&b, "Savings rate: %s\n", s.locale.Percent(m.SavingsRate))
	b.WriteString("Expenses by category:\n")
	for _, k := range m.ExpensesByCategory.Keys() {
		fmt.Fprintf(&b, "- %s: %s\n", k, s.locale.Money(m.ExpensesByCategory.Get(k)))
	}
	b.WriteString("Savings goals:\n")
	for _, g := range m.Goals {
		fmt.Fprintf(&b, "- %s: %s\n", g.Name, s.locale.Percent(g.Progress))
	}
	b.WriteString("Write two or three short, practical observations about these numbers.")

	resp, err := s.gen.Generate(ctx, dto.GenerateRequest{
		System: "You are a personal finance coach. Be concise and specific.",
		Prompt: b.String(),
	})
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", errs.NewExternalServiceError("generator", "empty insight", false, nil)
	}
	return text, nil
}

func ruleText(alerts []rules.Alert) string {
	if len(alerts) == 0 {
		return noAlertsInsight
	}
	lines := make([]string, 0, len(alerts))
	for _, a := range alerts {
		lines = append(lines, a.Title+": "+a.Description)
	}
	return strings.Join(lines, "\n")
}
