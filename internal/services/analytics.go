package services

import (
	"context"
	"time"

	"github.com/GregMSThompson/finance-dashboard/internal/analytics"
	"github.com/GregMSThompson/finance-dashboard/internal/dto"
	"github.com/GregMSThompson/finance-dashboard/internal/format"
	"github.com/GregMSThompson/finance-dashboard/internal/models"
	"github.com/GregMSThompson/finance-dashboard/internal/rules"
)

type accountLister interface {
	ListAccounts(ctx context.Context, userID int64) ([]models.Account, error)
}

type transactionLister interface {
	ListTransactions(ctx context.Context, f dto.TransactionFilter) ([]models.Transaction, error)
}

type goalLister interface {
	ListGoals(ctx context.Context, userID int64) ([]models.SavingsGoal, error)
}

type budgetLister interface {
	ListBudgets(ctx context.Context, userID int64, f dto.BudgetFilter) ([]models.Budget, error)
}

type analyticsService struct {
	accounts accountLister
	txs      transactionLister
	goals    goalLister
	budgets  budgetLister
	locale   format.Locale
	clockNow func() time.Time
}

func NewAnalyticsService(accounts accountLister, txs transactionLister, goals goalLister, budgets budgetLister, locale format.Locale) *analyticsService {
	return &analyticsService{
		accounts: accounts,
		txs:      txs,
		goals:    goals,
		budgets:  budgets,
		locale:   locale,
		clockNow: time.Now,
	}
}

// Dashboard assembles the analytics view for period. Summary, categories,
// budgets and alerts cover the current window; trends compare it with the
// window before; the monthly series covers both.
func (s *analyticsService) Dashboard(ctx context.Context, userID int64, period string) (dto.AnalyticsResponse, error) {
	if period == "" {
		period = analytics.PeriodMonth
	}
	current, previous, err := analytics.PeriodWindows(period, s.clockNow())
	if err != nil {
		return dto.AnalyticsResponse{}, err
	}

	accounts, err := s.accounts.ListAccounts(ctx, userID)
	if err != nil {
		return dto.AnalyticsResponse{}, err
	}
	txs, err := s.txs.ListTransactions(ctx, dto.TransactionFilter{
		UserID: userID,
		From:   &previous.From,
		To:     &current.To,
	})
	if err != nil {
		return dto.AnalyticsResponse{}, err
	}
	goals, err := s.goals.ListGoals(ctx, userID)
	if err != nil {
		return dto.AnalyticsResponse{}, err
	}
	budgets, err := s.budgets.ListBudgets(ctx, userID, dto.BudgetFilter{From: &current.From, To: &current.To})
	if err != nil {
		return dto.AnalyticsResponse{}, err
	}

	var cur, prev []models.Transaction
	for _, t := range txs {
		switch {
		case current.Contains(t.Date):
			cur = append(cur, t)
		case previous.Contains(t.Date):
			prev = append(prev, t)
		}
	}

	summary := analytics.Summarize(cur, accounts)
	categories := analytics.ByCategory(cur)
	usage := analytics.BudgetAnalysis(budgets, categories.ExpensesByCategory)
	trend := analytics.Trend(analytics.Totals(cur), analytics.Totals(prev))

	return dto.AnalyticsResponse{
		Period:     period,
		Summary:    summary,
		Categories: categories,
		Monthly:    analytics.Monthly(txs),
		Goals:      analytics.GoalsAnalysis(goals),
		Budgets:    usage,
		Trends:     trend,
		Insights: rules.Evaluate(rules.Input{
			Summary:    summary,
			Categories: categories,
			Budgets:    usage,
			Trends:     &trend,
		}, s.locale),
	}, nil
}

// Trends returns the trailing series for granularity (monthly when empty).
func (s *analyticsService) Trends(ctx context.Context, userID int64, granularity string) ([]analytics.TrendPoint, error) {
	if granularity == "" {
		granularity = analytics.SeriesMonthly
	}
	now := s.clockNow()
	buckets, err := analytics.SeriesBuckets(granularity, now)
	if err != nil {
		return nil, err
	}

	from := buckets[0].From
	txs, err := s.txs.ListTransactions(ctx, dto.TransactionFilter{UserID: userID, From: &from})
	if err != nil {
		return nil, err
	}
	return analytics.TrendSeries(txs, granularity, now)
}
