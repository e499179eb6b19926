package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/finance-dashboard/internal/analytics"
	"github.com/GregMSThompson/finance-dashboard/internal/dto"
	"github.com/GregMSThompson/finance-dashboard/internal/errs"
	"github.com/GregMSThompson/finance-dashboard/internal/format"
	"github.com/GregMSThompson/finance-dashboard/internal/models"
	"github.com/GregMSThompson/finance-dashboard/pkg/helpers"
	"github.com/GregMSThompson/finance-dashboard/pkg/logger"
)

const (
	forecastHistory   = 100
	daysPerBucket     = 30
	maxForecastMonths = 36

	fallbackRecommendation = "Keep tracking your income and expenses to improve future forecasts."
)

// monthlyAverages is the history the forecast is built from.
type monthlyAverages struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
}

type forecastService struct {
	txs           transactionLister
	gen           textGenerator
	insights      insightStore
	defaultMonths int
	locale        format.Locale
	clockNow      func() time.Time
}

func NewForecastService(txs transactionLister, gen textGenerator, insights insightStore, defaultMonths int, locale format.Locale) *forecastService {
	return &forecastService{
		txs:           txs,
		gen:           gen,
		insights:      insights,
		defaultMonths: defaultMonths,
		locale:        locale,
		clockNow:      time.Now,
	}
}

// Forecast projects the user's income and expenses for the next months.
// The generator is called once; anything unusable in its answer is
// replaced by a forecast computed from the averages alone.
func (s *forecastService) Forecast(ctx context.Context, userID int64, months *int) (dto.Forecast, error) {
	log := logger.FromContext(ctx)

	n := helpers.ValueOr(months, s.defaultMonths)
	if n < 1 || n > maxForecastMonths {
		return dto.Forecast{}, errs.NewValidationError(fmt.Sprintf("months must be between 1 and %d", maxForecastMonths))
	}

	txs, err := s.txs.ListTransactions(ctx, dto.TransactionFilter{UserID: userID, Limit: forecastHistory})
	if err != nil {
		return dto.Forecast{}, err
	}
	avg := averages(txs)

	var forecast dto.Forecast
	resp, err := s.gen.Generate(ctx, dto.GenerateRequest{
		System:      forecastSystemPrompt,
		Prompt:      s.forecastPrompt(avg, n),
		Temperature: helpers.Ptr(float32(0.2)),
		JSON:        true,
	})
	if err == nil {
		forecast, err = parseForecast(resp.Text)
	}
	if err != nil {
		log.Warn("forecast generation failed, using computed forecast", "error", err)
		forecast = fallbackForecast(avg, n)
	}

	content, err := json.Marshal(forecast)
	if err != nil {
		return dto.Forecast{}, err
	}
	if err := s.insights.CreateInsight(ctx, &models.FinancialInsight{
		UserID:   userID,
		Title:    fmt.Sprintf("Forecast for the next %d months", n),
		Content:  string(content),
		Category: models.InsightCategoryForecast,
	}); err != nil {
		return dto.Forecast{}, err
	}

	log.Info("forecast generated", "months", n, "history", len(txs))
	return forecast, nil
}

// averages divides the history totals by one bucket per started 30
// transactions. This treats transaction count as a stand-in for elapsed
// months; an empty history averages to zero. Results stay unrounded so
// projections multiply the exact quotient.
func averages(txs []models.Transaction) monthlyAverages {
	totals := analytics.Totals(txs)
	buckets := (len(txs) + daysPerBucket - 1) / daysPerBucket
	if buckets < 1 {
		buckets = 1
	}
	div := decimal.NewFromInt(int64(buckets))
	return monthlyAverages{
		Income:   totals.Income.Div(div),
		Expenses: totals.Expenses.Div(div),
	}
}

// fallbackForecast is the computed forecast. It has no failure mode.
func fallbackForecast(avg monthlyAverages, months int) dto.Forecast {
	m := decimal.NewFromInt(int64(months))
	return dto.Forecast{
		MonthlyForecasts:       []dto.MonthlyForecast{},
		TotalProjectedIncome:   avg.Income.Mul(m).Round(2),
		TotalProjectedExpenses: avg.Expenses.Mul(m).Round(2),
		FinalBalance:           avg.Income.Sub(avg.Expenses).Mul(m).Round(2),
		Recommendations:        []string{fallbackRecommendation},
		Alerts:                 []string{},
	}
}

type forecastReply struct {
	MonthlyForecasts       []dto.MonthlyForecast `json:"monthlyForecasts"`
	TotalProjectedIncome   *decimal.Decimal      `json:"totalProjectedIncome"`
	TotalProjectedExpenses *decimal.Decimal      `json:"totalProjectedExpenses"`
	FinalBalance           *decimal.Decimal      `json:"finalBalance"`
	Recommendations        []string              `json:"recommendations"`
	Alerts                 []string              `json:"alerts"`
}

// parseForecast decodes a generated answer. Code fences are tolerated;
// a reply without the three totals is rejected.
func parseForecast(text string) (dto.Forecast, error) {
	var r forecastReply
	if err := json.Unmarshal([]byte(stripFences(text)), &r); err != nil {
		return dto.Forecast{}, fmt.Errorf("decode forecast: %w", err)
	}
	if r.TotalProjectedIncome == nil || r.TotalProjectedExpenses == nil || r.FinalBalance == nil {
		return dto.Forecast{}, fmt.Errorf("decode forecast: missing totals")
	}

	f := dto.Forecast{
		MonthlyForecasts:       r.MonthlyForecasts,
		TotalProjectedIncome:   *r.TotalProjectedIncome,
		TotalProjectedExpenses: *r.TotalProjectedExpenses,
		FinalBalance:           *r.FinalBalance,
		Recommendations:        r.Recommendations,
		Alerts:                 r.Alerts,
	}
	if f.MonthlyForecasts == nil {
		f.MonthlyForecasts = []dto.MonthlyForecast{}
	}
	if f.Recommendations == nil {
		f.Recommendations = []string{}
	}
	if f.Alerts == nil {
		f.Alerts = []string{}
	}
	return f, nil
}

const forecastSystemPrompt = "You are a personal finance analyst. Answer with a single JSON object and nothing else. " +
	"Use plain numbers for amounts, without currency symbols or thousands separators."

func (s *forecastService) forecastPrompt(avg monthlyAverages, months int) string {
	start := s.clockNow().AddDate(0, 1, 0).Format("2006-01")
	return fmt.Sprintf(
		"Average monthly income: %s (%s).\n"+
			"Average monthly expenses: %s (%s).\n"+
			"Forecast the next %d months starting at %s.\n"+
			"Respond with JSON shaped as:\n"+
			`{"monthlyForecasts":[{"month":"YYYY-MM","income":0,"expenses":0,"balance":0}],`+
			`"totalProjectedIncome":0,"totalProjectedExpenses":0,"finalBalance":0,`+
			`"recommendations":["..."],"alerts":["..."]}`,
		avg.Income.StringFixed(2), s.locale.Money(avg.Income),
		avg.Expenses.StringFixed(2), s.locale.Money(avg.Expenses),
		months, start,
	)
}
