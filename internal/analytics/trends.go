package analytics

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/finance-dashboard/internal/errs"
	"github.com/GregMSThompson/finance-dashboard/internal/models"
)

const (
	PeriodWeek    = "week"
	PeriodMonth   = "month"
	PeriodQuarter = "quarter"
	PeriodYear    = "year"

	SeriesMonthly   = "monthly"
	SeriesQuarterly = "quarterly"
	SeriesYearly    = "yearly"
)

type PeriodTotals struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

func (p PeriodTotals) Balance() decimal.Decimal {
	return p.Income.Sub(p.Expenses)
}

type TrendDelta struct {
	Income       decimal.Decimal `json:"income"`
	Expenses     decimal.Decimal `json:"expenses"`
	BalanceDelta decimal.Decimal `json:"balance"`
}

type TrendPoint struct {
	DateLabel string          `json:"date"`
	Income    decimal.Decimal `json:"income"`
	Expenses  decimal.Decimal `json:"expenses"`
	Balance   decimal.Decimal `json:"balance"`
	Trend     decimal.Decimal `json:"trend"`
}

// Window is a half-open time range [From, To).
type Window struct {
	From time.Time
	To   time.Time
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.From) && t.Before(w.To)
}

func Totals(txs []models.Transaction) PeriodTotals {
	var p PeriodTotals
	for _, t := range txs {
		switch t.Amount.Sign() {
		case 1:
			p.Income = p.Income.Add(t.Amount)
		case -1:
			p.Expenses = p.Expenses.Add(t.Amount.Abs())
		}
	}
	return p
}

// PercentChange returns round2((current-previous)/previous*100). A
// previous value of zero or less yields 0 instead of dividing.
func PercentChange(current, previous decimal.Decimal) decimal.Decimal {
	if previous.Sign() <= 0 {
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous).Mul(hundred).Round(2)
}

func Trend(current, previous PeriodTotals) TrendDelta {
	return TrendDelta{
		Income:       PercentChange(current.Income, previous.Income),
		Expenses:     PercentChange(current.Expenses, previous.Expenses),
		BalanceDelta: current.Balance().Sub(previous.Balance()),
	}
}

// PeriodWindows returns the window of the current period ending at now and
// the window of equal length right before it.
func PeriodWindows(period string, now time.Time) (current, previous Window, err error) {
	var back func(time.Time) time.Time
	switch period {
	case PeriodWeek:
		back = func(t time.Time) time.Time { return t.AddDate(0, 0, -7) }
	case PeriodMonth:
		back = func(t time.Time) time.Time { return t.AddDate(0, -1, 0) }
	case PeriodQuarter:
		back = func(t time.Time) time.Time { return t.AddDate(0, -3, 0) }
	case PeriodYear:
		back = func(t time.Time) time.Time { return t.AddDate(-1, 0, 0) }
	default:
		return Window{}, Window{}, errs.NewValidationError(fmt.Sprintf("unsupported period: %s", period))
	}

	// now is included in the current window
	end := now.Add(time.Nanosecond)
	curFrom := back(now)
	current = Window{From: curFrom, To: end}
	previous = Window{From: back(curFrom), To: curFrom}
	return current, previous, nil
}

// SeriesBuckets returns the trailing calendar buckets for a granularity:
// 12 months, 8 quarters or 5 years, the last one containing now.
func SeriesBuckets(granularity string, now time.Time) ([]Window, error) {
	var (
		count int
		first time.Time
		step  func(time.Time) time.Time
	)
	switch granularity {
	case SeriesMonthly:
		count = 12
		step = func(t time.Time) time.Time { return t.AddDate(0, 1, 0) }
		first = monthStart(now).AddDate(0, -(count - 1), 0)
	case SeriesQuarterly:
		count = 8
		step = func(t time.Time) time.Time { return t.AddDate(0, 3, 0) }
		first = firstOfQuarter(now).AddDate(0, -3*(count-1), 0)
	case SeriesYearly:
		count = 5
		step = func(t time.Time) time.Time { return t.AddDate(1, 0, 0) }
		first = time.Date(now.Year()-(count-1), 1, 1, 0, 0, 0, 0, now.Location())
	default:
		return nil, errs.NewValidationError(fmt.Sprintf("unsupported trend period: %s", granularity))
	}

	out := make([]Window, 0, count)
	from := first
	for i := 0; i < count; i++ {
		to := step(from)
		out = append(out, Window{From: from, To: to})
		from = to
	}
	return out, nil
}

// TrendSeries buckets transactions into the trailing calendar windows for
// granularity. Empty buckets are kept. Each point's trend is the percent
// change of income against the bucket before it; the first point has 0.
func TrendSeries(txs []models.Transaction, granularity string, now time.Time) ([]TrendPoint, error) {
	buckets, err := SeriesBuckets(granularity, now)
	if err != nil {
		return nil, err
	}

	totals := make([]PeriodTotals, len(buckets))
	for _, t := range txs {
		for i, w := range buckets {
			if !w.Contains(t.Date) {
				continue
			}
			switch t.Amount.Sign() {
			case 1:
				totals[i].Income = totals[i].Income.Add(t.Amount)
			case -1:
				totals[i].Expenses = totals[i].Expenses.Add(t.Amount.Abs())
			}
			break
		}
	}

	out := make([]TrendPoint, len(buckets))
	for i, w := range buckets {
		p := TrendPoint{
			DateLabel: bucketLabel(granularity, w.From),
			Income:    totals[i].Income,
			Expenses:  totals[i].Expenses,
			Balance:   totals[i].Balance(),
		}
		if i > 0 {
			p.Trend = PercentChange(totals[i].Income, totals[i-1].Income)
		}
		out[i] = p
	}
	return out, nil
}

func bucketLabel(granularity string, from time.Time) string {
	switch granularity {
	case SeriesQuarterly:
		return fmt.Sprintf("%d-Q%d", from.Year(), (int(from.Month())-1)/3+1)
	case SeriesYearly:
		return fmt.Sprintf("%d", from.Year())
	default:
		return from.Format(monthKeyLayout)
	}
}

func firstOfQuarter(t time.Time) time.Time {
	m := int(t.Month())
	qStart := ((m-1)/3)*3 + 1
	return time.Date(t.Year(), time.Month(qStart), 1, 0, 0, 0, 0, t.Location())
}
