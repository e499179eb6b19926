package analytics

import (
	"errors"
	"testing"
	"time"

	"github.com/GregMSThompson/finance-dashboard/internal/errs"
	"github.com/GregMSThompson/finance-dashboard/internal/models"
)

func TestPercentChangeZeroGuard(t *testing.T) {
	cases := []struct{ cur, prev, want string }{
		{"100", "0", "0"},
		{"100", "-50", "0"},
		{"0", "0", "0"},
		{"150", "100", "50"},
		{"50", "100", "-50"},
		{"1", "3", "-66.67"},
	}
	for _, tc := range cases {
		if got := PercentChange(d(tc.cur), d(tc.prev)); !got.Equal(d(tc.want)) {
			t.Fatalf("PercentChange(%s,%s)=%s want %s", tc.cur, tc.prev, got, tc.want)
		}
	}
}

func TestTrend(t *testing.T) {
	cur := PeriodTotals{Income: d("1200"), Expenses: d("900")}
	prev := PeriodTotals{Income: d("1000"), Expenses: d("0")}

	td := Trend(cur, prev)

	if !td.Income.Equal(d("20")) || !td.Expenses.IsZero() {
		t.Fatalf("trend mismatch: %+v", td)
	}
	if !td.BalanceDelta.Equal(d("-700")) {
		t.Fatalf("balance delta mismatch: got %s", td.BalanceDelta)
	}
}

func TestPeriodWindows(t *testing.T) {
	now := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)

	cur, prev, err := PeriodWindows(PeriodMonth, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cur.From.Equal(time.Date(2024, 4, 20, 12, 0, 0, 0, time.UTC)) || !cur.Contains(now) {
		t.Fatalf("current window mismatch: %+v", cur)
	}
	if !prev.From.Equal(time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)) || !prev.To.Equal(cur.From) {
		t.Fatalf("previous window mismatch: %+v", prev)
	}

	if _, _, err := PeriodWindows("decade", now); err == nil {
		t.Fatalf("expected error for unknown period")
	} else {
		var valErr *errs.ValidationError
		if !errors.As(err, &valErr) {
			t.Fatalf("expected ValidationError, got %T", err)
		}
	}
}

func TestTrendSeriesBucketCounts(t *testing.T) {
	now := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)
	cases := map[string]struct {
		count int
		first string
		last  string
	}{
		SeriesMonthly:   {12, "2023-06", "2024-05"},
		SeriesQuarterly: {8, "2022-Q3", "2024-Q2"},
		SeriesYearly:    {5, "2020", "2024"},
	}

	for granularity, want := range cases {
		points, err := TrendSeries(nil, granularity, now)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", granularity, err)
		}
		if len(points) != want.count {
			t.Fatalf("%s: expected %d buckets, got %d", granularity, want.count, len(points))
		}
		if points[0].DateLabel != want.first || points[len(points)-1].DateLabel != want.last {
			t.Fatalf("%s: labels mismatch: %s..%s", granularity, points[0].DateLabel, points[len(points)-1].DateLabel)
		}
		for _, p := range points {
			if !p.Income.IsZero() || !p.Trend.IsZero() {
				t.Fatalf("%s: empty bucket should be zero, got %+v", granularity, p)
			}
		}
	}
}

func TestTrendSeriesMonthlyTotals(t *testing.T) {
	now := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)
	txs := []models.Transaction{
		tx("1000", nil, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)),
		tx("-200", nil, time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)),
		tx("-100", nil, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)),
		tx("1500", nil, time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)),
		tx("-999", nil, time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)),
	}

	points, err := TrendSeries(txs, SeriesMonthly, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	apr, may := points[10], points[11]
	if apr.DateLabel != "2024-04" || !apr.Income.Equal(d("1000")) || !apr.Expenses.Equal(d("200")) {
		t.Fatalf("april mismatch: %+v", apr)
	}
	if !may.Expenses.Equal(d("100")) || !may.Income.Equal(d("1500")) || !may.Balance.Equal(d("1400")) {
		t.Fatalf("may mismatch: %+v", may)
	}
	// income went 1000 -> 1500 while expenses halved
	if !may.Trend.Equal(d("50")) {
		t.Fatalf("may trend mismatch: got %s", may.Trend)
	}
	if !apr.Trend.IsZero() {
		t.Fatalf("april trend should be zero after an empty month, got %s", apr.Trend)
	}
}

func TestTrendSeriesRejectsUnknownGranularity(t *testing.T) {
	if _, err := TrendSeries(nil, "weekly", time.Now()); err == nil {
		t.Fatalf("expected error for unknown granularity")
	}
}
