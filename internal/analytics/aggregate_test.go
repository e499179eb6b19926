package analytics

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/finance-dashboard/internal/models"
	"github.com/GregMSThompson/finance-dashboard/pkg/helpers"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func tx(amount string, category *string, date time.Time) models.Transaction {
	typ := models.Credit
	if d(amount).Sign() < 0 {
		typ = models.Debit
	}
	return models.Transaction{Amount: d(amount), Type: typ, Category: category, Date: date}
}

var jan15 = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

func TestSummarizeScenario(t *testing.T) {
	accounts := []models.Account{{Balance: d("100")}}
	txs := []models.Transaction{
		tx("50", nil, jan15),
		tx("-30", nil, jan15),
	}

	s := Summarize(txs, accounts)

	if !s.TotalIncome.Equal(d("50")) || !s.TotalExpenses.Equal(d("30")) {
		t.Fatalf("totals mismatch: %+v", s)
	}
	if !s.NetIncome.Equal(d("20")) || !s.TotalBalance.Equal(d("100")) {
		t.Fatalf("net/balance mismatch: %+v", s)
	}
	if s.AccountsCount != 1 || s.TransactionsCount != 2 {
		t.Fatalf("counts mismatch: %+v", s)
	}
}

func TestSummarizeAcrossAllAccounts(t *testing.T) {
	accounts := []models.Account{{ID: 1, Balance: d("100")}, {ID: 2, Balance: d("250.50")}}

	s := Summarize(nil, accounts)

	if !s.TotalBalance.Equal(d("350.50")) {
		t.Fatalf("expected balance of every account, got %s", s.TotalBalance)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, nil)
	if !s.TotalIncome.IsZero() || !s.NetIncome.IsZero() || s.TransactionsCount != 0 {
		t.Fatalf("expected zero summary, got %+v", s)
	}
}

func TestSummaryIdentitiesHold(t *testing.T) {
	food := "Food"
	txs := []models.Transaction{
		tx("1200.10", helpers.Ptr("Salary"), jan15),
		tx("-45.35", &food, jan15),
		tx("-10.05", nil, jan15),
		tx("0", &food, jan15),
		tx("-300", helpers.Ptr("Rent"), jan15),
	}

	s := Summarize(txs, nil)
	c := ByCategory(txs)

	if !s.TotalIncome.Sub(s.TotalExpenses).Equal(s.NetIncome) {
		t.Fatalf("net income identity broken: %+v", s)
	}
	sum := decimal.Zero
	for _, k := range c.ExpensesByCategory.Keys() {
		sum = sum.Add(c.ExpensesByCategory.Get(k))
	}
	if !sum.Equal(s.TotalExpenses) {
		t.Fatalf("category sum %s != total expenses %s", sum, s.TotalExpenses)
	}
}

func TestByCategoryDefaultsAndExactMatch(t *testing.T) {
	txs := []models.Transaction{
		tx("-10", nil, jan15),
		tx("-5", helpers.Ptr("food"), jan15),
		tx("-7", helpers.Ptr("Food"), jan15),
		tx("20", nil, jan15),
	}

	c := ByCategory(txs)

	if got := c.ExpensesByCategory.Get(models.DefaultCategory); !got.Equal(d("10")) {
		t.Fatalf("default category mismatch: got %s", got)
	}
	if c.ExpensesByCategory.Len() != 3 {
		t.Fatalf("expected case-sensitive keys, got %v", c.ExpensesByCategory.Keys())
	}
	if got := c.IncomeByCategory.Get(models.DefaultCategory); !got.Equal(d("20")) {
		t.Fatalf("income default category mismatch: got %s", got)
	}
}

func TestCategoryTotalsKeepInsertionOrder(t *testing.T) {
	c := NewCategoryTotals()
	c.Add("Rent", d("100"))
	c.Add("Food", d("100"))
	c.Add("Fun", d("50"))

	top, val, ok := c.Top()
	if !ok || top != "Rent" || !val.Equal(d("100")) {
		t.Fatalf("tie should keep first category, got %s %s", top, val)
	}

	b, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"Rent":100,"Food":100,"Fun":50}` {
		t.Fatalf("json mismatch: %s", b)
	}
}

func TestMonthlyBuckets(t *testing.T) {
	feb := time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC)
	txs := []models.Transaction{
		tx("100", nil, feb),
		tx("-40", nil, jan15),
		tx("60", nil, jan15),
	}

	m := Monthly(txs)

	if len(m) != 2 || m[0].Month != "2024-01" || m[1].Month != "2024-02" {
		t.Fatalf("expected chronological buckets, got %+v", m)
	}
	jan, _ := m.Get("2024-01")
	if !jan.Income.Equal(d("60")) || !jan.Expenses.Equal(d("40")) || !jan.Balance.Equal(d("20")) {
		t.Fatalf("january bucket mismatch: %+v", jan)
	}

	b, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"2024-01":{"income":60,"expenses":40,"balance":20},"2024-02":{"income":100,"expenses":0,"balance":100}}`
	if string(b) != want {
		t.Fatalf("json mismatch: %s", b)
	}
}

func TestAggregationIsRepeatable(t *testing.T) {
	txs := []models.Transaction{
		tx("100", helpers.Ptr("Salary"), jan15),
		tx("-40", helpers.Ptr("Food"), jan15),
	}

	first, _ := json.Marshal([]any{Summarize(txs, nil), ByCategory(txs), Monthly(txs)})
	second, _ := json.Marshal([]any{Summarize(txs, nil), ByCategory(txs), Monthly(txs)})

	if string(first) != string(second) {
		t.Fatalf("expected identical output:\n%s\n%s", first, second)
	}
}
