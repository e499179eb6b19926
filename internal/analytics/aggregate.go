// Package analytics folds accounts, transactions, budgets and goals into
// dashboard figures. Everything here is pure: callers fetch the records
// and pass the clock in.
package analytics

import (
	"bytes"
	"encoding/json"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/finance-dashboard/internal/models"
)

const monthKeyLayout = "2006-01"

var hundred = decimal.NewFromInt(100)

type Summary struct {
	TotalBalance      decimal.Decimal `json:"totalBalance"`
	TotalIncome       decimal.Decimal `json:"totalIncome"`
	TotalExpenses     decimal.Decimal `json:"totalExpenses"`
	NetIncome         decimal.Decimal `json:"netIncome"`
	AccountsCount     int             `json:"accountsCount"`
	TransactionsCount int             `json:"transactionsCount"`
}

type Categories struct {
	ExpensesByCategory *CategoryTotals `json:"expensesByCategory"`
	IncomeByCategory   *CategoryTotals `json:"incomeByCategory"`
}

type MonthBucket struct {
	Month    string          `json:"-"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Balance  decimal.Decimal `json:"balance"`
}

// MonthlySeries is ordered chronologically and encodes as an object keyed
// by "YYYY-MM".
type MonthlySeries []MonthBucket

func (m MonthlySeries) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, b := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(b.Month)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(b)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Get returns the bucket for a "YYYY-MM" key.
func (m MonthlySeries) Get(month string) (MonthBucket, bool) {
	for _, b := range m {
		if b.Month == month {
			return b, true
		}
	}
	return MonthBucket{}, false
}

// Summarize totals balances across every account and splits transaction
// amounts into income (positive) and expenses (negative, reported as a
// magnitude). Zero amounts count toward neither.
func Summarize(txs []models.Transaction, accounts []models.Account) Summary {
	var s Summary
	for _, a := range accounts {
		s.TotalBalance = s.TotalBalance.Add(a.Balance)
	}
	for _, t := range txs {
		switch t.Amount.Sign() {
		case 1:
			s.TotalIncome = s.TotalIncome.Add(t.Amount)
		case -1:
			s.TotalExpenses = s.TotalExpenses.Add(t.Amount.Abs())
		}
	}
	s.NetIncome = s.TotalIncome.Sub(s.TotalExpenses)
	s.AccountsCount = len(accounts)
	s.TransactionsCount = len(txs)
	return s
}

func ByCategory(txs []models.Transaction) Categories {
	c := Categories{
		ExpensesByCategory: NewCategoryTotals(),
		IncomeByCategory:   NewCategoryTotals(),
	}
	for _, t := range txs {
		switch t.Amount.Sign() {
		case 1:
			c.IncomeByCategory.Add(t.CategoryOrDefault(), t.Amount)
		case -1:
			c.ExpensesByCategory.Add(t.CategoryOrDefault(), t.Amount.Abs())
		}
	}
	return c
}

func Monthly(txs []models.Transaction) MonthlySeries {
	buckets := make(map[string]*MonthBucket)
	for _, t := range txs {
		key := t.Date.Format(monthKeyLayout)
		b, ok := buckets[key]
		if !ok {
			b = &MonthBucket{Month: key}
			buckets[key] = b
		}
		switch t.Amount.Sign() {
		case 1:
			b.Income = b.Income.Add(t.Amount)
		case -1:
			b.Expenses = b.Expenses.Add(t.Amount.Abs())
		}
	}

	out := make(MonthlySeries, 0, len(buckets))
	for _, b := range buckets {
		b.Balance = b.Income.Sub(b.Expenses)
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// Percent returns round2(part/whole*100), or 0 when whole is not positive.
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if whole.Sign() <= 0 {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(2)
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
