package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type BudgetPeriod string

const (
	BudgetMonthly   BudgetPeriod = "monthly"
	BudgetQuarterly BudgetPeriod = "quarterly"
	BudgetAnnual    BudgetPeriod = "annual"
)

func (p BudgetPeriod) Valid() bool {
	switch p {
	case BudgetMonthly, BudgetQuarterly, BudgetAnnual:
		return true
	}
	return false
}

// Budget caps spending in one category between StartDate and EndDate.
// A nil EndDate leaves the budget open.
type Budget struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	Period    BudgetPeriod    `json:"period"`
	StartDate time.Time       `json:"start_date"`
	EndDate   *time.Time      `json:"end_date"`
	CreatedAt time.Time       `json:"created_at"`
}

// ActiveAt reports whether t falls inside the budget window. The end date
// counts as a whole calendar day.
func (b Budget) ActiveAt(t time.Time) bool {
	if t.Before(b.StartDate) {
		return false
	}
	return b.EndDate == nil || t.Before(DayAfter(*b.EndDate))
}

// DayAfter returns UTC midnight of the calendar day following t.
func DayAfter(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, time.UTC)
}
