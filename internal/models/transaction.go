package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	Credit TransactionType = "credit"
	Debit  TransactionType = "debit"
)

func (t TransactionType) Valid() bool {
	return t == Credit || t == Debit
}

// Transaction is immutable once stored. Amount is signed: positive for
// income, negative for expenses.
type Transaction struct {
	ID          int64           `json:"id"`
	AccountID   int64           `json:"account_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
	Category    *string         `json:"category"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CategoryOrDefault returns the category, or DefaultCategory when unset.
func (t Transaction) CategoryOrDefault() string {
	if t.Category == nil || *t.Category == "" {
		return DefaultCategory
	}
	return *t.Category
}

// SignedAmount normalizes amount so credits increase and debits decrease
// the account balance.
func SignedAmount(t TransactionType, amount decimal.Decimal) decimal.Decimal {
	if t == Debit {
		return amount.Abs().Neg()
	}
	return amount.Abs()
}
