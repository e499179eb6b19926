package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	InvoicePending InvoiceStatus = "pending"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceOverdue InvoiceStatus = "overdue"
)

func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoicePending, InvoicePaid, InvoiceOverdue:
		return true
	}
	return false
}

// Invoice status is set by the user; payments never change it.
type Invoice struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	Client    string          `json:"client"`
	Amount    decimal.Decimal `json:"amount"`
	IssueDate time.Time       `json:"issue_date"`
	DueDate   time.Time       `json:"due_date"`
	Status    InvoiceStatus   `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

type Payment struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	InvoiceID   *int64          `json:"invoice_id"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method"`
	Status      string          `json:"status"`
	PaymentDate time.Time       `json:"payment_date"`
	CreatedAt   time.Time       `json:"created_at"`
}
