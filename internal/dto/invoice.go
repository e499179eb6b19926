package dto

import (
	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/finance-dashboard/internal/models"
)

type CreateInvoiceRequest struct {
	UserID    *int64               `json:"userId,omitempty"`
	Client    string               `json:"client"`
	Amount    *decimal.Decimal     `json:"amount"`
	IssueDate *Date                `json:"issue_date"`
	DueDate   *Date                `json:"due_date"`
	Status    models.InvoiceStatus `json:"status"`
}

type InvoicePatch struct {
	Client    *string               `json:"client"`
	Amount    *decimal.Decimal      `json:"amount"`
	IssueDate *Date                 `json:"issue_date"`
	DueDate   *Date                 `json:"due_date"`
	Status    *models.InvoiceStatus `json:"status"`
}

func (p InvoicePatch) Apply(inv *models.Invoice) {
	if p.Client != nil {
		inv.Client = *p.Client
	}
	if p.Amount != nil {
		inv.Amount = *p.Amount
	}
	if p.IssueDate != nil {
		inv.IssueDate = p.IssueDate.Time
	}
	if p.DueDate != nil {
		inv.DueDate = p.DueDate.Time
	}
	if p.Status != nil {
		inv.Status = *p.Status
	}
}

// InvoiceStatistics sums invoice amounts per stored status.
type InvoiceStatistics struct {
	Total   decimal.Decimal `json:"total"`
	Paid    decimal.Decimal `json:"paid"`
	Pending decimal.Decimal `json:"pending"`
	Overdue decimal.Decimal `json:"overdue"`
	Count   int             `json:"count"`
}

type InvoiceListResponse struct {
	Invoices   []models.Invoice  `json:"invoices"`
	Statistics InvoiceStatistics `json:"statistics"`
}

type CreatePaymentRequest struct {
	UserID      *int64           `json:"userId,omitempty"`
	InvoiceID   *int64           `json:"invoice_id"`
	Amount      *decimal.Decimal `json:"amount"`
	Method      string           `json:"method"`
	Status      string           `json:"status"`
	PaymentDate *Date            `json:"payment_date"`
}

type PaymentListResponse struct {
	Payments []models.Payment `json:"payments"`
}
