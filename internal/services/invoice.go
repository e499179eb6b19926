package services

import (
	"context"
	"strings"
	"time"

	"github.com/GregMSThompson/finance-dashboard/internal/dto"
	"github.com/GregMSThompson/finance-dashboard/internal/errs"
	"github.com/GregMSThompson/finance-dashboard/internal/models"
	"github.com/GregMSThompson/finance-dashboard/pkg/logger"
)

type invoiceStore interface {
	ListInvoices(ctx context.Context, userID int64, status *models.InvoiceStatus) ([]models.Invoice, error)
	GetInvoice(ctx context.Context, userID, invoiceID int64) (models.Invoice, error)
	CreateInvoice(ctx context.Context, inv *models.Invoice) error
	UpdateInvoice(ctx context.Context, inv *models.Invoice) error
	DeleteInvoice(ctx context.Context, userID, invoiceID int64) error
}

type invoiceService struct {
	invoices invoiceStore
	clockNow func() time.Time
}

func NewInvoiceService(invoices invoiceStore) *invoiceService {
	return &invoiceService{invoices: invoices, clockNow: time.Now}
}

func (s *invoiceService) List(ctx context.Context, userID int64, status *models.InvoiceStatus) (dto.InvoiceListResponse, error) {
	if status != nil && !status.Valid() {
		return dto.InvoiceListResponse{}, errs.NewValidationError("status must be one of pending, paid, overdue")
	}
	invs, err := s.invoices.ListInvoices(ctx, userID, status)
	if err != nil {
		return dto.InvoiceListResponse{}, err
	}
	return dto.InvoiceListResponse{Invoices: invs, Statistics: invoiceStatistics(invs)}, nil
}

func (s *invoiceService) Create(ctx context.Context, userID int64, req dto.CreateInvoiceRequest) (models.Invoice, error) {
	inv := models.Invoice{
		UserID:    userID,
		Client:    strings.TrimSpace(req.Client),
		IssueDate: s.clockNow(),
		Status:    req.Status,
	}
	if req.Amount != nil {
		inv.Amount = *req.Amount
	}
	if req.IssueDate != nil {
		inv.IssueDate = req.IssueDate.Time
	}
	if req.DueDate == nil {
		return models.Invoice{}, errs.NewValidationError("due_date is required")
	}
	inv.DueDate = req.DueDate.Time
	if inv.Status == "" {
		inv.Status = models.InvoicePending
	}
	if err := validateInvoice(inv); err != nil {
		return models.Invoice{}, err
	}

	if err := s.invoices.CreateInvoice(ctx, &inv); err != nil {
		return models.Invoice{}, err
	}
	logger.FromContext(ctx).Info("invoice created", "invoice_id", inv.ID, "status", inv.Status)
	return inv, nil
}

func (s *invoiceService) Update(ctx context.Context, userID, invoiceID int64, patch dto.InvoicePatch) (models.Invoice, error) {
	inv, err := s.invoices.GetInvoice(ctx, userID, invoiceID)
	if err != nil {
		return models.Invoice{}, err
	}
	patch.Apply(&inv)
	if err := validateInvoice(inv); err != nil {
		return models.Invoice{}, err
	}
	if err := s.invoices.UpdateInvoice(ctx, &inv); err != nil {
		return models.Invoice{}, err
	}
	return inv, nil
}

func (s *invoiceService) Delete(ctx context.Context, userID, invoiceID int64) error {
	return s.invoices.DeleteInvoice(ctx, userID, invoiceID)
}

// invoiceStatistics sums amounts by the status stored on each invoice.
// A pending invoice past its due date still counts as pending.
func invoiceStatistics(invs []models.Invoice) dto.InvoiceStatistics {
	var st dto.InvoiceStatistics
	for _, inv := range invs {
		st.Total = st.Total.Add(inv.Amount)
		switch inv.Status {
		case models.InvoicePaid:
			st.Paid = st.Paid.Add(inv.Amount)
		case models.InvoicePending:
			st.Pending = st.Pending.Add(inv.Amount)
		case models.InvoiceOverdue:
			st.Overdue = st.Overdue.Add(inv.Amount)
		}
	}
	st.Count = len(invs)
	return st
}

func validateInvoice(inv models.Invoice) error {
	switch {
	case inv.Client == "":
		return errs.NewValidationError("client is required")
	case !inv.Amount.IsPositive():
		return errs.NewValidationError("amount must be greater than zero")
	case !inv.Status.Valid():
		return errs.NewValidationError("status must be one of pending, paid, overdue")
	case inv.DueDate.Before(inv.IssueDate):
		return errs.NewValidationError("due_date must not be before issue_date")
	}
	return nil
}
