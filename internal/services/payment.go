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

const defaultPaymentStatus = "completed"

type paymentStore interface {
	ListPayments(ctx context.Context, userID int64) ([]models.Payment, error)
	CreatePayment(ctx context.Context, p *models.Payment) error
	DeletePayment(ctx context.Context, userID, paymentID int64) error
}

type invoiceGetter interface {
	GetInvoice(ctx context.Context, userID, invoiceID int64) (models.Invoice, error)
}

type paymentService struct {
	payments paymentStore
	invoices invoiceGetter
	clockNow func() time.Time
}

func NewPaymentService(payments paymentStore, invoices invoiceGetter) *paymentService {
	return &paymentService{payments: payments, invoices: invoices, clockNow: time.Now}
}

func (s *paymentService) List(ctx context.Context, userID int64) ([]models.Payment, error) {
	return s.payments.ListPayments(ctx, userID)
}

// Create records a payment. A referenced invoice must belong to the user;
// its status is left alone.
func (s *paymentService) Create(ctx context.Context, userID int64, req dto.CreatePaymentRequest) (models.Payment, error) {
	p := models.Payment{
		UserID:      userID,
		InvoiceID:   req.InvoiceID,
		Method:      strings.TrimSpace(req.Method),
		Status:      req.Status,
		PaymentDate: s.clockNow(),
	}
	if req.Amount != nil {
		p.Amount = *req.Amount
	}
	if req.PaymentDate != nil {
		p.PaymentDate = req.PaymentDate.Time
	}
	if p.Status == "" {
		p.Status = defaultPaymentStatus
	}

	switch {
	case !p.Amount.IsPositive():
		return models.Payment{}, errs.NewValidationError("amount must be greater than zero")
	case p.Method == "":
		return models.Payment{}, errs.NewValidationError("method is required")
	}

	if p.InvoiceID != nil {
		if _, err := s.invoices.GetInvoice(ctx, userID, *p.InvoiceID); err != nil {
			return models.Payment{}, err
		}
	}

	if err := s.payments.CreatePayment(ctx, &p); err != nil {
		return models.Payment{}, err
	}
	logger.FromContext(ctx).Info("payment created", "payment_id", p.ID)
	return p, nil
}

func (s *paymentService) Delete(ctx context.Context, userID, paymentID int64) error {
	return s.payments.DeletePayment(ctx, userID, paymentID)
}
