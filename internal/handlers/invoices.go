package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/finance-dashboard/internal/dto"
	"github.com/GregMSThompson/finance-dashboard/internal/models"
	"github.com/GregMSThompson/finance-dashboard/internal/response"
)

type invoiceService interface {
	List(ctx context.Context, userID int64, status *models.InvoiceStatus) (dto.InvoiceListResponse, error)
	Create(ctx context.Context, userID int64, req dto.CreateInvoiceRequest) (models.Invoice, error)
	Update(ctx context.Context, userID, invoiceID int64, patch dto.InvoicePatch) (models.Invoice, error)
	Delete(ctx context.Context, userID, invoiceID int64) error
}

type paymentService interface {
	List(ctx context.Context, userID int64) ([]models.Payment, error)
	Create(ctx context.Context, userID int64, req dto.CreatePaymentRequest) (models.Payment, error)
	Delete(ctx context.Context, userID, paymentID int64) error
}

type invoiceHandlers struct {
	ResponseHandler response.ResponseHandler
	InvoiceSvc      invoiceService
	PaymentSvc      paymentService
}

func NewInvoiceHandlers(deps *Deps) *invoiceHandlers {
	return &invoiceHandlers{
		ResponseHandler: deps.ResponseHandler,
		InvoiceSvc:      deps.InvoiceSvc,
		PaymentSvc:      deps.PaymentSvc,
	}
}

func (h *invoiceHandlers) InvoiceRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListInvoices)
	r.Post("/", h.CreateInvoice)
	r.Put("/{id}", h.UpdateInvoice)
	r.Delete("/{id}", h.DeleteInvoice)
	return r
}

func (h *invoiceHandlers) PaymentRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListPayments)
	r.Post("/", h.CreatePayment)
	r.Delete("/{id}", h.DeletePayment)
	return r
}

func (h *invoiceHandlers) ListInvoices(w http.ResponseWriter, r *http.Request) {
	userID, err := queryUserID(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	var status *models.InvoiceStatus
	if s := queryString(r, "status"); s != nil {
		st := models.InvoiceStatus(*s)
		status = &st
	}
	resp, err := h.InvoiceSvc.List(r.Context(), userID, status)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, resp)
}

func (h *invoiceHandlers) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateInvoiceRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	userID, err := resolveUserID(r, req.UserID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	inv, err := h.InvoiceSvc.Create(r.Context(), userID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, inv)
}

func (h *invoiceHandlers) UpdateInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	var patch dto.InvoicePatch
	if err := decodeJSON(r, &patch); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	userID, err := queryUserID(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	inv, err := h.InvoiceSvc.Update(r.Context(), userID, id, patch)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, inv)
}

func (h *invoiceHandlers) DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	userID, err := queryUserID(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	if err := h.InvoiceSvc.Delete(r.Context(), userID, id); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusNoContent, nil)
}

func (h *invoiceHandlers) ListPayments(w http.ResponseWriter, r *http.Request) {
	userID, err := queryUserID(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	payments, err := h.PaymentSvc.List(r.Context(), userID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dto.PaymentListResponse{Payments: payments})
}

func (h *invoiceHandlers) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	userID, err := resolveUserID(r, req.UserID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	p, err := h.PaymentSvc.Create(r.Context(), userID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, p)
}

func (h *invoiceHandlers) DeletePayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	userID, err := queryUserID(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	if err := h.PaymentSvc.Delete(r.Context(), userID, id); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusNoContent, nil)
}
