package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/finance-dashboard/internal/dto"
	"github.com/GregMSThompson/finance-dashboard/internal/models"
	"github.com/GregMSThompson/finance-dashboard/internal/response"
)

type transactionService interface {
	List(ctx context.Context, f dto.TransactionFilter) ([]models.Transaction, error)
	Create(ctx context.Context, userID int64, req dto.CreateTransactionRequest) (dto.TransactionCreatedResponse, error)
}

type transactionHandlers struct {
	ResponseHandler response.ResponseHandler
	TransactionSvc  transactionService
}

func NewTransactionHandlers(deps *Deps) *transactionHandlers {
	return &transactionHandlers{
		ResponseHandler: deps.ResponseHandler,
		TransactionSvc:  deps.TransactionSvc,
	}
}

// TransactionRoutes has no update or delete: transactions are immutable.
func (h *transactionHandlers) TransactionRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListTransactions)
	r.Post("/", h.CreateTransaction)
	return r
}

func (h *transactionHandlers) ListTransactions(w http.ResponseWriter, r *http.Request) {
	f, err := transactionFilter(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	txs, err := h.TransactionSvc.List(r.Context(), f)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dto.TransactionListResponse{Transactions: txs})
}

func (h *transactionHandlers) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	userID, err := resolveUserID(r, req.UserID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	resp, err := h.TransactionSvc.Create(r.Context(), userID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, resp)
}

func transactionFilter(r *http.Request) (dto.TransactionFilter, error) {
	var (
		f   dto.TransactionFilter
		err error
	)
	if f.UserID, err = queryUserID(r); err != nil {
		return f, err
	}
	if f.AccountID, err = queryInt64(r, "accountId"); err != nil {
		return f, err
	}
	if f.From, err = queryDate(r, "startDate"); err != nil {
		return f, err
	}
	if f.To, err = queryEndDate(r, "endDate"); err != nil {
		return f, err
	}
	if f.Limit, err = queryInt(r, "limit"); err != nil {
		return f, err
	}
	f.Category = queryString(r, "category")
	return f, nil
}
