package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/finance-dashboard/internal/dto"
	"github.com/GregMSThompson/finance-dashboard/internal/models"
	"github.com/GregMSThompson/finance-dashboard/internal/response"
)

type accountService interface {
	List(ctx context.Context, userID int64) ([]models.Account, error)
	Create(ctx context.Context, userID int64, req dto.CreateAccountRequest) (models.Account, error)
	Update(ctx context.Context, userID, accountID int64, patch dto.AccountPatch) (models.Account, error)
	Delete(ctx context.Context, userID, accountID int64) error
}

type accountHandlers struct {
	ResponseHandler response.ResponseHandler
	AccountSvc      accountService
}

func NewAccountHandlers(deps *Deps) *accountHandlers {
	return &accountHandlers{
		ResponseHandler: deps.ResponseHandler,
		AccountSvc:      deps.AccountSvc,
	}
}

func (h *accountHandlers) AccountRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListAccounts)
	r.Post("/", h.CreateAccount)
	r.Put("/{id}", h.UpdateAccount)
	r.Delete("/{id}", h.DeleteAccount)
	return r
}

func (h *accountHandlers) ListAccounts(w http.ResponseWriter, r *http.Request) {
	userID, err := queryUserID(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	accounts, err := h.AccountSvc.List(r.Context(), userID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dto.AccountListResponse{Accounts: accounts})
}

func (h *accountHandlers) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	userID, err := resolveUserID(r, req.UserID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	account, err := h.AccountSvc.Create(r.Context(), userID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, dto.AccountResponse{Account: account})
}

func (h *accountHandlers) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	var patch dto.AccountPatch
	if err := decodeJSON(r, &patch); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	userID, err := queryUserID(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	account, err := h.AccountSvc.Update(r.Context(), userID, id, patch)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dto.AccountResponse{Account: account})
}

func (h *accountHandlers) DeleteAccount(w http.ResponseWriter, r *http.Request) {
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
	if err := h.AccountSvc.Delete(r.Context(), userID, id); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusNoContent, nil)
}
