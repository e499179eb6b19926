package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/finance-dashboard/internal/dto"
	"github.com/GregMSThompson/finance-dashboard/internal/models"
	"github.com/GregMSThompson/finance-dashboard/internal/response"
)

type budgetService interface {
	List(ctx context.Context, userID int64, f dto.BudgetFilter) ([]models.Budget, error)
	Create(ctx context.Context, userID int64, req dto.CreateBudgetRequest) (models.Budget, error)
	Update(ctx context.Context, userID, budgetID int64, patch dto.BudgetPatch) (models.Budget, error)
	Delete(ctx context.Context, userID, budgetID int64) error
}

type budgetHandlers struct {
	ResponseHandler response.ResponseHandler
	BudgetSvc       budgetService
}

func NewBudgetHandlers(deps *Deps) *budgetHandlers {
	return &budgetHandlers{
		ResponseHandler: deps.ResponseHandler,
		BudgetSvc:       deps.BudgetSvc,
	}
}

func (h *budgetHandlers) BudgetRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListBudgets)
	r.Post("/", h.CreateBudget)
	r.Put("/{id}", h.UpdateBudget)
	r.Delete("/{id}", h.DeleteBudget)
	return r
}

func (h *budgetHandlers) ListBudgets(w http.ResponseWriter, r *http.Request) {
	userID, err := queryUserID(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	var f dto.BudgetFilter
	if f.From, err = queryDate(r, "startDate"); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	if f.To, err = queryEndDate(r, "endDate"); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	budgets, err := h.BudgetSvc.List(r.Context(), userID, f)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dto.BudgetListResponse{Budgets: budgets})
}

func (h *budgetHandlers) CreateBudget(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBudgetRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	userID, err := resolveUserID(r, req.UserID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	budget, err := h.BudgetSvc.Create(r.Context(), userID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, budget)
}

func (h *budgetHandlers) UpdateBudget(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	var patch dto.BudgetPatch
	if err := decodeJSON(r, &patch); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	userID, err := queryUserID(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	budget, err := h.BudgetSvc.Update(r.Context(), userID, id, patch)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, budget)
}

func (h *budgetHandlers) DeleteBudget(w http.ResponseWriter, r *http.Request) {
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
	if err := h.BudgetSvc.Delete(r.Context(), userID, id); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusNoContent, nil)
}
