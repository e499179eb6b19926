package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/finance-dashboard/internal/dto"
	"github.com/GregMSThompson/finance-dashboard/internal/models"
	"github.com/GregMSThompson/finance-dashboard/internal/response"
)

type goalService interface {
	List(ctx context.Context, userID int64) ([]dto.GoalView, error)
	Create(ctx context.Context, userID int64, req dto.CreateGoalRequest) (models.SavingsGoal, error)
	Update(ctx context.Context, userID, goalID int64, patch dto.GoalPatch) (models.SavingsGoal, error)
	Delete(ctx context.Context, userID, goalID int64) error
}

type goalHandlers struct {
	ResponseHandler response.ResponseHandler
	GoalSvc         goalService
}

func NewGoalHandlers(deps *Deps) *goalHandlers {
	return &goalHandlers{
		ResponseHandler: deps.ResponseHandler,
		GoalSvc:         deps.GoalSvc,
	}
}

func (h *goalHandlers) GoalRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListGoals)
	r.Post("/", h.CreateGoal)
	r.Put("/{id}", h.UpdateGoal)
	r.Delete("/{id}", h.DeleteGoal)
	return r
}

func (h *goalHandlers) ListGoals(w http.ResponseWriter, r *http.Request) {
	userID, err := queryUserID(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	goals, err := h.GoalSvc.List(r.Context(), userID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dto.GoalListResponse{Goals: goals})
}

func (h *goalHandlers) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateGoalRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	userID, err := resolveUserID(r, req.UserID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	goal, err := h.GoalSvc.Create(r.Context(), userID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, goal)
}

func (h *goalHandlers) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	var patch dto.GoalPatch
	if err := decodeJSON(r, &patch); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	userID, err := queryUserID(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	goal, err := h.GoalSvc.Update(r.Context(), userID, id, patch)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, goal)
}

func (h *goalHandlers) DeleteGoal(w http.ResponseWriter, r *http.Request) {
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
	if err := h.GoalSvc.Delete(r.Context(), userID, id); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusNoContent, nil)
}
