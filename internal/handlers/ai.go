package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/finance-dashboard/internal/dto"
	"github.com/GregMSThompson/finance-dashboard/internal/models"
	"github.com/GregMSThompson/finance-dashboard/internal/response"
)

type assistantService interface {
	Ask(ctx context.Context, userID int64, question string) (dto.AssistantResponse, error)
}

type forecastService interface {
	Forecast(ctx context.Context, userID int64, months *int) (dto.Forecast, error)
}

type insightService interface {
	Generate(ctx context.Context, userID int64) (dto.InsightResponse, error)
	List(ctx context.Context, userID int64, category string, limit int) ([]models.FinancialInsight, error)
}

type aiHandlers struct {
	ResponseHandler response.ResponseHandler
	AssistantSvc    assistantService
	ForecastSvc     forecastService
	InsightSvc      insightService
}

func NewAIHandlers(deps *Deps) *aiHandlers {
	return &aiHandlers{
		ResponseHandler: deps.ResponseHandler,
		AssistantSvc:    deps.AssistantSvc,
		ForecastSvc:     deps.ForecastSvc,
		InsightSvc:      deps.InsightSvc,
	}
}

func (h *aiHandlers) AssistantRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Ask)
	return r
}

func (h *aiHandlers) ForecastRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Forecast)
	return r
}

func (h *aiHandlers) InsightRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListInsights)
	r.Post("/", h.GenerateInsight)
	return r
}

func (h *aiHandlers) Ask(w http.ResponseWriter, r *http.Request) {
	var req dto.AssistantRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	userID, err := resolveUserID(r, req.UserID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	resp, err := h.AssistantSvc.Ask(r.Context(), userID, req.Question)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, resp)
}

func (h *aiHandlers) Forecast(w http.ResponseWriter, r *http.Request) {
	var req dto.ForecastRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	userID, err := resolveUserID(r, req.UserID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	forecast, err := h.ForecastSvc.Forecast(r.Context(), userID, req.Months)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, forecast)
}

func (h *aiHandlers) GenerateInsight(w http.ResponseWriter, r *http.Request) {
	var req dto.InsightRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	userID, err := resolveUserID(r, req.UserID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	resp, err := h.InsightSvc.Generate(r.Context(), userID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, resp)
}

// ListInsights serves ?category=&limit= over the insight log.
func (h *aiHandlers) ListInsights(w http.ResponseWriter, r *http.Request) {
	userID, err := queryUserID(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	insights, err := h.InsightSvc.List(r.Context(), userID, r.URL.Query().Get("category"), limit)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dto.InsightListResponse{Insights: insights})
}
