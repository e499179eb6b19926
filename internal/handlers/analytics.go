package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/finance-dashboard/internal/analytics"
	"github.com/GregMSThompson/finance-dashboard/internal/dto"
	"github.com/GregMSThompson/finance-dashboard/internal/response"
)

type analyticsService interface {
	Dashboard(ctx context.Context, userID int64, period string) (dto.AnalyticsResponse, error)
	Trends(ctx context.Context, userID int64, granularity string) ([]analytics.TrendPoint, error)
}

type analyticsHandlers struct {
	ResponseHandler response.ResponseHandler
	AnalyticsSvc    analyticsService
}

func NewAnalyticsHandlers(deps *Deps) *analyticsHandlers {
	return &analyticsHandlers{
		ResponseHandler: deps.ResponseHandler,
		AnalyticsSvc:    deps.AnalyticsSvc,
	}
}

func (h *analyticsHandlers) AnalyticsRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.GetAnalytics)
	r.Get("/trends", h.GetTrends)
	return r
}

// GetAnalytics serves ?period=week|month|quarter|year, month by default.
func (h *analyticsHandlers) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	userID, err := queryUserID(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	resp, err := h.AnalyticsSvc.Dashboard(r.Context(), userID, r.URL.Query().Get("period"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, resp)
}

// GetTrends serves ?period=monthly|quarterly|yearly, monthly by default. The
// body is the bare array of trend points.
func (h *analyticsHandlers) GetTrends(w http.ResponseWriter, r *http.Request) {
	userID, err := queryUserID(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	period := r.URL.Query().Get("period")
	if period == "" {
		period = analytics.SeriesMonthly
	}
	points, err := h.AnalyticsSvc.Trends(r.Context(), userID, period)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, points)
}
