package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/finance-dashboard/internal/analytics"
	"github.com/GregMSThompson/finance-dashboard/internal/dto"
	"github.com/GregMSThompson/finance-dashboard/internal/response"
	"github.com/GregMSThompson/finance-dashboard/pkg/logger"
)

type stubAnalyticsService struct {
	gotUserID      int64
	gotGranularity string
	points         []analytics.TrendPoint
	err            error
}

func (s *stubAnalyticsService) Dashboard(_ context.Context, userID int64, period string) (dto.AnalyticsResponse, error) {
	s.gotUserID = userID
	return dto.AnalyticsResponse{Period: period}, s.err
}

func (s *stubAnalyticsService) Trends(_ context.Context, userID int64, granularity string) ([]analytics.TrendPoint, error) {
	s.gotUserID = userID
	s.gotGranularity = granularity
	return s.points, s.err
}

func TestGetTrendsWritesBareArray(t *testing.T) {
	svc := &stubAnalyticsService{points: []analytics.TrendPoint{
		{DateLabel: "2024-02", Income: decimal.RequireFromString("200")},
		{DateLabel: "2024-03", Income: decimal.RequireFromString("300"), Trend: decimal.RequireFromString("50")},
	}}
	h := NewAnalyticsHandlers(&Deps{
		ResponseHandler: response.New(logger.New("error", logger.NewTestHandler)),
		AnalyticsSvc:    svc,
	})

	w := httptest.NewRecorder()
	h.GetTrends(w, newRequest(http.MethodGet, "/analytics/trends", "", 7))

	if w.Code != http.StatusOK {
		t.Fatalf("status mismatch: got %d", w.Code)
	}
	var body []map[string]any
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("expected a JSON array body: %v", err)
	}
	if len(body) != 2 || body[1]["date"] != "2024-03" {
		t.Fatalf("body mismatch: got %v", body)
	}
	if svc.gotUserID != 7 || svc.gotGranularity != analytics.SeriesMonthly {
		t.Fatalf("service args mismatch: got %d %q", svc.gotUserID, svc.gotGranularity)
	}
}

func TestGetTrendsPassesPeriod(t *testing.T) {
	svc := &stubAnalyticsService{}
	rh := &stubResponseHandler{}
	h := &analyticsHandlers{ResponseHandler: rh, AnalyticsSvc: svc}

	w := httptest.NewRecorder()
	h.GetTrends(w, newRequest(http.MethodGet, "/analytics/trends?period=yearly", "", 7))

	if !rh.writeSuccessCalled || svc.gotGranularity != "yearly" {
		t.Fatalf("period not forwarded: got %q", svc.gotGranularity)
	}
	if _, ok := rh.writeSuccessData.([]analytics.TrendPoint); !ok {
		t.Fatalf("expected trend points payload, got %T", rh.writeSuccessData)
	}
}
