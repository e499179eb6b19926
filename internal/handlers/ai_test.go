package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GregMSThompson/finance-dashboard/internal/dto"
	"github.com/GregMSThompson/finance-dashboard/internal/errs"
	"github.com/GregMSThompson/finance-dashboard/internal/models"
)

type stubAIServices struct {
	question string
	months   *int
	category string
	limit    int
	err      error
}

func (s *stubAIServices) Ask(_ context.Context, _ int64, question string) (dto.AssistantResponse, error) {
	s.question = question
	return dto.AssistantResponse{}, s.err
}

func (s *stubAIServices) Forecast(_ context.Context, _ int64, months *int) (dto.Forecast, error) {
	s.months = months
	return dto.Forecast{}, s.err
}

func (s *stubAIServices) Generate(context.Context, int64) (dto.InsightResponse, error) {
	return dto.InsightResponse{}, s.err
}

func (s *stubAIServices) List(_ context.Context, _ int64, category string, limit int) ([]models.FinancialInsight, error) {
	s.category = category
	s.limit = limit
	return nil, s.err
}

func newAITestHandlers(svc *stubAIServices, resp *stubResponseHandler) *aiHandlers {
	return NewAIHandlers(&Deps{ResponseHandler: resp, AssistantSvc: svc, ForecastSvc: svc, InsightSvc: svc})
}

func TestAskPassesQuestion(t *testing.T) {
	svc := &stubAIServices{}
	resp := &stubResponseHandler{}

	newAITestHandlers(svc, resp).Ask(httptest.NewRecorder(),
		newRequest(http.MethodPost, "/assistant", `{"question":"Quanto gastei?"}`, 7))

	if svc.question != "Quanto gastei?" || resp.writeSuccessStatus != http.StatusOK {
		t.Fatalf("ask mismatch: got %q status %d", svc.question, resp.writeSuccessStatus)
	}
}

func TestAskUpstreamFailure(t *testing.T) {
	svc := &stubAIServices{err: errs.NewExternalServiceError("llm", "generation failed", false, nil)}
	resp := &stubResponseHandler{}

	newAITestHandlers(svc, resp).Ask(httptest.NewRecorder(),
		newRequest(http.MethodPost, "/assistant", `{"question":"?"}`, 7))

	if resp.handleErrorStatus != http.StatusInternalServerError {
		t.Fatalf("status mismatch: got %d", resp.handleErrorStatus)
	}
}

func TestForecastMonths(t *testing.T) {
	svc := &stubAIServices{}
	resp := &stubResponseHandler{}

	newAITestHandlers(svc, resp).Forecast(httptest.NewRecorder(),
		newRequest(http.MethodPost, "/forecasts", `{"months":3}`, 7))
	if svc.months == nil || *svc.months != 3 {
		t.Fatalf("months mismatch: got %v", svc.months)
	}

	newAITestHandlers(svc, resp).Forecast(httptest.NewRecorder(),
		newRequest(http.MethodPost, "/forecasts", `{}`, 7))
	if svc.months != nil {
		t.Fatalf("expected default months, got %v", *svc.months)
	}
}

func TestListInsightsQuery(t *testing.T) {
	svc := &stubAIServices{}
	resp := &stubResponseHandler{}

	newAITestHandlers(svc, resp).ListInsights(httptest.NewRecorder(),
		newRequest(http.MethodGet, "/insights?category=forecast&limit=5", "", 7))

	if svc.category != "forecast" || svc.limit != 5 {
		t.Fatalf("query mismatch: got %q/%d", svc.category, svc.limit)
	}
}
