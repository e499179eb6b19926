package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/finance-dashboard/internal/dto"
	"github.com/GregMSThompson/finance-dashboard/internal/models"
)

type stubTransactionService struct {
	filter dto.TransactionFilter
	create dto.CreateTransactionRequest
	err    error
}

func (s *stubTransactionService) List(_ context.Context, f dto.TransactionFilter) ([]models.Transaction, error) {
	s.filter = f
	return []models.Transaction{}, s.err
}

func (s *stubTransactionService) Create(_ context.Context, _ int64, req dto.CreateTransactionRequest) (dto.TransactionCreatedResponse, error) {
	s.create = req
	return dto.TransactionCreatedResponse{Balance: decimal.NewFromInt(60)}, s.err
}

func TestListTransactionsFilter(t *testing.T) {
	svc := &stubTransactionService{}
	resp := &stubResponseHandler{}
	h := NewTransactionHandlers(&Deps{ResponseHandler: resp, TransactionSvc: svc})

	target := "/transactions?accountId=3&startDate=2024-01-01&endDate=2024-01-31&limit=10&category=Food"
	h.ListTransactions(httptest.NewRecorder(), newRequest(http.MethodGet, target, "", 7))

	f := svc.filter
	if f.UserID != 7 || f.AccountID == nil || *f.AccountID != 3 || f.Limit != 10 {
		t.Fatalf("filter mismatch: got %+v", f)
	}
	if f.From == nil || f.To == nil || f.To.Day() != 31 {
		t.Fatalf("date range mismatch: got %v - %v", f.From, f.To)
	}
	// a transaction later on the end date is still inside the range
	if f.To.Before(time.Date(2024, 1, 31, 15, 0, 0, 0, time.UTC)) {
		t.Fatalf("endDate should cover the whole day, got %v", f.To)
	}
	if f.Category == nil || *f.Category != "Food" {
		t.Fatalf("category mismatch: got %v", f.Category)
	}
	if resp.writeSuccessStatus != http.StatusOK {
		t.Fatalf("status mismatch: got %d", resp.writeSuccessStatus)
	}
}

func TestListTransactionsBadAccountID(t *testing.T) {
	resp := &stubResponseHandler{}
	h := NewTransactionHandlers(&Deps{ResponseHandler: resp, TransactionSvc: &stubTransactionService{}})

	h.ListTransactions(httptest.NewRecorder(), newRequest(http.MethodGet, "/transactions?accountId=x", "", 7))

	if resp.handleErrorStatus != http.StatusBadRequest {
		t.Fatalf("status mismatch: got %d", resp.handleErrorStatus)
	}
}

func TestCreateTransactionCreated(t *testing.T) {
	svc := &stubTransactionService{}
	resp := &stubResponseHandler{}
	h := NewTransactionHandlers(&Deps{ResponseHandler: resp, TransactionSvc: svc})

	body := `{"account_id":3,"description":"Mercado","amount":40,"type":"debit","category":"Food","date":"2024-01-15"}`
	h.CreateTransaction(httptest.NewRecorder(), newRequest(http.MethodPost, "/transactions", body, 7))

	if svc.create.AccountID != 3 || svc.create.Type != models.Debit {
		t.Fatalf("request mismatch: got %+v", svc.create)
	}
	if svc.create.Date == nil || svc.create.Date.Day() != 15 {
		t.Fatalf("date mismatch: got %v", svc.create.Date)
	}
	if resp.writeSuccessStatus != http.StatusCreated {
		t.Fatalf("status mismatch: got %d", resp.writeSuccessStatus)
	}
}

func TestTransactionRoutesHaveNoDelete(t *testing.T) {
	h := NewTransactionHandlers(&Deps{ResponseHandler: &stubResponseHandler{}, TransactionSvc: &stubTransactionService{}})

	rr := httptest.NewRecorder()
	h.TransactionRoutes().ServeHTTP(rr, newRequest(http.MethodDelete, "/1", "", 7))

	if rr.Code != http.StatusMethodNotAllowed && rr.Code != http.StatusNotFound {
		t.Fatalf("expected delete to be unrouted, got %d", rr.Code)
	}
}
