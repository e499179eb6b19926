package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GregMSThompson/finance-dashboard/internal/errs"
	"github.com/GregMSThompson/finance-dashboard/pkg/helpers"
	"github.com/GregMSThompson/finance-dashboard/pkg/logger"
)

func newTestRequest() *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/accounts", nil)
	return req.WithContext(helpers.TestCtx())
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body
}

func TestHandleErrorValidation(t *testing.T) {
	h := New(slog.New(logger.NewTestHandler(slog.LevelInfo)))
	rr := httptest.NewRecorder()

	h.HandleError(rr, newTestRequest(), errs.NewValidationError("name is required"))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status mismatch: got %d", rr.Code)
	}
	body := decodeError(t, rr)
	if body.Error != "name is required" || body.Code != errs.CodeInvalidInput {
		t.Fatalf("body mismatch: got %+v", body)
	}
}

func TestHandleErrorHidesDatabaseDetails(t *testing.T) {
	h := New(slog.New(logger.NewTestHandler(slog.LevelInfo)))
	rr := httptest.NewRecorder()

	h.HandleError(rr, newTestRequest(), errs.NewDatabaseError("insert", "failed", errors.New("password=secret")))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status mismatch: got %d", rr.Code)
	}
	body := decodeError(t, rr)
	if body.Error != "An error occurred" {
		t.Fatalf("database detail leaked: %+v", body)
	}
}

func TestHandleErrorConflict(t *testing.T) {
	h := New(slog.New(logger.NewTestHandler(slog.LevelInfo)))
	rr := httptest.NewRecorder()

	h.HandleError(rr, newTestRequest(), errs.NewAlreadyExistsError("email already registered"))

	if rr.Code != http.StatusConflict {
		t.Fatalf("status mismatch: got %d", rr.Code)
	}
}

func TestWriteSuccessEncodesPayload(t *testing.T) {
	h := New(slog.New(logger.NewTestHandler(slog.LevelInfo)))
	rr := httptest.NewRecorder()

	h.WriteSuccess(rr, newTestRequest(), http.StatusCreated, map[string]int{"count": 2})

	if rr.Code != http.StatusCreated {
		t.Fatalf("status mismatch: got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type mismatch: got %q", ct)
	}
	var body map[string]int
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil || body["count"] != 2 {
		t.Fatalf("payload mismatch: %v %v", body, err)
	}
}
