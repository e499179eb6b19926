package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", NewNotFoundError("account not found"), http.StatusNotFound, CodeNotFound},
		{"conflict", NewAlreadyExistsError("email already registered"), http.StatusConflict, CodeAlreadyExists},
		{"validation", NewValidationError("amount is required"), http.StatusBadRequest, CodeInvalidInput},
		{"unauthorized", NewUnauthorizedError("invalid credentials"), http.StatusUnauthorized, CodeUnauthorized},
		{"forbidden", NewForbiddenError("userId does not match session"), http.StatusForbidden, CodeForbidden},
		{"wrapped validation", fmt.Errorf("create budget: %w", NewValidationError("bad period")), http.StatusBadRequest, CodeInvalidInput},
		{"database", NewDatabaseError("insert", "failed", errors.New("conn reset")), http.StatusInternalServerError, CodeInternal},
		{"external", NewExternalServiceError("vertex", "generate failed", true, nil), http.StatusInternalServerError, CodeInternal},
		{"plain", errors.New("boom"), http.StatusInternalServerError, CodeInternal},
	}

	for _, tc := range cases {
		status, code := HTTPStatus(tc.err)
		if status != tc.status || code != tc.code {
			t.Fatalf("%s: got %d/%s want %d/%s", tc.name, status, code, tc.status, tc.code)
		}
	}
}

func TestDatabaseErrorUnwraps(t *testing.T) {
	cause := errors.New("conn reset")
	err := NewDatabaseError("insert", "failed to insert transaction", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("expected DatabaseError to unwrap to cause")
	}
	if err.Error() != "insert: failed to insert transaction: conn reset" {
		t.Fatalf("message mismatch: got %q", err.Error())
	}
}
