package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/finance-dashboard/internal/dto"
	"github.com/GregMSThompson/finance-dashboard/internal/errs"
	"github.com/GregMSThompson/finance-dashboard/internal/middleware"
)

// decodeJSON reads the request body into v. Syntax and type errors become
// ValidationErrors; typed errors raised by field decoders pass through.
func decodeJSON(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return nil
	}
	var ve *errs.ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	return errs.NewValidationError("invalid request body")
}

// resolveUserID returns the session user. A requested id other than the
// session user is forbidden.
func resolveUserID(r *http.Request, requested *int64) (int64, error) {
	userID := middleware.UserID(r.Context())
	if userID == 0 {
		return 0, errs.NewUnauthorizedError("missing session")
	}
	if requested != nil && *requested != userID {
		return 0, errs.NewForbiddenError("access to another user's data is not allowed")
	}
	return userID, nil
}

// queryUserID resolves the optional userId query parameter.
func queryUserID(r *http.Request) (int64, error) {
	requested, err := queryInt64(r, "userId")
	if err != nil {
		return 0, err
	}
	return resolveUserID(r, requested)
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errs.NewValidationError("invalid id")
	}
	return id, nil
}

func queryInt64(r *http.Request, key string) (*int64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, errs.NewValidationError("invalid " + key)
	}
	return &v, nil
}

func queryInt(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValidationError("invalid " + key)
	}
	return v, nil
}

func queryDate(r *http.Request, key string) (*time.Time, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	t, err := dto.ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// queryEndDate reads an inclusive range end; a calendar date covers the
// whole day.
func queryEndDate(r *http.Request, key string) (*time.Time, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	t, err := dto.ParseEndDate(raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func queryString(r *http.Request, key string) *string {
	if v := r.URL.Query().Get(key); v != "" {
		return &v
	}
	return nil
}
