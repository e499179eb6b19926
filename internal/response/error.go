package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/GregMSThompson/finance-dashboard/internal/errs"
	"github.com/GregMSThompson/finance-dashboard/pkg/logger"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (h *responseHandler) WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error: message,
		Code:  code,
	}); err != nil {
		log := logger.FromContext(r.Context())
		log.Error("failed to encode error response", "error", err, "status", status, "code", code)
	}
}

func (h *responseHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())
	status, code := errs.HTTPStatus(err)

	var (
		dbErr  *errs.DatabaseError
		extErr *errs.ExternalServiceError
	)
	switch {
	case status == http.StatusNotFound:
		log.Warn("resource not found", "error", err.Error())
		h.WriteError(w, r, status, code, err.Error())

	case status == http.StatusConflict:
		log.Warn("resource already exists", "error", err.Error())
		h.WriteError(w, r, status, code, err.Error())

	case status == http.StatusBadRequest:
		log.Warn("validation failed", "error", err.Error())
		h.WriteError(w, r, status, code, err.Error())

	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		log.Warn("access denied", "error", err.Error(), "status", status)
		h.WriteError(w, r, status, code, err.Error())

	case errors.As(err, &dbErr):
		log.Error("database error",
			"operation", dbErr.Operation,
			"error", dbErr.Error())
		h.WriteError(w, r, status, code, "An error occurred")

	case errors.As(err, &extErr):
		level := slog.LevelError
		if extErr.Transient {
			level = slog.LevelWarn
		}
		log.Log(r.Context(), level, "external service error",
			"service", extErr.Service,
			"transient", extErr.Transient,
			"error", extErr.Error())
		h.WriteError(w, r, status, code, "Service temporarily unavailable")

	default:
		log.Error("unexpected error",
			"error", err,
			"type", fmt.Sprintf("%T", err))
		h.WriteError(w, r, status, code, "An unexpected error occurred")
	}
}
