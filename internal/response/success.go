package response

import (
	"encoding/json"
	"net/http"

	"github.com/GregMSThompson/finance-dashboard/pkg/logger"
)

// WriteSuccess encodes data as the response body. A nil payload produces
// an empty body, which suits 204 responses.
func (h *responseHandler) WriteSuccess(w http.ResponseWriter, r *http.Request, status int, data any) {
	if data == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Last-ditch logging; can't return an error now
		logger.FromContext(r.Context()).Error("failed to encode success response", "error", err)
	}
}
