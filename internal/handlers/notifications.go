package handlers

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/finance-dashboard/internal/dto"
	"github.com/GregMSThompson/finance-dashboard/internal/errs"
	"github.com/GregMSThompson/finance-dashboard/internal/response"
)

// CronKeyHeader authenticates scheduled check-all calls.
const CronKeyHeader = "X-Cron-Key"

type notificationService interface {
	BudgetAlerts(ctx context.Context, userID int64, checkAll bool) ([]dto.BudgetAlertRecord, error)
}

type notificationHandlers struct {
	ResponseHandler response.ResponseHandler
	NotificationSvc notificationService
	CronKey         string
}

func NewNotificationHandlers(deps *Deps) *notificationHandlers {
	return &notificationHandlers{
		ResponseHandler: deps.ResponseHandler,
		NotificationSvc: deps.NotificationSvc,
		CronKey:         deps.CronKey,
	}
}

// NotificationRoutes lets ?checkAll=true through on the cron key alone;
// every other call goes through protect.
func (h *notificationHandlers) NotificationRoutes(protect func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	userAlerts := protect(http.HandlerFunc(h.UserBudgetAlerts))
	r.Get("/budget-alerts", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("checkAll") == "true" {
			h.AllBudgetAlerts(w, r)
			return
		}
		userAlerts.ServeHTTP(w, r)
	})
	return r
}

func (h *notificationHandlers) UserBudgetAlerts(w http.ResponseWriter, r *http.Request) {
	userID, err := queryUserID(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.budgetAlerts(w, r, userID, false)
}

func (h *notificationHandlers) AllBudgetAlerts(w http.ResponseWriter, r *http.Request) {
	key := r.Header.Get(CronKeyHeader)
	if h.CronKey == "" || subtle.ConstantTimeCompare([]byte(key), []byte(h.CronKey)) != 1 {
		h.ResponseHandler.HandleError(w, r, errs.NewForbiddenError("checkAll requires a valid cron key"))
		return
	}
	h.budgetAlerts(w, r, 0, true)
}

func (h *notificationHandlers) budgetAlerts(w http.ResponseWriter, r *http.Request, userID int64, checkAll bool) {
	alerts, err := h.NotificationSvc.BudgetAlerts(r.Context(), userID, checkAll)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dto.BudgetAlertsResponse{Alerts: alerts})
}
