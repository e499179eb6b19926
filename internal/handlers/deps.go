package handlers

import (
	"log/slog"
	"time"

	"github.com/GregMSThompson/finance-dashboard/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler

	CookieSecure bool
	CronKey      string
	SessionTTL   time.Duration

	AuthSvc         authService
	AccountSvc      accountService
	TransactionSvc  transactionService
	BudgetSvc       budgetService
	GoalSvc         goalService
	InvoiceSvc      invoiceService
	PaymentSvc      paymentService
	AnalyticsSvc    analyticsService
	AssistantSvc    assistantService
	ForecastSvc     forecastService
	InsightSvc      insightService
	NotificationSvc notificationService
}
