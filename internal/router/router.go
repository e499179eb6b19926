package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/GregMSThompson/finance-dashboard/internal/handlers"
	"github.com/GregMSThompson/finance-dashboard/internal/middleware"
)

func NewRouter(deps *handlers.Deps, mw *middleware.Middleware) chi.Router {
	r := chi.NewRouter()

	lmw := middleware.NewLoggerMiddleware(deps.Log)
	r.Use(chimiddleware.RequestID)
	r.Use(lmw.LoggerMiddleware)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	auh := handlers.NewAuthHandlers(deps)
	ach := handlers.NewAccountHandlers(deps)
	txh := handlers.NewTransactionHandlers(deps)
	buh := handlers.NewBudgetHandlers(deps)
	goh := handlers.NewGoalHandlers(deps)
	inh := handlers.NewInvoiceHandlers(deps)
	anh := handlers.NewAnalyticsHandlers(deps)
	aih := handlers.NewAIHandlers(deps)
	noh := handlers.NewNotificationHandlers(deps)

	r.Mount("/auth", auh.AuthRoutes(mw.SessionAuth))
	// check-all runs authenticate with the cron key, so this mounts outside the session group
	r.Mount("/notifications", noh.NotificationRoutes(mw.SessionAuth))

	r.Group(func(r chi.Router) {
		r.Use(mw.SessionAuth)

		r.Mount("/accounts", ach.AccountRoutes())
		r.Mount("/transactions", txh.TransactionRoutes())
		r.Mount("/budgets", buh.BudgetRoutes())
		r.Mount("/savings-goals", goh.GoalRoutes())
		r.Mount("/invoices", inh.InvoiceRoutes())
		r.Mount("/payments", inh.PaymentRoutes())
		r.Mount("/analytics", anh.AnalyticsRoutes())
		r.Mount("/assistant", aih.AssistantRoutes())
		r.Mount("/forecasts", aih.ForecastRoutes())
		r.Mount("/insights", aih.InsightRoutes())
	})

	return r
}
