package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/GregMSThompson/finance-dashboard/internal/bootstrap"
	"github.com/GregMSThompson/finance-dashboard/internal/config"
	"github.com/GregMSThompson/finance-dashboard/internal/crypto"
	"github.com/GregMSThompson/finance-dashboard/internal/format"
	"github.com/GregMSThompson/finance-dashboard/internal/handlers"
	"github.com/GregMSThompson/finance-dashboard/internal/middleware"
	"github.com/GregMSThompson/finance-dashboard/internal/models"
	"github.com/GregMSThompson/finance-dashboard/internal/response"
	"github.com/GregMSThompson/finance-dashboard/internal/router"
	"github.com/GregMSThompson/finance-dashboard/internal/services"
	"github.com/GregMSThompson/finance-dashboard/internal/store"
	"github.com/GregMSThompson/finance-dashboard/pkg/logger"
)

// insightLog is satisfied by the Postgres and Firestore insight stores.
type insightLog interface {
	CreateInsight(ctx context.Context, in *models.FinancialInsight) error
	ListInsights(ctx context.Context, userID int64, category string, limit int) ([]models.FinancialInsight, error)
}

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// local runs read .env; deployed runs get real env vars
	_ = godotenv.Load()

	// bootstrap
	cfg := config.New()
	exitOnError("invalid configuration", cfg.Validate(), logger.New(cfg.LogLevel, logger.NewCloudRunHandler))
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// helpers
	tokens := crypto.NewTokens(bs.SessionSecret, cfg.SessionTTL)
	locale := format.Locale{Currency: cfg.Currency, DateFormat: cfg.DateFormat, NumberFormat: cfg.NumberFormat}

	// stores
	ustore := store.NewUserStore(bs.Pool)
	acstore := store.NewAccountStore(bs.Pool)
	txstore := store.NewTransactionStore(bs.Pool)
	bustore := store.NewBudgetStore(bs.Pool)
	gostore := store.NewGoalStore(bs.Pool)
	instore := store.NewInvoiceStore(bs.Pool)
	pastore := store.NewPaymentStore(bs.Pool)
	uow := store.NewTxManager(bs.Pool)

	var insights insightLog = store.NewInsightStore(bs.Pool)
	if bs.Firestore != nil {
		insights = store.NewFirestoreInsightStore(bs.Firestore)
	}

	// services
	auserv := services.NewAuthService(ustore, tokens)
	acserv := services.NewAccountService(acstore)
	txserv := services.NewTransactionService(txstore, acstore, uow)
	buserv := services.NewBudgetService(bustore)
	goserv := services.NewGoalService(gostore)
	inserv := services.NewInvoiceService(instore)
	paserv := services.NewPaymentService(pastore, instore)
	anserv := services.NewAnalyticsService(acstore, txstore, gostore, bustore, locale)
	asserv := services.NewAssistantService(acstore, txstore, gostore, instore, bs.Generator, insights, locale)
	foserv := services.NewForecastService(txstore, bs.Generator, insights, cfg.ForecastMonths, locale)
	isserv := services.NewInsightService(acstore, txstore, gostore, bs.Generator, insights, locale)
	noserv := services.NewNotificationService(ustore, bustore, txstore, bs.Mailer, locale)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.CookieSecure = cfg.CookieSecure
	deps.CronKey = cfg.CronKey
	deps.SessionTTL = cfg.SessionTTL
	deps.AuthSvc = auserv
	deps.AccountSvc = acserv
	deps.TransactionSvc = txserv
	deps.BudgetSvc = buserv
	deps.GoalSvc = goserv
	deps.InvoiceSvc = inserv
	deps.PaymentSvc = paserv
	deps.AnalyticsSvc = anserv
	deps.AssistantSvc = asserv
	deps.ForecastSvc = foserv
	deps.InsightSvc = isserv
	deps.NotificationSvc = noserv

	// router
	r := router.NewRouter(deps, middleware.NewMiddleware(tokens, rh))
	bs.Log.Info("server starting", "port", cfg.Port, "ai_provider", cfg.AIProvider)
	err = http.ListenAndServe(":"+cfg.Port, r)
	exitOnError("server start failed", err, bs.Log)
}
