// Command alerts runs one budget-alert pass over every user and exits.
// It is meant for a scheduled job when no HTTP cron trigger is wanted.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/GregMSThompson/finance-dashboard/internal/bootstrap"
	"github.com/GregMSThompson/finance-dashboard/internal/config"
	"github.com/GregMSThompson/finance-dashboard/internal/format"
	"github.com/GregMSThompson/finance-dashboard/internal/services"
	"github.com/GregMSThompson/finance-dashboard/internal/store"
	"github.com/GregMSThompson/finance-dashboard/pkg/logger"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	_ = godotenv.Load()

	// bootstrap
	cfg := config.New()
	exitOnError("invalid configuration", cfg.Validate(), logger.New(cfg.LogLevel, logger.NewCloudRunHandler))
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	locale := format.Locale{Currency: cfg.Currency, DateFormat: cfg.DateFormat, NumberFormat: cfg.NumberFormat}

	// stores
	ustore := store.NewUserStore(bs.Pool)
	bustore := store.NewBudgetStore(bs.Pool)
	txstore := store.NewTransactionStore(bs.Pool)

	// services
	noserv := services.NewNotificationService(ustore, bustore, txstore, bs.Mailer, locale)

	ctx := logger.ToContext(context.Background(), bs.Log.With("job", "budget-alerts"))
	alerts, err := noserv.BudgetAlerts(ctx, 0, true)
	exitOnError("budget alert run failed", err, bs.Log)

	sent := 0
	for _, a := range alerts {
		if a.EmailSent {
			sent++
		}
	}
	bs.Log.Info("budget alert run finished", "alerts", len(alerts), "emails_sent", sent)
}
