package helpers

import (
	"context"
	"log/slog"

	"github.com/GregMSThompson/finance-dashboard/pkg/logger"
)

// TestCtx returns a context carrying a debug-level test logger, with any
// attrs (key/value pairs) already attached.
func TestCtx(attrs ...any) context.Context {
	log := slog.New(logger.NewTestHandler(slog.LevelDebug))
	if len(attrs) > 0 {
		log = log.With(attrs...)
	}
	return logger.ToContext(context.Background(), log)
}
