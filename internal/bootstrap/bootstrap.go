package bootstrap

import (
	"context"
	"errors"
	"log/slog"

	"cloud.google.com/go/firestore"
	"github.com/jackc/pgx/v5/pgxpool"

	anthropicclient "github.com/GregMSThompson/finance-dashboard/internal/client/anthropic"
	"github.com/GregMSThompson/finance-dashboard/internal/client/mail"
	vertexclient "github.com/GregMSThompson/finance-dashboard/internal/client/vertex"
	"github.com/GregMSThompson/finance-dashboard/internal/config"
	"github.com/GregMSThompson/finance-dashboard/internal/dto"
	"github.com/GregMSThompson/finance-dashboard/internal/services"
	"github.com/GregMSThompson/finance-dashboard/internal/store"
	"github.com/GregMSThompson/finance-dashboard/pkg/logger"
)

type Generator interface {
	Generate(ctx context.Context, req dto.GenerateRequest) (dto.GenerateResponse, error)
}

type Mailer interface {
	Send(ctx context.Context, to, subject, html string) error
}

type Bootstrap struct {
	Log           *slog.Logger
	Pool          *pgxpool.Pool
	Firestore     *firestore.Client
	Generator     Generator
	Mailer        Mailer
	SessionSecret string

	closers []func() error
}

func Run(cfg *config.Config) (*Bootstrap, error) {
	var err error
	applicationCtx := context.Background()
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.LogLevel, logger.NewCloudRunHandler)

	if err = store.RunMigrations(cfg.DatabaseURL); err != nil {
		return bs, err
	}
	bs.Pool, err = pgxpool.New(applicationCtx, cfg.DatabaseURL)
	if err != nil {
		return bs, err
	}
	bs.closers = append(bs.closers, func() error { bs.Pool.Close(); return nil })

	if cfg.InsightBackend == config.InsightBackendFirestore {
		if err = initFirestore(applicationCtx, bs, cfg.ProjectID); err != nil {
			return bs, err
		}
	}

	bs.SessionSecret, err = sessionSecret(applicationCtx, cfg)
	if err != nil {
		return bs, err
	}

	if bs.Generator, err = initGenerator(applicationCtx, bs, cfg); err != nil {
		return bs, err
	}
	bs.Mailer = initMailer(bs, cfg)

	return bs, nil
}

func initGenerator(ctx context.Context, bs *Bootstrap, cfg *config.Config) (Generator, error) {
	switch cfg.AIProvider {
	case config.AIProviderVertex:
		adapter, err := vertexclient.NewAdapter(ctx, bs.Log, cfg.ProjectID, cfg.Region, cfg.VertexModel)
		if err != nil {
			return nil, err
		}
		bs.closers = append(bs.closers, adapter.Close)
		return adapter, nil
	case config.AIProviderAnthropic:
		return anthropicclient.NewAdapter(bs.Log, cfg.AnthropicKey, cfg.AnthropicModel), nil
	default:
		bs.Log.Warn("no text generator configured, AI features use computed fallbacks")
		return services.UnavailableGenerator{}, nil
	}
}

// initMailer falls back to logging when no broker is reachable, so alert
// checks still run and report emailSent=false.
func initMailer(bs *Bootstrap, cfg *config.Config) Mailer {
	if cfg.AMQPURL == "" {
		return mail.LogSender{Log: bs.Log}
	}
	pub, err := mail.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPMailQueue)
	if err != nil {
		bs.Log.Error("mail publisher unavailable", "error", err)
		return mail.LogSender{Log: bs.Log}
	}
	bs.closers = append(bs.closers, pub.Close)
	return pub
}

// Close releases clients in reverse order of creation.
func (bs *Bootstrap) Close() error {
	var errList []error
	for i := len(bs.closers) - 1; i >= 0; i-- {
		if err := bs.closers[i](); err != nil {
			errList = append(errList, err)
		}
	}
	return errors.Join(errList...)
}
