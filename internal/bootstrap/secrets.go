package bootstrap

import (
	"context"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"

	"github.com/GregMSThompson/finance-dashboard/internal/config"
	"github.com/GregMSThompson/finance-dashboard/internal/store"
)

// sessionSecret prefers SESSIONSECRETNAME in Secret Manager over the
// plain SESSIONSECRET value.
func sessionSecret(ctx context.Context, cfg *config.Config) (string, error) {
	if cfg.SessionSecretName == "" {
		return cfg.SessionSecret, nil
	}
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return "", err
	}
	defer client.Close()

	return store.NewSecretsStore(client, cfg.ProjectID).GetSecret(ctx, cfg.SessionSecretName)
}
