package bootstrap

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
)

// initFirestore opens the client backing the insight log when
// INSIGHTBACKEND=firestore.
func initFirestore(ctx context.Context, bs *Bootstrap, projectID string) error {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return fmt.Errorf("firestore: %w", err)
	}
	bs.Firestore = client
	bs.closers = append(bs.closers, client.Close)
	bs.Log.Info("insight log stored in firestore", "project", projectID)
	return nil
}
