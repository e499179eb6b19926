package store

import (
	"context"
	"strconv"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"github.com/GregMSThompson/finance-dashboard/internal/errs"
	"github.com/GregMSThompson/finance-dashboard/internal/models"
)

// firestoreInsightStore keeps the insight log in Firestore under
// users/{userId}/insights.
type firestoreInsightStore struct {
	client *firestore.Client
}

func NewFirestoreInsightStore(client *firestore.Client) *firestoreInsightStore {
	return &firestoreInsightStore{client: client}
}

func (s *firestoreInsightStore) collection(userID int64) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(strconv.FormatInt(userID, 10)).Collection("insights")
}

func (s *firestoreInsightStore) CreateInsight(ctx context.Context, in *models.FinancialInsight) error {
	if in.ID == "" {
		in.ID = uuid.NewString()
	}
	if in.CreatedAt.IsZero() {
		in.CreatedAt = time.Now().UTC()
	}

	_, err := s.collection(in.UserID).Doc(in.ID).Create(ctx, in)
	if err != nil {
		return errs.NewDatabaseError("create", "failed to save insight", err)
	}
	return nil
}

func (s *firestoreInsightStore) ListInsights(ctx context.Context, userID int64, category string, limit int) ([]models.FinancialInsight, error) {
	query := s.collection(userID).Query
	if category != "" {
		query = query.Where("category", "==", category)
	}
	query = query.OrderBy("createdAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	out := []models.FinancialInsight{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errs.NewDatabaseError("read", "failed to list insights", err)
		}
		var in models.FinancialInsight
		if err := doc.DataTo(&in); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse insight data", err)
		}
		out = append(out, in)
	}
	return out, nil
}
