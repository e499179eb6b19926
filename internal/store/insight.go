package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/GregMSThompson/finance-dashboard/internal/models"
)

type insightStore struct {
	pool *pgxpool.Pool
}

func NewInsightStore(pool *pgxpool.Pool) *insightStore {
	return &insightStore{pool: pool}
}

func (s *insightStore) CreateInsight(ctx context.Context, in *models.FinancialInsight) error {
	if in.ID == "" {
		in.ID = uuid.NewString()
	}
	if in.CreatedAt.IsZero() {
		in.CreatedAt = time.Now().UTC()
	}
	_, err := conn(ctx, s.pool).Exec(ctx,
		`INSERT INTO financial_insights (id, user_id, title, content, category, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		in.ID, in.UserID, in.Title, in.Content, in.Category, in.CreatedAt)
	return mapError("create", "insight", err)
}

// ListInsights returns the newest insights first. An empty category
// matches all.
func (s *insightStore) ListInsights(ctx context.Context, userID int64, category string, limit int) ([]models.FinancialInsight, error) {
	q := `SELECT id, user_id, title, content, category, created_at FROM financial_insights WHERE user_id = $1`
	a := args{userID}
	if category != "" {
		q += " AND category = " + a.add(category)
	}
	q += " ORDER BY created_at DESC"
	if limit > 0 {
		q += " LIMIT " + a.add(limit)
	}

	rows, err := conn(ctx, s.pool).Query(ctx, q, a...)
	if err != nil {
		return nil, mapError("list", "insights", err)
	}
	defer rows.Close()

	out := []models.FinancialInsight{}
	for rows.Next() {
		var in models.FinancialInsight
		var id uuid.UUID
		if err := rows.Scan(&id, &in.UserID, &in.Title, &in.Content, &in.Category, &in.CreatedAt); err != nil {
			return nil, mapError("read", "insight", err)
		}
		in.ID = id.String()
		out = append(out, in)
	}
	return out, mapError("list", "insights", rows.Err())
}
