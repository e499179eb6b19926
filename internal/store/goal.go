package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/GregMSThompson/finance-dashboard/internal/errs"
	"github.com/GregMSThompson/finance-dashboard/internal/models"
)

const goalColumns = `id, user_id, name, target_amount, current_amount, target_date, created_at`

type goalStore struct {
	pool *pgxpool.Pool
}

func NewGoalStore(pool *pgxpool.Pool) *goalStore {
	return &goalStore{pool: pool}
}

func scanGoal(row pgx.Row) (models.SavingsGoal, error) {
	var g models.SavingsGoal
	err := row.Scan(&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.CurrentAmount, &g.TargetDate, &g.CreatedAt)
	return g, err
}

func (s *goalStore) ListGoals(ctx context.Context, userID int64) ([]models.SavingsGoal, error) {
	rows, err := conn(ctx, s.pool).Query(ctx,
		`SELECT `+goalColumns+` FROM savings_goals WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, mapError("list", "savings goals", err)
	}
	defer rows.Close()

	out := []models.SavingsGoal{}
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, mapError("read", "savings goal", err)
		}
		out = append(out, g)
	}
	return out, mapError("list", "savings goals", rows.Err())
}

func (s *goalStore) GetGoal(ctx context.Context, userID, goalID int64) (models.SavingsGoal, error) {
	g, err := scanGoal(conn(ctx, s.pool).QueryRow(ctx,
		`SELECT `+goalColumns+` FROM savings_goals WHERE id = $1 AND user_id = $2`, goalID, userID))
	if err != nil {
		return models.SavingsGoal{}, mapError("read", "savings goal", err)
	}
	return g, nil
}

func (s *goalStore) CreateGoal(ctx context.Context, g *models.SavingsGoal) error {
	err := conn(ctx, s.pool).QueryRow(ctx,
		`INSERT INTO savings_goals (user_id, name, target_amount, current_amount, target_date)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`,
		g.UserID, g.Name, g.TargetAmount, g.CurrentAmount, g.TargetDate,
	).Scan(&g.ID, &g.CreatedAt)
	return mapError("create", "savings goal", err)
}

func (s *goalStore) UpdateGoal(ctx context.Context, g *models.SavingsGoal) error {
	tag, err := conn(ctx, s.pool).Exec(ctx,
		`UPDATE savings_goals SET name = $1, target_amount = $2, current_amount = $3, target_date = $4
		 WHERE id = $5 AND user_id = $6`,
		g.Name, g.TargetAmount, g.CurrentAmount, g.TargetDate, g.ID, g.UserID)
	if err != nil {
		return mapError("update", "savings goal", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NewNotFoundError("savings goal not found")
	}
	return nil
}

func (s *goalStore) DeleteGoal(ctx context.Context, userID, goalID int64) error {
	tag, err := conn(ctx, s.pool).Exec(ctx, `DELETE FROM savings_goals WHERE id = $1 AND user_id = $2`, goalID, userID)
	if err != nil {
		return mapError("delete", "savings goal", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NewNotFoundError("savings goal not found")
	}
	return nil
}
