package store

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/GregMSThompson/finance-dashboard/internal/dto"
	"github.com/GregMSThompson/finance-dashboard/internal/errs"
	"github.com/GregMSThompson/finance-dashboard/internal/models"
)

const budgetColumns = `id, user_id, category, amount, period, start_date, end_date, created_at`

type budgetStore struct {
	pool *pgxpool.Pool
}

func NewBudgetStore(pool *pgxpool.Pool) *budgetStore {
	return &budgetStore{pool: pool}
}

func scanBudget(row pgx.Row) (models.Budget, error) {
	var b models.Budget
	err := row.Scan(&b.ID, &b.UserID, &b.Category, &b.Amount, &b.Period, &b.StartDate, &b.EndDate, &b.CreatedAt)
	return b, err
}

// ListBudgets returns the user's budgets whose window overlaps the filter
// range. Open-ended budgets overlap every later date.
func (s *budgetStore) ListBudgets(ctx context.Context, userID int64, f dto.BudgetFilter) ([]models.Budget, error) {
	var a args
	where := []string{"user_id = " + a.add(userID)}
	if f.To != nil {
		where = append(where, "start_date <= "+a.add(*f.To))
	}
	if f.From != nil {
		// end_date is a calendar day, so it overlaps any instant on that day
		where = append(where, "(end_date IS NULL OR end_date >= "+a.add(models.DayAfter(*f.From).AddDate(0, 0, -1))+")")
	}

	rows, err := conn(ctx, s.pool).Query(ctx,
		`SELECT `+budgetColumns+` FROM budgets WHERE `+strings.Join(where, " AND ")+` ORDER BY start_date DESC, id`, a...)
	if err != nil {
		return nil, mapError("list", "budgets", err)
	}
	defer rows.Close()

	out := []models.Budget{}
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, mapError("read", "budget", err)
		}
		out = append(out, b)
	}
	return out, mapError("list", "budgets", rows.Err())
}

func (s *budgetStore) GetBudget(ctx context.Context, userID, budgetID int64) (models.Budget, error) {
	b, err := scanBudget(conn(ctx, s.pool).QueryRow(ctx,
		`SELECT `+budgetColumns+` FROM budgets WHERE id = $1 AND user_id = $2`, budgetID, userID))
	if err != nil {
		return models.Budget{}, mapError("read", "budget", err)
	}
	return b, nil
}

func (s *budgetStore) CreateBudget(ctx context.Context, b *models.Budget) error {
	err := conn(ctx, s.pool).QueryRow(ctx,
		`INSERT INTO budgets (user_id, category, amount, period, start_date, end_date)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`,
		b.UserID, b.Category, b.Amount, b.Period, b.StartDate, b.EndDate,
	).Scan(&b.ID, &b.CreatedAt)
	return mapError("create", "budget", err)
}

func (s *budgetStore) UpdateBudget(ctx context.Context, b *models.Budget) error {
	tag, err := conn(ctx, s.pool).Exec(ctx,
		`UPDATE budgets SET category = $1, amount = $2, period = $3, start_date = $4, end_date = $5
		 WHERE id = $6 AND user_id = $7`,
		b.Category, b.Amount, b.Period, b.StartDate, b.EndDate, b.ID, b.UserID)
	if err != nil {
		return mapError("update", "budget", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NewNotFoundError("budget not found")
	}
	return nil
}

func (s *budgetStore) DeleteBudget(ctx context.Context, userID, budgetID int64) error {
	tag, err := conn(ctx, s.pool).Exec(ctx, `DELETE FROM budgets WHERE id = $1 AND user_id = $2`, budgetID, userID)
	if err != nil {
		return mapError("delete", "budget", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NewNotFoundError("budget not found")
	}
	return nil
}
