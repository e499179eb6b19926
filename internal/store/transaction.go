package store

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/GregMSThompson/finance-dashboard/internal/dto"
	"github.com/GregMSThompson/finance-dashboard/internal/models"
)

type transactionStore struct {
	pool *pgxpool.Pool
}

func NewTransactionStore(pool *pgxpool.Pool) *transactionStore {
	return &transactionStore{pool: pool}
}

// listQuery builds the listing query. The user filter joins every account
// the user owns, not only the first one.
func listQuery(f dto.TransactionFilter) (string, args) {
	var a args
	where := []string{"a.user_id = " + a.add(f.UserID)}
	if f.AccountID != nil {
		where = append(where, "t.account_id = "+a.add(*f.AccountID))
	}
	if f.From != nil {
		where = append(where, "t.date >= "+a.add(*f.From))
	}
	if f.To != nil {
		where = append(where, "t.date <= "+a.add(*f.To))
	}
	if f.Category != nil {
		where = append(where, "t.category = "+a.add(*f.Category))
	}

	q := `SELECT t.id, t.account_id, t.description, t.amount, t.type, t.category, t.date, t.created_at
		FROM transactions t JOIN accounts a ON a.id = t.account_id
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY t.date DESC, t.id DESC`
	if f.Limit > 0 {
		q += " LIMIT " + a.add(f.Limit)
	}
	return q, a
}

func (s *transactionStore) ListTransactions(ctx context.Context, f dto.TransactionFilter) ([]models.Transaction, error) {
	q, a := listQuery(f)
	rows, err := conn(ctx, s.pool).Query(ctx, q, a...)
	if err != nil {
		return nil, mapError("list", "transactions", err)
	}
	defer rows.Close()

	out := []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.AccountID, &t.Description, &t.Amount, &t.Type, &t.Category, &t.Date, &t.CreatedAt); err != nil {
			return nil, mapError("read", "transaction", err)
		}
		out = append(out, t)
	}
	return out, mapError("list", "transactions", rows.Err())
}

// InsertTransaction stores t. Callers pair it with AccountStore.AdjustBalance
// inside one unit of work.
func (s *transactionStore) InsertTransaction(ctx context.Context, t *models.Transaction) error {
	err := conn(ctx, s.pool).QueryRow(ctx,
		`INSERT INTO transactions (account_id, description, amount, type, category, date)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`,
		t.AccountID, t.Description, t.Amount, t.Type, t.Category, t.Date,
	).Scan(&t.ID, &t.CreatedAt)
	return mapError("create", "transaction", err)
}
