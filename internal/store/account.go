package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/finance-dashboard/internal/errs"
	"github.com/GregMSThompson/finance-dashboard/internal/models"
)

const accountColumns = `id, user_id, name, type, balance, currency, created_at`

type accountStore struct {
	pool *pgxpool.Pool
}

func NewAccountStore(pool *pgxpool.Pool) *accountStore {
	return &accountStore{pool: pool}
}

func scanAccount(row pgx.Row) (models.Account, error) {
	var a models.Account
	err := row.Scan(&a.ID, &a.UserID, &a.Name, &a.Type, &a.Balance, &a.Currency, &a.CreatedAt)
	return a, err
}

func (s *accountStore) ListAccounts(ctx context.Context, userID int64) ([]models.Account, error) {
	rows, err := conn(ctx, s.pool).Query(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, mapError("list", "accounts", err)
	}
	defer rows.Close()

	out := []models.Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, mapError("read", "account", err)
		}
		out = append(out, a)
	}
	return out, mapError("list", "accounts", rows.Err())
}

func (s *accountStore) GetAccount(ctx context.Context, userID, accountID int64) (models.Account, error) {
	a, err := scanAccount(conn(ctx, s.pool).QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1 AND user_id = $2`, accountID, userID))
	if err != nil {
		return models.Account{}, mapError("read", "account", err)
	}
	return a, nil
}

func (s *accountStore) CreateAccount(ctx context.Context, a *models.Account) error {
	err := conn(ctx, s.pool).QueryRow(ctx,
		`INSERT INTO accounts (user_id, name, type, balance, currency)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`,
		a.UserID, a.Name, a.Type, a.Balance, a.Currency,
	).Scan(&a.ID, &a.CreatedAt)
	return mapError("create", "account", err)
}

func (s *accountStore) UpdateAccount(ctx context.Context, a *models.Account) error {
	tag, err := conn(ctx, s.pool).Exec(ctx,
		`UPDATE accounts SET name = $1, type = $2, currency = $3 WHERE id = $4 AND user_id = $5`,
		a.Name, a.Type, a.Currency, a.ID, a.UserID)
	if err != nil {
		return mapError("update", "account", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NewNotFoundError("account not found")
	}
	return nil
}

// DeleteAccount removes the account; its transactions go with it.
func (s *accountStore) DeleteAccount(ctx context.Context, userID, accountID int64) error {
	tag, err := conn(ctx, s.pool).Exec(ctx,
		`DELETE FROM accounts WHERE id = $1 AND user_id = $2`, accountID, userID)
	if err != nil {
		return mapError("delete", "account", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NewNotFoundError("account not found")
	}
	return nil
}

// AdjustBalance adds delta to the balance of an account owned by userID
// and returns the new balance.
func (s *accountStore) AdjustBalance(ctx context.Context, userID, accountID int64, delta decimal.Decimal) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := conn(ctx, s.pool).QueryRow(ctx,
		`UPDATE accounts SET balance = balance + $1 WHERE id = $2 AND user_id = $3 RETURNING balance`,
		delta, accountID, userID,
	).Scan(&balance)
	if err != nil {
		return decimal.Zero, mapError("update", "account", err)
	}
	return balance, nil
}
