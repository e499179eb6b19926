package store

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/GregMSThompson/finance-dashboard/internal/models"
)

const userColumns = `id, email, name, password_hash, created_at`

type userStore struct {
	pool *pgxpool.Pool
}

func NewUserStore(pool *pgxpool.Pool) *userStore {
	return &userStore{pool: pool}
}

func scanUser(row pgx.Row) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt)
	return u, err
}

// CreateUser stores u with a lower-cased email. A duplicate email is an
// AlreadyExistsError.
func (s *userStore) CreateUser(ctx context.Context, u *models.User) error {
	u.Email = strings.ToLower(u.Email)
	err := conn(ctx, s.pool).QueryRow(ctx,
		`INSERT INTO users (email, name, password_hash) VALUES ($1, $2, $3) RETURNING id, created_at`,
		u.Email, u.Name, u.PasswordHash,
	).Scan(&u.ID, &u.CreatedAt)
	return mapError("create", "user", err)
}

func (s *userStore) GetUser(ctx context.Context, userID int64) (models.User, error) {
	u, err := scanUser(conn(ctx, s.pool).QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, userID))
	if err != nil {
		return models.User{}, mapError("read", "user", err)
	}
	return u, nil
}

func (s *userStore) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	u, err := scanUser(conn(ctx, s.pool).QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, strings.ToLower(email)))
	if err != nil {
		return models.User{}, mapError("read", "user", err)
	}
	return u, nil
}

// ListUserIDs returns every user id, oldest first.
func (s *userStore) ListUserIDs(ctx context.Context) ([]int64, error) {
	rows, err := conn(ctx, s.pool).Query(ctx, `SELECT id FROM users ORDER BY id`)
	if err != nil {
		return nil, mapError("list", "users", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, mapError("list", "users", err)
	}
	return ids, nil
}
