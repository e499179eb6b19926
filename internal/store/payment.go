package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/GregMSThompson/finance-dashboard/internal/errs"
	"github.com/GregMSThompson/finance-dashboard/internal/models"
)

type paymentStore struct {
	pool *pgxpool.Pool
}

func NewPaymentStore(pool *pgxpool.Pool) *paymentStore {
	return &paymentStore{pool: pool}
}

func (s *paymentStore) ListPayments(ctx context.Context, userID int64) ([]models.Payment, error) {
	rows, err := conn(ctx, s.pool).Query(ctx,
		`SELECT id, user_id, invoice_id, amount, method, status, payment_date, created_at
		 FROM payments WHERE user_id = $1 ORDER BY payment_date DESC, id DESC`, userID)
	if err != nil {
		return nil, mapError("list", "payments", err)
	}
	defer rows.Close()

	out := []models.Payment{}
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.UserID, &p.InvoiceID, &p.Amount, &p.Method, &p.Status, &p.PaymentDate, &p.CreatedAt); err != nil {
			return nil, mapError("read", "payment", err)
		}
		out = append(out, p)
	}
	return out, mapError("list", "payments", rows.Err())
}

func (s *paymentStore) CreatePayment(ctx context.Context, p *models.Payment) error {
	err := conn(ctx, s.pool).QueryRow(ctx,
		`INSERT INTO payments (user_id, invoice_id, amount, method, status, payment_date)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`,
		p.UserID, p.InvoiceID, p.Amount, p.Method, p.Status, p.PaymentDate,
	).Scan(&p.ID, &p.CreatedAt)
	return mapError("create", "payment", err)
}

func (s *paymentStore) DeletePayment(ctx context.Context, userID, paymentID int64) error {
	tag, err := conn(ctx, s.pool).Exec(ctx, `DELETE FROM payments WHERE id = $1 AND user_id = $2`, paymentID, userID)
	if err != nil {
		return mapError("delete", "payment", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NewNotFoundError("payment not found")
	}
	return nil
}
