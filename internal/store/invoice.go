package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/GregMSThompson/finance-dashboard/internal/errs"
	"github.com/GregMSThompson/finance-dashboard/internal/models"
)

const invoiceColumns = `id, user_id, client, amount, issue_date, due_date, status, created_at`

type invoiceStore struct {
	pool *pgxpool.Pool
}

func NewInvoiceStore(pool *pgxpool.Pool) *invoiceStore {
	return &invoiceStore{pool: pool}
}

func scanInvoice(row pgx.Row) (models.Invoice, error) {
	var inv models.Invoice
	err := row.Scan(&inv.ID, &inv.UserID, &inv.Client, &inv.Amount, &inv.IssueDate, &inv.DueDate, &inv.Status, &inv.CreatedAt)
	return inv, err
}

// ListInvoices returns the user's invoices, optionally only those with status.
func (s *invoiceStore) ListInvoices(ctx context.Context, userID int64, status *models.InvoiceStatus) ([]models.Invoice, error) {
	q := `SELECT ` + invoiceColumns + ` FROM invoices WHERE user_id = $1`
	a := args{userID}
	if status != nil {
		q += " AND status = " + a.add(*status)
	}
	q += " ORDER BY due_date DESC, id"

	rows, err := conn(ctx, s.pool).Query(ctx, q, a...)
	if err != nil {
		return nil, mapError("list", "invoices", err)
	}
	defer rows.Close()

	out := []models.Invoice{}
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, mapError("read", "invoice", err)
		}
		out = append(out, inv)
	}
	return out, mapError("list", "invoices", rows.Err())
}

func (s *invoiceStore) GetInvoice(ctx context.Context, userID, invoiceID int64) (models.Invoice, error) {
	inv, err := scanInvoice(conn(ctx, s.pool).QueryRow(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE id = $1 AND user_id = $2`, invoiceID, userID))
	if err != nil {
		return models.Invoice{}, mapError("read", "invoice", err)
	}
	return inv, nil
}

func (s *invoiceStore) CreateInvoice(ctx context.Context, inv *models.Invoice) error {
	err := conn(ctx, s.pool).QueryRow(ctx,
		`INSERT INTO invoices (user_id, client, amount, issue_date, due_date, status)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`,
		inv.UserID, inv.Client, inv.Amount, inv.IssueDate, inv.DueDate, inv.Status,
	).Scan(&inv.ID, &inv.CreatedAt)
	return mapError("create", "invoice", err)
}

func (s *invoiceStore) UpdateInvoice(ctx context.Context, inv *models.Invoice) error {
	tag, err := conn(ctx, s.pool).Exec(ctx,
		`UPDATE invoices SET client = $1, amount = $2, issue_date = $3, due_date = $4, status = $5
		 WHERE id = $6 AND user_id = $7`,
		inv.Client, inv.Amount, inv.IssueDate, inv.DueDate, inv.Status, inv.ID, inv.UserID)
	if err != nil {
		return mapError("update", "invoice", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NewNotFoundError("invoice not found")
	}
	return nil
}

func (s *invoiceStore) DeleteInvoice(ctx context.Context, userID, invoiceID int64) error {
	tag, err := conn(ctx, s.pool).Exec(ctx, `DELETE FROM invoices WHERE id = $1 AND user_id = $2`, invoiceID, userID)
	if err != nil {
		return mapError("delete", "invoice", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NewNotFoundError("invoice not found")
	}
	return nil
}
