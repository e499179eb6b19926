package store

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/finance-dashboard/internal/dto"
	"github.com/GregMSThompson/finance-dashboard/internal/errs"
	"github.com/GregMSThompson/finance-dashboard/internal/models"
)

func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("DATABASEURL_TEST")
	if url == "" {
		t.Skip("DATABASEURL_TEST not set")
	}
	if err := RunMigrations(url); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	pool, err := pgxpool.New(context.Background(), url)
	if err != nil {
		t.Fatalf("pool: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func seedAccount(t *testing.T, ctx context.Context, pool *pgxpool.Pool, balance string) (models.User, models.Account) {
	t.Helper()
	u := models.User{Email: "ledger-" + time.Now().Format("150405.000000000") + "@example.com", PasswordHash: "x"}
	if err := NewUserStore(pool).CreateUser(ctx, &u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	a := models.Account{UserID: u.ID, Name: "Main", Type: models.AccountChecking, Balance: decimal.RequireFromString(balance), Currency: "BRL"}
	if err := NewAccountStore(pool).CreateAccount(ctx, &a); err != nil {
		t.Fatalf("seed account: %v", err)
	}
	return u, a
}

func TestWithinTxCommitsTransactionAndBalance(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	u, a := seedAccount(t, ctx, pool, "100")
	accounts, txs := NewAccountStore(pool), NewTransactionStore(pool)

	err := NewTxManager(pool).WithinTx(ctx, func(ctx context.Context) error {
		tx := models.Transaction{AccountID: a.ID, Description: "groceries", Amount: decimal.NewFromInt(-40), Type: models.Debit, Date: time.Now()}
		if err := txs.InsertTransaction(ctx, &tx); err != nil {
			return err
		}
		_, err := accounts.AdjustBalance(ctx, u.ID, a.ID, tx.Amount)
		return err
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := accounts.GetAccount(ctx, u.ID, a.ID)
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if !got.Balance.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("balance mismatch: got %s", got.Balance)
	}
	list, err := txs.ListTransactions(ctx, dto.TransactionFilter{UserID: u.ID})
	if err != nil || len(list) != 1 {
		t.Fatalf("expected one transaction, got %d (%v)", len(list), err)
	}
}

func TestWithinTxRollsBackOnBalanceFailure(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	u, a := seedAccount(t, ctx, pool, "100")
	accounts, txs := NewAccountStore(pool), NewTransactionStore(pool)
	failure := errors.New("balance update failed")

	err := NewTxManager(pool).WithinTx(ctx, func(ctx context.Context) error {
		tx := models.Transaction{AccountID: a.ID, Description: "groceries", Amount: decimal.NewFromInt(-40), Type: models.Debit, Date: time.Now()}
		if err := txs.InsertTransaction(ctx, &tx); err != nil {
			return err
		}
		return failure
	})
	var dbErr *errs.DatabaseError
	if !errors.As(err, &dbErr) || !errors.Is(err, failure) {
		t.Fatalf("expected wrapped failure, got %v", err)
	}

	got, _ := accounts.GetAccount(ctx, u.ID, a.ID)
	if !got.Balance.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("balance should be untouched, got %s", got.Balance)
	}
	list, _ := txs.ListTransactions(ctx, dto.TransactionFilter{UserID: u.ID})
	if len(list) != 0 {
		t.Fatalf("transaction row should be rolled back, got %d", len(list))
	}
}
