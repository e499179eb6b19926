package services

import (
	"context"
	"errors"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/finance-dashboard/internal/dto"
	"github.com/GregMSThompson/finance-dashboard/internal/errs"
	"github.com/GregMSThompson/finance-dashboard/internal/models"
)

// fakeLedger keeps accounts and transactions in memory. WithinTx snapshots
// both and restores them when fn fails.
type fakeLedger struct {
	accounts  map[int64]models.Account
	txs       []models.Transaction
	nextTxID  int64
	insertErr error
	adjustErr error
	txCalls   int
}

func newFakeLedger(accounts ...models.Account) *fakeLedger {
	l := &fakeLedger{accounts: map[int64]models.Account{}}
	for _, a := range accounts {
		l.accounts[a.ID] = a
	}
	return l
}

func (l *fakeLedger) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	l.txCalls++
	accounts := make(map[int64]models.Account, len(l.accounts))
	for k, v := range l.accounts {
		accounts[k] = v
	}
	txs := append([]models.Transaction(nil), l.txs...)

	if err := fn(ctx); err != nil {
		l.accounts = accounts
		l.txs = txs
		return err
	}
	return nil
}

func (l *fakeLedger) InsertTransaction(_ context.Context, t *models.Transaction) error {
	if l.insertErr != nil {
		return l.insertErr
	}
	l.nextTxID++
	t.ID = l.nextTxID
	l.txs = append(l.txs, *t)
	return nil
}

func (l *fakeLedger) ListTransactions(_ context.Context, f dto.TransactionFilter) ([]models.Transaction, error) {
	out := []models.Transaction{}
	for _, t := range l.txs {
		a, ok := l.accounts[t.AccountID]
		if !ok || a.UserID != f.UserID {
			continue
		}
		if f.AccountID != nil && t.AccountID != *f.AccountID {
			continue
		}
		if f.From != nil && t.Date.Before(*f.From) {
			continue
		}
		if f.To != nil && t.Date.After(*f.To) {
			continue
		}
		if f.Category != nil && (t.Category == nil || *t.Category != *f.Category) {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (l *fakeLedger) AdjustBalance(_ context.Context, userID, accountID int64, delta decimal.Decimal) (decimal.Decimal, error) {
	if l.adjustErr != nil {
		return decimal.Zero, l.adjustErr
	}
	a, ok := l.accounts[accountID]
	if !ok || a.UserID != userID {
		return decimal.Zero, errs.NewNotFoundError("account not found")
	}
	a.Balance = a.Balance.Add(delta)
	l.accounts[accountID] = a
	return a.Balance, nil
}

func (l *fakeLedger) ListAccounts(_ context.Context, userID int64) ([]models.Account, error) {
	out := []models.Account{}
	for _, a := range l.accounts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type stubGoals struct {
	goals []models.SavingsGoal
	err   error
}

func (s *stubGoals) ListGoals(context.Context, int64) ([]models.SavingsGoal, error) {
	return s.goals, s.err
}

type stubBudgets struct {
	budgets []models.Budget
	filter  dto.BudgetFilter
}

func (s *stubBudgets) ListBudgets(_ context.Context, _ int64, f dto.BudgetFilter) ([]models.Budget, error) {
	s.filter = f
	return s.budgets, nil
}

type stubInvoices struct {
	invoices []models.Invoice
}

func (s *stubInvoices) ListInvoices(context.Context, int64, *models.InvoiceStatus) ([]models.Invoice, error) {
	return s.invoices, nil
}

type fakeGenerator struct {
	text     string
	err      error
	requests []dto.GenerateRequest
}

func (f *fakeGenerator) Generate(_ context.Context, req dto.GenerateRequest) (dto.GenerateResponse, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return dto.GenerateResponse{}, f.err
	}
	return dto.GenerateResponse{Text: f.text}, nil
}

type fakeInsights struct {
	saved []models.FinancialInsight
	err   error
}

func (f *fakeInsights) CreateInsight(_ context.Context, in *models.FinancialInsight) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, *in)
	return nil
}

func (f *fakeInsights) ListInsights(_ context.Context, _ int64, category string, limit int) ([]models.FinancialInsight, error) {
	out := []models.FinancialInsight{}
	for _, in := range f.saved {
		if category == "" || in.Category == category {
			out = append(out, in)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

var errUpstream = errors.New("upstream unavailable")

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
