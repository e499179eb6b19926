package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/GregMSThompson/finance-dashboard/internal/dto"
	"github.com/GregMSThompson/finance-dashboard/internal/errs"
	"github.com/GregMSThompson/finance-dashboard/internal/format"
	"github.com/GregMSThompson/finance-dashboard/internal/models"
	"github.com/GregMSThompson/finance-dashboard/pkg/logger"
)

const (
	assistantHistory  = 50
	insightTitleRunes = 80
)

type invoiceLister interface {
	ListInvoices(ctx context.Context, userID int64, status *models.InvoiceStatus) ([]models.Invoice, error)
}

type assistantService struct {
	accounts accountLister
	txs      transactionLister
	goals    goalLister
	invoices invoiceLister
	gen      textGenerator
	insights insightStore
	locale   format.Locale
	clockNow func() time.Time
}

func NewAssistantService(accounts accountLister, txs transactionLister, goals goalLister, invoices invoiceLister, gen textGenerator, insights insightStore, locale format.Locale) *assistantService {
	return &assistantService{
		accounts: accounts,
		txs:      txs,
		goals:    goals,
		invoices: invoices,
		gen:      gen,
		insights: insights,
		locale:   locale,
		clockNow: time.Now,
	}
}

// Ask answers a question about the user's finances. The answer is logged
// as an assistant insight before it is returned.
func (s *assistantService) Ask(ctx context.Context, userID int64, question string) (dto.AssistantResponse, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return dto.AssistantResponse{}, errs.NewValidationError("question is required")
	}

	accounts, err := s.accounts.ListAccounts(ctx, userID)
	if err != nil {
		return dto.AssistantResponse{}, err
	}
	txs, err := s.txs.ListTransactions(ctx, dto.TransactionFilter{UserID: userID, Limit: assistantHistory})
	if err != nil {
		return dto.AssistantResponse{}, err
	}
	goals, err := s.goals.ListGoals(ctx, userID)
	if err != nil {
		return dto.AssistantResponse{}, err
	}
	invoices, err := s.invoices.ListInvoices(ctx, userID, nil)
	if err != nil {
		return dto.AssistantResponse{}, err
	}

	resp, err := s.gen.Generate(ctx, dto.GenerateRequest{
		System: assistantSystemPrompt(s.clockNow()),
		Prompt: s.contextPrompt(accounts, txs, goals, invoices) + "\nQuestion: " + question,
	})
	if err != nil {
		return dto.AssistantResponse{}, err
	}
	answer := strings.TrimSpace(resp.Text)

	if err := s.insights.CreateInsight(ctx, &models.FinancialInsight{
		UserID:   userID,
		Title:    truncateRunes(question, insightTitleRunes),
		Content:  answer,
		Category: models.InsightCategoryAssistant,
	}); err != nil {
		return dto.AssistantResponse{}, err
	}

	logger.FromContext(ctx).Info("assistant answered", "transactions", len(txs))
	return dto.AssistantResponse{Answer: answer}, nil
}

func assistantSystemPrompt(now time.Time) string {
	return "You are a personal finance assistant. Answer using only the data provided about the user. " +
		"Never invent accounts, transactions or amounts. Keep answers short and practical. " +
		"Today is " + now.Format("2006-01-02") + "."
}

func (s *assistantService) contextPrompt(accounts []models.Account, txs []models.Transaction, goals []models.SavingsGoal, invoices []models.Invoice) string {
	var b strings.Builder

	b.WriteString("Accounts:\n")
	for _, a := range accounts {
		fmt.Fprintf(&b, "- %s (%s): %s\n", a.Name, a.Type, s.locale.Money(a.Balance))
	}

	fmt.Fprintf(&b, "Latest %d transactions:\n", len(txs))
	for _, t := range txs {
		fmt.Fprintf(&b, "- %s %s [%s] %s\n", s.locale.Date(t.Date), t.Description, t.CategoryOrDefault(), s.locale.Money(t.Amount))
	}

	b.WriteString("Savings goals:\n")
	for _, g := range goals {
		fmt.Fprintf(&b, "- %s: %s of %s\n", g.Name, s.locale.Money(g.CurrentAmount), s.locale.Money(g.TargetAmount))
	}

	b.WriteString("Invoices:\n")
	for _, inv := range invoices {
		fmt.Fprintf(&b, "- %s: %s due %s (%s)\n", inv.Client, s.locale.Money(inv.Amount), s.locale.Date(inv.DueDate), inv.Status)
	}
	return b.String()
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
