package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/GregMSThompson/finance-dashboard/internal/errs"
	"github.com/GregMSThompson/finance-dashboard/internal/format"
	"github.com/GregMSThompson/finance-dashboard/internal/models"
	"github.com/GregMSThompson/finance-dashboard/pkg/helpers"
)

func assistantLedger() *fakeLedger {
	l := newFakeLedger(models.Account{ID: 1, UserID: 7, Name: "Main", Type: models.AccountChecking, Balance: dec("1234.5")})
	for i := 0; i < 60; i++ {
		l.txs = append(l.txs, models.Transaction{
			AccountID:   1,
			Description: "Coffee",
			Amount:      dec("-5"),
			Type:        models.Debit,
			Date:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
		})
	}
	return l
}

func TestAssistantAskPersistsInsight(t *testing.T) {
	gen := &fakeGenerator{text: "  You spent R$ 300,00 on coffee.  "}
	insights := &fakeInsights{}
	invoices := &stubInvoices{invoices: []models.Invoice{{Client: "ACME", Amount: dec("800"), Status: models.InvoicePending}}}
	svc := NewAssistantService(assistantLedger(), assistantLedger(), &stubGoals{}, invoices, gen, insights, format.Default)

	resp, err := svc.Ask(helpers.TestCtx(), 7, "How much did I spend on coffee?")
	if err != nil {
		t.Fatalf("Ask returned error: %v", err)
	}

	if resp.Answer != "You spent R$ 300,00 on coffee." {
		t.Fatalf("answer mismatch: %q", resp.Answer)
	}
	if len(insights.saved) != 1 || insights.saved[0].Category != models.InsightCategoryAssistant {
		t.Fatalf("assistant insight not persisted: %+v", insights.saved)
	}
	prompt := gen.requests[0].Prompt
	if !strings.Contains(prompt, "Main (checking): R$ 1.234,50") || !strings.Contains(prompt, "ACME") {
		t.Fatalf("context missing from prompt: %s", prompt)
	}
	if strings.Count(prompt, "Coffee") != assistantHistory {
		t.Fatalf("expected %d transactions in prompt, got %d", assistantHistory, strings.Count(prompt, "Coffee"))
	}
}

func TestAssistantAskGeneratorFailure(t *testing.T) {
	insights := &fakeInsights{}
	upstream := errs.NewExternalServiceError("vertex", "generate failed", true, errUpstream)
	svc := NewAssistantService(assistantLedger(), assistantLedger(), &stubGoals{}, &stubInvoices{}, &fakeGenerator{err: upstream}, insights, format.Default)

	_, err := svc.Ask(helpers.TestCtx(), 7, "Anything?")

	var ext *errs.ExternalServiceError
	if !errors.As(err, &ext) {
		t.Fatalf("expected ExternalServiceError, got %v", err)
	}
	if len(insights.saved) != 0 {
		t.Fatalf("insight persisted after failure")
	}
}

func TestAssistantAskRequiresQuestion(t *testing.T) {
	svc := NewAssistantService(assistantLedger(), assistantLedger(), &stubGoals{}, &stubInvoices{}, &fakeGenerator{}, &fakeInsights{}, format.Default)
	var ve *errs.ValidationError
	if _, err := svc.Ask(helpers.TestCtx(), 7, " "); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestTruncateRunes(t *testing.T) {
	if got := truncateRunes("orçamento", 4); got != "orça" {
		t.Fatalf("truncate mismatch: got %q", got)
	}
	if got := truncateRunes("ok", 4); got != "ok" {
		t.Fatalf("short string changed: got %q", got)
	}
}
