package services

import (
	"context"
	"fmt"
	"html"
	"time"

	"github.com/GregMSThompson/finance-dashboard/internal/analytics"
	"github.com/GregMSThompson/finance-dashboard/internal/dto"
	"github.com/GregMSThompson/finance-dashboard/internal/format"
	"github.com/GregMSThompson/finance-dashboard/internal/models"
	"github.com/GregMSThompson/finance-dashboard/internal/rules"
	"github.com/GregMSThompson/finance-dashboard/pkg/logger"
)

type userDirectory interface {
	GetUser(ctx context.Context, userID int64) (models.User, error)
	ListUserIDs(ctx context.Context) ([]int64, error)
}

// mailer is the email collaborator. A nil error means the email was
// accepted for delivery.
type mailer interface {
	Send(ctx context.Context, to, subject, html string) error
}

type notificationService struct {
	users    userDirectory
	budgets  budgetLister
	txs      transactionLister
	mail     mailer
	locale   format.Locale
	clockNow func() time.Time
}

func NewNotificationService(users userDirectory, budgets budgetLister, txs transactionLister, mail mailer, locale format.Locale) *notificationService {
	return &notificationService{
		users:    users,
		budgets:  budgets,
		txs:      txs,
		mail:     mail,
		locale:   locale,
		clockNow: time.Now,
	}
}

// BudgetAlerts emails the owner of every active budget at or above 80%
// usage and reports each alert with whether its email went out. With
// checkAll every user is checked and userID is ignored.
func (s *notificationService) BudgetAlerts(ctx context.Context, userID int64, checkAll bool) ([]dto.BudgetAlertRecord, error) {
	ids := []int64{userID}
	if checkAll {
		var err error
		if ids, err = s.users.ListUserIDs(ctx); err != nil {
			return nil, err
		}
	}

	out := []dto.BudgetAlertRecord{}
	for _, id := range ids {
		records, err := s.userAlerts(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, records...)
	}

	logger.FromContext(ctx).Info("budget alerts checked", "users", len(ids), "alerts", len(out))
	return out, nil
}

func (s *notificationService) userAlerts(ctx context.Context, userID int64) ([]dto.BudgetAlertRecord, error) {
	now := s.clockNow()
	budgets, err := s.budgets.ListBudgets(ctx, userID, dto.BudgetFilter{From: &now, To: &now})
	if err != nil || len(budgets) == 0 {
		return nil, err
	}

	from := budgets[0].StartDate
	for _, b := range budgets[1:] {
		if b.StartDate.Before(from) {
			from = b.StartDate
		}
	}
	txs, err := s.txs.ListTransactions(ctx, dto.TransactionFilter{UserID: userID, From: &from})
	if err != nil {
		return nil, err
	}

	usage := make([]analytics.BudgetUsage, 0, len(budgets))
	for _, b := range budgets {
		usage = append(usage, analytics.NewBudgetUsage(b, analytics.BudgetSpent(b, txs, now)))
	}
	alerts := rules.BudgetAlerts(usage, s.locale)
	if len(alerts) == 0 {
		return nil, nil
	}

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	out := make([]dto.BudgetAlertRecord, 0, len(alerts))
	for _, a := range alerts {
		sent := true
		if err := s.mail.Send(ctx, user.Email, budgetAlertSubject(a), budgetAlertHTML(user, a)); err != nil {
			log.Warn("budget alert email not sent", "user_id", userID, "budget_id", a.BudgetID, "error", err)
			sent = false
		}
		out = append(out, dto.BudgetAlertRecord{
			UserID:     userID,
			BudgetID:   a.BudgetID,
			Category:   a.Category,
			Percentage: a.Percentage,
			EmailSent:  sent,
		})
	}
	return out, nil
}

func budgetAlertSubject(a rules.Alert) string {
	return fmt.Sprintf("%s: %s", a.Title, a.Category)
}

func budgetAlertHTML(u models.User, a rules.Alert) string {
	return fmt.Sprintf("<p>Hi %s,</p><p>%s</p>", html.EscapeString(u.Name), html.EscapeString(a.Description))
}
