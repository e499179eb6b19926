package dto

import "github.com/shopspring/decimal"

// BudgetAlertRecord reports one budget at or above the alert threshold
// and whether the email about it was handed to the mail service.
type BudgetAlertRecord struct {
	UserID     int64           `json:"userId"`
	BudgetID   int64           `json:"budgetId"`
	Category   string          `json:"category"`
	Percentage decimal.Decimal `json:"percentage"`
	EmailSent  bool            `json:"emailSent"`
}

type BudgetAlertsResponse struct {
	Alerts []BudgetAlertRecord `json:"alerts"`
}

// EmailMessage is the job published to the mail service.
type EmailMessage struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}
