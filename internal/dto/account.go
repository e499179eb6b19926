package dto

import (
	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/finance-dashboard/internal/models"
)

type CreateAccountRequest struct {
	UserID   *int64             `json:"userId,omitempty"`
	Name     string             `json:"name"`
	Type     models.AccountType `json:"type"`
	Balance  *decimal.Decimal   `json:"balance"`
	Currency string             `json:"currency"`
}

// AccountPatch lists the fields a PUT may change. Balance is not among
// them; it only moves through transactions.
type AccountPatch struct {
	Name     *string             `json:"name"`
	Type     *models.AccountType `json:"type"`
	Currency *string             `json:"currency"`
}

func (p AccountPatch) Apply(a *models.Account) {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Type != nil {
		a.Type = *p.Type
	}
	if p.Currency != nil {
		a.Currency = *p.Currency
	}
}

type AccountListResponse struct {
	Accounts []models.Account `json:"accounts"`
}

type AccountResponse struct {
	Account models.Account `json:"account"`
}
