package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/finance-dashboard/internal/models"
)

type CreateBudgetRequest struct {
	UserID    *int64              `json:"userId,omitempty"`
	Category  string              `json:"category"`
	Amount    *decimal.Decimal    `json:"amount"`
	Period    models.BudgetPeriod `json:"period"`
	StartDate *Date               `json:"start_date"`
	EndDate   *Date               `json:"end_date"`
}

// BudgetPatch applies only the fields that are present. ClearEndDate
// reopens a budget and wins over EndDate.
type BudgetPatch struct {
	Category     *string              `json:"category"`
	Amount       *decimal.Decimal     `json:"amount"`
	Period       *models.BudgetPeriod `json:"period"`
	StartDate    *Date                `json:"start_date"`
	EndDate      *Date                `json:"end_date"`
	ClearEndDate bool                 `json:"clear_end_date"`
}

func (p BudgetPatch) Apply(b *models.Budget) {
	if p.Category != nil {
		b.Category = *p.Category
	}
	if p.Amount != nil {
		b.Amount = *p.Amount
	}
	if p.Period != nil {
		b.Period = *p.Period
	}
	if p.StartDate != nil {
		b.StartDate = p.StartDate.Time
	}
	switch {
	case p.ClearEndDate:
		b.EndDate = nil
	case p.EndDate != nil:
		b.EndDate = p.EndDate.Ptr()
	}
}

// BudgetFilter keeps budgets whose window overlaps [From, To].
type BudgetFilter struct {
	From *time.Time
	To   *time.Time
}

type BudgetListResponse struct {
	Budgets []models.Budget `json:"budgets"`
}
