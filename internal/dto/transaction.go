package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/finance-dashboard/internal/models"
)

// TransactionFilter narrows a transaction listing. UserID is always set
// and spans every account the user owns.
type TransactionFilter struct {
	UserID    int64
	AccountID *int64
	From      *time.Time
	To        *time.Time
	Category  *string
	Limit     int
}

type CreateTransactionRequest struct {
	UserID      *int64                 `json:"userId,omitempty"`
	AccountID   int64                  `json:"account_id"`
	Description string                 `json:"description"`
	Amount      *decimal.Decimal       `json:"amount"`
	Type        models.TransactionType `json:"type"`
	Category    *string                `json:"category"`
	Date        *Date                  `json:"date"`
}

type TransactionListResponse struct {
	Transactions []models.Transaction `json:"transactions"`
}

type TransactionCreatedResponse struct {
	Transaction models.Transaction `json:"transaction"`
	Balance     decimal.Decimal    `json:"balance"`
}
