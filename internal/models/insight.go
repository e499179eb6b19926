package models

import "time"

const (
	InsightCategoryForecast  = "forecast"
	InsightCategoryAssistant = "assistant"
	InsightCategoryGeneral   = "general"
)

// FinancialInsight is an append-only record of generated text.
type FinancialInsight struct {
	ID        string    `firestore:"id" json:"id"`
	UserID    int64     `firestore:"userId" json:"user_id"`
	Title     string    `firestore:"title" json:"title"`
	Content   string    `firestore:"content" json:"content"`
	Category  string    `firestore:"category" json:"category"`
	CreatedAt time.Time `firestore:"createdAt" json:"created_at"`
}
