package services

import (
	"context"
	"strings"

	"github.com/GregMSThompson/finance-dashboard/internal/dto"
	"github.com/GregMSThompson/finance-dashboard/internal/errs"
	"github.com/GregMSThompson/finance-dashboard/internal/models"
)

// textGenerator is the external text-generation collaborator. Vertex and
// Anthropic adapters both satisfy it.
type textGenerator interface {
	Generate(ctx context.Context, req dto.GenerateRequest) (dto.GenerateResponse, error)
}

type insightStore interface {
	CreateInsight(ctx context.Context, in *models.FinancialInsight) error
	ListInsights(ctx context.Context, userID int64, category string, limit int) ([]models.FinancialInsight, error)
}

// UnavailableGenerator is used when no text generator is configured.
// Every call fails, so callers fall back to their computed answers.
type UnavailableGenerator struct{}

func (UnavailableGenerator) Generate(context.Context, dto.GenerateRequest) (dto.GenerateResponse, error) {
	return dto.GenerateResponse{}, errs.NewExternalServiceError("generator", "text generation is not configured", false, nil)
}

// stripFences removes a surrounding Markdown code fence, with or without
// a language tag, from a generated answer.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
