package anthropicclient

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/GregMSThompson/finance-dashboard/internal/dto"
	"github.com/GregMSThompson/finance-dashboard/internal/errs"
)

const defaultMaxTokens = 2048

// Adapter generates text with the Anthropic Messages API.
type Adapter struct {
	client anthropic.Client
	model  string
	log    *slog.Logger
}

func NewAdapter(log *slog.Logger, apiKey, model string) *Adapter {
	return &Adapter{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
		log:    log,
	}
}

func (a *Adapter) Generate(ctx context.Context, req dto.GenerateRequest) (dto.GenerateResponse, error) {
	out := dto.GenerateResponse{}

	modelName := req.Model
	if modelName == "" {
		modelName = a.model
	}
	if modelName == "" {
		return out, fmt.Errorf("anthropic model is required")
	}
	if req.Prompt == "" {
		return out, fmt.Errorf("anthropic generate request has no content")
	}

	maxTokens := int64(defaultMaxTokens)
	if req.MaxOutputTokens != nil {
		maxTokens = int64(*req.MaxOutputTokens)
	}

	system := req.System
	if req.JSON {
		system = strings.TrimSpace(system + "\nRespond with a single JSON object and nothing else.")
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(modelName),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}
	if req.Temperature != nil {
		params.Temperature = anthropic.Float(float64(*req.Temperature))
	}

	msg, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return out, errs.NewExternalServiceError("anthropic", "create message failed", false, err)
	}

	var text strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	out.Text = text.String()

	if a.log != nil {
		a.log.Debug("anthropic message created", "model", modelName, "stop_reason", msg.StopReason)
	}
	return out, nil
}
