package dto

// GenerateRequest is a single-turn prompt for a text generator.
type GenerateRequest struct {
	Model           string
	System          string
	Prompt          string
	Temperature     *float32
	MaxOutputTokens *int32
	// JSON asks the provider for a JSON-only answer where it supports it.
	JSON bool
}

type GenerateResponse struct {
	Text string
}
