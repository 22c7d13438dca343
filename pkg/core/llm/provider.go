package llm

import (
	"context"
)

// Provider is the interface for all LLM providers.
type Provider interface {
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
}

// DefaultModel is used when neither the provider nor LANGEXTRACT_MODEL_ID names one.
const DefaultModel = "gemini-2.5-flash"
