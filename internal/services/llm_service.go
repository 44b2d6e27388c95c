package services

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// Raw scraped pages can be huge; cap what we feed the model.
const maxPromptInput = 20000

// LLMService wraps the Gemini client. The generation service gives no schema
// guarantee; callers treat the reply as an opaque string.
type LLMService struct {
	Client llms.Model
}

func NewLLMService(ctx context.Context, apiKey, model string) (*LLMService, error) {
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &LLMService{Client: llm}, nil
}

func (s *LLMService) Generate(ctx context.Context, prompt string) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, s.Client, prompt)
}
