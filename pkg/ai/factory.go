package ai

import (
	"log"

	"learnlog-backend/pkg/gemini"
)

// Config holds credentials for every provider in the chain.
type Config struct {
	GeminiAPIKey string
	OpenAIAPIKey string
	ClaudeAPIKey string
}

// NewTextGenerator builds the fallback chain in its fixed priority order:
// Gemini first, then OpenAI, then Claude. Providers without credentials stay
// in the chain and fail immediately when reached.
func NewTextGenerator(cfg Config) *FallbackChain {
	if cfg.GeminiAPIKey == "" && cfg.OpenAIAPIKey == "" && cfg.ClaudeAPIKey == "" {
		log.Println("[AI] Warning: no text generation provider configured, all generation calls will fail")
	}

	return NewFallbackChain(
		gemini.NewGenerationService(cfg.GeminiAPIKey),
		NewOpenAIService(cfg.OpenAIAPIKey),
		NewClaudeService(cfg.ClaudeAPIKey),
	)
}
