package ai

import "context"

// TextGenerator is the single-prompt completion contract consumed by the
// extraction and reasoning workflows. Temperature is passed through to the
// provider unchanged.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, temperature float64) (string, error)
}

// Provider is one text-generation backend in the fallback chain.
// Implement this interface to add new providers (Gemini, OpenAI, Claude, ...).
type Provider interface {
	TextGenerator

	// Name identifies the provider in logs and failure reports.
	Name() string

	// Configured reports whether credentials are present. An unconfigured
	// provider is recorded as an immediate failure, no network call is made.
	Configured() bool
}

// ProviderType names a provider implemented in this package; the Gemini
// provider lives in pkg/gemini and names itself.
type ProviderType string

const (
	ProviderOpenAI ProviderType = "openai"
	ProviderClaude ProviderType = "claude"
)
