package ai

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// ProviderFailure records why one provider in the chain did not produce text.
type ProviderFailure struct {
	Provider string
	Err      error
}

// ExhaustionError is returned when every configured provider in the chain
// failed. It carries the full per-provider failure list so callers see the
// whole chain, not just the last error.
type ExhaustionError struct {
	Failures []ProviderFailure
}

func (e *ExhaustionError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, fmt.Sprintf("%s: %v", f.Provider, f.Err))
	}
	return "all text generation providers failed: " + strings.Join(parts, "; ")
}

// FallbackChain tries providers in a fixed priority order until one returns
// text. There is no retry of the whole chain and no backoff: a provider either
// answers or the chain moves on.
type FallbackChain struct {
	providers []Provider
}

// NewFallbackChain creates a chain that attempts providers in the given order.
func NewFallbackChain(providers ...Provider) *FallbackChain {
	return &FallbackChain{providers: providers}
}

// Generate implements TextGenerator.
func (c *FallbackChain) Generate(ctx context.Context, prompt string, temperature float64) (string, error) {
	var failures []ProviderFailure

	for _, p := range c.providers {
		if !p.Configured() {
			log.Printf("[AI] %s not configured, skipping", p.Name())
			failures = append(failures, ProviderFailure{
				Provider: p.Name(),
				Err:      fmt.Errorf("%s API key not configured", p.Name()),
			})
			continue
		}

		text, err := p.Generate(ctx, prompt, temperature)
		if err == nil {
			return text, nil
		}

		log.Printf("[AI] %s failed: %v, trying next provider", p.Name(), err)
		failures = append(failures, ProviderFailure{Provider: p.Name(), Err: err})
	}

	return "", &ExhaustionError{Failures: failures}
}
