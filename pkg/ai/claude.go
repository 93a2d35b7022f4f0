package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const (
	claudeModel     = "claude-3-opus-20240229"
	claudeMaxTokens = 2048
)

// ClaudeService implements Provider using the Anthropic messages API.
type ClaudeService struct {
	apiKey string
}

// NewClaudeService creates a new Claude service
func NewClaudeService(apiKey string) *ClaudeService {
	return &ClaudeService{apiKey: apiKey}
}

func (s *ClaudeService) Name() string { return string(ProviderClaude) }

func (s *ClaudeService) Configured() bool { return s.apiKey != "" }

// Generate implements Provider
func (s *ClaudeService) Generate(ctx context.Context, prompt string, temperature float64) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("Claude API key not configured")
	}

	payload := map[string]interface{}{
		"model":      claudeModel,
		"max_tokens": claudeMaxTokens,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"temperature": temperature,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", "https://api.anthropic.com/v1/messages", bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("claude request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("claude API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if len(result.Content) == 0 {
		return "", fmt.Errorf("claude returned no content")
	}

	return result.Content[0].Text, nil
}
