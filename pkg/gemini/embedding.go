package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const embeddingModel = "text-embedding-004"

// EmbeddingDim is the system-wide embedding dimensionality. Every vector in
// both index collections has this length; swapping the model for one with a
// different dimensionality requires rebuilding every existing index entry.
const EmbeddingDim = 384

// EmbeddingService maps text to fixed-dimension vectors for similarity search.
// The same service is used for log text, concept text, and queries.
type EmbeddingService struct {
	apiKey string
}

// NewEmbeddingService creates a new Gemini embedding service
func NewEmbeddingService(apiKey string) *EmbeddingService {
	return &EmbeddingService{apiKey: apiKey}
}

// Embed returns the embedding vector for the given text.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("Gemini API key not configured")
	}

	url := fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:embedContent?key=%s", embeddingModel, s.apiKey)

	payload := map[string]interface{}{
		"model": "models/" + embeddingModel,
		"content": map[string]interface{}{
			"parts": []map[string]string{{"text": text}},
		},
		"outputDimensionality": EmbeddingDim,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embedding API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Embedding struct {
			Values []float32 `json:"values"`
		} `json:"embedding"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if len(result.Embedding.Values) != EmbeddingDim {
		return nil, fmt.Errorf("embedding has %d dimensions, expected %d", len(result.Embedding.Values), EmbeddingDim)
	}

	return result.Embedding.Values, nil
}
