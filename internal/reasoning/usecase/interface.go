package usecase

import (
	"context"

	"learnlog-backend/internal/reasoning/dto"
	"learnlog-backend/pkg/chroma"
)

// ReasoningUsecase is the read-time fan-in: each operation merges relational
// rows and/or vector hits into a prompt and returns generated text. All four
// operations are stateless across calls.
type ReasoningUsecase interface {
	// Summarize generates a diary-style summary over a date range
	Summarize(ctx context.Context, userID string, req dto.SummarizeRequest) (*dto.SummarizeResponse, error)

	// ExplainConcept explains a concept using the caller's learning history
	ExplainConcept(ctx context.Context, userID, conceptName string) (*dto.ExplainConceptResponse, error)

	// Search runs a semantic similarity query against one collection
	Search(ctx context.Context, userID string, req dto.SearchRequest) (*dto.SearchResponse, error)

	// Guidance recommends what to learn next based on aggregated history
	Guidance(ctx context.Context, userID string) (*dto.GuidanceResponse, error)
}

// Embedder maps query text to the fixed-dimension vector
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// VectorSearcher is the slice of the vector store the reasoning module reads
type VectorSearcher interface {
	SearchLogs(ctx context.Context, vector []float32, limit int) ([]chroma.LogHit, error)
	SearchConcepts(ctx context.Context, vector []float32, limit int) ([]chroma.ConceptHit, error)
}
