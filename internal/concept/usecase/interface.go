package usecase

import (
	"context"

	"learnlog-backend/internal/concept/domain"
	"learnlog-backend/pkg/chroma"
)

// ConceptUsecase manages a user's learned concepts
type ConceptUsecase interface {
	// CreateConcept persists a concept and best-effort indexes its embedding
	CreateConcept(ctx context.Context, userID, name, definition, category string) (*domain.Concept, error)

	// ListConcepts returns all of a user's concepts
	ListConcepts(userID string) ([]*domain.Concept, error)
}

// Embedder maps text to the fixed-dimension vector used for similarity search
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// VectorIndex is the slice of the vector store the concept module writes to
type VectorIndex interface {
	UpsertConcept(ctx context.Context, conceptID string, vector []float32, payload chroma.ConceptPayload) error
}
