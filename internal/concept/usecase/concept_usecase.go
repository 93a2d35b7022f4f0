package usecase

import (
	"context"
	"log"
	"time"

	"learnlog-backend/internal/concept/domain"
	"learnlog-backend/internal/concept/repository"
	"learnlog-backend/pkg/chroma"
)

// conceptUsecase implements ConceptUsecase
type conceptUsecase struct {
	conceptRepo repository.ConceptRepository
	embedder    Embedder
	vectorIndex VectorIndex
}

// NewConceptUsecase creates a new instance of conceptUsecase
func NewConceptUsecase(conceptRepo repository.ConceptRepository, embedder Embedder, vectorIndex VectorIndex) ConceptUsecase {
	return &conceptUsecase{
		conceptRepo: conceptRepo,
		embedder:    embedder,
		vectorIndex: vectorIndex,
	}
}

func (u *conceptUsecase) CreateConcept(ctx context.Context, userID, name, definition, category string) (*domain.Concept, error) {
	concept := &domain.Concept{
		UserID:           userID,
		Name:             name,
		Definition:       definition,
		Category:         category,
		FirstLearnedDate: time.Now().Format("2006-01-02"),
	}

	if err := u.conceptRepo.Create(concept); err != nil {
		return nil, err
	}

	// Same policy as log ingestion: the row is committed, the vector upsert
	// is best-effort.
	u.indexConcept(ctx, concept)

	return concept, nil
}

func (u *conceptUsecase) ListConcepts(userID string) ([]*domain.Concept, error) {
	return u.conceptRepo.ListByUser(userID)
}

func (u *conceptUsecase) indexConcept(ctx context.Context, concept *domain.Concept) {
	if u.embedder == nil || u.vectorIndex == nil {
		return
	}

	// Name and definition together make the embedded text
	text := concept.Name
	if concept.Definition != "" {
		text = concept.Name + ". " + concept.Definition
	}

	vector, err := u.embedder.Embed(ctx, text)
	if err != nil {
		log.Printf("[Concept] failed to embed concept %s: %v", concept.ID, err)
		return
	}

	payload := chroma.ConceptPayload{
		ConceptID:  concept.ID,
		Name:       concept.Name,
		Definition: concept.Definition,
		Category:   concept.Category,
	}
	if err := u.vectorIndex.UpsertConcept(ctx, concept.ID, vector, payload); err != nil {
		log.Printf("[Concept] failed to index concept %s: %v", concept.ID, err)
	}
}
