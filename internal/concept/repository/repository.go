package repository

import "learnlog-backend/internal/concept/domain"

// ConceptRepository defines the interface for concept data access
type ConceptRepository interface {
	// Create inserts a new concept row
	Create(concept *domain.Concept) error

	// ListByUser returns all of a user's concepts, alphabetical by name
	ListByUser(userID string) ([]*domain.Concept, error)

	// ListNamesByUser returns just the names of a user's concepts
	ListNamesByUser(userID string) ([]string, error)

	// ListByUserByMastery returns a user's concepts ordered by mastery level,
	// highest first
	ListByUserByMastery(userID string) ([]*domain.Concept, error)
}
