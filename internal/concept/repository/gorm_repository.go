package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"learnlog-backend/internal/concept/domain"
)

// gormConceptRepository implements ConceptRepository using GORM
type gormConceptRepository struct {
	db *gorm.DB
}

// NewGormConceptRepository creates a new GORM-based ConceptRepository
func NewGormConceptRepository(db *gorm.DB) ConceptRepository {
	return &gormConceptRepository{db: db}
}

func (r *gormConceptRepository) Create(concept *domain.Concept) error {
	if concept.ID == "" {
		concept.ID = uuid.New().String()
	}
	if concept.MasteryLevel == 0 {
		concept.MasteryLevel = 1
	}
	concept.CreatedAt = time.Now()
	return r.db.Create(concept).Error
}

func (r *gormConceptRepository) ListByUser(userID string) ([]*domain.Concept, error) {
	var concepts []*domain.Concept
	err := r.db.Where("user_id = ?", userID).
		Order("name ASC").
		Find(&concepts).Error
	return concepts, err
}

func (r *gormConceptRepository) ListNamesByUser(userID string) ([]string, error) {
	var names []string
	err := r.db.Model(&domain.Concept{}).
		Where("user_id = ?", userID).
		Order("name ASC").
		Pluck("name", &names).Error
	return names, err
}

func (r *gormConceptRepository) ListByUserByMastery(userID string) ([]*domain.Concept, error) {
	var concepts []*domain.Concept
	err := r.db.Where("user_id = ?", userID).
		Order("mastery_level DESC").
		Find(&concepts).Error
	return concepts, err
}
