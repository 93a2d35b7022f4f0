package domain

import "time"

// Concept is something the user has learned. Mastery is a 1-5 scale.
type Concept struct {
	ID               string    `json:"id" gorm:"primaryKey"`
	UserID           string    `json:"user_id" gorm:"index;not null"`
	Name             string    `json:"name" gorm:"size:255;index;not null"`
	Definition       string    `json:"definition,omitempty" gorm:"type:text"`
	Category         string    `json:"category,omitempty" gorm:"size:100"` // programming, framework, algorithm, database
	FirstLearnedDate string    `json:"first_learned_date,omitempty" gorm:"type:varchar(10)"`
	MasteryLevel     int       `json:"mastery_level" gorm:"default:1"`
	TimesPracticed   int       `json:"times_practiced" gorm:"default:0"`
	LastReviewedDate string    `json:"last_reviewed_date,omitempty" gorm:"type:varchar(10)"`
	Notes            string    `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt        time.Time `json:"created_at"`
}

// ConceptRelation links two concepts (prerequisite, related, similar, part_of).
type ConceptRelation struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	ConceptAID   string    `json:"concept_a_id" gorm:"index"`
	ConceptBID   string    `json:"concept_b_id" gorm:"index"`
	RelationType string    `json:"relation_type" gorm:"size:50"`
	Strength     float64   `json:"strength" gorm:"default:0.5"`
	CreatedAt    time.Time `json:"created_at"`
}

// LogConcept links a daily log to a concept mentioned in it.
type LogConcept struct {
	LogID     string `json:"log_id" gorm:"primaryKey"`
	ConceptID string `json:"concept_id" gorm:"primaryKey"`
	Context   string `json:"context,omitempty" gorm:"type:text"`
}
