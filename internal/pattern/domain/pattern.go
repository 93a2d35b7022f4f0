package domain

import "time"

// LearningPattern records a recurring behavior observed in the user's history:
// a repeated mistake, a preference, a strength or a weakness.
type LearningPattern struct {
	ID                string    `json:"id" gorm:"primaryKey"`
	UserID            string    `json:"user_id" gorm:"index;not null"`
	PatternType       string    `json:"pattern_type" gorm:"size:50"` // mistake, preference, strength, weakness
	Category          string    `json:"category,omitempty" gorm:"size:100"`
	Description       string    `json:"description" gorm:"type:text;not null"`
	FirstObservedDate string    `json:"first_observed_date,omitempty" gorm:"type:varchar(10)"`
	Occurrences       int       `json:"occurrences" gorm:"default:1"`
	LastObservedDate  string    `json:"last_observed_date,omitempty" gorm:"type:varchar(10)"`
	Severity          string    `json:"severity,omitempty" gorm:"size:20"` // low, medium, high
	ResolutionNotes   string    `json:"resolution_notes,omitempty" gorm:"type:text"`
	CreatedAt         time.Time `json:"created_at"`
}

// PatternInstance ties one occurrence of a pattern to the daily log it was
// observed in.
type PatternInstance struct {
	PatternID string `json:"pattern_id" gorm:"primaryKey"`
	LogID     string `json:"log_id" gorm:"primaryKey"`
	Notes     string `json:"notes,omitempty" gorm:"type:text"`
}
