package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Mood values the extraction prompt is allowed to return.
type Mood string

const (
	MoodPositive   Mood = "positive"
	MoodNeutral    Mood = "neutral"
	MoodNegative   Mood = "negative"
	MoodFrustrated Mood = "frustrated"
	MoodExcited    Mood = "excited"
)

// Difficulty values the extraction prompt is allowed to return.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Index status of a daily log's vector point. The relational row is the
// source of truth; the vector upsert is best-effort and its outcome is
// recorded here so the index worker can re-attempt failed embeddings.
type IndexStatus string

const (
	IndexStatusPending IndexStatus = "pending"
	IndexStatusIndexed IndexStatus = "indexed"
	IndexStatusFailed  IndexStatus = "failed"
)

// DailyLog is one user's free-text journal entry for one calendar date plus
// its derived structured record. At most one log exists per (user, date):
// the composite unique index is the authoritative duplicate check.
type DailyLog struct {
	ID              string         `json:"id" gorm:"primaryKey"`
	UserID          string         `json:"user_id" gorm:"not null;uniqueIndex:idx_user_log_date"`
	LogDate         string         `json:"log_date" gorm:"type:varchar(10);not null;uniqueIndex:idx_user_log_date"`
	RawText         string         `json:"raw_text" gorm:"type:text;not null"`
	StructuredData  datatypes.JSON `json:"structured_data" gorm:"type:jsonb"`
	Mood            string         `json:"mood,omitempty" gorm:"size:50"`
	DifficultyLevel string         `json:"difficulty_level,omitempty" gorm:"size:20"`
	IndexStatus     IndexStatus    `json:"index_status" gorm:"size:20;default:pending"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// ActivityEntry is one activity inside the structured extraction record.
type ActivityEntry struct {
	Type            string `json:"type"`
	Description     string `json:"description"`
	DurationMinutes *int   `json:"duration_minutes,omitempty"`
}

// AssignmentEntry is one assignment inside the structured extraction record.
type AssignmentEntry struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
}

// StructuredData is the fixed-schema record extracted from raw log text.
// After ingestion it is always present on the log, never null: when
// extraction fails the all-empty default record is stored instead.
type StructuredData struct {
	Concepts        []string          `json:"concepts"`
	Activities      []ActivityEntry   `json:"activities"`
	Assignments     []AssignmentEntry `json:"assignments"`
	Mood            string            `json:"mood"`
	DifficultyLevel string            `json:"difficulty_level"`
	KeyLearnings    []string          `json:"key_learnings"`
}

// Activity is a relational row for an activity performed on a logged day.
type Activity struct {
	ID              string    `json:"id" gorm:"primaryKey"`
	LogID           string    `json:"log_id" gorm:"index"`
	ActivityType    string    `json:"activity_type" gorm:"size:50"` // coding, debugging, learning, meeting
	Description     string    `json:"description" gorm:"type:text;not null"`
	DurationMinutes *int      `json:"duration_minutes,omitempty"`
	Status          string    `json:"status" gorm:"size:20;default:completed"`
	CreatedAt       time.Time `json:"created_at"`
}

// Assignment is a relational row for a task assigned on a logged day.
type Assignment struct {
	ID              string     `json:"id" gorm:"primaryKey"`
	LogID           string     `json:"log_id" gorm:"index"`
	Title           string     `json:"title" gorm:"size:255;not null"`
	Description     string     `json:"description,omitempty" gorm:"type:text"`
	AssignedDate    string     `json:"assigned_date,omitempty" gorm:"type:varchar(10)"`
	DueDate         string     `json:"due_date,omitempty" gorm:"type:varchar(10)"`
	Status          string     `json:"status" gorm:"size:20;default:pending"`
	CompletionNotes string     `json:"completion_notes,omitempty" gorm:"type:text"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// Project is a relational row for a longer-running piece of work.
type Project struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	UserID      string    `json:"user_id" gorm:"index;not null"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	TechStack   string    `json:"tech_stack,omitempty" gorm:"type:text"`
	StartDate   string    `json:"start_date,omitempty" gorm:"type:varchar(10)"`
	EndDate     string    `json:"end_date,omitempty" gorm:"type:varchar(10)"`
	Status      string    `json:"status" gorm:"size:20;default:active"`
	RepoURL     string    `json:"repo_url,omitempty" gorm:"size:500"`
	CreatedAt   time.Time `json:"created_at"`
}
