package usecase

import (
	"context"

	"learnlog-backend/internal/journal/domain"
	"learnlog-backend/pkg/chroma"
)

// JournalUsecase is the ingestion workflow for daily logs
type JournalUsecase interface {
	// CreateDailyLog runs the full ingestion pipeline: uniqueness, extraction,
	// persistence, then best-effort embedding + indexing
	CreateDailyLog(ctx context.Context, userID, logDate, rawText string) (*domain.DailyLog, error)

	// GetDailyLog returns one log by date
	GetDailyLog(userID, logDate string) (*domain.DailyLog, error)

	// ListDailyLogs returns logs newest-first with pagination
	ListDailyLogs(userID string, skip, limit int) ([]*domain.DailyLog, error)

	// UpdateDailyLog re-extracts and replaces an existing log's content
	UpdateDailyLog(ctx context.Context, userID, logDate, rawText string) (*domain.DailyLog, error)
}

// Extractor turns raw log text into the structured record. It never fails:
// unparseable output degrades to the default record.
type Extractor interface {
	Extract(ctx context.Context, rawText string) domain.StructuredData
}

// Embedder maps text to the fixed-dimension vector used for similarity search
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// VectorIndex is the slice of the vector store the ingestion workflow writes to
type VectorIndex interface {
	UpsertLog(ctx context.Context, logID string, vector []float32, payload chroma.LogPayload) error
}
