package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"gorm.io/datatypes"

	"learnlog-backend/internal/journal/domain"
	"learnlog-backend/internal/journal/repository"
	"learnlog-backend/pkg/apperr"
	"learnlog-backend/pkg/chroma"
)

// summaryLength is how much raw text goes into the vector payload summary.
const summaryLength = 200

// journalUsecase implements JournalUsecase
type journalUsecase struct {
	logRepo         repository.DailyLogRepository
	extractor       Extractor
	embedder        Embedder
	vectorIndex     VectorIndex
	reindexOnUpdate bool
}

// NewJournalUsecase creates a new instance of journalUsecase. The embedder and
// vector index may be nil, in which case logs are stored without becoming
// searchable and stay in index status pending for the index worker.
func NewJournalUsecase(
	logRepo repository.DailyLogRepository,
	extractor Extractor,
	embedder Embedder,
	vectorIndex VectorIndex,
	reindexOnUpdate bool,
) JournalUsecase {
	return &journalUsecase{
		logRepo:         logRepo,
		extractor:       extractor,
		embedder:        embedder,
		vectorIndex:     vectorIndex,
		reindexOnUpdate: reindexOnUpdate,
	}
}

func (u *journalUsecase) CreateDailyLog(ctx context.Context, userID, logDate, rawText string) (*domain.DailyLog, error) {
	// Fast-path duplicate check. The unique constraint enforced in the
	// repository remains the authoritative one under concurrency.
	existing, err := u.logRepo.FindByUserAndDate(userID, logDate)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing log on %s: %w", logDate, err)
	}
	if existing != nil {
		return nil, apperr.ErrDuplicateLog
	}

	// Extraction never fails; it degrades to the default record.
	structured := u.extractor.Extract(ctx, rawText)

	blob, err := json.Marshal(structured)
	if err != nil {
		return nil, fmt.Errorf("failed to encode structured data: %w", err)
	}

	logEntry := &domain.DailyLog{
		UserID:         userID,
		LogDate:        logDate,
		RawText:        rawText,
		StructuredData: datatypes.JSON(blob),
		// Copied out of the blob for filtering without deserializing it
		Mood:            structured.Mood,
		DifficultyLevel: structured.DifficultyLevel,
		IndexStatus:     domain.IndexStatusPending,
	}

	if err := u.logRepo.Create(logEntry); err != nil {
		return nil, err
	}

	// The relational row is committed; indexing failure is non-fatal.
	u.indexLog(ctx, logEntry, structured.Concepts)

	return logEntry, nil
}

func (u *journalUsecase) GetDailyLog(userID, logDate string) (*domain.DailyLog, error) {
	logEntry, err := u.logRepo.FindByUserAndDate(userID, logDate)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch log for %s: %w", logDate, err)
	}
	if logEntry == nil {
		return nil, apperr.ErrLogNotFound
	}
	return logEntry, nil
}

func (u *journalUsecase) ListDailyLogs(userID string, skip, limit int) ([]*domain.DailyLog, error) {
	if limit <= 0 {
		limit = 10
	}
	if skip < 0 {
		skip = 0
	}
	return u.logRepo.ListByUser(userID, skip, limit)
}

func (u *journalUsecase) UpdateDailyLog(ctx context.Context, userID, logDate, rawText string) (*domain.DailyLog, error) {
	logEntry, err := u.logRepo.FindByUserAndDate(userID, logDate)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch log for %s: %w", logDate, err)
	}
	if logEntry == nil {
		return nil, apperr.ErrLogNotFound
	}

	structured := u.extractor.Extract(ctx, rawText)

	blob, err := json.Marshal(structured)
	if err != nil {
		return nil, fmt.Errorf("failed to encode structured data: %w", err)
	}

	logEntry.RawText = rawText
	logEntry.StructuredData = datatypes.JSON(blob)
	logEntry.Mood = structured.Mood
	logEntry.DifficultyLevel = structured.DifficultyLevel
	if u.reindexOnUpdate {
		logEntry.IndexStatus = domain.IndexStatusPending
	}

	if err := u.logRepo.Update(logEntry); err != nil {
		return nil, fmt.Errorf("failed to update log for %s: %w", logDate, err)
	}

	if u.reindexOnUpdate {
		u.indexLog(ctx, logEntry, structured.Concepts)
	}

	return logEntry, nil
}

// indexLog embeds the raw text and upserts the log's vector point. Failures
// are logged and recorded on the row; the caller still reports success.
func (u *journalUsecase) indexLog(ctx context.Context, logEntry *domain.DailyLog, concepts []string) {
	if u.embedder == nil || u.vectorIndex == nil {
		log.Printf("[Journal] vector indexing not available, log %s stays pending", logEntry.ID)
		return
	}

	vector, err := u.embedder.Embed(ctx, logEntry.RawText)
	if err != nil {
		log.Printf("[Journal] failed to embed log %s: %v", logEntry.ID, err)
		u.markIndexStatus(logEntry, domain.IndexStatusFailed)
		return
	}

	payload := chroma.LogPayload{
		LogID:    logEntry.ID,
		LogDate:  logEntry.LogDate,
		Summary:  TruncateSummary(logEntry.RawText),
		Concepts: concepts,
	}
	if err := u.vectorIndex.UpsertLog(ctx, logEntry.ID, vector, payload); err != nil {
		log.Printf("[Journal] failed to index log %s: %v", logEntry.ID, err)
		u.markIndexStatus(logEntry, domain.IndexStatusFailed)
		return
	}

	u.markIndexStatus(logEntry, domain.IndexStatusIndexed)
}

func (u *journalUsecase) markIndexStatus(logEntry *domain.DailyLog, status domain.IndexStatus) {
	if err := u.logRepo.UpdateIndexStatus(logEntry.ID, status); err != nil {
		log.Printf("[Journal] failed to record index status for log %s: %v", logEntry.ID, err)
		return
	}
	logEntry.IndexStatus = status
}

// TruncateSummary returns the first 200 characters of the raw text, used as
// the human-readable payload on the log's vector point.
func TruncateSummary(rawText string) string {
	runes := []rune(rawText)
	if len(runes) <= summaryLength {
		return rawText
	}
	return string(runes[:summaryLength])
}
