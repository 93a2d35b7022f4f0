package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnlog-backend/internal/journal/domain"
	"learnlog-backend/pkg/apperr"
	"learnlog-backend/pkg/chroma"
)

// memLogRepo is an in-memory DailyLogRepository keyed by (userID, logDate).
type memLogRepo struct {
	logs map[string]*domain.DailyLog
}

func newMemLogRepo() *memLogRepo {
	return &memLogRepo{logs: make(map[string]*domain.DailyLog)}
}

func key(userID, logDate string) string { return userID + "|" + logDate }

func (r *memLogRepo) Create(log *domain.DailyLog) error {
	k := key(log.UserID, log.LogDate)
	if _, ok := r.logs[k]; ok {
		return apperr.ErrDuplicateLog
	}
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	r.logs[k] = log
	return nil
}

func (r *memLogRepo) FindByUserAndDate(userID, logDate string) (*domain.DailyLog, error) {
	return r.logs[key(userID, logDate)], nil
}

func (r *memLogRepo) FindByUserInRange(userID, startDate, endDate string) ([]*domain.DailyLog, error) {
	var out []*domain.DailyLog
	for _, l := range r.logs {
		if l.UserID == userID && l.LogDate >= startDate && l.LogDate <= endDate {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *memLogRepo) ListByUser(userID string, skip, limit int) ([]*domain.DailyLog, error) {
	var out []*domain.DailyLog
	for _, l := range r.logs {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *memLogRepo) FindRecentByUser(userID string, limit int) ([]*domain.DailyLog, error) {
	return r.ListByUser(userID, 0, limit)
}

func (r *memLogRepo) Update(log *domain.DailyLog) error {
	r.logs[key(log.UserID, log.LogDate)] = log
	return nil
}

func (r *memLogRepo) UpdateIndexStatus(id string, status domain.IndexStatus) error {
	for _, l := range r.logs {
		if l.ID == id {
			l.IndexStatus = status
			return nil
		}
	}
	return fmt.Errorf("log %s not found", id)
}

func (r *memLogRepo) FindByIndexStatus(statuses []domain.IndexStatus, limit int) ([]*domain.DailyLog, error) {
	var out []*domain.DailyLog
	for _, l := range r.logs {
		for _, s := range statuses {
			if l.IndexStatus == s {
				out = append(out, l)
				break
			}
		}
	}
	return out, nil
}

type fixedExtractor struct {
	record domain.StructuredData
}

func (e *fixedExtractor) Extract(ctx context.Context, rawText string) domain.StructuredData {
	return e.record
}

type fakeEmbedder struct {
	err   error
	calls int
}

func (e *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	return make([]float32, 384), nil
}

type fakeIndex struct {
	err      error
	upserted []chroma.LogPayload
}

func (i *fakeIndex) UpsertLog(ctx context.Context, logID string, vector []float32, payload chroma.LogPayload) error {
	if i.err != nil {
		return i.err
	}
	i.upserted = append(i.upserted, payload)
	return nil
}

func extractedRecord() domain.StructuredData {
	record := DefaultStructuredData()
	record.Concepts = []string{"recursion"}
	record.Mood = string(domain.MoodPositive)
	record.DifficultyLevel = string(domain.DifficultyHard)
	return record
}

func TestCreateDailyLog(t *testing.T) {
	ctx := context.Background()

	t.Run("persists log with structured data copied out", func(t *testing.T) {
		repo := newMemLogRepo()
		index := &fakeIndex{}
		uc := NewJournalUsecase(repo, &fixedExtractor{record: extractedRecord()}, &fakeEmbedder{}, index, true)

		logEntry, err := uc.CreateDailyLog(ctx, "user-1", "2026-01-22", "studied recursion today, tough but fun")
		require.NoError(t, err)

		assert.Equal(t, string(domain.MoodPositive), logEntry.Mood)
		assert.Equal(t, string(domain.DifficultyHard), logEntry.DifficultyLevel)
		assert.Contains(t, string(logEntry.StructuredData), "recursion")
		assert.Equal(t, domain.IndexStatusIndexed, logEntry.IndexStatus)

		require.Len(t, index.upserted, 1)
		assert.Equal(t, []string{"recursion"}, index.upserted[0].Concepts)
		assert.Equal(t, "2026-01-22", index.upserted[0].LogDate)
	})

	t.Run("second log for the same day is rejected", func(t *testing.T) {
		repo := newMemLogRepo()
		uc := NewJournalUsecase(repo, &fixedExtractor{record: extractedRecord()}, &fakeEmbedder{}, &fakeIndex{}, true)

		_, err := uc.CreateDailyLog(ctx, "user-1", "2026-01-22", "first entry of the day")
		require.NoError(t, err)

		_, err = uc.CreateDailyLog(ctx, "user-1", "2026-01-22", "second entry of the day")
		assert.ErrorIs(t, err, apperr.ErrDuplicateLog)
	})

	t.Run("same date for another user is fine", func(t *testing.T) {
		repo := newMemLogRepo()
		uc := NewJournalUsecase(repo, &fixedExtractor{record: extractedRecord()}, &fakeEmbedder{}, &fakeIndex{}, true)

		_, err := uc.CreateDailyLog(ctx, "user-1", "2026-01-22", "first user's entry")
		require.NoError(t, err)

		_, err = uc.CreateDailyLog(ctx, "user-2", "2026-01-22", "second user's entry")
		assert.NoError(t, err)
	})

	t.Run("embedding failure is non-fatal and marks the log failed", func(t *testing.T) {
		repo := newMemLogRepo()
		uc := NewJournalUsecase(repo, &fixedExtractor{record: extractedRecord()}, &fakeEmbedder{err: errors.New("embedding down")}, &fakeIndex{}, true)

		logEntry, err := uc.CreateDailyLog(ctx, "user-1", "2026-01-22", "entry while embeddings are down")
		require.NoError(t, err, "relational persist must survive an indexing failure")
		assert.Equal(t, domain.IndexStatusFailed, logEntry.IndexStatus)
	})

	t.Run("upsert failure marks the log failed", func(t *testing.T) {
		repo := newMemLogRepo()
		uc := NewJournalUsecase(repo, &fixedExtractor{record: extractedRecord()}, &fakeEmbedder{}, &fakeIndex{err: errors.New("chroma down")}, true)

		logEntry, err := uc.CreateDailyLog(ctx, "user-1", "2026-01-22", "entry while chroma is down")
		require.NoError(t, err)
		assert.Equal(t, domain.IndexStatusFailed, logEntry.IndexStatus)
	})

	t.Run("without a vector store the log stays pending", func(t *testing.T) {
		repo := newMemLogRepo()
		uc := NewJournalUsecase(repo, &fixedExtractor{record: extractedRecord()}, nil, nil, true)

		logEntry, err := uc.CreateDailyLog(ctx, "user-1", "2026-01-22", "entry with no vector store at all")
		require.NoError(t, err)
		assert.Equal(t, domain.IndexStatusPending, logEntry.IndexStatus)
	})
}

func TestGetDailyLog(t *testing.T) {
	repo := newMemLogRepo()
	uc := NewJournalUsecase(repo, &fixedExtractor{record: extractedRecord()}, nil, nil, true)

	_, err := uc.GetDailyLog("user-1", "2026-01-22")
	assert.ErrorIs(t, err, apperr.ErrLogNotFound)
}

func TestUpdateDailyLog(t *testing.T) {
	ctx := context.Background()

	t.Run("missing log is not found", func(t *testing.T) {
		uc := NewJournalUsecase(newMemLogRepo(), &fixedExtractor{record: extractedRecord()}, nil, nil, true)

		_, err := uc.UpdateDailyLog(ctx, "user-1", "2026-01-22", "replacement text for a missing log")
		assert.ErrorIs(t, err, apperr.ErrLogNotFound)
	})

	t.Run("replaces text and re-extracts", func(t *testing.T) {
		repo := newMemLogRepo()
		extractor := &fixedExtractor{record: extractedRecord()}
		index := &fakeIndex{}
		uc := NewJournalUsecase(repo, extractor, &fakeEmbedder{}, index, true)

		_, err := uc.CreateDailyLog(ctx, "user-1", "2026-01-22", "original entry text for the day")
		require.NoError(t, err)

		updated := DefaultStructuredData()
		updated.Concepts = []string{"pointers"}
		updated.Mood = string(domain.MoodFrustrated)
		extractor.record = updated

		logEntry, err := uc.UpdateDailyLog(ctx, "user-1", "2026-01-22", "rewritten entry about pointers")
		require.NoError(t, err)

		assert.Equal(t, "rewritten entry about pointers", logEntry.RawText)
		assert.Equal(t, string(domain.MoodFrustrated), logEntry.Mood)
		assert.Contains(t, string(logEntry.StructuredData), "pointers")
		assert.Equal(t, domain.IndexStatusIndexed, logEntry.IndexStatus)
		assert.Len(t, index.upserted, 2, "update should re-upsert the vector point")
	})

	t.Run("reindex on update disabled leaves the vector point alone", func(t *testing.T) {
		repo := newMemLogRepo()
		index := &fakeIndex{}
		uc := NewJournalUsecase(repo, &fixedExtractor{record: extractedRecord()}, &fakeEmbedder{}, index, false)

		_, err := uc.CreateDailyLog(ctx, "user-1", "2026-01-22", "original entry text for the day")
		require.NoError(t, err)
		require.Len(t, index.upserted, 1)

		logEntry, err := uc.UpdateDailyLog(ctx, "user-1", "2026-01-22", "rewritten without reindexing")
		require.NoError(t, err)

		assert.Len(t, index.upserted, 1, "no second upsert with reindexing disabled")
		assert.Equal(t, domain.IndexStatusIndexed, logEntry.IndexStatus)
	})
}

func TestTruncateSummary(t *testing.T) {
	short := "short text"
	assert.Equal(t, short, TruncateSummary(short))

	long := strings.Repeat("a", 250)
	assert.Len(t, TruncateSummary(long), 200)

	// Multi-byte runes must not be split
	unicodeText := strings.Repeat("é", 250)
	assert.Equal(t, strings.Repeat("é", 200), TruncateSummary(unicodeText))
}
