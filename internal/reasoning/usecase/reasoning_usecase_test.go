package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	conceptdomain "learnlog-backend/internal/concept/domain"
	journaldomain "learnlog-backend/internal/journal/domain"
	"learnlog-backend/internal/reasoning/dto"
	"learnlog-backend/pkg/apperr"
	"learnlog-backend/pkg/chroma"
)

// stubLogRepo serves a fixed log slice and records the requested range.
type stubLogRepo struct {
	logs           []*journaldomain.DailyLog
	lastStart      string
	lastEnd        string
	recentRequests int
}

func (r *stubLogRepo) Create(log *journaldomain.DailyLog) error { return nil }

func (r *stubLogRepo) FindByUserAndDate(userID, logDate string) (*journaldomain.DailyLog, error) {
	return nil, nil
}

func (r *stubLogRepo) FindByUserInRange(userID, startDate, endDate string) ([]*journaldomain.DailyLog, error) {
	r.lastStart = startDate
	r.lastEnd = endDate
	return r.logs, nil
}

func (r *stubLogRepo) ListByUser(userID string, skip, limit int) ([]*journaldomain.DailyLog, error) {
	return r.logs, nil
}

func (r *stubLogRepo) FindRecentByUser(userID string, limit int) ([]*journaldomain.DailyLog, error) {
	r.recentRequests++
	return r.logs, nil
}

func (r *stubLogRepo) Update(log *journaldomain.DailyLog) error { return nil }

func (r *stubLogRepo) UpdateIndexStatus(id string, status journaldomain.IndexStatus) error {
	return nil
}

func (r *stubLogRepo) FindByIndexStatus(statuses []journaldomain.IndexStatus, limit int) ([]*journaldomain.DailyLog, error) {
	return nil, nil
}

type stubConceptRepo struct {
	concepts []*conceptdomain.Concept
}

func (r *stubConceptRepo) Create(concept *conceptdomain.Concept) error { return nil }

func (r *stubConceptRepo) ListByUser(userID string) ([]*conceptdomain.Concept, error) {
	return r.concepts, nil
}

func (r *stubConceptRepo) ListNamesByUser(userID string) ([]string, error) {
	names := make([]string, 0, len(r.concepts))
	for _, c := range r.concepts {
		names = append(names, c.Name)
	}
	return names, nil
}

func (r *stubConceptRepo) ListByUserByMastery(userID string) ([]*conceptdomain.Concept, error) {
	return r.concepts, nil
}

type recordingGenerator struct {
	response   string
	lastPrompt string
}

func (g *recordingGenerator) Generate(ctx context.Context, prompt string, temperature float64) (string, error) {
	g.lastPrompt = prompt
	return g.response, nil
}

type countingEmbedder struct {
	calls int
}

func (e *countingEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	e.calls++
	return make([]float32, 384), nil
}

type stubSearcher struct {
	logHits     []chroma.LogHit
	conceptHits []chroma.ConceptHit
	lastLimit   int
}

func (s *stubSearcher) SearchLogs(ctx context.Context, vector []float32, limit int) ([]chroma.LogHit, error) {
	s.lastLimit = limit
	return s.logHits, nil
}

func (s *stubSearcher) SearchConcepts(ctx context.Context, vector []float32, limit int) ([]chroma.ConceptHit, error) {
	s.lastLimit = limit
	return s.conceptHits, nil
}

func sampleLogs() []*journaldomain.DailyLog {
	return []*journaldomain.DailyLog{
		{ID: "l1", LogDate: "2026-01-22", RawText: "worked through binary trees", DifficultyLevel: "hard"},
		{ID: "l2", LogDate: "2026-01-23", RawText: "more tree practice", DifficultyLevel: "hard"},
		{ID: "l3", LogDate: "2026-01-24", RawText: "easy review day", DifficultyLevel: "easy"},
	}
}

func TestResolveEndDate(t *testing.T) {
	t.Run("daily is the start date itself", func(t *testing.T) {
		end, err := ResolveEndDate("daily", "2026-01-22")
		require.NoError(t, err)
		assert.Equal(t, "2026-01-22", end)
	})

	t.Run("weekly spans seven days", func(t *testing.T) {
		end, err := ResolveEndDate("weekly", "2026-01-22")
		require.NoError(t, err)
		assert.Equal(t, "2026-01-28", end)
	})

	t.Run("monthly spans thirty days", func(t *testing.T) {
		end, err := ResolveEndDate("monthly", "2026-01-22")
		require.NoError(t, err)
		assert.Equal(t, "2026-02-20", end)
	})

	t.Run("rejects malformed start", func(t *testing.T) {
		_, err := ResolveEndDate("weekly", "22/01/2026")
		assert.Error(t, err)
	})
}

func TestSummarize(t *testing.T) {
	ctx := context.Background()

	t.Run("empty range reports no logs", func(t *testing.T) {
		uc := NewReasoningUsecase(&stubLogRepo{}, &stubConceptRepo{}, &recordingGenerator{}, &countingEmbedder{}, &stubSearcher{})

		_, err := uc.Summarize(ctx, "user-1", dto.SummarizeRequest{Mode: "weekly", StartDate: "2026-01-22"})
		assert.ErrorIs(t, err, apperr.ErrNoLogsInRange)
	})

	t.Run("defaults the end date from the mode", func(t *testing.T) {
		logRepo := &stubLogRepo{logs: sampleLogs()}
		uc := NewReasoningUsecase(logRepo, &stubConceptRepo{}, &recordingGenerator{response: "a week of trees"}, &countingEmbedder{}, &stubSearcher{})

		resp, err := uc.Summarize(ctx, "user-1", dto.SummarizeRequest{Mode: "weekly", StartDate: "2026-01-22"})
		require.NoError(t, err)

		assert.Equal(t, "2026-01-22", logRepo.lastStart)
		assert.Equal(t, "2026-01-28", logRepo.lastEnd)
		assert.Equal(t, "a week of trees", resp.Summary)
		assert.Equal(t, "weekly", resp.Mode)
	})

	t.Run("explicit end date wins over the mode default", func(t *testing.T) {
		logRepo := &stubLogRepo{logs: sampleLogs()}
		uc := NewReasoningUsecase(logRepo, &stubConceptRepo{}, &recordingGenerator{response: "summary"}, &countingEmbedder{}, &stubSearcher{})

		_, err := uc.Summarize(ctx, "user-1", dto.SummarizeRequest{Mode: "weekly", StartDate: "2026-01-22", EndDate: "2026-01-25"})
		require.NoError(t, err)
		assert.Equal(t, "2026-01-25", logRepo.lastEnd)
	})

	t.Run("metadata carries day count and modal difficulty", func(t *testing.T) {
		logRepo := &stubLogRepo{logs: sampleLogs()}
		generator := &recordingGenerator{response: "summary"}
		uc := NewReasoningUsecase(logRepo, &stubConceptRepo{}, generator, &countingEmbedder{}, &stubSearcher{})

		resp, err := uc.Summarize(ctx, "user-1", dto.SummarizeRequest{Mode: "daily", StartDate: "2026-01-22"})
		require.NoError(t, err)

		assert.Equal(t, 3, resp.Metadata["total_days"])
		assert.Equal(t, "hard", resp.Metadata["avg_difficulty"])
		assert.Contains(t, generator.lastPrompt, "binary trees", "raw log text must reach the prompt")
	})
}

func TestExplainConcept(t *testing.T) {
	ctx := context.Background()

	concepts := []*conceptdomain.Concept{
		{Name: "slices", MasteryLevel: 3},
		{Name: "maps", MasteryLevel: 2},
	}
	generator := &recordingGenerator{response: "an explanation"}
	uc := NewReasoningUsecase(&stubLogRepo{}, &stubConceptRepo{concepts: concepts}, generator, &countingEmbedder{}, &stubSearcher{})

	resp, err := uc.ExplainConcept(ctx, "user-1", "generics")
	require.NoError(t, err)

	assert.Equal(t, "generics", resp.ConceptName)
	assert.Equal(t, "an explanation", resp.Explanation)
	assert.True(t, resp.Personalized)
	assert.Contains(t, generator.lastPrompt, "slices, maps", "learned concepts feed the prompt")
}

func TestExplainConceptAlreadyStudied(t *testing.T) {
	ctx := context.Background()

	concepts := []*conceptdomain.Concept{{Name: "goroutines", MasteryLevel: 2}}
	generator := &recordingGenerator{response: "an explanation"}
	uc := NewReasoningUsecase(&stubLogRepo{}, &stubConceptRepo{concepts: concepts}, generator, &countingEmbedder{}, &stubSearcher{})

	// Typo in the request still resolves to the studied concept
	_, err := uc.ExplainConcept(ctx, "user-1", "gorutines")
	require.NoError(t, err)
	assert.Contains(t, generator.lastPrompt, `already studied this as "goroutines"`)
}

func TestSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid search type is rejected before embedding", func(t *testing.T) {
		embedder := &countingEmbedder{}
		uc := NewReasoningUsecase(&stubLogRepo{}, &stubConceptRepo{}, &recordingGenerator{}, embedder, &stubSearcher{})

		_, err := uc.Search(ctx, "user-1", dto.SearchRequest{Query: "trees", SearchType: "emails"})
		assert.ErrorIs(t, err, apperr.ErrInvalidSearchType)
		assert.Equal(t, 0, embedder.calls, "no embedding work for a rejected search type")
	})

	t.Run("defaults to the concept collection with limit five", func(t *testing.T) {
		searcher := &stubSearcher{conceptHits: []chroma.ConceptHit{
			{Score: 0.91, Payload: chroma.ConceptPayload{ConceptID: "c1", Name: "recursion", Definition: "a function calling itself", Category: "algorithms"}},
		}}
		uc := NewReasoningUsecase(&stubLogRepo{}, &stubConceptRepo{}, &recordingGenerator{}, &countingEmbedder{}, searcher)

		resp, err := uc.Search(ctx, "user-1", dto.SearchRequest{Query: "self reference"})
		require.NoError(t, err)

		assert.Equal(t, 5, searcher.lastLimit)
		require.Len(t, resp.Results, 1)
		assert.Equal(t, 0.91, resp.Results[0].Score)
		assert.Equal(t, "recursion", resp.Results[0].Content["name"])
	})

	t.Run("log search maps hit payloads", func(t *testing.T) {
		searcher := &stubSearcher{logHits: []chroma.LogHit{
			{Score: 0.84, Payload: chroma.LogPayload{LogID: "l1", LogDate: "2026-01-22", Summary: "tree day", Concepts: []string{"trees"}}},
		}}
		uc := NewReasoningUsecase(&stubLogRepo{}, &stubConceptRepo{}, &recordingGenerator{}, &countingEmbedder{}, searcher)

		resp, err := uc.Search(ctx, "user-1", dto.SearchRequest{Query: "trees", SearchType: "logs", Limit: 3})
		require.NoError(t, err)

		assert.Equal(t, 3, searcher.lastLimit)
		require.Len(t, resp.Results, 1)
		assert.Equal(t, "2026-01-22", resp.Results[0].Content["log_date"])
		assert.Equal(t, []string{"trees"}, resp.Results[0].Content["concepts"])
	})

	t.Run("no hits come back as an empty result list", func(t *testing.T) {
		uc := NewReasoningUsecase(&stubLogRepo{}, &stubConceptRepo{}, &recordingGenerator{}, &countingEmbedder{}, &stubSearcher{})

		resp, err := uc.Search(ctx, "user-1", dto.SearchRequest{Query: "nothing similar"})
		require.NoError(t, err)
		assert.NotNil(t, resp.Results)
		assert.Empty(t, resp.Results)
	})

	t.Run("fails cleanly without a vector store", func(t *testing.T) {
		uc := NewReasoningUsecase(&stubLogRepo{}, &stubConceptRepo{}, &recordingGenerator{}, &countingEmbedder{}, nil)

		_, err := uc.Search(ctx, "user-1", dto.SearchRequest{Query: "trees"})
		assert.Error(t, err)
		assert.NotErrorIs(t, err, apperr.ErrInvalidSearchType)
	})
}

func TestGuidance(t *testing.T) {
	ctx := context.Background()

	concepts := []*conceptdomain.Concept{
		{Name: "interfaces", MasteryLevel: 4},
		{Name: "goroutines", MasteryLevel: 1},
	}
	logRepo := &stubLogRepo{logs: sampleLogs()}
	generator := &recordingGenerator{response: "learn channels next"}
	uc := NewReasoningUsecase(logRepo, &stubConceptRepo{concepts: concepts}, generator, &countingEmbedder{}, &stubSearcher{})

	resp, err := uc.Guidance(ctx, "user-1")
	require.NoError(t, err)

	assert.Equal(t, "learn channels next", resp.Guidance)
	assert.Equal(t, 2, resp.Context["total_concepts_learned"])
	assert.Equal(t, 3, resp.Context["days_logged"])
	assert.Equal(t, 1, logRepo.recentRequests)
	assert.Contains(t, generator.lastPrompt, "interfaces", "concept history feeds the prompt")
}
