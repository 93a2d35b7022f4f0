package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	conceptdomain "learnlog-backend/internal/concept/domain"
	conceptrepo "learnlog-backend/internal/concept/repository"
	journaldomain "learnlog-backend/internal/journal/domain"
	journalrepo "learnlog-backend/internal/journal/repository"
	"learnlog-backend/internal/reasoning/dto"
	"learnlog-backend/pkg/ai"
	"learnlog-backend/pkg/apperr"
	"learnlog-backend/pkg/fuzzy"
)

// generationTemperature is used for all reasoning prose (summaries,
// explanations, guidance); extraction runs colder.
const generationTemperature = 0.7

const (
	SearchTypeConcepts = "concepts"
	SearchTypeLogs     = "logs"
)

// recentLogCount bounds the history window for guidance.
const recentLogCount = 10

// reasoningUsecase implements ReasoningUsecase
type reasoningUsecase struct {
	logRepo     journalrepo.DailyLogRepository
	conceptRepo conceptrepo.ConceptRepository
	generator   ai.TextGenerator
	embedder    Embedder
	searcher    VectorSearcher
}

// NewReasoningUsecase creates a new instance of reasoningUsecase
func NewReasoningUsecase(
	logRepo journalrepo.DailyLogRepository,
	conceptRepo conceptrepo.ConceptRepository,
	generator ai.TextGenerator,
	embedder Embedder,
	searcher VectorSearcher,
) ReasoningUsecase {
	return &reasoningUsecase{
		logRepo:     logRepo,
		conceptRepo: conceptRepo,
		generator:   generator,
		embedder:    embedder,
		searcher:    searcher,
	}
}

func (u *reasoningUsecase) Summarize(ctx context.Context, userID string, req dto.SummarizeRequest) (*dto.SummarizeResponse, error) {
	endDate := req.EndDate
	if endDate == "" {
		resolved, err := ResolveEndDate(req.Mode, req.StartDate)
		if err != nil {
			return nil, err
		}
		endDate = resolved
	}

	logs, err := u.logRepo.FindByUserInRange(userID, req.StartDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch logs between %s and %s: %w", req.StartDate, endDate, err)
	}
	if len(logs) == 0 {
		return nil, fmt.Errorf("between %s and %s: %w", req.StartDate, endDate, apperr.ErrNoLogsInRange)
	}

	data, err := buildSummaryData(req.StartDate, endDate, logs)
	if err != nil {
		return nil, err
	}

	summary, err := u.generator.Generate(ctx, buildSummaryPrompt(req.Mode, data), generationTemperature)
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s summary: %w", req.Mode, err)
	}

	return &dto.SummarizeResponse{
		Summary:   summary,
		Mode:      req.Mode,
		DateRange: map[string]string{"start": req.StartDate, "end": endDate},
		Metadata: map[string]interface{}{
			"total_days":     len(logs),
			"avg_difficulty": modalDifficulty(logs),
		},
	}, nil
}

func (u *reasoningUsecase) ExplainConcept(ctx context.Context, userID, conceptName string) (*dto.ExplainConceptResponse, error) {
	learned, err := u.conceptRepo.ListNamesByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch learned concepts: %w", err)
	}

	// A typo-tolerant match against the learned list tells the prompt whether
	// this is revision or new material.
	studiedAs := ""
	if match, ok := fuzzy.BestMatch(conceptName, learned); ok {
		studiedAs = match
	}

	prompt := buildExplainPrompt(conceptName, joinNames(learned), studiedAs)
	explanation, err := u.generator.Generate(ctx, prompt, generationTemperature)
	if err != nil {
		return nil, fmt.Errorf("failed to generate explanation for %q: %w", conceptName, err)
	}

	return &dto.ExplainConceptResponse{
		ConceptName:  conceptName,
		Explanation:  explanation,
		Personalized: true,
	}, nil
}

func (u *reasoningUsecase) Search(ctx context.Context, userID string, req dto.SearchRequest) (*dto.SearchResponse, error) {
	searchType := req.SearchType
	if searchType == "" {
		searchType = SearchTypeConcepts
	}
	// Validate before any embedding work happens
	if searchType != SearchTypeConcepts && searchType != SearchTypeLogs {
		return nil, apperr.ErrInvalidSearchType
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 5
	}

	if u.searcher == nil {
		return nil, fmt.Errorf("semantic search is not available: vector store not configured")
	}

	vector, err := u.embedder.Embed(ctx, req.Query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	var results []dto.SearchResult
	if searchType == SearchTypeLogs {
		hits, err := u.searcher.SearchLogs(ctx, vector, limit)
		if err != nil {
			return nil, fmt.Errorf("log search failed: %w", err)
		}
		for _, hit := range hits {
			results = append(results, dto.SearchResult{
				Score: hit.Score,
				Content: map[string]interface{}{
					"log_id":   hit.Payload.LogID,
					"log_date": hit.Payload.LogDate,
					"summary":  hit.Payload.Summary,
					"concepts": hit.Payload.Concepts,
				},
			})
		}
	} else {
		hits, err := u.searcher.SearchConcepts(ctx, vector, limit)
		if err != nil {
			return nil, fmt.Errorf("concept search failed: %w", err)
		}
		for _, hit := range hits {
			results = append(results, dto.SearchResult{
				Score: hit.Score,
				Content: map[string]interface{}{
					"concept_id": hit.Payload.ConceptID,
					"name":       hit.Payload.Name,
					"definition": hit.Payload.Definition,
					"category":   hit.Payload.Category,
				},
			})
		}
	}

	if results == nil {
		results = []dto.SearchResult{}
	}

	return &dto.SearchResponse{Query: req.Query, Results: results}, nil
}

func (u *reasoningUsecase) Guidance(ctx context.Context, userID string) (*dto.GuidanceResponse, error) {
	recentLogs, err := u.logRepo.FindRecentByUser(userID, recentLogCount)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent logs: %w", err)
	}

	concepts, err := u.conceptRepo.ListByUserByMastery(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch concepts: %w", err)
	}

	history := map[string]interface{}{
		"total_days":        len(recentLogs),
		"recent_concepts":   conceptNames(concepts, recentLogCount),
		"mastery_levels":    masteryLevels(concepts),
		"recent_activities": recentActivities(recentLogs),
	}

	encoded, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode history: %w", err)
	}

	guidance, err := u.generator.Generate(ctx, buildGuidancePrompt(string(encoded)), generationTemperature)
	if err != nil {
		return nil, fmt.Errorf("failed to generate guidance: %w", err)
	}

	return &dto.GuidanceResponse{
		Guidance: guidance,
		Context: map[string]interface{}{
			"total_concepts_learned": len(concepts),
			"days_logged":            len(recentLogs),
		},
	}, nil
}

// ResolveEndDate computes the default end of a summary range: the start date
// itself for daily, start+6 days for weekly, start+29 days for monthly.
func ResolveEndDate(mode, startDate string) (string, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return "", fmt.Errorf("invalid start date %q: %w", startDate, err)
	}

	switch mode {
	case "weekly":
		return start.AddDate(0, 0, 6).Format("2006-01-02"), nil
	case "monthly":
		return start.AddDate(0, 0, 29).Format("2006-01-02"), nil
	default:
		return startDate, nil
	}
}

func buildSummaryData(startDate, endDate string, logs []*journaldomain.DailyLog) (string, error) {
	entries := make([]map[string]interface{}, 0, len(logs))
	for _, logEntry := range logs {
		entry := map[string]interface{}{
			"date":       logEntry.LogDate,
			"raw_text":   logEntry.RawText,
			"mood":       logEntry.Mood,
			"difficulty": logEntry.DifficultyLevel,
		}
		if len(logEntry.StructuredData) > 0 {
			entry["structured_data"] = json.RawMessage(logEntry.StructuredData)
		}
		entries = append(entries, entry)
	}

	data := map[string]interface{}{
		"date_range": map[string]string{"start": startDate, "end": endDate},
		"total_days": len(logs),
		"logs":       entries,
	}

	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode summary data: %w", err)
	}
	return string(encoded), nil
}

// modalDifficulty returns the most frequent difficulty tag in the range.
func modalDifficulty(logs []*journaldomain.DailyLog) string {
	counts := make(map[string]int)
	for _, logEntry := range logs {
		if logEntry.DifficultyLevel != "" {
			counts[logEntry.DifficultyLevel]++
		}
	}

	best := string(journaldomain.DifficultyMedium)
	bestCount := 0
	for difficulty, count := range counts {
		if count > bestCount {
			best = difficulty
			bestCount = count
		}
	}
	return best
}

func joinNames(names []string) string {
	return strings.Join(names, ", ")
}

func conceptNames(concepts []*conceptdomain.Concept, limit int) []string {
	names := make([]string, 0, limit)
	for _, c := range concepts {
		if len(names) >= limit {
			break
		}
		names = append(names, c.Name)
	}
	return names
}

func masteryLevels(concepts []*conceptdomain.Concept) map[string]int {
	levels := make(map[string]int, len(concepts))
	for _, c := range concepts {
		levels[c.Name] = c.MasteryLevel
	}
	return levels
}

// recentActivities pulls the activity lists out of the structured blobs of
// the recent logs, skipping anything that does not decode.
func recentActivities(logs []*journaldomain.DailyLog) [][]journaldomain.ActivityEntry {
	activities := make([][]journaldomain.ActivityEntry, 0, len(logs))
	for _, logEntry := range logs {
		if len(logEntry.StructuredData) == 0 {
			continue
		}
		var structured journaldomain.StructuredData
		if err := json.Unmarshal(logEntry.StructuredData, &structured); err != nil {
			continue
		}
		if len(structured.Activities) > 0 {
			activities = append(activities, structured.Activities)
		}
	}
	return activities
}
