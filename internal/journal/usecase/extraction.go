package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"learnlog-backend/internal/journal/domain"
	"learnlog-backend/pkg/ai"
)

// extractionTemperature keeps the structured extraction close to deterministic.
const extractionTemperature = 0.3

const extractionPromptTemplate = `Extract structured information from this learning journal daily log:

TEXT:
%s

Extract and return ONLY a valid JSON object with this structure:
{
  "concepts": ["concept1", "concept2", ...],
  "activities": [
    {"type": "coding/debugging/learning/meeting", "description": "...", "duration_minutes": 60}
  ],
  "assignments": [
    {"title": "...", "description": "...", "due_date": "YYYY-MM-DD or null"}
  ],
  "mood": "positive/neutral/negative/frustrated/excited",
  "difficulty_level": "easy/medium/hard",
  "key_learnings": ["learning1", "learning2", ...]
}

Be precise and extract only what's clearly mentioned. Return ONLY the JSON, no other text.`

// ExtractionService builds the fixed-schema extraction prompt, runs it through
// the provider chain and decodes the response strictly. Any failure along the
// way degrades to the default record; ingestion never sees an extraction error.
type ExtractionService struct {
	generator ai.TextGenerator
}

// NewExtractionService creates a new ExtractionService
func NewExtractionService(generator ai.TextGenerator) *ExtractionService {
	return &ExtractionService{generator: generator}
}

// DefaultStructuredData is the record stored when extraction cannot produce
// one: all lists empty but non-nil, mood neutral, difficulty medium.
func DefaultStructuredData() domain.StructuredData {
	return domain.StructuredData{
		Concepts:        []string{},
		Activities:      []domain.ActivityEntry{},
		Assignments:     []domain.AssignmentEntry{},
		Mood:            string(domain.MoodNeutral),
		DifficultyLevel: string(domain.DifficultyMedium),
		KeyLearnings:    []string{},
	}
}

// Extract implements Extractor.
func (s *ExtractionService) Extract(ctx context.Context, rawText string) domain.StructuredData {
	prompt := fmt.Sprintf(extractionPromptTemplate, rawText)

	response, err := s.generator.Generate(ctx, prompt, extractionTemperature)
	if err != nil {
		log.Printf("[Extraction] generation failed, storing default record: %v", err)
		return DefaultStructuredData()
	}

	record, err := parseStructuredResponse(response)
	if err != nil {
		log.Printf("[Extraction] failed to parse response, storing default record: %v", err)
		return DefaultStructuredData()
	}

	return normalize(record)
}

// parseStructuredResponse decodes the model output strictly: markdown fences
// are stripped, then the whole remainder must be exactly one JSON object with
// no unknown fields and no trailing text. Anything else fails closed.
func parseStructuredResponse(response string) (domain.StructuredData, error) {
	var record domain.StructuredData

	cleaned := stripMarkdownFences(response)
	if cleaned == "" {
		return record, fmt.Errorf("empty response")
	}

	dec := json.NewDecoder(strings.NewReader(cleaned))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&record); err != nil {
		return record, fmt.Errorf("failed to decode structured record: %w", err)
	}
	if dec.More() {
		return record, fmt.Errorf("trailing content after structured record")
	}

	return record, nil
}

func stripMarkdownFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}
	return strings.TrimSpace(text)
}

// normalize guarantees the stored record's invariants: lists are never nil and
// enum fields only hold known values.
func normalize(record domain.StructuredData) domain.StructuredData {
	if record.Concepts == nil {
		record.Concepts = []string{}
	}
	if record.Activities == nil {
		record.Activities = []domain.ActivityEntry{}
	}
	if record.Assignments == nil {
		record.Assignments = []domain.AssignmentEntry{}
	}
	if record.KeyLearnings == nil {
		record.KeyLearnings = []string{}
	}

	switch domain.Mood(record.Mood) {
	case domain.MoodPositive, domain.MoodNeutral, domain.MoodNegative, domain.MoodFrustrated, domain.MoodExcited:
	default:
		record.Mood = string(domain.MoodNeutral)
	}

	switch domain.Difficulty(record.DifficultyLevel) {
	case domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard:
	default:
		record.DifficultyLevel = string(domain.DifficultyMedium)
	}

	return record
}
