package dto

// SummarizeRequest selects a date range and the summary style.
// When end_date is omitted it is derived from the mode.
type SummarizeRequest struct {
	Mode      string `json:"mode" binding:"required,oneof=daily weekly monthly"`
	StartDate string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
}

// SummarizeResponse carries the generated summary plus range metadata.
type SummarizeResponse struct {
	Summary   string                 `json:"summary"`
	Mode      string                 `json:"mode"`
	DateRange map[string]string      `json:"date_range"`
	Metadata  map[string]interface{} `json:"metadata"`
}

// ExplainConceptRequest names the concept to explain. No existence check is
// performed; unknown concepts are explained generically.
type ExplainConceptRequest struct {
	ConceptName string `json:"concept_name" binding:"required"`
}

// ExplainConceptResponse carries the personalized explanation.
type ExplainConceptResponse struct {
	ConceptName  string `json:"concept_name"`
	Explanation  string `json:"explanation"`
	Personalized bool   `json:"personalized"`
}

// SearchRequest is a semantic similarity query against one collection.
type SearchRequest struct {
	Query      string `json:"query" binding:"required"`
	SearchType string `json:"search_type"`
	Limit      int    `json:"limit" binding:"omitempty,min=1,max=20"`
}

// SearchResult is one hit: similarity score plus the stored payload.
type SearchResult struct {
	Score   float64                `json:"score"`
	Content map[string]interface{} `json:"content"`
}

// SearchResponse echoes the query with its ordered hits.
type SearchResponse struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
}

// GuidanceResponse carries next-step recommendations with the history
// context they were derived from.
type GuidanceResponse struct {
	Guidance string                 `json:"guidance"`
	Context  map[string]interface{} `json:"context"`
}
