package dto

// CreateConceptRequest is the body for POST /concepts.
type CreateConceptRequest struct {
	Name       string `json:"name" binding:"required"`
	Definition string `json:"definition"`
	Category   string `json:"category"`
}
