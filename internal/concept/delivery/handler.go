package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"learnlog-backend/internal/concept/dto"
	"learnlog-backend/internal/concept/usecase"
)

// ConceptHandler handles the concept API endpoints
type ConceptHandler struct {
	conceptUsecase usecase.ConceptUsecase
}

// NewConceptHandler creates a new ConceptHandler
func NewConceptHandler(conceptUsecase usecase.ConceptUsecase) *ConceptHandler {
	return &ConceptHandler{conceptUsecase: conceptUsecase}
}

// POST /api/v1/concepts
func (h *ConceptHandler) CreateConcept(c *gin.Context) {
	userID := c.GetString("userID")

	var req dto.CreateConceptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	concept, err := h.conceptUsecase.CreateConcept(c.Request.Context(), userID, req.Name, req.Definition, req.Category)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create concept"})
		return
	}

	c.JSON(http.StatusCreated, concept)
}

// GET /api/v1/concepts
func (h *ConceptHandler) ListConcepts(c *gin.Context) {
	userID := c.GetString("userID")

	concepts, err := h.conceptUsecase.ListConcepts(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list concepts"})
		return
	}

	c.JSON(http.StatusOK, concepts)
}
