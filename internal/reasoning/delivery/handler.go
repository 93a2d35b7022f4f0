package delivery

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"learnlog-backend/internal/reasoning/dto"
	"learnlog-backend/internal/reasoning/usecase"
	"learnlog-backend/pkg/apperr"
)

// ReasoningHandler handles the AI-powered query endpoints
type ReasoningHandler struct {
	reasoningUsecase usecase.ReasoningUsecase
}

// NewReasoningHandler creates a new ReasoningHandler
func NewReasoningHandler(reasoningUsecase usecase.ReasoningUsecase) *ReasoningHandler {
	return &ReasoningHandler{reasoningUsecase: reasoningUsecase}
}

// POST /api/v1/reasoning/summarize
func (h *ReasoningHandler) Summarize(c *gin.Context) {
	userID := c.GetString("userID")

	var req dto.SummarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.reasoningUsecase.Summarize(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperr.ErrNoLogsInRange) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// POST /api/v1/reasoning/explain
func (h *ReasoningHandler) Explain(c *gin.Context) {
	userID := c.GetString("userID")

	var req dto.ExplainConceptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.reasoningUsecase.ExplainConcept(c.Request.Context(), userID, req.ConceptName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// POST /api/v1/reasoning/search
func (h *ReasoningHandler) Search(c *gin.Context) {
	userID := c.GetString("userID")

	var req dto.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.reasoningUsecase.Search(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperr.ErrInvalidSearchType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GET /api/v1/reasoning/guidance
func (h *ReasoningHandler) Guidance(c *gin.Context) {
	userID := c.GetString("userID")

	resp, err := h.reasoningUsecase.Guidance(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}
