package delivery

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"learnlog-backend/internal/journal/dto"
	"learnlog-backend/internal/journal/usecase"
	"learnlog-backend/pkg/apperr"
)

// JournalHandler handles the daily-log API endpoints
type JournalHandler struct {
	journalUsecase usecase.JournalUsecase
}

// NewJournalHandler creates a new JournalHandler
func NewJournalHandler(journalUsecase usecase.JournalUsecase) *JournalHandler {
	return &JournalHandler{journalUsecase: journalUsecase}
}

// POST /api/v1/logs/daily
func (h *JournalHandler) CreateDailyLog(c *gin.Context) {
	userID := c.GetString("userID")

	var req dto.CreateDailyLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	logEntry, err := h.journalUsecase.CreateDailyLog(c.Request.Context(), userID, req.LogDate, req.RawText)
	if err != nil {
		if errors.Is(err, apperr.ErrDuplicateLog) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create daily log"})
		return
	}

	c.JSON(http.StatusCreated, logEntry)
}

// GET /api/v1/logs/daily/:date
func (h *JournalHandler) GetDailyLog(c *gin.Context) {
	userID := c.GetString("userID")
	logDate := c.Param("date")

	logEntry, err := h.journalUsecase.GetDailyLog(userID, logDate)
	if err != nil {
		if errors.Is(err, apperr.ErrLogNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch daily log"})
		return
	}

	c.JSON(http.StatusOK, logEntry)
}

// GET /api/v1/logs/daily?skip&limit
func (h *JournalHandler) ListDailyLogs(c *gin.Context) {
	userID := c.GetString("userID")

	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	logs, err := h.journalUsecase.ListDailyLogs(userID, skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list daily logs"})
		return
	}

	c.JSON(http.StatusOK, logs)
}

// PUT /api/v1/logs/daily/:date
func (h *JournalHandler) UpdateDailyLog(c *gin.Context) {
	userID := c.GetString("userID")
	logDate := c.Param("date")

	var req dto.UpdateDailyLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	logEntry, err := h.journalUsecase.UpdateDailyLog(c.Request.Context(), userID, logDate, req.RawText)
	if err != nil {
		if errors.Is(err, apperr.ErrLogNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update daily log"})
		return
	}

	c.JSON(http.StatusOK, logEntry)
}
