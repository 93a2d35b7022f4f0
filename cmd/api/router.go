package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	conceptDelivery "learnlog-backend/internal/concept/delivery"
	journalDelivery "learnlog-backend/internal/journal/delivery"
	reasoningDelivery "learnlog-backend/internal/reasoning/delivery"
)

func SetupRoutes(
	r *gin.Engine,
	identity gin.HandlerFunc,
	journalHandler *journalDelivery.JournalHandler,
	conceptHandler *conceptDelivery.ConceptHandler,
	reasoningHandler *reasoningDelivery.ReasoningHandler,
) {
	// Health check (no identity required)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	api.Use(identity)
	{
		// Daily log routes
		logs := api.Group("/logs")
		{
			logs.POST("/daily", journalHandler.CreateDailyLog)
			logs.GET("/daily", journalHandler.ListDailyLogs)
			logs.GET("/daily/:date", journalHandler.GetDailyLog)
			logs.PUT("/daily/:date", journalHandler.UpdateDailyLog)
		}

		// Concept routes
		concepts := api.Group("/concepts")
		{
			concepts.POST("", conceptHandler.CreateConcept)
			concepts.GET("", conceptHandler.ListConcepts)
		}

		// AI reasoning routes
		reasoning := api.Group("/reasoning")
		{
			reasoning.POST("/summarize", reasoningHandler.Summarize)
			reasoning.POST("/explain", reasoningHandler.Explain)
			reasoning.POST("/search", reasoningHandler.Search)
			reasoning.GET("/guidance", reasoningHandler.Guidance)
		}
	}
}
