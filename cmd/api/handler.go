package api

import (
	"strings"

	"github.com/gin-gonic/gin"

	conceptDelivery "learnlog-backend/internal/concept/delivery"
	conceptUsecasePkg "learnlog-backend/internal/concept/usecase"
	identityDelivery "learnlog-backend/internal/identity/delivery"
	identityRepo "learnlog-backend/internal/identity/repository"
	journalDelivery "learnlog-backend/internal/journal/delivery"
	journalUsecasePkg "learnlog-backend/internal/journal/usecase"
	reasoningDelivery "learnlog-backend/internal/reasoning/delivery"
	reasoningUsecasePkg "learnlog-backend/internal/reasoning/usecase"
	"learnlog-backend/pkg/config"
)

type Handler struct {
	config           *config.Config
	userRepo         identityRepo.UserRepository
	journalHandler   *journalDelivery.JournalHandler
	conceptHandler   *conceptDelivery.ConceptHandler
	reasoningHandler *reasoningDelivery.ReasoningHandler
}

func NewHandler(
	cfg *config.Config,
	userRepo identityRepo.UserRepository,
	journalUc journalUsecasePkg.JournalUsecase,
	conceptUc conceptUsecasePkg.ConceptUsecase,
	reasoningUc reasoningUsecasePkg.ReasoningUsecase,
) *Handler {
	return &Handler{
		config:           cfg,
		userRepo:         userRepo,
		journalHandler:   journalDelivery.NewJournalHandler(journalUc),
		conceptHandler:   conceptDelivery.NewConceptHandler(conceptUc),
		reasoningHandler: reasoningDelivery.NewReasoningHandler(reasoningUc),
	}
}

func (h *Handler) Start(addr string) error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	allowed := strings.Split(h.config.AllowedOrigins, ",")

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		for _, a := range allowed {
			if strings.TrimSpace(a) == origin {
				c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
				break
			}
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Cache-Control, X-Requested-With, X-User-Email")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	identity := identityDelivery.IdentityMiddleware(h.userRepo, h.config.DefaultUserEmail)
	SetupRoutes(r, identity, h.journalHandler, h.conceptHandler, h.reasoningHandler)

	return r.Run(addr)
}
