package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	api "learnlog-backend/cmd/api"
	conceptdomain "learnlog-backend/internal/concept/domain"
	conceptRepo "learnlog-backend/internal/concept/repository"
	conceptUsecase "learnlog-backend/internal/concept/usecase"
	identitydomain "learnlog-backend/internal/identity/domain"
	identityRepo "learnlog-backend/internal/identity/repository"
	journaldomain "learnlog-backend/internal/journal/domain"
	journalRepo "learnlog-backend/internal/journal/repository"
	journalUsecase "learnlog-backend/internal/journal/usecase"
	patterndomain "learnlog-backend/internal/pattern/domain"
	reasoningUsecase "learnlog-backend/internal/reasoning/usecase"
	"learnlog-backend/pkg/ai"
	"learnlog-backend/pkg/chroma"
	"learnlog-backend/pkg/config"
	"learnlog-backend/pkg/database"
	"learnlog-backend/pkg/gemini"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(
		&identitydomain.User{},
		&journaldomain.DailyLog{},
		&journaldomain.Activity{},
		&journaldomain.Assignment{},
		&journaldomain.Project{},
		&conceptdomain.Concept{},
		&conceptdomain.ConceptRelation{},
		&conceptdomain.LogConcept{},
		&patterndomain.LearningPattern{},
		&patterndomain.PatternInstance{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	userRepository := identityRepo.NewGormUserRepository(db)
	logRepository := journalRepo.NewGormDailyLogRepository(db)
	conceptRepository := conceptRepo.NewGormConceptRepository(db)

	// Text generation chain: Gemini -> OpenAI -> Claude
	generator := ai.NewTextGenerator(ai.Config{
		GeminiAPIKey: cfg.GeminiAPIKey,
		OpenAIAPIKey: cfg.OpenAIAPIKey,
		ClaudeAPIKey: cfg.ClaudeAPIKey,
	})

	// Embedding service (errors at call time if the key is missing)
	embedder := gemini.NewEmbeddingService(cfg.GeminiAPIKey)

	// Vector store. The app runs without it: logs stay in index status
	// pending and semantic search is unavailable until it comes back.
	var vectorStore *chroma.VectorStore
	store, err := chroma.NewVectorStore(cfg)
	if err != nil {
		log.Printf("[WARN] Failed to initialize vector store: %v. Semantic search will not be available.", err)
	} else {
		vectorStore = store
		log.Println("Vector store initialized successfully")
	}

	// A nil *VectorStore must not leak into the usecases as a non-nil
	// interface, so the interface values are only assigned on success.
	var journalIndex journalUsecase.VectorIndex
	var conceptIndex conceptUsecase.VectorIndex
	var searcher reasoningUsecase.VectorSearcher
	if vectorStore != nil {
		journalIndex = vectorStore
		conceptIndex = vectorStore
		searcher = vectorStore
	}

	// Initialize use cases (dependency injection)
	extractor := journalUsecase.NewExtractionService(generator)
	journalUc := journalUsecase.NewJournalUsecase(logRepository, extractor, embedder, journalIndex, cfg.ReindexOnUpdate)
	conceptUc := conceptUsecase.NewConceptUsecase(conceptRepository, embedder, conceptIndex)
	reasoningUc := reasoningUsecase.NewReasoningUsecase(logRepository, conceptRepository, generator, embedder, searcher)

	// Background index worker: retries failed vector upserts and reconciles
	// logs that were persisted while the vector store was down
	var indexWorker *journalUsecase.IndexWorkerService
	if vectorStore != nil {
		indexWorker = journalUsecase.NewIndexWorkerService(logRepository, embedder, journalIndex, cfg.IndexWorkerCount)
		indexWorker.Start()
		log.Println("Index worker service started")
	} else {
		log.Println("[WARN] Index worker disabled: no vector store")
	}

	// Initialize HTTP handler
	handler := api.NewHandler(cfg, userRepository, journalUc, conceptUc, reasoningUc)

	// Start server
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := handler.Start(":" + cfg.Port); err != nil {
			log.Fatal("Failed to start server:", err)
		}
	}()

	// Drain the index worker before exiting
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	if indexWorker != nil {
		indexWorker.Stop()
	}
}
