package usecase

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"learnlog-backend/internal/journal/domain"
	"learnlog-backend/internal/journal/repository"
	"learnlog-backend/pkg/chroma"
)

// IndexJob is one pending vector upsert for a daily log.
type IndexJob struct {
	LogID    string
	LogDate  string
	RawText  string
	Concepts []string
}

// IndexWorkerService re-attempts vector upserts that failed (or never ran)
// at ingestion time. The relational row is the source of truth; this worker
// drives the vector index toward it: a reconciler periodically scans for logs
// whose index status is pending or failed and enqueues them for the workers.
type IndexWorkerService struct {
	logRepo     repository.DailyLogRepository
	embedder    Embedder
	vectorIndex VectorIndex

	jobQueue          chan IndexJob
	workerWg          sync.WaitGroup
	workerCount       int
	reconcileInterval time.Duration
	stopChan          chan struct{}
	reconcilerDone    chan struct{}
	started           bool
	mu                sync.Mutex
}

// NewIndexWorkerService creates a new index worker service
func NewIndexWorkerService(
	logRepo repository.DailyLogRepository,
	embedder Embedder,
	vectorIndex VectorIndex,
	workerCount int,
) *IndexWorkerService {
	if workerCount <= 0 {
		workerCount = 2
	}

	return &IndexWorkerService{
		logRepo:           logRepo,
		embedder:          embedder,
		vectorIndex:       vectorIndex,
		jobQueue:          make(chan IndexJob, 200),
		workerCount:       workerCount,
		reconcileInterval: 5 * time.Minute,
		stopChan:          make(chan struct{}),
		reconcilerDone:    make(chan struct{}),
	}
}

// Start launches the workers and the reconciler loop
func (s *IndexWorkerService) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return
	}

	for i := 0; i < s.workerCount; i++ {
		s.workerWg.Add(1)
		go s.worker(i)
	}

	go s.reconcileLoop()

	s.started = true
	log.Printf("[IndexWorker] Started %d workers (reconcile interval: %s)", s.workerCount, s.reconcileInterval)
}

// Stop stops the reconciler and drains the workers gracefully. The job queue
// is only closed after the reconciler has exited: an in-flight reconcile pass
// still enqueues into an open queue, never into a closed one.
func (s *IndexWorkerService) Stop() {
	s.mu.Lock()
	started := s.started
	s.started = false
	s.mu.Unlock()
	if !started {
		return
	}

	close(s.stopChan)
	<-s.reconcilerDone
	close(s.jobQueue)
	s.workerWg.Wait()
	log.Println("[IndexWorker] All workers stopped")
}

// QueueJob enqueues a job without blocking. Returns false when the queue is
// full; the reconciler will pick the log up again on its next pass.
func (s *IndexWorkerService) QueueJob(job IndexJob) bool {
	select {
	case s.jobQueue <- job:
		return true
	default:
		return false
	}
}

func (s *IndexWorkerService) worker(id int) {
	defer s.workerWg.Done()

	for job := range s.jobQueue {
		s.processJob(job)
	}

	log.Printf("[IndexWorker] Worker %d stopped", id)
}

func (s *IndexWorkerService) processJob(job IndexJob) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	vector, err := s.embedder.Embed(ctx, job.RawText)
	if err != nil {
		log.Printf("[IndexWorker] failed to embed log %s: %v", job.LogID, err)
		s.recordStatus(job.LogID, domain.IndexStatusFailed)
		return
	}

	payload := chroma.LogPayload{
		LogID:    job.LogID,
		LogDate:  job.LogDate,
		Summary:  TruncateSummary(job.RawText),
		Concepts: job.Concepts,
	}
	if err := s.vectorIndex.UpsertLog(ctx, job.LogID, vector, payload); err != nil {
		log.Printf("[IndexWorker] failed to index log %s: %v", job.LogID, err)
		s.recordStatus(job.LogID, domain.IndexStatusFailed)
		return
	}

	s.recordStatus(job.LogID, domain.IndexStatusIndexed)
}

func (s *IndexWorkerService) recordStatus(logID string, status domain.IndexStatus) {
	if err := s.logRepo.UpdateIndexStatus(logID, status); err != nil {
		log.Printf("[IndexWorker] failed to record index status for log %s: %v", logID, err)
	}
}

func (s *IndexWorkerService) reconcileLoop() {
	defer close(s.reconcilerDone)

	// Run once on start, then on every tick
	s.reconcile()

	ticker := time.NewTicker(s.reconcileInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.reconcile()
		case <-s.stopChan:
			return
		}
	}
}

// reconcile enqueues every log whose vector point is missing or stale.
func (s *IndexWorkerService) reconcile() {
	logs, err := s.logRepo.FindByIndexStatus(
		[]domain.IndexStatus{domain.IndexStatusPending, domain.IndexStatusFailed}, 50)
	if err != nil {
		log.Printf("[IndexWorker] reconcile scan failed: %v", err)
		return
	}
	if len(logs) == 0 {
		return
	}

	queued := 0
	for _, logEntry := range logs {
		var structured domain.StructuredData
		if len(logEntry.StructuredData) > 0 {
			if err := json.Unmarshal(logEntry.StructuredData, &structured); err != nil {
				log.Printf("[IndexWorker] bad structured data on log %s: %v", logEntry.ID, err)
			}
		}

		job := IndexJob{
			LogID:    logEntry.ID,
			LogDate:  logEntry.LogDate,
			RawText:  logEntry.RawText,
			Concepts: structured.Concepts,
		}
		if s.QueueJob(job) {
			queued++
		}
	}

	if queued > 0 {
		log.Printf("[IndexWorker] reconcile queued %d logs for indexing", queued)
	}
}
