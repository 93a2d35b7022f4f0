package usecase

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gorm.io/datatypes"

	"learnlog-backend/internal/journal/domain"
)

// gatedLogRepo is a goroutine-safe repository for the index worker tests.
// When scanGate is set, FindByIndexStatus blocks until the gate is closed.
type gatedLogRepo struct {
	mu       sync.Mutex
	logs     map[string]*domain.DailyLog
	scanGate chan struct{}
}

func newGatedLogRepo() *gatedLogRepo {
	return &gatedLogRepo{logs: make(map[string]*domain.DailyLog)}
}

func (r *gatedLogRepo) add(log *domain.DailyLog) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs[log.ID] = log
}

func (r *gatedLogRepo) status(id string) domain.IndexStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.logs[id].IndexStatus
}

func (r *gatedLogRepo) Create(log *domain.DailyLog) error { r.add(log); return nil }

func (r *gatedLogRepo) FindByUserAndDate(userID, logDate string) (*domain.DailyLog, error) {
	return nil, nil
}

func (r *gatedLogRepo) FindByUserInRange(userID, startDate, endDate string) ([]*domain.DailyLog, error) {
	return nil, nil
}

func (r *gatedLogRepo) ListByUser(userID string, skip, limit int) ([]*domain.DailyLog, error) {
	return nil, nil
}

func (r *gatedLogRepo) FindRecentByUser(userID string, limit int) ([]*domain.DailyLog, error) {
	return nil, nil
}

func (r *gatedLogRepo) Update(log *domain.DailyLog) error { return nil }

func (r *gatedLogRepo) UpdateIndexStatus(id string, status domain.IndexStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if log, ok := r.logs[id]; ok {
		log.IndexStatus = status
	}
	return nil
}

func (r *gatedLogRepo) FindByIndexStatus(statuses []domain.IndexStatus, limit int) ([]*domain.DailyLog, error) {
	if r.scanGate != nil {
		<-r.scanGate
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.DailyLog
	for _, l := range r.logs {
		for _, s := range statuses {
			if l.IndexStatus == s {
				out = append(out, l)
				break
			}
		}
	}
	return out, nil
}

func pendingLog(id, status string) *domain.DailyLog {
	blob, _ := json.Marshal(domain.StructuredData{Concepts: []string{"recursion"}})
	return &domain.DailyLog{
		ID:             id,
		UserID:         "user-1",
		LogDate:        "2026-01-22",
		RawText:        "worked through recursion exercises",
		StructuredData: datatypes.JSON(blob),
		IndexStatus:    domain.IndexStatus(status),
	}
}

func TestIndexWorkerReconcile(t *testing.T) {
	t.Run("failed log is re-enqueued and flipped to indexed", func(t *testing.T) {
		repo := newGatedLogRepo()
		repo.add(pendingLog("l1", string(domain.IndexStatusFailed)))

		index := &fakeIndex{}
		worker := NewIndexWorkerService(repo, &fakeEmbedder{}, index, 1)
		worker.Start()

		require.Eventually(t, func() bool {
			return repo.status("l1") == domain.IndexStatusIndexed
		}, 2*time.Second, 10*time.Millisecond)

		worker.Stop()

		require.Len(t, index.upserted, 1)
		assert.Equal(t, "l1", index.upserted[0].LogID)
		assert.Equal(t, []string{"recursion"}, index.upserted[0].Concepts, "concepts come from the stored blob")
	})

	t.Run("pending log is picked up too", func(t *testing.T) {
		repo := newGatedLogRepo()
		repo.add(pendingLog("l2", string(domain.IndexStatusPending)))

		worker := NewIndexWorkerService(repo, &fakeEmbedder{}, &fakeIndex{}, 1)
		worker.Start()

		require.Eventually(t, func() bool {
			return repo.status("l2") == domain.IndexStatusIndexed
		}, 2*time.Second, 10*time.Millisecond)

		worker.Stop()
	})
}

func TestIndexWorkerStop(t *testing.T) {
	t.Run("stop waits out an in-flight reconcile scan", func(t *testing.T) {
		repo := newGatedLogRepo()
		repo.add(pendingLog("l1", string(domain.IndexStatusPending)))
		repo.scanGate = make(chan struct{})

		worker := NewIndexWorkerService(repo, &fakeEmbedder{}, &fakeIndex{}, 1)
		worker.Start()

		stopped := make(chan struct{})
		go func() {
			worker.Stop()
			close(stopped)
		}()

		// Let Stop reach its wait while the scan is still blocked, then
		// release the scan; the reconciler must still be able to enqueue.
		time.Sleep(50 * time.Millisecond)
		close(repo.scanGate)

		select {
		case <-stopped:
		case <-time.After(2 * time.Second):
			t.Fatal("Stop did not return after the reconcile scan finished")
		}
	})

	t.Run("stop before start is a no-op", func(t *testing.T) {
		worker := NewIndexWorkerService(newGatedLogRepo(), &fakeEmbedder{}, &fakeIndex{}, 1)
		worker.Stop()
	})
}
