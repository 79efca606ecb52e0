package workers

import (
	"context"
	"sync"
	"time"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
	"github.com/comitanigiacomo/kanso-wellness/internal/logger"
)

type SnapshotSaver interface {
	Save(ctx context.Context, userID string, snapshot *domain.Snapshot) error
}

type PersistJob struct {
	UserID   string
	Snapshot *domain.Snapshot
}

// PersistWorker writes snapshots in the background. Enqueue never blocks;
// failed saves are logged and dropped, the in-memory copy stays authoritative.
type PersistWorker struct {
	repo        SnapshotSaver
	jobs        chan PersistJob
	log         logger.Logger
	saveTimeout time.Duration

	startOnce sync.Once
	done      chan struct{}
}

func NewPersistWorker(repo SnapshotSaver, queueSize int, log logger.Logger) *PersistWorker {
	if queueSize < 1 {
		queueSize = 1
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &PersistWorker{
		repo:        repo,
		jobs:        make(chan PersistJob, queueSize),
		log:         log,
		saveTimeout: 5 * time.Second,
		done:        make(chan struct{}),
	}
}

func (w *PersistWorker) Start(ctx context.Context) {
	w.startOnce.Do(func() {
		go func() {
			defer close(w.done)
			w.log.Info("persist worker started")
			for {
				select {
				case job := <-w.jobs:
					w.processJob(ctx, job)
				case <-ctx.Done():
					w.log.Info("persist worker shutting down")
					return
				}
			}
		}()
	})
}

// Enqueue schedules a save of snapshot. The caller must not mutate it afterwards.
func (w *PersistWorker) Enqueue(userID string, snapshot *domain.Snapshot) bool {
	select {
	case w.jobs <- PersistJob{UserID: userID, Snapshot: snapshot}:
		return true
	default:
		w.log.Warnf("persist queue full, dropping snapshot save for user %s", userID)
		return false
	}
}

// Drain waits for the background loop to stop, then saves whatever is still
// queued until the queue is empty or ctx expires.
func (w *PersistWorker) Drain(ctx context.Context) int {
	// never started: nothing to wait for
	w.startOnce.Do(func() { close(w.done) })
	select {
	case <-w.done:
	case <-ctx.Done():
		return 0
	}

	saved := 0
	for {
		select {
		case job := <-w.jobs:
			w.processJob(ctx, job)
			saved++
		case <-ctx.Done():
			return saved
		default:
			return saved
		}
	}
}

func (w *PersistWorker) Pending() int {
	return len(w.jobs)
}

func (w *PersistWorker) processJob(ctx context.Context, job PersistJob) {
	if ctx.Err() != nil {
		ctx = context.Background()
	}
	saveCtx, cancel := context.WithTimeout(ctx, w.saveTimeout)
	defer cancel()

	if err := w.repo.Save(saveCtx, job.UserID, job.Snapshot); err != nil {
		w.log.Errorf("failed to persist snapshot for user %s: %v", job.UserID, err)
		return
	}
	w.log.Debugf("snapshot persisted for user %s", job.UserID)
}
