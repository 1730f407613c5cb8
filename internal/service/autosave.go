package service

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/eduquiz/backend/internal/domain/lesson"
	"github.com/eduquiz/backend/internal/store"
	"github.com/eduquiz/backend/internal/worker"
)

const saveTimeout = 30 * time.Second

// Autosaver writes lesson snapshots to the store in the background so edits
// never wait on I/O. Snapshots are numbered; a write that finds a newer
// snapshot already stored is skipped, so the store always ends up with the
// latest collection even when several workers run.
type Autosaver struct {
	store  store.Store
	pool   *worker.Pool[error]
	logger *slog.Logger

	seq     atomic.Uint64
	pending sync.WaitGroup
	done    chan struct{}

	mu     sync.Mutex // guards closed and every Submit
	closed bool

	saveMu    sync.Mutex
	lastSaved uint64
}

// NewAutosaver starts workers goroutines writing to s.
func NewAutosaver(s store.Store, workers int, logger *slog.Logger) *Autosaver {
	a := &Autosaver{
		store:  s,
		pool:   worker.NewPool[error](workers, 16),
		logger: logger,
		done:   make(chan struct{}),
	}
	go a.collect()
	return a
}

// Save queues a snapshot. The caller hands over ownership: lessons must not
// be modified afterwards. After Close the snapshot is dropped and logged.
func (a *Autosaver) Save(lessons []*lesson.Lesson) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		a.logger.Warn("autosave closed, snapshot dropped", "lessons", len(lessons))
		return
	}

	seq := a.seq.Add(1)
	a.pending.Add(1)
	a.pool.Submit(strconv.FormatUint(seq, 10), func() error {
		return a.save(seq, lessons)
	})
}

// Flush blocks until every queued snapshot has been written or has failed.
func (a *Autosaver) Flush() {
	a.pending.Wait()
}

// Close flushes and stops the workers. It is safe to call more than once.
func (a *Autosaver) Close() {
	a.mu.Lock()
	if !a.closed {
		a.closed = true
		a.pool.Close()
	}
	a.mu.Unlock()
	<-a.done
}

// save uses context.Background because the write must not be cancelled when
// the request that triggered it ends.
func (a *Autosaver) save(seq uint64, lessons []*lesson.Lesson) error {
	a.saveMu.Lock()
	defer a.saveMu.Unlock()

	if seq <= a.lastSaved {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	if err := a.store.SaveLessons(ctx, lessons); err != nil {
		return err
	}
	a.lastSaved = seq
	return nil
}

func (a *Autosaver) collect() {
	defer close(a.done)
	for res := range a.pool.Results() {
		if res.Output != nil {
			a.logger.Error("autosave failed",
				"snapshot", res.JobID,
				"error", res.Output,
			)
		} else {
			a.logger.Debug("snapshot saved", "snapshot", res.JobID)
		}
		a.pending.Done()
	}
}
