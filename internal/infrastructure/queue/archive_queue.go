package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/rooman-dev/agl-new/internal/core/domain"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

var (
	// ErrQueueFull is returned by Insert when the target worker is saturated.
	ErrQueueFull = errors.New("archive queue full")
	// ErrQueueClosed is returned by Insert after Close.
	ErrQueueClosed = errors.New("archive queue closed")
)

// Archive is the durable store the workers write to.
type Archive interface {
	Insert(ctx context.Context, s *domain.Submission) error
}

// ArchiveQueue hands form submissions to a fixed set of workers that write
// them to the archive, so the form request never waits on the store.
// Submissions from the same address go to the same worker and are written
// in arrival order.
type ArchiveQueue struct {
	workers []chan *domain.Submission
	archive Archive
	log     zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewArchiveQueue creates an ArchiveQueue with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewArchiveQueue(numWorkers int, archive Archive, log zerolog.Logger) *ArchiveQueue {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	q := &ArchiveQueue{
		workers: make([]chan *domain.Submission, numWorkers),
		archive: archive,
		log:     log,
	}
	for i := range q.workers {
		q.workers[i] = make(chan *domain.Submission, channelBuffer)
	}
	return q
}

// Start launches the worker goroutines. ctx is used for the archive writes;
// workers exit once Close has drained their channels.
func (q *ArchiveQueue) Start(ctx context.Context) {
	for i, ch := range q.workers {
		q.wg.Add(1)
		go q.runWorker(ctx, i, ch)
	}
}

// Insert enqueues s without blocking.
func (q *ArchiveQueue) Insert(_ context.Context, s *domain.Submission) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.workers[q.shardIndex(s.Email)] <- s:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting submissions and waits for the workers to drain,
// or for ctx to expire.
func (q *ArchiveQueue) Close(ctx context.Context) error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		for _, ch := range q.workers {
			close(ch)
		}
	}
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// shardIndex maps an address deterministically to a worker index.
func (q *ArchiveQueue) shardIndex(email string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(email)))
	return int(h.Sum32() % uint32(len(q.workers)))
}

func (q *ArchiveQueue) runWorker(ctx context.Context, id int, ch <-chan *domain.Submission) {
	defer q.wg.Done()
	for s := range ch {
		if err := q.archive.Insert(ctx, s); err != nil {
			q.log.Error().Err(err).
				Str("kind", string(s.Kind)).
				Int("worker_id", id).
				Msg("submission archive failed")
		}
	}
}
