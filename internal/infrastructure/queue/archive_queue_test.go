package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/rooman-dev/agl-new/internal/core/domain"
)

type recordingArchive struct {
	mu    sync.Mutex
	items []*domain.Submission
	block chan struct{}
	err   error
}

func (a *recordingArchive) Insert(_ context.Context, s *domain.Submission) error {
	if a.block != nil {
		<-a.block
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.items = append(a.items, s)
	return a.err
}

func (a *recordingArchive) snapshot() []*domain.Submission {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]*domain.Submission(nil), a.items...)
}

func TestArchiveQueue_DrainsOnClose(t *testing.T) {
	archive := &recordingArchive{}
	q := NewArchiveQueue(2, archive, zerolog.Nop())
	q.Start(context.Background())

	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		if err := q.Insert(context.Background(), &domain.Submission{Kind: domain.FormContact, Email: email}); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := q.Close(ctx); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if got := len(archive.snapshot()); got != 3 {
		t.Fatalf("expected 3 archived submissions, got %d", got)
	}
}

func TestArchiveQueue_PreservesOrderPerAddress(t *testing.T) {
	archive := &recordingArchive{}
	q := NewArchiveQueue(4, archive, zerolog.Nop())
	q.Start(context.Background())

	for i := 0; i < 20; i++ {
		s := &domain.Submission{Email: "Same@X.com", Name: string(rune('a' + i))}
		if i%2 == 0 {
			s.Email = "same@x.com"
		}
		if err := q.Insert(context.Background(), s); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}
	if err := q.Close(context.Background()); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	items := archive.snapshot()
	for i, s := range items {
		if want := string(rune('a' + i)); s.Name != want {
			t.Fatalf("position %d: expected %q, got %q", i, want, s.Name)
		}
	}
}

func TestArchiveQueue_FullAndClosed(t *testing.T) {
	archive := &recordingArchive{block: make(chan struct{})}
	q := NewArchiveQueue(1, archive, zerolog.Nop())
	q.Start(context.Background())

	var full bool
	for i := 0; i < channelBuffer+2; i++ {
		if err := q.Insert(context.Background(), &domain.Submission{Email: "a@x.com"}); errors.Is(err, ErrQueueFull) {
			full = true
			break
		}
	}
	if !full {
		t.Fatalf("expected ErrQueueFull once the buffer is exhausted")
	}

	close(archive.block)
	if err := q.Close(context.Background()); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if err := q.Insert(context.Background(), &domain.Submission{}); !errors.Is(err, ErrQueueClosed) {
		t.Fatalf("expected ErrQueueClosed, got %v", err)
	}
}

func TestArchiveQueue_WriteErrorsDoNotStopWorker(t *testing.T) {
	archive := &recordingArchive{err: errors.New("mongo down")}
	q := NewArchiveQueue(1, archive, zerolog.Nop())
	q.Start(context.Background())

	_ = q.Insert(context.Background(), &domain.Submission{Email: "a@x.com"})
	_ = q.Insert(context.Background(), &domain.Submission{Email: "a@x.com"})
	if err := q.Close(context.Background()); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if got := len(archive.snapshot()); got != 2 {
		t.Fatalf("expected both writes attempted, got %d", got)
	}
}
