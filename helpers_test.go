package rxsig_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// subject is an observable driven by the test. Emissions are delivered on the
// caller's goroutine.
type subject[T any] struct {
	observed atomic.Int32

	mu       sync.Mutex
	next     func(T)
	complete func(error)
	done     bool
}

func (s *subject[T]) Observe(ctx context.Context, next func(T), complete func(error)) {
	s.observed.Add(1)

	s.mu.Lock()
	s.next, s.complete, s.done = next, complete, false
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.terminate(ctx.Err())
	}()
}

func (s *subject[T]) Emit(items ...T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range items {
		if s.next != nil && !s.done {
			s.next(item)
		}
	}
}

func (s *subject[T]) Complete() { s.terminate(nil) }

func (s *subject[T]) Fail(err error) { s.terminate(err) }

func (s *subject[T]) terminate(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.complete == nil || s.done {
		return
	}
	s.done = true
	s.complete(err)
}

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for termination")
	}
}

const (
	testWait = 50 * time.Millisecond
	testTick = 5 * time.Millisecond
)
