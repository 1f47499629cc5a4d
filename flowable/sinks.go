package flowable

import (
	"context"
	"sync"
	"sync/atomic"
)

// Subscribe requests every item of src, calling next for each and complete
// once with the terminal error (nil on completion). It mirrors the callback
// style of an unbounded observable.
func Subscribe[T any](ctx context.Context, src Flowable[T], next func(T), complete func(error)) Subscription {
	return SubscribeBatched(ctx, src, Unbounded, next, complete)
}

// SubscribeBatched is Subscribe requesting batch items at a time, asking for
// the next batch once the previous one has been delivered.
func SubscribeBatched[T any](ctx context.Context, src Flowable[T], batch int64, next func(T), complete func(error)) Subscription {
	if batch <= 0 {
		batch = 1
	}

	s := &funcSubscriber[T]{
		batch:    batch,
		next:     next,
		complete: complete,
	}
	src.Subscribe(ctx, s)

	return s
}

type funcSubscriber[T any] struct {
	batch    int64
	next     func(T)
	complete func(error)

	mu        sync.Mutex
	upstream  Subscription
	cancelled bool
	received  int64

	done atomic.Bool
}

func (s *funcSubscriber[T]) OnSubscribe(up Subscription) {
	s.mu.Lock()
	if s.cancelled {
		s.mu.Unlock()
		up.Cancel()
		return
	}
	s.upstream = up
	s.mu.Unlock()

	up.Request(s.batch)
}

func (s *funcSubscriber[T]) OnNext(item T) {
	if s.next != nil {
		s.next(item)
	}

	if s.batch == Unbounded {
		return
	}

	s.mu.Lock()
	s.received++
	refill := s.received == s.batch
	if refill {
		s.received = 0
	}
	up := s.upstream
	s.mu.Unlock()

	if refill {
		up.Request(s.batch)
	}
}

func (s *funcSubscriber[T]) OnError(err error) {
	s.terminate(err)
}

func (s *funcSubscriber[T]) OnComplete() {
	s.terminate(nil)
}

func (s *funcSubscriber[T]) terminate(err error) {
	if !s.done.CompareAndSwap(false, true) {
		return
	}

	if s.complete != nil {
		s.complete(err)
	}
}

func (s *funcSubscriber[T]) Request(n int64) {
	s.mu.Lock()
	up := s.upstream
	s.mu.Unlock()

	if up != nil {
		up.Request(n)
	}
}

func (s *funcSubscriber[T]) Cancel() {
	s.mu.Lock()
	s.cancelled = true
	up := s.upstream
	s.mu.Unlock()

	if up != nil {
		up.Cancel()
	}
}

// ToSlice collects every item of src, blocking until it terminates.
func ToSlice[T any](ctx context.Context, src Flowable[T]) ([]T, error) {
	items := make([]T, 0)
	errs := make(chan error, 1)

	Subscribe(ctx, src,
		func(item T) { items = append(items, item) },
		func(err error) { errs <- err },
	)

	err := <-errs
	return items, err
}
