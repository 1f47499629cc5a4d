package rxsig

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/cilium/stream"

	"github.com/AnatoleLucet/rxsig/flowable"
)

// Subscription is a running stream observation that can be disposed.
type Subscription struct {
	cancel   context.CancelFunc
	disposed atomic.Bool

	done     chan struct{}
	doneOnce sync.Once
}

// SubscribeObservable observes src until it terminates, ctx ends or the
// subscription is disposed. next and complete may be nil.
func SubscribeObservable[T any](ctx context.Context, src stream.Observable[T], next func(T), complete func(error)) *Subscription {
	ctx, s := newSubscription(ctx)
	src.Observe(ctx, orNop(next), s.completeFunc(complete))
	return s
}

// SubscribeFlowable subscribes to src with unbounded demand.
func SubscribeFlowable[T any](ctx context.Context, src flowable.Flowable[T], next func(T), complete func(error)) *Subscription {
	ctx, s := newSubscription(ctx)
	flowable.Subscribe(ctx, src, orNop(next), s.completeFunc(complete))
	return s
}

func newSubscription(ctx context.Context) (context.Context, *Subscription) {
	ctx, cancel := context.WithCancel(ctx)
	return ctx, &Subscription{
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

func (s *Subscription) completeFunc(complete func(error)) func(error) {
	return func(err error) {
		if complete != nil {
			complete(err)
		}
		s.doneOnce.Do(func() {
			s.cancel()
			close(s.done)
		})
	}
}

// Dispose cancels the observation. Calling it again does nothing.
func (s *Subscription) Dispose() {
	if s.disposed.CompareAndSwap(false, true) {
		s.cancel()
	}
}

// IsDisposed reports whether Dispose was called.
func (s *Subscription) IsDisposed() bool {
	return s.disposed.Load()
}

// Done is closed once the stream terminated, including by cancellation.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

func orNop[T any](fn func(T)) func(T) {
	if fn == nil {
		return func(T) {}
	}
	return fn
}
