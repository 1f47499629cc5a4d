package flowable

import (
	"context"
	"sync"
	"sync/atomic"
)

// Emitter is handed to the producer of Create.
type Emitter[T any] interface {
	// Next waits until the subscriber has demand and delivers item. It
	// returns an error once the stream is cancelled, after which the
	// producer should return.
	Next(item T) error
}

// Create builds a flowable from a producer running on its own goroutine.
// The stream completes when produce returns nil and fails with the returned
// error otherwise.
func Create[T any](produce func(ctx context.Context, e Emitter[T]) error) Flowable[T] {
	return FuncFlowable[T](func(ctx context.Context, sub Subscriber[T]) {
		ctx, cancel := context.WithCancel(ctx)
		e := &emitter[T]{
			ctx:    ctx,
			cancel: cancel,
			sub:    sub,
			wake:   make(chan struct{}, 1),
		}

		sub.OnSubscribe(e)

		go func() {
			defer cancel()

			err := produce(ctx, e)

			switch {
			case e.cancelled.Load():
			case e.invalid.Load():
				sub.OnError(ErrInvalidRequest)
			case err != nil:
				sub.OnError(err)
			default:
				sub.OnComplete()
			}
		}()
	})
}

type emitter[T any] struct {
	ctx    context.Context
	cancel context.CancelFunc
	sub    Subscriber[T]

	mu     sync.Mutex
	demand int64
	wake   chan struct{}

	cancelled atomic.Bool
	invalid   atomic.Bool
}

func (e *emitter[T]) Request(n int64) {
	if n <= 0 {
		e.invalid.Store(true)
		e.cancel()
		return
	}

	e.mu.Lock()
	e.demand = addDemand(e.demand, n)
	e.mu.Unlock()

	select {
	case e.wake <- struct{}{}:
	default:
	}
}

func (e *emitter[T]) Cancel() {
	e.cancelled.Store(true)
	e.cancel()
}

func (e *emitter[T]) Next(item T) error {
	for {
		if err := e.ctx.Err(); err != nil {
			return err
		}

		e.mu.Lock()
		if e.demand > 0 {
			if e.demand != Unbounded {
				e.demand--
			}
			e.mu.Unlock()

			e.sub.OnNext(item)
			return nil
		}
		e.mu.Unlock()

		select {
		case <-e.wake:
		case <-e.ctx.Done():
			return e.ctx.Err()
		}
	}
}

// FromSlice emits the items in order and completes.
func FromSlice[T any](items []T) Flowable[T] {
	return Create(func(ctx context.Context, e Emitter[T]) error {
		for _, item := range items {
			if err := e.Next(item); err != nil {
				return err
			}
		}
		return nil
	})
}

// Just emits the given items and completes.
func Just[T any](items ...T) Flowable[T] {
	return FromSlice(items)
}

// Range emits the integers in [from, to) and completes.
func Range(from, to int) Flowable[int] {
	return Create(func(ctx context.Context, e Emitter[int]) error {
		for i := from; i < to; i++ {
			if err := e.Next(i); err != nil {
				return err
			}
		}
		return nil
	})
}

// Empty completes without emitting.
func Empty[T any]() Flowable[T] {
	return FuncFlowable[T](func(ctx context.Context, sub Subscriber[T]) {
		sub.OnSubscribe(emptySubscription{})
		sub.OnComplete()
	})
}

// Error fails with err without emitting.
func Error[T any](err error) Flowable[T] {
	return FuncFlowable[T](func(ctx context.Context, sub Subscriber[T]) {
		sub.OnSubscribe(emptySubscription{})
		sub.OnError(err)
	})
}

// Concat emits the items of each source in turn, subscribing to the next one
// once the previous completed.
func Concat[T any](srcs ...Flowable[T]) Flowable[T] {
	return Create(func(ctx context.Context, e Emitter[T]) error {
		for _, src := range srcs {
			up := &relay[T]{
				items: make(chan T),
				done:  make(chan error, 1),
				stop:  make(chan struct{}),
			}

			src.Subscribe(ctx, up)

			if err := up.drain(ctx, e); err != nil {
				return err
			}
		}
		return nil
	})
}

// relay pulls one item at a time from an upstream source so Concat only
// requests what its own subscriber asked for.
type relay[T any] struct {
	items chan T
	done  chan error
	stop  chan struct{}

	mu  sync.Mutex
	sub Subscription
}

func (r *relay[T]) OnSubscribe(s Subscription) {
	r.mu.Lock()
	r.sub = s
	r.mu.Unlock()

	s.Request(1)
}

func (r *relay[T]) OnNext(item T) {
	select {
	case r.items <- item:
	case <-r.stop:
	}
}

func (r *relay[T]) OnError(err error) { r.done <- err }
func (r *relay[T]) OnComplete()       { r.done <- nil }

func (r *relay[T]) drain(ctx context.Context, e Emitter[T]) error {
	defer close(r.stop)

	for {
		select {
		case item := <-r.items:
			if err := e.Next(item); err != nil {
				r.cancel()
				return err
			}

			r.mu.Lock()
			sub := r.sub
			r.mu.Unlock()
			sub.Request(1)
		case err := <-r.done:
			return err
		case <-ctx.Done():
			r.cancel()
			return ctx.Err()
		}
	}
}

func (r *relay[T]) cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sub != nil {
		r.sub.Cancel()
	}
}
