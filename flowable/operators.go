package flowable

import (
	"context"
	"sync"
)

// Map applies fn to every item. Demand passes through unchanged.
func Map[A, B any](src Flowable[A], fn func(A) B) Flowable[B] {
	return FuncFlowable[B](func(ctx context.Context, sub Subscriber[B]) {
		src.Subscribe(ctx, &mapSubscriber[A, B]{sub, fn})
	})
}

type mapSubscriber[A, B any] struct {
	Subscriber[B]
	fn func(A) B
}

func (m *mapSubscriber[A, B]) OnNext(item A) {
	m.Subscriber.OnNext(m.fn(item))
}

// Filter forwards the items matching pred. Every dropped item is requested
// again from the source so the subscriber's demand is still met.
func Filter[T any](src Flowable[T], pred func(T) bool) Flowable[T] {
	return FuncFlowable[T](func(ctx context.Context, sub Subscriber[T]) {
		src.Subscribe(ctx, &filterSubscriber[T]{Subscriber: sub, pred: pred})
	})
}

type filterSubscriber[T any] struct {
	Subscriber[T]
	pred func(T) bool

	mu       sync.Mutex
	upstream Subscription
}

func (f *filterSubscriber[T]) OnSubscribe(s Subscription) {
	f.mu.Lock()
	f.upstream = s
	f.mu.Unlock()

	f.Subscriber.OnSubscribe(s)
}

func (f *filterSubscriber[T]) OnNext(item T) {
	if f.pred(item) {
		f.Subscriber.OnNext(item)
		return
	}

	f.mu.Lock()
	up := f.upstream
	f.mu.Unlock()
	up.Request(1)
}
