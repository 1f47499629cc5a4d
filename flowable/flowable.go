// Package flowable is a backpressure-aware stream: a subscriber receives
// items only after requesting them through its Subscription.
//
// The contract follows the usual reactive-streams rules:
//
//   - OnSubscribe is called once, before any other signal.
//   - OnNext is called at most as many times as items were requested, never
//     concurrently.
//   - OnError or OnComplete ends the stream, at most one of them, once.
//   - After Cancel no further signals are delivered.
//
// Cancelling the context given to Subscribe ends the stream with the
// context's error.
package flowable

import (
	"context"
	"errors"
	"math"
)

// Unbounded is the demand meaning "as many items as the source has".
const Unbounded int64 = math.MaxInt64

// ErrInvalidRequest fails a stream whose subscriber requested zero or fewer items.
var ErrInvalidRequest = errors.New("flowable: non-positive request")

// Subscription is the link between a subscriber and its source.
type Subscription interface {
	// Request asks the source for n more items.
	Request(n int64)

	// Cancel stops the stream. No further signals are delivered.
	Cancel()
}

// Subscriber receives the signals of a Flowable.
type Subscriber[T any] interface {
	OnSubscribe(s Subscription)
	OnNext(item T)
	OnError(err error)
	OnComplete()
}

// Flowable is a source of items delivered on demand.
type Flowable[T any] interface {
	Subscribe(ctx context.Context, s Subscriber[T])
}

// FuncFlowable wraps a function implementing Subscribe.
type FuncFlowable[T any] func(context.Context, Subscriber[T])

func (f FuncFlowable[T]) Subscribe(ctx context.Context, s Subscriber[T]) {
	f(ctx, s)
}

// addDemand adds n to the current demand, saturating at Unbounded.
func addDemand(current, n int64) int64 {
	if current == Unbounded || n >= Unbounded-current {
		return Unbounded
	}

	return current + n
}

type emptySubscription struct{}

func (emptySubscription) Request(int64) {}
func (emptySubscription) Cancel()       {}
