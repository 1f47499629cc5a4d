// Package flowabletest provides a subscriber for driving flowables by hand in tests.
package flowabletest

import (
	"sync"

	"github.com/AnatoleLucet/rxsig/flowable"
)

// Recorder is a flowable.Subscriber recording every signal. It requests
// nothing by itself unless created with an initial demand; tests call
// Request to pull items.
//
// Recorder is safe for concurrent use.
type Recorder[T any] struct {
	initial int64

	mu        sync.Mutex
	sub       flowable.Subscription
	items     []T
	err       error
	completed bool
	signals   []string

	changed chan struct{}
	done    chan struct{}
}

// NewRecorder returns a recorder requesting initial items on subscribe.
func NewRecorder[T any](initial int64) *Recorder[T] {
	return &Recorder[T]{
		initial: initial,
		changed: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
}

func (r *Recorder[T]) OnSubscribe(s flowable.Subscription) {
	r.mu.Lock()
	r.sub = s
	r.signals = append(r.signals, "subscribe")
	r.mu.Unlock()

	if r.initial > 0 {
		s.Request(r.initial)
	}
}

func (r *Recorder[T]) OnNext(item T) {
	r.mu.Lock()
	r.items = append(r.items, item)
	r.signals = append(r.signals, "next")
	r.mu.Unlock()

	r.notify()
}

func (r *Recorder[T]) OnError(err error) {
	r.mu.Lock()
	r.err = err
	r.signals = append(r.signals, "error")
	r.mu.Unlock()

	close(r.done)
}

func (r *Recorder[T]) OnComplete() {
	r.mu.Lock()
	r.completed = true
	r.signals = append(r.signals, "complete")
	r.mu.Unlock()

	close(r.done)
}

// Request asks the source for n more items.
func (r *Recorder[T]) Request(n int64) {
	r.mu.Lock()
	s := r.sub
	r.mu.Unlock()

	if s != nil {
		s.Request(n)
	}
}

// Cancel cancels the subscription.
func (r *Recorder[T]) Cancel() {
	r.mu.Lock()
	s := r.sub
	r.mu.Unlock()

	if s != nil {
		s.Cancel()
	}
}

// Items returns a snapshot copy of the received items.
func (r *Recorder[T]) Items() []T {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := make([]T, len(r.items))
	copy(cp, r.items)
	return cp
}

// Signals returns the names of the received signals, in order.
func (r *Recorder[T]) Signals() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := make([]string, len(r.signals))
	copy(cp, r.signals)
	return cp
}

// Err returns the error the stream failed with, if any.
func (r *Recorder[T]) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Completed reports whether the stream completed normally.
func (r *Recorder[T]) Completed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.completed
}

// Done is closed once the stream has terminated.
func (r *Recorder[T]) Done() <-chan struct{} {
	return r.done
}

// WaitItems blocks until at least n items were received or the stream
// terminated, and returns the items received so far.
func (r *Recorder[T]) WaitItems(n int) []T {
	for {
		items := r.Items()
		if len(items) >= n {
			return items
		}

		select {
		case <-r.changed:
		case <-r.done:
			return r.Items()
		}
	}
}

func (r *Recorder[T]) notify() {
	select {
	case r.changed <- struct{}{}:
	default:
	}
}
