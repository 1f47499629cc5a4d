package sig

import (
	"slices"
	"sync"
)

type listener[T any] struct {
	id uint64
	fn func(T)
}

// listeners is an ordered set of change callbacks.
type listeners[T any] struct {
	mu      sync.Mutex
	nextID  uint64
	entries []listener[T]
}

func (l *listeners[T]) add(fn func(T)) (remove func()) {
	l.mu.Lock()
	l.nextID++
	id := l.nextID
	l.entries = append(l.entries, listener[T]{id, fn})
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()

		l.entries = slices.DeleteFunc(l.entries, func(e listener[T]) bool { return e.id == id })
	}
}

func (l *listeners[T]) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.entries)
}

// notify calls every listener with v, outside the lock.
func (l *listeners[T]) notify(v T) {
	l.mu.Lock()
	entries := slices.Clone(l.entries)
	l.mu.Unlock()

	for _, e := range entries {
		e.fn(v)
	}
}

func (l *listeners[T]) clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = nil
}
