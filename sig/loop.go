package sig

import (
	"sync"
	"sync/atomic"

	"github.com/petermattis/goid"
)

// Loop is a goroutine running posted tasks one at a time, in order. It plays
// the part of a UI thread: a property created WithLoop only changes on it.
type Loop struct {
	gid atomic.Int64

	mu     sync.Mutex
	queue  []func()
	closed bool

	wake chan struct{}
	done chan struct{}
}

// NewLoop starts a loop goroutine. Close must be called to stop it.
func NewLoop() *Loop {
	l := &Loop{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}

	started := make(chan struct{})
	go l.run(started)
	<-started

	return l
}

func (l *Loop) run(started chan<- struct{}) {
	defer close(l.done)

	l.gid.Store(goid.Get())
	close(started)

	for {
		l.mu.Lock()
		tasks := l.queue
		l.queue = nil
		closed := l.closed
		l.mu.Unlock()

		for _, task := range tasks {
			task()
		}

		if len(tasks) > 0 {
			continue
		}
		if closed {
			return
		}

		<-l.wake
	}
}

// OnLoop reports whether the caller is running on the loop goroutine.
func (l *Loop) OnLoop() bool {
	return goid.Get() == l.gid.Load()
}

// Post queues fn to run on the loop. It never blocks, even when called from
// the loop itself, and returns ErrLoopClosed once the loop is closed.
func (l *Loop) Post(fn func()) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrLoopClosed
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	l.signal()
	return nil
}

// Invoke runs fn on the loop and waits for it to return. Called from the loop
// it runs fn directly.
func (l *Loop) Invoke(fn func()) error {
	if l.OnLoop() {
		fn()
		return nil
	}

	ran := make(chan struct{})
	if err := l.Post(func() {
		defer close(ran)
		fn()
	}); err != nil {
		return err
	}

	<-ran
	return nil
}

// Close stops accepting tasks, lets the queued ones run and waits for the
// loop goroutine to exit. Closing from the loop itself does not wait.
func (l *Loop) Close() {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()

	l.signal()

	if !l.OnLoop() {
		<-l.done
	}
}

// Done is closed once the loop goroutine has exited.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

func (l *Loop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}
