package rxsig

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/cilium/stream"
	"github.com/sirupsen/logrus"

	"github.com/AnatoleLucet/rxsig/flowable"
	"github.com/AnatoleLucet/rxsig/internal/logging/logfields"
	"github.com/AnatoleLucet/rxsig/sig"
)

var bindingIDs atomic.Uint64

// Binding holds the latest value emitted by a stream. It is a read-only
// sig.Source and owns the stream's subscription until disposed.
type Binding[T any] struct {
	kind string
	cfg  config

	// changes carries notifications and effect tracking, never deduplicated
	changes *sig.Property[T]

	valueMu sync.RWMutex
	value   T
	present bool

	mu        sync.Mutex
	start     func(ctx context.Context)
	ctx       context.Context
	cancel    context.CancelFunc
	connected bool
	disposed  bool
	err       error

	done     chan struct{}
	doneOnce sync.Once
}

// ToBinding creates a binding following src. Unless Lazy is given the
// subscription starts right away.
func ToBinding[T any](src stream.Observable[T], opts ...Option) *Binding[T] {
	b := newBinding[T](kindObservable, opts)
	b.start = func(ctx context.Context) {
		src.Observe(ctx, b.next, b.complete)
	}
	b.init()
	return b
}

// ToBindingFlowable creates a binding following src with unbounded demand.
func ToBindingFlowable[T any](src flowable.Flowable[T], opts ...Option) *Binding[T] {
	b := newBinding[T](kindFlowable, opts)
	b.start = func(ctx context.Context) {
		flowable.Subscribe(ctx, src, b.next, b.complete)
	}
	b.init()
	return b
}

func newBinding[T any](kind string, opts []Option) *Binding[T] {
	cfg := newConfig(opts)
	id := bindingIDs.Add(1)
	cfg.log = cfg.log.WithFields(logrus.Fields{
		logfields.BindingID: id,
		logfields.Kind:      kind,
	})

	var zero T
	return &Binding[T]{
		kind:    kind,
		cfg:     cfg,
		changes: sig.NewProperty(zero, sig.WithEqual(func(a, b T) bool { return false })),
		done:    make(chan struct{}),
	}
}

func (b *Binding[T]) init() {
	if !b.cfg.lazy {
		b.connect()
	}
}

func (b *Binding[T]) connect() {
	b.mu.Lock()
	if b.connected || b.disposed {
		b.mu.Unlock()
		return
	}
	b.connected = true
	b.ctx, b.cancel = context.WithCancel(b.cfg.ctx)
	ctx := b.ctx
	b.mu.Unlock()

	b.cfg.metrics.BindingOpened(b.kind)
	b.cfg.log.WithField(logfields.Lazy, b.cfg.lazy).Debug("Subscribing binding to stream")
	b.start(ctx)
}

// Get returns the latest value, tracking the dependency if read within a
// reaction. It is the zero value until the stream emits.
func (b *Binding[T]) Get() T {
	b.connect()
	b.changes.Get()

	b.valueMu.RLock()
	defer b.valueMu.RUnlock()
	return b.value
}

// Value returns the latest value and whether the stream emitted one yet.
func (b *Binding[T]) Value() (T, bool) {
	b.connect()

	b.valueMu.RLock()
	defer b.valueMu.RUnlock()
	return b.value, b.present
}

// OnChange registers fn to be called with every emission.
func (b *Binding[T]) OnChange(fn func(T)) (remove func()) {
	remove = b.changes.OnChange(fn)
	b.connect()
	return remove
}

// AddTo registers the binding in c and returns it.
func (b *Binding[T]) AddTo(c *CompositeBinding) *Binding[T] {
	c.Add(b)
	return b
}

// Dispose cancels the subscription and closes Done. Values already held are
// kept, and the property the binding is installed on stays bound to it.
func (b *Binding[T]) Dispose() {
	b.mu.Lock()
	if b.disposed {
		b.mu.Unlock()
		return
	}
	b.disposed = true
	connected, cancel := b.connected, b.cancel
	b.mu.Unlock()

	b.cfg.log.Debug("Disposing binding")
	if connected {
		cancel()
	}
	// a source ignoring its context would otherwise keep Done open forever
	b.finish()
}

// IsDisposed reports whether Dispose was called.
func (b *Binding[T]) IsDisposed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.disposed
}

// Err returns the error the stream failed with. Cancellation is not a failure.
func (b *Binding[T]) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.err
}

// Done is closed once the stream terminated or Dispose was called.
func (b *Binding[T]) Done() <-chan struct{} {
	return b.done
}

func (b *Binding[T]) next(v T) {
	if b.IsDisposed() {
		return
	}
	b.cfg.metrics.Emitted(b.kind)

	b.deliver(func() {
		b.valueMu.Lock()
		b.value, b.present = v, true
		b.valueMu.Unlock()

		// changes is owned by nobody but the binding, so it can't be bound
		_ = b.changes.Set(v)
	})
}

func (b *Binding[T]) complete(err error) {
	if !b.deliver(func() { b.terminate(err) }) {
		// nothing runs on the loop anymore, don't leave Done hanging
		b.finish()
	}
}

func (b *Binding[T]) terminate(err error) {
	defer b.finish()

	if err == nil {
		b.cfg.log.Debug("Bound stream completed")
		return
	}

	b.mu.Lock()
	ctx, disposed := b.ctx, b.disposed
	b.mu.Unlock()
	if disposed || (ctx != nil && ctx.Err() != nil && errors.Is(err, ctx.Err())) {
		b.cfg.log.Debug("Bound stream cancelled")
		return
	}

	b.mu.Lock()
	b.err = err
	b.mu.Unlock()

	b.cfg.metrics.Failed(b.kind)
	if b.cfg.onError != nil {
		b.cfg.onError(err)
		return
	}
	b.cfg.log.WithError(err).Warn("Bound stream failed")
}

func (b *Binding[T]) finish() {
	b.doneOnce.Do(func() {
		b.mu.Lock()
		cancel, connected := b.cancel, b.connected
		b.mu.Unlock()
		if cancel != nil {
			cancel()
		}
		if connected {
			b.cfg.metrics.BindingClosed(b.kind)
		}
		close(b.done)
	})
}

// deliver runs fn on the ObserveOn loop, or inline without one. It reports
// false if fn was dropped.
func (b *Binding[T]) deliver(fn func()) bool {
	l := b.cfg.loop
	if l == nil || l.OnLoop() {
		fn()
		return true
	}

	if err := l.Post(fn); err != nil {
		b.cfg.log.WithError(err).Debug("Dropping stream signal")
		return false
	}
	return true
}
