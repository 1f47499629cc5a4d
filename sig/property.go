package sig

import (
	"reflect"
	"sync"
)

// Property is a read/write value with change notification. It can be bound to
// a Source, in which case it mirrors the source and rejects direct writes.
//
// A property given a Loop only changes on the loop goroutine: direct writes
// from elsewhere fail with ErrWrongGoroutine, and values coming from a bound
// source are posted to the loop.
type Property[T any] struct {
	*reactionTracker

	mu     sync.RWMutex
	pullMu sync.Mutex
	value  T
	equal  func(a, b T) bool
	loop   *Loop

	listeners listeners[T]

	source Source[T]
	detach func()
}

// PropertyOption configures a Property.
type PropertyOption[T any] func(*Property[T])

// WithEqual sets the function deciding whether a write changes the value.
// Writes of an equal value notify nobody.
func WithEqual[T any](equal func(a, b T) bool) PropertyOption[T] {
	return func(p *Property[T]) {
		p.equal = equal
	}
}

// WithLoop pins the property to the given loop.
func WithLoop[T any](l *Loop) PropertyOption[T] {
	return func(p *Property[T]) {
		p.loop = l
	}
}

// NewProperty creates a property holding initial.
func NewProperty[T any](initial T, opts ...PropertyOption[T]) *Property[T] {
	p := &Property[T]{
		reactionTracker: &reactionTracker{},

		value: initial,
		equal: defaultEqual[T],
	}

	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}

	return p
}

func (p *Property[T]) track(r Reaction) {
	p.reactionTracker.track(p, r)
}

func (p *Property[T]) untrack(r Reaction) {
	p.reactionTracker.untrack(p, r)
}

// Get returns the current value, tracking the dependency if read within a reaction.
func (p *Property[T]) Get() T {
	if r := currentContext().tracking(); r != nil {
		p.track(r)
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.value
}

// Value returns the current value without tracking it. A property always has one.
func (p *Property[T]) Value() (T, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.value, true
}

// Set writes a new value, notifying listeners and dependents if it changed.
func (p *Property[T]) Set(v T) error {
	if p.loop != nil && !p.loop.OnLoop() {
		return ErrWrongGoroutine
	}

	p.mu.Lock()
	if p.source != nil {
		p.mu.Unlock()
		return ErrBound
	}
	changed := p.store(v)
	p.mu.Unlock()

	if changed {
		p.notify(v)
	}
	return nil
}

// Update writes fn applied to the current value.
func (p *Property[T]) Update(fn func(T) T) error {
	if p.loop != nil && !p.loop.OnLoop() {
		return ErrWrongGoroutine
	}

	p.mu.Lock()
	if p.source != nil {
		p.mu.Unlock()
		return ErrBound
	}
	v := fn(p.value)
	changed := p.store(v)
	p.mu.Unlock()

	if changed {
		p.notify(v)
	}
	return nil
}

// OnChange registers fn to be called with every new value.
func (p *Property[T]) OnChange(fn func(T)) (remove func()) {
	return p.listeners.add(fn)
}

// Bind makes the property follow src, replacing any previous source. The
// current value of src is applied right away if it has one; otherwise the
// property keeps its value until src produces one.
func (p *Property[T]) Bind(src Source[T]) {
	p.Unbind()

	p.mu.Lock()
	p.source = src
	p.mu.Unlock()

	// registered outside the lock: a source may start producing on first use
	detach := src.OnChange(func(T) { p.schedule(p.pull) })

	p.mu.Lock()
	if p.source != src {
		p.mu.Unlock()
		detach()
		return
	}
	p.detach = detach
	p.mu.Unlock()

	p.schedule(p.pull)
}

// Unbind stops following the current source, keeping the last value.
func (p *Property[T]) Unbind() {
	p.mu.Lock()
	detach := p.detach
	p.source = nil
	p.detach = nil
	p.mu.Unlock()

	if detach != nil {
		detach()
	}
}

// IsBound reports whether the property follows a source.
func (p *Property[T]) IsBound() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.source != nil
}

// BoundTo returns the source the property follows, or nil.
func (p *Property[T]) BoundTo() Source[T] {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.source
}

// pull copies the source's latest value. The value is read again rather than
// taken from the notification so late deliveries never apply stale values.
func (p *Property[T]) pull() {
	v, changed := p.refresh()
	if changed {
		p.notify(v)
	}
}

func (p *Property[T]) refresh() (v T, changed bool) {
	p.pullMu.Lock()
	defer p.pullMu.Unlock()

	p.mu.RLock()
	src := p.source
	p.mu.RUnlock()
	if src == nil {
		return v, false
	}

	v, ok := src.Value()
	if !ok {
		return v, false
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// rebound or unbound while reading
	if p.source != src {
		return v, false
	}
	return v, p.store(v)
}

func (p *Property[T]) schedule(fn func()) {
	if p.loop == nil || p.loop.OnLoop() {
		fn()
		return
	}

	// a closed loop means the UI is gone, there is nobody left to update
	_ = p.loop.Post(fn)
}

// store must be called with p.mu held.
func (p *Property[T]) store(v T) bool {
	if p.equal(p.value, v) {
		return false
	}

	p.value = v
	return true
}

func (p *Property[T]) notify(v T) {
	p.listeners.notify(v)
	p.reactionTracker.react(currentContext())
}

func defaultEqual[T any](a, b T) bool {
	va, vb := reflect.ValueOf(&a).Elem(), reflect.ValueOf(&b).Elem()
	if !va.Comparable() || !vb.Comparable() {
		return false
	}

	return va.Equal(vb)
}
