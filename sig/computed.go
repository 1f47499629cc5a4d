package sig

import (
	"sync"
	"sync/atomic"
)

// Computed is a read-only value derived from other sources. It recomputes
// lazily on read after one of the values it read has changed, or eagerly when
// it has change listeners (for instance a bound property).
type Computed[T any] struct {
	*reactionTracker
	*dependencyTracker

	mu          sync.Mutex
	dirty       bool
	computation func() T
	value       T

	listeners listeners[T]
	disposed  atomic.Bool

	owner *Owner
}

// NewComputed creates a computed value owned by the current owner.
func NewComputed[T any](computation func() T) *Computed[T] {
	c := &Computed[T]{
		reactionTracker:   &reactionTracker{},
		dependencyTracker: &dependencyTracker{},

		dirty:       true,
		computation: computation,

		owner: getActiveOwner(),
	}
	c.owner.addChild(c)

	return c
}

func (c *Computed[T]) addDependency(o Observable) {
	c.dependencyTracker.add(o)
}

func (c *Computed[T]) removeDependency(o Observable) {
	c.dependencyTracker.remove(o)
}

func (c *Computed[T]) track(r Reaction) {
	c.reactionTracker.track(c, r)
}

func (c *Computed[T]) untrack(r Reaction) {
	c.reactionTracker.untrack(c, r)
}

// Execute marks the value stale after a dependency changed.
func (c *Computed[T]) Execute() {
	if c.disposed.Load() {
		return
	}

	c.mu.Lock()
	c.dirty = true
	c.mu.Unlock()

	if c.listeners.len() > 0 {
		c.listeners.notify(c.compute())
	}

	c.reactionTracker.react(currentContext())
}

// Dispose detaches the computed value from its dependencies, dependents and listeners.
func (c *Computed[T]) Dispose() {
	if !c.disposed.CompareAndSwap(false, true) {
		return
	}

	c.dependencyTracker.clear(c)
	c.reactionTracker.clear(c)
	c.listeners.clear()
	c.owner.removeChild(c)
}

// Get returns the value, recomputing it if stale, and tracks it when read inside a reaction.
func (c *Computed[T]) Get() T {
	if r := currentContext().tracking(); r != nil {
		c.track(r)
	}

	return c.compute()
}

// Value returns the value without tracking it. A computed value always has one.
func (c *Computed[T]) Value() (T, bool) {
	return c.compute(), true
}

// OnChange registers fn to be called with each recomputed value.
func (c *Computed[T]) OnChange(fn func(T)) (remove func()) {
	return c.listeners.add(fn)
}

func (c *Computed[T]) compute() T {
	c.mu.Lock()
	if !c.dirty || c.disposed.Load() {
		v := c.value
		c.mu.Unlock()
		return v
	}
	c.mu.Unlock()

	// clear previous dependencies
	c.dependencyTracker.clear(c)

	rc := currentContext()
	prevReaction, prevUntracked := rc.activeReaction, rc.untracked
	rc.activeReaction, rc.untracked = c, false

	v := c.computation()

	rc.activeReaction, rc.untracked = prevReaction, prevUntracked

	c.mu.Lock()
	c.value = v
	c.dirty = false
	c.mu.Unlock()

	return v
}
