package sig

import (
	"sync"
	"sync/atomic"

	"github.com/petermattis/goid"
)

// EffectComputation is the body of an effect, optionally returning a cleanup.
type EffectComputation interface {
	func() | func() func()
}

type effect[T EffectComputation] struct {
	*Owner
	*dependencyTracker

	mu       sync.Mutex
	running  atomic.Int64 // goid of the executing goroutine, 0 when idle
	disposed atomic.Bool

	computation T
	cleanup     func()
}

func (e *effect[T]) addDependency(o Observable) {
	e.dependencyTracker.add(o)
}

func (e *effect[T]) removeDependency(o Observable) {
	e.dependencyTracker.remove(o)
}

func (e *effect[T]) clean() {
	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}

	e.dependencyTracker.clear(e)
	e.Owner.reset()
}

func (e *effect[T]) Dispose() {
	if !e.disposed.CompareAndSwap(false, true) {
		return
	}

	if e.parent != nil {
		e.parent.removeChild(e)
	}

	// disposed from its own body: Execute cleans up once the body returns
	if e.running.Load() == goid.Get() {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.clean()
}

func (e *effect[T]) Execute() {
	if e.disposed.Load() {
		return
	}

	// a write from inside the effect to one of its own dependencies
	gid := goid.Get()
	if e.running.Load() == gid {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.disposed.Load() {
		return
	}

	e.running.Store(gid)
	defer e.running.Store(0)

	e.clean()

	rc := currentContext()
	prevReaction, prevUntracked := rc.activeReaction, rc.untracked
	rc.activeReaction, rc.untracked = e, false
	defer func() { rc.activeReaction, rc.untracked = prevReaction, prevUntracked }()

	e.Run(func() {
		switch fn := any(e.computation).(type) {
		case func():
			fn()
			e.cleanup = nil
		case func() func():
			e.cleanup = fn()
		}
	})

	if e.disposed.Load() {
		e.clean()
	}
}

// NewEffect runs computation now and again whenever a value it read changes.
// A returned cleanup, and any OnCleanup registered while it runs, is called
// before the next run and on Dispose.
func NewEffect[T EffectComputation](computation T) Disposable {
	parent := getActiveOwner()
	e := &effect[T]{
		Owner:             &Owner{parent: parent},
		dependencyTracker: &dependencyTracker{},

		computation: computation,
	}
	parent.addChild(e)

	e.Execute()

	return e
}
