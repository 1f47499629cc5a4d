// Package sig is a small signals library: observable properties, computed
// values, effects and owners.
//
// Reactive tracking is kept per goroutine: an effect only tracks the reads it
// performs on the goroutine running it, and a write re-runs the dependent
// reactions on the writing goroutine. Properties that must only change on one
// goroutine (a UI thread) are given a Loop with WithLoop.
package sig

import (
	"sync"

	"github.com/petermattis/goid"
)

// Reaction represents a reactive computation that depends on observables (properties).
// Think of it as an effect or a computed value that needs to be re-evaluated when its dependencies change.
type Reaction interface {
	// Execute runs the reaction's logic.
	Execute()

	// Dispose cleans up the reaction, removing all dependencies and stopping further executions.
	Dispose()

	// AddDependency registers an observable (property) as a dependency of this reaction,
	addDependency(o Observable)

	// RemoveDependency removes an observable (property) from this reaction's dependencies.
	removeDependency(o Observable)
}

// Observable represents a data source that can be observed by reactions.
type Observable interface {
	// Track registers a reaction to be notified when this observable changes.
	track(r Reaction)

	// Untrack removes a reaction from the notification list of this observable.
	untrack(r Reaction)
}

// Source is a readable value with change notification. Properties, computed
// values and stream bindings are sources, and a property can be bound to any
// of them.
type Source[T any] interface {
	// Get returns the current value, tracking it when read inside a reaction.
	Get() T

	// Value returns the current value without tracking, and whether there is
	// one yet.
	Value() (T, bool)

	// OnChange registers fn to be called with each new value.
	OnChange(fn func(T)) (remove func())
}

// Disposable is anything holding resources that must be released.
type Disposable interface {
	Dispose()
}

var (
	activeOwners sync.Map
	contexts     sync.Map
)

func getActiveOwner() *Owner {
	gid := goid.Get()
	if o, ok := activeOwners.Load(gid); ok {
		return o.(*Owner)
	}

	o := &Owner{}
	setActiveOwner(o)
	return o
}

func setActiveOwner(o *Owner) {
	activeOwners.Store(goid.Get(), o)
}

// currentContext returns the reactive context of the calling goroutine.
func currentContext() *reactiveContext {
	gid := goid.Get()
	if rc, ok := contexts.Load(gid); ok {
		return rc.(*reactiveContext)
	}

	rc, _ := contexts.LoadOrStore(gid, &reactiveContext{})
	return rc.(*reactiveContext)
}
