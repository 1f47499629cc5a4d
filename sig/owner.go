package sig

import (
	"slices"
	"sync"
)

// Owner manages the lifecycle of the reactive nodes created while it is
// active. Disposing an owner disposes its children (last created first) and
// then runs its cleanups.
type Owner struct {
	mu sync.Mutex

	parent   *Owner
	children []Disposable
	cleanups []func()
}

// NewOwner creates an owner nested in the currently active one.
func NewOwner() *Owner {
	o := &Owner{parent: getActiveOwner()}
	o.parent.addChild(o)

	return o
}

func (o *Owner) addChild(child Disposable) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !slices.Contains(o.children, child) {
		o.children = append(o.children, child)
	}
}

func (o *Owner) removeChild(child Disposable) {
	o.mu.Lock()
	defer o.mu.Unlock()

	i := slices.Index(o.children, child)
	if i >= 0 {
		o.children = slices.Delete(o.children, i, i+1)
	}
}

// Run a function with this owner active.
// Each reactive node created within fn becomes a child of this owner.
func (o *Owner) Run(fn func()) {
	prevOwner := getActiveOwner()
	setActiveOwner(o)
	defer setActiveOwner(prevOwner)

	fn()
}

// OnCleanup registers fn to run when the owner is disposed.
func (o *Owner) OnCleanup(fn func()) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.cleanups = append(o.cleanups, fn)
}

// Dispose this owner and all its children.
func (o *Owner) Dispose() {
	if o.parent != nil {
		o.parent.removeChild(o)
	}

	o.reset()
}

// reset disposes the children and runs the cleanups, leaving the owner
// attached to its parent.
func (o *Owner) reset() {
	o.disposeChildren()

	o.mu.Lock()
	cleanups := o.cleanups
	o.cleanups = nil
	o.mu.Unlock()

	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
}

func (o *Owner) disposeChildren() {
	o.mu.Lock()
	children := o.children
	o.children = nil
	o.mu.Unlock()

	for i := len(children) - 1; i >= 0; i-- {
		children[i].Dispose()
	}
}

// OnCleanup registers a function to be called when the current owner is disposed.
func OnCleanup(fn func()) {
	getActiveOwner().OnCleanup(fn)
}
