package rxsig

import (
	"github.com/AnatoleLucet/rxsig/internal/group"
	"github.com/AnatoleLucet/rxsig/internal/logging/logfields"
)

// CompositeBinding groups bindings so they can be disposed together. It can
// hold other composites and is reusable after Dispose. The zero value is ready
// to use.
type CompositeBinding struct {
	group group.Group
}

// NewCompositeBinding returns a composite holding bindings.
func NewCompositeBinding(bindings ...Disposable) *CompositeBinding {
	c := &CompositeBinding{}
	for _, b := range bindings {
		c.Add(b)
	}
	return c
}

// Add registers b. Adding a registered binding again does nothing.
func (c *CompositeBinding) Add(b Disposable) {
	c.group.Add(b)
}

// Remove deregisters b without disposing it.
func (c *CompositeBinding) Remove(b Disposable) {
	c.group.Remove(b)
}

// Contains reports whether b is registered.
func (c *CompositeBinding) Contains(b Disposable) bool {
	return c.group.Contains(b)
}

// Len returns the number of registered bindings.
func (c *CompositeBinding) Len() int {
	return c.group.Len()
}

// Dispose disposes every registered binding in the order they were added and
// empties the composite.
func (c *CompositeBinding) Dispose() {
	if n := c.group.Clear(); n > 0 {
		log.WithField(logfields.Count, n).Debug("Disposed composite binding")
	}
}

// CompositeSubscription groups subscriptions so they can be disposed together.
// It behaves like CompositeBinding.
type CompositeSubscription struct {
	group group.Group
}

// NewCompositeSubscription returns a composite holding subs.
func NewCompositeSubscription(subs ...Disposable) *CompositeSubscription {
	c := &CompositeSubscription{}
	for _, s := range subs {
		c.Add(s)
	}
	return c
}

// Add registers s. Adding a registered subscription again does nothing.
func (c *CompositeSubscription) Add(s Disposable) {
	c.group.Add(s)
}

// Remove deregisters s without disposing it.
func (c *CompositeSubscription) Remove(s Disposable) {
	c.group.Remove(s)
}

// Contains reports whether s is registered.
func (c *CompositeSubscription) Contains(s Disposable) bool {
	return c.group.Contains(s)
}

// Len returns the number of registered subscriptions.
func (c *CompositeSubscription) Len() int {
	return c.group.Len()
}

// Dispose disposes every registered subscription in order and empties the
// composite.
func (c *CompositeSubscription) Dispose() {
	if n := c.group.Clear(); n > 0 {
		log.WithField(logfields.Count, n).Debug("Disposed composite subscription")
	}
}
