// Package group holds the ordered disposable set shared by the composite
// binding and subscription containers.
package group

import (
	"reflect"
	"slices"
	"sync"
)

// Disposable is anything that can be released. Members of a comparable type
// (pointers, structs of comparable fields) are compared with ==; others, such
// as func types, are never found again by Contains or Remove and are not
// deduplicated.
type Disposable interface {
	Dispose()
}

// Group is an ordered set of disposables. The zero value is ready to use.
type Group struct {
	mu      sync.Mutex
	members []Disposable
}

// Add registers d. It reports false if d is nil or already a member.
func (g *Group) Add(d Disposable) bool {
	if d == nil {
		return false
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.index(d) >= 0 {
		return false
	}
	g.members = append(g.members, d)

	return true
}

// Remove deregisters d without disposing it. It reports whether d was a member.
func (g *Group) Remove(d Disposable) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	i := g.index(d)
	if i < 0 {
		return false
	}
	g.members = slices.Delete(g.members, i, i+1)

	return true
}

// Contains reports whether d is currently registered.
func (g *Group) Contains(d Disposable) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.index(d) >= 0
}

// index must be called with g.mu held.
func (g *Group) index(d Disposable) int {
	if d == nil || !reflect.TypeOf(d).Comparable() {
		return -1
	}

	// d is comparable, so == against any member cannot panic
	return slices.IndexFunc(g.members, func(m Disposable) bool { return m == d })
}

// Len returns the number of registered members.
func (g *Group) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return len(g.members)
}

// Dispose releases every member, see Clear.
func (g *Group) Dispose() {
	g.Clear()
}

// Clear empties the group and then disposes the former members in
// registration order, outside the lock. The group stays usable afterwards.
// It returns how many members were disposed.
func (g *Group) Clear() int {
	g.mu.Lock()
	members := g.members
	g.members = nil
	g.mu.Unlock()

	for _, m := range members {
		m.Dispose()
	}

	return len(members)
}
