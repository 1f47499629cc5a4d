package sig

import (
	"slices"
	"sync"
)

type reactionTracker struct {
	mu        sync.Mutex
	reactions []Reaction
}

func (s *reactionTracker) track(o Observable, r Reaction) {
	s.mu.Lock()
	if slices.Contains(s.reactions, r) {
		s.mu.Unlock()
		return
	}
	s.reactions = append(s.reactions, r)
	s.mu.Unlock()

	r.addDependency(o)
}

func (s *reactionTracker) untrack(o Observable, r Reaction) {
	s.mu.Lock()
	index := slices.Index(s.reactions, r)
	if index == -1 {
		s.mu.Unlock()
		return
	}
	s.reactions = slices.Delete(s.reactions, index, index+1)
	s.mu.Unlock()

	r.removeDependency(o)
}

func (s *reactionTracker) clear(o Observable) {
	s.mu.Lock()
	reactions := s.reactions
	s.reactions = nil
	s.mu.Unlock()

	for _, r := range reactions {
		r.removeDependency(o)
	}
}

func (s *reactionTracker) react(ctx *reactiveContext) {
	// clonning to avoid mutation during iteration
	s.mu.Lock()
	reactions := slices.Clone(s.reactions)
	s.mu.Unlock()

	for _, r := range reactions {
		ctx.queueReaction(r)
	}
}

type dependencyTracker struct {
	mu           sync.Mutex
	dependencies []Observable
}

func (d *dependencyTracker) add(o Observable) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !slices.Contains(d.dependencies, o) {
		d.dependencies = append(d.dependencies, o)
	}
}

func (d *dependencyTracker) remove(o Observable) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if index := slices.Index(d.dependencies, o); index != -1 {
		d.dependencies = slices.Delete(d.dependencies, index, index+1)
	}
}

func (d *dependencyTracker) clear(r Reaction) {
	d.mu.Lock()
	dependencies := d.dependencies
	d.dependencies = nil
	d.mu.Unlock()

	for _, dep := range dependencies {
		dep.untrack(r)
	}
}
