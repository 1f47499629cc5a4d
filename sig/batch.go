package sig

import "slices"

type reactiveContext struct {
	// activeReaction holds the currently executing reaction.
	// It is used to track dependencies during reaction execution.
	activeReaction Reaction

	// untracked is set while running inside Untrack.
	untracked bool

	// pendingReactions holds reactions queued for execution during a batch.
	pendingReactions []Reaction

	// batchDepth indicates the current depth of nested Batch calls.
	// It is used to determine when to flush pending reactions.
	batchDepth int
}

// tracking returns the reaction reads should be attributed to, if any.
func (rc *reactiveContext) tracking() Reaction {
	if rc.untracked {
		return nil
	}

	return rc.activeReaction
}

func (rc *reactiveContext) batch(fn func()) {
	rc.batchDepth++
	defer func() {
		rc.batchDepth--

		if rc.batchDepth == 0 {
			reactions := rc.pendingReactions
			rc.pendingReactions = nil

			for _, reaction := range reactions {
				reaction.Execute()
			}
		}
	}()

	fn()
}

func (rc *reactiveContext) queueReaction(r Reaction) {
	// if not in batch mode, execute immediately
	if rc.batchDepth == 0 {
		r.Execute()
		return
	}

	// else, queue for later execution
	if !slices.Contains(rc.pendingReactions, r) {
		rc.pendingReactions = append(rc.pendingReactions, r)
	}
}

// Batch runs fn and defers the reactions it triggers on this goroutine until
// the outermost Batch returns. Each reaction then runs once.
func Batch(fn func()) {
	currentContext().batch(fn)
}

// Untrack runs fn without tracking any reactive dependencies.
func Untrack[T any](fn func() T) T {
	rc := currentContext()

	prev := rc.untracked
	rc.untracked = true
	defer func() { rc.untracked = prev }()

	return fn()
}
