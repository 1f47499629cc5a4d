package sig

import "errors"

var (
	// ErrBound is returned when writing to a property that is bound to a source.
	ErrBound = errors.New("sig: property is bound")

	// ErrWrongGoroutine is returned when writing to a property off its loop.
	ErrWrongGoroutine = errors.New("sig: property written outside of its loop")

	// ErrLoopClosed is returned when a task is handed to a closed loop.
	ErrLoopClosed = errors.New("sig: loop is closed")
)
