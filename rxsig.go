// Package rxsig binds reactive streams to sig properties.
//
// A stream, either an unbounded stream.Observable or a backpressured
// flowable.Flowable, is turned into a Binding holding its latest value, and
// the binding is installed as the source of a property:
//
//	count := sig.NewProperty(0)
//	b := rxsig.BindObservable(count, ticks, func(fx *rxsig.SideEffects[int]) {
//		fx.OnError(func(err error) { ... })
//	})
//	defer b.Dispose()
//
// Bindings own a subscription and must be disposed, one by one or in bulk
// through a CompositeBinding. Emissions arrive on the stream's goroutine;
// properties that must change on a single goroutine (a UI thread) are created
// with sig.WithLoop, which makes bound values hop onto that loop.
package rxsig

import (
	"github.com/AnatoleLucet/rxsig/internal/logging"
	"github.com/AnatoleLucet/rxsig/internal/logging/logfields"
)

const subsystem = "rxsig"

var log = logging.DefaultLogger.WithField(logfields.LogSubsys, subsystem)

const (
	kindObservable = "observable"
	kindFlowable   = "flowable"
)

// Disposable is anything a composite container can release.
type Disposable interface {
	Dispose()
}
