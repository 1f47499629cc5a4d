package rxsig

import (
	"context"
	"sync"

	"github.com/cilium/stream"

	"github.com/AnatoleLucet/rxsig/sig"
)

// ValuesOf returns a stream of src's values: the current one, if src has one,
// then every change. It completes with the observer's context error once the
// context ends.
//
// Changes are read back from src when emitted, so an observer never sees an
// older value after a newer one but may see the same value twice.
func ValuesOf[T any](src sig.Source[T]) stream.Observable[T] {
	return stream.FuncObservable[T](func(ctx context.Context, next func(T), complete func(error)) {
		var (
			mu     sync.Mutex
			closed bool
		)

		emit := func() {
			mu.Lock()
			defer mu.Unlock()

			if closed {
				return
			}
			if v, ok := src.Value(); ok {
				next(v)
			}
		}

		remove := src.OnChange(func(T) { emit() })
		emit()

		go func() {
			<-ctx.Done()
			remove()

			mu.Lock()
			closed = true
			mu.Unlock()

			complete(ctx.Err())
		}()
	})
}
