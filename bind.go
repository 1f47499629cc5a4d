package rxsig

import (
	"github.com/cilium/stream"

	"github.com/AnatoleLucet/rxsig/flowable"
	"github.com/AnatoleLucet/rxsig/sig"
)

// BindObservable binds p to src. If configure is not nil, src is first
// decorated with the side effects it sets up. Every emission replaces the
// property's value until the returned binding is disposed.
//
// If p was bound to another Binding, that binding is disposed.
func BindObservable[T any](p *sig.Property[T], src stream.Observable[T], configure func(*SideEffects[T]), opts ...Option) *Binding[T] {
	if configure != nil {
		src = NewSideEffects(configure).Observable(src)
	}
	return install(p, ToBinding(src, opts...))
}

// BindFlowable is BindObservable for a backpressured source. The binding
// requests every item.
func BindFlowable[T any](p *sig.Property[T], src flowable.Flowable[T], configure func(*SideEffects[T]), opts ...Option) *Binding[T] {
	if configure != nil {
		src = NewSideEffects(configure).Flowable(src)
	}
	return install(p, ToBindingFlowable(src, opts...))
}

func install[T any](p *sig.Property[T], b *Binding[T]) *Binding[T] {
	prev, _ := p.BoundTo().(*Binding[T])

	p.Bind(b)

	if prev != nil && prev != b {
		prev.cfg.log.Debug("Property rebound, disposing previous binding")
		prev.Dispose()
	}
	return b
}
