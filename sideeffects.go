package rxsig

import (
	"context"
	"errors"

	"github.com/cilium/stream"

	"github.com/AnatoleLucet/rxsig/flowable"
)

// SideEffects holds callbacks run as a stream's signals pass through. Every
// slot is optional and setting one again replaces it.
type SideEffects[T any] struct {
	onNext      func(T)
	onCompleted func()
	onError     func(error)
}

// NewSideEffects returns the side effects set up by configure.
func NewSideEffects[T any](configure func(*SideEffects[T])) *SideEffects[T] {
	fx := &SideEffects[T]{}
	if configure != nil {
		configure(fx)
	}
	return fx
}

// OnNext sets the callback run with every value before it is forwarded.
func (fx *SideEffects[T]) OnNext(fn func(T)) {
	fx.onNext = fn
}

// OnCompleted sets the callback run when the stream completes.
func (fx *SideEffects[T]) OnCompleted(fn func()) {
	fx.onCompleted = fn
}

// OnError sets the callback run with the error the stream fails with.
func (fx *SideEffects[T]) OnError(fn func(error)) {
	fx.onError = fn
}

func (fx *SideEffects[T]) empty() bool {
	return fx == nil || (fx.onNext == nil && fx.onCompleted == nil && fx.onError == nil)
}

// Observable returns src with the callbacks attached. Values and terminal
// signals are forwarded unchanged, each after its callback returned. Later
// changes to fx do not affect the returned stream.
func (fx *SideEffects[T]) Observable(src stream.Observable[T]) stream.Observable[T] {
	if fx.empty() {
		return src
	}

	hooks := *fx
	return stream.FuncObservable[T](func(ctx context.Context, next func(T), complete func(error)) {
		src.Observe(ctx,
			func(v T) {
				hooks.next(v)
				next(v)
			},
			func(err error) {
				hooks.terminate(ctx, err)
				complete(err)
			})
	})
}

// Flowable returns src with the callbacks attached. Demand and cancellation
// pass through untouched.
func (fx *SideEffects[T]) Flowable(src flowable.Flowable[T]) flowable.Flowable[T] {
	if fx.empty() {
		return src
	}

	hooks := *fx
	return flowable.FuncFlowable[T](func(ctx context.Context, sub flowable.Subscriber[T]) {
		src.Subscribe(ctx, &tapSubscriber[T]{Subscriber: sub, ctx: ctx, hooks: hooks})
	})
}

func (fx *SideEffects[T]) next(v T) {
	if fx.onNext != nil {
		fx.onNext(v)
	}
}

func (fx *SideEffects[T]) terminate(ctx context.Context, err error) {
	switch {
	case err == nil:
		if fx.onCompleted != nil {
			fx.onCompleted()
		}
	case cancelled(ctx, err):
	default:
		if fx.onError != nil {
			fx.onError(err)
		}
	}
}

type tapSubscriber[T any] struct {
	flowable.Subscriber[T]

	ctx   context.Context
	hooks SideEffects[T]
}

func (s *tapSubscriber[T]) OnNext(v T) {
	s.hooks.next(v)
	s.Subscriber.OnNext(v)
}

func (s *tapSubscriber[T]) OnError(err error) {
	s.hooks.terminate(s.ctx, err)
	s.Subscriber.OnError(err)
}

func (s *tapSubscriber[T]) OnComplete() {
	s.hooks.terminate(s.ctx, nil)
	s.Subscriber.OnComplete()
}

// DecorateObservable attaches the side effects set up by configure to src.
func DecorateObservable[T any](src stream.Observable[T], configure func(*SideEffects[T])) stream.Observable[T] {
	return NewSideEffects(configure).Observable(src)
}

// DecorateFlowable attaches the side effects set up by configure to src.
func DecorateFlowable[T any](src flowable.Flowable[T], configure func(*SideEffects[T])) flowable.Flowable[T] {
	return NewSideEffects(configure).Flowable(src)
}

// cancelled reports whether err only says that ctx ended.
func cancelled(ctx context.Context, err error) bool {
	return ctx.Err() != nil && errors.Is(err, ctx.Err())
}
