package rxsig_test

import (
	"context"
	"errors"
	"testing"

	"github.com/cilium/stream"
	"github.com/stretchr/testify/assert"

	"github.com/AnatoleLucet/rxsig"
	"github.com/AnatoleLucet/rxsig/flowable"
)

func TestSubscription(t *testing.T) {
	t.Run("observable", func(t *testing.T) {
		items := []int{}
		var result error

		s := rxsig.SubscribeObservable(context.Background(), stream.FromSlice([]int{1, 2, 3}),
			func(v int) { items = append(items, v) },
			func(err error) { result = err },
		)
		waitDone(t, s.Done())

		assert.Equal(t, []int{1, 2, 3}, items)
		assert.NoError(t, result)
		assert.False(t, s.IsDisposed())
	})

	t.Run("flowable error", func(t *testing.T) {
		boom := errors.New("boom")
		var result error

		s := rxsig.SubscribeFlowable(context.Background(), flowable.Error[int](boom), nil,
			func(err error) { result = err },
		)
		waitDone(t, s.Done())

		assert.ErrorIs(t, result, boom)
	})

	t.Run("dispose cancels", func(t *testing.T) {
		src := &subject[int]{}
		var result error

		s := rxsig.SubscribeObservable[int](context.Background(), src, nil, func(err error) { result = err })
		s.Dispose()
		s.Dispose()
		waitDone(t, s.Done())

		assert.True(t, s.IsDisposed())
		assert.ErrorIs(t, result, context.Canceled)
	})

	t.Run("parent context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())

		s := rxsig.SubscribeFlowable(ctx, flowable.Create(func(ctx context.Context, e flowable.Emitter[int]) error {
			<-ctx.Done()
			return ctx.Err()
		}), nil, nil)

		cancel()
		waitDone(t, s.Done())
		assert.False(t, s.IsDisposed())
	})
}
