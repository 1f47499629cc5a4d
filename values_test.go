package rxsig_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnatoleLucet/rxsig"
	"github.com/AnatoleLucet/rxsig/sig"
)

func TestValuesOf(t *testing.T) {
	t.Run("current value then changes", func(t *testing.T) {
		p := sig.NewProperty(1)

		var mu sync.Mutex
		items := []int{}
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)

		rxsig.ValuesOf[int](p).Observe(ctx,
			func(v int) { mu.Lock(); items = append(items, v); mu.Unlock() },
			func(err error) { done <- err },
		)

		require.NoError(t, p.Set(2))
		require.NoError(t, p.Set(3))
		cancel()
		assert.ErrorIs(t, <-done, context.Canceled)

		require.NoError(t, p.Set(4))
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, []int{1, 2, 3}, items)
	})

	t.Run("binding without a value", func(t *testing.T) {
		src := &subject[string]{}
		b := rxsig.ToBinding[string](src)
		defer b.Dispose()

		items := []string{}
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		rxsig.ValuesOf[string](b).Observe(ctx, func(v string) { items = append(items, v) }, func(error) {})

		assert.Empty(t, items)
		src.Emit("a")
		assert.Equal(t, []string{"a"}, items)
	})

	t.Run("property to property", func(t *testing.T) {
		celsius := sig.NewProperty(20)
		fahrenheit := sig.NewProperty(0)

		ctx, cancel := context.WithCancel(context.Background())
		b := rxsig.BindObservable(fahrenheit,
			rxsig.ValuesOf[int](sig.NewComputed(func() int { return celsius.Get()*9/5 + 32 })),
			nil, rxsig.WithContext(ctx))

		assert.Equal(t, 68, fahrenheit.Get())
		require.NoError(t, celsius.Set(100))
		assert.Equal(t, 212, fahrenheit.Get())

		cancel()
		waitDone(t, b.Done())
		assert.NoError(t, b.Err())
	})
}
