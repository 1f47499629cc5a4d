package flowable_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/AnatoleLucet/rxsig/flowable"
	"github.com/AnatoleLucet/rxsig/flowable/flowabletest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var errBoom = errors.New("boom")

func TestSources(t *testing.T) {
	ctx := context.Background()

	t.Run("from slice", func(t *testing.T) {
		items, err := flowable.ToSlice(ctx, flowable.FromSlice([]string{"a", "b", "c"}))
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, items)
	})

	t.Run("just", func(t *testing.T) {
		items, err := flowable.ToSlice(ctx, flowable.Just(1, 2))
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2}, items)
	})

	t.Run("empty", func(t *testing.T) {
		items, err := flowable.ToSlice(ctx, flowable.Empty[int]())
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("error", func(t *testing.T) {
		items, err := flowable.ToSlice(ctx, flowable.Error[int](errBoom))
		assert.ErrorIs(t, err, errBoom)
		assert.Empty(t, items)
	})

	t.Run("create failing after items", func(t *testing.T) {
		src := flowable.Create(func(ctx context.Context, e flowable.Emitter[int]) error {
			if err := e.Next(1); err != nil {
				return err
			}
			return errBoom
		})

		items, err := flowable.ToSlice(ctx, src)
		assert.Equal(t, errBoom, err)
		assert.Equal(t, []int{1}, items)
	})

	t.Run("concat", func(t *testing.T) {
		src := flowable.Concat(flowable.Just(1, 2), flowable.Range(3, 5), flowable.Error[int](errBoom))

		items, err := flowable.ToSlice(ctx, src)
		assert.Equal(t, errBoom, err)
		assert.Equal(t, []int{1, 2, 3, 4}, items)
	})
}

func TestOperators(t *testing.T) {
	ctx := context.Background()

	t.Run("map", func(t *testing.T) {
		src := flowable.Map(flowable.Range(0, 5), func(x int) int { return x * 2 })

		items, err := flowable.ToSlice(ctx, src)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 2, 4, 6, 8}, items)
	})

	t.Run("filter meets demand", func(t *testing.T) {
		isEven := func(x int) bool { return x%2 == 0 }
		rec := flowabletest.NewRecorder[int](2)

		flowable.Filter(flowable.Range(0, 10), isEven).Subscribe(ctx, rec)

		assert.Equal(t, []int{0, 2}, rec.WaitItems(2))
		rec.Cancel()
	})
}

func TestBackpressure(t *testing.T) {
	ctx := context.Background()

	t.Run("nothing is emitted before a request", func(t *testing.T) {
		rec := flowabletest.NewRecorder[int](0)
		flowable.Range(0, 100).Subscribe(ctx, rec)

		assert.Never(t, func() bool { return len(rec.Items()) > 0 }, 50*time.Millisecond, 5*time.Millisecond)

		rec.Request(3)
		assert.Equal(t, []int{0, 1, 2}, rec.WaitItems(3))
		assert.Never(t, func() bool { return len(rec.Items()) > 3 }, 50*time.Millisecond, 5*time.Millisecond)

		rec.Cancel()
	})

	t.Run("requests accumulate", func(t *testing.T) {
		rec := flowabletest.NewRecorder[int](1)
		flowable.Range(0, 3).Subscribe(ctx, rec)

		rec.Request(1)
		rec.Request(flowable.Unbounded)

		<-rec.Done()
		assert.Equal(t, []int{0, 1, 2}, rec.Items())
		assert.True(t, rec.Completed())
		assert.Equal(t, []string{"subscribe", "next", "next", "next", "complete"}, rec.Signals())
	})

	t.Run("cancel stops delivery silently", func(t *testing.T) {
		rec := flowabletest.NewRecorder[int](1)
		flowable.Range(0, 100).Subscribe(ctx, rec)

		rec.WaitItems(1)
		rec.Cancel()
		rec.Request(10)

		assert.Never(t, func() bool { return len(rec.Items()) > 1 }, 50*time.Millisecond, 5*time.Millisecond)
		assert.NoError(t, rec.Err())
		assert.False(t, rec.Completed())
	})

	t.Run("non positive request fails the stream", func(t *testing.T) {
		rec := flowabletest.NewRecorder[int](0)
		flowable.Range(0, 10).Subscribe(ctx, rec)

		rec.Request(0)

		<-rec.Done()
		assert.ErrorIs(t, rec.Err(), flowable.ErrInvalidRequest)
	})

	t.Run("context cancellation fails the stream", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		rec := flowabletest.NewRecorder[int](0)
		flowable.Range(0, 10).Subscribe(ctx, rec)

		cancel()

		<-rec.Done()
		assert.ErrorIs(t, rec.Err(), context.Canceled)
	})

	t.Run("batched subscribe refills", func(t *testing.T) {
		var got []int
		done := make(chan error, 1)

		flowable.SubscribeBatched(ctx, flowable.Range(0, 7), 2,
			func(x int) { got = append(got, x) },
			func(err error) { done <- err },
		)

		require.NoError(t, <-done)
		assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, got)
	})
}
