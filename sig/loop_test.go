package sig

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoop(t *testing.T) {
	t.Run("runs tasks in order on one goroutine", func(t *testing.T) {
		l := NewLoop()

		var mu sync.Mutex
		log := []int{}
		for i := range 10 {
			require.NoError(t, l.Post(func() {
				assert.True(t, l.OnLoop())

				mu.Lock()
				log = append(log, i)
				mu.Unlock()
			}))
		}
		l.Close()

		assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, log)
		assert.False(t, l.OnLoop())
	})

	t.Run("invoke waits and runs inline on the loop", func(t *testing.T) {
		l := NewLoop()
		defer l.Close()

		log := []string{}
		require.NoError(t, l.Invoke(func() {
			log = append(log, "outer")
			_ = l.Invoke(func() { log = append(log, "inner") })
		}))

		assert.Equal(t, []string{"outer", "inner"}, log)
	})

	t.Run("post from the loop does not block", func(t *testing.T) {
		l := NewLoop()
		defer l.Close()

		done := make(chan struct{})
		require.NoError(t, l.Post(func() {
			_ = l.Post(func() { close(done) })
		}))

		<-done
	})

	t.Run("closed loop rejects tasks", func(t *testing.T) {
		l := NewLoop()
		l.Close()
		l.Close()

		<-l.Done()
		assert.ErrorIs(t, l.Post(func() {}), ErrLoopClosed)
		assert.ErrorIs(t, l.Invoke(func() {}), ErrLoopClosed)
	})
}
