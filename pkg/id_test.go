package pkg

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID(t *testing.T) {
	t.Run("ids are numeric millisecond strings", func(t *testing.T) {
		id := NewID()
		_, err := strconv.ParseInt(id, 10, 64)
		require.NoError(t, err)
	})

	t.Run("sequential calls produce strictly increasing ids", func(t *testing.T) {
		prev, _ := strconv.ParseInt(NewID(), 10, 64)
		for i := 0; i < 100; i++ {
			cur, err := strconv.ParseInt(NewID(), 10, 64)
			require.NoError(t, err)
			assert.Greater(t, cur, prev)
			prev = cur
		}
	})

	t.Run("concurrent calls never collide", func(t *testing.T) {
		const n = 500
		var wg sync.WaitGroup
		ids := make(chan string, n)

		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				ids <- NewID()
			}()
		}
		wg.Wait()
		close(ids)

		seen := make(map[string]bool, n)
		for id := range ids {
			assert.False(t, seen[id], "duplicate id: %s", id)
			seen[id] = true
		}
		assert.Len(t, seen, n)
	})
}
