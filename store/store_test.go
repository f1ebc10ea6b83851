package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_GetSet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	t.Run("missing key returns found=false", func(t *testing.T) {
		_, found, err := s.Get(ctx, "nope")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("set then get round-trips", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "greeting", []byte(`"hello"`)))

		raw, found, err := s.Get(ctx, "greeting")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, `"hello"`, string(raw))
	})

	t.Run("set overwrites existing value", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "counter", []byte("1")))
		require.NoError(t, s.Set(ctx, "counter", []byte("2")))

		raw, found, err := s.Get(ctx, "counter")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "2", string(raw))
	})

	t.Run("delete removes key, deleting missing key is fine", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "temp", []byte("x")))
		require.NoError(t, s.Delete(ctx, "temp"))

		_, found, err := s.Get(ctx, "temp")
		require.NoError(t, err)
		assert.False(t, found)

		require.NoError(t, s.Delete(ctx, "temp"))
	})
}

func TestStore_JSON(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	type doc struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	t.Run("write then read round-trips", func(t *testing.T) {
		require.NoError(t, s.WriteJSON(ctx, "doc", doc{Name: "a", Count: 3}))

		var got doc
		ok := s.ReadJSON(ctx, "doc", &got)
		assert.True(t, ok)
		assert.Equal(t, doc{Name: "a", Count: 3}, got)
	})

	t.Run("missing key leaves dest untouched", func(t *testing.T) {
		got := doc{Name: "unchanged"}
		ok := s.ReadJSON(ctx, "missing", &got)
		assert.False(t, ok)
		assert.Equal(t, "unchanged", got.Name)
	})

	t.Run("malformed JSON is masked as empty", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "broken", []byte("{not json")))

		var got doc
		ok := s.ReadJSON(ctx, "broken", &got)
		assert.False(t, ok)
		assert.Equal(t, doc{}, got)
	})
}
