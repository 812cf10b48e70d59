package cache

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dcfagents/internal/shared/logger"
)

type item struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func testLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// brokenStore fails every operation, simulating an unreachable redis.
type brokenStore struct{}

func (brokenStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("connection refused")
}

func (brokenStore) Set(context.Context, string, []byte) error {
	return errors.New("connection refused")
}

func (brokenStore) Invalidate(context.Context, ...string) error {
	return errors.New("connection refused")
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	t.Run("miss on unknown key", func(t *testing.T) {
		_, ok, err := store.Get(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "k", []byte("v")))
		data, ok, err := store.Get(ctx, "k")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []byte("v"), data)
	})

	t.Run("invalidate removes keys", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "a", []byte("1")))
		require.NoError(t, store.Set(ctx, "b", []byte("2")))
		require.NoError(t, store.Invalidate(ctx, "a", "b"))
		assert.False(t, store.Contains("a"))
		assert.False(t, store.Contains("b"))
	})
}

func TestGetOrLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("miss loads and caches", func(t *testing.T) {
		store := NewMemoryStore()
		calls := 0
		loader := func(context.Context) ([]item, error) {
			calls++
			return []item{{ID: 1, Name: "one"}}, nil
		}

		first, err := GetOrLoad(ctx, store, testLogger(), "items", loader)
		require.NoError(t, err)
		require.Len(t, first, 1)
		assert.Equal(t, 1, calls)

		second, err := GetOrLoad(ctx, store, testLogger(), "items", loader)
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Equal(t, 1, calls, "second read must be served from cache")
	})

	t.Run("loader error propagates", func(t *testing.T) {
		store := NewMemoryStore()
		wantErr := errors.New("db down")

		_, err := GetOrLoad(ctx, store, testLogger(), "items", func(context.Context) ([]item, error) {
			return nil, wantErr
		})
		assert.ErrorIs(t, err, wantErr)
		assert.False(t, store.Contains("items"))
	})

	t.Run("broken store degrades to loader", func(t *testing.T) {
		calls := 0
		loader := func(context.Context) ([]item, error) {
			calls++
			return []item{{ID: 1, Name: "one"}}, nil
		}

		items, err := GetOrLoad(ctx, brokenStore{}, testLogger(), "items", loader)
		require.NoError(t, err)
		assert.Len(t, items, 1)

		_, err = GetOrLoad(ctx, brokenStore{}, testLogger(), "items", loader)
		require.NoError(t, err)
		assert.Equal(t, 2, calls, "every read hits the loader while the cache is down")
	})

	t.Run("corrupt entry is reloaded", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Set(ctx, "items", []byte("not json")))

		items, err := GetOrLoad(ctx, store, testLogger(), "items", func(context.Context) ([]item, error) {
			return []item{{ID: 2, Name: "two"}}, nil
		})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, uint(2), items[0].ID)
	})
}
