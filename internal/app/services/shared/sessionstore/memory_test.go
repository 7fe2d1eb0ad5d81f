package sessionstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	store := NewMemoryStoreWithClock(func() time.Time { return now })

	t.Run("Absent key reads as empty", func(t *testing.T) {
		value, err := store.Get(ctx, "missing")
		require.NoError(t, err)
		assert.Empty(t, value)
	})

	t.Run("Set then Get returns the value", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "pathway", `{"a":1}`, 0))
		value, err := store.Get(ctx, "pathway")
		require.NoError(t, err)
		assert.Equal(t, `{"a":1}`, value)
	})

	t.Run("Delete removes the key", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "token", "abc", 0))
		require.NoError(t, store.Delete(ctx, "token"))
		value, err := store.Get(ctx, "token")
		require.NoError(t, err)
		assert.Empty(t, value)
	})

	t.Run("Expired key reads as empty and is swept", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "receipt", "r", time.Minute))
		value, _ := store.Get(ctx, "receipt")
		assert.Equal(t, "r", value)

		now = now.Add(2 * time.Minute)
		value, _ = store.Get(ctx, "receipt")
		assert.Empty(t, value)

		removed, err := store.Sweep(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, removed)
	})
}

func TestNew_UnknownBackend(t *testing.T) {
	_, err := New(context.Background(), "etcd", Backends{})
	assert.Error(t, err)

	_, err = New(context.Background(), "redis", Backends{})
	assert.Error(t, err, "redis backend without a client")

	store, err := New(context.Background(), "memory", Backends{})
	require.NoError(t, err)
	assert.NotNil(t, store)
}

func TestMemoryStoreTake(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	store := NewMemoryStoreWithClock(func() time.Time { return now })

	require.NoError(t, store.Set(ctx, "receipt", "r", time.Minute))
	value, err := store.Take(ctx, "receipt")
	require.NoError(t, err)
	assert.Equal(t, "r", value)

	value, err = store.Take(ctx, "receipt")
	require.NoError(t, err)
	assert.Empty(t, value)

	require.NoError(t, store.Set(ctx, "old", "o", time.Minute))
	now = now.Add(time.Minute)
	value, err = store.Take(ctx, "old")
	require.NoError(t, err)
	assert.Empty(t, value)
}
