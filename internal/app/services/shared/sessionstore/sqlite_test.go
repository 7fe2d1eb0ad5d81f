package sessionstore

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store, err := NewSQLiteStore(context.Background(), db)
	require.NoError(t, err)
	return store
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	t.Run("Upsert overwrites", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "auth_token", "first", 0))
		require.NoError(t, store.Set(ctx, "auth_token", "second", 0))
		value, err := store.Get(ctx, "auth_token")
		require.NoError(t, err)
		assert.Equal(t, "second", value)
	})

	t.Run("Missing key", func(t *testing.T) {
		value, err := store.Get(ctx, "nope")
		require.NoError(t, err)
		assert.Empty(t, value)
	})

	t.Run("Expiry and sweep", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "receipt", "r", time.Second))
		now = now.Add(time.Second)
		value, err := store.Get(ctx, "receipt")
		require.NoError(t, err)
		assert.Empty(t, value)

		removed, err := store.Sweep(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, removed)
	})

	t.Run("Take reads once", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "booking", "b", time.Hour))
		value, err := store.Take(ctx, "booking")
		require.NoError(t, err)
		assert.Equal(t, "b", value)

		value, err = store.Take(ctx, "booking")
		require.NoError(t, err)
		assert.Empty(t, value)
	})

	t.Run("Take of expired key is empty", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "stale", "s", time.Second))
		now = now.Add(time.Second)
		value, err := store.Take(ctx, "stale")
		require.NoError(t, err)
		assert.Empty(t, value)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "auth_token"))
		value, _ := store.Get(ctx, "auth_token")
		assert.Empty(t, value)
	})
}
