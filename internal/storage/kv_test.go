package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestKV opens a migrated SQLite store in a temp directory.
func createTestKV(t *testing.T) *SQLiteKV {
	t.Helper()

	kv, err := NewSQLiteKV(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, kv.Migrate(context.Background()))
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

func kvBackends(t *testing.T) map[string]KeyValueStore {
	t.Helper()

	mem, err := NewSQLiteKV(":memory:")
	require.NoError(t, err)
	require.NoError(t, mem.Migrate(context.Background()))
	t.Cleanup(func() { _ = mem.Close() })

	return map[string]KeyValueStore{
		"memory":        NewMemoryKV(),
		"sqlite file":   createTestKV(t),
		"sqlite memory": mem,
	}
}

func TestKeyValueStore_Contract(t *testing.T) {
	ctx := context.Background()

	for name, kv := range kvBackends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := kv.Get(ctx, "missing")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, kv.Set(ctx, "a", "one"))
			v, ok, err := kv.Get(ctx, "a")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "one", v)

			// Set replaces the whole value.
			require.NoError(t, kv.Set(ctx, "a", "two"))
			v, _, err = kv.Get(ctx, "a")
			require.NoError(t, err)
			assert.Equal(t, "two", v)

			// Empty values are still present.
			require.NoError(t, kv.Set(ctx, "empty", ""))
			v, ok, err = kv.Get(ctx, "empty")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Empty(t, v)

			require.NoError(t, kv.Remove(ctx, "a"))
			_, ok, err = kv.Get(ctx, "a")
			require.NoError(t, err)
			assert.False(t, ok)

			// Removing a missing key is fine.
			assert.NoError(t, kv.Remove(ctx, "a"))
		})
	}
}

func TestKeyValueStore_Validation(t *testing.T) {
	ctx := context.Background()

	for name, kv := range kvBackends(t) {
		t.Run(name, func(t *testing.T) {
			_, _, err := kv.Get(ctx, "")
			assert.ErrorIs(t, err, ErrEmptyString)
			assert.ErrorIs(t, kv.Set(ctx, "  ", "x"), ErrEmptyString)
			assert.ErrorIs(t, kv.Remove(ctx, ""), ErrEmptyString)

			//nolint:staticcheck // nil context is the case under test
			_, _, err = kv.Get(nil, "a")
			assert.ErrorIs(t, err, ErrNilContext)
		})
	}
}

func TestMemoryKV_Closed(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(ctx, "a", "1"))
	require.NoError(t, kv.Close())

	_, _, err := kv.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrStoreClosed)
	assert.ErrorIs(t, kv.Set(ctx, "a", "2"), ErrStoreClosed)
	assert.ErrorIs(t, kv.Remove(ctx, "a"), ErrStoreClosed)
}

func TestMemoryKV_Keys(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(ctx, "b", "1"))
	require.NoError(t, kv.Set(ctx, "a", "2"))

	assert.Equal(t, []string{"a", "b"}, kv.Keys())
}

func TestSQLiteKV_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "spendwise.db")

	kv, err := NewSQLiteKV(dbPath)
	require.NoError(t, err)
	require.NoError(t, kv.Migrate(ctx))
	require.NoError(t, kv.Set(ctx, ExpensesKey, `[{"id":"1"}]`))
	require.NoError(t, kv.Close())

	reopened, err := NewSQLiteKV(dbPath)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()
	require.NoError(t, reopened.Migrate(ctx))

	v, ok, err := reopened.Get(ctx, ExpensesKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"1"}]`, v)

	keys, err := reopened.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{ExpensesKey}, keys)
	assert.Equal(t, dbPath, reopened.Path())
}

func TestNewSQLiteKV_EmptyPath(t *testing.T) {
	_, err := NewSQLiteKV("")
	assert.ErrorIs(t, err, ErrEmptyString)
}
