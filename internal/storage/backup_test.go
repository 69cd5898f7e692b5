package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akash50142/expense-tracker/internal/model"
)

func createTestBackupManager(t *testing.T) (*BackupManager, *SQLiteKV) {
	t.Helper()

	kv := createTestKV(t)
	bm, err := NewBackupManager(kv)
	require.NoError(t, err)

	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	bm.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return bm, kv
}

func TestBackupManager_CreateAndList(t *testing.T) {
	ctx := context.Background()
	bm, kv := createTestBackupManager(t)
	store := NewStore(kv)

	require.NoError(t, store.SaveExpenses(ctx, []model.Expense{
		{ID: "1", Amount: 10, Category: model.CategoryFood, Date: "2024-02-01", Description: "Lunch"},
		{ID: "2", Amount: 20, Category: model.CategoryFood, Date: "2024-02-02", Description: "Dinner"},
	}))
	require.NoError(t, store.SaveBudgets(ctx, []model.Budget{{Category: model.CategoryFood, Limit: 100}}))

	meta, err := bm.Create(ctx, "before-import", "manual")
	require.NoError(t, err)
	assert.Equal(t, "before-import", meta.ID)
	assert.Equal(t, 2, meta.Expenses)
	assert.Equal(t, 1, meta.Budgets)
	assert.Equal(t, ExpectedSchemaVersion, meta.SchemaVersion)
	assert.Positive(t, meta.FileSize)
	assert.False(t, meta.IsAuto)

	_, err = bm.Create(ctx, "", "generated name")
	require.NoError(t, err)

	list, err := bm.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	// Newest first.
	assert.Equal(t, "generated name", list[0].Description)
	assert.Equal(t, "before-import", list[1].ID)

	_, err = bm.Create(ctx, "before-import", "again")
	assert.ErrorIs(t, err, ErrBackupExists)
}

func TestBackupManager_Restore(t *testing.T) {
	ctx := context.Background()
	bm, kv := createTestBackupManager(t)
	store := NewStore(kv)

	original := []model.Expense{{ID: "1", Amount: 10, Category: model.CategoryFood, Date: "2024-02-01", Description: "Lunch"}}
	require.NoError(t, store.SaveExpenses(ctx, original))
	_, err := bm.Create(ctx, "snap", "")
	require.NoError(t, err)

	require.NoError(t, store.Clear(ctx))
	require.NoError(t, bm.Restore(ctx, "snap"))

	reopened, err := NewSQLiteKV(kv.Path())
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()
	require.NoError(t, reopened.Migrate(ctx))

	assert.Equal(t, original, NewStore(reopened).LoadExpenses(ctx))
}

func TestBackupManager_AutoBackupPrunes(t *testing.T) {
	ctx := context.Background()
	bm, _ := createTestBackupManager(t)

	_, err := bm.Create(ctx, "manual", "")
	require.NoError(t, err)
	for i := 0; i < MaxAutoBackups+2; i++ {
		meta, err := bm.AutoBackup(ctx, "reset")
		require.NoError(t, err, "auto-backup %d", i)
		assert.True(t, meta.IsAuto)
	}

	list, err := bm.List(ctx)
	require.NoError(t, err)

	autos := 0
	for _, b := range list {
		if b.IsAuto {
			autos++
		}
	}
	assert.Equal(t, MaxAutoBackups, autos)
	assert.Len(t, list, MaxAutoBackups+1)
}

func TestBackupManager_Errors(t *testing.T) {
	ctx := context.Background()
	bm, _ := createTestBackupManager(t)

	for _, id := range []string{"../escape", "a/b", `a\b`} {
		t.Run(fmt.Sprintf("invalid %s", id), func(t *testing.T) {
			_, err := bm.Create(ctx, id, "")
			assert.ErrorIs(t, err, ErrInvalidBackupID)
			assert.ErrorIs(t, bm.Restore(ctx, id), ErrInvalidBackupID)
			assert.ErrorIs(t, bm.Delete(ctx, id), ErrInvalidBackupID)
		})
	}

	assert.ErrorIs(t, bm.Restore(ctx, "nope"), ErrBackupNotFound)
	assert.ErrorIs(t, bm.Delete(ctx, "nope"), ErrBackupNotFound)
}

func TestBackupManager_RestoreCorrupted(t *testing.T) {
	ctx := context.Background()
	bm, _ := createTestBackupManager(t)

	require.NoError(t, os.WriteFile(filepath.Join(bm.Dir(), "broken.db"), []byte("not a database"), 0600))
	assert.ErrorIs(t, bm.Restore(ctx, "broken"), ErrBackupCorrupted)
}

func TestNewBackupManager_InMemory(t *testing.T) {
	kv, err := NewSQLiteKV(":memory:")
	require.NoError(t, err)
	defer func() { _ = kv.Close() }()

	_, err = NewBackupManager(kv)
	assert.ErrorIs(t, err, ErrInMemoryBackup)
}
