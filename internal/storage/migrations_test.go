package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_ReachesExpectedVersion(t *testing.T) {
	ctx := context.Background()
	kv := createTestKV(t)

	version, err := kv.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)
	assert.Equal(t, migrations[len(migrations)-1].Version, ExpectedSchemaVersion)
}

func TestMigrate_Idempotent(t *testing.T) {
	ctx := context.Background()
	kv := createTestKV(t)

	require.NoError(t, kv.Set(ctx, BudgetsKey, "[]"))
	require.NoError(t, kv.Migrate(ctx))

	v, ok, err := kv.Get(ctx, BudgetsKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)
}

func TestMigrate_CreatesIndex(t *testing.T) {
	kv := createTestKV(t)

	var count int
	err := kv.db.QueryRow(`
		SELECT COUNT(*) FROM sqlite_master
		WHERE type='index' AND name='idx_kv_store_updated_at'
	`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMigrate_VersionsAreSequential(t *testing.T) {
	for i, m := range migrations {
		assert.Equal(t, i+1, m.Version, "migration %q", m.Description)
		assert.NotEmpty(t, m.Description)
	}
}
