package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/testaudit/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateRuns_NoneBackend(t *testing.T) {
	err := MigrateRuns(schema.NoneBackend, "", -1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migrations are not supported for NoneBackend")
}

func TestMigrateRuns_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test_migration.db")

	// Latest version
	require.NoError(t, MigrateRuns(schema.SQLiteBackend, dbPath, -1))
	_, err := os.Stat(dbPath)
	assert.NoError(t, err)

	// No-op on second run
	assert.NoError(t, MigrateRuns(schema.SQLiteBackend, dbPath, -1))

	// Step down to the runs table only, then all the way down and back up
	assert.NoError(t, MigrateRuns(schema.SQLiteBackend, dbPath, 1))
	assert.NoError(t, MigrateRuns(schema.SQLiteBackend, dbPath, 0))
	assert.NoError(t, MigrateRuns(schema.SQLiteBackend, dbPath, 2))
}

func TestMigrateRuns_SQLiteInMemory(t *testing.T) {
	require.NoError(t, MigrateRuns(schema.SQLiteBackend, ":memory:", -1))
}

func TestMigrateRuns_StoreOpensMigratedDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrated.db")
	require.NoError(t, MigrateRuns(schema.SQLiteBackend, dbPath, -1))

	store, err := NewRunStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	runID, err := store.BeginRun(schema.MutationReport, time.Now(), nil)
	require.NoError(t, err)
	assert.NoError(t, store.RecordComparisonRows(runID, schema.MutationReport, []schema.ComparisonRow{
		{Key: schema.MutationScoreMetric, Manual: 70, AI: 75, Difference: 5},
	}))
}
