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

func TestExecuteRunsExport(t *testing.T) {
	t.Run("requires output file", func(t *testing.T) {
		err := ExecuteRunsExport(nil, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--output-file")
	})

	t.Run("requires tracking", func(t *testing.T) {
		err := ExecuteRunsExport(nil, filepath.Join(t.TempDir(), "out"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "disabled")
	})

	t.Run("requires data", func(t *testing.T) {
		store, err := NewRunStore(schema.SQLiteBackend, ":memory:")
		require.NoError(t, err)
		defer func() { _ = store.Close() }()

		err = ExecuteRunsExport(store, filepath.Join(t.TempDir(), "out"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no tracked runs")
	})

	t.Run("writes both files", func(t *testing.T) {
		store, err := NewRunStore(schema.SQLiteBackend, ":memory:")
		require.NoError(t, err)
		defer func() { _ = store.Close() }()

		runID, err := store.BeginRun(schema.CoverageReport, time.Now(), map[string]any{"output": "csv"})
		require.NoError(t, err)
		require.NoError(t, store.RecordComparisonRows(runID, schema.CoverageReport, coverageRows()))
		require.NoError(t, store.EndRun(runID, time.Now(), 2))

		base := filepath.Join(t.TempDir(), "export")
		require.NoError(t, ExecuteRunsExport(store, base))

		for _, suffix := range []string{".report_runs.parquet", ".comparison_rows.parquet"} {
			info, err := os.Stat(base + suffix)
			require.NoError(t, err)
			assert.Greater(t, info.Size(), int64(0))
		}
	})
}

func TestPrintRunStatus(t *testing.T) {
	// Smoke test for both connected and disconnected stores
	PrintRunStatus(schema.RunStoreStatus{Backend: "none"})
	PrintRunStatus(schema.RunStoreStatus{
		Backend:     "sqlite",
		Connected:   true,
		TotalRuns:   1,
		LastRunID:   1,
		LastRunKind: schema.CoverageReport,
		TableSizes:  map[string]int64{reportRunsTable: 1, comparisonRowsTable: 4},
	})
}
