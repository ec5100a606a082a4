package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/testaudit/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readAll reads every row of a Parquet file back into T.
func readAll[T any](t *testing.T, path string) []T {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[T](file)
	defer func() { _ = reader.Close() }()

	rows := make([]T, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	return rows[:n]
}

func sampleRuns() []ReportRun {
	start := time.Date(2026, 3, 1, 10, 0, 0, 123456789, time.UTC)
	end := start.Add(1500 * time.Millisecond)
	duration := int64(1500)
	total := int64(12)
	config := `{"output":"text","precision":2}`
	return []ReportRun{
		{RunID: 1, ReportKind: "coverage", StartTime: start, EndTime: &end, RunDurationMs: &duration, TotalRows: &total, ConfigParams: &config},
		{RunID: 2, ReportKind: "standards", StartTime: start.Add(time.Minute)},
	}
}

func TestStructTags(t *testing.T) {
	tests := []struct {
		name    string
		model   any
		columns []string
	}{
		{
			name:    "report runs",
			model:   new(ReportRun),
			columns: []string{"run_id", "report_kind", "start_time", "end_time", "run_duration_ms", "total_rows", "config_params"},
		},
		{
			name:    "comparison rows",
			model:   new(ComparisonRow),
			columns: []string{"run_id", "report_kind", "row_key", "manual_value", "ai_value", "difference"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := parquet.SchemaOf(tt.model)
			require.NotNil(t, s)
			for _, col := range tt.columns {
				_, ok := s.Lookup(col)
				assert.True(t, ok, "column %s should exist", col)
			}
		})
	}
}

func TestWriteReportRunsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "runs.parquet")
	data := sampleRuns()

	require.NoError(t, WriteReportRunsParquet(data, outputPath))

	got := readAll[ReportRun](t, outputPath)
	require.Len(t, got, len(data))

	assert.Equal(t, int64(1), got[0].RunID)
	assert.Equal(t, "coverage", got[0].ReportKind)
	assert.WithinDuration(t, data[0].StartTime, got[0].StartTime, time.Nanosecond)
	require.NotNil(t, got[0].EndTime)
	assert.WithinDuration(t, *data[0].EndTime, *got[0].EndTime, time.Nanosecond)
	require.NotNil(t, got[0].RunDurationMs)
	assert.Equal(t, int64(1500), *got[0].RunDurationMs)
	require.NotNil(t, got[0].TotalRows)
	assert.Equal(t, int64(12), *got[0].TotalRows)
	require.NotNil(t, got[0].ConfigParams)
	assert.Equal(t, *data[0].ConfigParams, *got[0].ConfigParams)

	// Unfinished run keeps its nullable columns empty
	assert.Equal(t, "standards", got[1].ReportKind)
	assert.Nil(t, got[1].EndTime)
	assert.Nil(t, got[1].RunDurationMs)
	assert.Nil(t, got[1].TotalRows)
	assert.Nil(t, got[1].ConfigParams)
}

func TestWriteComparisonRowsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "rows.parquet")
	data := []ComparisonRow{
		{RunID: 1, ReportKind: "coverage", RowKey: "com.example.Cart#LINE", Manual: 80, AI: 92.5, Difference: 12.5},
		{RunID: 1, ReportKind: "coverage", RowKey: "com.example.Cart#BRANCH", Manual: 50, AI: 25, Difference: -25},
	}

	require.NoError(t, WriteComparisonRowsParquet(data, outputPath))

	got := readAll[ComparisonRow](t, outputPath)
	assert.Equal(t, data, got)
}

func TestWriteParquet_EmptyData(t *testing.T) {
	dir := t.TempDir()
	runsPath := filepath.Join(dir, "runs.parquet")
	rowsPath := filepath.Join(dir, "rows.parquet")

	require.NoError(t, WriteReportRunsParquet([]ReportRun{}, runsPath))
	require.NoError(t, WriteComparisonRowsParquet(nil, rowsPath))

	for _, p := range []string{runsPath, rowsPath} {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0), "file should contain a schema even if empty")
	}
}

func TestWriteParquet_InvalidPath(t *testing.T) {
	err := WriteReportRunsParquet(sampleRuns(), "/nonexistent/directory/output.parquet")
	assert.Error(t, err)

	err = WriteComparisonRowsParquet([]ComparisonRow{{RunID: 1}}, "/nonexistent/directory/output.parquet")
	assert.Error(t, err)
}

func TestConvertReportRunRecords(t *testing.T) {
	end := time.Now()
	duration := int64(42)
	records := []schema.ReportRunRecord{
		{RunID: 7, Kind: schema.MutationReport, StartTime: end.Add(-time.Second), EndTime: &end, RunDurationMs: &duration},
	}

	got := ConvertReportRunRecords(records)
	require.Len(t, got, 1)
	assert.Equal(t, int64(7), got[0].RunID)
	assert.Equal(t, "mutation", got[0].ReportKind)
	assert.Equal(t, &end, got[0].EndTime)
	assert.Equal(t, &duration, got[0].RunDurationMs)
	assert.Nil(t, got[0].TotalRows)

	assert.Empty(t, ConvertReportRunRecords(nil))
}

func TestConvertComparisonRowRecords(t *testing.T) {
	records := []schema.ComparisonRowRecord{
		{
			RunID:         3,
			Kind:          schema.ViolationReport,
			ComparisonRow: schema.ComparisonRow{Key: "JUnitTestsShouldIncludeAssert", Manual: 4, AI: 1, Difference: -3},
		},
	}

	got := ConvertComparisonRowRecords(records)
	assert.Equal(t, []ComparisonRow{
		{RunID: 3, ReportKind: "violations", RowKey: "JUnitTestsShouldIncludeAssert", Manual: 4, AI: 1, Difference: -3},
	}, got)
}
