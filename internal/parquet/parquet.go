// Package parquet provides data structures and functions for exporting tracked
// report runs to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/testaudit/schema"
	"github.com/parquet-go/parquet-go"
)

// ReportRun represents a single tracked report run with metadata.
// This struct maps to the testaudit_report_runs database table.
type ReportRun struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// ReportKind is the pipeline that produced the run (coverage, mutation, ...)
	ReportKind string `parquet:"report_kind,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int64 `parquet:"run_duration_ms,optional,snappy"`

	// TotalRows is the number of comparison rows the run produced (nullable)
	TotalRows *int64 `parquet:"total_rows,optional,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// ComparisonRow is one manual versus AI comparison line of a run.
// This struct maps to the testaudit_comparison_rows database table.
type ComparisonRow struct {
	RunID      int64   `parquet:"run_id,snappy"`
	ReportKind string  `parquet:"report_kind,snappy"`
	RowKey     string  `parquet:"row_key,snappy"`
	Manual     float64 `parquet:"manual_value,snappy"`
	AI         float64 `parquet:"ai_value,snappy"`
	Difference float64 `parquet:"difference,snappy"` // AI - Manual
}

// WriteReportRunsParquet writes a slice of ReportRun structs to a Parquet file.
func WriteReportRunsParquet(data []ReportRun, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteComparisonRowsParquet writes a slice of ComparisonRow structs to a Parquet file.
func WriteComparisonRowsParquet(data []ComparisonRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet writes rows using the schema inferred from the struct tags of T.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	// Close flushes the footer, so its error matters
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return file.Close()
}

// ConvertReportRunRecords converts schema.ReportRunRecord to ReportRun for Parquet export.
func ConvertReportRunRecords(records []schema.ReportRunRecord) []ReportRun {
	result := make([]ReportRun, len(records))
	for i, record := range records {
		result[i] = ReportRun{
			RunID:         record.RunID,
			ReportKind:    string(record.Kind),
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			TotalRows:     record.TotalRows,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertComparisonRowRecords converts schema.ComparisonRowRecord to ComparisonRow for Parquet export.
func ConvertComparisonRowRecords(records []schema.ComparisonRowRecord) []ComparisonRow {
	result := make([]ComparisonRow, len(records))
	for i, record := range records {
		result[i] = ComparisonRow{
			RunID:      record.RunID,
			ReportKind: string(record.Kind),
			RowKey:     record.Key,
			Manual:     record.Manual,
			AI:         record.AI,
			Difference: record.Difference,
		}
	}
	return result
}
