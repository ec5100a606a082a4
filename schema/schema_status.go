package schema

import "time"

// RunStoreStatus represents the status of the run tracking store.
type RunStoreStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	TotalRuns     int              `json:"total_runs"`
	LastRunID     int64            `json:"last_run_id"`
	LastRunKind   ReportKind       `json:"last_run_kind"`
	LastRunTime   time.Time        `json:"last_run_time"`
	OldestRunTime time.Time        `json:"oldest_run_time"`
	TotalRows     int              `json:"total_rows"`
	TableSizes    map[string]int64 `json:"table_sizes"`
}

// ReportRunRecord represents a row from the testaudit_report_runs table.
type ReportRunRecord struct {
	RunID         int64
	Kind          ReportKind
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int64
	TotalRows     *int64
	ConfigParams  *string
}

// ComparisonRowRecord represents a row from the testaudit_comparison_rows table.
type ComparisonRowRecord struct {
	RunID int64
	Kind  ReportKind
	ComparisonRow
}
