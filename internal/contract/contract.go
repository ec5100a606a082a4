// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/huangsam/testaudit/schema"
)

// StoreManager defines the interface for managing persistence stores.
// This allows the store layer to be mocked for testing.
type StoreManager interface {
	GetRunStore() RunStore
}

// RunStore defines the interface for tracking report runs and their comparison rows.
type RunStore interface {
	// BeginRun creates a new report run and returns its unique ID
	BeginRun(kind schema.ReportKind, startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the report run with completion data
	EndRun(runID int64, endTime time.Time, totalRows int) error

	// RecordComparisonRows stores the comparison table produced by a run
	RecordComparisonRows(runID int64, kind schema.ReportKind, rows []schema.ComparisonRow) error

	// GetStatus returns status information about the run store
	GetStatus() (schema.RunStoreStatus, error)

	// GetAllReportRuns returns every tracked run, oldest first
	GetAllReportRuns() ([]schema.ReportRunRecord, error)

	// GetAllComparisonRows returns every stored comparison row
	GetAllComparisonRows() ([]schema.ComparisonRowRecord, error)

	// Close closes the underlying connection
	Close() error
}
