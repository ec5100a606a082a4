package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/huangsam/testaudit/internal/contract"
	"github.com/huangsam/testaudit/schema"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// RunStoreImpl implements the RunStore interface.
type RunStoreImpl struct {
	db         *sql.DB
	backend    schema.DatabaseBackend
	driverName string
	connStr    string
}

var _ contract.RunStore = &RunStoreImpl{} // Compile-time check

// openDB opens and pings the database behind a backend.
func openDB(backend schema.DatabaseBackend, connStr string) (*sql.DB, string, error) {
	var db *sql.DB
	var err error
	var driverName string

	switch backend {
	case schema.SQLiteBackend:
		driverName = "sqlite"
		dbPath := connStr
		if dbPath == "" {
			dbPath = GetRunsDBFilePath()
		}
		db, err = sql.Open(driverName, dbPath)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		driverName = "mysql"
		db, err = sql.Open(driverName, withParseTime(connStr))
		if err != nil {
			return nil, "", fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		driverName = "pgx"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=... dbname=... user=...", err)
		}

	default:
		return nil, "", fmt.Errorf("unsupported backend: %s", backend)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		var connDetail string
		switch backend {
		case schema.MySQLBackend:
			connDetail = "Check that MySQL is running and the connection string is correct. Ensure user/password are valid."
		case schema.PostgreSQLBackend:
			connDetail = "Check that PostgreSQL is running and the connection string is correct. Ensure user/password are valid."
		default:
			connDetail = "Verify the database file is accessible."
		}
		return nil, "", fmt.Errorf("failed to connect to %s database: %w. %s", backend, err, connDetail)
	}
	return db, driverName, nil
}

// withParseTime makes the MySQL driver scan DATETIME columns into time.Time.
func withParseTime(connStr string) string {
	cfg, err := mysql.ParseDSN(connStr)
	if err != nil {
		return connStr
	}
	cfg.ParseTime = true
	return cfg.FormatDSN()
}

// NewRunStore creates a new RunStore with the specified backend.
func NewRunStore(backend schema.DatabaseBackend, connStr string) (contract.RunStore, error) {
	if backend == schema.NoneBackend {
		// No-op store for disabled tracking
		return &RunStoreImpl{backend: backend}, nil
	}

	db, driverName, err := openDB(backend, connStr)
	if err != nil {
		return nil, err
	}

	if err := createRunTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create run tables: %w", err)
	}

	return &RunStoreImpl{
		db:         db,
		backend:    backend,
		driverName: driverName,
		connStr:    connStr,
	}, nil
}

// createRunTables creates the run tracking tables.
func createRunTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{reportRunsTable, getCreateReportRunsQuery(backend)},
		{comparisonRowsTable, getCreateComparisonRowsQuery(backend)},
	}

	for _, table := range tables {
		if err := validateTableName(table.name); err != nil {
			return err
		}
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}
	return nil
}

// getCreateReportRunsQuery returns the CREATE TABLE query for testaudit_report_runs.
func getCreateReportRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(reportRunsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				report_kind VARCHAR(32) NOT NULL,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				run_duration_ms BIGINT,
				total_rows INT,
				config_params TEXT
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				report_kind TEXT NOT NULL,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				run_duration_ms BIGINT,
				total_rows INT,
				config_params TEXT
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				report_kind TEXT NOT NULL,
				start_time TEXT NOT NULL,
				end_time TEXT,
				run_duration_ms INTEGER,
				total_rows INTEGER,
				config_params TEXT
			);
		`, quotedTableName)
	}
}

// getCreateComparisonRowsQuery returns the CREATE TABLE query for testaudit_comparison_rows.
func getCreateComparisonRowsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(comparisonRowsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				report_kind VARCHAR(32) NOT NULL,
				row_key VARCHAR(512) NOT NULL,
				manual_value DOUBLE NOT NULL,
				ai_value DOUBLE NOT NULL,
				difference DOUBLE NOT NULL,
				PRIMARY KEY (run_id, row_key)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				report_kind TEXT NOT NULL,
				row_key TEXT NOT NULL,
				manual_value DOUBLE PRECISION NOT NULL,
				ai_value DOUBLE PRECISION NOT NULL,
				difference DOUBLE PRECISION NOT NULL,
				PRIMARY KEY (run_id, row_key)
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER NOT NULL,
				report_kind TEXT NOT NULL,
				row_key TEXT NOT NULL,
				manual_value REAL NOT NULL,
				ai_value REAL NOT NULL,
				difference REAL NOT NULL,
				PRIMARY KEY (run_id, row_key)
			);
		`, quotedTableName)
	}
}

// disabled reports whether the store is a no-op.
func (rs *RunStoreImpl) disabled() bool {
	return rs.backend == schema.NoneBackend || rs.db == nil
}

// BeginRun creates a new report run and returns its unique ID.
func (rs *RunStoreImpl) BeginRun(kind schema.ReportKind, startTime time.Time, configParams map[string]any) (int64, error) {
	if rs.disabled() {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quotedTableName := quoteTableName(reportRunsTable, rs.backend)

	var runID int64
	switch rs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (report_kind, start_time, config_params) VALUES ($1, $2, $3) RETURNING run_id`, quotedTableName)
		err = rs.db.QueryRow(query, string(kind), startTime, string(configJSON)).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (report_kind, start_time, config_params) VALUES (?, ?, ?)`, quotedTableName)
		var result sql.Result
		result, err = rs.db.Exec(query, string(kind), formatTime(startTime, rs.backend), string(configJSON))
		if err != nil {
			return 0, fmt.Errorf("failed to insert report run: %w", err)
		}
		runID, err = result.LastInsertId()
	}

	if err != nil {
		return 0, fmt.Errorf("failed to insert report run: %w", err)
	}
	return runID, nil
}

// EndRun updates the report run with completion data.
func (rs *RunStoreImpl) EndRun(runID int64, endTime time.Time, totalRows int) error {
	if rs.disabled() {
		return nil
	}

	quotedTableName := quoteTableName(reportRunsTable, rs.backend)

	var query string
	switch rs.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = $1`, quotedTableName)
	default: // SQLite and MySQL
		query = fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = ?`, quotedTableName)
	}

	startTime, err := scanTime(rs.db.QueryRow(query, runID), rs.backend)
	if err != nil {
		return fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
	}

	durationMs := endTime.Sub(startTime).Milliseconds()

	var updateQuery string
	var args []any
	switch rs.backend {
	case schema.PostgreSQLBackend:
		updateQuery = fmt.Sprintf(`UPDATE %s SET end_time = $1, run_duration_ms = $2, total_rows = $3 WHERE run_id = $4`, quotedTableName)
		args = []any{endTime, durationMs, totalRows, runID}
	default: // SQLite and MySQL
		updateQuery = fmt.Sprintf(`UPDATE %s SET end_time = ?, run_duration_ms = ?, total_rows = ? WHERE run_id = ?`, quotedTableName)
		args = []any{formatTime(endTime, rs.backend), durationMs, totalRows, runID}
	}

	if _, err := rs.db.Exec(updateQuery, args...); err != nil {
		return fmt.Errorf("failed to update report run: %w", err)
	}
	return nil
}

// RecordComparisonRows stores the comparison table of a run in one transaction.
func (rs *RunStoreImpl) RecordComparisonRows(runID int64, kind schema.ReportKind, rows []schema.ComparisonRow) error {
	if rs.disabled() || len(rows) == 0 {
		return nil
	}

	quotedTableName := quoteTableName(comparisonRowsTable, rs.backend)

	var query string
	switch rs.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`
			INSERT INTO %s (run_id, report_kind, row_key, manual_value, ai_value, difference)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, quotedTableName)
	default: // SQLite and MySQL
		query = fmt.Sprintf(`
			INSERT INTO %s (run_id, report_kind, row_key, manual_value, ai_value, difference)
			VALUES (?, ?, ?, ?, ?, ?)
		`, quotedTableName)
	}

	tx, err := rs.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	stmt, err := tx.Prepare(query)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to prepare comparison row insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, row := range rows {
		if _, err := stmt.Exec(runID, string(kind), row.Key, row.Manual, row.AI, row.Difference); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to insert comparison row %q: %w", row.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit comparison rows: %w", err)
	}
	return nil
}

// GetStatus returns status information about the run store.
func (rs *RunStoreImpl) GetStatus() (schema.RunStoreStatus, error) {
	status := schema.RunStoreStatus{
		Backend:    string(rs.backend),
		Connected:  rs.db != nil,
		TableSizes: make(map[string]int64),
	}

	if rs.disabled() {
		return status, nil
	}

	quotedRuns := quoteTableName(reportRunsTable, rs.backend)

	row := rs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedRuns))
	if err := row.Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		lastRunQuery := fmt.Sprintf("SELECT run_id, report_kind, start_time FROM %s ORDER BY run_id DESC LIMIT 1", quotedRuns)
		var kind string
		var lastStart any = new(time.Time)
		if rs.backend == schema.SQLiteBackend {
			lastStart = new(string)
		}
		if err := rs.db.QueryRow(lastRunQuery).Scan(&status.LastRunID, &kind, lastStart); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		status.LastRunKind = schema.ReportKind(kind)
		lastRunTime, err := toTime(lastStart)
		if err != nil {
			return status, fmt.Errorf("failed to parse last run time: %w", err)
		}
		status.LastRunTime = lastRunTime

		oldestRunQuery := fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id ASC LIMIT 1", quotedRuns)
		oldestRunTime, err := scanTime(rs.db.QueryRow(oldestRunQuery), rs.backend)
		if err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		status.OldestRunTime = oldestRunTime

		rowsQuery := fmt.Sprintf("SELECT COALESCE(SUM(total_rows), 0) FROM %s", quotedRuns)
		if err := rs.db.QueryRow(rowsQuery).Scan(&status.TotalRows); err != nil {
			return status, fmt.Errorf("failed to get total rows: %w", err)
		}
	}

	for _, table := range trackedTables {
		countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, rs.backend))
		var count int64
		if err := rs.db.QueryRow(countQuery).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	return status, nil
}

// GetAllReportRuns retrieves all report runs from the store, oldest first.
func (rs *RunStoreImpl) GetAllReportRuns() ([]schema.ReportRunRecord, error) {
	if rs.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, report_kind, start_time, end_time, run_duration_ms, total_rows, config_params
		FROM %s ORDER BY run_id`, quoteTableName(reportRunsTable, rs.backend))

	rows, err := rs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query report runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.ReportRunRecord
	for rows.Next() {
		var record schema.ReportRunRecord
		var kind string

		switch rs.backend {
		case schema.SQLiteBackend:
			var startTimeStr string
			var endTimeStr *string
			if err := rows.Scan(&record.RunID, &kind, &startTimeStr, &endTimeStr, &record.RunDurationMs, &record.TotalRows, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan report run: %w", err)
			}
			startTime, err := time.Parse(time.RFC3339Nano, startTimeStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse start_time: %w", err)
			}
			record.StartTime = startTime
			if endTimeStr != nil {
				endTime, err := time.Parse(time.RFC3339Nano, *endTimeStr)
				if err != nil {
					return nil, fmt.Errorf("failed to parse end_time: %w", err)
				}
				record.EndTime = &endTime
			}
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&record.RunID, &kind, &record.StartTime, &record.EndTime, &record.RunDurationMs, &record.TotalRows, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan report run: %w", err)
			}
		}

		record.Kind = schema.ReportKind(kind)
		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating report runs: %w", err)
	}
	return results, nil
}

// GetAllComparisonRows retrieves all comparison rows from the store.
func (rs *RunStoreImpl) GetAllComparisonRows() ([]schema.ComparisonRowRecord, error) {
	if rs.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, report_kind, row_key, manual_value, ai_value, difference
		FROM %s ORDER BY run_id, row_key`, quoteTableName(comparisonRowsTable, rs.backend))

	rows, err := rs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query comparison rows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.ComparisonRowRecord
	for rows.Next() {
		var record schema.ComparisonRowRecord
		var kind string
		if err := rows.Scan(&record.RunID, &kind, &record.Key, &record.Manual, &record.AI, &record.Difference); err != nil {
			return nil, fmt.Errorf("failed to scan comparison row: %w", err)
		}
		record.Kind = schema.ReportKind(kind)
		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comparison rows: %w", err)
	}
	return results, nil
}

// Close closes the underlying connection.
func (rs *RunStoreImpl) Close() error {
	if rs.db != nil {
		return rs.db.Close()
	}
	return nil
}

// formatTime converts a time.Time to the appropriate format for the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.UTC().Format(time.RFC3339Nano)
	default:
		return t
	}
}

// scanTime reads a single time column, parsing the text form SQLite stores.
func scanTime(row *sql.Row, backend schema.DatabaseBackend) (time.Time, error) {
	var dest any = new(time.Time)
	if backend == schema.SQLiteBackend {
		dest = new(string)
	}
	if err := row.Scan(dest); err != nil {
		return time.Time{}, err
	}
	return toTime(dest)
}

// toTime converts a scanned time destination into a time.Time.
func toTime(dest any) (time.Time, error) {
	switch v := dest.(type) {
	case *string:
		return time.Parse(time.RFC3339Nano, *v)
	case *time.Time:
		return *v, nil
	default:
		return time.Time{}, fmt.Errorf("unexpected time destination %T", dest)
	}
}
