package cmd

import (
	"fmt"
	"strings"

	"github.com/huangsam/testaudit/internal/contract"
	"github.com/huangsam/testaudit/internal/store"
	"github.com/huangsam/testaudit/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// runsBackendFromConfig reads and validates the run tracking backend.
// An empty backend is treated as NoneBackend.
func runsBackendFromConfig() (schema.DatabaseBackend, string, error) {
	if err := loadConfigFile(); err != nil {
		return "", "", err
	}

	backend := schema.DatabaseBackend(strings.ToLower(strings.TrimSpace(viper.GetString("runs-backend"))))
	connStr := viper.GetString("runs-db-connect")
	if backend == "" {
		backend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return "", "", fmt.Errorf("invalid runs backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	return backend, connStr, nil
}

// runsSetup loads minimal configuration needed for run store operations.
// This is used by commands that need store access without full shared setup.
func runsSetup() error {
	backend, connStr, err := runsBackendFromConfig()
	if err != nil {
		return err
	}

	if err := store.InitStores(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize run tracking: %w", err)
	}

	cfg.RunsBackend = backend
	cfg.RunsDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")
	return nil
}

// runsSetupWrapper wraps runsSetup to provide PreRunE for runs commands.
func runsSetupWrapper(_ *cobra.Command, _ []string) error {
	return runsSetup()
}

// runsMigrateSetup loads the backend without opening the store,
// so migrations can run on a fresh database.
func runsMigrateSetup(_ *cobra.Command, _ []string) error {
	backend, connStr, err := runsBackendFromConfig()
	if err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetRunsDBFilePath()
	}

	cfg.RunsBackend = backend
	cfg.RunsDBConnect = connStr
	return nil
}

// sqliteFilePath returns the SQLite database file the store uses.
func sqliteFilePath() string {
	if cfg.RunsDBConnect != "" {
		return cfg.RunsDBConnect
	}
	return contract.GetRunsDBFilePath()
}

// runsCmd focused on run tracking management.
//
// Note: Runs subcommands use minimal initialization (runsSetup) instead of
// the full sharedSetup used by the reports. This avoids validating artifact
// paths for simple store operations.
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Manage tracked report runs and exports",
	Long: `Manage the history of report runs.

When --runs-backend is set, every report stores:
- Run metadata (report kind, timestamp, inputs, duration)
- The comparison rows it produced (manual value, AI value, difference)

This makes it possible to follow how both suites evolve across runs.

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show run tracking statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all tracking data
  migrate - Run database schema migrations

Examples:
  # Check tracking status
  testaudit runs status --runs-backend sqlite

  # Export for analysis in pandas/DuckDB
  testaudit runs export --runs-backend sqlite --output-file testaudit`,
}

// runsClearCmd clears the tracked runs.
var runsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all tracked report runs",
	Long: `Delete all stored report runs and comparison rows.

WARNING: This action cannot be undone. Consider exporting data first.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the run tables

Examples:
  testaudit runs export --runs-backend sqlite --output-file backup
  testaudit runs clear --runs-backend sqlite`,
	PreRunE: runsMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := store.ClearRuns(cfg.RunsBackend, sqliteFilePath(), cfg.RunsDBConnect); err != nil {
			contract.LogFatal("Failed to clear tracked runs", err)
		}
		fmt.Println("Tracked runs cleared successfully.")
	},
}

// runsStatusCmd shows run store status.
var runsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display run tracking statistics and connection details",
	Long: `Show detailed information about run tracking.

Displays:
- Backend type and connection status
- Total number of tracked runs and the last one
- Total comparison rows across all runs
- Database table sizes

Examples:
  testaudit runs status --runs-backend sqlite`,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runStore := store.Manager.GetRunStore()
		if runStore == nil {
			contract.LogFatal("Failed to get run status", fmt.Errorf("run tracking is disabled"))
		}
		status, err := runStore.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get run status", err)
		}
		store.PrintRunStatus(status)
	},
}

// runsExportCmd exports tracked runs to Parquet files.
var runsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export tracked runs to Parquet for BI tools and analytics",
	Long: `Export all tracked runs to Parquet format for use with analytics tools.

Exports two datasets:
- <output-file>.report_runs.parquet - metadata about each report run
- <output-file>.comparison_rows.parquet - every comparison row of every run

Requires: --output-file parameter

Examples:
  testaudit runs export --runs-backend sqlite --output-file testaudit
  duckdb -c "SELECT * FROM read_parquet('testaudit.comparison_rows.parquet') LIMIT 10"`,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := store.ExecuteRunsExport(store.Manager.GetRunStore(), cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export tracked runs", err)
		}
	},
}

// runsMigrateCmd runs database migrations for the run store.
var runsMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the run tracking store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  testaudit runs migrate --runs-backend sqlite

  # Roll back every migration
  testaudit runs migrate --runs-backend sqlite --target-version 0`,
	PreRunE: runsMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := store.MigrateRuns(cfg.RunsBackend, cfg.RunsDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
