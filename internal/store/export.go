package store

import (
	"errors"
	"fmt"

	"github.com/huangsam/testaudit/internal/contract"
	"github.com/huangsam/testaudit/internal/parquet"
)

// ExecuteRunsExport exports every tracked run and comparison row to Parquet files.
func ExecuteRunsExport(runStore contract.RunStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if runStore == nil {
		return errors.New("run tracking is disabled. Set --runs-backend to export runs")
	}

	status, err := runStore.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get run status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no tracked runs found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total report runs: %d\n", status.TotalRuns)
	fmt.Printf("Total comparison rows: %d\n", status.TableSizes[comparisonRowsTable])

	runs, err := runStore.GetAllReportRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve report runs: %w", err)
	}
	rows, err := runStore.GetAllComparisonRows()
	if err != nil {
		return fmt.Errorf("failed to retrieve comparison rows: %w", err)
	}

	parquetRuns := parquet.ConvertReportRunRecords(runs)
	runsFile := outputFile + ".report_runs.parquet"
	if err := parquet.WriteReportRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write report runs: %w", err)
	}
	fmt.Printf("Exported %d report runs to: %s\n", len(parquetRuns), runsFile)

	parquetRows := parquet.ConvertComparisonRowRecords(rows)
	rowsFile := outputFile + ".comparison_rows.parquet"
	if err := parquet.WriteComparisonRowsParquet(parquetRows, rowsFile); err != nil {
		return fmt.Errorf("failed to write comparison rows: %w", err)
	}
	fmt.Printf("Exported %d comparison rows to: %s\n", len(parquetRows), rowsFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Any other Parquet-compatible tool")
	return nil
}
