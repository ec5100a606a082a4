package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/testaudit/internal/contract"
	"github.com/huangsam/testaudit/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// coverageComparisonHeader mirrors the columns of the persisted coverage comparison.
var coverageComparisonHeader = []string{
	"class",
	"type",
	"missed_manual",
	"covered_manual",
	"missed_ai",
	"covered_ai",
	"coverage_manual",
	"coverage_ai",
	"difference",
}

// PrintCoverageResults writes the coverage report to stdout or the configured output file.
func PrintCoverageResults(result schema.CoverageReportResult, cfg *contract.Config, duration time.Duration) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteCoverageResults(w, result, cfg, duration)
	}, "Wrote coverage report")
}

// WriteCoverageResults outputs the coverage report, dispatching based on the output format configured.
func WriteCoverageResults(w io.Writer, result schema.CoverageReportResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, result); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeCoverageComparisonCSV(w, result.Comparison, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeCoverageTables(w, result, cfg, fmtFloat, duration)
	}
	return nil
}

// writeCoverageTables writes one summary table per suite, then the class level comparison.
func writeCoverageTables(w io.Writer, result schema.CoverageReportResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	suites := []struct {
		suite schema.Suite
		rows  []schema.CoverageSummaryRow
	}{
		{schema.ManualSuite, result.Manual},
		{schema.AISuite, result.AI},
	}
	for _, s := range suites {
		if _, err := fmt.Fprintf(w, "Code Coverage Report for %s\n", s.suite.Title()); err != nil {
			return err
		}
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Type", "Missed", "Covered", "Coverage %", "Label"})
		table.Configure(func(cfg *tablewriter.Config) {
			cfg.Row.Alignment.Global = tw.AlignRight
		})
		var data [][]string
		for _, r := range s.rows {
			data = append(data, []string{
				string(r.Type),
				strconv.Itoa(r.Missed),
				strconv.Itoa(r.Covered),
				fmtFloat(r.Coverage),
				contract.GetColorLabel(r.Coverage),
			})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, "Coverage Comparison (AI - Manual)"); err != nil {
		return err
	}
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Class", "Type", "Manual %", "AI %", "Difference"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	delta := newDeltaFormatter(cfg, true)
	width := GetMaxTablePathWidth(cfg, 4)
	var data [][]string
	for _, r := range result.Comparison {
		data = append(data, []string{
			contract.TruncatePath(r.Class, width),
			string(r.Type),
			fmtFloat(r.CoverageManual),
			fmtFloat(r.CoverageAI),
			delta.Float(r.Difference),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Compared %d class counters present in both suites\n", len(result.Comparison)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Report completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}

// writeCoverageComparisonCSV writes the joined coverage counters as CSV.
func writeCoverageComparisonCSV(w io.Writer, rows []schema.CoverageComparisonRow, fmtFloat func(float64) string) error {
	return writeCSVWithHeader(w, coverageComparisonHeader, func(cw *csv.Writer) error {
		for _, r := range rows {
			rec := []string{
				r.Class,
				string(r.Type),
				strconv.Itoa(r.MissedManual),
				strconv.Itoa(r.CoveredManual),
				strconv.Itoa(r.MissedAI),
				strconv.Itoa(r.CoveredAI),
				fmtFloat(r.CoverageManual),
				fmtFloat(r.CoverageAI),
				fmtFloat(r.Difference),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
