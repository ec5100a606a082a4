package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/huangsam/testaudit/internal/contract"
	"github.com/huangsam/testaudit/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// complianceComparisonHeader mirrors the columns of the persisted compliance comparison.
var complianceComparisonHeader = []string{"standard", "manual", "ai", "difference"}

// PrintComplianceResults writes the standards report to stdout or the configured output file.
func PrintComplianceResults(result schema.ComplianceReportResult, cfg *contract.Config, duration time.Duration) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteComplianceResults(w, result, cfg, duration)
	}, "Wrote standards report")
}

// WriteComplianceResults outputs the standards report, dispatching based on the output format configured.
func WriteComplianceResults(w io.Writer, result schema.ComplianceReportResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, result); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeComplianceComparisonCSV(w, result.Comparison, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeComplianceTable(w, result, cfg, fmtFloat, duration)
	}
	return nil
}

// writeComplianceTable writes the mean compliance per standard for both suites.
func writeComplianceTable(w io.Writer, result schema.ComplianceReportResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	buildTimes := []struct {
		suite schema.Suite
		bt    schema.BuildTimeResult
	}{
		{schema.ManualSuite, result.ManualBuildTime},
		{schema.AISuite, result.AIBuildTime},
	}
	for _, b := range buildTimes {
		raw := b.bt.Raw
		if !b.bt.Found {
			raw = "not found"
		}
		if _, err := fmt.Fprintf(w, "⏱️  Build time for %s: %s (score %.2f)\n", b.suite.Title(), raw, b.bt.Score); err != nil {
			return err
		}
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Standard", "Manual %", "AI %", "Difference", "Manual", "AI"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	delta := newDeltaFormatter(cfg, true)
	var data [][]string
	for _, r := range result.Comparison {
		data = append(data, []string{
			string(r.Standard),
			fmtFloat(r.Manual),
			fmtFloat(r.AI),
			delta.Float(r.Difference),
			contract.GetColorLabel(r.Manual),
			contract.GetColorLabel(r.AI),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Evaluated %d manual and %d AI-generated test files against %d standards\n",
		result.ManualSummary.Files, result.AISummary.Files, len(result.Standards)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Report completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}

// writeComplianceComparisonCSV writes one row per standard plus the total score row.
func writeComplianceComparisonCSV(w io.Writer, rows []schema.ComplianceComparisonRow, fmtFloat func(float64) string) error {
	return writeCSVWithHeader(w, complianceComparisonHeader, func(cw *csv.Writer) error {
		for _, r := range rows {
			if err := cw.Write([]string{string(r.Standard), fmtFloat(r.Manual), fmtFloat(r.AI), fmtFloat(r.Difference)}); err != nil {
				return err
			}
		}
		return nil
	})
}

// complianceRecordsHeader lists the per file columns: standards in configuration order,
// then the coverage metrics and the total score.
func complianceRecordsHeader(standards []schema.Standard) []string {
	header := []string{"file"}
	for _, s := range standards {
		header = append(header, string(s.ID))
	}
	return append(header, "statementCoverage", "functionCoverage", "branchCoverage", "pathCoverage", string(schema.TotalScoreKey))
}

// writeComplianceRecordsCSV writes one row per evaluated test file with raw scores in [0,1].
func writeComplianceRecordsCSV(w io.Writer, records []schema.ComplianceRecord, standards []schema.Standard) error {
	return writeCSVWithHeader(w, complianceRecordsHeader(standards), func(cw *csv.Writer) error {
		for _, r := range records {
			rec := []string{r.File}
			for _, s := range standards {
				rec = append(rec, rawFloat(r.Scores[s.ID]))
			}
			for _, v := range r.Coverage.Values() {
				rec = append(rec, rawFloat(v))
			}
			rec = append(rec, rawFloat(r.TotalScore))
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
