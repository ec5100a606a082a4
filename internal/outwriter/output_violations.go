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

// violationComparisonHeader mirrors the columns of the persisted violation comparison.
var violationComparisonHeader = []string{
	"Rule",
	"Description",
	"Rule Reference",
	"Manual Violation Count",
	"AI Violation Count",
	"Difference",
}

// PrintViolationResults writes the rule violation report to stdout or the configured output file.
func PrintViolationResults(result schema.ViolationReportResult, cfg *contract.Config, duration time.Duration) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteViolationResults(w, result, cfg, duration)
	}, "Wrote violation report")
}

// WriteViolationResults outputs the rule violation report, dispatching based on the output format configured.
func WriteViolationResults(w io.Writer, result schema.ViolationReportResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, result); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeViolationComparisonCSV(w, result.Comparison); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeViolationTables(w, result, cfg, duration)
	}
	return nil
}

// writeViolationTables writes the per suite rule counts followed by the comparison.
func writeViolationTables(w io.Writer, result schema.ViolationReportResult, cfg *contract.Config, duration time.Duration) error {
	suites := []struct {
		suite  schema.Suite
		counts []schema.RuleCount
	}{
		{schema.ManualSuite, result.Manual},
		{schema.AISuite, result.AI},
	}
	for _, s := range suites {
		if _, err := fmt.Fprintf(w, "Rule Violations for %s\n", s.suite.Title()); err != nil {
			return err
		}
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Rule", "Count"})
		table.Configure(func(cfg *tablewriter.Config) {
			cfg.Row.Alignment.Global = tw.AlignRight
		})
		total := 0
		var data [][]string
		for _, c := range s.counts {
			total += c.Count
			data = append(data, []string{c.Rule, strconv.Itoa(c.Count)})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "Total violations: %d\n", total); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, "Rule Violation Comparison (AI - Manual)"); err != nil {
		return err
	}
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rule", "Manual", "AI", "Difference", "Description"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	delta := newDeltaFormatter(cfg, false)
	width := GetMaxTablePathWidth(cfg, 4)
	var data [][]string
	for _, r := range result.Comparison {
		data = append(data, []string{
			r.Rule,
			strconv.Itoa(r.Manual),
			strconv.Itoa(r.AI),
			delta.Int(r.Difference),
			truncateText(r.Description, width),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Report completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}

// writeViolationComparisonCSV writes one row per rule of the catalogue.
func writeViolationComparisonCSV(w io.Writer, rows []schema.ViolationComparisonRow) error {
	return writeCSVWithHeader(w, violationComparisonHeader, func(cw *csv.Writer) error {
		for _, r := range rows {
			rec := []string{
				r.Rule,
				r.Description,
				r.RuleRef,
				strconv.Itoa(r.Manual),
				strconv.Itoa(r.AI),
				strconv.Itoa(r.Difference),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// truncateText shortens free text to maxWidth runes with a trailing ellipsis.
func truncateText(s string, maxWidth int) string {
	runes := []rune(s)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return s
}
