package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/huangsam/testaudit/internal/contract"
	"github.com/huangsam/testaudit/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintMutationResults writes the mutation report to stdout or the configured output file.
func PrintMutationResults(result schema.MutationReportResult, cfg *contract.Config, duration time.Duration) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteMutationResults(w, result, cfg, duration)
	}, "Wrote mutation report")
}

// WriteMutationResults outputs the mutation report, dispatching based on the output format configured.
func WriteMutationResults(w io.Writer, result schema.MutationReportResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, result); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeMutationComparisonCSV(w, result.Comparison); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeMutationTable(w, result, cfg, fmtFloat, intFmt, duration)
	}
	return nil
}

// writeMutationTable writes the metric comparison of both suites.
func writeMutationTable(w io.Writer, result schema.MutationReportResult, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Metric", schema.ManualSuite.Title(), schema.AISuite.Title(), "Difference"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	better := newDeltaFormatter(cfg, true)
	worse := newDeltaFormatter(cfg, false)
	var data [][]string
	for _, r := range result.Comparison {
		delta := better
		if schema.LowerIsBetterMetrics[r.Metric] {
			delta = worse
		}
		if isPercentMetric(r.Metric) {
			data = append(data, []string{r.Metric, fmtFloat(r.Manual), fmtFloat(r.AI), delta.Float(r.Difference)})
			continue
		}
		data = append(data, []string{
			r.Metric,
			fmt.Sprintf(intFmt, int(r.Manual)),
			fmt.Sprintf(intFmt, int(r.AI)),
			delta.Int(int(r.Difference)),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Mutation score: %s (%s) vs %s (%s)\n",
		fmtFloat(result.Manual.MutationScore), contract.GetColorLabel(result.Manual.MutationScore),
		fmtFloat(result.AI.MutationScore), contract.GetColorLabel(result.AI.MutationScore)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Report completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}

// writeMutationComparisonCSV writes one row per mutation metric.
// Counts are written without a fractional part.
func writeMutationComparisonCSV(w io.Writer, rows []schema.MutationComparisonRow) error {
	header := []string{"Metric", schema.ManualSuite.Title(), schema.AISuite.Title(), "Difference"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range rows {
			if err := cw.Write([]string{r.Metric, rawFloat(r.Manual), rawFloat(r.AI), rawFloat(r.Difference)}); err != nil {
				return err
			}
		}
		return nil
	})
}

// isPercentMetric reports whether a mutation metric is a percentage rather than a count.
func isPercentMetric(metric string) bool {
	return strings.HasSuffix(metric, "(%)")
}
