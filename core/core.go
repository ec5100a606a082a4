// Package core has core logic for parsing, aggregating and comparing test suite artifacts.
package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/huangsam/testaudit/internal/chart"
	"github.com/huangsam/testaudit/internal/contract"
	"github.com/huangsam/testaudit/internal/outwriter"
	"github.com/huangsam/testaudit/schema"
)

// ExecutorFunc defines the function signature for executing the different reports.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error

// Chart file names written into the chart directory.
const (
	CoverageManualChart = "coverage_manual.png"
	CoverageAIChart     = "coverage_ai.png"
	MutationManualChart = "mutation_manual.png"
	MutationAIChart     = "mutation_ai.png"
	ViolationChart      = "pmd_rule_violation_comparison.png"
	ComplianceChart     = "compliance_comparison.png"
)

// ExecuteCoverageReport compares the line, branch, method and instruction coverage of both suites.
func ExecuteCoverageReport(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	result, err := GetCoverageResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	if err := outwriter.PrintCoverageResults(result, cfg, time.Since(start)); err != nil {
		return err
	}
	if err := outwriter.SaveCoverageComparison(cfg.Outputs.CoverageCSV, result.Comparison); err != nil {
		return fmt.Errorf("cannot save coverage comparison: %w", err)
	}
	if cfg.UseCharts {
		renderChart(cfg, CoverageManualChart, "Coverage for "+schema.ManualSuite.Title(), func(w io.Writer) error {
			return chart.CoverageBar(w, schema.ManualSuite.Title(), result.Manual)
		})
		renderChart(cfg, CoverageAIChart, "Coverage for "+schema.AISuite.Title(), func(w io.Writer) error {
			return chart.CoverageBar(w, schema.AISuite.Title(), result.AI)
		})
	}
	return nil
}

// ExecuteMutationReport compares the mutation score and test strength of both suites.
func ExecuteMutationReport(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	result, err := GetMutationResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	if err := outwriter.PrintMutationResults(result, cfg, time.Since(start)); err != nil {
		return err
	}
	if err := outwriter.SaveMutationComparison(cfg.Outputs.MutationCSV, result.Comparison); err != nil {
		return fmt.Errorf("cannot save mutation comparison: %w", err)
	}
	if cfg.UseCharts {
		renderChart(cfg, MutationManualChart, schema.ManualSuite.Title(), func(w io.Writer) error {
			return chart.MutationPie(w, schema.ManualSuite.Title(), result.Manual)
		})
		renderChart(cfg, MutationAIChart, schema.AISuite.Title(), func(w io.Writer) error {
			return chart.MutationPie(w, schema.AISuite.Title(), result.AI)
		})
	}
	return nil
}

// ExecuteViolationReport compares the lint rule violations of both suites.
func ExecuteViolationReport(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	result, err := GetViolationResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	if err := outwriter.PrintViolationResults(result, cfg, time.Since(start)); err != nil {
		return err
	}
	if err := outwriter.SaveViolationComparison(cfg.Outputs.ViolationsCSV, result.Comparison); err != nil {
		return fmt.Errorf("cannot save violation comparison: %w", err)
	}
	if cfg.UseCharts {
		renderChart(cfg, ViolationChart, "Rule Violations", func(w io.Writer) error {
			return chart.ViolationLines(w, result.Comparison)
		})
	}
	return nil
}

// ExecuteStandardsReport scores every test file of both suites against the configured standards.
func ExecuteStandardsReport(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	result, err := GetStandardsResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	if err := outwriter.PrintComplianceResults(result, cfg, time.Since(start)); err != nil {
		return err
	}
	if err := outwriter.SaveComplianceRecords(cfg.Outputs.ManualComplianceCSV, result.Manual, result.Standards); err != nil {
		return fmt.Errorf("cannot save manual compliance results: %w", err)
	}
	if err := outwriter.SaveComplianceRecords(cfg.Outputs.AIComplianceCSV, result.AI, result.Standards); err != nil {
		return fmt.Errorf("cannot save AI compliance results: %w", err)
	}
	if err := outwriter.SaveComplianceComparison(cfg.Outputs.ComplianceCSV, result.Comparison); err != nil {
		return fmt.Errorf("cannot save compliance comparison: %w", err)
	}
	if cfg.UseCharts {
		renderChart(cfg, ComplianceChart, "Compliance Comparison", func(w io.Writer) error {
			return chart.ComplianceLines(w, result.Comparison)
		})
	}
	return nil
}

// ExecuteAll runs every report in sequence and stops at the first failure.
// With an output file set, each report goes to its own file named by ReportOutputFile.
func ExecuteAll(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	executors := map[schema.ReportKind]ExecutorFunc{
		schema.CoverageReport:  ExecuteCoverageReport,
		schema.MutationReport:  ExecuteMutationReport,
		schema.ViolationReport: ExecuteViolationReport,
		schema.StandardsReport: ExecuteStandardsReport,
	}
	for _, kind := range schema.AllReportKinds {
		if err := ctx.Err(); err != nil {
			return err
		}
		runCfg := cfg
		if cfg.OutputFile != "" {
			runCfg = cfg.Clone()
			runCfg.OutputFile = ReportOutputFile(cfg.OutputFile, kind)
		}
		if err := executors[kind](ctx, runCfg, mgr); err != nil {
			return fmt.Errorf("%s report failed: %w", kind, err)
		}
	}
	return nil
}

// ReportOutputFile inserts the report kind before the extension of path,
// so "report.json" becomes "report.coverage.json".
func ReportOutputFile(path string, kind schema.ReportKind) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "." + string(kind) + ext
}

// renderChart writes one chart into the chart directory. Failures never fail the report.
func renderChart(cfg *contract.Config, name, what string, render func(io.Writer) error) {
	path := filepath.Join(cfg.Outputs.ChartDir, name)
	err := chart.RenderToFile(path, render)
	switch {
	case errors.Is(err, chart.ErrNoData):
		_, _ = fmt.Fprintf(os.Stderr, "No data to plot for %s: all values are zero.\n", what)
	case err != nil:
		contract.LogWarn(fmt.Sprintf("Cannot render chart %s", path), err)
	default:
		_, _ = fmt.Fprintf(os.Stderr, "📈 Chart saved to %s\n", path)
	}
}
