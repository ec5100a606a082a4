// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"time"

	"github.com/huangsam/testaudit/internal/contract"
	"github.com/huangsam/testaudit/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteCoverage prints coverage results using the configured output format.
func (ow *OutWriter) WriteCoverage(result schema.CoverageReportResult, cfg *contract.Config, duration time.Duration) error {
	return PrintCoverageResults(result, cfg, duration)
}

// WriteMutations prints mutation results using the configured output format.
func (ow *OutWriter) WriteMutations(result schema.MutationReportResult, cfg *contract.Config, duration time.Duration) error {
	return PrintMutationResults(result, cfg, duration)
}

// WriteViolations prints rule violation results using the configured output format.
func (ow *OutWriter) WriteViolations(result schema.ViolationReportResult, cfg *contract.Config, duration time.Duration) error {
	return PrintViolationResults(result, cfg, duration)
}

// WriteStandards prints standards compliance results using the configured output format.
func (ow *OutWriter) WriteStandards(result schema.ComplianceReportResult, cfg *contract.Config, duration time.Duration) error {
	return PrintComplianceResults(result, cfg, duration)
}

// LogReportHeader prints the report being run and the artifacts it compares.
// Nothing is printed for machine-readable output.
func LogReportHeader(cfg *contract.Config, kind schema.ReportKind) {
	if cfg.Output != schema.TextOut && cfg.Output != "" {
		return
	}
	var manual, ai string
	switch kind {
	case schema.CoverageReport:
		manual, ai = cfg.Manual.Coverage, cfg.AI.Coverage
	case schema.MutationReport:
		manual, ai = cfg.Manual.Mutation, cfg.AI.Mutation
	case schema.ViolationReport:
		manual, ai = cfg.Manual.Violations, cfg.AI.Violations
	case schema.StandardsReport:
		manual, ai = cfg.Manual.TestDir, cfg.AI.TestDir
	}
	fmt.Printf("🔎 Report: %s\n", kind)
	fmt.Printf("📊 Comparing: %s ↔ %s\n", manual, ai)
	if kind == schema.StandardsReport {
		fmt.Printf("📏 Standards: %s\n", cfg.StandardsFile)
	}
}
