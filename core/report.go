package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/huangsam/testaudit/internal/artifact"
	"github.com/huangsam/testaudit/internal/contract"
	"github.com/huangsam/testaudit/internal/logging"
	"github.com/huangsam/testaudit/internal/outwriter"
	"github.com/huangsam/testaudit/internal/progress"
	"github.com/huangsam/testaudit/schema"
)

// loadArtifact parses one artifact of a suite. A missing file is reported as a warning
// and yields no records, any other failure is returned.
func loadArtifact[T any](what string, suite schema.Suite, path string, parse func(string) ([]T, error)) ([]T, error) {
	records, err := parse(path)
	if errors.Is(err, artifact.ErrArtifactNotFound) {
		contract.LogWarn(fmt.Sprintf("Missing %s for %s, continuing without it", what, suite.Title()), err)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	logging.Logger.Debugw("Parsed artifact", "kind", what, "suite", suite, "path", path, "records", len(records))
	return records, nil
}

// GetCoverageResults runs the coverage pipeline for both suites.
func GetCoverageResults(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (schema.CoverageReportResult, error) {
	if !shouldSuppressHeader(ctx) {
		outwriter.LogReportHeader(cfg, schema.CoverageReport)
	}
	run := beginRun(mgr, schema.CoverageReport, cfg)

	manual, err := loadArtifact("coverage report", schema.ManualSuite, cfg.Manual.Coverage, artifact.ParseCoverageReport)
	if err != nil {
		return schema.CoverageReportResult{}, err
	}
	ai, err := loadArtifact("coverage report", schema.AISuite, cfg.AI.Coverage, artifact.ParseCoverageReport)
	if err != nil {
		return schema.CoverageReportResult{}, err
	}

	result := schema.CoverageReportResult{
		Manual:     SummarizeCoverage(manual),
		AI:         SummarizeCoverage(ai),
		Comparison: CompareCoverage(manual, ai),
	}
	run.end(result.Rows())
	return result, nil
}

// GetMutationResults runs the mutation pipeline for both suites.
func GetMutationResults(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (schema.MutationReportResult, error) {
	if !shouldSuppressHeader(ctx) {
		outwriter.LogReportHeader(cfg, schema.MutationReport)
	}
	run := beginRun(mgr, schema.MutationReport, cfg)

	manual, err := loadArtifact("mutation report", schema.ManualSuite, cfg.Manual.Mutation, artifact.ParseMutationReport)
	if err != nil {
		return schema.MutationReportResult{}, err
	}
	ai, err := loadArtifact("mutation report", schema.AISuite, cfg.AI.Mutation, artifact.ParseMutationReport)
	if err != nil {
		return schema.MutationReportResult{}, err
	}

	result := schema.MutationReportResult{
		Manual: SummarizeMutations(manual),
		AI:     SummarizeMutations(ai),
	}
	result.Comparison = CompareMutations(result.Manual, result.AI)
	run.end(result.Rows())
	return result, nil
}

// GetViolationResults runs the rule violation pipeline for both suites.
func GetViolationResults(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (schema.ViolationReportResult, error) {
	if !shouldSuppressHeader(ctx) {
		outwriter.LogReportHeader(cfg, schema.ViolationReport)
	}
	run := beginRun(mgr, schema.ViolationReport, cfg)

	parse := func(path string) ([]schema.ViolationRecord, error) {
		return artifact.ParseViolationReport(path, DefaultRuleSet)
	}
	manual, err := loadArtifact("lint report", schema.ManualSuite, cfg.Manual.Violations, parse)
	if err != nil {
		return schema.ViolationReportResult{}, err
	}
	ai, err := loadArtifact("lint report", schema.AISuite, cfg.AI.Violations, parse)
	if err != nil {
		return schema.ViolationReportResult{}, err
	}

	result := schema.ViolationReportResult{
		Manual:     SortRuleCounts(CountViolations(manual, DefaultRuleSet)),
		AI:         SortRuleCounts(CountViolations(ai, DefaultRuleSet)),
		Comparison: CompareViolations(manual, ai, DefaultRuleSet),
	}
	run.end(result.Rows())
	return result, nil
}

// GetStandardsResults evaluates both test suites against the configured standards.
// An unreadable or malformed standards file is an error.
func GetStandardsResults(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (schema.ComplianceReportResult, error) {
	if !shouldSuppressHeader(ctx) {
		outwriter.LogReportHeader(cfg, schema.StandardsReport)
	}

	standards, err := artifact.LoadStandards(cfg.StandardsFile)
	if err != nil {
		return schema.ComplianceReportResult{}, fmt.Errorf("cannot load standards: %w", err)
	}
	run := beginRun(mgr, schema.StandardsReport, cfg)

	pm := progress.NewManager(!cfg.Debug && !shouldDisableProgress(ctx))
	defer pm.Close()

	result := schema.ComplianceReportResult{Standards: standards}
	for _, suite := range []schema.Suite{schema.ManualSuite, schema.AISuite} {
		eval, err := evaluateSuite(ctx, cfg, suite, standards, pm)
		if err != nil {
			return schema.ComplianceReportResult{}, err
		}
		summary := SummarizeCompliance(eval.records, standards)
		if suite == schema.ManualSuite {
			result.Manual, result.ManualSummary = eval.records, summary
			result.ManualBuildTime, result.ManualCoverage = eval.buildTime, eval.coverage
		} else {
			result.AI, result.AISummary = eval.records, summary
			result.AIBuildTime, result.AICoverage = eval.buildTime, eval.coverage
		}
	}
	result.Comparison = CompareCompliance(result.ManualSummary, result.AISummary, standards)
	run.end(result.Rows())
	return result, nil
}

type suiteEvaluation struct {
	records   []schema.ComplianceRecord
	buildTime schema.BuildTimeResult
	coverage  schema.CoverageMetrics
}

// evaluateSuite scores every test file of one suite.
func evaluateSuite(ctx context.Context, cfg *contract.Config, suite schema.Suite, standards []schema.Standard, pm progress.Manager) (suiteEvaluation, error) {
	paths := cfg.Suite(suite)
	var eval suiteEvaluation

	// --- 1. Build time ---
	eval.buildTime = ScoreBuildLog(cfg, suite.Title(), paths.BuildLog)

	// --- 2. Coverage ---
	coverage, err := loadArtifact("standards coverage report", suite, paths.StandardsCoverage, artifact.ParseCoverageReport)
	if err != nil {
		return eval, err
	}
	eval.coverage = CoverageMetricsFrom(coverage)

	// --- 3. Test files ---
	files, err := artifact.CollectTestFiles(paths.TestDir, cfg.TestExtensions, cfg.Excludes)
	if errors.Is(err, artifact.ErrArtifactNotFound) {
		contract.LogWarn(fmt.Sprintf("Missing test directory for %s", suite.Title()), err)
		return eval, nil
	}
	if err != nil {
		return eval, err
	}

	task := pm.StartTask(fmt.Sprintf("Scoring %s", suite.Title()), len(files))
	defer task.Complete()
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return eval, err
		}
		task.Describe(filepath.Base(path))
		content, err := os.ReadFile(path)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("Cannot read test file %s", path), err)
			task.Increment(1)
			continue
		}
		eval.records = append(eval.records, EvaluateFile(EvalInput{
			Path:           path,
			Content:        string(content),
			Coverage:       eval.coverage,
			BuildTimeScore: eval.buildTime.Score,
			FileSuffix:     cfg.FileSuffix,
		}, standards))
		task.Increment(1)
	}
	return eval, nil
}

// ScoreBuildLog reads the test phase duration from a build log and scores it.
// label names the log in warnings and debug output, usually a suite title.
// An unreadable log is reported as a warning and scores 0.
func ScoreBuildLog(cfg *contract.Config, label, path string) schema.BuildTimeResult {
	raw, found, err := artifact.ParseBuildLog(path, cfg.BuildLogMarker, cfg.BuildLogOccurrence)
	if err != nil {
		contract.LogWarn(fmt.Sprintf("Cannot read build log for %s", label), err)
		raw, found = "", false
	}
	result := BuildTimeScoreFromLog(raw, found)
	logging.Logger.Debugw("Scored build time", "label", label, "path", path, "raw", raw, "found", found, "score", result.Score)
	return result
}

// trackedRun is a report run registered in the run store. The zero value tracks nothing.
type trackedRun struct {
	store contract.RunStore
	id    int64
	kind  schema.ReportKind
}

// beginRun registers a report run when run tracking is configured.
func beginRun(mgr contract.StoreManager, kind schema.ReportKind, cfg *contract.Config) trackedRun {
	if mgr == nil {
		return trackedRun{}
	}
	store := mgr.GetRunStore()
	if store == nil {
		return trackedRun{}
	}
	id, err := store.BeginRun(kind, time.Now(), runConfigParams(kind, cfg))
	if err != nil {
		contract.LogWarn("Run tracking initialization failed", err)
		return trackedRun{}
	}
	return trackedRun{store: store, id: id, kind: kind}
}

// end stores the comparison rows and closes the run.
func (r trackedRun) end(rows []schema.ComparisonRow) {
	if r.store == nil || r.id <= 0 {
		return
	}
	if err := r.store.RecordComparisonRows(r.id, r.kind, rows); err != nil {
		contract.LogWarn("Failed to record comparison rows", err)
	}
	if err := r.store.EndRun(r.id, time.Now(), len(rows)); err != nil {
		contract.LogWarn("Failed to finalize run tracking", err)
	}
}

// runConfigParams captures the inputs of a run for later inspection.
func runConfigParams(kind schema.ReportKind, cfg *contract.Config) map[string]any {
	params := map[string]any{"report": string(kind)}
	switch kind {
	case schema.CoverageReport:
		params["manual"], params["ai"] = cfg.Manual.Coverage, cfg.AI.Coverage
	case schema.MutationReport:
		params["manual"], params["ai"] = cfg.Manual.Mutation, cfg.AI.Mutation
	case schema.ViolationReport:
		params["manual"], params["ai"] = cfg.Manual.Violations, cfg.AI.Violations
	case schema.StandardsReport:
		params["standards_file"] = cfg.StandardsFile
		params["manual"], params["ai"] = cfg.Manual.TestDir, cfg.AI.TestDir
		params["build_log_occurrence"] = cfg.BuildLogOccurrence
	}
	return params
}
