package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/testaudit/internal/contract"
	"github.com/huangsam/testaudit/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(output schema.OutputMode) *contract.Config {
	return &contract.Config{Precision: 2, Output: output, Width: 120}
}

func sampleCoverage() schema.CoverageReportResult {
	return schema.CoverageReportResult{
		Manual: []schema.CoverageSummaryRow{{Type: schema.LineCounter, Missed: 2, Covered: 8, Coverage: 80}},
		AI:     []schema.CoverageSummaryRow{{Type: schema.LineCounter, Missed: 5, Covered: 5, Coverage: 50}},
		Comparison: []schema.CoverageComparisonRow{{
			Class:          "com/example/Calculator",
			Type:           schema.LineCounter,
			MissedManual:   2,
			CoveredManual:  8,
			MissedAI:       5,
			CoveredAI:      5,
			CoverageManual: 80,
			CoverageAI:     50,
			Difference:     -30,
		}},
	}
}

func sampleMutations() schema.MutationReportResult {
	return schema.MutationReportResult{
		Manual: schema.MutationSummary{Total: 4, Killed: 3, Survived: 1, MutationScore: 75, TestStrength: 75},
		AI:     schema.MutationSummary{Total: 4, Killed: 2, Survived: 1, NoCoverage: 1, MutationScore: 50, TestStrength: 75},
		Comparison: []schema.MutationComparisonRow{
			{Metric: schema.TotalMutationsMetric, Manual: 4, AI: 4, Difference: 0},
			{Metric: schema.KilledMutationsMetric, Manual: 3, AI: 2, Difference: -1},
			{Metric: schema.MutationScoreMetric, Manual: 75, AI: 50, Difference: -25},
		},
	}
}

func readCSV(t *testing.T, data string) [][]string {
	t.Helper()
	records, err := csv.NewReader(strings.NewReader(data)).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriteCoverageResults(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteCoverageResults(&buf, sampleCoverage(), testConfig(schema.TextOut), time.Second))
		out := buf.String()
		assert.Contains(t, out, "Code Coverage Report for Manual Unit Tests")
		assert.Contains(t, out, "Code Coverage Report for AI-Generated Unit Tests")
		assert.Contains(t, out, "com/example/Calculator")
		assert.Contains(t, out, "-30.00 ▼")
		assert.Contains(t, out, "Compared 1 class counters")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteCoverageResults(&buf, sampleCoverage(), testConfig(schema.JSONOut), time.Second))
		var decoded schema.CoverageReportResult
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, sampleCoverage(), decoded)
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteCoverageResults(&buf, sampleCoverage(), testConfig(schema.CSVOut), time.Second))
		records := readCSV(t, buf.String())
		require.Len(t, records, 2)
		assert.Equal(t, coverageComparisonHeader, records[0])
		assert.Equal(t, []string{"com/example/Calculator", "LINE", "2", "8", "5", "5", "80.00", "50.00", "-30.00"}, records[1])
	})
}

func TestWriteMutationResults(t *testing.T) {
	t.Run("text renders counts as integers", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteMutationResults(&buf, sampleMutations(), testConfig(schema.TextOut), time.Second))
		out := buf.String()
		assert.Contains(t, out, "Killed Mutations")
		assert.Contains(t, out, "-1 ▼")
		assert.Contains(t, out, "-25.00 ▼")
		assert.NotContains(t, out, "3.00")
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteMutationResults(&buf, sampleMutations(), testConfig(schema.CSVOut), time.Second))
		records := readCSV(t, buf.String())
		require.Len(t, records, 4)
		assert.Equal(t, []string{"Metric", "Manual Unit Tests", "AI-Generated Unit Tests", "Difference"}, records[0])
		assert.Equal(t, []string{"Killed Mutations", "3", "2", "-1"}, records[2])
		assert.Equal(t, []string{"Mutation Score (%)", "75", "50", "-25"}, records[3])
	})
}

func TestWriteViolationResults(t *testing.T) {
	result := schema.ViolationReportResult{
		Manual: []schema.RuleCount{{Rule: "EmptyCatchBlock", Count: 1}},
		AI:     []schema.RuleCount{{Rule: "EmptyCatchBlock", Count: 3}},
		Comparison: []schema.ViolationComparisonRow{{
			Rule:        "EmptyCatchBlock",
			Description: "Avoid empty catch blocks",
			RuleRef:     "category/java/errorprone.xml/EmptyCatchBlock",
			Manual:      1,
			AI:          3,
			Difference:  2,
		}},
	}

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteViolationResults(&buf, result, testConfig(schema.TextOut), time.Second))
		out := buf.String()
		assert.Contains(t, out, "Rule Violations for Manual Unit Tests")
		assert.Contains(t, out, "Total violations: 3")
		assert.Contains(t, out, "+2 ▲")
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteViolationResults(&buf, result, testConfig(schema.CSVOut), time.Second))
		records := readCSV(t, buf.String())
		require.Len(t, records, 2)
		assert.Equal(t, violationComparisonHeader, records[0])
		assert.Equal(t, []string{"EmptyCatchBlock", "Avoid empty catch blocks", "category/java/errorprone.xml/EmptyCatchBlock", "1", "3", "2"}, records[1])
	})
}

func TestWriteComplianceResults(t *testing.T) {
	result := schema.ComplianceReportResult{
		Standards:       []schema.Standard{{ID: "Assertions"}},
		ManualSummary:   schema.ComplianceSummary{Files: 2},
		AISummary:       schema.ComplianceSummary{Files: 3},
		ManualBuildTime: schema.BuildTimeResult{Raw: "3.410 s", Found: true, Seconds: 3.41, Score: 0.8},
		Comparison: []schema.ComplianceComparisonRow{
			{Standard: "Assertions", Manual: 100, AI: 66.67, Difference: -33.33},
			{Standard: schema.TotalScoreKey, Manual: 90, AI: 70, Difference: -20},
		},
	}

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteComplianceResults(&buf, result, testConfig(schema.TextOut), time.Second))
		out := buf.String()
		assert.Contains(t, out, "Build time for Manual Unit Tests: 3.410 s (score 0.80)")
		assert.Contains(t, out, "Build time for AI-Generated Unit Tests: not found (score 0.00)")
		assert.Contains(t, out, "total_score")
		assert.Contains(t, out, "Evaluated 2 manual and 3 AI-generated test files against 1 standards")
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteComplianceResults(&buf, result, testConfig(schema.CSVOut), time.Second))
		records := readCSV(t, buf.String())
		require.Len(t, records, 3)
		assert.Equal(t, complianceComparisonHeader, records[0])
		assert.Equal(t, []string{"Assertions", "100.00", "66.67", "-33.33"}, records[1])
	})
}

func TestWriteComplianceRecordsCSV(t *testing.T) {
	standards := []schema.Standard{{ID: "Assertions"}, {ID: "Documentation"}}
	records := []schema.ComplianceRecord{{
		File:       "CalculatorTest.java",
		Scores:     map[schema.StandardID]float64{"Assertions": 1, "Documentation": 0},
		Coverage:   schema.CoverageMetrics{Statement: 0.5, Function: 1, Branch: 0.25, Path: 0.75},
		TotalScore: 0.5,
	}}

	var buf bytes.Buffer
	require.NoError(t, writeComplianceRecordsCSV(&buf, records, standards))
	got := readCSV(t, buf.String())
	require.Len(t, got, 2)
	assert.Equal(t, []string{"file", "Assertions", "Documentation", "statementCoverage", "functionCoverage", "branchCoverage", "pathCoverage", "total_score"}, got[0])
	assert.Equal(t, []string{"CalculatorTest.java", "1", "0", "0.5", "1", "0.25", "0.75", "0.5"}, got[1])
}

func TestSaveComparisons(t *testing.T) {
	dir := t.TempDir()

	t.Run("writes header for empty rows", func(t *testing.T) {
		path := filepath.Join(dir, "pmd_rule_violation_comparison.csv")
		require.NoError(t, SaveViolationComparison(path, nil))
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "Rule,Description,Rule Reference,Manual Violation Count,AI Violation Count,Difference\n", string(data))
	})

	t.Run("overwrites previous content", func(t *testing.T) {
		path := filepath.Join(dir, "coverage_comparison.csv")
		require.NoError(t, os.WriteFile(path, []byte("stale\nstale\nstale\n"), 0o644))
		require.NoError(t, SaveCoverageComparison(path, sampleCoverage().Comparison))
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Len(t, readCSV(t, string(data)), 2)
		assert.NotContains(t, string(data), "stale")
	})

	t.Run("empty path disables persistence", func(t *testing.T) {
		assert.NoError(t, SaveMutationComparison("", sampleMutations().Comparison))
		assert.NoError(t, SaveComplianceComparison("", nil))
		assert.NoError(t, SaveComplianceRecords("", nil, nil))
	})
}

func TestDeltaFormatter(t *testing.T) {
	cfg := &contract.Config{Precision: 1}
	tests := []struct {
		name           string
		higherIsBetter bool
		float          float64
		integer        int
		wantFloat      string
		wantInt        string
	}{
		{"increase", true, 2.24, 3, "+2.2 ▲", "+3 ▲"},
		{"decrease", true, -1.5, -2, "-1.5 ▼", "-2 ▼"},
		{"unchanged", false, 0, 0, "0.0", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newDeltaFormatter(cfg, tt.higherIsBetter)
			assert.Equal(t, tt.wantFloat, f.Float(tt.float))
			assert.Equal(t, tt.wantInt, f.Int(tt.integer))
		})
	}
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "short", truncateText("short", 10))
	assert.Equal(t, "Avoid e...", truncateText("Avoid empty catch blocks", 10))
	assert.Equal(t, "abcdef", truncateText("abcdef", 3))
}

func TestGetMaxTablePathWidth(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		columns int
		want    int
	}{
		{"clamped to minimum", 40, 4, 15},
		{"fits between bounds", 100, 4, 32},
		{"clamped to maximum", 300, 2, 70},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetMaxTablePathWidth(&contract.Config{Width: tt.width}, tt.columns))
		})
	}
}
