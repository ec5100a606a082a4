package mcp_test

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/testaudit/internal/contract"
	mcp_internal "github.com/huangsam/testaudit/internal/mcp"
	"github.com/huangsam/testaudit/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jacoco = `<?xml version="1.0" encoding="UTF-8"?>
<report name="suite">
  <package name="shop">
    <class name="shop/Cart">
      <counter type="LINE" missed="%d" covered="%d"/>
    </class>
  </package>
</report>`

const buildLog = `[INFO] Total time:  5.2 s
[INFO] Total time:  0.8 s
`

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func baseConfig(t *testing.T) *contract.Config {
	t.Helper()
	dir := t.TempDir()
	return &contract.Config{
		Manual: contract.SuitePaths{
			Coverage: writeFile(t, filepath.Join(dir, "manual.xml"), jacocoWith(2, 8)),
			BuildLog: writeFile(t, filepath.Join(dir, "manual.log"), buildLog),
			TestDir:  filepath.Join(dir, "manual"),
		},
		AI: contract.SuitePaths{
			Coverage: writeFile(t, filepath.Join(dir, "ai.xml"), jacocoWith(5, 5)),
			BuildLog: filepath.Join(dir, "missing.log"),
			TestDir:  filepath.Join(dir, "ai"),
		},
		StandardsFile:      filepath.Join(dir, "missing-standards.json"),
		Precision:          2,
		Output:             schema.JSONOut,
		BuildLogMarker:     contract.DefaultBuildLogMarker,
		BuildLogOccurrence: contract.DefaultBuildLogOccurrence,
		TestExtensions:     contract.DefaultTestExtensions,
		FileSuffix:         contract.DefaultFileSuffix,
	}
}

func jacocoWith(missed, covered int) string {
	return fmt.Sprintf(jacoco, missed, covered)
}

func callTool(t *testing.T, cfg *contract.Config, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	s := mcp_internal.NewMCPServer(cfg, nil)
	tool := s.GetTool(name)
	require.NotNil(t, tool, "tool %s should exist", name)

	res, err := tool.Handler(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	})
	require.NoError(t, err, "handlers report failures inside the result")
	require.NotNil(t, res)
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestMCPServer_RegistersTools(t *testing.T) {
	s := mcp_internal.NewMCPServer(&contract.Config{}, nil)
	for _, name := range []string{"compare_coverage", "compare_mutations", "compare_violations", "score_build_time", "evaluate_standards"} {
		assert.NotNil(t, s.GetTool(name), "tool %s should be registered", name)
	}
}

func TestCompareCoverageTool(t *testing.T) {
	cfg := baseConfig(t)

	res := callTool(t, cfg, "compare_coverage", nil)
	require.False(t, res.IsError, resultText(t, res))

	var result schema.CoverageReportResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &result))
	require.Len(t, result.Comparison, 1)
	assert.Equal(t, 80.0, result.Comparison[0].CoverageManual)
	assert.Equal(t, 50.0, result.Comparison[0].CoverageAI)
	assert.Equal(t, -30.0, result.Comparison[0].Difference)
}

func TestCompareCoverageTool_OverridesPaths(t *testing.T) {
	cfg := baseConfig(t)
	swapped := callTool(t, cfg, "compare_coverage", map[string]any{
		"manual_report": cfg.AI.Coverage,
		"ai_report":     cfg.Manual.Coverage,
	})
	require.False(t, swapped.IsError)

	var result schema.CoverageReportResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, swapped)), &result))
	require.Len(t, result.Comparison, 1)
	assert.Equal(t, 30.0, result.Comparison[0].Difference)

	// The shared config is never mutated by a call
	assert.Contains(t, cfg.Manual.Coverage, "manual.xml")
}

func TestCompareMutationsTool_MissingReports(t *testing.T) {
	res := callTool(t, baseConfig(t), "compare_mutations", nil)
	require.False(t, res.IsError)

	var result schema.MutationReportResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &result))
	assert.Len(t, result.Comparison, 6)
	assert.Equal(t, 0, result.Manual.Total)
}

func TestCompareViolationsTool_Malformed(t *testing.T) {
	cfg := baseConfig(t)
	bad := writeFile(t, filepath.Join(t.TempDir(), "pmd.xml"), "<pmd><file>")

	res := callTool(t, cfg, "compare_violations", map[string]any{"manual_report": bad})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "violation comparison failed")
}

func TestScoreBuildTimeTool(t *testing.T) {
	cfg := baseConfig(t)

	t.Run("both suites", func(t *testing.T) {
		res := callTool(t, cfg, "score_build_time", nil)
		require.False(t, res.IsError)

		var result map[schema.Suite]schema.BuildTimeResult
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &result))
		assert.Equal(t, 1.0, result[schema.ManualSuite].Score)
		assert.False(t, result[schema.AISuite].Found)
	})

	t.Run("single log with occurrence", func(t *testing.T) {
		res := callTool(t, cfg, "score_build_time", map[string]any{
			"log_path":   cfg.Manual.BuildLog,
			"occurrence": 1.0,
		})
		require.False(t, res.IsError)

		var result schema.BuildTimeResult
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &result))
		assert.Equal(t, "5.2 s", result.Raw)
		assert.Equal(t, 0.8, result.Score)
	})

	t.Run("invalid occurrence", func(t *testing.T) {
		res := callTool(t, cfg, "score_build_time", map[string]any{"occurrence": 0.0})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "occurrence must be at least 1")
	})
}

func TestEvaluateStandardsTool_MissingStandards(t *testing.T) {
	res := callTool(t, baseConfig(t), "evaluate_standards", nil)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "cannot load standards")
}
