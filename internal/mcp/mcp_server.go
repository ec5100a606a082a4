// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/testaudit/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the testaudit MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Test Suite Audit Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: compare_coverage ---
	s.AddTool(mcp.NewTool("compare_coverage",
		mcp.WithDescription("Compare JaCoCo code coverage of the manual and AI-generated test suites per class and counter type."),
		mcp.WithString("manual_report", mcp.Description("Path to the JaCoCo XML report of the manual suite.")),
		mcp.WithString("ai_report", mcp.Description("Path to the JaCoCo XML report of the AI-generated suite.")),
	), h.handleCompareCoverage)

	// --- 2. Tool: compare_mutations ---
	s.AddTool(mcp.NewTool("compare_mutations",
		mcp.WithDescription("Compare PIT mutation testing results (mutation score, test strength) of both suites."),
		mcp.WithString("manual_report", mcp.Description("Path to the PIT mutations.xml of the manual suite.")),
		mcp.WithString("ai_report", mcp.Description("Path to the PIT mutations.xml of the AI-generated suite.")),
	), h.handleCompareMutations)

	// --- 3. Tool: compare_violations ---
	s.AddTool(mcp.NewTool("compare_violations",
		mcp.WithDescription("Compare PMD rule violation counts of both suites for the fixed test rule set."),
		mcp.WithString("manual_report", mcp.Description("Path to the PMD XML report of the manual suite.")),
		mcp.WithString("ai_report", mcp.Description("Path to the PMD XML report of the AI-generated suite.")),
	), h.handleCompareViolations)

	// --- 4. Tool: score_build_time ---
	s.AddTool(mcp.NewTool("score_build_time",
		mcp.WithDescription("Read the test phase duration from a build log and score it between 0 and 1. Without log_path both configured suites are scored."),
		mcp.WithString("log_path", mcp.Description("Path to a single build log.")),
		mcp.WithString("marker", mcp.Description("Line marker preceding the duration. Defaults to '[INFO] Total time:'.")),
		mcp.WithNumber("occurrence", mcp.Description("Which marker line holds the test phase duration. Defaults to 2.")),
	), h.handleScoreBuildTime)

	// --- 5. Tool: evaluate_standards ---
	s.AddTool(mcp.NewTool("evaluate_standards",
		mcp.WithDescription("Score every test file of both suites against the configured test quality standards."),
		mcp.WithString("standards_file", mcp.Description("Path to the standards JSON configuration.")),
		mcp.WithString("manual_test_dir", mcp.Description("Directory holding the manual test sources.")),
		mcp.WithString("ai_test_dir", mcp.Description("Directory holding the AI-generated test sources.")),
	), h.handleEvaluateStandards)

	return s
}

// StartMCPServer starts the testaudit MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
