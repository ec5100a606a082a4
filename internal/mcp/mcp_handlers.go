package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/testaudit/core"
	"github.com/huangsam/testaudit/internal/contract"
	"github.com/huangsam/testaudit/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

// quiet keeps stdout free for the stdio transport.
func quiet(ctx context.Context) context.Context {
	return core.WithDisableProgress(core.WithSuppressHeader(ctx))
}

// jsonResult renders a report as indented JSON text.
func jsonResult(v any) *mcp.CallToolResult {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cannot encode result: %v", err))
	}
	return mcp.NewToolResultText(string(jsonData))
}

// overridePaths replaces the suite paths selected by pick with the request arguments.
func overridePaths(request mcp.CallToolRequest, cfg *contract.Config, pick func(*contract.SuitePaths) *string) {
	if p := request.GetString("manual_report", ""); p != "" {
		*pick(&cfg.Manual) = p
	}
	if p := request.GetString("ai_report", ""); p != "" {
		*pick(&cfg.AI) = p
	}
}

func (h *toolHandler) handleCompareCoverage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	overridePaths(request, cfg, func(p *contract.SuitePaths) *string { return &p.Coverage })

	result, err := core.GetCoverageResults(quiet(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("coverage comparison failed: %v", err)), nil
	}
	return jsonResult(result), nil
}

func (h *toolHandler) handleCompareMutations(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	overridePaths(request, cfg, func(p *contract.SuitePaths) *string { return &p.Mutation })

	result, err := core.GetMutationResults(quiet(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("mutation comparison failed: %v", err)), nil
	}
	return jsonResult(result), nil
}

func (h *toolHandler) handleCompareViolations(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	overridePaths(request, cfg, func(p *contract.SuitePaths) *string { return &p.Violations })

	result, err := core.GetViolationResults(quiet(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("violation comparison failed: %v", err)), nil
	}
	return jsonResult(result), nil
}

// buildLogLabel names a build log passed directly to score_build_time.
const buildLogLabel = "requested build log"

func (h *toolHandler) handleScoreBuildTime(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if m := request.GetString("marker", ""); m != "" {
		cfg.BuildLogMarker = m
	}
	if o := request.GetInt("occurrence", cfg.BuildLogOccurrence); o != cfg.BuildLogOccurrence {
		if o < 1 {
			return mcp.NewToolResultError(fmt.Sprintf("occurrence must be at least 1 (received %d)", o)), nil
		}
		cfg.BuildLogOccurrence = o
	}

	if p := request.GetString("log_path", ""); p != "" {
		return jsonResult(core.ScoreBuildLog(cfg, buildLogLabel, p)), nil
	}
	return jsonResult(map[schema.Suite]schema.BuildTimeResult{
		schema.ManualSuite: core.ScoreBuildLog(cfg, schema.ManualSuite.Title(), cfg.Manual.BuildLog),
		schema.AISuite:     core.ScoreBuildLog(cfg, schema.AISuite.Title(), cfg.AI.BuildLog),
	}), nil
}

func (h *toolHandler) handleEvaluateStandards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("standards_file", ""); p != "" {
		cfg.StandardsFile = p
	}
	if p := request.GetString("manual_test_dir", ""); p != "" {
		cfg.Manual.TestDir = p
	}
	if p := request.GetString("ai_test_dir", ""); p != "" {
		cfg.AI.TestDir = p
	}

	result, err := core.GetStandardsResults(quiet(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("standards evaluation failed: %v", err)), nil
	}
	return jsonResult(result), nil
}
