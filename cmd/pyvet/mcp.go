package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/pyvet/pyvet/internal/analyzer"
	"github.com/pyvet/pyvet/internal/source"
)

func init() {
	mcpCmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run as an MCP server over stdio",
		Long: `Expose the analyzer as a Model Context Protocol server on stdin/stdout,
so editor and agent integrations can request analysis of Python files.`,
		RunE: runMCP,
	}

	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	s := server.NewMCPServer("pyvet", version)

	analyzeTool := mcp.NewTool("analyze",
		mcp.WithDescription("Analyze a Python file or directory and return findings as JSON"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to a Python file or a directory to analyze"),
		),
	)
	s.AddTool(analyzeTool, handleAnalyzeTool)

	rulesTool := mcp.NewTool("list_rules",
		mcp.WithDescription("List the built-in rules with their categories and severities"),
	)
	s.AddTool(rulesTool, handleListRulesTool)

	return server.ServeStdio(s)
}

func handleAnalyzeTool(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	paths, err := source.Discover(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("discovering sources: %v", err)), nil
	}
	units := source.LoadAll(paths, logger)

	rep := analyzer.New(analyzer.DefaultRegistry(), analyzer.WithLogger(logger)).Run(ctx, units)

	findings := rep.Findings
	if findings == nil {
		findings = []analyzer.Finding{}
	}
	skipped := make([]string, 0, len(rep.Skipped))
	for _, s := range rep.Skipped {
		skipped = append(skipped, s.Path)
	}
	out, err := json.MarshalIndent(struct {
		Findings []analyzer.Finding `json:"findings"`
		Analyzed int                `json:"analyzed"`
		Skipped  []string           `json:"skipped,omitempty"`
	}{findings, rep.Analyzed, skipped}, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding report: %v", err)), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func handleListRulesTool(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	type ruleEntry struct {
		ID       string `json:"id"`
		Category string `json:"category"`
		Severity string `json:"severity"`
		Doc      string `json:"doc"`
	}
	var entries []ruleEntry
	for _, rule := range analyzer.DefaultRegistry().Rules() {
		entries = append(entries, ruleEntry{
			ID:       rule.ID(),
			Category: string(rule.Category()),
			Severity: string(rule.Severity()),
			Doc:      rule.Doc(),
		})
	}
	out, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding rules: %v", err)), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}
