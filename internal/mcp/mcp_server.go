// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/climb-tre/claspar/internal/contract"
)

// NewMCPServer initializes and configures the claspar MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, tc *contract.ThresholdConfig) *server.MCPServer {
	s := server.NewMCPServer(
		"Claspar Classification Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		tc:      tc,
	}

	// --- 1. Tool: parse_sample ---
	s.AddTool(mcp.NewTool("parse_sample",
		mcp.WithDescription("Normalize, filter and aggregate the classifier outputs for one sample and return the analysis tables."),
		mcp.WithString("sample_id", mcp.Description("The sample identifier."), mcp.Required()),
		mcp.WithString("input", mcp.Description("Path to the sample record JSON file holding the raw classifier outputs."), mcp.Required()),
		mcp.WithString("classifiers", mcp.Description("Comma-separated classifier selection (kraken, sylph, viral-aligner). Defaults to all.")),
	), h.handleParseSample)

	// --- 2. Tool: get_thresholds ---
	s.AddTool(mcp.NewTool("get_thresholds",
		mcp.WithDescription("Return the active filtering thresholds per classifier and metric field."),
		mcp.WithString("classifier", mcp.Description("Restrict to one classifier (kraken, sylph, viral-aligner)."), mcp.Enum("kraken", "sylph", "viral-aligner")),
	), h.handleGetThresholds)

	return s
}

// StartMCPServer starts the claspar MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, tc *contract.ThresholdConfig) error {
	s := NewMCPServer(baseCfg, tc)
	return server.ServeStdio(s)
}
