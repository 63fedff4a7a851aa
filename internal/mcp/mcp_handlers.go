package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/climb-tre/claspar/core"
	"github.com/climb-tre/claspar/internal/contract"
	"github.com/climb-tre/claspar/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	tc      *contract.ThresholdConfig
}

// sampleReport is the JSON shape returned by the parse_sample tool.
type sampleReport struct {
	Classifier  string                   `json:"classifier"`
	Headline    string                   `json:"headline_result"`
	SpeciesRows []schema.SpeciesTableRow `json:"species_rows,omitempty"`
	GenusRows   []schema.GenusTableRow   `json:"genus_rows,omitempty"`
	VirusRows   []schema.VirusTableRow   `json:"virus_rows,omitempty"`
	RowsSkipped int                      `json:"rows_skipped"`
}

func (h *toolHandler) handleParseSample(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sampleID := request.GetString("sample_id", "")
	if sampleID == "" {
		return mcp.NewToolResultError("sample_id is required"), nil
	}
	input := request.GetString("input", "")
	if input == "" {
		return mcp.NewToolResultError("input is required"), nil
	}

	cfg := h.baseCfg.Clone()
	cfg.SampleID = sampleID
	cfg.InputFile = input

	if raw := request.GetString("classifiers", ""); raw != "" {
		var selected []schema.Classifier
		for part := range strings.SplitSeq(raw, ",") {
			name := schema.Classifier(strings.ToLower(strings.TrimSpace(part)))
			if name == "" {
				continue
			}
			if _, ok := schema.ValidClassifiers[name]; !ok {
				return mcp.NewToolResultError(fmt.Sprintf("invalid classifier '%s'", name)), nil
			}
			selected = append(selected, name)
		}
		if len(selected) > 0 {
			cfg.Classifiers = selected
		}
	}
	if len(cfg.Classifiers) == 0 {
		cfg.Classifiers = schema.AllClassifiers
	}

	client := contract.NewLocalMetadataClient(cfg.InputFile)
	record, err := client.GetSampleRecord(ctx, cfg.SampleID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to fetch sample record: %v", err)), nil
	}

	reports := core.RunSample(cfg, record, h.tc)

	out := make([]sampleReport, len(reports))
	for i, report := range reports {
		out[i] = sampleReport{
			Classifier:  string(report.Classifier),
			Headline:    report.Analysis.HeadlineResult,
			SpeciesRows: report.SpeciesRows,
			GenusRows:   report.GenusRows,
			VirusRows:   report.VirusRows,
			RowsSkipped: len(report.Skipped),
		}
	}

	jsonData, _ := json.MarshalIndent(out, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetThresholds(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	classifiers := schema.AllClassifiers
	if raw := request.GetString("classifier", ""); raw != "" {
		name := schema.Classifier(strings.ToLower(raw))
		if _, ok := schema.ValidClassifiers[name]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid classifier '%s'", raw)), nil
		}
		classifiers = []schema.Classifier{name}
	}

	out := make(map[string]map[string]schema.Bounds, len(classifiers))
	for _, c := range classifiers {
		out[string(c)] = h.tc.ClassifierBounds(c)
	}

	jsonData, _ := json.MarshalIndent(out, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
