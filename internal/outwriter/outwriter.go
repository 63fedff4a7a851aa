// Package outwriter has output and writer logic.
package outwriter

import (
	"os"

	"golang.org/x/term"

	"github.com/climb-tre/claspar/internal/contract"
	"github.com/climb-tre/claspar/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API
// for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteReportTables writes one classifier's tables using the configured
// output format. Bacteria classifiers produce a species and a genus
// table; the viral aligner produces its filtered table.
func (ow *OutWriter) WriteReportTables(c schema.Classifier, speciesRows []schema.SpeciesTableRow, genusRows []schema.GenusTableRow, virusRows []schema.VirusTableRow, cfg *contract.Config) error {
	if c == schema.ViralAlignerClassifier {
		return WriteVirusResults(virusRows, cfg)
	}
	return WriteBacteriaResults(c, speciesRows, genusRows, cfg)
}

// WriteAnalysisFields writes the per-classifier analysis-fields structure
// as JSON. The reporting schema consumes this file regardless of the
// table output format.
func (ow *OutWriter) WriteAnalysisFields(analysis schema.AnalysisFields, cfg *contract.Config) error {
	return writeAnalysisFieldsJSON(analysis, cfg)
}

// WriteThresholds prints the active threshold configuration using the
// configured output format.
func (ow *OutWriter) WriteThresholds(tc *contract.ThresholdConfig, cfg *contract.Config) error {
	return writeThresholdResults(tc, cfg)
}

// getMaxTableNameWidth calculates the maximum width for taxon names in
// table output based on terminal width and table configuration.
func getMaxTableNameWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the fixed columns: rank, share, metric, pass
	// and confidence with borders and padding.
	available := termWidth - 50
	if available < 20 {
		return 20
	}
	if available > 60 {
		return 60
	}
	return available
}
