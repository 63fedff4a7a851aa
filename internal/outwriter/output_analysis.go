package outwriter

import (
	"fmt"
	"io"

	"github.com/climb-tre/claspar/internal/contract"
	"github.com/climb-tre/claspar/schema"
)

// writeAnalysisFieldsJSON writes one classifier's analysis-fields
// structure to its fixed per-sample JSON file. The reporting pipeline
// picks these files up by name, so the format is always JSON no matter
// how the tables were written.
func writeAnalysisFieldsJSON(analysis schema.AnalysisFields, cfg *contract.Config) error {
	path := outputPath(cfg, fileSlug(schema.Classifier(analysis.Classifier))+"_analysis_fields.json")
	if err := writeWithFile(path, func(w io.Writer) error {
		return writeJSON(w, analysis)
	}, "Wrote JSON"); err != nil {
		return fmt.Errorf("error writing analysis fields: %w", err)
	}
	return nil
}
