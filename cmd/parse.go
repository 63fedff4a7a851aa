package cmd

import (
	"github.com/spf13/cobra"

	"github.com/climb-tre/claspar/core"
	"github.com/climb-tre/claspar/internal/contract"
)

// parseCmd runs the full classification pipeline for one sample.
var parseCmd = &cobra.Command{
	Use:   "parse <sample-id>",
	Short: "Parse, filter and summarize a sample's classifier results.",
	Long: `Run the full pipeline for a single sample.

For each selected classifier this command:
- Normalizes the raw rows into a common record shape
- Applies the configured metric thresholds per field
- Rolls species up into genus summaries with share, rank and confidence
- Writes species, genus and analysis-field files per classifier

Rows that cannot be parsed are skipped with a warning, never fatal.
The viral aligner path skips the genus roll-up and reports passing
taxa directly.

Examples:
  # Parse a sample with the default thresholds
  claspar parse barcode01 --input results.json

  # Only the bacterial classifiers, JSON output
  claspar parse barcode01 -i results.json -c kraken,sylph -o json

  # Custom thresholds plus run archiving
  claspar parse barcode01 -i results.json -t thresholds.yaml --archive-backend sqlite`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		client := contract.NewLocalMetadataClient(cfg.InputFile)
		if err := core.ExecuteParse(rootCtx, cfg, client, tc); err != nil {
			contract.LogFatal("Cannot parse sample", err)
		}
	},
}
