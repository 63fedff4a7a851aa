package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/climb-tre/claspar/core"
	"github.com/climb-tre/claspar/internal/contract"
	"github.com/climb-tre/claspar/schema"
)

// thresholdsSetup loads minimal configuration needed to display thresholds.
// No sample or input file is required, so the full shared setup is skipped.
func thresholdsSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	cfg.ThresholdsFile = viper.GetString("thresholds")
	cfg.OutputFile = viper.GetString("output-file")
	cfg.Output = schema.OutputMode(viper.GetString("output"))
	cfg.Precision = viper.GetInt("precision")
	cfg.Width = viper.GetInt("width")

	useColors, err := contract.ParseBoolString(viper.GetString("color"))
	if err != nil {
		return err
	}
	cfg.UseColors = useColors

	// Thresholds have no parquet rendition, only the tabular formats.
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok || cfg.Output == schema.ParquetOut {
		return fmt.Errorf("invalid output mode '%s': must be one of csv, text, json", cfg.Output)
	}

	tc, err = contract.LoadThresholdConfig(cfg.ThresholdsFile)
	return err
}

// thresholdsSetupWrapper wraps thresholdsSetup to provide PreRunE.
func thresholdsSetupWrapper(_ *cobra.Command, _ []string) error {
	return thresholdsSetup()
}

// thresholdsCmd shows the active filter bounds per classifier and field.
var thresholdsCmd = &cobra.Command{
	Use:   "thresholds",
	Short: "Display the active metric thresholds per classifier.",
	Long: `Show the minimum and maximum bounds applied to each metric field.

Every classifier carries its own set of configured fields. A record
passes the filter only when every configured field of its classifier
sits inside its bounds. Fields a record carries but no threshold
mentions are never checked.

Examples:
  # Show the built-in default thresholds
  claspar thresholds

  # Show a custom thresholds file as JSON
  claspar thresholds -t thresholds.yaml -o json`,
	PreRunE: thresholdsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteThresholds(cfg, tc); err != nil {
			contract.LogFatal("Cannot display thresholds", err)
		}
	},
}
