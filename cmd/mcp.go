package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/climb-tre/claspar/internal/contract"
	"github.com/climb-tre/claspar/internal/mcp"
	"github.com/climb-tre/claspar/schema"
)

// mcpSetup loads the configuration shared by all MCP tool calls. The
// sample ID and input file arrive per tool call, so the full shared
// setup does not apply here.
func mcpSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	cfg.ThresholdsFile = viper.GetString("thresholds")
	cfg.OutputDir = viper.GetString("output-dir")
	cfg.Precision = viper.GetInt("precision")
	cfg.Workers = viper.GetInt("workers")
	cfg.Output = schema.JSONOut
	cfg.Classifiers = schema.AllClassifiers

	var err error
	tc, err = contract.LoadThresholdConfig(cfg.ThresholdsFile)
	return err
}

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Claspar MCP server",
	Long:  `Launch an MCP server that allows AI agents to run sample classification parsing via standard tools.`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		// Suppress the normal setup paths when running in MCP mode
		// to avoid polluting stdio which is used for the protocol.
		return mcpSetup()
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, tc)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
