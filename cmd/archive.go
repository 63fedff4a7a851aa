package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/climb-tre/claspar/internal/archive"
	"github.com/climb-tre/claspar/internal/contract"
	"github.com/climb-tre/claspar/schema"
)

// archiveSetup loads minimal configuration needed for archive operations.
// This is used by commands that need archive access without full shared setup.
func archiveSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get archive-related config values
	backendStr := viper.GetString("archive-backend")
	connStr := viper.GetString("archive-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Get output-related config values (used by export command)
	outputFile := viper.GetString("output-file")

	// Initialize the store with the loaded config
	if err := archive.InitStore(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize archive: %w", err)
	}

	cfg.ArchiveBackend = backend
	cfg.ArchiveDBConnect = connStr
	cfg.OutputFile = outputFile

	return nil
}

// archiveSetupWrapper wraps archiveSetup to provide PreRunE for archive commands.
func archiveSetupWrapper(_ *cobra.Command, _ []string) error {
	return archiveSetup()
}

// archiveMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize the store or create
// tables, allowing migrations to run on a fresh database.
func archiveMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backendStr := viper.GetString("archive-backend")
	connStr := viper.GetString("archive-db-connect")

	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetArchiveDBFilePath()
	}

	cfg.ArchiveBackend = backend
	cfg.ArchiveDBConnect = connStr

	return nil
}

// archiveMigrateSetupWrapper wraps archiveMigrateSetup to provide PreRunE for migrate command.
func archiveMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return archiveMigrateSetup()
}

// archiveCmd focused on run archive management.
//
// Note: Archive subcommands use minimal initialization (archiveSetup) instead
// of the full sharedSetup used by the parse command. This avoids sample and
// input file validation for simple archive operations.
var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Manage the historical run archive and exports",
	Long: `Manage historical run data used for trend tracking and reporting.

When enabled, claspar records every parse run, storing:
- Run metadata (sample, timestamps, duration, configuration)
- The reported calls per classifier with share, rank and confidence

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show archive statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all archived data
  migrate - Run database schema migrations

Examples:
  # Check archive status
  claspar archive status --archive-backend sqlite

  # Export for analysis in pandas/DuckDB
  claspar archive export --archive-backend sqlite --output-file runs.parquet`,
}

// archiveStatusCmd shows archive status.
var archiveStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display archive statistics and connection details",
	Long: `Show detailed information about the historical run archive.

Displays:
- Backend type and connection status
- Total number of runs and calls stored
- Last run ID and timestamp

Examples:
  # Check archive status
  claspar archive status --archive-backend sqlite`,
	PreRunE: archiveSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := archive.Store()
		if store == nil {
			contract.LogFatal("Archive is not configured", fmt.Errorf("set --archive-backend"))
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get archive status", err)
		}
		archive.PrintArchiveStatus(status)
	},
}

// archiveExportCmd exports archive data to Parquet files.
var archiveExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export archived runs to Parquet for BI tools and analytics",
	Long: `Export all archived run data to Parquet format for use with analytics tools.

Exports two datasets:
- Runs - metadata about each parse execution
- Calls - the reported species and viral taxa per run

Requires: --output-file parameter

Examples:
  # Export all data
  claspar archive export --archive-backend sqlite --output-file claspar-data

  # Use with DuckDB for analysis
  duckdb -c "SELECT * FROM read_parquet('claspar-data.calls.parquet') LIMIT 10"`,
	PreRunE: archiveSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := archive.ExecuteArchiveExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export archive data", err)
		}
	},
}

// archiveClearCmd clears the archived data.
var archiveClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all archived run data",
	Long: `Delete all stored runs and their recorded calls.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  claspar archive export --archive-backend sqlite --output-file backup
  claspar archive clear --archive-backend sqlite`,
	PreRunE: archiveSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := archive.Store()
		if store == nil {
			contract.LogFatal("Archive is not configured", fmt.Errorf("set --archive-backend"))
		}
		if err := store.Clear(); err != nil {
			contract.LogFatal("Failed to clear archive data", err)
		}
		fmt.Println("Archive data cleared successfully.")
	},
}

// archiveMigrateCmd runs database migrations for the archive store.
var archiveMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the run archive.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  claspar archive migrate --archive-backend sqlite

  # Rollback to initial state
  claspar archive migrate --archive-backend sqlite --target-version 0`,
	PreRunE: archiveMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := archive.MigrateArchive(cfg.ArchiveBackend, cfg.ArchiveDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
