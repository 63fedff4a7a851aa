package archive

import (
	"errors"
	"fmt"

	"github.com/climb-tre/claspar/internal/parquet"
)

// ExecuteArchiveExport exports all archived runs and calls to Parquet files.
func ExecuteArchiveExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	store := Store()
	if store == nil {
		return errors.New("archive store is not configured. Set --archive-backend")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get archive status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no archived data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total runs: %d\n", status.TotalRuns)
	fmt.Printf("Total calls: %d\n", status.TotalCalls)

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}

	calls, err := store.GetAllCalls()
	if err != nil {
		return fmt.Errorf("failed to retrieve calls: %w", err)
	}

	// Write runs to Parquet
	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteArchiveRunsParquet(parquet.FromArchivedRuns(runs), runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	fmt.Printf("Exported %d runs to: %s\n", len(runs), runsFile)

	// Write calls to Parquet
	callsFile := outputFile + ".calls.parquet"
	if err := parquet.WriteArchiveCallsParquet(parquet.FromArchivedCalls(calls), callsFile); err != nil {
		return fmt.Errorf("failed to write calls: %w", err)
	}
	fmt.Printf("Exported %d calls to: %s\n", len(calls), callsFile)

	return nil
}
