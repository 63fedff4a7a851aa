//go:build basic

// Package integration contains integration tests for claspar.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
package integration

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestClasparParseVerification runs a full parse over the shared record and
// checks that the emitted tables match the row-level filtering outcomes.
func TestClasparParseVerification(t *testing.T) {
	outputDir := t.TempDir()
	recordPath := writeRecordFile(t, outputDir)

	out, err := runClaspar(t, "parse", "barcode01",
		"--input", recordPath, "--output-dir", outputDir, "--output", "csv")
	require.NoError(t, err)

	// Save messages for every emitted table appear on the console
	assert.Contains(t, out, "barcode01_kraken_species_results.csv")
	assert.Contains(t, out, "barcode01_sylph_genus_results.csv")
	assert.Contains(t, out, "barcode01_filtered_viral_aligner_results.csv")

	t.Run("kraken species table", func(t *testing.T) {
		ids := readColumn(t, filepath.Join(outputDir, "barcode01_kraken_species_results.csv"), "taxon_id")
		assert.Contains(t, ids, "1280", "passing species should be present")
		assert.Contains(t, ids, "1282", "failing species stay in the table with failed fields")
	})

	t.Run("kraken genus table", func(t *testing.T) {
		ids := readColumn(t, filepath.Join(outputDir, "barcode01_kraken_genus_results.csv"), "taxon_id")
		assert.Equal(t, []string{"1279"}, ids)
	})

	t.Run("viral table holds passing rows only", func(t *testing.T) {
		ids := readColumn(t, filepath.Join(outputDir, "barcode01_filtered_viral_aligner_results.csv"), "taxon_id")
		assert.Contains(t, ids, "2697049")
		assert.NotContains(t, ids, "11320")
	})

	t.Run("analysis fields written per classifier", func(t *testing.T) {
		for _, name := range []string{
			"barcode01_kraken_analysis_fields.json",
			"barcode01_sylph_analysis_fields.json",
			"barcode01_viral_aligner_analysis_fields.json",
		} {
			assert.FileExists(t, filepath.Join(outputDir, name))
		}
	})
}

// TestClasparReportsSetupErrors checks that a configuration failure is
// printed rather than swallowed by the silenced root command.
func TestClasparReportsSetupErrors(t *testing.T) {
	out, err := runClaspar(t, "parse", "barcode01",
		"--input", "no-such-record.json", "--output-dir", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, out, "not accessible")
}

// TestClasparThresholds checks that the thresholds command reports the defaults.
func TestClasparThresholds(t *testing.T) {
	out, err := runClaspar(t, "thresholds", "--output", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "count_descendants")
	assert.Contains(t, out, "containment_index")
	assert.Contains(t, out, "evenness_value")
}

// TestClasparVersion checks the version command runs at all.
func TestClasparVersion(t *testing.T) {
	out, err := runClaspar(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "claspar CLI")
}

// readColumn extracts one named column from a CSV results file.
func readColumn(t *testing.T, path, column string) []string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, rows, "no header in %s", path)

	idx := -1
	for i, name := range rows[0] {
		if strings.EqualFold(name, column) {
			idx = i
		}
	}
	require.GreaterOrEqual(t, idx, 0, "column %s missing in %s", column, path)

	var values []string
	for _, row := range rows[1:] {
		values = append(values, row[idx])
	}
	return values
}
