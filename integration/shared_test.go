//go:build basic || database

package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

var (
	// sharedClasparPath holds the path to a shared claspar binary built once for all tests.
	sharedClasparPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// sampleRecordJSON is a small but complete classification record covering
// all three classifiers, with one failing row per classifier.
const sampleRecordJSON = `{
  "sample_id": "barcode01",
  "classifier_calls": [
    {"taxon_id": "1279", "human_readable": "Staphylococcus", "raw_rank": "G",
     "lineage": "2|1239|90964|1279", "count_direct": 10, "count_descendants": 300},
    {"taxon_id": "1280", "human_readable": "Staphylococcus aureus", "raw_rank": "S",
     "lineage": "2|1239|90964|1279|1280", "count_direct": 150, "count_descendants": 200},
    {"taxon_id": "1282", "human_readable": "Staphylococcus epidermidis", "raw_rank": "S",
     "lineage": "2|1239|90964|1279|1282", "count_direct": 2, "count_descendants": 5}
  ],
  "sylph_results": [
    {"taxon_id": "1313", "human_readable": "Streptococcus pneumoniae", "taxon_rank": "species",
     "lineage": "2|1239|1300|1301|1313",
     "containment_index": "19/20", "effective_coverage": 2.5, "sequence_abundance": 40.0}
  ],
  "alignment_results": [
    {"taxon_id": "2697049", "human_readable": "SARS-CoV-2",
     "evenness_value": 0.8, "coverage_1x": 0.5, "uniquely_mapped_reads": 150,
     "mean_read_identity": 0.93, "mean_alignment_length": 240},
    {"taxon_id": "11320", "human_readable": "Influenza A",
     "evenness_value": 0.1, "coverage_1x": 0.01, "uniquely_mapped_reads": 3,
     "mean_read_identity": 0.5, "mean_alignment_length": 50}
  ]
}`

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getClasparBinary returns the path to the claspar binary, building it once if needed.
func getClasparBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		// Create a temp directory for the binary
		var err error
		tempDir, err = os.MkdirTemp("", "claspar-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		clasparPath := filepath.Join(tempDir, "claspar")
		buildCmd := exec.Command("go", "build", "-o", clasparPath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		err = buildCmd.Run()
		if err != nil {
			panic(fmt.Sprintf("failed to build claspar: %v", err))
		}

		sharedClasparPath = clasparPath
	})

	return sharedClasparPath
}

// writeRecordFile drops the shared sample record into dir and returns its path.
func writeRecordFile(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "record.json")
	if err := os.WriteFile(path, []byte(sampleRecordJSON), 0o644); err != nil {
		t.Fatalf("failed to write record file: %v", err)
	}
	return path
}

// runClaspar runs the shared claspar binary with args and returns its combined output.
func runClaspar(t *testing.T, args ...string) (string, error) {
	t.Helper()
	clasparPath := getClasparBinary()
	cmd := exec.Command(clasparPath, args...)
	cmd.Dir = "../" // Run from project root
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
	}
	return string(output), err
}
