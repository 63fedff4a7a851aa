package contract

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/climb-tre/claspar/schema"
)

// SampleRecord is the raw classifier payload for one sample as delivered
// by the registry: one array of native rows per classifier. Any array may
// be empty when a classifier produced no calls.
type SampleRecord struct {
	SampleID         string          `json:"sample_id"`
	ClassifierCalls  []schema.RawRow `json:"classifier_calls"`
	SylphResults     []schema.RawRow `json:"sylph_results"`
	AlignmentResults []schema.RawRow `json:"alignment_results"`
}

// PayloadFor returns the raw rows for one classifier family.
func (r *SampleRecord) PayloadFor(c schema.Classifier) []schema.RawRow {
	switch c {
	case schema.KrakenClassifier:
		return r.ClassifierCalls
	case schema.SylphClassifier:
		return r.SylphResults
	case schema.ViralAlignerClassifier:
		return r.AlignmentResults
	default:
		return nil
	}
}

// LocalMetadataClient reads a sample record from a local JSON file, the
// offline equivalent of the registry samplesheet path.
type LocalMetadataClient struct {
	Path string
}

var _ MetadataClient = &LocalMetadataClient{} // Compile-time check

// NewLocalMetadataClient creates a client backed by a local record file.
func NewLocalMetadataClient(path string) *LocalMetadataClient {
	return &LocalMetadataClient{Path: path}
}

// GetSampleRecord implements MetadataClient by decoding the record file.
func (c *LocalMetadataClient) GetSampleRecord(_ context.Context, sampleID string) (*SampleRecord, error) {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sample record %s: %w", c.Path, err)
	}

	var record SampleRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to decode sample record %s: %w", c.Path, err)
	}

	// The file is trusted for offline runs, but a mismatched ID usually
	// means the wrong samplesheet was supplied.
	if record.SampleID != "" && record.SampleID != sampleID {
		return nil, fmt.Errorf("sample record %s holds sample %q, not %q", c.Path, record.SampleID, sampleID)
	}
	record.SampleID = sampleID

	return &record, nil
}
