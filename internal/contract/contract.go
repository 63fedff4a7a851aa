// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/climb-tre/claspar/schema"
)

// MetadataClient retrieves the raw classifier payload for one sample from
// the sample registry. Transport and auth live behind this boundary so the
// core pipeline can be tested without any registry access.
type MetadataClient interface {
	// GetSampleRecord returns the raw classifier outputs for a sample.
	// Any of the three payload slices may be empty.
	GetSampleRecord(ctx context.Context, sampleID string) (*SampleRecord, error)
}

// ArchiveStore defines the interface for recording parse runs and their
// emitted calls. This allows the archive layer to be mocked for testing.
type ArchiveStore interface {
	// BeginRun creates a new run row and returns its unique ID.
	BeginRun(sampleID string, startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the run row with completion data.
	EndRun(runID int64, endTime time.Time, totalCalls int) error

	// RecordCall stores one emitted table row for a run.
	RecordCall(runID int64, call ArchivedCall) error

	// GetAllRuns returns every archived run, oldest first.
	GetAllRuns() ([]ArchivedRun, error)

	// GetAllCalls returns every archived call, oldest run first.
	GetAllCalls() ([]ArchivedCall, error)

	// GetStatus returns status information about the archive store.
	GetStatus() (ArchiveStatus, error)

	// Clear removes all archived data.
	Clear() error

	// Close releases the underlying database handle.
	Close() error
}

// ArchivedRun is one recorded parse run.
type ArchivedRun struct {
	RunID        int64
	SampleID     string
	StartTime    time.Time
	EndTime      *time.Time
	DurationMs   *int32
	TotalCalls   int
	ConfigParams string // JSON-encoded parameters
}

// ArchivedCall is one emitted table row recorded against a run.
type ArchivedCall struct {
	RunID         int64
	Classifier    schema.Classifier
	TaxonID       string
	Name          string
	GenusTaxonID  string
	GenusShare    float64
	RankInGenus   int
	PrimaryMetric float64
	Passed        bool
	Confidence    string
}

// ArchiveStatus holds status information about the archive store.
type ArchiveStatus struct {
	Backend     schema.DatabaseBackend
	Connected   bool
	TotalRuns   int64
	TotalCalls  int64
	LastRunID   int64
	LastRunTime time.Time
}
