// Package parquet provides data structures and functions for exporting
// claspar analysis tables and archived runs to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/climb-tre/claspar/internal/contract"
	"github.com/climb-tre/claspar/schema"
)

// SpeciesCall is one bacteria per-species table row in Parquet shape.
type SpeciesCall struct {
	Classifier     string  `parquet:"classifier,snappy"`
	TaxonID        string  `parquet:"taxon_id,snappy"`
	Name           string  `parquet:"name,snappy"`
	GenusTaxonID   string  `parquet:"genus_taxon_id,snappy"`
	GenusName      string  `parquet:"genus_name,snappy"`
	PrimaryMetric  float64 `parquet:"primary_metric,snappy"`
	GenusTotal     float64 `parquet:"genus_total_metric,snappy"`
	GenusShare     float64 `parquet:"genus_share,snappy"`
	RankInGenus    int32   `parquet:"rank_in_genus,snappy"`
	SpeciesInGenus int32   `parquet:"species_in_genus,snappy"`
	Passed         bool    `parquet:"passed,snappy"`
	FailedFields   string  `parquet:"failed_fields,snappy"`
	Confidence     string  `parquet:"confidence,snappy"`
}

// GenusRollup is one bacteria per-genus table row in Parquet shape.
type GenusRollup struct {
	Classifier     string  `parquet:"classifier,snappy"`
	TaxonID        string  `parquet:"taxon_id,snappy"`
	Name           string  `parquet:"name,snappy"`
	Unassigned     bool    `parquet:"unassigned,snappy"`
	SpeciesTotal   int32   `parquet:"species_total,snappy"`
	SpeciesPassing int32   `parquet:"species_passing,snappy"`
	PrimaryTotal   float64 `parquet:"primary_total_metric,snappy"`
	Passed         bool    `parquet:"passed,snappy"`
	TopSpecies     string  `parquet:"top_species,snappy"`
}

// VirusCall is one filtered viral aligner row in Parquet shape.
type VirusCall struct {
	TaxonID      string  `parquet:"taxon_id,snappy"`
	Name         string  `parquet:"name,snappy"`
	Evenness     float64 `parquet:"evenness_value,snappy"`
	Coverage1x   float64 `parquet:"coverage_1x,snappy"`
	UniqueReads  float64 `parquet:"uniquely_mapped_reads,snappy"`
	ReadIdentity float64 `parquet:"mean_read_identity,snappy"`
	AlignmentLen float64 `parquet:"mean_alignment_length,snappy"`
	Passed       bool    `parquet:"passed,snappy"`
}

// ArchiveRun represents a single archived parse run with metadata.
// This struct maps to the claspar_runs database table.
type ArchiveRun struct {
	RunID         int64      `parquet:"run_id,snappy"`
	SampleID      string     `parquet:"sample_id,snappy"`
	StartTime     time.Time  `parquet:"start_time,snappy"`
	EndTime       *time.Time `parquet:"end_time,optional,snappy"`
	RunDurationMs *int32     `parquet:"run_duration_ms,optional,snappy"`
	TotalCalls    int32      `parquet:"total_calls,snappy"`
	ConfigParams  *string    `parquet:"config_params,optional,snappy"`
}

// ArchiveCall represents one archived table row emitted during a run.
// This struct maps to the claspar_calls database table.
type ArchiveCall struct {
	RunID         int64   `parquet:"run_id,snappy"`
	Classifier    string  `parquet:"classifier,snappy"`
	TaxonID       string  `parquet:"taxon_id,snappy"`
	Name          string  `parquet:"name,snappy"`
	GenusTaxonID  string  `parquet:"genus_taxon_id,snappy"`
	GenusShare    float64 `parquet:"genus_share,snappy"`
	RankInGenus   int32   `parquet:"rank_in_genus,snappy"`
	PrimaryMetric float64 `parquet:"primary_metric,snappy"`
	Passed        bool    `parquet:"passed,snappy"`
	Confidence    string  `parquet:"confidence,snappy"`
}

// FromSpeciesRows converts table rows to their Parquet shape.
func FromSpeciesRows(rows []schema.SpeciesTableRow) []SpeciesCall {
	out := make([]SpeciesCall, len(rows))
	for i, r := range rows {
		out[i] = SpeciesCall{
			Classifier:     r.Classifier,
			TaxonID:        r.TaxonID,
			Name:           r.Name,
			GenusTaxonID:   r.GenusTaxonID,
			GenusName:      r.GenusName,
			PrimaryMetric:  r.PrimaryMetric,
			GenusTotal:     r.GenusTotal,
			GenusShare:     r.GenusShare,
			RankInGenus:    int32(r.RankInGenus),
			SpeciesInGenus: int32(r.SpeciesInGenus),
			Passed:         r.Passed,
			FailedFields:   schema.FormatFailedFields(r.FailedFields),
			Confidence:     r.Confidence,
		}
	}
	return out
}

// FromGenusRows converts table rows to their Parquet shape.
func FromGenusRows(rows []schema.GenusTableRow) []GenusRollup {
	out := make([]GenusRollup, len(rows))
	for i, r := range rows {
		out[i] = GenusRollup{
			Classifier:     r.Classifier,
			TaxonID:        r.TaxonID,
			Name:           r.Name,
			Unassigned:     r.Unassigned,
			SpeciesTotal:   int32(r.SpeciesTotal),
			SpeciesPassing: int32(r.SpeciesPassing),
			PrimaryTotal:   r.PrimaryTotal,
			Passed:         r.Passed,
			TopSpecies:     r.TopSpecies,
		}
	}
	return out
}

// FromVirusRows converts table rows to their Parquet shape.
func FromVirusRows(rows []schema.VirusTableRow) []VirusCall {
	out := make([]VirusCall, len(rows))
	for i, r := range rows {
		out[i] = VirusCall{
			TaxonID:      r.TaxonID,
			Name:         r.Name,
			Evenness:     r.Evenness,
			Coverage1x:   r.Coverage1x,
			UniqueReads:  r.UniqueReads,
			ReadIdentity: r.ReadIdentity,
			AlignmentLen: r.AlignmentLen,
			Passed:       r.Passed,
		}
	}
	return out
}

// FromArchivedRuns converts archived runs to their Parquet shape.
func FromArchivedRuns(runs []contract.ArchivedRun) []ArchiveRun {
	out := make([]ArchiveRun, len(runs))
	for i, r := range runs {
		var params *string
		if r.ConfigParams != "" {
			p := r.ConfigParams
			params = &p
		}
		out[i] = ArchiveRun{
			RunID:         r.RunID,
			SampleID:      r.SampleID,
			StartTime:     r.StartTime,
			EndTime:       r.EndTime,
			RunDurationMs: r.DurationMs,
			TotalCalls:    int32(r.TotalCalls),
			ConfigParams:  params,
		}
	}
	return out
}

// FromArchivedCalls converts archived calls to their Parquet shape.
func FromArchivedCalls(calls []contract.ArchivedCall) []ArchiveCall {
	out := make([]ArchiveCall, len(calls))
	for i, c := range calls {
		out[i] = ArchiveCall{
			RunID:         c.RunID,
			Classifier:    string(c.Classifier),
			TaxonID:       c.TaxonID,
			Name:          c.Name,
			GenusTaxonID:  c.GenusTaxonID,
			GenusShare:    c.GenusShare,
			RankInGenus:   int32(c.RankInGenus),
			PrimaryMetric: c.PrimaryMetric,
			Passed:        c.Passed,
			Confidence:    c.Confidence,
		}
	}
	return out
}

// writeParquet writes any record slice to a Parquet file using struct
// schema inference from the record type's tags.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteSpeciesCallsParquet writes the bacteria per-species table to a Parquet file.
func WriteSpeciesCallsParquet(data []SpeciesCall, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteGenusRollupsParquet writes the bacteria per-genus table to a Parquet file.
func WriteGenusRollupsParquet(data []GenusRollup, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteVirusCallsParquet writes the filtered viral aligner table to a Parquet file.
func WriteVirusCallsParquet(data []VirusCall, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteArchiveRunsParquet writes archived runs to a Parquet file.
func WriteArchiveRunsParquet(data []ArchiveRun, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteArchiveCallsParquet writes archived calls to a Parquet file.
func WriteArchiveCallsParquet(data []ArchiveCall, outputPath string) error {
	return writeParquet(data, outputPath)
}
