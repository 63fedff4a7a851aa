package schema

import "strings"

// SpeciesTableRow is one flattened row of the bacteria per-species table.
type SpeciesTableRow struct {
	Classifier     string             `json:"classifier"`
	TaxonID        string             `json:"taxon_id"`
	Name           string             `json:"name"`
	GenusTaxonID   string             `json:"genus_taxon_id"`
	GenusName      string             `json:"genus_name"`
	PrimaryMetric  float64            `json:"primary_metric"`
	GenusTotal     float64            `json:"genus_total_metric"`
	GenusShare     float64            `json:"genus_share"`
	RankInGenus    int                `json:"rank_in_genus"`
	SpeciesInGenus int                `json:"species_in_genus"`
	Passed         bool               `json:"passed"`
	FailedFields   []string           `json:"failed_fields,omitempty"`
	Confidence     string             `json:"confidence"`
	Metrics        map[string]float64 `json:"metrics"`
}

// GenusTableRow is one flattened row of the bacteria per-genus table.
type GenusTableRow struct {
	Classifier     string  `json:"classifier"`
	TaxonID        string  `json:"taxon_id"`
	Name           string  `json:"name"`
	Unassigned     bool    `json:"unassigned"`
	SpeciesTotal   int     `json:"species_total"`
	SpeciesPassing int     `json:"species_passing"`
	PrimaryTotal   float64 `json:"primary_total_metric"`
	Passed         bool    `json:"passed"`
	TopSpecies     string  `json:"top_species"`
}

// VirusTableRow is one row of the filtered viral aligner table. Only
// passing rows are emitted, so the threshold metadata is dropped and a
// bare pass indicator is retained.
type VirusTableRow struct {
	TaxonID      string  `json:"taxon_id"`
	Name         string  `json:"name"`
	Evenness     float64 `json:"evenness_value"`
	Coverage1x   float64 `json:"coverage_1x"`
	UniqueReads  float64 `json:"uniquely_mapped_reads"`
	ReadIdentity float64 `json:"mean_read_identity"`
	AlignmentLen float64 `json:"mean_alignment_length"`
	Passed       bool    `json:"passed"`
}

// AnalysisResultRow is the fixed field projection required by the
// downstream reporting schema, independent of table shape.
type AnalysisResultRow struct {
	Name    string `json:"name"`
	TaxonID string `json:"taxon_id"`
	Rank    string `json:"rank"`
}

// AnalysisFields is the per-classifier key-value structure handed to the
// external JSON writer.
type AnalysisFields struct {
	AnalysisName        string              `json:"analysis_name"`
	AnalysisDescription string              `json:"analysis_description"`
	SampleID            string              `json:"sample_id"`
	Classifier          string              `json:"classifier"`
	Thresholds          map[string]Bounds   `json:"thresholds"`
	HeadlineResult      string              `json:"headline_result"`
	Results             []AnalysisResultRow `json:"results"`
}

// FormatFailedFields renders a failed-field list as a single CSV cell.
func FormatFailedFields(fields []string) string {
	return strings.Join(fields, ";")
}
