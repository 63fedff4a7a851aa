// Package schema has configs, models and shared constants for all parts of claspar.
package schema

// RawRow is one row of a classifier's native tabular output, keyed by the
// classifier's own column names. Values are untyped because the upstream
// registry payload mixes numbers, strings and fraction-shaped strings
// (e.g. a containment index of "19/20").
type RawRow map[string]any

// TaxonRecord is one classifier call after normalization into the common
// record model. Instances are owned by the run-scoped record sequence and
// never mutated after normalization.
type TaxonRecord struct {
	TaxonID    string             // Opaque identifier, unique within a classifier run
	Name       string             // Taxon display name
	Rank       Rank               // species, genus or other
	ParentID   string             // Immediate parent taxon, empty if root/unknown
	Classifier Classifier         // Which adapter produced this record
	Metrics    map[string]float64 // Classifier-specific numeric fields, keys fixed per classifier
}

// Bounds holds an optional numeric range for one threshold entry.
// A nil side means unbounded on that side.
type Bounds struct {
	Min *float64 `mapstructure:"min" json:"min,omitempty"`
	Max *float64 `mapstructure:"max" json:"max,omitempty"`
}

// FilterResult is the pass/fail outcome of threshold filtering for one record.
type FilterResult struct {
	Passed       bool     // True iff every configured threshold was satisfied
	FailedFields []string // Field names that violated a bound, sorted; empty iff Passed
}

// FilteredRecord pairs a normalized record with its filter outcome.
type FilteredRecord struct {
	Record TaxonRecord
	Filter FilterResult
}

// SpeciesCall is one species row within a GenusSummary, with the derived
// per-genus statistics attached.
type SpeciesCall struct {
	Record      TaxonRecord
	Filter      FilterResult
	GenusShare  float64    // Fraction of the genus primary-metric total, 0 when the total is 0
	RankInGenus int        // 1-based position by primary metric descending, taxon id ascending on ties
	Confidence  Confidence // high iff the species passed and the genus passed its own thresholds
}

// GenusSummary is the rollup of one genus's species-level calls for one
// classifier run. Summaries are built once per run and never mutated.
type GenusSummary struct {
	Genus          TaxonRecord   // The genus record itself (synthetic for unassigned parents)
	Unassigned     bool          // True when the parent could not be resolved to an observed genus
	GenusPassed    bool          // Whether the genus record passed its own thresholds
	SpeciesTotal   int           // Distinct species observed under this genus, pass and fail alike
	SpeciesPassing int           // Subset of species with Passed = true
	PrimaryTotal   float64       // Sum of the primary metric across all member species
	Species        []SpeciesCall // Ordered by primary metric desc, taxon id asc
}
