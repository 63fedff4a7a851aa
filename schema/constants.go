package schema

// Custom string types for type safety.
type (
	// Classifier identifies one of the supported classifier families.
	Classifier string

	// Rank represents the taxonomic level of a record.
	Rank string

	// Confidence represents the derived high/low reporting label.
	Confidence string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for run archiving.
	DatabaseBackend string
)

// The closed set of classifier families. New formats require adapter code,
// so this set is fixed rather than open-ended.
const (
	KrakenClassifier       Classifier = "kraken"
	SylphClassifier        Classifier = "sylph"
	ViralAlignerClassifier Classifier = "viral-aligner"
)

// All taxonomic ranks the pipeline distinguishes.
const (
	SpeciesRank Rank = "species"
	GenusRank   Rank = "genus"
	OtherRank   Rank = "other"
)

// All confidence labels supported.
const (
	HighConfidence Confidence = "high"
	LowConfidence  Confidence = "low"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv" // default
	TextOut    OutputMode = "text"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All archive backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none" // default
)

// UnassignedGenusID is the synthetic genus key for species whose parent
// cannot be resolved to an observed genus-rank record.
const UnassignedGenusID = "unassigned"

// AllClassifiers returns the classifiers in their fixed pipeline order.
var AllClassifiers = []Classifier{KrakenClassifier, SylphClassifier, ViralAlignerClassifier}

// BacteriaClassifiers lists the classifiers that go through genus aggregation.
// The viral aligner path skips that stage entirely.
var BacteriaClassifiers = []Classifier{KrakenClassifier, SylphClassifier}

// ValidClassifiers lists the recognized classifier enumerants.
var ValidClassifiers = map[Classifier]struct{}{
	KrakenClassifier:       {},
	SylphClassifier:        {},
	ViralAlignerClassifier: {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidArchiveBackends lists all valid archive backends.
var ValidArchiveBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// Metric field names shared by the normalizers, the filter and the writers.
// Each classifier's adapter maps native column names onto this fixed set.
const (
	FieldReadsDirect        = "count_direct"
	FieldReadsClade         = "count_descendants"
	FieldContainmentIndex   = "containment_index"
	FieldEffectiveCoverage  = "effective_coverage"
	FieldSequenceAbundance  = "sequence_abundance"
	FieldEvenness           = "evenness_value"
	FieldCoverage1x         = "coverage_1x"
	FieldUniqueReads        = "uniquely_mapped_reads"
	FieldMeanReadIdentity   = "mean_read_identity"
	FieldMeanAlignmentLen   = "mean_alignment_length"
)

// requiredFields maps each classifier to the numeric fields its adapter
// must be able to parse. A row missing any of these is a parse error,
// not a silent default.
var requiredFields = map[Classifier][]string{
	KrakenClassifier: {FieldReadsDirect, FieldReadsClade},
	SylphClassifier:  {FieldContainmentIndex, FieldEffectiveCoverage, FieldSequenceAbundance},
	ViralAlignerClassifier: {
		FieldEvenness,
		FieldCoverage1x,
		FieldUniqueReads,
		FieldMeanReadIdentity,
		FieldMeanAlignmentLen,
	},
}

// primaryMetric maps each classifier to its read-count-like field used for
// genus totals, shares and within-genus ranking.
var primaryMetric = map[Classifier]string{
	KrakenClassifier:       FieldReadsClade,
	SylphClassifier:        FieldEffectiveCoverage,
	ViralAlignerClassifier: FieldUniqueReads,
}

// RequiredFields returns the fixed set of metric fields a classifier's
// normalizer must produce for every record.
func RequiredFields(c Classifier) []string {
	return requiredFields[c]
}

// PrimaryMetricField returns the primary read-count-like metric field for
// a classifier.
func PrimaryMetricField(c Classifier) string {
	return primaryMetric[c]
}
