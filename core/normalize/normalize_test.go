package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/climb-tre/claspar/schema"
)

func krakenRow(id, name, rank string) schema.RawRow {
	return schema.RawRow{
		"taxon_id":          id,
		"human_readable":    name,
		"raw_rank":          rank,
		"lineage":           "2|1239|1279|" + id,
		"count_direct":      50.0,
		"count_descendants": 120.0,
	}
}

func TestNormalizeKraken(t *testing.T) {
	rows := []schema.RawRow{
		krakenRow("1280", "Staphylococcus aureus", "S"),
		krakenRow("1279", "Staphylococcus", "G"),
		krakenRow("1239", "Bacillota", "P"),
	}

	records, errs := Normalize(schema.KrakenClassifier, rows)
	require.Empty(t, errs)
	require.Len(t, records, 3)

	assert.Equal(t, schema.SpeciesRank, records[0].Rank)
	assert.Equal(t, "1279", records[0].ParentID)
	assert.Equal(t, schema.KrakenClassifier, records[0].Classifier)
	assert.Equal(t, 120.0, records[0].Metrics[schema.FieldReadsClade])

	assert.Equal(t, schema.GenusRank, records[1].Rank)

	// Unknown rank codes are carried as other, not dropped.
	assert.Equal(t, schema.OtherRank, records[2].Rank)
}

func TestNormalizeKrakenSkipsMalformedRows(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(schema.RawRow)
		field  string
	}{
		{
			name:   "missing taxon id",
			mutate: func(r schema.RawRow) { delete(r, "taxon_id") },
			field:  "taxon_id",
		},
		{
			name:   "missing rank code",
			mutate: func(r schema.RawRow) { delete(r, "raw_rank") },
			field:  "raw_rank",
		},
		{
			name:   "missing metric",
			mutate: func(r schema.RawRow) { delete(r, "count_descendants") },
			field:  "count_descendants",
		},
		{
			name:   "non-numeric metric",
			mutate: func(r schema.RawRow) { r["count_direct"] = "lots" },
			field:  "count_direct",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad := krakenRow("1280", "Staphylococcus aureus", "S")
			tt.mutate(bad)
			rows := []schema.RawRow{
				bad,
				krakenRow("1282", "Staphylococcus epidermidis", "S"),
			}

			records, errs := Normalize(schema.KrakenClassifier, rows)

			// The bad row is skipped, the good one survives.
			require.Len(t, records, 1)
			assert.Equal(t, "1282", records[0].TaxonID)
			require.Len(t, errs, 1)
			assert.Equal(t, 0, errs[0].Row)
			assert.Equal(t, tt.field, errs[0].Field)
		})
	}
}

func sylphRow(id, name, rank, lineage string) schema.RawRow {
	return schema.RawRow{
		"taxon_id":           id,
		"human_readable":     name,
		"taxon_rank":         rank,
		"lineage":            lineage,
		"containment_index":  0.95,
		"effective_coverage": 2.5,
		"sequence_abundance": 40.0,
	}
}

func TestNormalizeSylph(t *testing.T) {
	rows := []schema.RawRow{
		sylphRow("1301", "Streptococcus", "genus", "2|1239|1300|1301"),
		sylphRow("1313", "Streptococcus pneumoniae", "species", "2|1239|1300|1301|1313"),
	}

	records, errs := Normalize(schema.SylphClassifier, rows)
	require.Empty(t, errs)
	require.Len(t, records, 2)

	assert.Equal(t, schema.GenusRank, records[0].Rank)
	assert.Equal(t, schema.SpeciesRank, records[1].Rank)
	assert.Equal(t, "1301", records[1].ParentID)
}

func TestNormalizeSylphStrainFolding(t *testing.T) {
	// The chain ends genus|species|strain, so a strain row is reassigned
	// to its species node with the genus as parent.
	rows := []schema.RawRow{
		sylphRow("1313.1", "S. pneumoniae TIGR4", "strain", "2|1239|1300|1301|1313|1313.1"),
	}

	records, errs := Normalize(schema.SylphClassifier, rows)
	require.Empty(t, errs)
	require.Len(t, records, 1)

	assert.Equal(t, schema.SpeciesRank, records[0].Rank)
	assert.Equal(t, "1313", records[0].TaxonID)
	assert.Equal(t, "1301", records[0].ParentID)
	// The genome label stays as the display name.
	assert.Equal(t, "S. pneumoniae TIGR4", records[0].Name)
}

func TestNormalizeSylphFractionContainment(t *testing.T) {
	row := sylphRow("1313", "Streptococcus pneumoniae", "species", "2|1239|1300|1301|1313")
	row["containment_index"] = "19/20"

	records, errs := Normalize(schema.SylphClassifier, []schema.RawRow{row})
	require.Empty(t, errs)
	require.Len(t, records, 1)
	assert.InDelta(t, 0.95, records[0].Metrics[schema.FieldContainmentIndex], 1e-9)
}

func TestNormalizeSylphUnknownRankWord(t *testing.T) {
	rows := []schema.RawRow{
		sylphRow("1239", "Bacillota", "phylum", "2|1239"),
	}
	records, errs := Normalize(schema.SylphClassifier, rows)
	require.Empty(t, errs)
	require.Len(t, records, 1)
	assert.Equal(t, schema.OtherRank, records[0].Rank)
}

func virusRow(id, name string) schema.RawRow {
	return schema.RawRow{
		"taxon_id":              id,
		"human_readable":        name,
		"evenness_value":        0.8,
		"coverage_1x":           0.5,
		"uniquely_mapped_reads": 150.0,
		"mean_read_identity":    0.93,
		"mean_alignment_length": 240.0,
	}
}

func TestNormalizeVirus(t *testing.T) {
	records, errs := Normalize(schema.ViralAlignerClassifier, []schema.RawRow{
		virusRow("2697049", "SARS-CoV-2"),
	})
	require.Empty(t, errs)
	require.Len(t, records, 1)

	assert.Equal(t, schema.SpeciesRank, records[0].Rank)
	assert.Empty(t, records[0].ParentID)
	assert.Len(t, records[0].Metrics, 5)
}

func TestNormalizeVirusMissingMetric(t *testing.T) {
	bad := virusRow("2697049", "SARS-CoV-2")
	delete(bad, "mean_read_identity")

	records, errs := Normalize(schema.ViralAlignerClassifier, []schema.RawRow{bad})
	assert.Empty(t, records)
	require.Len(t, errs, 1)
	assert.Equal(t, "mean_read_identity", errs[0].Field)
}

func TestNormalizeUnknownClassifier(t *testing.T) {
	records, errs := Normalize(schema.Classifier("centrifuge"), nil)
	assert.Nil(t, records)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Reason, "unrecognized")
}

func TestRawStringNumericIDs(t *testing.T) {
	// Registries hand taxon IDs through JSON as float64, which must not
	// grow a decimal point.
	row := schema.RawRow{"taxon_id": 1280.0}
	s, err := rawString(row, "taxon_id")
	require.NoError(t, err)
	assert.Equal(t, "1280", s)
}

func TestParseFraction(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    float64
		expectError bool
	}{
		{name: "simple fraction", input: "19/20", expected: 0.95},
		{name: "with spaces", input: " 3 / 4 ", expected: 0.75},
		{name: "zero denominator yields zero", input: "5/0", expected: 0},
		{name: "bad numerator", input: "x/2", expectError: true},
		{name: "bad denominator", input: "1/y", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := parseFraction(tt.input)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.InDelta(t, tt.expected, f, 1e-9)
			}
		})
	}
}

func TestLineageHelpers(t *testing.T) {
	row := schema.RawRow{"lineage": "2|1239| 1300 |1301"}
	ids := lineageIDs(row)
	assert.Equal(t, []string{"2", "1239", "1300", "1301"}, ids)
	assert.Equal(t, "1300", parentFromLineage(ids))

	assert.Empty(t, parentFromLineage([]string{"2"}))
	assert.Empty(t, parentFromLineage(nil))
	assert.Nil(t, lineageIDs(schema.RawRow{}))
}
