package agg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/climb-tre/claspar/schema"
)

func filteredRecord(id, name string, rank schema.Rank, parent string, clade float64, passed bool) schema.FilteredRecord {
	return schema.FilteredRecord{
		Record: schema.TaxonRecord{
			TaxonID:    id,
			Name:       name,
			Rank:       rank,
			ParentID:   parent,
			Classifier: schema.KrakenClassifier,
			Metrics: map[string]float64{
				schema.FieldReadsDirect: clade / 2,
				schema.FieldReadsClade:  clade,
			},
		},
		Filter: schema.FilterResult{Passed: passed},
	}
}

func TestAggregateGenera(t *testing.T) {
	filtered := []schema.FilteredRecord{
		filteredRecord("1279", "Staphylococcus", schema.GenusRank, "90964", 300, true),
		filteredRecord("1280", "Staphylococcus aureus", schema.SpeciesRank, "1279", 200, true),
		filteredRecord("1282", "Staphylococcus epidermidis", schema.SpeciesRank, "1279", 100, true),
	}

	summaries := AggregateGenera(filtered, schema.KrakenClassifier)
	require.Len(t, summaries, 1)

	s := summaries[0]
	assert.Equal(t, "1279", s.Genus.TaxonID)
	assert.False(t, s.Unassigned)
	assert.True(t, s.GenusPassed)
	assert.Equal(t, 2, s.SpeciesTotal)
	assert.Equal(t, 2, s.SpeciesPassing)
	assert.Equal(t, 300.0, s.PrimaryTotal)

	require.Len(t, s.Species, 2)
	assert.Equal(t, "1280", s.Species[0].Record.TaxonID)
	assert.InDelta(t, 200.0/300.0, s.Species[0].GenusShare, 1e-9)
	assert.Equal(t, 1, s.Species[0].RankInGenus)
	assert.Equal(t, schema.HighConfidence, s.Species[0].Confidence)
	assert.Equal(t, "1282", s.Species[1].Record.TaxonID)
	assert.Equal(t, 2, s.Species[1].RankInGenus)
}

func TestAggregateGeneraSharesSumToOne(t *testing.T) {
	filtered := []schema.FilteredRecord{
		filteredRecord("1279", "Staphylococcus", schema.GenusRank, "", 0, true),
		filteredRecord("a", "species a", schema.SpeciesRank, "1279", 17, true),
		filteredRecord("b", "species b", schema.SpeciesRank, "1279", 5, false),
		filteredRecord("c", "species c", schema.SpeciesRank, "1279", 41, true),
	}

	summaries := AggregateGenera(filtered, schema.KrakenClassifier)
	require.Len(t, summaries, 1)

	var sum float64
	for _, call := range summaries[0].Species {
		sum += call.GenusShare
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestAggregateGeneraTieBreakByTaxonID(t *testing.T) {
	filtered := []schema.FilteredRecord{
		filteredRecord("1279", "Staphylococcus", schema.GenusRank, "", 0, true),
		filteredRecord("b", "species b", schema.SpeciesRank, "1279", 50, true),
		filteredRecord("a", "species a", schema.SpeciesRank, "1279", 50, true),
	}

	summaries := AggregateGenera(filtered, schema.KrakenClassifier)
	require.Len(t, summaries, 1)
	require.Len(t, summaries[0].Species, 2)
	assert.Equal(t, "a", summaries[0].Species[0].Record.TaxonID)
	assert.Equal(t, "b", summaries[0].Species[1].Record.TaxonID)
}

func TestAggregateGeneraRanksContiguous(t *testing.T) {
	filtered := []schema.FilteredRecord{
		filteredRecord("1279", "Staphylococcus", schema.GenusRank, "", 0, true),
	}
	for _, id := range []string{"e", "a", "c", "b", "d"} {
		filtered = append(filtered, filteredRecord(id, "species "+id, schema.SpeciesRank, "1279", 25, true))
	}

	summaries := AggregateGenera(filtered, schema.KrakenClassifier)
	require.Len(t, summaries, 1)
	for i, call := range summaries[0].Species {
		assert.Equal(t, i+1, call.RankInGenus)
	}
}

func TestAggregateGeneraUnassignedParent(t *testing.T) {
	// No genus-rank record matches the parent, so the species lands in
	// the synthetic unassigned genus which passes trivially.
	filtered := []schema.FilteredRecord{
		filteredRecord("1280", "Staphylococcus aureus", schema.SpeciesRank, "1279", 200, true),
		filteredRecord("1313", "Streptococcus pneumoniae", schema.SpeciesRank, "", 100, false),
	}

	summaries := AggregateGenera(filtered, schema.KrakenClassifier)
	require.Len(t, summaries, 1)

	s := summaries[0]
	assert.Equal(t, schema.UnassignedGenusID, s.Genus.TaxonID)
	assert.Equal(t, "Unassigned", s.Genus.Name)
	assert.True(t, s.Unassigned)
	assert.True(t, s.GenusPassed)
	assert.Equal(t, 2, s.SpeciesTotal)
	assert.Equal(t, 1, s.SpeciesPassing)

	// Passing species under the unassigned genus still reach high confidence.
	assert.Equal(t, schema.HighConfidence, s.Species[0].Confidence)
	assert.Equal(t, schema.LowConfidence, s.Species[1].Confidence)
}

func TestAggregateGeneraFoldedStrainsCountOnce(t *testing.T) {
	// Two strain rows folded onto the same species taxon ID stay as
	// separate member rows but count as one species.
	filtered := []schema.FilteredRecord{
		filteredRecord("1301", "Streptococcus", schema.GenusRank, "", 0, true),
		filteredRecord("1313", "Streptococcus pneumoniae TIGR4", schema.SpeciesRank, "1301", 80, true),
		filteredRecord("1313", "Streptococcus pneumoniae R6", schema.SpeciesRank, "1301", 20, false),
		filteredRecord("1314", "Streptococcus pyogenes", schema.SpeciesRank, "1301", 50, true),
	}

	summaries := AggregateGenera(filtered, schema.KrakenClassifier)
	require.Len(t, summaries, 1)

	s := summaries[0]
	assert.Equal(t, 2, s.SpeciesTotal)
	assert.Equal(t, 2, s.SpeciesPassing)
	// All member rows still contribute to the genus total and appear
	// in the species table.
	assert.Equal(t, 150.0, s.PrimaryTotal)
	assert.Len(t, s.Species, 3)
}

func TestAggregateGeneraFailingGenusCapsConfidence(t *testing.T) {
	filtered := []schema.FilteredRecord{
		filteredRecord("1279", "Staphylococcus", schema.GenusRank, "", 5, false),
		filteredRecord("1280", "Staphylococcus aureus", schema.SpeciesRank, "1279", 200, true),
	}

	summaries := AggregateGenera(filtered, schema.KrakenClassifier)
	require.Len(t, summaries, 1)
	assert.False(t, summaries[0].GenusPassed)
	// The species itself passed but its genus did not.
	assert.True(t, summaries[0].Species[0].Filter.Passed)
	assert.Equal(t, schema.LowConfidence, summaries[0].Species[0].Confidence)
}

func TestAggregateGeneraZeroTotalShares(t *testing.T) {
	filtered := []schema.FilteredRecord{
		filteredRecord("1279", "Staphylococcus", schema.GenusRank, "", 0, true),
		filteredRecord("1280", "Staphylococcus aureus", schema.SpeciesRank, "1279", 0, false),
	}

	summaries := AggregateGenera(filtered, schema.KrakenClassifier)
	require.Len(t, summaries, 1)
	assert.Equal(t, 0.0, summaries[0].PrimaryTotal)
	assert.Equal(t, 0.0, summaries[0].Species[0].GenusShare)
}

func TestAggregateGeneraInsertionOrder(t *testing.T) {
	filtered := []schema.FilteredRecord{
		filteredRecord("g2", "genus two", schema.GenusRank, "", 0, true),
		filteredRecord("g1", "genus one", schema.GenusRank, "", 0, true),
		// First species seen belongs to g2, so g2's group comes first
		// even though g1 was normalized earlier.
		filteredRecord("s2", "species two", schema.SpeciesRank, "g2", 10, true),
		filteredRecord("s1", "species one", schema.SpeciesRank, "g1", 99, true),
	}

	summaries := AggregateGenera(filtered, schema.KrakenClassifier)
	require.Len(t, summaries, 2)
	assert.Equal(t, "g2", summaries[0].Genus.TaxonID)
	assert.Equal(t, "g1", summaries[1].Genus.TaxonID)
}

func TestAggregateGeneraIgnoresOtherRanks(t *testing.T) {
	filtered := []schema.FilteredRecord{
		filteredRecord("1239", "Bacillota", schema.OtherRank, "", 9999, true),
	}

	summaries := AggregateGenera(filtered, schema.KrakenClassifier)
	assert.Empty(t, summaries)
}

func TestAggregateGeneraDeterministic(t *testing.T) {
	filtered := []schema.FilteredRecord{
		filteredRecord("1279", "Staphylococcus", schema.GenusRank, "", 300, true),
		filteredRecord("1280", "Staphylococcus aureus", schema.SpeciesRank, "1279", 200, true),
		filteredRecord("1282", "Staphylococcus epidermidis", schema.SpeciesRank, "1279", 100, false),
		filteredRecord("1313", "Streptococcus pneumoniae", schema.SpeciesRank, "missing", 50, true),
	}

	first := AggregateGenera(filtered, schema.KrakenClassifier)
	second := AggregateGenera(filtered, schema.KrakenClassifier)
	assert.Equal(t, first, second)
}
