// Package agg rolls species-level calls up into genus summaries with
// derived read-share, rank and confidence statistics.
package agg

import (
	"sort"

	"github.com/climb-tre/claspar/schema"
)

// genusGroup accumulates one genus's members during the grouping pass.
type genusGroup struct {
	genus       schema.TaxonRecord
	genusPassed bool
	unassigned  bool
	members     []schema.FilteredRecord
}

// AggregateGenera groups a classifier's filtered species-level records by
// their parent genus and derives per-genus statistics. Species whose
// parent cannot be resolved to an observed genus-rank record are grouped
// under a synthetic "unassigned" genus, still reported but flagged.
// Genus groups appear in the order their first species was encountered.
// The function is pure: re-running it on the same input yields identical
// output.
func AggregateGenera(filtered []schema.FilteredRecord, classifier schema.Classifier) []schema.GenusSummary {
	// Genus-rank records observed in this run, keyed by taxon ID. A
	// species parent resolves only against these.
	genera := make(map[string]schema.FilteredRecord)
	for _, fr := range filtered {
		if fr.Record.Rank == schema.GenusRank {
			genera[fr.Record.TaxonID] = fr
		}
	}

	groups := make(map[string]*genusGroup)
	var order []string

	for _, fr := range filtered {
		if fr.Record.Rank != schema.SpeciesRank {
			continue
		}

		key := fr.Record.ParentID
		parent, resolved := genera[key]
		if !resolved {
			key = schema.UnassignedGenusID
		}

		group, seen := groups[key]
		if !seen {
			group = &genusGroup{}
			if resolved {
				group.genus = parent.Record
				group.genusPassed = parent.Filter.Passed
			} else {
				// The synthetic genus has no metrics of its
				// own, so it passes trivially.
				group.genus = schema.TaxonRecord{
					TaxonID:    schema.UnassignedGenusID,
					Name:       "Unassigned",
					Rank:       schema.GenusRank,
					Classifier: classifier,
					Metrics:    map[string]float64{},
				}
				group.genusPassed = true
				group.unassigned = true
			}
			groups[key] = group
			order = append(order, key)
		}
		group.members = append(group.members, fr)
	}

	primary := schema.PrimaryMetricField(classifier)
	summaries := make([]schema.GenusSummary, 0, len(order))
	for _, key := range order {
		summaries = append(summaries, summarize(groups[key], primary))
	}
	return summaries
}

// summarize derives the statistics for one genus group. The genus total
// sums the primary metric over passing and failing members alike, since
// unfiltered reads still contribute to the denominator. Folded strain
// rows can share one species taxon ID, so the species counts are over
// distinct IDs rather than member rows.
func summarize(group *genusGroup, primary string) schema.GenusSummary {
	var total float64
	distinct := make(map[string]bool)
	passingIDs := make(map[string]bool)
	for _, fr := range group.members {
		total += fr.Record.Metrics[primary]
		distinct[fr.Record.TaxonID] = true
		if fr.Filter.Passed {
			passingIDs[fr.Record.TaxonID] = true
		}
	}

	members := make([]schema.FilteredRecord, len(group.members))
	copy(members, group.members)
	sort.SliceStable(members, func(i, j int) bool {
		mi := members[i].Record.Metrics[primary]
		mj := members[j].Record.Metrics[primary]
		if mi != mj {
			return mi > mj
		}
		return members[i].Record.TaxonID < members[j].Record.TaxonID
	})

	species := make([]schema.SpeciesCall, len(members))
	for i, fr := range members {
		share := 0.0
		if total > 0 {
			share = fr.Record.Metrics[primary] / total
		}
		confidence := schema.LowConfidence
		if fr.Filter.Passed && group.genusPassed {
			confidence = schema.HighConfidence
		}
		species[i] = schema.SpeciesCall{
			Record:      fr.Record,
			Filter:      fr.Filter,
			GenusShare:  share,
			RankInGenus: i + 1,
			Confidence:  confidence,
		}
	}

	return schema.GenusSummary{
		Genus:          group.genus,
		Unassigned:     group.unassigned,
		GenusPassed:    group.genusPassed,
		SpeciesTotal:   len(distinct),
		SpeciesPassing: len(passingIDs),
		PrimaryTotal:   total,
		Species:        species,
	}
}
