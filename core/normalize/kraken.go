package normalize

import (
	"github.com/climb-tre/claspar/internal/contract"
	"github.com/climb-tre/claspar/schema"
)

// krakenRanks maps the k-mer classifier's single-letter rank codes onto
// the common rank model. Codes outside this table (domain, family,
// subspecies variants like "S1") are carried as OtherRank and ignored by
// the genus rollup.
var krakenRanks = map[string]schema.Rank{
	"S": schema.SpeciesRank,
	"G": schema.GenusRank,
}

// normalizeKraken adapts k-mer classifier report rows. Each row carries a
// rank code, direct and clade-descendant read counts, and a root-first
// lineage chain used to resolve the immediate parent.
func normalizeKraken(rows []schema.RawRow) ([]schema.TaxonRecord, contract.ParseErrors) {
	records := make([]schema.TaxonRecord, 0, len(rows))
	var errs contract.ParseErrors

	for i, row := range rows {
		id, name, perr := identity(schema.KrakenClassifier, row, i)
		if perr != nil {
			errs = append(errs, perr)
			continue
		}

		code, err := rawString(row, "raw_rank")
		if err != nil {
			errs = append(errs, &contract.ParseError{
				Classifier: schema.KrakenClassifier, Row: i, Field: "raw_rank", Reason: err.Error(),
			})
			continue
		}
		rank, ok := krakenRanks[code]
		if !ok {
			rank = schema.OtherRank
		}

		metrics, perr := metricFields(schema.KrakenClassifier, row, i)
		if perr != nil {
			errs = append(errs, perr)
			continue
		}

		records = append(records, schema.TaxonRecord{
			TaxonID:    id,
			Name:       name,
			Rank:       rank,
			ParentID:   parentFromLineage(lineageIDs(row)),
			Classifier: schema.KrakenClassifier,
			Metrics:    metrics,
		})
	}

	return records, errs
}
