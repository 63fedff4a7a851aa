package normalize

import (
	"github.com/climb-tre/claspar/internal/contract"
	"github.com/climb-tre/claspar/schema"
)

// normalizeSylph adapts sketch classifier rows. Reference genomes may sit
// at strain level, so strain rows are folded onto their parent species
// node via the lineage chain before any aggregation happens. The genome
// label is kept as the display name since it is the most specific one
// available.
func normalizeSylph(rows []schema.RawRow) ([]schema.TaxonRecord, contract.ParseErrors) {
	records := make([]schema.TaxonRecord, 0, len(rows))
	var errs contract.ParseErrors

	for i, row := range rows {
		id, name, perr := identity(schema.SylphClassifier, row, i)
		if perr != nil {
			errs = append(errs, perr)
			continue
		}

		word, err := rawString(row, "taxon_rank")
		if err != nil {
			errs = append(errs, &contract.ParseError{
				Classifier: schema.SylphClassifier, Row: i, Field: "taxon_rank", Reason: err.Error(),
			})
			continue
		}

		ids := lineageIDs(row)
		var rank schema.Rank
		parent := parentFromLineage(ids)

		switch word {
		case "species":
			rank = schema.SpeciesRank
		case "strain":
			// Fold onto the species node: the chain ends
			// ...|genus|species|strain.
			rank = schema.SpeciesRank
			if len(ids) >= 2 {
				id = ids[len(ids)-2]
			}
			if len(ids) >= 3 {
				parent = ids[len(ids)-3]
			} else {
				parent = ""
			}
		case "genus":
			rank = schema.GenusRank
		default:
			rank = schema.OtherRank
		}

		metrics, perr := metricFields(schema.SylphClassifier, row, i)
		if perr != nil {
			errs = append(errs, perr)
			continue
		}

		records = append(records, schema.TaxonRecord{
			TaxonID:    id,
			Name:       name,
			Rank:       rank,
			ParentID:   parent,
			Classifier: schema.SylphClassifier,
			Metrics:    metrics,
		})
	}

	return records, errs
}
