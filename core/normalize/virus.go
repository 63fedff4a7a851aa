package normalize

import (
	"github.com/climb-tre/claspar/internal/contract"
	"github.com/climb-tre/claspar/schema"
)

// normalizeVirus adapts viral aligner rows. The aligner reports one row
// per reference taxon with alignment quality metrics; every row is a
// species-level call and the genus rollup does not apply to this path.
func normalizeVirus(rows []schema.RawRow) ([]schema.TaxonRecord, contract.ParseErrors) {
	records := make([]schema.TaxonRecord, 0, len(rows))
	var errs contract.ParseErrors

	for i, row := range rows {
		id, name, perr := identity(schema.ViralAlignerClassifier, row, i)
		if perr != nil {
			errs = append(errs, perr)
			continue
		}

		metrics, perr := metricFields(schema.ViralAlignerClassifier, row, i)
		if perr != nil {
			errs = append(errs, perr)
			continue
		}

		records = append(records, schema.TaxonRecord{
			TaxonID:    id,
			Name:       name,
			Rank:       schema.SpeciesRank,
			Classifier: schema.ViralAlignerClassifier,
			Metrics:    metrics,
		})
	}

	return records, errs
}
