package core

import (
	"fmt"

	"github.com/climb-tre/claspar/internal/contract"
	"github.com/climb-tre/claspar/schema"
)

// BuildBacteriaTables flattens genus summaries into the per-species and
// per-genus output tables. Genus groups keep the order they were first
// encountered during aggregation, and each genus keeps its internal
// species ordering.
func BuildBacteriaTables(summaries []schema.GenusSummary) ([]schema.SpeciesTableRow, []schema.GenusTableRow) {
	var speciesRows []schema.SpeciesTableRow
	genusRows := make([]schema.GenusTableRow, 0, len(summaries))

	for _, summary := range summaries {
		primary := schema.PrimaryMetricField(summary.Genus.Classifier)
		for _, call := range summary.Species {
			speciesRows = append(speciesRows, schema.SpeciesTableRow{
				Classifier:     string(call.Record.Classifier),
				TaxonID:        call.Record.TaxonID,
				Name:           call.Record.Name,
				GenusTaxonID:   summary.Genus.TaxonID,
				GenusName:      summary.Genus.Name,
				PrimaryMetric:  call.Record.Metrics[primary],
				GenusTotal:     summary.PrimaryTotal,
				GenusShare:     call.GenusShare,
				RankInGenus:    call.RankInGenus,
				SpeciesInGenus: summary.SpeciesTotal,
				Passed:         call.Filter.Passed,
				FailedFields:   call.Filter.FailedFields,
				Confidence:     string(call.Confidence),
				Metrics:        call.Record.Metrics,
			})
		}

		top := ""
		if len(summary.Species) > 0 {
			top = summary.Species[0].Record.Name
		}
		genusRows = append(genusRows, schema.GenusTableRow{
			Classifier:     string(summary.Genus.Classifier),
			TaxonID:        summary.Genus.TaxonID,
			Name:           summary.Genus.Name,
			Unassigned:     summary.Unassigned,
			SpeciesTotal:   summary.SpeciesTotal,
			SpeciesPassing: summary.SpeciesPassing,
			PrimaryTotal:   summary.PrimaryTotal,
			Passed:         summary.GenusPassed,
			TopSpecies:     top,
		})
	}

	return speciesRows, genusRows
}

// BuildVirusTable emits only the passing viral aligner records, in input
// order. Threshold metadata is dropped from the output row; a bare pass
// indicator is all downstream consumers need since failing rows never
// appear.
func BuildVirusTable(filtered []schema.FilteredRecord) []schema.VirusTableRow {
	var rows []schema.VirusTableRow
	for _, fr := range filtered {
		if !fr.Filter.Passed {
			continue
		}
		rows = append(rows, schema.VirusTableRow{
			TaxonID:      fr.Record.TaxonID,
			Name:         fr.Record.Name,
			Evenness:     fr.Record.Metrics[schema.FieldEvenness],
			Coverage1x:   fr.Record.Metrics[schema.FieldCoverage1x],
			UniqueReads:  fr.Record.Metrics[schema.FieldUniqueReads],
			ReadIdentity: fr.Record.Metrics[schema.FieldMeanReadIdentity],
			AlignmentLen: fr.Record.Metrics[schema.FieldMeanAlignmentLen],
			Passed:       true,
		})
	}
	return rows
}

// headlineResult builds the per-classifier summary sentence for the
// analysis-fields structure.
func headlineResult(c schema.Classifier, sampleID string, highCount, totalRows int) string {
	switch c {
	case schema.KrakenClassifier:
		return fmt.Sprintf(
			"Sample %s has %d high confidence bacterial species classified by Kraken.",
			sampleID, highCount)
	case schema.SylphClassifier:
		return fmt.Sprintf(
			"Sample %s has %d high confidence bacterial (and archaeal) species classified by Sylph.",
			sampleID, highCount)
	default:
		return fmt.Sprintf(
			"Sample %s has %d viral taxa classified by the Viral Aligner that passed the filters (out of a total of %d).",
			sampleID, highCount, totalRows)
	}
}

// BuildAnalysisFields projects the reporting subset out of one
// classifier's results: the fixed identity columns of the reported taxa,
// the thresholds that were applied and the headline sentence. The
// projection is independent of table shape.
func BuildAnalysisFields(c schema.Classifier, sampleID string, reported []schema.TaxonRecord, totalRows int, tc *contract.ThresholdConfig) schema.AnalysisFields {
	results := make([]schema.AnalysisResultRow, len(reported))
	for i, rec := range reported {
		results[i] = schema.AnalysisResultRow{
			Name:    rec.Name,
			TaxonID: rec.TaxonID,
			Rank:    string(rec.Rank),
		}
	}

	return schema.AnalysisFields{
		AnalysisName:        fmt.Sprintf("%s_%s_classification", sampleID, c),
		AnalysisDescription: fmt.Sprintf("Filtered %s classification results for sample %s", c, sampleID),
		SampleID:            sampleID,
		Classifier:          string(c),
		Thresholds:          tc.ClassifierBounds(c),
		HeadlineResult:      headlineResult(c, sampleID, len(reported), totalRows),
		Results:             results,
	}
}
