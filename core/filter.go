// Package core implements the classifier pipelines: threshold filtering,
// table building and per-sample orchestration across the three adapters.
package core

import (
	"slices"

	"github.com/climb-tre/claspar/internal/contract"
	"github.com/climb-tre/claspar/schema"
)

// ApplyThresholds evaluates every configured bound against each record's
// metric fields. A record passes iff no field violates its bounds; fields
// with no configured threshold always pass. The function is total: rows
// with missing required fields were already rejected during normalization.
func ApplyThresholds(records []schema.TaxonRecord, tc *contract.ThresholdConfig) []schema.FilteredRecord {
	filtered := make([]schema.FilteredRecord, 0, len(records))
	for _, rec := range records {
		filtered = append(filtered, schema.FilteredRecord{
			Record: rec,
			Filter: evaluateRecord(rec, tc),
		})
	}
	return filtered
}

// evaluateRecord checks one record's metric fields against the bounds for
// its classifier. Failed fields are reported sorted for determinism.
func evaluateRecord(rec schema.TaxonRecord, tc *contract.ThresholdConfig) schema.FilterResult {
	var failed []string
	for field, value := range rec.Metrics {
		bounds, ok := tc.LookupBounds(rec.Classifier, field)
		if !ok {
			continue
		}
		if violatesBounds(value, bounds) {
			failed = append(failed, field)
		}
	}
	slices.Sort(failed)
	return schema.FilterResult{
		Passed:       len(failed) == 0,
		FailedFields: failed,
	}
}

// violatesBounds reports whether a value falls outside an optional range.
func violatesBounds(value float64, b schema.Bounds) bool {
	if b.Min != nil && value < *b.Min {
		return true
	}
	if b.Max != nil && value > *b.Max {
		return true
	}
	return false
}
