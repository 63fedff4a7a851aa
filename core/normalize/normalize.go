// Package normalize adapts each classifier's native output schema into the
// common taxonomic record model. The set of adapters is closed: exactly
// three classifier formats exist, and new ones require adapter code anyway.
package normalize

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/climb-tre/claspar/internal/contract"
	"github.com/climb-tre/claspar/schema"
)

// Normalize dispatches raw rows to the adapter for the given classifier.
// Malformed rows are skipped and collected; the returned ParseErrors batch
// is nil when every row normalized cleanly.
func Normalize(c schema.Classifier, rows []schema.RawRow) ([]schema.TaxonRecord, contract.ParseErrors) {
	switch c {
	case schema.KrakenClassifier:
		return normalizeKraken(rows)
	case schema.SylphClassifier:
		return normalizeSylph(rows)
	case schema.ViralAlignerClassifier:
		return normalizeVirus(rows)
	default:
		return nil, contract.ParseErrors{
			{Classifier: c, Row: 0, Field: "", Reason: "unrecognized classifier"},
		}
	}
}

// rawString extracts a string-shaped value from a raw row. Numeric taxon
// identifiers are rendered without a decimal point.
func rawString(row schema.RawRow, key string) (string, error) {
	v, ok := row[key]
	if !ok || v == nil {
		return "", fmt.Errorf("missing required field")
	}
	switch t := v.(type) {
	case string:
		return t, nil
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10), nil
		}
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(t), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case json.Number:
		return t.String(), nil
	default:
		return "", fmt.Errorf("expected string, got %T", v)
	}
}

// rawFloat extracts a numeric value from a raw row. String values are
// parsed, including fraction-shaped ones like "19/20" which some sketch
// classifier builds emit for the containment index.
func rawFloat(row schema.RawRow, key string) (float64, error) {
	v, ok := row[key]
	if !ok || v == nil {
		return 0, fmt.Errorf("missing required field")
	}
	switch t := v.(type) {
	case float64:
		return t, nil
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case json.Number:
		return t.Float64()
	case string:
		if strings.Contains(t, "/") {
			return parseFraction(t)
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, fmt.Errorf("cannot parse %q as number", t)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("expected number, got %T", v)
	}
}

// parseFraction parses a "numerator/denominator" string into a float.
// A zero denominator yields 0 rather than an error, matching the
// zero-share convention used elsewhere in the pipeline.
func parseFraction(s string) (float64, error) {
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		return 0, fmt.Errorf("cannot parse %q as fraction", s)
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil {
		return 0, fmt.Errorf("cannot parse fraction numerator %q", num)
	}
	d, err := strconv.ParseFloat(strings.TrimSpace(den), 64)
	if err != nil {
		return 0, fmt.Errorf("cannot parse fraction denominator %q", den)
	}
	if d == 0 {
		return 0, nil
	}
	return n / d, nil
}

// lineageIDs splits a pipe-delimited ancestor chain into its taxon IDs.
// The chain runs root-first and ends with the row's own taxon.
func lineageIDs(row schema.RawRow) []string {
	raw, err := rawString(row, "lineage")
	if err != nil || raw == "" {
		return nil
	}
	parts := strings.Split(raw, "|")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, p)
		}
	}
	return ids
}

// parentFromLineage resolves the immediate parent from an ancestor chain.
// Returns empty when the row is a root or carries no lineage.
func parentFromLineage(ids []string) string {
	if len(ids) < 2 {
		return ""
	}
	return ids[len(ids)-2]
}

// metricFields parses every required numeric field for a classifier from
// one raw row. The first unparsable field aborts the row.
func metricFields(c schema.Classifier, row schema.RawRow, idx int) (map[string]float64, *contract.ParseError) {
	metrics := make(map[string]float64, len(schema.RequiredFields(c)))
	for _, field := range schema.RequiredFields(c) {
		val, err := rawFloat(row, field)
		if err != nil {
			return nil, &contract.ParseError{Classifier: c, Row: idx, Field: field, Reason: err.Error()}
		}
		metrics[field] = val
	}
	return metrics, nil
}

// identity extracts the taxon ID and display name shared by all adapters.
func identity(c schema.Classifier, row schema.RawRow, idx int) (id, name string, perr *contract.ParseError) {
	id, err := rawString(row, "taxon_id")
	if err != nil {
		return "", "", &contract.ParseError{Classifier: c, Row: idx, Field: "taxon_id", Reason: err.Error()}
	}
	name, err = rawString(row, "human_readable")
	if err != nil {
		return "", "", &contract.ParseError{Classifier: c, Row: idx, Field: "human_readable", Reason: err.Error()}
	}
	return id, name, nil
}
