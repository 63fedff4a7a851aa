package outwriter

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/climb-tre/claspar/internal/contract"
	"github.com/climb-tre/claspar/schema"
)

// thresholdEntry is one flattened (classifier, field, bounds) row.
type thresholdEntry struct {
	Classifier string        `json:"classifier"`
	Field      string        `json:"field"`
	Bounds     schema.Bounds `json:"bounds"`
}

// writeThresholdResults prints the active threshold configuration,
// dispatching based on the output format configured. Entries are sorted
// by classifier then field for determinism.
func writeThresholdResults(tc *contract.ThresholdConfig, cfg *contract.Config) error {
	var entries []thresholdEntry
	for _, c := range schema.AllClassifiers {
		bounds := tc.ClassifierBounds(c)
		fields := make([]string, 0, len(bounds))
		for field := range bounds {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			entries = append(entries, thresholdEntry{
				Classifier: string(c),
				Field:      field,
				Bounds:     bounds[field],
			})
		}
	}

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, entries)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"classifier", "field", "min", "max"}, func(cw *csv.Writer) error {
				for _, e := range entries {
					rec := []string{e.Classifier, e.Field, formatBound(e.Bounds.Min), formatBound(e.Bounds.Max)}
					if err := cw.Write(rec); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeThresholdTable(entries, w)
		}, "Wrote table")
	}
}

// formatBound renders an optional bound, with "-" meaning unbounded.
func formatBound(b *float64) string {
	if b == nil {
		return "-"
	}
	return strconv.FormatFloat(*b, 'f', -1, 64)
}

// writeThresholdTable generates and writes the human-readable table.
func writeThresholdTable(entries []thresholdEntry, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Classifier", "Field", "Min", "Max"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, e := range entries {
		data = append(data, []string{
			e.Classifier,
			e.Field,
			formatBound(e.Bounds.Min),
			formatBound(e.Bounds.Max),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
