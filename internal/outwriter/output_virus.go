package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/climb-tre/claspar/internal/contract"
	"github.com/climb-tre/claspar/internal/parquet"
	"github.com/climb-tre/claspar/schema"
)

// WriteVirusResults outputs the filtered viral aligner table, dispatching
// based on the output format configured.
func WriteVirusResults(rows []schema.VirusTableRow, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		path := outputPath(cfg, "filtered_viral_aligner_results.json")
		if err := writeWithFile(path, func(w io.Writer) error {
			return writeJSON(w, rows)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.ParquetOut:
		path := outputPath(cfg, "filtered_viral_aligner_results.parquet")
		if err := parquet.WriteVirusCallsParquet(parquet.FromVirusRows(rows), path); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	case schema.TextOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeVirusTable(rows, cfg, fmtFloat, w)
		}, "Wrote table")
	default:
		path := outputPath(cfg, "filtered_viral_aligner_results.csv")
		if err := writeWithFile(path, func(w io.Writer) error {
			return writeCSVWithHeader(w, virusCSVHeader(), func(cw *csv.Writer) error {
				return writeVirusCSVRows(cw, rows, fmtFloat)
			})
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	}
	return nil
}

func virusCSVHeader() []string {
	return []string{
		"taxon_id",
		"name",
		"evenness_value",
		"coverage_1x",
		"uniquely_mapped_reads",
		"mean_read_identity",
		"mean_alignment_length",
		"passed",
	}
}

func writeVirusCSVRows(w *csv.Writer, rows []schema.VirusTableRow, fmtFloat func(float64) string) error {
	for _, r := range rows {
		rec := []string{
			r.TaxonID,
			r.Name,
			fmtFloat(r.Evenness),
			fmtFloat(r.Coverage1x),
			fmtFloat(r.UniqueReads),
			fmtFloat(r.ReadIdentity),
			fmtFloat(r.AlignmentLen),
			strconv.FormatBool(r.Passed),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeVirusTable generates and writes the human-readable filtered table.
func writeVirusTable(rows []schema.VirusTableRow, cfg *contract.Config, fmtFloat func(float64) string, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Taxon", "Name", "Evenness", "Cov 1x", "Unique Reads", "Identity", "Aln Len"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxName := getMaxTableNameWidth(cfg)
	var data [][]string
	for _, r := range rows {
		data = append(data, []string{
			r.TaxonID,
			contract.TruncatePath(r.Name, maxName),
			fmtFloat(r.Evenness),
			fmtFloat(r.Coverage1x),
			fmtFloat(r.UniqueReads),
			fmtFloat(r.ReadIdentity),
			fmtFloat(r.AlignmentLen),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(writer, "Showing %d viral rows that passed the filters\n", len(rows))
	return err
}
