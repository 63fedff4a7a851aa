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

// WriteBacteriaResults outputs one bacteria classifier's species and
// genus tables, dispatching based on the output format configured.
func WriteBacteriaResults(c schema.Classifier, speciesRows []schema.SpeciesTableRow, genusRows []schema.GenusTableRow, cfg *contract.Config) error {
	// Create formatters using helper
	fmtFloat, intFmt := createFormatters(cfg.Precision)
	slug := fileSlug(c)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeBacteriaJSONResults(speciesRows, genusRows, slug, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeBacteriaParquetResults(speciesRows, genusRows, slug, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	case schema.TextOut:
		// Human-readable tables to stdout or the override file
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if err := writeSpeciesTable(speciesRows, cfg, fmtFloat, w); err != nil {
				return err
			}
			return writeGenusTable(genusRows, cfg, fmtFloat, intFmt, w)
		}, "Wrote table")
	default:
		if err := writeBacteriaCSVResults(speciesRows, genusRows, slug, cfg, fmtFloat, intFmt); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	}
	return nil
}

// writeBacteriaCSVResults writes the species and genus tables as two CSV files.
func writeBacteriaCSVResults(speciesRows []schema.SpeciesTableRow, genusRows []schema.GenusTableRow, slug string, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	speciesPath := outputPath(cfg, slug+"_species_results.csv")
	if err := writeWithFile(speciesPath, func(w io.Writer) error {
		return writeCSVWithHeader(w, speciesCSVHeader(), func(cw *csv.Writer) error {
			return writeSpeciesCSVRows(cw, speciesRows, fmtFloat, intFmt)
		})
	}, "Wrote CSV"); err != nil {
		return err
	}

	genusPath := outputPath(cfg, slug+"_genus_results.csv")
	return writeWithFile(genusPath, func(w io.Writer) error {
		return writeCSVWithHeader(w, genusCSVHeader(), func(cw *csv.Writer) error {
			return writeGenusCSVRows(cw, genusRows, fmtFloat, intFmt)
		})
	}, "Wrote CSV")
}

// writeBacteriaJSONResults writes the species and genus tables as two JSON files.
func writeBacteriaJSONResults(speciesRows []schema.SpeciesTableRow, genusRows []schema.GenusTableRow, slug string, cfg *contract.Config) error {
	speciesPath := outputPath(cfg, slug+"_species_results.json")
	if err := writeWithFile(speciesPath, func(w io.Writer) error {
		return writeJSON(w, speciesRows)
	}, "Wrote JSON"); err != nil {
		return err
	}

	genusPath := outputPath(cfg, slug+"_genus_results.json")
	return writeWithFile(genusPath, func(w io.Writer) error {
		return writeJSON(w, genusRows)
	}, "Wrote JSON")
}

// writeBacteriaParquetResults writes the species and genus tables as two Parquet files.
func writeBacteriaParquetResults(speciesRows []schema.SpeciesTableRow, genusRows []schema.GenusTableRow, slug string, cfg *contract.Config) error {
	speciesPath := outputPath(cfg, slug+"_species_results.parquet")
	if err := parquet.WriteSpeciesCallsParquet(parquet.FromSpeciesRows(speciesRows), speciesPath); err != nil {
		return err
	}
	genusPath := outputPath(cfg, slug+"_genus_results.parquet")
	return parquet.WriteGenusRollupsParquet(parquet.FromGenusRows(genusRows), genusPath)
}

func speciesCSVHeader() []string {
	return []string{
		"classifier",
		"taxon_id",
		"name",
		"genus_taxon_id",
		"genus_name",
		"primary_metric",
		"genus_total_metric",
		"genus_share",
		"rank_in_genus",
		"species_in_genus",
		"passed",
		"failed_fields",
		"confidence",
	}
}

func writeSpeciesCSVRows(w *csv.Writer, rows []schema.SpeciesTableRow, fmtFloat func(float64) string, intFmt string) error {
	for _, r := range rows {
		rec := []string{
			r.Classifier,
			r.TaxonID,
			r.Name,
			r.GenusTaxonID,
			r.GenusName,
			fmtFloat(r.PrimaryMetric),
			fmtFloat(r.GenusTotal),
			fmtFloat(r.GenusShare),
			fmt.Sprintf(intFmt, r.RankInGenus),
			fmt.Sprintf(intFmt, r.SpeciesInGenus),
			strconv.FormatBool(r.Passed),
			schema.FormatFailedFields(r.FailedFields),
			r.Confidence,
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

func genusCSVHeader() []string {
	return []string{
		"classifier",
		"taxon_id",
		"name",
		"unassigned",
		"species_total",
		"species_passing",
		"primary_total_metric",
		"passed",
		"top_species",
	}
}

func writeGenusCSVRows(w *csv.Writer, rows []schema.GenusTableRow, fmtFloat func(float64) string, intFmt string) error {
	for _, r := range rows {
		rec := []string{
			r.Classifier,
			r.TaxonID,
			r.Name,
			strconv.FormatBool(r.Unassigned),
			fmt.Sprintf(intFmt, r.SpeciesTotal),
			fmt.Sprintf(intFmt, r.SpeciesPassing),
			fmtFloat(r.PrimaryTotal),
			strconv.FormatBool(r.Passed),
			r.TopSpecies,
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeSpeciesTable generates and writes the human-readable species table.
func writeSpeciesTable(rows []schema.SpeciesTableRow, cfg *contract.Config, fmtFloat func(float64) string, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Rank", "Species", "Genus", "Metric", "Share", "Passed", "Confidence"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxName := getMaxTableNameWidth(cfg)
	var data [][]string
	for _, r := range rows {
		data = append(data, []string{
			strconv.Itoa(r.RankInGenus),
			contract.TruncatePath(r.Name, maxName),
			contract.TruncatePath(r.GenusName, maxName),
			fmtFloat(r.PrimaryMetric),
			fmtFloat(r.GenusShare),
			strconv.FormatBool(r.Passed),
			confidenceLabel(r.Confidence, cfg),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(writer, "Showing %d species rows\n", len(rows))
	return err
}

// writeGenusTable generates and writes the human-readable genus table.
func writeGenusTable(rows []schema.GenusTableRow, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Genus", "Species", "Passing", "Total Metric", "Passed", "Top Species"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxName := getMaxTableNameWidth(cfg)
	var data [][]string
	for _, r := range rows {
		name := r.Name
		if r.Unassigned {
			name = name + " (unassigned)"
		}
		data = append(data, []string{
			contract.TruncatePath(name, maxName),
			fmt.Sprintf(intFmt, r.SpeciesTotal),
			fmt.Sprintf(intFmt, r.SpeciesPassing),
			fmtFloat(r.PrimaryTotal),
			strconv.FormatBool(r.Passed),
			contract.TruncatePath(r.TopSpecies, maxName),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(writer, "Showing %d genus rows\n", len(rows))
	return err
}
