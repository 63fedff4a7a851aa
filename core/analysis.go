package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/climb-tre/claspar/core/agg"
	"github.com/climb-tre/claspar/core/normalize"
	"github.com/climb-tre/claspar/internal/archive"
	"github.com/climb-tre/claspar/internal/contract"
	"github.com/climb-tre/claspar/internal/outwriter"
	"github.com/climb-tre/claspar/logger"
	"github.com/climb-tre/claspar/schema"
)

// ClassifierReport holds one classifier pipeline's complete output for a
// sample: the flattened tables, the analysis-fields projection and any
// rows skipped during normalization.
type ClassifierReport struct {
	Classifier  schema.Classifier
	SpeciesRows []schema.SpeciesTableRow
	GenusRows   []schema.GenusTableRow
	VirusRows   []schema.VirusTableRow
	Analysis    schema.AnalysisFields
	Skipped     contract.ParseErrors
	TotalRows   int
}

// RunClassifier executes one classifier's pipeline: normalize, filter,
// aggregate (bacteria only) and build tables. The pipeline is pure apart
// from the read-only threshold config, so the three classifiers can run
// concurrently.
func RunClassifier(cfg *contract.Config, c schema.Classifier, rows []schema.RawRow, tc *contract.ThresholdConfig) *ClassifierReport {
	report := &ClassifierReport{Classifier: c, TotalRows: len(rows)}

	records, skipped := normalize.Normalize(c, rows)
	report.Skipped = skipped

	filtered := ApplyThresholds(records, tc)

	var reported []schema.TaxonRecord
	if c == schema.ViralAlignerClassifier {
		report.VirusRows = BuildVirusTable(filtered)
		for _, fr := range filtered {
			if fr.Filter.Passed {
				reported = append(reported, fr.Record)
			}
		}
	} else {
		summaries := agg.AggregateGenera(filtered, c)
		report.SpeciesRows, report.GenusRows = BuildBacteriaTables(summaries)
		for _, summary := range summaries {
			for _, call := range summary.Species {
				if call.Confidence == schema.HighConfidence {
					reported = append(reported, call.Record)
				}
			}
		}
	}

	report.Analysis = BuildAnalysisFields(c, cfg.SampleID, reported, len(rows), tc)
	return report
}

// RunSample runs the configured classifier pipelines through a pool of
// cfg.Workers goroutines. The pipelines share nothing mutable except the
// read-only threshold config, so no synchronization beyond the join is
// needed.
func RunSample(cfg *contract.Config, record *contract.SampleRecord, tc *contract.ThresholdConfig) []*ClassifierReport {
	reports := make([]*ClassifierReport, len(cfg.Classifiers))

	idxCh := make(chan int, len(cfg.Classifiers))
	var wg sync.WaitGroup

	workers := min(cfg.Workers, len(cfg.Classifiers))
	if workers < 1 {
		workers = 1
	}
	for range workers {
		wg.Go(func() {
			for i := range idxCh {
				c := cfg.Classifiers[i]
				reports[i] = RunClassifier(cfg, c, record.PayloadFor(c), tc)
			}
		})
	}

	for i := range cfg.Classifiers {
		idxCh <- i
	}
	close(idxCh)
	wg.Wait()

	return reports
}

// ExecuteParse runs the full parse command: fetch the sample record, run
// every classifier pipeline, write the output tables and archive the run.
// It serves as the main entry point for the 'parse' mode.
func ExecuteParse(ctx context.Context, cfg *contract.Config, client contract.MetadataClient, tc *contract.ThresholdConfig) error {
	start := time.Now()
	logger.Info("starting parse run",
		zap.String("sample_id", cfg.SampleID),
		zap.Int("classifiers", len(cfg.Classifiers)))

	record, err := client.GetSampleRecord(ctx, cfg.SampleID)
	if err != nil {
		return fmt.Errorf("failed to fetch sample record: %w", err)
	}

	// --- 0. Begin Run Tracking (if configured) ---
	var runID int64
	store := archive.Store()
	if store != nil {
		runID, err = store.BeginRun(cfg.SampleID, start, cfg.ConfigParams())
		if err != nil {
			contract.LogWarn("Run tracking initialization failed", err)
		}
	}

	// --- 1. Classifier Pipelines ---
	reports := RunSample(cfg, record, tc)

	// --- 2. Output Writing ---
	ow := outwriter.NewOutWriter()
	totalCalls := 0
	for _, report := range reports {
		if len(report.Skipped) > 0 {
			contract.LogWarn(fmt.Sprintf("%s normalization", report.Classifier), report.Skipped)
			logger.Warn("rows skipped during normalization",
				zap.String("classifier", string(report.Classifier)),
				zap.Int("count", len(report.Skipped)))
		}

		if err := ow.WriteReportTables(report.Classifier, report.SpeciesRows, report.GenusRows, report.VirusRows, cfg); err != nil {
			return err
		}
		if err := ow.WriteAnalysisFields(report.Analysis, cfg); err != nil {
			return err
		}

		totalCalls += archiveReportCalls(store, runID, report)
		logger.Info("classifier pipeline finished",
			zap.String("classifier", string(report.Classifier)),
			zap.String("headline", report.Analysis.HeadlineResult))
	}

	// --- 3. End Run Tracking ---
	if store != nil && runID > 0 {
		if err := store.EndRun(runID, time.Now(), totalCalls); err != nil {
			contract.LogWarn("Failed to finalize run tracking", err)
		}
	}

	logger.Info("parse run complete",
		zap.String("sample_id", cfg.SampleID),
		zap.Duration("duration", time.Since(start)))
	return nil
}

// archiveReportCalls records one report's emitted rows against a run and
// returns how many rows the report contributed.
func archiveReportCalls(store contract.ArchiveStore, runID int64, report *ClassifierReport) int {
	emitted := len(report.SpeciesRows) + len(report.VirusRows)
	if store == nil || runID <= 0 {
		return emitted
	}

	for _, row := range report.SpeciesRows {
		call := contract.ArchivedCall{
			RunID:         runID,
			Classifier:    report.Classifier,
			TaxonID:       row.TaxonID,
			Name:          row.Name,
			GenusTaxonID:  row.GenusTaxonID,
			GenusShare:    row.GenusShare,
			RankInGenus:   row.RankInGenus,
			PrimaryMetric: row.PrimaryMetric,
			Passed:        row.Passed,
			Confidence:    row.Confidence,
		}
		if err := store.RecordCall(runID, call); err != nil {
			contract.LogWarn("Failed to archive call", err)
		}
	}
	for _, row := range report.VirusRows {
		call := contract.ArchivedCall{
			RunID:         runID,
			Classifier:    report.Classifier,
			TaxonID:       row.TaxonID,
			Name:          row.Name,
			PrimaryMetric: row.UniqueReads,
			Passed:        row.Passed,
			Confidence:    string(schema.HighConfidence),
		}
		if err := store.RecordCall(runID, call); err != nil {
			contract.LogWarn("Failed to archive call", err)
		}
	}
	return emitted
}

// ExecuteThresholds prints the active threshold configuration. It serves
// as the main entry point for the 'thresholds' mode.
func ExecuteThresholds(cfg *contract.Config, tc *contract.ThresholdConfig) error {
	return outwriter.NewOutWriter().WriteThresholds(tc, cfg)
}
