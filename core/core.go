// Package core orchestrates the analysis pipeline: ingest the scan export,
// aggregate it in a single pass, reconstruct concurrency, render the report
// sections and persist the run summary.
package core

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/sastops/ehc/core/agg"
	"github.com/sastops/ehc/core/concurrency"
	"github.com/sastops/ehc/internal/contract"
	"github.com/sastops/ehc/internal/ingest"
	"github.com/sastops/ehc/internal/outwriter"
	"github.com/sastops/ehc/schema"
)

// ExecuteAnalysis runs one full analysis per the validated config. The
// spreadsheet template, when requested, is validated before any processing
// so a corrupt workbook fails the run up front.
func ExecuteAnalysis(cfg *contract.Config, store contract.HistoryStore) error {
	var xl *outwriter.ExcelWriter
	if cfg.ExcelPath != "" {
		var err error
		if xl, err = outwriter.OpenExcel(cfg.ExcelPath); err != nil {
			return err
		}
	}

	if err := cfg.EnsureOutputDir(); err != nil {
		return err
	}

	reader, err := ingest.Open(cfg.InputFile)
	if err != nil {
		return err
	}
	defer func() { _ = reader.Close() }()

	var dump outwriter.FullDump
	if cfg.FullData {
		if dump, err = outwriter.NewFullDump(cfg.OutputDir, cfg.FullFormat, reader.FieldNames()); err != nil {
			return err
		}
		defer func() { _ = dump.Close() }()
	}

	contract.Statusf("🔎 Processing scans from %s", cfg.InputFile)
	records, aggregator, err := consumeRecords(cfg, reader, dump)
	if err != nil {
		return err
	}

	stats := aggregator.Finalize()
	m := &stats.Aggregate
	if m.Scans == 0 {
		return fmt.Errorf("no usable scan records in %s (%d missing LOC, %d malformed)",
			cfg.InputFile, m.MissingScans, m.MalformedScans)
	}

	contract.Statusf("⚙️  Calculating scan concurrency...")
	snapshots := concurrency.Reconstruct(stats.Events, m.FirstScan, m.LastScan, cfg.SnapshotSeconds)
	daily := concurrency.DailyMaxima(snapshots)
	summary := concurrency.Summarize(daily)

	sections := outwriter.BuildSections(stats, daily)
	writers := make([]contract.SectionWriter, 0, 2)
	if cfg.CSV {
		writers = append(writers, outwriter.NewCSVWriter(cfg.OutputDir))
	}
	if xl != nil {
		writers = append(writers, xl)
	}
	if failures := outwriter.WriteAll(sections, writers...); failures > 0 {
		contract.LogWarn(fmt.Sprintf("%d report section(s) failed to write", failures), nil)
	}
	if xl != nil {
		if err := xl.Save(); err != nil {
			contract.LogWarn("Spreadsheet export failed", err)
		} else {
			contract.Statusf("💾 Wrote spreadsheet export to %s", cfg.ExcelPath)
		}
	}
	if cfg.CSV || cfg.FullData {
		contract.Statusf("💾 Wrote CSV output to %s", cfg.OutputDir)
	}

	if err := outwriter.PrintSummary(stats, summary); err != nil {
		contract.LogWarn("Cannot print summary table", err)
	}

	run := &schema.RunSummary{
		RanAt:         time.Now(),
		InputFile:     cfg.InputFile,
		Customer:      cfg.Customer,
		Records:       records,
		Scans:         m.Scans,
		YesScans:      m.YesScans,
		NoScans:       m.NoScans,
		MissingScans:  m.MissingScans,
		FirstScan:     m.FirstScan,
		LastScan:      m.LastScan,
		SumLOC:        m.SumLOC,
		MaxConcurrent: summary.MaxActual,
		MaxOptimal:    summary.MaxOptimal,
	}
	if err := store.Record(run); err != nil {
		contract.LogWarn("Cannot record run history", err)
	}
	return nil
}

// consumeRecords drives the single pass over the record stream, feeding the
// full dump first so dropped records still appear there, then the engine.
func consumeRecords(cfg *contract.Config, reader *ingest.Reader, dump outwriter.FullDump) (int64, *agg.Aggregator, error) {
	aggregator := agg.New()
	var records int64

	var bar *progressbar.ProgressBar
	if cfg.Progress {
		bar = progressbar.Default(-1, "Processing scans")
		defer func() { _ = bar.Finish() }()
	}

	for {
		raw, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return records, nil, err
		}
		records++
		if bar != nil {
			_ = bar.Add(1)
		}

		rec, err := ingest.Decode(raw)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("Skipping undecodable record %d", records), err)
			continue
		}

		if dump != nil {
			rawMap, err := ingest.DecodeRaw(raw)
			if err == nil {
				err = dump.Add(rawMap, rec)
			}
			if err != nil {
				contract.LogWarn(fmt.Sprintf("Full dump failed on record %d", records), err)
			}
		}

		aggregator.Add(rec)
	}
	return records, aggregator, nil
}
