package outwriter

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/parquet-go/parquet-go"
	"github.com/sastops/ehc/schema"
)

// Full-dump base name; the extension depends on the chosen format.
const fullDumpBase = "00-full_scan_data"

// FullDump receives every raw record during the aggregation pass, including
// records the engine drops, so the dump always mirrors the source file.
type FullDump interface {
	Add(raw map[string]any, rec *schema.ScanRecord) error
	Close() error
}

// NewFullDump creates the dump writer for the configured format.
func NewFullDump(dir string, format schema.DumpFormat, fields []string) (FullDump, error) {
	switch format {
	case schema.ParquetDump:
		return newParquetDump(filepath.Join(dir, fullDumpBase+".parquet"))
	default:
		return newCSVDump(filepath.Join(dir, fullDumpBase+".csv"), fields)
	}
}

// csvDump writes raw source fields in the order declared by the export's
// metadata.
type csvDump struct {
	file   *os.File
	writer *csv.Writer
	fields []string
}

func newCSVDump(path string, fields []string) (*csvDump, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("cannot create %s: %w", path, err)
	}
	w := csv.NewWriter(file)
	if err := w.Write(fields); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("cannot write header to %s: %w", path, err)
	}
	return &csvDump{file: file, writer: w, fields: fields}, nil
}

func (d *csvDump) Add(raw map[string]any, _ *schema.ScanRecord) error {
	row := make([]string, len(d.fields))
	for i, field := range d.fields {
		row[i] = rawCell(field, raw[field])
	}
	return d.writer.Write(row)
}

func (d *csvDump) Close() error {
	d.writer.Flush()
	err := d.writer.Error()
	if cerr := d.file.Close(); err == nil {
		err = cerr
	}
	return err
}

// rawCell renders one raw JSON value. The language list collapses to a
// comma-separated string of names, as the export UI does.
func rawCell(field string, v any) string {
	if v == nil {
		return ""
	}
	if field == "ScannedLanguages" {
		items, ok := v.([]any)
		if !ok {
			return ""
		}
		names := make([]string, 0, len(items))
		for _, item := range items {
			if entry, ok := item.(map[string]any); ok {
				if name, ok := entry["LanguageName"].(string); ok {
					names = append(names, name)
				}
			}
		}
		return strings.Join(names, ", ")
	}
	switch c := v.(type) {
	case string:
		return c
	case bool:
		return strconv.FormatBool(c)
	case float64:
		if c == math.Trunc(c) && math.Abs(c) < 1e15 {
			return strconv.FormatInt(int64(c), 10)
		}
		return strconv.FormatFloat(c, 'f', -1, 64)
	default:
		return fmt.Sprint(c)
	}
}

// FullScanRow is the typed parquet layout of one scan record.
type FullScanRow struct {
	ScanRequestedOn  string  `parquet:"scan_requested_on,snappy"`
	QueuedOn         string  `parquet:"queued_on,snappy"`
	EngineStartedOn  string  `parquet:"engine_started_on,snappy"`
	EngineFinishedOn *string `parquet:"engine_finished_on,optional,snappy"`
	ScanCompletedOn  string  `parquet:"scan_completed_on,snappy"`
	IsIncremental    bool    `parquet:"is_incremental,snappy"`
	ProjectID        int64   `parquet:"project_id,snappy"`
	ProjectName      string  `parquet:"project_name,snappy"`
	TotalResults     int64   `parquet:"total_results,snappy"`
	High             int64   `parquet:"high,snappy"`
	Medium           int64   `parquet:"medium,snappy"`
	Low              int64   `parquet:"low,snappy"`
	Info             int64   `parquet:"info,snappy"`
	LOC              *int64  `parquet:"loc,optional,snappy"`
	FailedLOC        int64   `parquet:"failed_loc,snappy"`
	Origin           string  `parquet:"origin,snappy"`
	PresetName       string  `parquet:"preset_name,snappy"`
	Languages        string  `parquet:"languages,snappy"`
}

// parquetDump streams typed rows through a generic parquet writer, the
// same shape the CSV dump has but column-compressed.
type parquetDump struct {
	file   *os.File
	writer *parquet.GenericWriter[FullScanRow]
}

func newParquetDump(path string) (*parquetDump, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("cannot create %s: %w", path, err)
	}
	return &parquetDump{
		file:   file,
		writer: parquet.NewGenericWriter[FullScanRow](file),
	}, nil
}

func (d *parquetDump) Add(_ map[string]any, rec *schema.ScanRecord) error {
	names := make([]string, 0, len(rec.ScannedLanguages))
	for _, lang := range rec.ScannedLanguages {
		names = append(names, lang.LanguageName)
	}
	row := FullScanRow{
		ScanRequestedOn:  rec.ScanRequestedOn,
		QueuedOn:         rec.QueuedOn,
		EngineStartedOn:  rec.EngineStartedOn,
		EngineFinishedOn: rec.EngineFinishedOn,
		ScanCompletedOn:  rec.ScanCompletedOn,
		IsIncremental:    rec.IsIncremental,
		ProjectID:        rec.ProjectID,
		ProjectName:      rec.ProjectName,
		TotalResults:     rec.TotalResults,
		High:             rec.High,
		Medium:           rec.Medium,
		Low:              rec.Low,
		Info:             rec.Info,
		LOC:              rec.LOC,
		FailedLOC:        rec.FailedLOC,
		Origin:           rec.Origin,
		PresetName:       rec.PresetName,
		Languages:        strings.Join(names, ", "),
	}
	if _, err := d.writer.Write([]FullScanRow{row}); err != nil {
		return fmt.Errorf("cannot write parquet row: %w", err)
	}
	return nil
}

func (d *parquetDump) Close() error {
	err := d.writer.Close()
	if cerr := d.file.Close(); err == nil {
		err = cerr
	}
	return err
}
