package outwriter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/sastops/ehc/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVDumpMirrorsSourceFields(t *testing.T) {
	dir := t.TempDir()
	fields := []string{"Id", "LOC", "Origin", "ScannedLanguages", "EngineFinishedOn"}

	dump, err := NewFullDump(dir, schema.CSVDump, fields)
	require.NoError(t, err)

	raw := map[string]any{
		"Id":     float64(1001),
		"LOC":    float64(15000),
		"Origin": "Jenkins build 42",
		"ScannedLanguages": []any{
			map[string]any{"LanguageName": "Java"},
			map[string]any{"LanguageName": "Common"},
		},
		"EngineFinishedOn": nil,
	}
	require.NoError(t, dump.Add(raw, &schema.ScanRecord{}))
	require.NoError(t, dump.Close())

	f, err := os.Open(filepath.Join(dir, "00-full_scan_data.csv"))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		fields,
		{"1001", "15000", "Jenkins build 42", "Java, Common", ""},
	}, records)
}

func TestRawCell(t *testing.T) {
	assert.Equal(t, "", rawCell("X", nil))
	assert.Equal(t, "text", rawCell("X", "text"))
	assert.Equal(t, "true", rawCell("X", true))
	assert.Equal(t, "42", rawCell("X", float64(42))) // integral floats print as ints
	assert.Equal(t, "4.25", rawCell("X", 4.25))
}

func TestParquetDumpRoundTrip(t *testing.T) {
	dir := t.TempDir()
	loc := int64(15000)
	finished := "2024-03-04T10:11:00"

	dump, err := NewFullDump(dir, schema.ParquetDump, nil)
	require.NoError(t, err)

	rec := &schema.ScanRecord{
		ScanRequestedOn:  "2024-03-04T10:00:00",
		QueuedOn:         "2024-03-04T10:00:30",
		EngineStartedOn:  "2024-03-04T10:01:00",
		EngineFinishedOn: &finished,
		ScanCompletedOn:  "2024-03-04T10:12:00",
		ProjectID:        1,
		ProjectName:      "app",
		LOC:              &loc,
		Origin:           "Jenkins build 42",
		ScannedLanguages: []schema.ScannedLanguage{{LanguageName: "Java"}, {LanguageName: "Go"}},
	}
	require.NoError(t, dump.Add(nil, rec))
	require.NoError(t, dump.Close())

	path := filepath.Join(dir, "00-full_scan_data.parquet")
	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	reader := parquet.NewGenericReader[FullScanRow](f)
	defer func() { _ = reader.Close() }()
	require.Equal(t, int64(1), reader.NumRows())

	rows := make([]FullScanRow, 1)
	n, _ := reader.Read(rows)
	require.Equal(t, 1, n)
	assert.Equal(t, "Jenkins build 42", rows[0].Origin)
	assert.Equal(t, "Java, Go", rows[0].Languages)
	require.NotNil(t, rows[0].LOC)
	assert.Equal(t, int64(15000), *rows[0].LOC)
	require.NotNil(t, rows[0].EngineFinishedOn)
	assert.Equal(t, finished, *rows[0].EngineFinishedOn)
}
