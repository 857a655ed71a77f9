package outwriter

import (
	"path/filepath"
	"testing"

	"github.com/sastops/ehc/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// newTemplate creates a minimal workbook with a Data sheet on disk.
func newTemplate(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "template.xlsx")

	f := excelize.NewFile()
	_, err := f.NewSheet("Data")
	require.NoError(t, err)
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func TestOpenExcelMissingFile(t *testing.T) {
	_, err := OpenExcel(filepath.Join(t.TempDir(), "absent.xlsx"))
	assert.Error(t, err)
}

func TestOpenExcelMissingDataSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blank.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	_, err := OpenExcel(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Data")
}

func TestExcelWriterWriteSection(t *testing.T) {
	path := newTemplate(t)

	w, err := OpenExcel(path)
	require.NoError(t, err)

	sec := schema.Section{
		Name:   "origins",
		Header: []string{"Origin", "Scans", "%"},
		Rows: [][]any{
			{"Jenkins", int64(2), 0.5},
			{"CxCLI", int64(1), 0.25},
		},
		CellCol: "AC",
		CellRow: 4,
	}
	require.NoError(t, w.WriteSection(&sec))
	require.NoError(t, w.Save())

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	for cell, want := range map[string]string{
		"AC4": "Jenkins",
		"AD4": "2",
		"AE4": "0.5",
		"AC5": "CxCLI",
		"AD5": "1",
	} {
		got, err := f.GetCellValue("Data", cell)
		require.NoError(t, err)
		assert.Equal(t, want, got, "cell %s", cell)
	}
}
