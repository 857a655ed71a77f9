package outwriter

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sastops/ehc/schema"
)

// CSVWriter persists report sections as numbered CSV files in one output
// directory.
type CSVWriter struct {
	dir string
}

// NewCSVWriter returns a writer rooted at dir, which must already exist.
func NewCSVWriter(dir string) *CSVWriter {
	return &CSVWriter{dir: dir}
}

// WriteSection writes one section to its numbered file. A failure here is
// reported to the caller, which keeps going with the remaining sections.
func (w *CSVWriter) WriteSection(sec *schema.Section) error {
	path := filepath.Join(w.dir, sec.FileName)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	cw := csv.NewWriter(file)
	if err := cw.Write(sec.Header); err != nil {
		return fmt.Errorf("cannot write header to %s: %w", path, err)
	}
	for _, row := range sec.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = cellString(v)
		}
		if err := cw.Write(cells); err != nil {
			return fmt.Errorf("cannot write row to %s: %w", path, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
