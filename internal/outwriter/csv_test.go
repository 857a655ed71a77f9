package outwriter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/sastops/ehc/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVWriterWriteSection(t *testing.T) {
	dir := t.TempDir()
	sec := schema.Section{
		Name:     "origins",
		FileName: "08-origins.csv",
		Header:   []string{"Origin", "Scans", "%"},
		Rows: [][]any{
			{"Jenkins", int64(2), 2.0 / 3},
			{"CxCLI", int64(1), 1.0 / 3},
		},
	}

	require.NoError(t, NewCSVWriter(dir).WriteSection(&sec))

	f, err := os.Open(filepath.Join(dir, "08-origins.csv"))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Origin", "Scans", "%"},
		{"Jenkins", "2", "0.6667"},
		{"CxCLI", "1", "0.3333"},
	}, records)
}

func TestCSVWriterMissingDir(t *testing.T) {
	sec := schema.Section{FileName: "x.csv", Header: []string{"A"}}
	err := NewCSVWriter(filepath.Join(t.TempDir(), "nope")).WriteSection(&sec)
	assert.Error(t, err)
}

// failingWriter always errors, for exercising the fan-out accounting.
type failingWriter struct{}

func (failingWriter) WriteSection(*schema.Section) error {
	return os.ErrPermission
}

func TestWriteAllCountsFailures(t *testing.T) {
	dir := t.TempDir()
	sections := []schema.Section{
		{Name: "a", FileName: "01-a.csv", Header: []string{"X"}},
		{Name: "b", FileName: "02-b.csv", Header: []string{"X"}},
	}

	failures := WriteAll(sections, NewCSVWriter(dir), failingWriter{})
	assert.Equal(t, 2, failures)

	// The good writer still produced every file.
	for _, name := range []string{"01-a.csv", "02-b.csv"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err)
	}
}
