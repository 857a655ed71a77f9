// Package ingest streams scan records out of an OData JSON export without
// buffering the whole file.
package ingest

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/sastops/ehc/schema"
)

// contextFieldsRe captures the field list inside "#Scans(...)" of the
// @odata.context string.
var contextFieldsRe = regexp.MustCompile(`#Scans\((.*)\)`)

// Reader walks the export's "value" array one element at a time.
type Reader struct {
	file   *os.File
	dec    *json.Decoder
	fields []string
	done   bool
}

// Open opens the export and positions the decoder at the first record.
// It consumes top-level keys until "value", scraping the declared field
// names from @odata.context along the way.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open input file: %w", err)
	}

	r := &Reader{file: f, dec: json.NewDecoder(f)}
	if err := r.seekValue(); err != nil {
		_ = f.Close()
		return nil, err
	}
	return r, nil
}

// FieldNames returns the field names declared by the export's metadata, in
// source order. Used only by the full-dump writer.
func (r *Reader) FieldNames() []string {
	return r.fields
}

// Next returns the next raw record, or io.EOF when the array is exhausted.
func (r *Reader) Next() (json.RawMessage, error) {
	if r.done {
		return nil, io.EOF
	}
	if !r.dec.More() {
		r.done = true
		return nil, io.EOF
	}
	var raw json.RawMessage
	if err := r.dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("malformed scan record: %w", err)
	}
	return raw, nil
}

// Decode unmarshals a raw record into the typed ScanRecord.
func Decode(raw json.RawMessage) (*schema.ScanRecord, error) {
	var rec schema.ScanRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("cannot decode scan record: %w", err)
	}
	return &rec, nil
}

// DecodeRaw unmarshals a raw record into a generic map, preserving every
// source field for the full dump.
func DecodeRaw(raw json.RawMessage) (map[string]any, error) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("cannot decode scan record: %w", err)
	}
	return m, nil
}

// Close releases the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}

// seekValue walks the top-level object tokens until the "value" array
// opens, decoding @odata.context when it passes by and skipping everything
// else.
func (r *Reader) seekValue() error {
	tok, err := r.dec.Token()
	if err != nil {
		return fmt.Errorf("malformed export: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("malformed export: expected top-level object, got %v", tok)
	}

	for r.dec.More() {
		tok, err := r.dec.Token()
		if err != nil {
			return fmt.Errorf("malformed export: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("malformed export: expected object key, got %v", tok)
		}

		switch key {
		case "@odata.context":
			var ctx string
			if err := r.dec.Decode(&ctx); err != nil {
				return fmt.Errorf("malformed @odata.context: %w", err)
			}
			r.fields = parseContextFields(ctx)
		case "value":
			tok, err := r.dec.Token()
			if err != nil {
				return fmt.Errorf("malformed export: %w", err)
			}
			if delim, ok := tok.(json.Delim); !ok || delim != '[' {
				return fmt.Errorf("malformed export: expected array for value, got %v", tok)
			}
			return nil
		default:
			var skip json.RawMessage
			if err := r.dec.Decode(&skip); err != nil {
				return fmt.Errorf("malformed export: %w", err)
			}
		}
	}
	return fmt.Errorf("malformed export: no value array found")
}

// parseContextFields extracts field names from the @odata.context string,
// normalizing the nested "ScannedLanguages(LanguageName)" selector to a
// plain field name.
func parseContextFields(ctx string) []string {
	match := contextFieldsRe.FindStringSubmatch(ctx)
	if match == nil {
		return nil
	}
	parts := strings.Split(match[1], ",")
	fields := make([]string, 0, len(parts))
	for _, p := range parts {
		field := strings.TrimSpace(p)
		if field == "" {
			continue
		}
		if strings.Contains(field, "ScannedLanguages") {
			field = strings.ReplaceAll(field, "(LanguageName", "")
		}
		field = strings.TrimSuffix(field, ")")
		if field == "" {
			continue
		}
		fields = append(fields, field)
	}
	return fields
}
