// Package tabular parses and serializes delimited text. It is the collaborator
// the import and export pipelines talk to: parse errors are reported as
// values, never panics, so a malformed upload becomes a message instead of a
// crash.
package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Row is one data row keyed by header column name.
type Row map[string]string

// Options controls parsing.
type Options struct {
	// Delimiter is the field separator. Zero means comma.
	Delimiter rune
	// HasHeader indicates the first non-empty row names the columns.
	// Without a header there is nothing to key rows by, so parsing
	// headerless input yields positional keys "0", "1", ...
	HasHeader bool
}

// ParseError reports malformed delimited text. Message carries the first
// parser error verbatim for display.
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string {
	return "parse: " + e.Message
}

// Parse decodes delimited text into header-keyed rows. Input bytes are
// sanitized to valid UTF-8 first; fully empty rows are dropped. Rows shorter
// than the header simply omit the missing columns.
//
// Header cells are cleaned of whitespace and BOM; data cells pass through
// verbatim so values round-trip byte for byte through Serialize.
func Parse(data []byte, opts Options) ([]Row, error) {
	data = SanitizeUTF8(data)

	r := csv.NewReader(bytes.NewReader(data))
	if opts.Delimiter != 0 {
		r.Comma = opts.Delimiter
	}
	// Ragged rows are tolerated; quoting is strict so genuinely malformed
	// input surfaces as a ParseError instead of silently mis-splitting.
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, &ParseError{Message: err.Error()}
	}

	var header []string
	var rows []Row

	for _, rec := range records {
		if isEmptyRow(rec) {
			continue
		}
		if opts.HasHeader && header == nil {
			header = make([]string, len(rec))
			for i, h := range rec {
				header[i] = CleanCell(h)
			}
			continue
		}

		row := make(Row, len(rec))
		for i, cell := range rec {
			key := fmt.Sprintf("%d", i)
			if header != nil {
				if i >= len(header) {
					continue
				}
				key = header[i]
			}
			row[key] = cell
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// Serialize is the inverse of Parse: it writes rows as comma-delimited text
// with a header line, emitting columns in the given order. Values missing
// from a row serialize as empty cells.
func Serialize(rows []Row, columns []string) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(columns); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}

	line := make([]string, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			line[i] = row[col]
		}
		if err := w.Write(line); err != nil {
			return "", fmt.Errorf("write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush: %w", err)
	}
	return buf.String(), nil
}

// SanitizeUTF8 replaces invalid byte sequences with the Unicode replacement
// character so the CSV reader never chokes on mis-encoded exports.
func SanitizeUTF8(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}

	var buf bytes.Buffer
	buf.Grow(len(data))

	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			buf.WriteRune('�')
			data = data[1:]
		} else {
			buf.WriteRune(r)
			data = data[size:]
		}
	}

	return buf.Bytes()
}

// CleanCell trims whitespace and a UTF-8 BOM, which Excel likes to prepend
// to the first header cell.
func CleanCell(s string) string {
	s = strings.TrimPrefix(s, "\uFEFF")
	return strings.TrimSpace(s)
}

func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
