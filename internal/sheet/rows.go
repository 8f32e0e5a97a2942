package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Row is the trimmed cells of one CSV record. Rows may differ in length.
type Row []string

// ParseError reports CSV text that could not be decoded.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse csv: line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("parse csv: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseRows splits CSV text into rows of trimmed cells, dropping rows whose
// cells are all empty. Malformed quoting fails the whole parse.
func ParseRows(text string) ([]Row, error) {
	text = strings.TrimPrefix(text, "\ufeff")

	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.Comma = ','

	var rows []Row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			line := 0
			var csvErr *csv.ParseError
			if errors.As(err, &csvErr) {
				line = csvErr.Line
				err = csvErr.Err
			}
			return nil, &ParseError{Line: line, Err: err}
		}

		row := make(Row, len(record))
		blank := true
		for i, cell := range record {
			row[i] = strings.TrimSpace(cell)
			if row[i] != "" {
				blank = false
			}
		}
		if blank {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// cell returns row[i], or "" when the row is too short.
func (r Row) cell(i int) string {
	if i < len(r) {
		return r[i]
	}
	return ""
}

// index returns the position of the first cell equal to text, or -1.
func (r Row) index(text string) int {
	for i, c := range r {
		if c == text {
			return i
		}
	}
	return -1
}

func (r Row) contains(text string) bool { return r.index(text) >= 0 }
