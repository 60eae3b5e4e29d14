package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"opsreport/internal/errors"
)

// Table is an in-memory tabular dataset: a header row plus data rows.
// Cells are kept as strings; typed views are derived on demand so that
// writing the table back out reproduces the exact cell values.
type Table struct {
	Headers []string
	Rows    [][]string
}

// ReadCSV reads a CSV document into a Table. The first record is the header.
// Records with a field count different from the header are a parsing error.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)

	headers, err := reader.Read()
	if err == io.EOF {
		return nil, errors.NewParsingError("CSV input is empty", nil)
	}
	if err != nil {
		return nil, errors.NewParsingError("failed to read CSV header", err)
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewParsingError("failed to read CSV record", err)
		}
		rows = append(rows, record)
	}

	return &Table{Headers: headers, Rows: rows}, nil
}

// LoadCSV reads a CSV file from disk into a Table
func LoadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError(fmt.Sprintf("input file %s not found", path), err)
		}
		return nil, errors.NewStorageError("failed to open input file", err)
	}
	defer f.Close()

	t, err := ReadCSV(f)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			return nil, appErr.WithContext("path", path)
		}
		return nil, err
	}
	return t, nil
}

// WriteCSV writes the table to w in CSV format
func (t *Table) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(t.Headers); err != nil {
		return errors.NewStorageError("failed to write CSV header row", err)
	}
	for i, row := range t.Rows {
		if err := writer.Write(row); err != nil {
			return errors.NewStorageError(fmt.Sprintf("failed to write CSV row %d", i), err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.NewStorageError("failed to flush CSV output", err)
	}
	return nil
}

// ColumnIndex returns the index of the named column, or -1 when absent
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the named column exists
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Column returns a copy of all values in the named column.
// Returns nil when the column does not exist.
func (t *Table) Column(name string) []string {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil
	}
	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[idx]
	}
	return values
}

// AppendColumn adds a new column with the given values, one per row
func (t *Table) AppendColumn(name string, values []string) error {
	if len(values) != len(t.Rows) {
		return errors.NewValidationError(
			fmt.Sprintf("column %s has %d values for %d rows", name, len(values), len(t.Rows)), nil)
	}
	if t.HasColumn(name) {
		return errors.NewValidationError(fmt.Sprintf("column %s already exists", name), nil)
	}
	t.Headers = append(t.Headers, name)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], values[i])
	}
	return nil
}

// Clone returns a deep copy of the table
func (t *Table) Clone() *Table {
	headers := make([]string, len(t.Headers))
	copy(headers, t.Headers)
	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		rows[i] = make([]string, len(row))
		copy(rows[i], row)
	}
	return &Table{Headers: headers, Rows: rows}
}

// Deduplicate removes exact duplicate rows, keeping the first occurrence and
// preserving row order. Returns the number of rows removed.
func (t *Table) Deduplicate() int {
	seen := make(map[string]struct{}, len(t.Rows))
	kept := t.Rows[:0]
	removed := 0
	for _, row := range t.Rows {
		key := strings.Join(row, "\x1f")
		if _, ok := seen[key]; ok {
			removed++
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, row)
	}
	t.Rows = kept
	return removed
}
