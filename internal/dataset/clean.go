package dataset

import (
	"strconv"
	"strings"
	"time"
)

// CleanStats records what cleaning did to a table
type CleanStats struct {
	RawRows           int
	Rows              int
	DuplicatesRemoved int
	FilledCells       map[string]int
}

// NewCleanStats initializes stats for a table about to be cleaned
func NewCleanStats(rawRows int) CleanStats {
	return CleanStats{
		RawRows:     rawRows,
		FilledCells: make(map[string]int),
	}
}

// RecordFill notes that n cells in the named column were filled
func (s *CleanStats) RecordFill(column string, n int) {
	if n > 0 {
		s.FilledCells[column] += n
	}
}

// TotalFilled returns the total number of filled cells across columns
func (s *CleanStats) TotalFilled() int {
	total := 0
	for _, n := range s.FilledCells {
		total += n
	}
	return total
}

// IsMissing reports whether a cell value counts as missing
func IsMissing(s string) bool {
	trimmed := strings.TrimSpace(s)
	return trimmed == "" || strings.EqualFold(trimmed, "nan") || strings.EqualFold(trimmed, "null") || strings.EqualFold(trimmed, "na")
}

// FillMissing replaces missing cells in the named column with value.
// Returns the number of cells filled; 0 when the column does not exist.
func FillMissing(t *Table, column, value string) int {
	idx := t.ColumnIndex(column)
	if idx < 0 {
		return 0
	}
	filled := 0
	for _, row := range t.Rows {
		if IsMissing(row[idx]) {
			row[idx] = value
			filled++
		}
	}
	return filled
}

// ParseFloatCell parses a numeric cell, tolerating surrounding whitespace
// and thousands separators. Missing or unparseable cells return ok=false.
func ParseFloatCell(s string) (float64, bool) {
	if IsMissing(s) {
		return 0, false
	}
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// NumericColumn coerces the named column to floats.
// The returned mask marks which cells parsed successfully.
func NumericColumn(t *Table, column string) (values []float64, valid []bool) {
	raw := t.Column(column)
	values = make([]float64, len(raw))
	valid = make([]bool, len(raw))
	for i, s := range raw {
		values[i], valid[i] = ParseFloatCell(s)
	}
	return values, valid
}

// FillNumericMedian coerces the named column to numbers, fills missing or
// unparseable cells with the median of the valid values, and rewrites every
// cell through format so the column has one canonical representation.
// Returns the number of cells filled and the median used. With no valid
// values the median is 0.
func FillNumericMedian(t *Table, column string, format func(float64) string) (int, float64) {
	idx := t.ColumnIndex(column)
	if idx < 0 {
		return 0, 0
	}

	values, valid := NumericColumn(t, column)
	var present []float64
	for i, ok := range valid {
		if ok {
			present = append(present, values[i])
		}
	}
	median := Median(present)

	filled := 0
	for i, row := range t.Rows {
		if valid[i] {
			row[idx] = format(values[i])
		} else {
			row[idx] = format(median)
			filled++
		}
	}
	return filled, median
}

// NormalizeNumericColumn coerces the named column to numbers and rewrites
// valid cells through format. Missing or unparseable cells become empty
// rather than being filled. Returns the number of cells blanked that held
// unparseable non-missing values.
func NormalizeNumericColumn(t *Table, column string, format func(float64) string) int {
	idx := t.ColumnIndex(column)
	if idx < 0 {
		return 0
	}
	blanked := 0
	for _, row := range t.Rows {
		v, ok := ParseFloatCell(row[idx])
		if ok {
			row[idx] = format(v)
		} else {
			if !IsMissing(row[idx]) {
				blanked++
			}
			row[idx] = ""
		}
	}
	return blanked
}

// timeLayouts are the accepted input formats for date/timestamp cells
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
}

// ParseTimeCell parses a date or timestamp cell.
// Missing or unparseable cells return ok=false.
func ParseTimeCell(s string) (time.Time, bool) {
	if IsMissing(s) {
		return time.Time{}, false
	}
	trimmed := strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, trimmed); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// NormalizeTimeColumn parses every cell in the named column and rewrites it
// with the given layout. Unparseable cells become empty. Returns the number
// of cells blanked.
func NormalizeTimeColumn(t *Table, column, layout string) int {
	idx := t.ColumnIndex(column)
	if idx < 0 {
		return 0
	}
	blanked := 0
	for _, row := range t.Rows {
		ts, ok := ParseTimeCell(row[idx])
		if ok {
			row[idx] = ts.Format(layout)
		} else {
			if !IsMissing(row[idx]) {
				blanked++
			}
			row[idx] = ""
		}
	}
	return blanked
}

// FormatInt renders a float as a whole-number cell, truncating toward zero
func FormatInt(v float64) string {
	return strconv.Itoa(int(v))
}

// FormatFloat renders a float with the minimal digits that round-trip
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
