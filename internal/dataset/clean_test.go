package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsMissing(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"NaN", true},
		{"nan", true},
		{"null", true},
		{"NA", true},
		{"0", false},
		{"Unknown", false},
		{"n/a-ish text", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, IsMissing(tt.input))
		})
	}
}

func TestFillMissing(t *testing.T) {
	table := &Table{
		Headers: []string{"region"},
		Rows:    [][]string{{"North"}, {""}, {"  "}, {"South"}, {"NaN"}},
	}

	filled := FillMissing(table, "region", "Unknown")
	assert.Equal(t, 3, filled)
	assert.Equal(t, []string{"North", "Unknown", "Unknown", "South", "Unknown"}, table.Column("region"))
}

func TestFillMissing_AbsentColumn(t *testing.T) {
	table := &Table{Headers: []string{"a"}, Rows: [][]string{{"1"}}}
	assert.Equal(t, 0, FillMissing(table, "missing", "x"))
}

func TestFillMissing_NoMissingIsNoop(t *testing.T) {
	table := &Table{
		Headers: []string{"region"},
		Rows:    [][]string{{"North"}, {"South"}},
	}
	assert.Equal(t, 0, FillMissing(table, "region", "Unknown"))
	// Filling an already-clean column changes nothing
	assert.Equal(t, 0, FillMissing(table, "region", "Unknown"))
}

func TestParseFloatCell(t *testing.T) {
	tests := []struct {
		input  string
		want   float64
		wantOK bool
	}{
		{"19.99", 19.99, true},
		{" 5 ", 5, true},
		{"1,250.75", 1250.75, true},
		{"", 0, false},
		{"NaN", 0, false},
		{"abc", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseFloatCell(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestFillNumericMedian(t *testing.T) {
	table := &Table{
		Headers: []string{"quantity"},
		Rows:    [][]string{{"1"}, {"3"}, {""}, {"5"}, {"bogus"}},
	}

	filled, median := FillNumericMedian(table, "quantity", FormatInt)
	assert.Equal(t, 2, filled)
	assert.InDelta(t, 3.0, median, 1e-9)
	assert.Equal(t, []string{"1", "3", "3", "5", "3"}, table.Column("quantity"))
}

func TestFillNumericMedian_EvenCount(t *testing.T) {
	table := &Table{
		Headers: []string{"price"},
		Rows:    [][]string{{"10"}, {"20"}, {""}},
	}

	filled, median := FillNumericMedian(table, "price", FormatFloat)
	assert.Equal(t, 1, filled)
	assert.InDelta(t, 15.0, median, 1e-9)
	assert.Equal(t, []string{"10", "20", "15"}, table.Column("price"))
}

func TestFillNumericMedian_NoValidValues(t *testing.T) {
	table := &Table{
		Headers: []string{"price"},
		Rows:    [][]string{{""}, {"junk"}},
	}

	filled, median := FillNumericMedian(table, "price", FormatFloat)
	assert.Equal(t, 2, filled)
	assert.Zero(t, median)
	assert.Equal(t, []string{"0", "0"}, table.Column("price"))
}

func TestNormalizeNumericColumn(t *testing.T) {
	table := &Table{
		Headers: []string{"ttc_hours"},
		Rows:    [][]string{{"36.5"}, {" 12 "}, {"broken"}, {""}},
	}

	blanked := NormalizeNumericColumn(table, "ttc_hours", FormatFloat)
	assert.Equal(t, 1, blanked)
	assert.Equal(t, []string{"36.5", "12", "", ""}, table.Column("ttc_hours"))
}

func TestParseTimeCell(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   time.Time
		wantOK bool
	}{
		{"date only", "2024-03-15", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), true},
		{"timestamp", "2024-03-15 10:30:00", time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC), true},
		{"slash date", "2024/03/15", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), true},
		{"us date", "03/15/2024", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), true},
		{"missing", "", time.Time{}, false},
		{"garbage", "yesterday", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseTimeCell(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.True(t, tt.want.Equal(got), "want %v, got %v", tt.want, got)
			}
		})
	}
}

func TestNormalizeTimeColumn(t *testing.T) {
	table := &Table{
		Headers: []string{"opened_at"},
		Rows:    [][]string{{"2024-03-15 10:30:00"}, {"2024-03-16"}, {"broken"}, {""}},
	}

	blanked := NormalizeTimeColumn(table, "opened_at", "2006-01-02 15:04:05")
	assert.Equal(t, 1, blanked)
	assert.Equal(t, []string{
		"2024-03-15 10:30:00",
		"2024-03-16 00:00:00",
		"",
		"",
	}, table.Column("opened_at"))
}

func TestCleanStats(t *testing.T) {
	stats := NewCleanStats(100)
	stats.RecordFill("price", 3)
	stats.RecordFill("region", 2)
	stats.RecordFill("region", 1)
	stats.RecordFill("noop", 0)

	assert.Equal(t, 100, stats.RawRows)
	assert.Equal(t, 3, stats.FilledCells["price"])
	assert.Equal(t, 3, stats.FilledCells["region"])
	assert.NotContains(t, stats.FilledCells, "noop")
	assert.Equal(t, 6, stats.TotalFilled())
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "3", FormatInt(3.7))
	assert.Equal(t, "-2", FormatInt(-2.9))
	assert.Equal(t, "19.99", FormatFloat(19.99))
	assert.Equal(t, "20", FormatFloat(20))
	assert.Equal(t, "10.5", FormatFloat(10.5))
}
