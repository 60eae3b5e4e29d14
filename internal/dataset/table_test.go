package dataset

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "opsreport/internal/errors"
)

func TestReadCSV(t *testing.T) {
	input := "a,b,c\n1,2,3\n4,5,6\n"
	table, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"1", "2", "3"}, table.Rows[0])
	assert.Equal(t, []string{"4", "5", "6"}, table.Rows[1])
}

func TestReadCSV_Empty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
}

func TestReadCSV_RaggedRow(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("a,b\n1,2,3\n"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
}

func TestLoadCSV_NotFound(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNotFound))
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	input := "a,b\nx,1\ny,2\n"
	table, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, table.WriteCSV(&buf))
	assert.Equal(t, input, buf.String())
}

func TestWriteCSV_Deterministic(t *testing.T) {
	table, err := ReadCSV(strings.NewReader("a,b\nx,1\nx,1\ny,2\n"))
	require.NoError(t, err)
	table.Deduplicate()

	var first, second bytes.Buffer
	require.NoError(t, table.WriteCSV(&first))
	require.NoError(t, table.WriteCSV(&second))
	assert.Equal(t, first.Bytes(), second.Bytes())
}

func TestColumnAccess(t *testing.T) {
	table := &Table{
		Headers: []string{"product", "price"},
		Rows:    [][]string{{"widget", "9.99"}, {"gadget", "19.99"}},
	}

	assert.Equal(t, 0, table.ColumnIndex("product"))
	assert.Equal(t, -1, table.ColumnIndex("missing"))
	assert.True(t, table.HasColumn("price"))
	assert.False(t, table.HasColumn("revenue"))
	assert.Equal(t, []string{"9.99", "19.99"}, table.Column("price"))
	assert.Nil(t, table.Column("missing"))
}

func TestAppendColumn(t *testing.T) {
	table := &Table{
		Headers: []string{"a"},
		Rows:    [][]string{{"1"}, {"2"}},
	}

	require.NoError(t, table.AppendColumn("b", []string{"x", "y"}))
	assert.Equal(t, []string{"a", "b"}, table.Headers)
	assert.Equal(t, []string{"1", "x"}, table.Rows[0])

	err := table.AppendColumn("b", []string{"p", "q"})
	require.Error(t, err)

	err = table.AppendColumn("c", []string{"only-one"})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
}

func TestDeduplicate(t *testing.T) {
	tests := []struct {
		name        string
		rows        [][]string
		wantRemoved int
		wantRows    [][]string
	}{
		{
			name:        "no duplicates",
			rows:        [][]string{{"a", "1"}, {"b", "2"}},
			wantRemoved: 0,
			wantRows:    [][]string{{"a", "1"}, {"b", "2"}},
		},
		{
			name:        "exact duplicates removed, order preserved",
			rows:        [][]string{{"a", "1"}, {"b", "2"}, {"a", "1"}, {"c", "3"}, {"b", "2"}},
			wantRemoved: 2,
			wantRows:    [][]string{{"a", "1"}, {"b", "2"}, {"c", "3"}},
		},
		{
			name:        "near duplicates kept",
			rows:        [][]string{{"a", "1"}, {"a", "2"}},
			wantRemoved: 0,
			wantRows:    [][]string{{"a", "1"}, {"a", "2"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := &Table{Headers: []string{"k", "v"}, Rows: tt.rows}
			removed := table.Deduplicate()
			assert.Equal(t, tt.wantRemoved, removed)
			assert.Equal(t, tt.wantRows, table.Rows)
		})
	}
}

func TestDeduplicate_Idempotent(t *testing.T) {
	table := &Table{
		Headers: []string{"k"},
		Rows:    [][]string{{"a"}, {"a"}, {"b"}},
	}

	assert.Equal(t, 1, table.Deduplicate())
	assert.Equal(t, 0, table.Deduplicate())
	assert.Len(t, table.Rows, 2)
}

func TestClone(t *testing.T) {
	table := &Table{
		Headers: []string{"a"},
		Rows:    [][]string{{"1"}},
	}

	clone := table.Clone()
	clone.Rows[0][0] = "changed"
	clone.Headers[0] = "renamed"

	assert.Equal(t, "1", table.Rows[0][0])
	assert.Equal(t, "a", table.Headers[0])
}
