package exporter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opsreport/internal/dataset"
)

func testTable() *dataset.Table {
	return &dataset.Table{
		Headers: []string{"product", "revenue"},
		Rows: [][]string{
			{"Widget", "39.98"},
			{"Gadget", "19.99"},
		},
	}
}

func TestCSVWriter_WriteTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "cleaned.csv")
	w := NewCSVWriter(nil)

	require.NoError(t, w.WriteTable(path, testTable(), WriteOptions{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "product,revenue\nWidget,39.98\nGadget,19.99\n", string(data))
}

func TestCSVWriter_WriteTable_BOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cleaned.csv")
	w := NewCSVWriter(nil)

	require.NoError(t, w.WriteTable(path, testTable(), WriteOptions{BOMPrefix: true}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 3)
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, data[:3])
	assert.Equal(t, "product,revenue\nWidget,39.98\nGadget,19.99\n", string(data[3:]))
}

func TestCSVWriter_WriteTable_Append(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cleaned.csv")
	w := NewCSVWriter(nil)

	require.NoError(t, w.WriteTable(path, testTable(), WriteOptions{}))
	extra := &dataset.Table{
		Headers: []string{"product", "revenue"},
		Rows:    [][]string{{"Doohickey", "5.00"}},
	}
	require.NoError(t, w.WriteTable(path, extra, WriteOptions{Append: true}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "product,revenue\nWidget,39.98\nGadget,19.99\nDoohickey,5.00\n", string(data))
}

func TestCSVWriter_Deterministic(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(nil)

	first := filepath.Join(dir, "a.csv")
	second := filepath.Join(dir, "b.csv")
	require.NoError(t, w.WriteTable(first, testTable(), WriteOptions{}))
	require.NoError(t, w.WriteTable(second, testTable(), WriteOptions{}))

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestStreamWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stream.csv")
	w := NewCSVWriter(nil)

	sw, err := w.CreateStreamWriter(path, []string{"date", "value"})
	require.NoError(t, err)

	require.NoError(t, sw.WriteRecord([]string{"2024-01-01", "1.5"}))
	require.NoError(t, sw.WriteRecord([]string{"2024-01-02", "2.5"}))
	require.NoError(t, sw.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "date,value\n2024-01-01,1.5\n2024-01-02,2.5\n", string(data))
}
