package incidents

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opsreport/internal/dataset"
)

func TestBuildReport(t *testing.T) {
	m := Compute(fixtureTickets(t), 10)
	stats := dataset.CleanStats{RawRows: 6, Rows: 5, DuplicatesRemoved: 1}

	doc, err := BuildReport(m, stats, "", nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, doc.Write(&buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	assert.Greater(t, buf.Len(), 1000)
}

func TestBuildReport_EmptyMetrics(t *testing.T) {
	doc, err := BuildReport(Metrics{}, dataset.CleanStats{}, "", nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, doc.Write(&buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestBuildReport_MissingChartFile(t *testing.T) {
	m := Compute(fixtureTickets(t), 10)
	_, err := BuildReport(m, dataset.CleanStats{}, "does-not-exist.png", nil)
	require.Error(t, err)
}

func TestSummaryText(t *testing.T) {
	m := Compute(fixtureTickets(t), 10)
	stats := dataset.CleanStats{RawRows: 6, Rows: 5, DuplicatesRemoved: 1}

	text := summaryText(m, stats)
	assert.Contains(t, text, "5 incidents")
	assert.Contains(t, text, "80.0%")
	assert.Contains(t, text, "66.7%")
	assert.Contains(t, text, "21.3 hours")
}

func TestKPIRows_SkipsUndefinedRates(t *testing.T) {
	rows := kpiRows(Metrics{Total: 3, Closed: 1, Open: 2, ResolvedRatePct: 100.0 / 3.0}, dataset.CleanStats{RawRows: 3, Rows: 3})

	labels := make([]string, len(rows))
	for i, r := range rows {
		labels[i] = r[0]
	}
	assert.Contains(t, labels, "Resolution rate")
	assert.NotContains(t, labels, "SLA breach rate")
	assert.NotContains(t, labels, "MTTR (closed tickets)")
}
