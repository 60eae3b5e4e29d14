package sales

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opsreport/internal/dataset"
)

const rawSalesCSV = `order_id,date,product,region,customer,quantity,price
1001,2024-01-05,Widget,North,Acme,2,10
1002,2024-01-20,Gadget,South,Beta,1,20
1002,2024-01-20,Gadget,South,Beta,1,20
1003,2024-02-10,Widget,North,Acme,,10
1004,2024-02-15,,South,Gamma,4,
1005,bad-date,Widget,East,Beta,3,10
`

func loadRawSales(t *testing.T) *dataset.Table {
	t.Helper()
	table, err := dataset.ReadCSV(strings.NewReader(rawSalesCSV))
	require.NoError(t, err)
	return table
}

func TestClean(t *testing.T) {
	raw := loadRawSales(t)
	res, err := Clean(raw, CleanOptions{})
	require.NoError(t, err)

	assert.Equal(t, 6, res.Stats.RawRows)
	assert.Equal(t, 5, res.Stats.Rows)
	assert.Equal(t, 1, res.Stats.DuplicatesRemoved)
	assert.Equal(t, 1, res.Stats.FilledCells["quantity"])
	assert.Equal(t, 1, res.Stats.FilledCells["price"])
	assert.Equal(t, 1, res.Stats.FilledCells["product"])

	// Input table untouched
	assert.Len(t, raw.Rows, 6)
	assert.Len(t, raw.Headers, 7)

	// Derived columns appended
	assert.Equal(t, []string{"order_id", "date", "product", "region", "customer", "quantity", "price", "order_date", "revenue"}, res.Table.Headers)

	// quantity median of {2,1,4,3} is 2.5, truncated to 2
	assert.Equal(t, []string{"2", "1", "2", "4", "3"}, res.Table.Column("quantity"))
	// price median of {10,20,10,10} is 10
	assert.Equal(t, []string{"10", "20", "10", "10", "10"}, res.Table.Column("price"))
	// missing product filled
	assert.Equal(t, []string{"Widget", "Gadget", "Widget", "Unknown", "Widget"}, res.Table.Column("product"))
	// unparseable dates become empty
	assert.Equal(t, []string{"2024-01-05", "2024-01-20", "2024-02-10", "2024-02-15", ""}, res.Table.Column("order_date"))
	// revenue derived after fills
	assert.Equal(t, []string{"20", "20", "20", "40", "30"}, res.Table.Column("revenue"))
}

func TestClean_RequiredColumnsComplete(t *testing.T) {
	res, err := Clean(loadRawSales(t), CleanOptions{})
	require.NoError(t, err)

	for _, col := range []string{"product", "region", "customer", "quantity", "price", "revenue"} {
		for i, v := range res.Table.Column(col) {
			assert.False(t, dataset.IsMissing(v), "column %s row %d is missing after cleaning", col, i)
		}
	}
}

func TestClean_Idempotent(t *testing.T) {
	first, err := Clean(loadRawSales(t), CleanOptions{})
	require.NoError(t, err)

	// Cleaning the already-cleaned rows removes nothing further
	again := first.Table.Clone()
	assert.Zero(t, again.Deduplicate())
}

func TestClean_DeterministicOutput(t *testing.T) {
	var outputs [][]byte
	for i := 0; i < 2; i++ {
		res, err := Clean(loadRawSales(t), CleanOptions{})
		require.NoError(t, err)
		var buf bytes.Buffer
		require.NoError(t, res.Table.WriteCSV(&buf))
		outputs = append(outputs, buf.Bytes())
	}
	assert.Equal(t, outputs[0], outputs[1])
}

func TestClean_CustomUnknownLabel(t *testing.T) {
	res, err := Clean(loadRawSales(t), CleanOptions{UnknownLabel: "N/A"})
	require.NoError(t, err)
	assert.Contains(t, res.Table.Column("product"), "N/A")
}

func TestClean_MissingOptionalColumns(t *testing.T) {
	table, err := dataset.ReadCSV(strings.NewReader("product,price\nWidget,5\nGadget,7\n"))
	require.NoError(t, err)

	res, err := Clean(table, CleanOptions{})
	require.NoError(t, err)

	assert.False(t, res.Orders.HasOrderID)
	assert.False(t, res.Orders.HasRegion)
	assert.False(t, res.Orders.HasRevenue) // no quantity column
	assert.True(t, res.Orders.HasProduct)
	assert.Len(t, res.Orders.Items, 2)
}

func TestClean_NilTable(t *testing.T) {
	_, err := Clean(nil, CleanOptions{})
	require.Error(t, err)
}

func TestClean_OrdersTyped(t *testing.T) {
	res, err := Clean(loadRawSales(t), CleanOptions{})
	require.NoError(t, err)

	require.Len(t, res.Orders.Items, 5)
	first := res.Orders.Items[0]
	assert.Equal(t, "1001", first.OrderID)
	assert.Equal(t, "Widget", first.Product)
	assert.Equal(t, "Acme", first.Customer)
	assert.Equal(t, 2, first.Quantity)
	assert.InDelta(t, 10.0, first.Price, 1e-9)
	assert.InDelta(t, 20.0, first.Revenue, 1e-9)
	assert.Equal(t, "2024-01", first.Month())

	// Unparseable date yields zero time and empty month
	last := res.Orders.Items[4]
	assert.True(t, last.Date.IsZero())
	assert.Empty(t, last.Month())
}
