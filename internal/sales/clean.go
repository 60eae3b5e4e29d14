package sales

import (
	"opsreport/internal/dataset"
	"opsreport/internal/errors"
)

// Column names recognized in the raw sales CSV
const (
	colOrderID  = "order_id"
	colDate     = "date"
	colProduct  = "product"
	colRegion   = "region"
	colCustomer = "customer"
	colQuantity = "quantity"
	colPrice    = "price"

	// Derived columns appended during cleaning
	colOrderDate = "order_date"
	colRevenue   = "revenue"
)

const dateLayout = "2006-01-02"

// CleanOptions controls the sales fill rules
type CleanOptions struct {
	UnknownLabel string // fill value for missing categorical cells
}

// CleanResult holds the cleaned table, the typed orders derived from it,
// and the cleaning statistics.
type CleanResult struct {
	Table  *dataset.Table
	Orders Orders
	Stats  dataset.CleanStats
}

// Clean applies the sales cleaning rules to a raw table:
// exact duplicate rows are dropped, quantity and price are coerced to
// numbers with missing values filled by the column median, categorical
// columns are filled with the unknown label, and order_date plus revenue
// columns are derived. The input table is not modified.
func Clean(raw *dataset.Table, opts CleanOptions) (*CleanResult, error) {
	if raw == nil || len(raw.Headers) == 0 {
		return nil, errors.NewValidationError("sales input has no columns", nil)
	}
	if opts.UnknownLabel == "" {
		opts.UnknownLabel = "Unknown"
	}

	t := raw.Clone()
	stats := dataset.NewCleanStats(len(t.Rows))
	stats.DuplicatesRemoved = t.Deduplicate()
	stats.Rows = len(t.Rows)

	// Numeric coercion with median fill
	if t.HasColumn(colQuantity) {
		filled, _ := dataset.FillNumericMedian(t, colQuantity, dataset.FormatInt)
		stats.RecordFill(colQuantity, filled)
	}
	if t.HasColumn(colPrice) {
		filled, _ := dataset.FillNumericMedian(t, colPrice, dataset.FormatFloat)
		stats.RecordFill(colPrice, filled)
	}

	// Categorical fills
	for _, col := range []string{colProduct, colRegion, colCustomer} {
		stats.RecordFill(col, dataset.FillMissing(t, col, opts.UnknownLabel))
	}

	// Derived order_date column
	orderDates := make([]string, len(t.Rows))
	if idx := t.ColumnIndex(colDate); idx >= 0 {
		for i, row := range t.Rows {
			if ts, ok := dataset.ParseTimeCell(row[idx]); ok {
				orderDates[i] = ts.Format(dateLayout)
			}
		}
	}
	if err := t.AppendColumn(colOrderDate, orderDates); err != nil {
		return nil, err
	}

	// Derived revenue column
	hasRevenue := t.HasColumn(colQuantity) && t.HasColumn(colPrice)
	if hasRevenue {
		qtyIdx := t.ColumnIndex(colQuantity)
		priceIdx := t.ColumnIndex(colPrice)
		revenues := make([]string, len(t.Rows))
		for i, row := range t.Rows {
			q, _ := dataset.ParseFloatCell(row[qtyIdx])
			p, _ := dataset.ParseFloatCell(row[priceIdx])
			revenues[i] = dataset.FormatFloat(q * p)
		}
		if err := t.AppendColumn(colRevenue, revenues); err != nil {
			return nil, err
		}
	}

	orders, err := ordersFromTable(t, hasRevenue)
	if err != nil {
		return nil, err
	}

	return &CleanResult{Table: t, Orders: orders, Stats: stats}, nil
}

// ordersFromTable builds typed orders from a cleaned table
func ordersFromTable(t *dataset.Table, hasRevenue bool) (Orders, error) {
	orders := Orders{
		Items:       make([]Order, 0, len(t.Rows)),
		HasOrderID:  t.HasColumn(colOrderID),
		HasProduct:  t.HasColumn(colProduct),
		HasRegion:   t.HasColumn(colRegion),
		HasCustomer: t.HasColumn(colCustomer),
		HasRevenue:  hasRevenue,
	}

	idIdx := t.ColumnIndex(colOrderID)
	dateIdx := t.ColumnIndex(colOrderDate)
	productIdx := t.ColumnIndex(colProduct)
	regionIdx := t.ColumnIndex(colRegion)
	customerIdx := t.ColumnIndex(colCustomer)
	qtyIdx := t.ColumnIndex(colQuantity)
	priceIdx := t.ColumnIndex(colPrice)
	revenueIdx := t.ColumnIndex(colRevenue)

	cell := func(row []string, idx int) string {
		if idx < 0 {
			return ""
		}
		return row[idx]
	}

	for _, row := range t.Rows {
		var o Order
		o.OrderID = cell(row, idIdx)
		o.Product = cell(row, productIdx)
		o.Region = cell(row, regionIdx)
		o.Customer = cell(row, customerIdx)
		if ts, ok := dataset.ParseTimeCell(cell(row, dateIdx)); ok {
			o.Date = ts
		}
		if q, ok := dataset.ParseFloatCell(cell(row, qtyIdx)); ok {
			o.Quantity = int(q)
		}
		if p, ok := dataset.ParseFloatCell(cell(row, priceIdx)); ok {
			o.Price = p
		}
		if r, ok := dataset.ParseFloatCell(cell(row, revenueIdx)); ok {
			o.Revenue = r
		}
		orders.Items = append(orders.Items, o)
	}

	return orders, nil
}
