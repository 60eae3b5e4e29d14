package sales

import "time"

// Order is one cleaned sales transaction row
type Order struct {
	OrderID  string
	Date     time.Time // zero when the date could not be parsed
	Product  string
	Region   string
	Customer string
	Quantity int
	Price    float64
	Revenue  float64
}

// Orders is the cleaned sales dataset together with which optional columns
// were present in the input.
type Orders struct {
	Items       []Order
	HasOrderID  bool
	HasProduct  bool
	HasRegion   bool
	HasCustomer bool
	HasRevenue  bool
}

// Month returns the order's month bucket as "2006-01", empty when unknown
func (o Order) Month() string {
	if o.Date.IsZero() {
		return ""
	}
	return o.Date.Format("2006-01")
}
