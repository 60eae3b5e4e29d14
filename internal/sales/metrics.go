package sales

import (
	"sort"

	"opsreport/internal/dataset"
)

// RegionRevenue is total revenue attributed to one region
type RegionRevenue struct {
	Region  string
	Revenue float64
}

// ProductRevenue is total revenue attributed to one product
type ProductRevenue struct {
	Product string
	Revenue float64
}

// CustomerRevenue is total revenue attributed to one customer
type CustomerRevenue struct {
	Customer string
	Revenue  float64
}

// MonthRevenue is total revenue in one "2006-01" month bucket
type MonthRevenue struct {
	Month   string
	Revenue float64
}

// Metrics holds the computed sales KPIs
type Metrics struct {
	Deals            int
	HasRevenue       bool
	TotalRevenue     float64
	AvgDealSize      float64
	AvgCustomerValue float64 // approximate CLTV over the data window
	HasCustomerValue bool

	Monthly          []MonthRevenue // ascending by month
	RevenueGrowthPct *float64       // last month vs previous, nil when undefined
	ChurnRatePct     *float64       // customers lost between the last two months

	ByRegion     []RegionRevenue // descending by revenue
	TopProducts  []ProductRevenue
	TopCustomers []CustomerRevenue
}

// Compute derives all sales KPIs from the cleaned orders.
// topN caps the product and customer rankings.
func Compute(orders Orders, topN int) Metrics {
	if topN <= 0 {
		topN = 10
	}

	m := Metrics{HasRevenue: orders.HasRevenue}
	m.Deals = countDeals(orders)

	if !orders.HasRevenue {
		return m
	}

	revenues := make([]float64, len(orders.Items))
	for i, o := range orders.Items {
		revenues[i] = o.Revenue
	}
	m.TotalRevenue = dataset.Sum(revenues)
	m.AvgDealSize = dataset.Mean(revenues)

	if orders.HasCustomer {
		perCustomer := groupRevenue(orders.Items, func(o Order) string { return o.Customer })
		sums := make([]float64, 0, len(perCustomer))
		for _, v := range perCustomer {
			sums = append(sums, v)
		}
		m.AvgCustomerValue = dataset.Mean(sums)
		m.HasCustomerValue = len(sums) > 0
		m.TopCustomers = topCustomers(perCustomer, topN)
	}

	m.Monthly = monthlyRevenue(orders.Items)
	m.RevenueGrowthPct = revenueGrowth(m.Monthly)
	if orders.HasCustomer {
		m.ChurnRatePct = churnRate(orders.Items, m.Monthly)
	}

	if orders.HasRegion {
		m.ByRegion = regionRevenue(groupRevenue(orders.Items, func(o Order) string { return o.Region }))
	}
	if orders.HasProduct {
		m.TopProducts = topProducts(groupRevenue(orders.Items, func(o Order) string { return o.Product }), topN)
	}

	return m
}

// countDeals counts distinct order IDs, falling back to the row count
func countDeals(orders Orders) int {
	if !orders.HasOrderID {
		return len(orders.Items)
	}
	ids := make(map[string]struct{}, len(orders.Items))
	for _, o := range orders.Items {
		if o.OrderID != "" {
			ids[o.OrderID] = struct{}{}
		}
	}
	return len(ids)
}

// groupRevenue sums revenue per key, skipping empty keys
func groupRevenue(items []Order, key func(Order) string) map[string]float64 {
	groups := make(map[string]float64)
	for _, o := range items {
		k := key(o)
		if k == "" {
			continue
		}
		groups[k] += o.Revenue
	}
	return groups
}

// monthlyRevenue buckets revenue by month for orders with a known date
func monthlyRevenue(items []Order) []MonthRevenue {
	buckets := make(map[string]float64)
	for _, o := range items {
		if month := o.Month(); month != "" {
			buckets[month] += o.Revenue
		}
	}
	months := make([]string, 0, len(buckets))
	for month := range buckets {
		months = append(months, month)
	}
	sort.Strings(months)

	out := make([]MonthRevenue, len(months))
	for i, month := range months {
		out[i] = MonthRevenue{Month: month, Revenue: buckets[month]}
	}
	return out
}

// revenueGrowth computes the percent change of the last month over the
// previous one. Undefined with fewer than two months or a zero base.
func revenueGrowth(monthly []MonthRevenue) *float64 {
	if len(monthly) < 2 {
		return nil
	}
	last := monthly[len(monthly)-1].Revenue
	prev := monthly[len(monthly)-2].Revenue
	if prev == 0 {
		return nil
	}
	growth := (last - prev) / prev * 100.0
	return &growth
}

// churnRate computes the share of previous-month customers that placed no
// order in the last month. Undefined with fewer than two months.
func churnRate(items []Order, monthly []MonthRevenue) *float64 {
	if len(monthly) < 2 {
		return nil
	}
	lastMonth := monthly[len(monthly)-1].Month
	prevMonth := monthly[len(monthly)-2].Month

	customers := func(month string) map[string]struct{} {
		set := make(map[string]struct{})
		for _, o := range items {
			if o.Customer != "" && o.Month() == month {
				set[o.Customer] = struct{}{}
			}
		}
		return set
	}

	prevCustomers := customers(prevMonth)
	if len(prevCustomers) == 0 {
		return nil
	}
	lastCustomers := customers(lastMonth)

	churned := 0
	for c := range prevCustomers {
		if _, active := lastCustomers[c]; !active {
			churned++
		}
	}
	rate := float64(churned) / float64(len(prevCustomers)) * 100.0
	return &rate
}

// regionRevenue ranks all regions by revenue, descending
func regionRevenue(groups map[string]float64) []RegionRevenue {
	out := make([]RegionRevenue, 0, len(groups))
	for region, revenue := range groups {
		out = append(out, RegionRevenue{Region: region, Revenue: revenue})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].Region < out[j].Region
	})
	return out
}

// topProducts ranks products by revenue, descending, capped at n
func topProducts(groups map[string]float64, n int) []ProductRevenue {
	out := make([]ProductRevenue, 0, len(groups))
	for product, revenue := range groups {
		out = append(out, ProductRevenue{Product: product, Revenue: revenue})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].Product < out[j].Product
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// topCustomers ranks customers by revenue, descending, capped at n
func topCustomers(groups map[string]float64, n int) []CustomerRevenue {
	out := make([]CustomerRevenue, 0, len(groups))
	for customer, revenue := range groups {
		out = append(out, CustomerRevenue{Customer: customer, Revenue: revenue})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].Customer < out[j].Customer
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
