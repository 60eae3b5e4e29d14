package sales

import (
	"fmt"
	"strings"

	"opsreport/internal/dataset"
	"opsreport/internal/profile"
	"opsreport/internal/report"
)

// ReportTitle is the document title of the sales summary PDF
const ReportTitle = "Enterprise Sales Summary"

// BuildReport composes the sales summary PDF document.
// chartPath embeds the top-products chart when non-empty; prof, when
// present, is rendered as a data quality appendix.
func BuildReport(m Metrics, stats dataset.CleanStats, chartPath string, prof *profile.Profile) (*report.Document, error) {
	doc := report.NewDocument(ReportTitle)

	doc.AddParagraph(summaryText(m, stats))

	doc.AddHeading("Core Sales KPIs")
	doc.AddTable([]string{"Metric", "Value"}, kpiRows(m, stats))

	if len(m.ByRegion) > 0 {
		doc.AddHeading("Revenue by Region")
		rows := make([][]string, len(m.ByRegion))
		for i, r := range m.ByRegion {
			rows[i] = []string{r.Region, report.Money(r.Revenue)}
		}
		doc.AddTable([]string{"Region", "Revenue"}, rows)
	}

	if len(m.TopProducts) > 0 {
		doc.AddHeading(fmt.Sprintf("Top %d Products by Revenue", len(m.TopProducts)))
		if chartPath != "" {
			if err := doc.AddImage(chartPath, 170); err != nil {
				return nil, err
			}
		}
		rows := make([][]string, len(m.TopProducts))
		for i, p := range m.TopProducts {
			rows[i] = []string{p.Product, report.Money(p.Revenue)}
		}
		doc.AddTable([]string{"Product", "Revenue"}, rows)
	}

	if len(m.TopCustomers) > 0 {
		doc.AddHeading(fmt.Sprintf("Top %d Customers by Revenue", len(m.TopCustomers)))
		rows := make([][]string, len(m.TopCustomers))
		for i, c := range m.TopCustomers {
			rows[i] = []string{c.Customer, report.Money(c.Revenue)}
		}
		doc.AddTable([]string{"Customer", "Revenue"}, rows)
	}

	report.AddProfileAppendix(doc, prof)

	return doc, nil
}

// WritePDF builds the sales report and writes it to path
func WritePDF(m Metrics, stats dataset.CleanStats, chartPath, path string, prof *profile.Profile) error {
	doc, err := BuildReport(m, stats, chartPath, prof)
	if err != nil {
		return err
	}
	return doc.WriteFile(path)
}

// summaryText renders the executive summary paragraph
func summaryText(m Metrics, stats dataset.CleanStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "This report analyzes %s deals after cleaning %s rows and removing %s duplicate records from the original dataset of %s rows. ",
		report.Count(m.Deals), report.Count(stats.Rows), report.Count(stats.DuplicatesRemoved), report.Count(stats.RawRows))

	if m.HasRevenue {
		fmt.Fprintf(&b, "Total revenue over the period is approximately %s. ", report.Money(m.TotalRevenue))
		fmt.Fprintf(&b, "The average deal size is %s. ", report.Money(m.AvgDealSize))
	}
	if m.HasCustomerValue {
		fmt.Fprintf(&b, "Average revenue per customer (CLTV over this data window) is about %s. ", report.Money(m.AvgCustomerValue))
	}
	if m.RevenueGrowthPct != nil {
		fmt.Fprintf(&b, "Recent month-over-month revenue growth is %s. ", report.Percent(*m.RevenueGrowthPct))
	}
	if m.ChurnRatePct != nil {
		fmt.Fprintf(&b, "Estimated customer churn between the last two months is %s.", report.Percent(*m.ChurnRatePct))
	}
	return strings.TrimSpace(b.String())
}

// kpiRows builds the core KPI table rows
func kpiRows(m Metrics, stats dataset.CleanStats) [][]string {
	rows := [][]string{
		{"Deals (orders)", report.Count(m.Deals)},
		{"Rows (raw)", report.Count(stats.RawRows)},
		{"Rows (clean)", report.Count(stats.Rows)},
		{"Removed duplicates", report.Count(stats.DuplicatesRemoved)},
	}
	if m.HasRevenue {
		rows = append(rows,
			[]string{"Total revenue", report.Money(m.TotalRevenue)},
			[]string{"Average deal size", report.Money(m.AvgDealSize)},
		)
	}
	if m.HasCustomerValue {
		rows = append(rows, []string{"Avg CLTV (data window)", report.Money(m.AvgCustomerValue)})
	}
	if m.RevenueGrowthPct != nil {
		rows = append(rows, []string{"MoM revenue growth", report.Percent(*m.RevenueGrowthPct)})
	}
	if m.ChurnRatePct != nil {
		rows = append(rows, []string{"Customer churn (last 2 months)", report.Percent(*m.ChurnRatePct)})
	}
	return rows
}
