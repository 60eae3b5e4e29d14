package incidents

import (
	"fmt"
	"strings"

	"opsreport/internal/dataset"
	"opsreport/internal/profile"
	"opsreport/internal/report"
)

// ReportTitle is the document title of the incident summary PDF
const ReportTitle = "ServiceNow Incident Health Report"

// BuildReport composes the incident summary PDF document.
// chartPath embeds the breach-by-priority chart when non-empty; prof,
// when present, is rendered as a data quality appendix.
func BuildReport(m Metrics, stats dataset.CleanStats, chartPath string, prof *profile.Profile) (*report.Document, error) {
	doc := report.NewDocument(ReportTitle)

	doc.AddParagraph(summaryText(m, stats))

	doc.AddHeading("Core Incident KPIs")
	doc.AddTable([]string{"Metric", "Value"}, kpiRows(m, stats))

	if len(m.VolumeByPriority) > 0 {
		doc.AddHeading("Ticket Volume by Priority")
		rows := make([][]string, len(m.VolumeByPriority))
		for i, v := range m.VolumeByPriority {
			rows[i] = []string{v.Priority, report.Count(v.Count)}
		}
		doc.AddTable([]string{"Priority", "Tickets"}, rows)
	}

	if len(m.BreachByPriority) > 0 {
		doc.AddHeading("SLA Breach Rate by Priority")
		if chartPath != "" {
			if err := doc.AddImage(chartPath, 170); err != nil {
				return nil, err
			}
		}
		rows := make([][]string, len(m.BreachByPriority))
		for i, b := range m.BreachByPriority {
			rows[i] = []string{b.Priority, report.Percent(b.BreachRatePct)}
		}
		doc.AddTable([]string{"Priority", "Breach rate"}, rows)
	}

	if len(m.TopGroupsByMTTR) > 0 {
		doc.AddHeading(fmt.Sprintf("Top %d Assignment Groups by MTTR", len(m.TopGroupsByMTTR)))
		rows := make([][]string, len(m.TopGroupsByMTTR))
		for i, g := range m.TopGroupsByMTTR {
			rows[i] = []string{g.Group, report.Hours(g.MTTRHours), report.Count(g.Closed)}
		}
		doc.AddTable([]string{"Assignment group", "MTTR", "Closed tickets"}, rows)
	}

	report.AddProfileAppendix(doc, prof)

	return doc, nil
}

// WritePDF builds the incident report and writes it to path
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
	fmt.Fprintf(&b, "This report covers %s incidents after cleaning %s rows and removing %s duplicate records from the original dataset of %s rows. ",
		report.Count(m.Total), report.Count(stats.Rows), report.Count(stats.DuplicatesRemoved), report.Count(stats.RawRows))
	fmt.Fprintf(&b, "%s tickets are closed and %s remain open, a resolution rate of %s. ",
		report.Count(m.Closed), report.Count(m.Open), report.Percent(m.ResolvedRatePct))

	if m.BreachRatePct != nil {
		fmt.Fprintf(&b, "The overall SLA breach rate is %s. ", report.Percent(*m.BreachRatePct))
	}
	if m.MTTRHours != nil {
		fmt.Fprintf(&b, "Mean time to close over resolved tickets is %s", report.Hours(*m.MTTRHours))
		if m.P90TTCHours != nil {
			fmt.Fprintf(&b, ", with 90%% of them closed within %s", report.Hours(*m.P90TTCHours))
		}
		b.WriteString(".")
	}
	return strings.TrimSpace(b.String())
}

// kpiRows builds the core KPI table rows
func kpiRows(m Metrics, stats dataset.CleanStats) [][]string {
	rows := [][]string{
		{"Tickets", report.Count(m.Total)},
		{"Rows (raw)", report.Count(stats.RawRows)},
		{"Removed duplicates", report.Count(stats.DuplicatesRemoved)},
		{"Closed", report.Count(m.Closed)},
		{"Open", report.Count(m.Open)},
		{"Resolution rate", report.Percent(m.ResolvedRatePct)},
	}
	if m.BreachRatePct != nil {
		rows = append(rows, []string{"SLA breach rate", report.Percent(*m.BreachRatePct)})
	}
	if m.MTTRHours != nil {
		rows = append(rows, []string{"MTTR (closed tickets)", report.Hours(*m.MTTRHours)})
	}
	if m.P90TTCHours != nil {
		rows = append(rows, []string{"P90 time to close", report.Hours(*m.P90TTCHours)})
	}
	return rows
}
