package incidents

import (
	"strings"

	"opsreport/internal/dataset"
	"opsreport/internal/errors"
)

// Column names recognized in the raw incident CSV
const (
	colNumber   = "number"
	colPriority = "priority"
	colGroup    = "assignment_group"
	colAssignee = "assignee"
	colOpenedAt = "opened_at"
	colClosedAt = "closed_at"
	colTTCHours = "ttc_hours"
	colSLA      = "sla_breach"
)

const timestampLayout = "2006-01-02 15:04:05"

// CleanOptions controls the incident fill rules
type CleanOptions struct {
	DefaultPriority    string // fill value for missing priority cells
	UnassignedGroup    string // fill value for missing assignment_group cells
	UnassignedAssignee string // fill value for missing assignee cells
}

// CleanResult holds the cleaned table, the typed tickets derived from it,
// and the cleaning statistics.
type CleanResult struct {
	Table   *dataset.Table
	Tickets Tickets
	Stats   dataset.CleanStats
}

// Clean applies the incident cleaning rules to a raw table:
// exact duplicate rows are dropped, missing priority, assignment group and
// assignee cells are filled with their defaults, timestamps are normalized,
// ttc_hours is coerced to a number and sla_breach to 0/1. Unparseable
// timestamps, durations and flags become empty rather than being filled.
// The input table is not modified.
func Clean(raw *dataset.Table, opts CleanOptions) (*CleanResult, error) {
	if raw == nil || len(raw.Headers) == 0 {
		return nil, errors.NewValidationError("incident input has no columns", nil)
	}
	if opts.DefaultPriority == "" {
		opts.DefaultPriority = "3 - Moderate"
	}
	if opts.UnassignedGroup == "" {
		opts.UnassignedGroup = "Unassigned Group"
	}
	if opts.UnassignedAssignee == "" {
		opts.UnassignedAssignee = "unassigned"
	}

	t := raw.Clone()
	stats := dataset.NewCleanStats(len(t.Rows))
	stats.DuplicatesRemoved = t.Deduplicate()
	stats.Rows = len(t.Rows)

	stats.RecordFill(colPriority, dataset.FillMissing(t, colPriority, opts.DefaultPriority))
	stats.RecordFill(colGroup, dataset.FillMissing(t, colGroup, opts.UnassignedGroup))
	stats.RecordFill(colAssignee, dataset.FillMissing(t, colAssignee, opts.UnassignedAssignee))

	dataset.NormalizeTimeColumn(t, colOpenedAt, timestampLayout)
	dataset.NormalizeTimeColumn(t, colClosedAt, timestampLayout)
	dataset.NormalizeNumericColumn(t, colTTCHours, dataset.FormatFloat)
	normalizeBreachColumn(t)

	tickets := ticketsFromTable(t)

	return &CleanResult{Table: t, Tickets: tickets, Stats: stats}, nil
}

// normalizeBreachColumn rewrites sla_breach cells to "0"/"1".
// Accepts numeric and boolean spellings; anything else becomes empty.
func normalizeBreachColumn(t *dataset.Table) {
	idx := t.ColumnIndex(colSLA)
	if idx < 0 {
		return
	}
	for _, row := range t.Rows {
		breach, ok := parseBreachCell(row[idx])
		switch {
		case !ok:
			row[idx] = ""
		case breach:
			row[idx] = "1"
		default:
			row[idx] = "0"
		}
	}
}

// parseBreachCell parses an sla_breach cell into a boolean
func parseBreachCell(s string) (breach, ok bool) {
	if dataset.IsMissing(s) {
		return false, false
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes":
		return true, true
	case "0", "false", "no":
		return false, true
	}
	if v, valid := dataset.ParseFloatCell(s); valid {
		return v != 0, true
	}
	return false, false
}

// ticketsFromTable builds typed tickets from a cleaned table
func ticketsFromTable(t *dataset.Table) Tickets {
	tickets := Tickets{
		Items:       make([]Ticket, 0, len(t.Rows)),
		HasNumber:   t.HasColumn(colNumber),
		HasPriority: t.HasColumn(colPriority),
		HasGroup:    t.HasColumn(colGroup),
		HasAssignee: t.HasColumn(colAssignee),
		HasTTCCol:   t.HasColumn(colTTCHours),
		HasSLACol:   t.HasColumn(colSLA),
	}

	numberIdx := t.ColumnIndex(colNumber)
	priorityIdx := t.ColumnIndex(colPriority)
	groupIdx := t.ColumnIndex(colGroup)
	assigneeIdx := t.ColumnIndex(colAssignee)
	openedIdx := t.ColumnIndex(colOpenedAt)
	closedIdx := t.ColumnIndex(colClosedAt)
	ttcIdx := t.ColumnIndex(colTTCHours)
	slaIdx := t.ColumnIndex(colSLA)

	cell := func(row []string, idx int) string {
		if idx < 0 {
			return ""
		}
		return row[idx]
	}

	for _, row := range t.Rows {
		var tk Ticket
		tk.Number = cell(row, numberIdx)
		tk.Priority = cell(row, priorityIdx)
		tk.AssignmentGroup = cell(row, groupIdx)
		tk.Assignee = cell(row, assigneeIdx)
		if ts, ok := dataset.ParseTimeCell(cell(row, openedIdx)); ok {
			tk.OpenedAt = ts
		}
		if ts, ok := dataset.ParseTimeCell(cell(row, closedIdx)); ok {
			tk.ClosedAt = ts
		}
		if v, ok := dataset.ParseFloatCell(cell(row, ttcIdx)); ok {
			tk.TTCHours = v
			tk.HasTTC = true
		}
		if breach, ok := parseBreachCell(cell(row, slaIdx)); ok {
			tk.SLABreach = breach
			tk.HasSLA = true
		}
		tickets.Items = append(tickets.Items, tk)
	}

	return tickets
}
