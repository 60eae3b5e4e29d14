package incidents

import (
	"sort"

	"opsreport/internal/dataset"
)

// PriorityVolume is the ticket count for one priority label
type PriorityVolume struct {
	Priority string
	Count    int
}

// PriorityBreach is the SLA breach rate for one priority label.
// Known counts the tickets whose breach flag could be parsed.
type PriorityBreach struct {
	Priority      string
	Known         int
	BreachRatePct float64
}

// GroupMTTR is the mean resolution time for one assignment group.
// Closed counts the closed tickets with a known resolution time.
type GroupMTTR struct {
	Group     string
	Closed    int
	MTTRHours float64
}

// Metrics holds the computed incident KPIs
type Metrics struct {
	Total           int
	Closed          int
	Open            int
	ResolvedRatePct float64

	BreachRatePct *float64 // nil when no ticket has a known breach flag
	MTTRHours     *float64 // nil when no closed ticket has a known duration
	P90TTCHours   *float64 // 90th percentile resolution time, same basis as MTTR

	VolumeByPriority []PriorityVolume // ascending by priority label
	BreachByPriority []PriorityBreach // ascending by priority label
	TopGroupsByMTTR  []GroupMTTR      // descending by MTTR, capped
}

// Compute derives all incident KPIs from the cleaned tickets.
// topN caps the assignment-group ranking.
func Compute(tickets Tickets, topN int) Metrics {
	if topN <= 0 {
		topN = 10
	}

	var m Metrics
	m.Total = len(tickets.Items)
	for _, t := range tickets.Items {
		if t.Closed() {
			m.Closed++
		}
	}
	m.Open = m.Total - m.Closed
	if m.Total > 0 {
		m.ResolvedRatePct = float64(m.Closed) / float64(m.Total) * 100.0
	}

	m.BreachRatePct = overallBreachRate(tickets.Items)

	resolution := resolutionHours(tickets.Items)
	if len(resolution) > 0 {
		mttr := dataset.Mean(resolution)
		p90 := dataset.Quantile(0.9, resolution)
		m.MTTRHours = &mttr
		m.P90TTCHours = &p90
	}

	if tickets.HasPriority {
		m.VolumeByPriority = volumeByPriority(tickets.Items)
		if tickets.HasSLACol {
			m.BreachByPriority = breachByPriority(tickets.Items)
		}
	}
	if tickets.HasGroup {
		m.TopGroupsByMTTR = topGroupsByMTTR(tickets.Items, topN)
	}

	return m
}

// overallBreachRate averages the breach flag over tickets with a known flag
func overallBreachRate(items []Ticket) *float64 {
	breached, known := 0, 0
	for _, t := range items {
		if !t.HasSLA {
			continue
		}
		known++
		if t.SLABreach {
			breached++
		}
	}
	if known == 0 {
		return nil
	}
	rate := float64(breached) / float64(known) * 100.0
	return &rate
}

// resolutionHours collects ttc_hours over closed tickets with a known duration
func resolutionHours(items []Ticket) []float64 {
	var out []float64
	for _, t := range items {
		if t.Closed() && t.HasTTC {
			out = append(out, t.TTCHours)
		}
	}
	return out
}

// volumeByPriority counts tickets per priority label, ascending by label
func volumeByPriority(items []Ticket) []PriorityVolume {
	counts := make(map[string]int)
	for _, t := range items {
		if t.Priority != "" {
			counts[t.Priority]++
		}
	}
	labels := sortedKeys(counts)
	out := make([]PriorityVolume, len(labels))
	for i, label := range labels {
		out[i] = PriorityVolume{Priority: label, Count: counts[label]}
	}
	return out
}

// breachByPriority averages the breach flag per priority label, ascending by
// label. Priorities where no ticket has a known flag are omitted.
func breachByPriority(items []Ticket) []PriorityBreach {
	type tally struct{ breached, known int }
	tallies := make(map[string]*tally)
	for _, t := range items {
		if t.Priority == "" || !t.HasSLA {
			continue
		}
		g, ok := tallies[t.Priority]
		if !ok {
			g = &tally{}
			tallies[t.Priority] = g
		}
		g.known++
		if t.SLABreach {
			g.breached++
		}
	}

	labels := make([]string, 0, len(tallies))
	for label := range tallies {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	out := make([]PriorityBreach, len(labels))
	for i, label := range labels {
		g := tallies[label]
		out[i] = PriorityBreach{
			Priority:      label,
			Known:         g.known,
			BreachRatePct: float64(g.breached) / float64(g.known) * 100.0,
		}
	}
	return out
}

// topGroupsByMTTR ranks assignment groups by mean resolution time over their
// closed tickets with a known duration, descending, capped at n. Groups with
// no eligible tickets are omitted.
func topGroupsByMTTR(items []Ticket, n int) []GroupMTTR {
	hours := make(map[string][]float64)
	for _, t := range items {
		if t.AssignmentGroup == "" || !t.Closed() || !t.HasTTC {
			continue
		}
		hours[t.AssignmentGroup] = append(hours[t.AssignmentGroup], t.TTCHours)
	}

	out := make([]GroupMTTR, 0, len(hours))
	for group, xs := range hours {
		out = append(out, GroupMTTR{Group: group, Closed: len(xs), MTTRHours: dataset.Mean(xs)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MTTRHours != out[j].MTTRHours {
			return out[i].MTTRHours > out[j].MTTRHours
		}
		return out[i].Group < out[j].Group
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// sortedKeys returns the map keys in ascending order
func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
