package incidents

import "time"

// Ticket is one cleaned incident row
type Ticket struct {
	Number          string
	Priority        string
	AssignmentGroup string
	Assignee        string
	OpenedAt        time.Time // zero when unknown
	ClosedAt        time.Time // zero when still open or unknown
	TTCHours        float64   // time to close, valid only when HasTTC
	HasTTC          bool
	SLABreach       bool // valid only when HasSLA
	HasSLA          bool
}

// Tickets is the cleaned incident dataset together with which optional
// columns were present in the input.
type Tickets struct {
	Items       []Ticket
	HasNumber   bool
	HasPriority bool
	HasGroup    bool
	HasAssignee bool
	HasTTCCol   bool
	HasSLACol   bool
}

// Closed reports whether the ticket has a known close time
func (t Ticket) Closed() bool {
	return !t.ClosedAt.IsZero()
}
