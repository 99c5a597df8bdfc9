package valueobjects

import (
	"fmt"
	"strings"
)

// TicketStatus is the local workflow status of a ticket. It is derived from
// the remote helpdesk stage label and never set directly by local writes.
type TicketStatus string

const (
	StatusNew        TicketStatus = "new"
	StatusInProgress TicketStatus = "in_progress"
	StatusSolved     TicketStatus = "solved"
	StatusClosed     TicketStatus = "closed"
)

var validTicketStatuses = map[TicketStatus]bool{
	StatusNew:        true,
	StatusInProgress: true,
	StatusSolved:     true,
	StatusClosed:     true,
}

func (ts TicketStatus) String() string {
	return string(ts)
}

func (ts TicketStatus) IsValid() bool {
	return validTicketStatuses[ts]
}

// IsResolved reports whether the status counts as resolved for display.
func (ts TicketStatus) IsResolved() bool {
	return ts == StatusSolved || ts == StatusClosed
}

func NewTicketStatus(s string) (TicketStatus, error) {
	ts := TicketStatus(s)
	if !ts.IsValid() {
		return "", fmt.Errorf("invalid ticket status: %s", s)
	}
	return ts, nil
}

// FromStageLabel maps a remote helpdesk stage label to a local status.
// Matching is case-insensitive substring matching, checked in priority
// order. A label that matches nothing leaves the current status unchanged;
// unknown stages are not an error.
func FromStageLabel(label string, current TicketStatus) TicketStatus {
	l := strings.ToLower(label)
	switch {
	case strings.Contains(l, "closed"):
		return StatusClosed
	case strings.Contains(l, "solved"), strings.Contains(l, "done"):
		return StatusSolved
	case strings.Contains(l, "progress"):
		return StatusInProgress
	case strings.Contains(l, "new"):
		return StatusNew
	default:
		return current
	}
}
