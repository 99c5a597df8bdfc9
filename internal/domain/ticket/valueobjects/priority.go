package valueobjects

import "fmt"

// Priority is the remote helpdesk priority code ("0" lowest to "3" urgent).
// The code is mirrored verbatim so local and remote sorting agree.
type Priority string

const (
	PriorityLow    Priority = "0"
	PriorityNormal Priority = "1"
	PriorityHigh   Priority = "2"
	PriorityUrgent Priority = "3"
)

var priorityLabels = map[Priority]string{
	PriorityLow:    "Low",
	PriorityNormal: "Normal",
	PriorityHigh:   "High",
	PriorityUrgent: "Urgent",
}

func (p Priority) String() string {
	return string(p)
}

func (p Priority) IsValid() bool {
	_, ok := priorityLabels[p]
	return ok
}

func (p Priority) Label() string {
	if label, ok := priorityLabels[p]; ok {
		return label
	}
	return string(p)
}

func NewPriority(s string) (Priority, error) {
	p := Priority(s)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid priority: %s", s)
	}
	return p, nil
}
