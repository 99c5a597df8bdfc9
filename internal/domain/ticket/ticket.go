package ticket

import (
	"fmt"
	"time"

	vo "carelink/internal/domain/ticket/valueobjects"
)

// Ticket is a locally stored support ticket, optionally mirrored into the
// remote helpdesk. When a remote link exists the remote system owns title,
// description, priority and workflow stage; the local store owns identity,
// ownership and the imported message history.
type Ticket struct {
	id            uint
	title         string
	description   string
	priority      vo.Priority
	status        vo.TicketStatus
	isResolved    bool
	remoteID      *int64
	remoteStageID int64
	ownerID       uint
	createdAt     time.Time
	updatedAt     time.Time
}

func NewTicket(title, description string, priority vo.Priority, ownerID uint) (*Ticket, error) {
	if len(title) == 0 {
		return nil, fmt.Errorf("title is required")
	}
	if len(title) > 200 {
		return nil, fmt.Errorf("title exceeds maximum length of 200 characters")
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if ownerID == 0 {
		return nil, fmt.Errorf("owner ID is required")
	}

	now := time.Now().UTC()
	return &Ticket{
		title:       title,
		description: description,
		priority:    priority,
		status:      vo.StatusNew,
		ownerID:     ownerID,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructTicket(
	id uint,
	title string,
	description string,
	priority vo.Priority,
	status vo.TicketStatus,
	isResolved bool,
	remoteID *int64,
	remoteStageID int64,
	ownerID uint,
	createdAt, updatedAt time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if len(title) == 0 {
		return nil, fmt.Errorf("title is required")
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status")
	}
	if ownerID == 0 {
		return nil, fmt.Errorf("owner ID is required")
	}

	return &Ticket{
		id:            id,
		title:         title,
		description:   description,
		priority:      priority,
		status:        status,
		isResolved:    isResolved,
		remoteID:      remoteID,
		remoteStageID: remoteStageID,
		ownerID:       ownerID,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}, nil
}

func (t *Ticket) ID() uint {
	return t.id
}

func (t *Ticket) Title() string {
	return t.title
}

func (t *Ticket) Description() string {
	return t.description
}

func (t *Ticket) Priority() vo.Priority {
	return t.priority
}

func (t *Ticket) Status() vo.TicketStatus {
	return t.status
}

func (t *Ticket) IsResolved() bool {
	return t.isResolved
}

// RemoteID returns the remote helpdesk ticket id, or nil when the ticket
// has never been mirrored. It is set once and immutable thereafter.
func (t *Ticket) RemoteID() *int64 {
	return t.remoteID
}

func (t *Ticket) RemoteStageID() int64 {
	return t.remoteStageID
}

func (t *Ticket) OwnerID() uint {
	return t.ownerID
}

func (t *Ticket) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Ticket) UpdatedAt() time.Time {
	return t.updatedAt
}

func (t *Ticket) HasRemoteLink() bool {
	return t.remoteID != nil
}

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

// LinkRemote records the remote helpdesk ticket id. The link is the join key
// for reconciliation and can only be established once.
func (t *Ticket) LinkRemote(remoteID int64) error {
	if t.remoteID != nil {
		return fmt.Errorf("ticket is already linked to remote ticket %d", *t.remoteID)
	}
	if remoteID == 0 {
		return fmt.Errorf("remote ticket ID cannot be zero")
	}
	t.remoteID = &remoteID
	t.updatedAt = time.Now().UTC()
	return nil
}

// ApplyRemoteFields overwrites the mirrored fields from the remote snapshot.
// The remote system always wins for these fields. Returns true when any
// field actually changed.
func (t *Ticket) ApplyRemoteFields(title, description string, priority vo.Priority) bool {
	changed := false
	if title != "" && title != t.title {
		t.title = title
		changed = true
	}
	if description != t.description {
		t.description = description
		changed = true
	}
	if priority.IsValid() && priority != t.priority {
		t.priority = priority
		changed = true
	}
	if changed {
		t.updatedAt = time.Now().UTC()
	}
	return changed
}

// ApplyRemoteStage records a remote stage observation. Stage ids are opaque;
// when the id is unchanged the status recompute is skipped entirely. When it
// changed, the status is rederived from the stage label and isResolved is
// recomputed from the resulting status, so it can flip back to false if the
// remote stage regressed.
func (t *Ticket) ApplyRemoteStage(stageID int64, stageLabel string) (stageChanged, statusChanged bool) {
	if stageID == t.remoteStageID {
		return false, false
	}

	t.remoteStageID = stageID
	newStatus := vo.FromStageLabel(stageLabel, t.status)
	statusChanged = newStatus != t.status
	t.status = newStatus
	t.isResolved = newStatus.IsResolved()
	t.updatedAt = time.Now().UTC()
	return true, statusChanged
}

// UpdateDetails applies a local edit of the mirrored fields. Used by the
// local write path; the next reconciliation may overwrite them again.
func (t *Ticket) UpdateDetails(title, description string, priority vo.Priority) error {
	if len(title) == 0 {
		return fmt.Errorf("title is required")
	}
	if len(title) > 200 {
		return fmt.Errorf("title exceeds maximum length of 200 characters")
	}
	if !priority.IsValid() {
		return fmt.Errorf("invalid priority")
	}
	t.title = title
	t.description = description
	t.priority = priority
	t.updatedAt = time.Now().UTC()
	return nil
}

// Touch bumps the modification timestamp without changing any field.
func (t *Ticket) Touch() {
	t.updatedAt = time.Now().UTC()
}
