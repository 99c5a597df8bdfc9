package ticket

import (
	"fmt"
	"time"
)

// Message is one entry in a ticket's conversation thread. Messages either
// originate locally (the owner writing through the API) or are imported from
// the remote helpdesk, in which case remoteMessageID is set and unique.
type Message struct {
	id              uint
	ticketID        uint
	remoteMessageID *int64
	body            string
	isFromSupport   bool
	createdAt       time.Time
}

// NewLocalMessage creates a message authored through the local API.
func NewLocalMessage(ticketID uint, body string, isFromSupport bool) (*Message, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("message body is required")
	}

	return &Message{
		ticketID:      ticketID,
		body:          body,
		isFromSupport: isFromSupport,
		createdAt:     time.Now().UTC(),
	}, nil
}

// NewImportedMessage creates a message imported from the remote helpdesk.
// The body must already be normalized to plain text and createdAt carries
// the remote timestamp.
func NewImportedMessage(ticketID uint, remoteMessageID int64, body string, isFromSupport bool, createdAt time.Time) (*Message, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if remoteMessageID == 0 {
		return nil, fmt.Errorf("remote message ID is required")
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("message body is required")
	}

	return &Message{
		ticketID:        ticketID,
		remoteMessageID: &remoteMessageID,
		body:            body,
		isFromSupport:   isFromSupport,
		createdAt:       createdAt.UTC(),
	}, nil
}

func ReconstructMessage(
	id uint,
	ticketID uint,
	remoteMessageID *int64,
	body string,
	isFromSupport bool,
	createdAt time.Time,
) (*Message, error) {
	if id == 0 {
		return nil, fmt.Errorf("message ID cannot be zero")
	}
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}

	return &Message{
		id:              id,
		ticketID:        ticketID,
		remoteMessageID: remoteMessageID,
		body:            body,
		isFromSupport:   isFromSupport,
		createdAt:       createdAt,
	}, nil
}

func (m *Message) ID() uint {
	return m.id
}

func (m *Message) TicketID() uint {
	return m.ticketID
}

func (m *Message) RemoteMessageID() *int64 {
	return m.remoteMessageID
}

func (m *Message) Body() string {
	return m.body
}

func (m *Message) IsFromSupport() bool {
	return m.isFromSupport
}

func (m *Message) CreatedAt() time.Time {
	return m.createdAt
}

func (m *Message) SetID(id uint) error {
	if m.id != 0 {
		return fmt.Errorf("message ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("message ID cannot be zero")
	}
	m.id = id
	return nil
}

// SetRemoteMessageID records the remote id assigned after a successful post
// to the remote helpdesk thread.
func (m *Message) SetRemoteMessageID(remoteID int64) error {
	if m.remoteMessageID != nil {
		return fmt.Errorf("remote message ID is already set")
	}
	if remoteID == 0 {
		return fmt.Errorf("remote message ID cannot be zero")
	}
	m.remoteMessageID = &remoteID
	return nil
}
