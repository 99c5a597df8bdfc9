package ticket

import (
	"context"

	vo "carelink/internal/domain/ticket/valueobjects"
)

// Filter narrows ticket listings. Zero values mean "no constraint".
type Filter struct {
	Status   vo.TicketStatus
	Priority vo.Priority
}

type TicketRepository interface {
	Save(ctx context.Context, t *Ticket) error
	Update(ctx context.Context, t *Ticket) error
	Delete(ctx context.Context, ticketID uint) error
	FindByID(ctx context.Context, ticketID uint) (*Ticket, error)
	// FindByRemoteID returns nil, nil when no local ticket links the given
	// remote id.
	FindByRemoteID(ctx context.Context, remoteID int64) (*Ticket, error)
	// ListLinked returns every ticket with a remote link, the reconciler's
	// working set.
	ListLinked(ctx context.Context) ([]*Ticket, error)
	ListByOwner(ctx context.Context, ownerID uint, filter Filter) ([]*Ticket, error)
	CountByStatus(ctx context.Context, ownerID uint) (map[vo.TicketStatus]int64, int64, error)
}

type MessageRepository interface {
	Save(ctx context.Context, m *Message) error
	// FindByRemoteID returns nil, nil when the remote message has not been
	// imported yet.
	FindByRemoteID(ctx context.Context, remoteMessageID int64) (*Message, error)
	ListByTicketID(ctx context.Context, ticketID uint) ([]*Message, error)
}
