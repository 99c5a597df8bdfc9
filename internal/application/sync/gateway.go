package sync

import "context"

// RemoteTicket is a read snapshot of a helpdesk ticket on the remote
// side. String fields are already cleaned of the remote "false" marker
// and arrive empty when the remote never set them.
type RemoteTicket struct {
	ID          int64
	Name        string
	Description string
	Priority    string
	StageID     int64
	StageName   string
	ContactID   int64
}

// RemoteMessage is a raw discussion entry fetched from the remote
// ticket thread. Date keeps the remote wire format; the importer owns
// parsing it.
type RemoteMessage struct {
	ID         int64
	Body       string
	Date       string
	AuthorID   int64
	AuthorName string
}

// RemoteTicketInput carries the writable ticket fields pushed to the
// remote helpdesk on create and update.
type RemoteTicketInput struct {
	Name        string
	Description string
	Priority    string
	ContactID   int64
}

// ReadGateway exposes the remote read operations the sync pipeline
// needs. GetTicket returns (nil, nil) when the remote record no longer
// exists.
type ReadGateway interface {
	GetTicket(ctx context.Context, remoteID int64) (*RemoteTicket, error)
	ListTickets(ctx context.Context, contactID int64) ([]RemoteTicket, error)
	ListMessages(ctx context.Context, remoteTicketID int64) ([]RemoteMessage, error)
	ResolveContact(ctx context.Context, name, email string) (int64, error)
}

// WriteGateway exposes the remote write operations used by the ticket
// use cases. PostMessage returns the id of the created remote message.
type WriteGateway interface {
	CreateTicket(ctx context.Context, in RemoteTicketInput) (int64, error)
	UpdateTicket(ctx context.Context, remoteID int64, in RemoteTicketInput) error
	DeleteTicket(ctx context.Context, remoteID int64) error
	PostMessage(ctx context.Context, remoteID int64, body string) (int64, error)
	ResolveContact(ctx context.Context, name, email string) (int64, error)
}

// Gateway is the full remote surface implemented by the helpdesk
// client.
type Gateway interface {
	ReadGateway
	WriteGateway
}
