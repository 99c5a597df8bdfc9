package sync

import (
	"context"

	"carelink/internal/domain/ticket"
	vo "carelink/internal/domain/ticket/valueobjects"
	"carelink/internal/domain/user"
)

type mockTicketRepo struct {
	SaveFunc           func(ctx context.Context, t *ticket.Ticket) error
	UpdateFunc         func(ctx context.Context, t *ticket.Ticket) error
	DeleteFunc         func(ctx context.Context, ticketID uint) error
	FindByIDFunc       func(ctx context.Context, ticketID uint) (*ticket.Ticket, error)
	FindByRemoteIDFunc func(ctx context.Context, remoteID int64) (*ticket.Ticket, error)
	ListLinkedFunc     func(ctx context.Context) ([]*ticket.Ticket, error)
	ListByOwnerFunc    func(ctx context.Context, ownerID uint, filter ticket.Filter) ([]*ticket.Ticket, error)
	CountByStatusFunc  func(ctx context.Context, ownerID uint) (map[vo.TicketStatus]int64, int64, error)
}

func (m *mockTicketRepo) Save(ctx context.Context, t *ticket.Ticket) error {
	return m.SaveFunc(ctx, t)
}

func (m *mockTicketRepo) Update(ctx context.Context, t *ticket.Ticket) error {
	return m.UpdateFunc(ctx, t)
}

func (m *mockTicketRepo) Delete(ctx context.Context, ticketID uint) error {
	return m.DeleteFunc(ctx, ticketID)
}

func (m *mockTicketRepo) FindByID(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
	return m.FindByIDFunc(ctx, ticketID)
}

func (m *mockTicketRepo) FindByRemoteID(ctx context.Context, remoteID int64) (*ticket.Ticket, error) {
	return m.FindByRemoteIDFunc(ctx, remoteID)
}

func (m *mockTicketRepo) ListLinked(ctx context.Context) ([]*ticket.Ticket, error) {
	return m.ListLinkedFunc(ctx)
}

func (m *mockTicketRepo) ListByOwner(ctx context.Context, ownerID uint, filter ticket.Filter) ([]*ticket.Ticket, error) {
	return m.ListByOwnerFunc(ctx, ownerID, filter)
}

func (m *mockTicketRepo) CountByStatus(ctx context.Context, ownerID uint) (map[vo.TicketStatus]int64, int64, error) {
	return m.CountByStatusFunc(ctx, ownerID)
}

type mockMessageRepo struct {
	SaveFunc           func(ctx context.Context, msg *ticket.Message) error
	FindByRemoteIDFunc func(ctx context.Context, remoteMessageID int64) (*ticket.Message, error)
	ListByTicketIDFunc func(ctx context.Context, ticketID uint) ([]*ticket.Message, error)
}

func (m *mockMessageRepo) Save(ctx context.Context, msg *ticket.Message) error {
	return m.SaveFunc(ctx, msg)
}

func (m *mockMessageRepo) FindByRemoteID(ctx context.Context, remoteMessageID int64) (*ticket.Message, error) {
	return m.FindByRemoteIDFunc(ctx, remoteMessageID)
}

func (m *mockMessageRepo) ListByTicketID(ctx context.Context, ticketID uint) ([]*ticket.Message, error) {
	return m.ListByTicketIDFunc(ctx, ticketID)
}

type mockUserRepo struct {
	SaveFunc        func(ctx context.Context, u *user.User) error
	FindByIDFunc    func(ctx context.Context, userID uint) (*user.User, error)
	FindByEmailFunc func(ctx context.Context, email string) (*user.User, error)
}

func (m *mockUserRepo) Save(ctx context.Context, u *user.User) error {
	return m.SaveFunc(ctx, u)
}

func (m *mockUserRepo) FindByID(ctx context.Context, userID uint) (*user.User, error) {
	return m.FindByIDFunc(ctx, userID)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return m.FindByEmailFunc(ctx, email)
}

type mockGateway struct {
	GetTicketFunc      func(ctx context.Context, remoteID int64) (*RemoteTicket, error)
	ListTicketsFunc    func(ctx context.Context, contactID int64) ([]RemoteTicket, error)
	ListMessagesFunc   func(ctx context.Context, remoteTicketID int64) ([]RemoteMessage, error)
	ResolveContactFunc func(ctx context.Context, name, email string) (int64, error)
}

func (m *mockGateway) GetTicket(ctx context.Context, remoteID int64) (*RemoteTicket, error) {
	return m.GetTicketFunc(ctx, remoteID)
}

func (m *mockGateway) ListTickets(ctx context.Context, contactID int64) ([]RemoteTicket, error) {
	return m.ListTicketsFunc(ctx, contactID)
}

func (m *mockGateway) ListMessages(ctx context.Context, remoteTicketID int64) ([]RemoteMessage, error) {
	return m.ListMessagesFunc(ctx, remoteTicketID)
}

func (m *mockGateway) ResolveContact(ctx context.Context, name, email string) (int64, error) {
	return m.ResolveContactFunc(ctx, name, email)
}

// memContactStore is an in-memory ContactStore.
type memContactStore struct {
	entries map[string]int64
	getErr  error
}

func newMemContactStore() *memContactStore {
	return &memContactStore{entries: make(map[string]int64)}
}

func (s *memContactStore) Get(ctx context.Context, email string) (int64, error) {
	if s.getErr != nil {
		return 0, s.getErr
	}
	return s.entries[email], nil
}

func (s *memContactStore) Set(ctx context.Context, email string, contactID int64) error {
	s.entries[email] = contactID
	return nil
}

// passthroughTxManager runs the unit directly, without a database.
type passthroughTxManager struct{}

func (passthroughTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
