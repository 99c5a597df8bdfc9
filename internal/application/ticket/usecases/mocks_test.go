package usecases

import (
	"context"

	appsync "carelink/internal/application/sync"
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

func (m *mockTicketRepo) Save(ctx context.Context, t *ticket.Ticket) error { return m.SaveFunc(ctx, t) }
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
	SaveFunc           func(ctx context.Context, m *ticket.Message) error
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

func (m *mockUserRepo) Save(ctx context.Context, u *user.User) error { return m.SaveFunc(ctx, u) }
func (m *mockUserRepo) FindByID(ctx context.Context, userID uint) (*user.User, error) {
	return m.FindByIDFunc(ctx, userID)
}
func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return m.FindByEmailFunc(ctx, email)
}

type mockWriteGateway struct {
	CreateTicketFunc   func(ctx context.Context, in appsync.RemoteTicketInput) (int64, error)
	UpdateTicketFunc   func(ctx context.Context, remoteID int64, in appsync.RemoteTicketInput) error
	DeleteTicketFunc   func(ctx context.Context, remoteID int64) error
	PostMessageFunc    func(ctx context.Context, remoteID int64, body string) (int64, error)
	ResolveContactFunc func(ctx context.Context, name, email string) (int64, error)
}

func (m *mockWriteGateway) CreateTicket(ctx context.Context, in appsync.RemoteTicketInput) (int64, error) {
	return m.CreateTicketFunc(ctx, in)
}
func (m *mockWriteGateway) UpdateTicket(ctx context.Context, remoteID int64, in appsync.RemoteTicketInput) error {
	return m.UpdateTicketFunc(ctx, remoteID, in)
}
func (m *mockWriteGateway) DeleteTicket(ctx context.Context, remoteID int64) error {
	return m.DeleteTicketFunc(ctx, remoteID)
}
func (m *mockWriteGateway) PostMessage(ctx context.Context, remoteID int64, body string) (int64, error) {
	return m.PostMessageFunc(ctx, remoteID, body)
}
func (m *mockWriteGateway) ResolveContact(ctx context.Context, name, email string) (int64, error) {
	return m.ResolveContactFunc(ctx, name, email)
}

type mockSyncer struct {
	SyncUserFunc   func(ctx context.Context, userID uint) error
	SyncTicketFunc func(ctx context.Context, ticketID uint) error
}

func (m *mockSyncer) SyncUser(ctx context.Context, userID uint) error {
	return m.SyncUserFunc(ctx, userID)
}
func (m *mockSyncer) SyncTicket(ctx context.Context, ticketID uint) error {
	return m.SyncTicketFunc(ctx, ticketID)
}

type mockContacts struct {
	ResolveFunc func(ctx context.Context, u *user.User) int64
}

func (m *mockContacts) Resolve(ctx context.Context, u *user.User) int64 {
	return m.ResolveFunc(ctx, u)
}

type passthroughTxManager struct{}

func (passthroughTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
