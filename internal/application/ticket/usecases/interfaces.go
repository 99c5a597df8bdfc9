package usecases

import (
	"context"

	"carelink/internal/application/ticket/dto"
	"carelink/internal/domain/user"
)

type CreateTicketExecutor interface {
	Execute(ctx context.Context, cmd CreateTicketCommand) (*CreateTicketResult, error)
}

type GetTicketExecutor interface {
	Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error)
}

type ListTicketsExecutor interface {
	Execute(ctx context.Context, query ListTicketsQuery) ([]dto.TicketListItemDTO, error)
}

type UpdateTicketExecutor interface {
	Execute(ctx context.Context, cmd UpdateTicketCommand) (*dto.TicketDTO, error)
}

type DeleteTicketExecutor interface {
	Execute(ctx context.Context, cmd DeleteTicketCommand) error
}

type AddMessageExecutor interface {
	Execute(ctx context.Context, cmd AddMessageCommand) (*dto.MessageDTO, error)
}

type GetTicketStatsExecutor interface {
	Execute(ctx context.Context, query GetTicketStatsQuery) (*dto.TicketStatsDTO, error)
}

type SyncTicketsExecutor interface {
	Execute(ctx context.Context, query SyncTicketsQuery) ([]dto.TicketListItemDTO, error)
}

// TicketSyncer triggers on-demand reconciliation before read paths
// serve data. Satisfied by sync.SyncService.
type TicketSyncer interface {
	SyncUser(ctx context.Context, userID uint) error
	SyncTicket(ctx context.Context, ticketID uint) error
}

// ContactResolver maps a local user to their remote helpdesk contact
// id, 0 when unknown.
type ContactResolver interface {
	Resolve(ctx context.Context, u *user.User) int64
}

// TransactionManager runs a function inside one database transaction.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
