package usecases

import (
	"context"
	"time"

	appsync "carelink/internal/application/sync"
	"carelink/internal/domain/ticket"
	vo "carelink/internal/domain/ticket/valueobjects"
	"carelink/internal/domain/user"
	"carelink/internal/shared/errors"
	"carelink/internal/shared/logger"
)

type CreateTicketCommand struct {
	Title       string
	Description string
	Priority    string
	OwnerID     uint
}

type CreateTicketResult struct {
	TicketID  uint
	RemoteID  *int64
	Status    string
	CreatedAt time.Time
}

// CreateTicketUseCase opens a ticket remote-first: the helpdesk record
// is created before the local one so the local row is born linked.
// When the remote is down the ticket is still created locally,
// unlinked.
type CreateTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	userRepo   user.UserRepository
	gateway    appsync.WriteGateway
	contacts   ContactResolver
	txManager  TransactionManager
	logger     logger.Interface
}

func NewCreateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	userRepo user.UserRepository,
	gateway appsync.WriteGateway,
	contacts ContactResolver,
	txManager TransactionManager,
	logger logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		gateway:    gateway,
		contacts:   contacts,
		txManager:  txManager,
		logger:     logger,
	}
}

func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*CreateTicketResult, error) {
	uc.logger.Infow("executing create ticket use case", "title", cmd.Title, "owner_id", cmd.OwnerID)

	priority := vo.Priority(cmd.Priority)
	if cmd.Priority == "" {
		priority = vo.PriorityNormal
	}

	newTicket, err := ticket.NewTicket(cmd.Title, cmd.Description, priority, cmd.OwnerID)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	owner, err := uc.userRepo.FindByID(ctx, cmd.OwnerID)
	if err != nil {
		uc.logger.Errorw("failed to load ticket owner", "owner_id", cmd.OwnerID, "error", err)
		return nil, errors.NewInternalError("failed to load user")
	}
	if owner == nil {
		return nil, errors.NewNotFoundError("user not found")
	}

	if remoteID, ok := uc.createRemote(ctx, newTicket, owner); ok {
		if err := newTicket.LinkRemote(remoteID); err != nil {
			return nil, errors.NewInternalError(err.Error())
		}
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		return uc.ticketRepo.Save(txCtx, newTicket)
	})
	if err != nil {
		uc.logger.Errorw("failed to save ticket", "error", err)
		return nil, errors.NewInternalError("failed to save ticket")
	}

	return &CreateTicketResult{
		TicketID:  newTicket.ID(),
		RemoteID:  newTicket.RemoteID(),
		Status:    newTicket.Status().String(),
		CreatedAt: newTicket.CreatedAt(),
	}, nil
}

// createRemote pushes the new ticket to the helpdesk. Failures degrade
// to a local-only ticket instead of failing the whole request.
func (uc *CreateTicketUseCase) createRemote(ctx context.Context, t *ticket.Ticket, owner *user.User) (int64, bool) {
	contactID := uc.contacts.Resolve(ctx, owner)

	remoteID, err := uc.gateway.CreateTicket(ctx, appsync.RemoteTicketInput{
		Name:        t.Title(),
		Description: t.Description(),
		Priority:    t.Priority().String(),
		ContactID:   contactID,
	})
	if err != nil {
		uc.logger.Warnw("remote ticket creation failed, keeping ticket local",
			"title", t.Title(), "error", err)
		return 0, false
	}
	return remoteID, true
}
