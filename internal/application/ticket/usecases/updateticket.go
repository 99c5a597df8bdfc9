package usecases

import (
	"context"

	appsync "carelink/internal/application/sync"
	"carelink/internal/application/ticket/dto"
	"carelink/internal/domain/ticket"
	vo "carelink/internal/domain/ticket/valueobjects"
	"carelink/internal/shared/errors"
	"carelink/internal/shared/logger"
)

type UpdateTicketCommand struct {
	TicketID    uint
	UserID      uint
	Title       string
	Description string
	Priority    string
}

// UpdateTicketUseCase edits a ticket locally and pushes the edit to
// the remote in the same unit. A remote failure rolls the local edit
// back so the two sides cannot drift on local writes.
type UpdateTicketUseCase struct {
	ticketRepo  ticket.TicketRepository
	messageRepo ticket.MessageRepository
	gateway     appsync.WriteGateway
	txManager   TransactionManager
	logger      logger.Interface
}

func NewUpdateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	messageRepo ticket.MessageRepository,
	gateway appsync.WriteGateway,
	txManager TransactionManager,
	logger logger.Interface,
) *UpdateTicketUseCase {
	return &UpdateTicketUseCase{
		ticketRepo:  ticketRepo,
		messageRepo: messageRepo,
		gateway:     gateway,
		txManager:   txManager,
		logger:      logger,
	}
}

func (uc *UpdateTicketUseCase) Execute(ctx context.Context, cmd UpdateTicketCommand) (*dto.TicketDTO, error) {
	t, err := uc.ticketRepo.FindByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to load ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, errors.NewInternalError("failed to load ticket")
	}
	if t == nil {
		return nil, errors.NewNotFoundError("ticket not found")
	}
	if t.OwnerID() != cmd.UserID {
		return nil, errors.NewForbiddenError("ticket belongs to another user")
	}

	if err := t.UpdateDetails(cmd.Title, cmd.Description, vo.Priority(cmd.Priority)); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.ticketRepo.Update(txCtx, t); err != nil {
			return err
		}
		if !t.HasRemoteLink() {
			return nil
		}
		return uc.gateway.UpdateTicket(txCtx, *t.RemoteID(), appsync.RemoteTicketInput{
			Name:        t.Title(),
			Description: t.Description(),
			Priority:    t.Priority().String(),
		})
	})
	if err != nil {
		uc.logger.Errorw("failed to update ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, errors.NewUnavailableError("ticket update could not be applied")
	}

	messages, err := uc.messageRepo.ListByTicketID(ctx, t.ID())
	if err != nil {
		uc.logger.Errorw("failed to load ticket messages", "ticket_id", t.ID(), "error", err)
		return nil, errors.NewInternalError("failed to load ticket messages")
	}
	return dto.ToTicketDTO(t, messages), nil
}
