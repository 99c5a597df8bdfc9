package usecases

import (
	"context"

	appsync "carelink/internal/application/sync"
	"carelink/internal/domain/ticket"
	"carelink/internal/shared/errors"
	"carelink/internal/shared/logger"
)

type DeleteTicketCommand struct {
	TicketID uint
	UserID   uint
}

// DeleteTicketUseCase unlinks the remote copy best-effort, then
// removes the local ticket. A remote failure leaves an orphaned remote
// ticket behind but never blocks the local deletion.
type DeleteTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	gateway    appsync.WriteGateway
	txManager  TransactionManager
	logger     logger.Interface
}

func NewDeleteTicketUseCase(
	ticketRepo ticket.TicketRepository,
	gateway appsync.WriteGateway,
	txManager TransactionManager,
	logger logger.Interface,
) *DeleteTicketUseCase {
	return &DeleteTicketUseCase{
		ticketRepo: ticketRepo,
		gateway:    gateway,
		txManager:  txManager,
		logger:     logger,
	}
}

func (uc *DeleteTicketUseCase) Execute(ctx context.Context, cmd DeleteTicketCommand) error {
	t, err := uc.ticketRepo.FindByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to load ticket", "ticket_id", cmd.TicketID, "error", err)
		return errors.NewInternalError("failed to load ticket")
	}
	if t == nil {
		return errors.NewNotFoundError("ticket not found")
	}
	if t.OwnerID() != cmd.UserID {
		return errors.NewForbiddenError("ticket belongs to another user")
	}

	if t.HasRemoteLink() {
		if err := uc.gateway.DeleteTicket(ctx, *t.RemoteID()); err != nil {
			uc.logger.Warnw("remote ticket unlink failed, deleting local copy anyway",
				"ticket_id", t.ID(), "remote_id", *t.RemoteID(), "error", err)
		}
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		return uc.ticketRepo.Delete(txCtx, t.ID())
	})
	if err != nil {
		uc.logger.Errorw("failed to delete ticket", "ticket_id", cmd.TicketID, "error", err)
		return errors.NewInternalError("failed to delete ticket")
	}

	uc.logger.Infow("ticket deleted", "ticket_id", cmd.TicketID, "user_id", cmd.UserID)
	return nil
}
