package usecases

import (
	"context"

	"carelink/internal/application/ticket/dto"
	"carelink/internal/domain/ticket"
	"carelink/internal/shared/errors"
	"carelink/internal/shared/logger"
)

type GetTicketQuery struct {
	TicketID uint
	UserID   uint
}

// GetTicketUseCase serves one ticket with its thread, refreshing it
// from the remote first. A failed refresh degrades to the cached local
// state instead of failing the read.
type GetTicketUseCase struct {
	ticketRepo  ticket.TicketRepository
	messageRepo ticket.MessageRepository
	syncer      TicketSyncer
	logger      logger.Interface
}

func NewGetTicketUseCase(
	ticketRepo ticket.TicketRepository,
	messageRepo ticket.MessageRepository,
	syncer TicketSyncer,
	logger logger.Interface,
) *GetTicketUseCase {
	return &GetTicketUseCase{
		ticketRepo:  ticketRepo,
		messageRepo: messageRepo,
		syncer:      syncer,
		logger:      logger,
	}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error) {
	if err := uc.syncer.SyncTicket(ctx, query.TicketID); err != nil {
		uc.logger.Warnw("on-demand ticket sync failed, serving cached data",
			"ticket_id", query.TicketID, "error", err)
	}

	t, err := uc.ticketRepo.FindByID(ctx, query.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to load ticket", "ticket_id", query.TicketID, "error", err)
		return nil, errors.NewInternalError("failed to load ticket")
	}
	if t == nil {
		return nil, errors.NewNotFoundError("ticket not found")
	}
	if t.OwnerID() != query.UserID {
		return nil, errors.NewForbiddenError("ticket belongs to another user")
	}

	messages, err := uc.messageRepo.ListByTicketID(ctx, t.ID())
	if err != nil {
		uc.logger.Errorw("failed to load ticket messages", "ticket_id", t.ID(), "error", err)
		return nil, errors.NewInternalError("failed to load ticket messages")
	}

	return dto.ToTicketDTO(t, messages), nil
}
