package usecases

import (
	"context"

	"carelink/internal/application/ticket/dto"
	"carelink/internal/domain/ticket"
	"carelink/internal/shared/errors"
	"carelink/internal/shared/logger"
)

type SyncTicketsQuery struct {
	UserID uint
}

// SyncTicketsUseCase runs an explicit reconciliation pass for one user
// and returns the refreshed ticket list. Unlike the read paths, a sync
// failure here is surfaced instead of degraded.
type SyncTicketsUseCase struct {
	ticketRepo ticket.TicketRepository
	syncer     TicketSyncer
	logger     logger.Interface
}

func NewSyncTicketsUseCase(
	ticketRepo ticket.TicketRepository,
	syncer TicketSyncer,
	logger logger.Interface,
) *SyncTicketsUseCase {
	return &SyncTicketsUseCase{
		ticketRepo: ticketRepo,
		syncer:     syncer,
		logger:     logger,
	}
}

func (uc *SyncTicketsUseCase) Execute(ctx context.Context, query SyncTicketsQuery) ([]dto.TicketListItemDTO, error) {
	if err := uc.syncer.SyncUser(ctx, query.UserID); err != nil {
		uc.logger.Errorw("requested ticket sync failed", "user_id", query.UserID, "error", err)
		return nil, errors.NewUnavailableError("ticket sync is currently unavailable")
	}

	tickets, err := uc.ticketRepo.ListByOwner(ctx, query.UserID, ticket.Filter{})
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "user_id", query.UserID, "error", err)
		return nil, errors.NewInternalError("failed to list tickets")
	}

	items := make([]dto.TicketListItemDTO, 0, len(tickets))
	for _, t := range tickets {
		items = append(items, dto.ToTicketListItemDTO(t))
	}
	return items, nil
}
