package usecases

import (
	"context"

	"carelink/internal/application/ticket/dto"
	"carelink/internal/domain/ticket"
	vo "carelink/internal/domain/ticket/valueobjects"
	"carelink/internal/shared/errors"
	"carelink/internal/shared/logger"
)

type ListTicketsQuery struct {
	UserID   uint
	Status   string
	Priority string
}

// ListTicketsUseCase lists the caller's tickets, pulling their remote
// ticket list first so tickets opened by phone or email show up too.
type ListTicketsUseCase struct {
	ticketRepo ticket.TicketRepository
	syncer     TicketSyncer
	logger     logger.Interface
}

func NewListTicketsUseCase(
	ticketRepo ticket.TicketRepository,
	syncer TicketSyncer,
	logger logger.Interface,
) *ListTicketsUseCase {
	return &ListTicketsUseCase{
		ticketRepo: ticketRepo,
		syncer:     syncer,
		logger:     logger,
	}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, query ListTicketsQuery) ([]dto.TicketListItemDTO, error) {
	if err := uc.syncer.SyncUser(ctx, query.UserID); err != nil {
		uc.logger.Warnw("on-demand user sync failed, serving cached data",
			"user_id", query.UserID, "error", err)
	}

	filter := ticket.Filter{}
	if query.Status != "" {
		status, err := vo.NewTicketStatus(query.Status)
		if err != nil {
			return nil, errors.NewValidationError("invalid status filter")
		}
		filter.Status = status
	}
	if query.Priority != "" {
		priority, err := vo.NewPriority(query.Priority)
		if err != nil {
			return nil, errors.NewValidationError("invalid priority filter")
		}
		filter.Priority = priority
	}

	tickets, err := uc.ticketRepo.ListByOwner(ctx, query.UserID, filter)
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
