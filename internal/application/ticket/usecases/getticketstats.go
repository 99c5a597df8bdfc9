package usecases

import (
	"context"

	"carelink/internal/application/ticket/dto"
	"carelink/internal/domain/ticket"
	"carelink/internal/shared/errors"
	"carelink/internal/shared/logger"
)

type GetTicketStatsQuery struct {
	UserID uint
}

type GetTicketStatsUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewGetTicketStatsUseCase(ticketRepo ticket.TicketRepository, logger logger.Interface) *GetTicketStatsUseCase {
	return &GetTicketStatsUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *GetTicketStatsUseCase) Execute(ctx context.Context, query GetTicketStatsQuery) (*dto.TicketStatsDTO, error) {
	byStatus, total, err := uc.ticketRepo.CountByStatus(ctx, query.UserID)
	if err != nil {
		uc.logger.Errorw("failed to count tickets", "user_id", query.UserID, "error", err)
		return nil, errors.NewInternalError("failed to count tickets")
	}

	stats := &dto.TicketStatsDTO{
		Total:    total,
		ByStatus: make(map[string]int64, len(byStatus)),
	}
	for status, count := range byStatus {
		stats.ByStatus[status.String()] = count
	}
	return stats, nil
}
