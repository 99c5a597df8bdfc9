package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carelink/internal/domain/ticket"
	vo "carelink/internal/domain/ticket/valueobjects"
	sharederrors "carelink/internal/shared/errors"
	"carelink/internal/shared/logger"
)

func TestListTicketsSyncsUserFirst(t *testing.T) {
	synced := false
	syncer := &mockSyncer{
		SyncUserFunc: func(ctx context.Context, id uint) error {
			synced = true
			return nil
		},
	}
	var gotFilter ticket.Filter
	tickets := &mockTicketRepo{
		ListByOwnerFunc: func(ctx context.Context, ownerID uint, filter ticket.Filter) ([]*ticket.Ticket, error) {
			gotFilter = filter
			return []*ticket.Ticket{fixtureLinkedTicket(t, 5, 42, ownerID)}, nil
		},
	}

	uc := NewListTicketsUseCase(tickets, syncer, logger.NewLogger())
	items, err := uc.Execute(context.Background(), ListTicketsQuery{
		UserID: 9, Status: "in_progress", Priority: "1",
	})
	require.NoError(t, err)

	assert.True(t, synced)
	assert.Equal(t, vo.StatusInProgress, gotFilter.Status)
	assert.Equal(t, vo.PriorityNormal, gotFilter.Priority)
	require.Len(t, items, 1)
	assert.Equal(t, "Printer on fire", items[0].Title)
}

func TestListTicketsServesCachedDataWhenSyncFails(t *testing.T) {
	syncer := &mockSyncer{
		SyncUserFunc: func(ctx context.Context, id uint) error { return errors.New("backend down") },
	}
	tickets := &mockTicketRepo{
		ListByOwnerFunc: func(ctx context.Context, ownerID uint, filter ticket.Filter) ([]*ticket.Ticket, error) {
			return []*ticket.Ticket{fixtureLinkedTicket(t, 5, 42, ownerID)}, nil
		},
	}

	uc := NewListTicketsUseCase(tickets, syncer, logger.NewLogger())
	items, err := uc.Execute(context.Background(), ListTicketsQuery{UserID: 9})
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestListTicketsRejectsBadFilters(t *testing.T) {
	syncer := &mockSyncer{
		SyncUserFunc: func(ctx context.Context, id uint) error { return nil },
	}
	uc := NewListTicketsUseCase(&mockTicketRepo{}, syncer, logger.NewLogger())

	_, err := uc.Execute(context.Background(), ListTicketsQuery{UserID: 9, Status: "open"})
	require.Error(t, err)
	appErr, ok := sharederrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, sharederrors.ErrorTypeValidation, appErr.Type)
}
