package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carelink/internal/domain/ticket"
	sharederrors "carelink/internal/shared/errors"
	"carelink/internal/shared/logger"
)

func TestGetTicketServesFreshData(t *testing.T) {
	tk := fixtureLinkedTicket(t, 5, 42, 9)
	synced := false
	syncer := &mockSyncer{
		SyncTicketFunc: func(ctx context.Context, id uint) error {
			synced = true
			return nil
		},
	}
	tickets := &mockTicketRepo{
		FindByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) { return tk, nil },
	}
	msg, err := ticket.NewImportedMessage(5, 101, "we are looking into it", true, time.Now().UTC())
	require.NoError(t, err)
	messages := &mockMessageRepo{
		ListByTicketIDFunc: func(ctx context.Context, id uint) ([]*ticket.Message, error) {
			return []*ticket.Message{msg}, nil
		},
	}

	uc := NewGetTicketUseCase(tickets, messages, syncer, logger.NewLogger())
	result, err := uc.Execute(context.Background(), GetTicketQuery{TicketID: 5, UserID: 9})
	require.NoError(t, err)

	assert.True(t, synced)
	assert.Equal(t, uint(5), result.ID)
	require.Len(t, result.Messages, 1)
	assert.True(t, result.Messages[0].IsFromSupport)
}

func TestGetTicketDegradesWhenSyncFails(t *testing.T) {
	tk := fixtureLinkedTicket(t, 5, 42, 9)
	syncer := &mockSyncer{
		SyncTicketFunc: func(ctx context.Context, id uint) error {
			return errors.New("backend down")
		},
	}
	tickets := &mockTicketRepo{
		FindByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) { return tk, nil },
	}
	messages := &mockMessageRepo{
		ListByTicketIDFunc: func(ctx context.Context, id uint) ([]*ticket.Message, error) { return nil, nil },
	}

	uc := NewGetTicketUseCase(tickets, messages, syncer, logger.NewLogger())
	result, err := uc.Execute(context.Background(), GetTicketQuery{TicketID: 5, UserID: 9})
	require.NoError(t, err)
	assert.Equal(t, "Printer on fire", result.Title)
}

func TestGetTicketForbiddenForOtherUsers(t *testing.T) {
	tk := fixtureLinkedTicket(t, 5, 42, 9)
	syncer := &mockSyncer{
		SyncTicketFunc: func(ctx context.Context, id uint) error { return nil },
	}
	tickets := &mockTicketRepo{
		FindByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) { return tk, nil },
	}

	uc := NewGetTicketUseCase(tickets, &mockMessageRepo{}, syncer, logger.NewLogger())
	_, err := uc.Execute(context.Background(), GetTicketQuery{TicketID: 5, UserID: 8})
	require.Error(t, err)
	appErr, ok := sharederrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, sharederrors.ErrorTypeForbidden, appErr.Type)
}

func TestGetTicketNotFound(t *testing.T) {
	syncer := &mockSyncer{
		SyncTicketFunc: func(ctx context.Context, id uint) error { return nil },
	}
	tickets := &mockTicketRepo{
		FindByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) { return nil, nil },
	}

	uc := NewGetTicketUseCase(tickets, &mockMessageRepo{}, syncer, logger.NewLogger())
	_, err := uc.Execute(context.Background(), GetTicketQuery{TicketID: 5, UserID: 9})
	require.Error(t, err)
	appErr, ok := sharederrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, sharederrors.ErrorTypeNotFound, appErr.Type)
}
