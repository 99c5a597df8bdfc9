package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carelink/internal/domain/ticket"
	"carelink/internal/domain/user"
	sharederrors "carelink/internal/shared/errors"
	"carelink/internal/shared/logger"
)

func TestAddMessagePostsToRemoteThread(t *testing.T) {
	tk := fixtureLinkedTicket(t, 5, 42, 9)
	tickets := &mockTicketRepo{
		FindByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) { return tk, nil },
		UpdateFunc:   func(ctx context.Context, tk *ticket.Ticket) error { return nil },
	}
	var saved *ticket.Message
	messages := &mockMessageRepo{
		SaveFunc: func(ctx context.Context, m *ticket.Message) error {
			saved = m
			return m.SetID(3)
		},
	}
	users := &mockUserRepo{
		FindByIDFunc: func(ctx context.Context, id uint) (*user.User, error) { return fixtureUser(t), nil },
	}
	gateway := &mockWriteGateway{
		PostMessageFunc: func(ctx context.Context, remoteID int64, body string) (int64, error) {
			assert.Equal(t, int64(42), remoteID)
			assert.Equal(t, "any update on this?\n\n- Sent by Alice", body)
			return 900, nil
		},
	}

	uc := NewAddMessageUseCase(tickets, messages, users, gateway, passthroughTxManager{}, logger.NewLogger())
	result, err := uc.Execute(context.Background(), AddMessageCommand{
		TicketID: 5, UserID: 9, Body: "  any update on this?  ",
	})
	require.NoError(t, err)

	assert.Equal(t, "any update on this?", result.Body)
	assert.False(t, result.IsFromSupport)
	require.NotNil(t, saved.RemoteMessageID())
	assert.Equal(t, int64(900), *saved.RemoteMessageID())
}

func TestAddMessageKeepsLocalWhenRemotePostFails(t *testing.T) {
	tk := fixtureLinkedTicket(t, 5, 42, 9)
	tickets := &mockTicketRepo{
		FindByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) { return tk, nil },
		UpdateFunc:   func(ctx context.Context, tk *ticket.Ticket) error { return nil },
	}
	var saved *ticket.Message
	messages := &mockMessageRepo{
		SaveFunc: func(ctx context.Context, m *ticket.Message) error {
			saved = m
			return nil
		},
	}
	users := &mockUserRepo{
		FindByIDFunc: func(ctx context.Context, id uint) (*user.User, error) { return fixtureUser(t), nil },
	}
	gateway := &mockWriteGateway{
		PostMessageFunc: func(ctx context.Context, remoteID int64, body string) (int64, error) {
			return 0, errors.New("backend down")
		},
	}

	uc := NewAddMessageUseCase(tickets, messages, users, gateway, passthroughTxManager{}, logger.NewLogger())
	_, err := uc.Execute(context.Background(), AddMessageCommand{
		TicketID: 5, UserID: 9, Body: "any update on this?",
	})
	require.NoError(t, err)
	assert.Nil(t, saved.RemoteMessageID())
}

func TestAddMessageRejectsEmptyBody(t *testing.T) {
	uc := NewAddMessageUseCase(&mockTicketRepo{}, &mockMessageRepo{}, &mockUserRepo{}, &mockWriteGateway{}, passthroughTxManager{}, logger.NewLogger())

	_, err := uc.Execute(context.Background(), AddMessageCommand{TicketID: 5, UserID: 9, Body: "   "})
	require.Error(t, err)
	appErr, ok := sharederrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, sharederrors.ErrorTypeValidation, appErr.Type)
}

func TestAddMessageForbiddenForOtherUsers(t *testing.T) {
	tk := fixtureLinkedTicket(t, 5, 42, 9)
	tickets := &mockTicketRepo{
		FindByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) { return tk, nil },
	}

	uc := NewAddMessageUseCase(tickets, &mockMessageRepo{}, &mockUserRepo{}, &mockWriteGateway{}, passthroughTxManager{}, logger.NewLogger())
	_, err := uc.Execute(context.Background(), AddMessageCommand{TicketID: 5, UserID: 8, Body: "hi"})
	require.Error(t, err)
	appErr, ok := sharederrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, sharederrors.ErrorTypeForbidden, appErr.Type)
}
