package sync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carelink/internal/domain/ticket"
	vo "carelink/internal/domain/ticket/valueobjects"
	"carelink/internal/shared/logger"
)

func testTime() time.Time {
	return time.Date(2026, 8, 30, 8, 0, 0, 0, time.UTC)
}

func newReconcilerFixture(gateway *mockGateway, tickets *mockTicketRepo, messages *mockMessageRepo) *TicketReconciler {
	log := logger.NewLogger()
	importer := NewMessageImporter(messages, gateway, log)
	return NewTicketReconciler(tickets, gateway, importer, log)
}

func emptyThread() func(ctx context.Context, remoteTicketID int64) ([]RemoteMessage, error) {
	return func(ctx context.Context, remoteTicketID int64) ([]RemoteMessage, error) {
		return nil, nil
	}
}

func TestReconcileIgnoresUnlinkedTickets(t *testing.T) {
	gateway := &mockGateway{
		GetTicketFunc: func(ctx context.Context, remoteID int64) (*RemoteTicket, error) {
			t.Fatal("unexpected remote fetch for unlinked ticket")
			return nil, nil
		},
	}
	tickets := &mockTicketRepo{}
	r := newReconcilerFixture(gateway, tickets, &mockMessageRepo{})

	local, err := ticket.NewTicket("Local only", "", vo.PriorityNormal, 9)
	require.NoError(t, err)
	require.NoError(t, local.SetID(1))

	require.NoError(t, r.Reconcile(context.Background(), local, 0))
}

func TestReconcileMissingRemoteKeepsLocal(t *testing.T) {
	gateway := &mockGateway{
		GetTicketFunc: func(ctx context.Context, remoteID int64) (*RemoteTicket, error) {
			return nil, nil
		},
	}
	updateCalled := false
	tickets := &mockTicketRepo{
		UpdateFunc: func(ctx context.Context, tk *ticket.Ticket) error {
			updateCalled = true
			return nil
		},
	}
	r := newReconcilerFixture(gateway, tickets, &mockMessageRepo{})

	tk := testTicket(t, 5, 42)
	require.NoError(t, r.Reconcile(context.Background(), tk, 0))
	assert.False(t, updateCalled)
	assert.Equal(t, vo.StatusInProgress, tk.Status())
}

func TestReconcileAppliesRemoteFieldsAndStage(t *testing.T) {
	gateway := &mockGateway{
		GetTicketFunc: func(ctx context.Context, remoteID int64) (*RemoteTicket, error) {
			return &RemoteTicket{
				ID:        42,
				Name:      "Printer on fire, again",
				Priority:  "3",
				StageID:   3,
				StageName: "Solved",
			}, nil
		},
		ListMessagesFunc: emptyThread(),
	}

	var updated *ticket.Ticket
	tickets := &mockTicketRepo{
		UpdateFunc: func(ctx context.Context, tk *ticket.Ticket) error {
			updated = tk
			return nil
		},
	}
	messages := &mockMessageRepo{
		FindByRemoteIDFunc: func(ctx context.Context, id int64) (*ticket.Message, error) { return nil, nil },
	}
	r := newReconcilerFixture(gateway, tickets, messages)

	tk := testTicket(t, 5, 42)
	require.NoError(t, r.Reconcile(context.Background(), tk, 0))

	require.NotNil(t, updated)
	assert.Equal(t, "Printer on fire, again", tk.Title())
	assert.Equal(t, vo.PriorityUrgent, tk.Priority())
	assert.Equal(t, vo.StatusSolved, tk.Status())
	assert.True(t, tk.IsResolved())
	assert.Equal(t, int64(3), tk.RemoteStageID())
}

func TestReconcileNoChangesSkipsUpdate(t *testing.T) {
	gateway := &mockGateway{
		GetTicketFunc: func(ctx context.Context, remoteID int64) (*RemoteTicket, error) {
			// Matches testTicket exactly: same title, description,
			// priority and stage.
			return &RemoteTicket{
				ID:          42,
				Name:        "Printer on fire",
				Description: "it burns",
				Priority:    "1",
				StageID:     1,
				StageName:   "In Progress",
			}, nil
		},
		ListMessagesFunc: emptyThread(),
	}
	updateCalled := false
	tickets := &mockTicketRepo{
		UpdateFunc: func(ctx context.Context, tk *ticket.Ticket) error {
			updateCalled = true
			return nil
		},
	}
	messages := &mockMessageRepo{
		FindByRemoteIDFunc: func(ctx context.Context, id int64) (*ticket.Message, error) { return nil, nil },
	}
	r := newReconcilerFixture(gateway, tickets, messages)

	require.NoError(t, r.Reconcile(context.Background(), testTicket(t, 5, 42), 0))
	assert.False(t, updateCalled)
}

func TestReconcileFetchFailurePropagates(t *testing.T) {
	gateway := &mockGateway{
		GetTicketFunc: func(ctx context.Context, remoteID int64) (*RemoteTicket, error) {
			return nil, errors.New("backend down")
		},
	}
	r := newReconcilerFixture(gateway, &mockTicketRepo{}, &mockMessageRepo{})

	err := r.Reconcile(context.Background(), testTicket(t, 5, 42), 0)
	require.Error(t, err)
	assert.ErrorContains(t, err, "backend down")
}

func TestReconcileImportsTriggerUpdate(t *testing.T) {
	gateway := &mockGateway{
		GetTicketFunc: func(ctx context.Context, remoteID int64) (*RemoteTicket, error) {
			return &RemoteTicket{
				ID:          42,
				Name:        "Printer on fire",
				Description: "it burns",
				Priority:    "1",
				StageID:     1,
				StageName:   "In Progress",
			}, nil
		},
		ListMessagesFunc: func(ctx context.Context, remoteTicketID int64) ([]RemoteMessage, error) {
			return []RemoteMessage{
				{ID: 700, Body: "support checked the device", Date: "2026-08-30 11:00:00"},
			}, nil
		},
	}

	updateCalled := false
	tickets := &mockTicketRepo{
		UpdateFunc: func(ctx context.Context, tk *ticket.Ticket) error {
			updateCalled = true
			return nil
		},
	}
	messages := &mockMessageRepo{
		FindByRemoteIDFunc: func(ctx context.Context, id int64) (*ticket.Message, error) { return nil, nil },
		SaveFunc:           func(ctx context.Context, m *ticket.Message) error { return nil },
	}
	r := newReconcilerFixture(gateway, tickets, messages)

	require.NoError(t, r.Reconcile(context.Background(), testTicket(t, 5, 42), 0))
	assert.True(t, updateCalled)
}

func TestReconcileStageRegressionReopensTicket(t *testing.T) {
	gateway := &mockGateway{
		GetTicketFunc: func(ctx context.Context, remoteID int64) (*RemoteTicket, error) {
			return &RemoteTicket{
				ID:        42,
				Name:      "Printer on fire",
				Priority:  "1",
				StageID:   2,
				StageName: "In Progress",
			}, nil
		},
		ListMessagesFunc: emptyThread(),
	}
	tickets := &mockTicketRepo{
		UpdateFunc: func(ctx context.Context, tk *ticket.Ticket) error { return nil },
	}
	messages := &mockMessageRepo{
		FindByRemoteIDFunc: func(ctx context.Context, id int64) (*ticket.Message, error) { return nil, nil },
	}
	r := newReconcilerFixture(gateway, tickets, messages)

	remoteID := int64(42)
	tk, err := ticket.ReconstructTicket(
		5, "Printer on fire", "it burns", vo.PriorityNormal,
		vo.StatusSolved, true, &remoteID, 3, 9,
		testTime(), testTime(),
	)
	require.NoError(t, err)

	require.NoError(t, r.Reconcile(context.Background(), tk, 0))
	assert.Equal(t, vo.StatusInProgress, tk.Status())
	assert.False(t, tk.IsResolved())
}
