package sync

import (
	"context"
	"fmt"

	"carelink/internal/domain/ticket"
	vo "carelink/internal/domain/ticket/valueobjects"
	"carelink/internal/domain/user"
	"carelink/internal/shared/htmltext"
	"carelink/internal/shared/logger"
)

// TransactionManager runs a function inside one database transaction.
// Satisfied by db.TransactionManager.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// SyncService is the reconciliation entry point. SyncAll is the
// periodic sweep over every linked ticket; SyncUser and SyncTicket are
// the narrow on-demand variants the read paths trigger before serving
// data.
type SyncService struct {
	tickets    ticket.TicketRepository
	users      user.UserRepository
	gateway    ReadGateway
	reconciler *TicketReconciler
	importer   *MessageImporter
	contacts   *ContactResolver
	txManager  TransactionManager
	logger     logger.Interface
}

func NewSyncService(
	tickets ticket.TicketRepository,
	users user.UserRepository,
	gateway ReadGateway,
	reconciler *TicketReconciler,
	importer *MessageImporter,
	contacts *ContactResolver,
	txManager TransactionManager,
	logger logger.Interface,
) *SyncService {
	return &SyncService{
		tickets:    tickets,
		users:      users,
		gateway:    gateway,
		reconciler: reconciler,
		importer:   importer,
		contacts:   contacts,
		txManager:  txManager,
		logger:     logger,
	}
}

// SyncAll reconciles every linked ticket in one transaction. A ticket
// that fails is logged and skipped; the sweep commits whatever
// succeeded in a single unit at the end.
func (s *SyncService) SyncAll(ctx context.Context) error {
	return s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		linked, err := s.tickets.ListLinked(txCtx)
		if err != nil {
			return fmt.Errorf("failed to list linked tickets: %w", err)
		}

		contactsByOwner := make(map[uint]int64)
		successes := 0
		for _, t := range linked {
			contactID, ok := contactsByOwner[t.OwnerID()]
			if !ok {
				contactID = s.ownerContact(txCtx, t.OwnerID())
				contactsByOwner[t.OwnerID()] = contactID
			}

			if err := s.reconciler.Reconcile(txCtx, t, contactID); err != nil {
				s.logger.Errorw("failed to sync ticket",
					"ticket_id", t.ID(), "error", err)
				continue
			}
			successes++
		}

		s.logger.Infow("ticket sync sweep completed",
			"successes", successes, "total", len(linked))
		return nil
	})
}

// SyncUser pulls the user's full remote ticket list, reconciling known
// tickets and adopting remote tickets seen for the first time. The
// whole unit commits or rolls back together; callers fall back to
// cached local data on error.
func (s *SyncService) SyncUser(ctx context.Context, userID uint) error {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load user %d: %w", userID, err)
	}
	if u == nil {
		return fmt.Errorf("user %d not found", userID)
	}

	contactID := s.contacts.Resolve(ctx, u)
	if contactID == 0 {
		return fmt.Errorf("remote contact for user %d unavailable", userID)
	}

	remote, err := s.gateway.ListTickets(ctx, contactID)
	if err != nil {
		return fmt.Errorf("failed to list remote tickets: %w", err)
	}

	return s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		for i := range remote {
			snap := &remote[i]
			local, err := s.tickets.FindByRemoteID(txCtx, snap.ID)
			if err != nil {
				return fmt.Errorf("failed to look up remote ticket %d: %w", snap.ID, err)
			}

			if local == nil {
				if err := s.adoptRemoteTicket(txCtx, snap, u.ID(), contactID); err != nil {
					return err
				}
				continue
			}
			if err := s.reconciler.ReconcileSnapshot(txCtx, local, snap, contactID); err != nil {
				return err
			}
		}
		return nil
	})
}

// SyncTicket reconciles a single ticket on demand. Unlinked tickets
// are a no-op.
func (s *SyncService) SyncTicket(ctx context.Context, ticketID uint) error {
	t, err := s.tickets.FindByID(ctx, ticketID)
	if err != nil {
		return fmt.Errorf("failed to load ticket %d: %w", ticketID, err)
	}
	if t == nil || !t.HasRemoteLink() {
		return nil
	}

	contactID := s.ownerContact(ctx, t.OwnerID())
	return s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		return s.reconciler.Reconcile(txCtx, t, contactID)
	})
}

// adoptRemoteTicket creates a local record for a remote ticket that has
// no local counterpart yet, then imports its thread.
func (s *SyncService) adoptRemoteTicket(ctx context.Context, snap *RemoteTicket, ownerID uint, contactID int64) error {
	title := snap.Name
	if title == "" {
		s.logger.Warnw("skipping untitled remote ticket", "remote_id", snap.ID)
		return nil
	}

	priority := vo.Priority(snap.Priority)
	if !priority.IsValid() {
		priority = vo.PriorityNormal
	}

	t, err := ticket.NewTicket(title, htmltext.Strip(snap.Description), priority, ownerID)
	if err != nil {
		s.logger.Warnw("skipping malformed remote ticket",
			"remote_id", snap.ID, "error", err)
		return nil
	}
	if err := t.LinkRemote(snap.ID); err != nil {
		return err
	}
	t.ApplyRemoteStage(snap.StageID, snap.StageName)

	if err := s.tickets.Save(ctx, t); err != nil {
		return fmt.Errorf("failed to adopt remote ticket %d: %w", snap.ID, err)
	}

	if _, err := s.importer.Import(ctx, t, snap.ID, contactID); err != nil {
		return fmt.Errorf("failed initial import for remote ticket %d: %w", snap.ID, err)
	}

	s.logger.Infow("adopted remote ticket",
		"ticket_id", t.ID(), "remote_id", snap.ID, "owner_id", ownerID)
	return nil
}

// ownerContact resolves a ticket owner's remote contact, degrading to
// 0 (authorship unknown) when the owner or the remote directory is
// unavailable.
func (s *SyncService) ownerContact(ctx context.Context, ownerID uint) int64 {
	u, err := s.users.FindByID(ctx, ownerID)
	if err != nil || u == nil {
		s.logger.Warnw("could not load ticket owner for contact resolution",
			"owner_id", ownerID, "error", err)
		return 0
	}
	return s.contacts.Resolve(ctx, u)
}
