package sync

import (
	"context"
	"fmt"

	"carelink/internal/domain/ticket"
	vo "carelink/internal/domain/ticket/valueobjects"
	"carelink/internal/shared/htmltext"
	"carelink/internal/shared/logger"
)

// TicketReconciler folds the remote state of one linked ticket into
// the local record. The remote side wins on title, description,
// priority and stage; local status is rederived from the stage label.
// Fetch failures bubble up unmodified, retry policy lives in the
// remote client.
type TicketReconciler struct {
	tickets  ticket.TicketRepository
	gateway  ReadGateway
	importer *MessageImporter
	logger   logger.Interface
}

func NewTicketReconciler(
	tickets ticket.TicketRepository,
	gateway ReadGateway,
	importer *MessageImporter,
	logger logger.Interface,
) *TicketReconciler {
	return &TicketReconciler{
		tickets:  tickets,
		gateway:  gateway,
		importer: importer,
		logger:   logger,
	}
}

// Reconcile fetches the remote snapshot and applies it. A ticket with
// no remote link is left untouched. A ticket deleted on the remote
// side is logged and kept as is; deletion is never mirrored locally.
func (r *TicketReconciler) Reconcile(ctx context.Context, t *ticket.Ticket, ownerContactID int64) error {
	if !t.HasRemoteLink() {
		return nil
	}

	remoteID := *t.RemoteID()
	snap, err := r.gateway.GetTicket(ctx, remoteID)
	if err != nil {
		return fmt.Errorf("failed to fetch remote ticket %d: %w", remoteID, err)
	}
	if snap == nil {
		r.logger.Warnw("remote ticket no longer exists, keeping local copy",
			"ticket_id", t.ID(), "remote_id", remoteID)
		return nil
	}

	return r.ReconcileSnapshot(ctx, t, snap, ownerContactID)
}

// ReconcileSnapshot applies an already-fetched snapshot, used by the
// per-user sync which lists all remote tickets in one call.
func (r *TicketReconciler) ReconcileSnapshot(ctx context.Context, t *ticket.Ticket, snap *RemoteTicket, ownerContactID int64) error {
	fieldsChanged := t.ApplyRemoteFields(snap.Name, htmltext.Strip(snap.Description), vo.Priority(snap.Priority))

	stageChanged, statusChanged := t.ApplyRemoteStage(snap.StageID, snap.StageName)
	if statusChanged {
		r.logger.Infow("ticket status changed by remote stage",
			"ticket_id", t.ID(), "remote_id", snap.ID,
			"stage", snap.StageName, "status", t.Status(), "resolved", t.IsResolved())
	}

	imported, err := r.importer.Import(ctx, t, snap.ID, ownerContactID)
	if err != nil {
		return fmt.Errorf("failed to import messages for remote ticket %d: %w", snap.ID, err)
	}
	if imported > 0 {
		t.Touch()
	}

	if fieldsChanged || stageChanged || imported > 0 {
		if err := r.tickets.Update(ctx, t); err != nil {
			return fmt.Errorf("failed to persist reconciled ticket %d: %w", t.ID(), err)
		}
	}
	return nil
}
