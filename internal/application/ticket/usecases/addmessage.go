package usecases

import (
	"context"
	"fmt"
	"strings"

	"carelink/internal/application/sync"
	"carelink/internal/application/ticket/dto"
	"carelink/internal/domain/ticket"
	"carelink/internal/domain/user"
	"carelink/internal/shared/errors"
	"carelink/internal/shared/logger"
)

type AddMessageCommand struct {
	TicketID uint
	UserID   uint
	Body     string
}

// AddMessageUseCase appends a user message to a ticket thread. For
// linked tickets the message is posted to the remote thread first so
// the local copy can carry the remote message id and later imports
// recognize it as already present. A failed remote post keeps the
// message local only.
type AddMessageUseCase struct {
	ticketRepo  ticket.TicketRepository
	messageRepo ticket.MessageRepository
	userRepo    user.UserRepository
	gateway     sync.WriteGateway
	txManager   TransactionManager
	logger      logger.Interface
}

func NewAddMessageUseCase(
	ticketRepo ticket.TicketRepository,
	messageRepo ticket.MessageRepository,
	userRepo user.UserRepository,
	gateway sync.WriteGateway,
	txManager TransactionManager,
	logger logger.Interface,
) *AddMessageUseCase {
	return &AddMessageUseCase{
		ticketRepo:  ticketRepo,
		messageRepo: messageRepo,
		userRepo:    userRepo,
		gateway:     gateway,
		txManager:   txManager,
		logger:      logger,
	}
}

func (uc *AddMessageUseCase) Execute(ctx context.Context, cmd AddMessageCommand) (*dto.MessageDTO, error) {
	body := strings.TrimSpace(cmd.Body)
	if body == "" {
		return nil, errors.NewValidationError("message body is required")
	}

	t, err := uc.ticketRepo.FindByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to load ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, errors.NewInternalError("failed to load ticket")
	}
	if t == nil {
		return nil, errors.NewNotFoundError("ticket not found")
	}
	if t.OwnerID() != cmd.UserID {
		return nil, errors.NewForbiddenError("ticket belongs to another user")
	}

	msg, err := ticket.NewLocalMessage(t.ID(), body, false)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if t.HasRemoteLink() {
		remoteMsgID, err := uc.gateway.PostMessage(ctx, *t.RemoteID(), uc.remoteBody(ctx, cmd.UserID, body))
		if err != nil {
			uc.logger.Warnw("remote message post failed, keeping message local",
				"ticket_id", t.ID(), "remote_id", *t.RemoteID(), "error", err)
		} else if err := msg.SetRemoteMessageID(remoteMsgID); err != nil {
			return nil, errors.NewInternalError(err.Error())
		}
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.messageRepo.Save(txCtx, msg); err != nil {
			return err
		}
		t.Touch()
		return uc.ticketRepo.Update(txCtx, t)
	})
	if err != nil {
		uc.logger.Errorw("failed to save message", "ticket_id", t.ID(), "error", err)
		return nil, errors.NewInternalError("failed to save message")
	}

	result := dto.ToMessageDTO(msg)
	return &result, nil
}

// remoteBody appends a sender attribution line for the remote thread,
// where every posted message otherwise shows the service account.
func (uc *AddMessageUseCase) remoteBody(ctx context.Context, userID uint, body string) string {
	u, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil || u == nil || u.Name() == "" {
		return body
	}
	return fmt.Sprintf("%s\n\n- Sent by %s", body, u.Name())
}
