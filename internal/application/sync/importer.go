package sync

import (
	"context"
	"time"
	"unicode/utf8"

	"carelink/internal/domain/ticket"
	"carelink/internal/shared/htmltext"
	"carelink/internal/shared/logger"
)

// remoteTimeLayout is the wire format of remote message timestamps,
// always expressed in UTC.
const remoteTimeLayout = "2006-01-02 15:04:05"

// minBodyRunes drops imported messages whose normalized body carries
// no real content, such as bare signatures or tracking pixels.
const minBodyRunes = 5

// MessageImporter copies the remote discussion thread of a ticket into
// the local store. Already-imported messages are recognized by their
// remote message id and skipped, so repeated imports of the same
// thread are no-ops. Saves go through the ambient transaction; the
// importer never commits.
type MessageImporter struct {
	messages ticket.MessageRepository
	gateway  ReadGateway
	logger   logger.Interface
}

func NewMessageImporter(messages ticket.MessageRepository, gateway ReadGateway, logger logger.Interface) *MessageImporter {
	return &MessageImporter{
		messages: messages,
		gateway:  gateway,
		logger:   logger,
	}
}

// Import stages the not-yet-imported messages of the remote thread and
// returns how many were staged. A failure on one message is logged and
// skipped; only a failure to fetch the thread itself aborts the
// import.
func (i *MessageImporter) Import(ctx context.Context, t *ticket.Ticket, remoteTicketID, ownerContactID int64) (int, error) {
	remote, err := i.gateway.ListMessages(ctx, remoteTicketID)
	if err != nil {
		return 0, err
	}

	imported := 0
	for _, rm := range remote {
		existing, err := i.messages.FindByRemoteID(ctx, rm.ID)
		if err != nil {
			i.logger.Warnw("failed to check imported message",
				"remote_message_id", rm.ID, "error", err)
			continue
		}
		if existing != nil {
			continue
		}

		body := htmltext.Strip(rm.Body)
		if utf8.RuneCountInString(body) < minBodyRunes {
			continue
		}

		createdAt, err := parseRemoteTime(rm.Date)
		if err != nil {
			i.logger.Warnw("skipping message with unreadable timestamp",
				"remote_message_id", rm.ID, "date", rm.Date, "error", err)
			continue
		}

		// Authorship is only known when the owner's contact resolved;
		// everything else counts as support.
		fromSupport := ownerContactID == 0 || rm.AuthorID != ownerContactID

		msg, err := ticket.NewImportedMessage(t.ID(), rm.ID, body, fromSupport, createdAt)
		if err != nil {
			i.logger.Warnw("skipping invalid remote message",
				"remote_message_id", rm.ID, "error", err)
			continue
		}
		if err := i.messages.Save(ctx, msg); err != nil {
			i.logger.Warnw("failed to stage imported message",
				"remote_message_id", rm.ID, "error", err)
			continue
		}
		imported++
	}
	return imported, nil
}

func parseRemoteTime(raw string) (time.Time, error) {
	if ts, err := time.ParseInLocation(remoteTimeLayout, raw, time.UTC); err == nil {
		return ts, nil
	}
	return time.Parse(time.RFC3339, raw)
}
