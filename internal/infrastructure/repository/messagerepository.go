package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"carelink/internal/domain/ticket"
	"carelink/internal/infrastructure/persistence/mappers"
	"carelink/internal/infrastructure/persistence/models"
	"carelink/internal/shared/db"
)

type MessageRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewMessageRepository(gdb *gorm.DB) *MessageRepository {
	return &MessageRepository{
		db:     gdb,
		mapper: mappers.NewTicketMapper(),
	}
}

var _ ticket.MessageRepository = (*MessageRepository)(nil)

func (r *MessageRepository) Save(ctx context.Context, m *ticket.Message) error {
	model := r.mapper.MessageToModel(m)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save message: %w", err)
	}

	return m.SetID(model.ID)
}

func (r *MessageRepository) FindByRemoteID(ctx context.Context, remoteMessageID int64) (*ticket.Message, error) {
	var model models.MessageModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("remote_message_id = ?", remoteMessageID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find message by remote id: %w", err)
	}

	return r.mapper.MessageToDomain(&model)
}

func (r *MessageRepository) ListByTicketID(ctx context.Context, ticketID uint) ([]*ticket.Message, error) {
	var rows []models.MessageModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("ticket_id = ?", ticketID).
		Order("created_at").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	messages := make([]*ticket.Message, 0, len(rows))
	for i := range rows {
		m, err := r.mapper.MessageToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, nil
}
