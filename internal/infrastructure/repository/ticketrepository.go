package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"carelink/internal/domain/ticket"
	vo "carelink/internal/domain/ticket/valueobjects"
	"carelink/internal/infrastructure/persistence/mappers"
	"carelink/internal/infrastructure/persistence/models"
	"carelink/internal/shared/db"
)

type TicketRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketRepository(gdb *gorm.DB) *TicketRepository {
	return &TicketRepository{
		db:     gdb,
		mapper: mappers.NewTicketMapper(),
	}
}

var _ ticket.TicketRepository = (*TicketRepository)(nil)

func (r *TicketRepository) Save(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save ticket: %w", err)
	}

	return t.SetID(model.ID)
}

func (r *TicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.TicketModel{}).
		Where("id = ?", model.ID).
		Select("Title", "Description", "Priority", "Status", "IsResolved", "RemoteID", "RemoteStageID", "UpdatedAt").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update ticket: %w", result.Error)
	}

	// Note: RowsAffected may be 0 when updated values are identical to existing values.

	return nil
}

func (r *TicketRepository) Delete(ctx context.Context, ticketID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("ticket_id = ?", ticketID).Delete(&models.MessageModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete ticket messages: %w", err)
	}

	if err := tx.Delete(&models.TicketModel{}, ticketID).Error; err != nil {
		return fmt.Errorf("failed to delete ticket: %w", err)
	}

	return nil
}

func (r *TicketRepository) FindByID(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, ticketID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("ticket not found")
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) FindByRemoteID(ctx context.Context, remoteID int64) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("remote_id = ?", remoteID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find ticket by remote id: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) ListLinked(ctx context.Context) ([]*ticket.Ticket, error) {
	var rows []models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("remote_id IS NOT NULL").
		Order("id").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list linked tickets: %w", err)
	}

	return r.toDomainList(rows)
}

func (r *TicketRepository) ListByOwner(ctx context.Context, ownerID uint, filter ticket.Filter) ([]*ticket.Ticket, error) {
	tx := db.GetTxFromContext(ctx, r.db).
		Where("owner_id = ?", ownerID)

	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status.String())
	}
	if filter.Priority != "" {
		tx = tx.Where("priority = ?", filter.Priority.String())
	}

	var rows []models.TicketModel
	if err := tx.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}

	return r.toDomainList(rows)
}

func (r *TicketRepository) CountByStatus(ctx context.Context, ownerID uint) (map[vo.TicketStatus]int64, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	type statusCount struct {
		Status string
		Count  int64
	}

	var rows []statusCount
	if err := tx.
		Model(&models.TicketModel{}).
		Select("status, count(*) as count").
		Where("owner_id = ?", ownerID).
		Group("status").
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	counts := make(map[vo.TicketStatus]int64)
	var total int64
	for _, row := range rows {
		counts[vo.TicketStatus(row.Status)] = row.Count
		total += row.Count
	}

	return counts, total, nil
}

func (r *TicketRepository) toDomainList(rows []models.TicketModel) ([]*ticket.Ticket, error) {
	tickets := make([]*ticket.Ticket, 0, len(rows))
	for i := range rows {
		t, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, nil
}
