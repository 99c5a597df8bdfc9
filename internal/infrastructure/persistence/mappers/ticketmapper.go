package mappers

import (
	"time"

	"carelink/internal/domain/ticket"
	vo "carelink/internal/domain/ticket/valueobjects"
	"carelink/internal/infrastructure/persistence/models"
)

// TicketMapper handles the conversion between ticket domain entities and
// persistence models.
type TicketMapper interface {
	ToModel(t *ticket.Ticket) *models.TicketModel
	ToDomain(model *models.TicketModel) (*ticket.Ticket, error)
	MessageToModel(m *ticket.Message) *models.MessageModel
	MessageToDomain(model *models.MessageModel) (*ticket.Message, error)
}

type ticketMapperImpl struct{}

func NewTicketMapper() TicketMapper {
	return &ticketMapperImpl{}
}

func (m *ticketMapperImpl) ToModel(t *ticket.Ticket) *models.TicketModel {
	return &models.TicketModel{
		ID:            t.ID(),
		Title:         t.Title(),
		Description:   t.Description(),
		Priority:      t.Priority().String(),
		Status:        t.Status().String(),
		IsResolved:    t.IsResolved(),
		RemoteID:      t.RemoteID(),
		RemoteStageID: t.RemoteStageID(),
		OwnerID:       t.OwnerID(),
		CreatedAt:     t.CreatedAt().UnixMilli(),
		UpdatedAt:     t.UpdatedAt().UnixMilli(),
	}
}

func (m *ticketMapperImpl) ToDomain(model *models.TicketModel) (*ticket.Ticket, error) {
	priority, err := vo.NewPriority(model.Priority)
	if err != nil {
		return nil, err
	}
	status, err := vo.NewTicketStatus(model.Status)
	if err != nil {
		return nil, err
	}

	return ticket.ReconstructTicket(
		model.ID,
		model.Title,
		model.Description,
		priority,
		status,
		model.IsResolved,
		model.RemoteID,
		model.RemoteStageID,
		model.OwnerID,
		time.UnixMilli(model.CreatedAt).UTC(),
		time.UnixMilli(model.UpdatedAt).UTC(),
	)
}

func (m *ticketMapperImpl) MessageToModel(msg *ticket.Message) *models.MessageModel {
	return &models.MessageModel{
		ID:              msg.ID(),
		TicketID:        msg.TicketID(),
		RemoteMessageID: msg.RemoteMessageID(),
		Body:            msg.Body(),
		IsFromSupport:   msg.IsFromSupport(),
		CreatedAt:       msg.CreatedAt().UnixMilli(),
	}
}

func (m *ticketMapperImpl) MessageToDomain(model *models.MessageModel) (*ticket.Message, error) {
	return ticket.ReconstructMessage(
		model.ID,
		model.TicketID,
		model.RemoteMessageID,
		model.Body,
		model.IsFromSupport,
		time.UnixMilli(model.CreatedAt).UTC(),
	)
}
