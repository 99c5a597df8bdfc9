package dto

import (
	"time"

	"carelink/internal/domain/ticket"
)

type TicketDTO struct {
	ID            uint         `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Priority      string       `json:"priority"`
	PriorityLabel string       `json:"priority_label"`
	Status        string       `json:"status"`
	IsResolved    bool         `json:"is_resolved"`
	RemoteID      *int64       `json:"remote_id"`
	OwnerID       uint         `json:"owner_id"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
	Messages      []MessageDTO `json:"messages"`
}

type MessageDTO struct {
	ID            uint      `json:"id"`
	Body          string    `json:"body"`
	IsFromSupport bool      `json:"is_from_support"`
	CreatedAt     time.Time `json:"created_at"`
}

type TicketListItemDTO struct {
	ID         uint      `json:"id"`
	Title      string    `json:"title"`
	Priority   string    `json:"priority"`
	Status     string    `json:"status"`
	IsResolved bool      `json:"is_resolved"`
	RemoteID   *int64    `json:"remote_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type TicketStatsDTO struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
}

func ToTicketDTO(t *ticket.Ticket, messages []*ticket.Message) *TicketDTO {
	if t == nil {
		return nil
	}

	messageDTOs := make([]MessageDTO, 0, len(messages))
	for _, m := range messages {
		messageDTOs = append(messageDTOs, ToMessageDTO(m))
	}

	return &TicketDTO{
		ID:            t.ID(),
		Title:         t.Title(),
		Description:   t.Description(),
		Priority:      t.Priority().String(),
		PriorityLabel: t.Priority().Label(),
		Status:        t.Status().String(),
		IsResolved:    t.IsResolved(),
		RemoteID:      t.RemoteID(),
		OwnerID:       t.OwnerID(),
		CreatedAt:     t.CreatedAt(),
		UpdatedAt:     t.UpdatedAt(),
		Messages:      messageDTOs,
	}
}

func ToMessageDTO(m *ticket.Message) MessageDTO {
	return MessageDTO{
		ID:            m.ID(),
		Body:          m.Body(),
		IsFromSupport: m.IsFromSupport(),
		CreatedAt:     m.CreatedAt(),
	}
}

func ToTicketListItemDTO(t *ticket.Ticket) TicketListItemDTO {
	return TicketListItemDTO{
		ID:         t.ID(),
		Title:      t.Title(),
		Priority:   t.Priority().String(),
		Status:     t.Status().String(),
		IsResolved: t.IsResolved(),
		RemoteID:   t.RemoteID(),
		CreatedAt:  t.CreatedAt(),
		UpdatedAt:  t.UpdatedAt(),
	}
}
