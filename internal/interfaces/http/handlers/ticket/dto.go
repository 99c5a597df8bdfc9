package ticket

import "carelink/internal/application/ticket/usecases"

type CreateTicketRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

func (r CreateTicketRequest) ToCommand(userID uint) usecases.CreateTicketCommand {
	return usecases.CreateTicketCommand{
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		OwnerID:     userID,
	}
}

type UpdateTicketRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Priority    string `json:"priority" binding:"required"`
}

func (r UpdateTicketRequest) ToCommand(ticketID, userID uint) usecases.UpdateTicketCommand {
	return usecases.UpdateTicketCommand{
		TicketID:    ticketID,
		UserID:      userID,
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
	}
}

type AddMessageRequest struct {
	Body string `json:"body" binding:"required"`
}
