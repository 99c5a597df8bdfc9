package routes

import (
	"github.com/gin-gonic/gin"

	authhandler "carelink/internal/interfaces/http/handlers/auth"
	tickethandler "carelink/internal/interfaces/http/handlers/ticket"
	"carelink/internal/interfaces/http/middleware"
)

func RegisterAuthRoutes(api *gin.RouterGroup, h *authhandler.AuthHandler) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}
}

func RegisterTicketRoutes(api *gin.RouterGroup, h *tickethandler.TicketHandler, authMW *middleware.AuthMiddleware) {
	tickets := api.Group("/tickets")
	tickets.Use(authMW.RequireAuth())
	{
		tickets.POST("", h.CreateTicket)
		tickets.GET("", h.ListTickets)
		tickets.GET("/stats", h.GetStats)
		tickets.GET("/sync", h.SyncTickets)
		tickets.GET("/:id", h.GetTicket)
		tickets.PUT("/:id", h.UpdateTicket)
		tickets.DELETE("/:id", h.DeleteTicket)
		tickets.POST("/:id/messages", h.AddMessage)
	}
}
