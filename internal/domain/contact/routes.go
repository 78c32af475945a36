package contact

import (
	"github.com/gin-gonic/gin"

	"mavinci/internal/middleware"
)

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	clients := r.Group("", middleware.RequireModule("clients"))
	{
		clients.GET("/clients", h.List)
		clients.POST("/organizations", h.CreateOrganization)
		clients.POST("/contacts", h.CreateContact)
		clients.POST("/contacts/:id/organizations", h.LinkOrganization)
	}
}
