package event

import (
	"github.com/gin-gonic/gin"

	"mavinci/internal/middleware"
)

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	events := r.Group("/events", middleware.RequireModule("events"))
	{
		events.GET("", h.List)
		events.POST("", h.Create)
		events.GET("/:id", h.Get)
		events.PATCH("/:id/status", h.UpdateStatus)
		events.POST("/:id/folders", h.Folder)
		events.POST("/:id/files", h.UploadFile)
	}
}
