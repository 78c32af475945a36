package task

import (
	"github.com/gin-gonic/gin"

	"mavinci/internal/middleware"
)

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	tasks := r.Group("/tasks", middleware.RequireModule("tasks"))
	{
		tasks.GET("/board", h.Board)
		tasks.POST("", h.Create)
		tasks.PATCH("/:id/column", h.Move)
		tasks.PUT("/:id/assignees", h.SetAssignees)
		tasks.GET("/:id/feed", h.Feed)
		tasks.POST("/:id/comments", h.AddComment)
		tasks.DELETE("/:id/comments/:comment_id", h.DeleteComment)
		tasks.POST("/:id/attachments", h.AddAttachment)
		tasks.DELETE("/:id/attachments/:attachment_id", h.DeleteAttachment)
	}
}
