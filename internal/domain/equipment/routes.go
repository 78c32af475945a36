package equipment

import (
	"github.com/gin-gonic/gin"

	"mavinci/internal/middleware"
)

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	eq := r.Group("/equipment", middleware.RequireModule("equipment"))
	{
		eq.GET("", h.Catalog)
		eq.POST("/categories", h.CreateCategory)
		eq.GET("/categories/:id/path", h.CategoryPath)
		eq.POST("/items", h.CreateItem)
		eq.GET("/items/:id", h.GetItem)
		eq.POST("/items/:id/units", h.AddUnit)
		eq.PATCH("/units/:id/status", h.UpdateUnitStatus)
	}
}
