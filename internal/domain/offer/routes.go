package offer

import (
	"github.com/gin-gonic/gin"

	"mavinci/internal/middleware"
)

// RegisterRoutes expects r to be behind JWTAuth.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	offers := r.Group("/offers", middleware.RequireModule("offers"))
	{
		offers.POST("/calculate", h.Calculate)
		offers.POST("/price/convert", h.ConvertPrice)
		offers.POST("", h.Submit)
		offers.GET("/:id", h.Get)
		offers.PATCH("/:id/status", h.SetStatus)
		offers.GET("/:id/export", h.Export)
		offers.POST("/:id/items", h.AddItem)
		offers.PATCH("/:id/items/:item_id", h.UpdateItem)
		offers.DELETE("/:id/items/:item_id", h.RemoveItem)
	}

	products := r.Group("/offer-products", middleware.RequireModule("offers"))
	{
		products.GET("", h.ListProducts)
		products.POST("", h.CreateProduct)
		products.GET("/:id", h.GetProduct)
		products.POST("/:id/page", h.UploadProductPage)
	}
}
