package employee

import (
	"github.com/gin-gonic/gin"

	"mavinci/internal/middleware"
)

// RegisterPublicRoutes registers routes reachable without a token.
func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.POST("/auth/login", h.Login)
}

// RegisterRoutes expects r to be behind JWTAuth.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.GET("/me", h.Me)
		auth.POST("/ical-token", h.ICalToken)
	}

	employees := r.Group("/employees")
	{
		employees.GET("/me/preferences", h.GetPreferences)
		employees.PATCH("/me/preferences", h.UpdatePreferences)
		employees.GET("", middleware.RequireModule("employees"), h.List)
		employees.POST("", middleware.AdminOnly(), h.Create)
		employees.PUT("/:id/permissions", middleware.AdminOnly(), h.UpdatePermissions)
	}
}
