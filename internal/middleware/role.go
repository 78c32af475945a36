package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mavinci/internal/domain/navigation"
	"mavinci/internal/pkg/response"
)

// Access rebuilds the navigation access check from the token claims.
func Access(c *gin.Context) navigation.Access {
	return navigation.NewAccess(c.GetString("role"), c.GetStringSlice("permissions"))
}

// RequireModule applies the same rule the sidebar uses, so an API whose menu
// entry is hidden is also forbidden.
func RequireModule(module string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get("employee_id"); !ok {
			response.AbortFail(c, http.StatusUnauthorized, "UNAUTHORIZED", "auth.unauthorized")
			return
		}
		if !Access(c).Can(module) {
			response.AbortFail(c, http.StatusForbidden, "FORBIDDEN", "auth.forbidden")
			return
		}
		c.Next()
	}
}

// AdminOnly middleware requires admin role
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !Access(c).IsAdmin {
			response.AbortFail(c, http.StatusForbidden, "FORBIDDEN", "auth.forbidden")
			return
		}
		c.Next()
	}
}
