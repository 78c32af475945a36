package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mavinci/internal/pkg/jwt"
	"mavinci/internal/pkg/response"
)

// JWTAuth validates the bearer access token and stores the employee claims
// on the context under employee_id, role and permissions.
func JWTAuth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.AbortFail(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "auth.header_missing")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.AbortFail(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "auth.invalid_format")
			return
		}

		claims, err := jwtService.ValidateToken(parts[1])
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, "INVALID_TOKEN", "auth.invalid_token")
			return
		}

		SetClaims(c, claims)
		c.Next()
	}
}

func SetClaims(c *gin.Context, claims *jwt.Claims) {
	c.Set("employee_id", claims.EmployeeID)
	c.Set("role", claims.Role)
	c.Set("permissions", claims.Permissions)
}

// EmployeeID returns the authenticated employee or 0.
func EmployeeID(c *gin.Context) int64 {
	return c.GetInt64("employee_id")
}
