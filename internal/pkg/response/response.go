package response

import (
	"github.com/gin-gonic/gin"

	"mavinci/internal/pkg/i18n"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// Fail writes an error whose message is looked up in the i18n catalog using
// the request's Accept-Language (Polish by default).
func Fail(c *gin.Context, statusCode int, code, messageKey string, args ...any) {
	Error(c, statusCode, code, Localize(c, messageKey, args...))
}

// AbortFail is Fail for middleware.
func AbortFail(c *gin.Context, statusCode int, code, messageKey string) {
	Fail(c, statusCode, code, messageKey)
	c.Abort()
}

func Localize(c *gin.Context, messageKey string, args ...any) string {
	return i18n.T(i18n.Match(c.GetHeader("Accept-Language")), messageKey, args...)
}
