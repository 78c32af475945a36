package response

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mavinci/internal/pkg/validator"
)

// BindJSON decodes and validates the request body, writing the error response
// itself when it fails.
func BindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		Fail(c, http.StatusBadRequest, "INVALID_JSON", "common.bad_request")
		return false
	}
	if fields := validator.Validate(req); fields != nil {
		ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", Localize(c, "common.validation"), fields)
		return false
	}
	return true
}

// ParamID parses a positive int64 path parameter.
func ParamID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		Fail(c, http.StatusBadRequest, "INVALID_ID", "common.invalid_id")
		return 0, false
	}
	return id, true
}

// Internal logs err on the context and writes a generic 500.
func Internal(c *gin.Context, err error) {
	_ = c.Error(err)
	Fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "common.internal")
}
