package notification

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mavinci/internal/middleware"
	"mavinci/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /api/v1/notifications?limit=&offset=&unread=
// @Summary List notifications
// @Tags Notifications
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Param unread query bool false "Only unread"
// @Success 200 {object} ListResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /notifications [get]
func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Fail(c, http.StatusBadRequest, "INVALID_QUERY", "common.bad_request")
		return
	}
	res, err := h.service.List(c.Request.Context(), middleware.EmployeeID(c), q)
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// UnreadCount handles GET /api/v1/notifications/unread-count
// @Summary Unread count
// @Tags Notifications
// @Security BearerAuth
// @Produce json
// @Success 200 {object} UnreadCountResponse
// @Failure 401 {object} map[string]interface{}
// @Router /notifications/unread-count [get]
func (h *Handler) UnreadCount(c *gin.Context) {
	n, err := h.service.UnreadCount(c.Request.Context(), middleware.EmployeeID(c))
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.Success(c, http.StatusOK, UnreadCountResponse{UnreadCount: n})
}

// MarkRead handles PATCH /api/v1/notifications/:id/read
// @Summary Mark notification read
// @Tags Notifications
// @Security BearerAuth
// @Produce json
// @Param id path int true "Notification ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /notifications/{id}/read [patch]
func (h *Handler) MarkRead(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.service.MarkRead(c.Request.Context(), middleware.EmployeeID(c), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Fail(c, http.StatusNotFound, "NOTIFICATION_NOT_FOUND", "notification.not_found")
			return
		}
		response.Internal(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"status": "read"})
}

// MarkAllRead handles POST /api/v1/notifications/read-all
// @Summary Mark all notifications read
// @Tags Notifications
// @Security BearerAuth
// @Produce json
// @Success 200 {object} MarkAllReadResponse
// @Failure 401 {object} map[string]interface{}
// @Router /notifications/read-all [post]
func (h *Handler) MarkAllRead(c *gin.Context) {
	n, err := h.service.MarkAllRead(c.Request.Context(), middleware.EmployeeID(c))
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.Success(c, http.StatusOK, MarkAllReadResponse{Updated: n})
}
