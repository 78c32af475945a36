package task

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mavinci/internal/middleware"
	"mavinci/internal/pkg/response"
	"mavinci/internal/storage"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Board handles GET /api/v1/tasks/board?event_id=
// @Summary Task board
// @Tags Tasks
// @Security BearerAuth
// @Produce json
// @Param event_id query int false "Event ID"
// @Success 200 {object} Board
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /tasks/board [get]
func (h *Handler) Board(c *gin.Context) {
	var q BoardQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Fail(c, http.StatusBadRequest, "INVALID_QUERY", "common.bad_request")
		return
	}
	res, err := h.service.Board(c.Request.Context(), q.EventID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// Create handles POST /api/v1/tasks
// @Summary Create task
// @Tags Tasks
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateTaskRequest true "Task"
// @Success 201 {object} Task
// @Failure 400 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /tasks [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateTaskRequest
	if !response.BindJSON(c, &req) {
		return
	}
	res, err := h.service.CreateTask(c.Request.Context(), middleware.EmployeeID(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res)
}

// Move handles PATCH /api/v1/tasks/:id/column
// @Summary Move task to column
// @Tags Tasks
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Task ID"
// @Param request body MoveRequest true "Target column"
// @Success 200 {object} Task
// @Failure 404 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Router /tasks/{id}/column [patch]
func (h *Handler) Move(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	var req MoveRequest
	if !response.BindJSON(c, &req) {
		return
	}
	res, err := h.service.MoveTask(c.Request.Context(), middleware.EmployeeID(c), id, req.Column)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// SetAssignees handles PUT /api/v1/tasks/:id/assignees
// @Summary Replace task assignees
// @Description Newly assigned employees are notified.
// @Tags Tasks
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Task ID"
// @Param request body AssigneesRequest true "Employee IDs"
// @Success 200 {object} Task
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /tasks/{id}/assignees [put]
func (h *Handler) SetAssignees(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	var req AssigneesRequest
	if !response.BindJSON(c, &req) {
		return
	}
	res, err := h.service.SetAssignees(c.Request.Context(), middleware.EmployeeID(c), id, req.Assignees)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// Feed handles GET /api/v1/tasks/:id/feed
// @Summary Task comments and attachments
// @Tags Tasks
// @Security BearerAuth
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} []FeedItem
// @Failure 404 {object} map[string]interface{}
// @Router /tasks/{id}/feed [get]
func (h *Handler) Feed(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	res, err := h.service.Feed(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// AddComment handles POST /api/v1/tasks/:id/comments
// @Summary Add comment
// @Tags Tasks
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Task ID"
// @Param request body CommentRequest true "Comment"
// @Success 201 {object} Comment
// @Failure 404 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Router /tasks/{id}/comments [post]
func (h *Handler) AddComment(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	var req CommentRequest
	if !response.BindJSON(c, &req) {
		return
	}
	res, err := h.service.AddComment(c.Request.Context(), middleware.EmployeeID(c), id, req.Content)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res)
}

// DeleteComment handles DELETE /api/v1/tasks/:id/comments/:comment_id
// @Summary Delete comment
// @Tags Tasks
// @Security BearerAuth
// @Produce json
// @Param id path int true "Task ID"
// @Param comment_id path int true "Comment ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /tasks/{id}/comments/{comment_id} [delete]
func (h *Handler) DeleteComment(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	commentID, ok := response.ParamID(c, "comment_id")
	if !ok {
		return
	}
	if err := h.service.DeleteComment(c.Request.Context(), id, commentID); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"status": "deleted"})
}

// AddAttachment handles POST /api/v1/tasks/:id/attachments (multipart "file")
// @Summary Upload attachment
// @Tags Tasks
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Task ID"
// @Param file formData file true "File"
// @Success 201 {object} Attachment
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 413 {object} map[string]interface{}
// @Router /tasks/{id}/attachments [post]
func (h *Handler) AddAttachment(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "NO_FILE", "common.bad_request")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.Internal(c, err)
		return
	}
	defer file.Close()

	res, err := h.service.AddAttachment(c.Request.Context(), middleware.EmployeeID(c), id, fileHeader.Filename, file)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res)
}

// DeleteAttachment handles DELETE /api/v1/tasks/:id/attachments/:attachment_id
// @Summary Delete attachment
// @Tags Tasks
// @Security BearerAuth
// @Produce json
// @Param id path int true "Task ID"
// @Param attachment_id path int true "Attachment ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /tasks/{id}/attachments/{attachment_id} [delete]
func (h *Handler) DeleteAttachment(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	attachmentID, ok := response.ParamID(c, "attachment_id")
	if !ok {
		return
	}
	if err := h.service.DeleteAttachment(c.Request.Context(), id, attachmentID); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"status": "deleted"})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrTaskNotFound):
		response.Fail(c, http.StatusNotFound, "TASK_NOT_FOUND", "task.not_found")
	case errors.Is(err, ErrInvalidColumn):
		response.Fail(c, http.StatusUnprocessableEntity, "INVALID_COLUMN", "task.invalid_column")
	case errors.Is(err, ErrInvalidPriority):
		response.Fail(c, http.StatusUnprocessableEntity, "INVALID_PRIORITY", "common.validation")
	case errors.Is(err, ErrMoveFailed):
		_ = c.Error(err)
		response.Fail(c, http.StatusBadGateway, "MOVE_FAILED", "task.move_failed")
	case errors.Is(err, ErrEmptyComment):
		response.Fail(c, http.StatusUnprocessableEntity, "EMPTY_COMMENT", "task.comment_empty")
	case errors.Is(err, ErrCommentFailed):
		_ = c.Error(err)
		response.Fail(c, http.StatusBadGateway, "COMMENT_FAILED", "task.comment_failed")
	case errors.Is(err, ErrCommentNotFound):
		response.Fail(c, http.StatusNotFound, "COMMENT_NOT_FOUND", "task.comment_not_found")
	case errors.Is(err, ErrAttachmentNotFound):
		response.Fail(c, http.StatusNotFound, "ATTACHMENT_NOT_FOUND", "task.attachment_missing")
	default:
		if storage.FailUpload(c, err) {
			return
		}
		response.Internal(c, err)
	}
}
