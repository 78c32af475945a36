package event

import (
	"errors"
	"net/http"
	"strconv"

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

// List handles GET /api/v1/events?status=&from=&to=&q=
// @Summary List events
// @Tags Events
// @Security BearerAuth
// @Produce json
// @Param status query string false "Status"
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD)"
// @Param q query string false "Search text"
// @Success 200 {object} []ListItem
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /events [get]
func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Fail(c, http.StatusBadRequest, "INVALID_QUERY", "common.bad_request")
		return
	}
	res, err := h.service.ListEvents(c.Request.Context(), q)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// Get handles GET /api/v1/events/:id
// @Summary Get event details
// @Tags Events
// @Security BearerAuth
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} Details
// @Failure 404 {object} map[string]interface{}
// @Router /events/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	res, err := h.service.GetEventDetails(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// Create handles POST /api/v1/events
// @Summary Create event
// @Tags Events
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateEventRequest true "Event"
// @Success 201 {object} Event
// @Failure 400 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /events [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateEventRequest
	if !response.BindJSON(c, &req) {
		return
	}
	res, err := h.service.CreateEvent(c.Request.Context(), middleware.EmployeeID(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res)
}

// UpdateStatus handles PATCH /api/v1/events/:id/status
// @Summary Change event status
// @Tags Events
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Event ID"
// @Param request body UpdateStatusRequest true "New status"
// @Success 200 {object} Event
// @Failure 404 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /events/{id}/status [patch]
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	var req UpdateStatusRequest
	if !response.BindJSON(c, &req) {
		return
	}
	res, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// Folder handles POST /api/v1/events/:id/folders. The folder is created
// under the documents folder unless it already exists.
// @Summary Get or create documents subfolder
// @Tags Events
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Event ID"
// @Param request body FolderRequest true "Folder name"
// @Success 200 {object} Folder
// @Failure 404 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /events/{id}/folders [post]
func (h *Handler) Folder(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	var req FolderRequest
	if !response.BindJSON(c, &req) {
		return
	}
	res, err := h.service.GetOrCreateDocumentsSubfolder(c.Request.Context(), id, req.Name)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// UploadFile handles POST /api/v1/events/:id/files (multipart "file",
// optional "folder_id")
// @Summary Upload event file
// @Tags Events
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Event ID"
// @Param file formData file true "File"
// @Param folder_id formData int false "Folder ID"
// @Success 201 {object} File
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 413 {object} map[string]interface{}
// @Router /events/{id}/files [post]
func (h *Handler) UploadFile(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	var folderID *int64
	if raw := c.PostForm("folder_id"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v <= 0 {
			response.Fail(c, http.StatusBadRequest, "INVALID_ID", "common.invalid_id")
			return
		}
		folderID = &v
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

	res, err := h.service.UploadFile(c.Request.Context(), middleware.EmployeeID(c), id, folderID, fileHeader.Filename, file)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrEventNotFound):
		response.Fail(c, http.StatusNotFound, "EVENT_NOT_FOUND", "event.not_found")
	case errors.Is(err, ErrInvalidStatus):
		response.Fail(c, http.StatusUnprocessableEntity, "INVALID_STATUS", "event.invalid_status")
	case errors.Is(err, ErrClientNotFound):
		response.Fail(c, http.StatusUnprocessableEntity, "CLIENT_NOT_FOUND", "contact.not_found")
	case errors.Is(err, ErrInvalidFolderName):
		response.Fail(c, http.StatusUnprocessableEntity, "INVALID_FOLDER_NAME", "event.folder_name")
	case errors.Is(err, ErrFolderNotFound):
		response.Fail(c, http.StatusNotFound, "FOLDER_NOT_FOUND", "common.not_found")
	default:
		if storage.FailUpload(c, err) {
			return
		}
		response.Internal(c, err)
	}
}
