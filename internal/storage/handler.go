package storage

import (
	"errors"
	"net/http"
	"path"

	"github.com/gin-gonic/gin"

	"mavinci/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the unauthenticated object routes. Signed links carry
// their own token.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	objects := r.Group("/storage/object")
	{
		objects.GET("/sign/:bucket/*path", h.ServeSigned)
		objects.GET("/public/:bucket/*path", h.ServePublic)
	}
}

// ServeSigned handles GET /api/v1/storage/object/sign/:bucket/*path?token=
// @Summary Download object by signed link
// @Tags Storage
// @Produce octet-stream
// @Param bucket path string true "Bucket"
// @Param path path string true "Object path"
// @Param token query string true "Signed token"
// @Success 200 {file} binary
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /storage/object/sign/{bucket}/{path} [get]
func (h *Handler) ServeSigned(c *gin.Context) {
	bucket, objectPath := c.Param("bucket"), c.Param("path")
	if err := h.service.VerifySigned(bucket, objectPath, c.Query("token")); err != nil {
		h.fail(c, err)
		return
	}
	h.serve(c, bucket, objectPath)
}

// ServePublic handles GET /api/v1/storage/object/public/:bucket/*path
// @Summary Download public object
// @Tags Storage
// @Produce octet-stream
// @Param bucket path string true "Bucket"
// @Param path path string true "Object path"
// @Success 200 {file} binary
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /storage/object/public/{bucket}/{path} [get]
func (h *Handler) ServePublic(c *gin.Context) {
	bucket := c.Param("bucket")
	if !IsPublic(bucket) {
		response.Fail(c, http.StatusNotFound, "OBJECT_NOT_FOUND", "storage.not_found")
		return
	}
	h.serve(c, bucket, c.Param("path"))
}

func (h *Handler) serve(c *gin.Context, bucket, objectPath string) {
	f, err := h.service.Open(bucket, objectPath)
	if err != nil {
		h.fail(c, err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		h.fail(c, err)
		return
	}
	http.ServeContent(c.Writer, c.Request, path.Base(objectPath), info.ModTime(), f)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrLinkExpired):
		response.Fail(c, http.StatusForbidden, "LINK_EXPIRED", "storage.link_expired")
	case errors.Is(err, ErrUnknownBucket):
		response.Fail(c, http.StatusNotFound, "UNKNOWN_BUCKET", "storage.bucket")
	case errors.Is(err, ErrObjectNotFound), errors.Is(err, ErrInvalidPath):
		response.Fail(c, http.StatusNotFound, "OBJECT_NOT_FOUND", "storage.not_found")
	default:
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "common.internal")
	}
}

// FailUpload maps upload errors for handlers in other packages.
func FailUpload(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, ErrFileTooLarge):
		response.Fail(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "storage.too_large")
	case errors.Is(err, ErrObjectExists):
		response.Fail(c, http.StatusConflict, "OBJECT_EXISTS", "storage.exists")
	case errors.Is(err, ErrUnknownBucket):
		response.Fail(c, http.StatusBadRequest, "UNKNOWN_BUCKET", "storage.bucket")
	case errors.Is(err, ErrEmptyFile), errors.Is(err, ErrInvalidPath):
		response.Fail(c, http.StatusBadRequest, "INVALID_FILE", "common.bad_request")
	default:
		return false
	}
	return true
}
