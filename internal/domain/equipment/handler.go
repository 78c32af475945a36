package equipment

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mavinci/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Catalog handles GET /api/v1/equipment
// @Summary Equipment catalog
// @Tags Equipment
// @Security BearerAuth
// @Produce json
// @Success 200 {object} Catalog
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /equipment [get]
func (h *Handler) Catalog(c *gin.Context) {
	res, err := h.service.Catalog(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// GetItem handles GET /api/v1/equipment/items/:id
// @Summary Get equipment item
// @Tags Equipment
// @Security BearerAuth
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {object} CatalogItem
// @Failure 404 {object} map[string]interface{}
// @Router /equipment/items/{id} [get]
func (h *Handler) GetItem(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	res, err := h.service.GetItem(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// CategoryPath handles GET /api/v1/equipment/categories/:id/path
// @Summary Category breadcrumb
// @Tags Equipment
// @Security BearerAuth
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} PathResponse
// @Failure 404 {object} map[string]interface{}
// @Router /equipment/categories/{id}/path [get]
func (h *Handler) CategoryPath(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	res, err := h.service.CategoryPath(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// CreateCategory handles POST /api/v1/equipment/categories
// @Summary Create category
// @Tags Equipment
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateCategoryRequest true "Category"
// @Success 201 {object} Category
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /equipment/categories [post]
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if !response.BindJSON(c, &req) {
		return
	}
	res, err := h.service.CreateCategory(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res)
}

// CreateItem handles POST /api/v1/equipment/items
// @Summary Create equipment item
// @Tags Equipment
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateItemRequest true "Item"
// @Success 201 {object} CatalogItem
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /equipment/items [post]
func (h *Handler) CreateItem(c *gin.Context) {
	var req CreateItemRequest
	if !response.BindJSON(c, &req) {
		return
	}
	res, err := h.service.CreateItem(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res)
}

// AddUnit handles POST /api/v1/equipment/items/:id/units
// @Summary Add unit to item
// @Tags Equipment
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Item ID"
// @Param request body CreateUnitRequest true "Unit"
// @Success 201 {object} Unit
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /equipment/items/{id}/units [post]
func (h *Handler) AddUnit(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	var req CreateUnitRequest
	if !response.BindJSON(c, &req) {
		return
	}
	res, err := h.service.AddUnit(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res)
}

// UpdateUnitStatus handles PATCH /api/v1/equipment/units/:id/status
// @Summary Change unit status
// @Tags Equipment
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Unit ID"
// @Param request body UpdateUnitStatusRequest true "New status"
// @Success 200 {object} Unit
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /equipment/units/{id}/status [patch]
func (h *Handler) UpdateUnitStatus(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	var req UpdateUnitStatusRequest
	if !response.BindJSON(c, &req) {
		return
	}
	res, err := h.service.UpdateUnitStatus(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrItemNotFound):
		response.Fail(c, http.StatusNotFound, "EQUIPMENT_NOT_FOUND", "equipment.not_found")
	case errors.Is(err, ErrUnitNotFound):
		response.Fail(c, http.StatusNotFound, "UNIT_NOT_FOUND", "equipment.unit_missing")
	case errors.Is(err, ErrCategoryNotFound):
		response.Fail(c, http.StatusNotFound, "CATEGORY_NOT_FOUND", "equipment.category")
	case errors.Is(err, ErrCategoryCycle):
		response.Fail(c, http.StatusConflict, "CATEGORY_CYCLE", "equipment.cycle")
	case errors.Is(err, ErrInvalidStatus):
		response.Fail(c, http.StatusUnprocessableEntity, "INVALID_UNIT_STATUS", "equipment.status")
	case errors.Is(err, ErrKitUnits):
		response.Fail(c, http.StatusUnprocessableEntity, "KIT_HAS_NO_UNITS", "equipment.kit_units")
	default:
		response.Internal(c, err)
	}
}
