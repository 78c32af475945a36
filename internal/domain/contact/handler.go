package contact

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

// List handles GET /api/v1/clients?type=&q=
// @Summary List clients
// @Tags Clients
// @Security BearerAuth
// @Produce json
// @Param type query string false "organization, contact or individual"
// @Param q query string false "Search text"
// @Success 200 {object} []Unified
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /clients [get]
func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Fail(c, http.StatusBadRequest, "INVALID_QUERY", "common.bad_request")
		return
	}
	res, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// CreateOrganization handles POST /api/v1/organizations
// @Summary Create organization
// @Tags Clients
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateOrganizationRequest true "Organization"
// @Success 201 {object} Organization
// @Failure 400 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /organizations [post]
func (h *Handler) CreateOrganization(c *gin.Context) {
	var req CreateOrganizationRequest
	if !response.BindJSON(c, &req) {
		return
	}
	res, err := h.service.CreateOrganization(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res)
}

// CreateContact handles POST /api/v1/contacts
// @Summary Create contact
// @Tags Clients
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateContactRequest true "Contact"
// @Success 201 {object} Contact
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /contacts [post]
func (h *Handler) CreateContact(c *gin.Context) {
	var req CreateContactRequest
	if !response.BindJSON(c, &req) {
		return
	}
	res, err := h.service.CreateContact(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res)
}

// LinkOrganization handles POST /api/v1/contacts/:id/organizations
// @Summary Link contact to organization
// @Tags Clients
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Contact ID"
// @Param request body LinkOrganizationRequest true "Relation"
// @Success 201 {object} ContactOrganization
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /contacts/{id}/organizations [post]
func (h *Handler) LinkOrganization(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	var req LinkOrganizationRequest
	if !response.BindJSON(c, &req) {
		return
	}
	res, err := h.service.LinkOrganization(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrContactNotFound):
		response.Fail(c, http.StatusNotFound, "CONTACT_NOT_FOUND", "contact.not_found")
	case errors.Is(err, ErrOrganizationNotFound):
		response.Fail(c, http.StatusNotFound, "ORGANIZATION_NOT_FOUND", "contact.org_not_found")
	case errors.Is(err, ErrInvalidType):
		response.Fail(c, http.StatusUnprocessableEntity, "INVALID_CONTACT_TYPE", "contact.invalid_type")
	case errors.Is(err, ErrRelationExists):
		response.Fail(c, http.StatusConflict, "RELATION_EXISTS", "contact.relation_exists")
	default:
		response.Internal(c, err)
	}
}
