package employee

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

// Login handles POST /api/v1/auth/login
// @Summary Log in
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if !response.BindJSON(c, &req) {
		return
	}

	res, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// Me handles GET /api/v1/auth/me
// @Summary Current employee
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} Employee
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /auth/me [get]
func (h *Handler) Me(c *gin.Context) {
	e, err := h.service.Get(c.Request.Context(), middleware.EmployeeID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, e)
}

// ICalToken handles POST /api/v1/auth/ical-token
// @Summary Issue calendar feed token
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 201 {object} ICalTokenResponse
// @Failure 401 {object} map[string]interface{}
// @Router /auth/ical-token [post]
func (h *Handler) ICalToken(c *gin.Context) {
	token, err := h.service.IssueICalToken(c.Request.Context(), middleware.EmployeeID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, ICalTokenResponse{Token: token})
}

// GetPreferences handles GET /api/v1/employees/me/preferences
// @Summary Get own preferences
// @Tags Employees
// @Security BearerAuth
// @Produce json
// @Success 200 {object} Preferences
// @Failure 401 {object} map[string]interface{}
// @Router /employees/me/preferences [get]
func (h *Handler) GetPreferences(c *gin.Context) {
	prefs, err := h.service.Preferences(c.Request.Context(), middleware.EmployeeID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, prefs)
}

// UpdatePreferences handles PATCH /api/v1/employees/me/preferences
// @Summary Update own preferences
// @Tags Employees
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body UpdatePreferencesRequest true "Changed preferences"
// @Success 200 {object} Preferences
// @Failure 400 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /employees/me/preferences [patch]
func (h *Handler) UpdatePreferences(c *gin.Context) {
	var req UpdatePreferencesRequest
	if !response.BindJSON(c, &req) {
		return
	}

	prefs, err := h.service.UpdatePreferences(c.Request.Context(), middleware.EmployeeID(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, prefs)
}

// List handles GET /api/v1/employees
// @Summary List employees
// @Tags Employees
// @Security BearerAuth
// @Produce json
// @Success 200 {object} []Employee
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /employees [get]
func (h *Handler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

// Create handles POST /api/v1/employees (admin)
// @Summary Create employee
// @Description Admin only.
// @Tags Employees
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateEmployeeRequest true "Employee"
// @Success 201 {object} Employee
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /employees [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateEmployeeRequest
	if !response.BindJSON(c, &req) {
		return
	}

	e, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, e)
}

// UpdatePermissions handles PUT /api/v1/employees/:id/permissions (admin)
// @Summary Replace employee permissions
// @Description Admin only.
// @Tags Employees
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Employee ID"
// @Param request body UpdatePermissionsRequest true "Permissions"
// @Success 200 {object} Employee
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /employees/{id}/permissions [put]
func (h *Handler) UpdatePermissions(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	var req UpdatePermissionsRequest
	if !response.BindJSON(c, &req) {
		return
	}

	e, err := h.service.UpdatePermissions(c.Request.Context(), id, req.Permissions)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, e)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		response.Fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "auth.invalid_login")
	case errors.Is(err, ErrInactive):
		response.Fail(c, http.StatusForbidden, "ACCOUNT_INACTIVE", "auth.forbidden")
	case errors.Is(err, ErrEmployeeNotFound):
		response.Fail(c, http.StatusNotFound, "EMPLOYEE_NOT_FOUND", "employee.not_found")
	case errors.Is(err, ErrEmailExists):
		response.Fail(c, http.StatusConflict, "EMAIL_EXISTS", "employee.email_exists")
	case errors.Is(err, ErrInvalidViewMode):
		response.Fail(c, http.StatusBadRequest, "INVALID_VIEW_MODE", "employee.view_mode")
	default:
		response.Internal(c, err)
	}
}
