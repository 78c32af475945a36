package navigation

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"mavinci/internal/pkg/response"
)

// OrderStore persists an employee's custom sidebar order.
type OrderStore interface {
	NavigationOrder(ctx context.Context, employeeID int64) ([]string, error)
	SaveNavigationOrder(ctx context.Context, employeeID int64, order []string) ([]string, error)
}

type Handler struct {
	store OrderStore
}

func NewHandler(store OrderStore) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/navigation", h.Get)
	r.PUT("/navigation/order", h.SaveOrder)
}

type SaveOrderRequest struct {
	Order []string `json:"order" validate:"max=50"`
}

type Response struct {
	Items []Item   `json:"items"`
	Order []string `json:"order"`
}

func access(c *gin.Context) Access {
	return NewAccess(c.GetString("role"), c.GetStringSlice("permissions"))
}

// Get handles GET /api/v1/navigation
// @Summary Sidebar navigation
// @Tags Navigation
// @Security BearerAuth
// @Produce json
// @Success 200 {object} Response
// @Failure 401 {object} map[string]interface{}
// @Router /navigation [get]
func (h *Handler) Get(c *gin.Context) {
	order, err := h.store.NavigationOrder(c.Request.Context(), c.GetInt64("employee_id"))
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.Success(c, http.StatusOK, Response{
		Items: Filter(Master, access(c), order),
		Order: order,
	})
}

// SaveOrder handles PUT /api/v1/navigation/order
// @Summary Save sidebar order
// @Tags Navigation
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body SaveOrderRequest true "Module keys in order"
// @Success 200 {object} Response
// @Failure 400 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /navigation/order [put]
func (h *Handler) SaveOrder(c *gin.Context) {
	var req SaveOrderRequest
	if !response.BindJSON(c, &req) {
		return
	}

	order, err := h.store.SaveNavigationOrder(c.Request.Context(), c.GetInt64("employee_id"), req.Order)
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.Success(c, http.StatusOK, Response{
		Items: Filter(Master, access(c), order),
		Order: order,
	})
}
