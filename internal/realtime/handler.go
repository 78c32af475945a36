package realtime

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"mavinci/internal/domain/navigation"
	"mavinci/internal/pkg/jwt"
	"mavinci/internal/pkg/response"
)

type Handler struct {
	hub        *Hub
	jwtService *jwt.Service
	upgrader   websocket.Upgrader
}

// NewHandler builds the websocket endpoint. checkOrigin may be nil to allow
// any origin.
func NewHandler(hub *Hub, jwtService *jwt.Service, checkOrigin func(*http.Request) bool) *Handler {
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}
	return &Handler{
		hub:        hub,
		jwtService: jwtService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/realtime/ws", h.ServeWS)
}

// ServeWS handles GET /api/v1/realtime/ws?token=JWT
// Browsers cannot set headers on websocket requests, so the token is passed
// in the query string.
// @Summary Realtime change stream
// @Description Upgrades to a websocket. Clients subscribe to tables they have access to.
// @Tags Realtime
// @Param token query string true "Access token"
// @Success 101 {string} string "Switching Protocols"
// @Failure 401 {object} map[string]interface{}
// @Router /realtime/ws [get]
func (h *Handler) ServeWS(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Fail(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "auth.header_missing")
		return
	}
	claims, err := h.jwtService.ValidateToken(token)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, "INVALID_TOKEN", "auth.invalid_token")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("realtime_upgrade_failed employee_id=%d error=%v", claims.EmployeeID, err)
		return
	}
	h.hub.ServeWS(conn, claims.EmployeeID, navigation.NewAccess(claims.Role, claims.Permissions))
}
