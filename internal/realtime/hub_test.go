package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mavinci/internal/domain/navigation"
	"mavinci/internal/pkg/jwt"
)

func TestPublishNotifiesListeners(t *testing.T) {
	hub := NewHub()
	var got []Change
	hub.OnChange(func(ch Change) { got = append(got, ch) })

	hub.Publish(Change{Table: "equipment_units", Event: EventUpdate, ID: 3})

	require.Len(t, got, 1)
	assert.Equal(t, "equipment_units", got[0].Table)
	assert.False(t, got[0].Timestamp.IsZero())
}

func newTestServer(t *testing.T) (*Hub, *jwt.Service, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewHub()
	jwtService := jwt.New("test-secret", time.Hour)
	router := gin.New()
	NewHandler(hub, jwtService, nil).RegisterRoutes(router.Group("/api/v1"))

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return hub, jwtService, srv
}

func dial(t *testing.T, srv *httptest.Server, token string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/realtime/ws?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) serverMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg serverMessage
	require.NoError(t, json.Unmarshal(raw, &msg))
	return msg
}

func TestWebSocketSubscribeAndReceive(t *testing.T) {
	hub, jwtService, srv := newTestServer(t)
	token, err := jwtService.GenerateToken(5, "employee", []string{"tasks"})
	require.NoError(t, err)
	conn := dial(t, srv, token)

	require.NoError(t, conn.WriteJSON(clientMessage{Type: "subscribe", Table: "task_comments", Filter: "task_id=eq.9"}))
	assert.Equal(t, "subscribed", readMessage(t, conn).Type)

	require.NoError(t, conn.WriteJSON(clientMessage{Type: "ping", Ref: "r1"}))
	pong := readMessage(t, conn)
	assert.Equal(t, "pong", pong.Type)
	assert.Equal(t, "r1", pong.Ref)

	hub.Publish(Change{Table: "task_comments", Event: EventInsert, ID: 1, Record: row{ID: 1, TaskID: 8}})
	hub.Publish(Change{Table: "task_comments", Event: EventInsert, ID: 2, Record: row{ID: 2, TaskID: 9}})

	msg := readMessage(t, conn)
	require.Equal(t, "change", msg.Type)
	require.NotNil(t, msg.Change)
	assert.Equal(t, int64(2), msg.Change.ID)
	assert.Equal(t, EventInsert, msg.Change.Event)
}

func TestWebSocketRejectsBadFilter(t *testing.T) {
	_, jwtService, srv := newTestServer(t)
	token, err := jwtService.GenerateToken(5, "employee", nil)
	require.NoError(t, err)
	conn := dial(t, srv, token)

	require.NoError(t, conn.WriteJSON(clientMessage{Type: "subscribe", Table: "tasks", Filter: "id>3"}))
	msg := readMessage(t, conn)
	assert.Equal(t, "error", msg.Type)
	assert.Equal(t, "INVALID_FILTER", msg.Code)
}

func TestWebSocketRequiresToken(t *testing.T) {
	_, _, srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/realtime/ws")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp2, err := http.Get(srv.URL + "/api/v1/realtime/ws?token=garbage")
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp2.StatusCode)
}

func TestWebSocketChecksModuleAccess(t *testing.T) {
	_, jwtService, srv := newTestServer(t)
	token, err := jwtService.GenerateToken(5, "employee", []string{"tasks"})
	require.NoError(t, err)
	conn := dial(t, srv, token)

	require.NoError(t, conn.WriteJSON(clientMessage{Type: "subscribe", Table: "offers"}))
	msg := readMessage(t, conn)
	assert.Equal(t, "error", msg.Type)
	assert.Equal(t, "FORBIDDEN", msg.Code)

	require.NoError(t, conn.WriteJSON(clientMessage{Type: "subscribe", Table: "secrets"}))
	assert.Equal(t, "UNKNOWN_TABLE", readMessage(t, conn).Code)

	require.NoError(t, conn.WriteJSON(clientMessage{Type: "subscribe", Table: "tasks"}))
	assert.Equal(t, "subscribed", readMessage(t, conn).Type)
}

func TestWebSocketScopesRecipientsToSelf(t *testing.T) {
	hub, jwtService, srv := newTestServer(t)
	token, err := jwtService.GenerateToken(5, "employee", nil)
	require.NoError(t, err)
	conn := dial(t, srv, token)

	require.NoError(t, conn.WriteJSON(clientMessage{Type: "subscribe", Table: "notification_recipients", Filter: "employee_id=eq.7"}))
	assert.Equal(t, "FORBIDDEN", readMessage(t, conn).Code)

	require.NoError(t, conn.WriteJSON(clientMessage{Type: "subscribe", Table: "notification_recipients"}))
	ack := readMessage(t, conn)
	assert.Equal(t, "subscribed", ack.Type)
	assert.Equal(t, "employee_id=eq.5", ack.Filter)

	hub.Publish(Change{Table: "notification_recipients", Event: EventInsert, ID: 1, Record: map[string]any{"id": 1, "employee_id": 7}})
	hub.Publish(Change{Table: "notification_recipients", Event: EventInsert, ID: 2, Record: map[string]any{"id": 2, "employee_id": 5}})

	msg := readMessage(t, conn)
	require.NotNil(t, msg.Change)
	assert.Equal(t, int64(2), msg.Change.ID)
}

func TestAuthorizeAdminSeesEveryModule(t *testing.T) {
	admin := navigation.NewAccess("admin", nil)
	for table := range tableModules {
		sub, err := authorize(admin, 1, Subscription{Table: table})
		require.NoError(t, err, table)
		if table == recipientsTable {
			assert.Equal(t, "employee_id=eq.1", sub.Filter.String())
		}
	}
}
