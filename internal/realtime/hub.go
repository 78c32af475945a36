// Package realtime fans row changes out to websocket clients and to
// in-process listeners.
package realtime

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"mavinci/internal/domain/navigation"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 64 * 1024
)

// Listener receives every published change.
type Listener func(Change)

type connection struct {
	employeeID int64
	access     navigation.Access
	conn       *websocket.Conn
	send       chan []byte
	subs       map[string]Subscription
}

// Hub manages active connections and listeners.
type Hub struct {
	mu          sync.RWMutex
	connections map[*connection]struct{}
	listeners   []Listener
	now         func() time.Time
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[*connection]struct{}),
		now:         time.Now,
	}
}

// OnChange registers an in-process listener.
func (h *Hub) OnChange(fn Listener) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.listeners = append(h.listeners, fn)
}

// Publish delivers ch to matching subscribers. Slow clients are skipped.
func (h *Hub) Publish(ch Change) {
	if ch.Timestamp.IsZero() {
		ch.Timestamp = h.now()
	}
	data, err := json.Marshal(serverMessage{Type: msgChange, Change: &ch})
	if err != nil {
		log.Printf("realtime_publish_error table=%s id=%d error=%v", ch.Table, ch.ID, err)
		return
	}

	h.mu.RLock()
	listeners := append([]Listener(nil), h.listeners...)
	for c := range h.connections {
		for _, sub := range c.subs {
			if !sub.Matches(ch) {
				continue
			}
			select {
			case c.send <- data:
			default:
			}
			break
		}
	}
	h.mu.RUnlock()

	for _, fn := range listeners {
		fn(ch)
	}
}

// Connections returns the number of open websocket clients.
func (h *Hub) Connections() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[c] = struct{}{}
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.connections[c]; ok {
		delete(h.connections, c)
		close(c.send)
	}
}

// ServeWS registers the connection and blocks until it closes. Subscriptions
// are limited to the tables access allows.
func (h *Hub) ServeWS(conn *websocket.Conn, employeeID int64, access navigation.Access) {
	c := &connection{
		employeeID: employeeID,
		access:     access,
		conn:       conn,
		send:       make(chan []byte, 256),
		subs:       make(map[string]Subscription),
	}
	h.register(c)

	go h.writePump(c)
	h.readPump(c)
}

func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("realtime_read_error employee_id=%d error=%v", c.employeeID, err)
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			h.reply(c, errorMessage("INVALID_JSON", "failed to parse message"))
			continue
		}

		switch msg.Type {
		case msgSubscribe, msgUnsubscribe:
			if msg.Table == "" {
				h.reply(c, errorMessage("INVALID_SUBSCRIPTION", "table is required"))
				continue
			}
			filter, err := ParseFilter(msg.Filter)
			if err != nil {
				h.reply(c, errorMessage("INVALID_FILTER", err.Error()))
				continue
			}
			sub, err := authorize(c.access, c.employeeID, Subscription{Table: msg.Table, Filter: filter})
			switch {
			case errors.Is(err, ErrUnknownTable):
				h.reply(c, errorMessage("UNKNOWN_TABLE", err.Error()))
				continue
			case err != nil:
				h.reply(c, errorMessage("FORBIDDEN", err.Error()))
				continue
			}
			h.mu.Lock()
			if msg.Type == msgSubscribe {
				c.subs[sub.key()] = sub
			} else {
				delete(c.subs, sub.key())
			}
			h.mu.Unlock()
			h.reply(c, serverMessage{Type: msg.Type + "d", Ref: msg.Ref, Table: sub.Table, Filter: sub.Filter.String()})
		case msgPing:
			h.reply(c, serverMessage{Type: msgPong, Ref: msg.Ref})
		default:
			h.reply(c, errorMessage("UNKNOWN_TYPE", "unknown message type: "+msg.Type))
		}
	}
}

func (h *Hub) reply(c *connection, msg serverMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.connections[c]; !ok {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
