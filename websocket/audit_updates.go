// Package websocket streams audit events to connected dashboard clients.
package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dangtoan2205/asset-manager-sub000/models"
	"github.com/dangtoan2205/asset-manager-sub000/utils"
)

// AuditEvent is the wire format pushed to clients on every mutation.
type AuditEvent struct {
	Type       string      `json:"type"` // e.g. DEVICE_CREATED, INVOICE_ITEM_PROCESSED
	EntityType string      `json:"entityType"`
	EntityID   string      `json:"entityId,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	UserID     string      `json:"userId,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

type auditHub struct {
	mutex   sync.Mutex
	clients map[*client]bool
}

var hub = &auditHub{clients: make(map[*client]bool)}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWS upgrades the connection. WebSocket clients authenticate with a
// token query parameter since browsers cannot set headers on upgrade.
func ServeWS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "token required", http.StatusUnauthorized)
		return
	}
	if _, err := utils.ValidateJWT(token); err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, 16)}
	hub.mutex.Lock()
	hub.clients[c] = true
	hub.mutex.Unlock()
	log.Printf("websocket client connected (%d total)", clientCount())

	go c.writePump()
	go c.readPump()
}

func clientCount() int {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	return len(hub.clients)
}

// dropLocked removes the client and closes its send channel exactly once,
// which lets writePump exit. Callers must hold hub.mutex.
func (h *auditHub) dropLocked(c *client) {
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

func (c *client) readPump() {
	defer func() {
		hub.mutex.Lock()
		hub.dropLocked(c)
		hub.mutex.Unlock()
		c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	for {
		// Clients never send application messages; the read loop exists to
		// detect disconnects.
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

// BroadcastAudit pushes an audit log entry to all connected clients.
func BroadcastAudit(entry *models.AuditLog) {
	event := AuditEvent{
		Type:       entry.Action,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID.Hex(),
		Data:       entry.Details,
		UserID:     entry.UserID.Hex(),
		Timestamp:  entry.CreatedAt,
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("failed to marshal audit event: %v", err)
		return
	}

	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	for c := range hub.clients {
		select {
		case c.send <- data:
		default:
			hub.dropLocked(c)
		}
	}
}
