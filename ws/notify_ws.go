package ws

import (
	"errors"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"cafebot/pkg/view"
	"cafebot/utils"
)

// NotifyHub pushes order notifications to connected gateway sessions. One
// user may hold several connections; a send is delivered to each of them
// independently, and a dead connection is dropped without affecting the rest.
type NotifyHub struct {
	mu        sync.Mutex
	clients   map[uint]map[*websocket.Conn]bool // user id -> connections
	jwtSecret string
}

func NewNotifyHub(jwtSecret string) *NotifyHub {
	return &NotifyHub{
		clients:   make(map[uint]map[*websocket.Conn]bool),
		jwtSecret: jwtSecret,
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ErrNotConnected reports a recipient with no live connection. Callers treat
// it like any other delivery failure: log and move on.
var ErrNotConnected = errors.New("recipient not connected")

// HandleWebSocket upgrades GET /ws/notifications?token=<jwt>. The token is the
// same session JWT the REST surface uses; browsers cannot set headers on
// websocket dials, hence the query parameter.
func (h *NotifyHub) HandleWebSocket(c *gin.Context) {
	claims, err := utils.ParseToken(c.Query("token"), h.jwtSecret)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade failed for user %d: %v", claims.UserID, err)
		return
	}

	h.register(claims.UserID, conn)

	go func() {
		defer h.unregister(claims.UserID, conn)
		for {
			// Inbound frames are ignored; the read loop only detects closure.
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *NotifyHub) register(userID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*websocket.Conn]bool)
	}
	h.clients[userID][conn] = true
}

func (h *NotifyHub) unregister(userID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.clients[userID]; ok {
		if conns[conn] {
			delete(conns, conn)
			conn.Close()
		}
		if len(conns) == 0 {
			delete(h.clients, userID)
		}
	}
}

// Notify implements services.Notifier. At-most-once per connection, no retry.
func (h *NotifyHub) Notify(userID uint, v *view.View) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns := h.clients[userID]
	if len(conns) == 0 {
		return ErrNotConnected
	}

	delivered := false
	for conn := range conns {
		if err := conn.WriteJSON(v); err != nil {
			log.Printf("ws write to user %d failed: %v", userID, err)
			conn.Close()
			delete(conns, conn)
			continue
		}
		delivered = true
	}
	if !delivered {
		return ErrNotConnected
	}
	return nil
}
