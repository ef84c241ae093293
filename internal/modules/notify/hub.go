package notify

import (
	"strings"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub tracks one websocket connection per user, keyed by lower-cased
// email. A reconnect replaces the old connection.
type Hub struct {
	connections map[string]*websocket.Conn
	mutex       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[string]*websocket.Conn),
	}
}

func (h *Hub) Register(email string, conn *websocket.Conn) {
	key := strings.ToLower(email)

	h.mutex.Lock()
	defer h.mutex.Unlock()

	if oldConn, exists := h.connections[key]; exists && oldConn != nil {
		_ = oldConn.Close()
	}

	h.connections[key] = conn
}

func (h *Hub) Unregister(email string) {
	key := strings.ToLower(email)

	h.mutex.Lock()
	defer h.mutex.Unlock()

	if conn, exists := h.connections[key]; exists && conn != nil {
		_ = conn.Close()
		delete(h.connections, key)
	}
}

func (h *Hub) SendToUser(email string, message interface{}) bool {
	key := strings.ToLower(email)

	h.mutex.RLock()
	conn, exists := h.connections[key]
	h.mutex.RUnlock()

	if !exists || conn == nil {
		return false
	}

	if err := conn.WriteJSON(message); err != nil {
		h.Unregister(key)
		return false
	}

	return true
}

func (h *Hub) IsOnline(email string) bool {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	_, exists := h.connections[strings.ToLower(email)]
	return exists
}

func (h *Hub) GetOnlineCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.connections)
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for email, conn := range h.connections {
		if conn != nil {
			_ = conn.Close()
		}
		delete(h.connections, email)
	}
}
