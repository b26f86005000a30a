// Package ws is the live-preview channel of the serve mode: every
// generation performed through the API is broadcast to connected clients.
package ws

import (
	"log/slog"
	"sync"
)

// Hub manages WebSocket connections and broadcasts messages to all clients.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	logger     *slog.Logger
	mu         sync.RWMutex

	// last holds the most recent generation message, replayed to clients
	// on connect and on sync requests.
	last   []byte
	lastMu sync.RWMutex
}

// NewHub creates a new WebSocket hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger,
	}
}

// Run starts the hub's event loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Debug("websocket client connected")

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			h.logger.Debug("websocket client disconnected")

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Broadcast sends a message to all connected clients.
func (h *Hub) Broadcast(message []byte) {
	h.broadcast <- message
}

// BroadcastGeneration broadcasts a generation result and remembers it for
// late-joining clients.
func (h *Hub) BroadcastGeneration(ev GenerationEvent) {
	msg, err := NewMessage(MsgGeneration, ev)
	if err != nil {
		h.logger.Error("failed to create generation message", "error", err)
		return
	}
	h.lastMu.Lock()
	h.last = msg
	h.lastMu.Unlock()
	h.Broadcast(msg)
}

// BroadcastError broadcasts an error to all clients.
func (h *Hub) BroadcastError(errMsg string) {
	msg, err := NewMessage(MsgError, map[string]string{"message": errMsg})
	if err != nil {
		return
	}
	h.Broadcast(msg)
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) lastResult() []byte {
	h.lastMu.RLock()
	defer h.lastMu.RUnlock()
	return h.last
}
