package network

import (
	"sync"

	"whackamole/session"
)

// Hub tracks every live connection so one client can broadcast to the rest.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]struct{})}
}

func (h *Hub) add(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
}

// NumClients returns the current number of connected clients.
func (h *Hub) NumClients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends b to every client except exclude. Send errors are left to
// each connection's own read loop to notice and clean up.
func (h *Hub) Broadcast(b []byte, exclude session.Conn) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		if c == exclude {
			continue
		}
		_ = c.Send(b)
	}
}
