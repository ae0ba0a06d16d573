package web

import (
	"sync"

	"github.com/RevCBH/roomreport/internal/events"
)

// clientBuffer is how many events a stream may lag before it starts
// losing them.
const clientBuffer = 256

// Hub fans bus events out to the open event streams. A stream that falls
// behind loses events instead of stalling the bus.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	closed  bool
}

// Client is one open event stream.
type Client struct {
	id     string
	events chan events.Event
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[string]*Client)}
}

// Subscribe opens a stream under id. It reports false once the hub is
// closed.
func (h *Hub) Subscribe(id string) (*Client, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, false
	}

	c := &Client{id: id, events: make(chan events.Event, clientBuffer)}
	h.clients[id] = c
	return c, true
}

// Unsubscribe closes the stream for c if it is still open.
func (h *Hub) Unsubscribe(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if cur, ok := h.clients[c.id]; ok && cur == c {
		delete(h.clients, c.id)
		close(c.events)
	}
}

// Publish delivers e to every stream with buffer room.
func (h *Hub) Publish(e events.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		select {
		case c.events <- e:
		default:
		}
	}
}

// Close ends every stream and refuses new ones. Safe to call twice.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, c := range h.clients {
		close(c.events)
		delete(h.clients, id)
	}
}

// Count returns the number of open streams.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
