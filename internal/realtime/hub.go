// Package realtime streams server events to connected clients over
// Server-Sent Events. Each connection is a Client registered with the Hub;
// events can target a single user or every connection.
package realtime

import (
	"sync"

	"github.com/kbukum/vibeapi/internal/logger"
)

// Client is one connected event stream.
type Client struct {
	id     string
	userID string
	events chan []byte
}

// NewClient creates a client for the given connection and user.
func NewClient(id, userID string) *Client {
	return &Client{
		id:     id,
		userID: userID,
		events: make(chan []byte, 256),
	}
}

// ID returns the connection identifier.
func (c *Client) ID() string { return c.id }

// UserID returns the owning user's ID.
func (c *Client) UserID() string { return c.userID }

// Events returns the channel the connection handler drains.
func (c *Client) Events() <-chan []byte { return c.events }

// send queues data for the client. Returns false when the client's buffer is
// full, which means the consumer is too slow.
func (c *Client) send(data []byte) bool {
	select {
	case c.events <- data:
		return true
	default:
		return false
	}
}

// Hub tracks connected clients and fans events out to them.
type Hub struct {
	log *logger.Logger

	mu      sync.RWMutex
	clients map[string]*Client
	closed  bool
}

// NewHub creates an empty hub.
func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		log:     log.WithComponent("realtime"),
		clients: make(map[string]*Client),
	}
}

// Register adds a client. Returns false if the hub is already shut down.
func (h *Hub) Register(client *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[client.id] = client

	h.log.Debug("Client connected", map[string]interface{}{
		"client_id": client.id,
		"user_id":   client.userID,
		"total":     len(h.clients),
	})
	return true
}

// Unregister removes a client and closes its event channel.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client.id]; !ok {
		return
	}
	delete(h.clients, client.id)
	close(client.events)

	h.log.Debug("Client disconnected", map[string]interface{}{
		"client_id": client.id,
		"total":     len(h.clients),
	})
}

// Broadcast sends an event to every connected client.
func (h *Hub) Broadcast(event Event) {
	data, err := event.encode()
	if err != nil {
		h.log.Error("Failed to encode event", map[string]interface{}{
			"type":  event.Type,
			"error": err.Error(),
		})
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		if !client.send(data) {
			h.log.Warn("Client buffer full, dropping event", map[string]interface{}{
				"client_id": client.id,
			})
		}
	}
}

// SendToUser sends an event to every connection belonging to the user.
func (h *Hub) SendToUser(userID string, event Event) {
	data, err := event.encode()
	if err != nil {
		h.log.Error("Failed to encode event", map[string]interface{}{
			"type":  event.Type,
			"error": err.Error(),
		})
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		if client.userID != userID {
			continue
		}
		if !client.send(data) {
			h.log.Warn("Client buffer full, dropping event", map[string]interface{}{
				"client_id": client.id,
			})
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Shutdown disconnects every client and rejects further registrations.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, client := range h.clients {
		close(client.events)
		delete(h.clients, id)
	}
	h.log.Info("Realtime hub shut down")
}
