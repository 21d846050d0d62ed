// Package ws pushes connection-status changes to dashboard clients and
// accepts their disconnect/reset commands.
package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/ricacasa/concierge/internal/status"
	"github.com/ricacasa/concierge/internal/transport"
)

// Message is the envelope exchanged with dashboard clients.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

func newClient(conn *websocket.Conn) *client {
	c := &client{
		conn: conn,
		send: make(chan []byte, 16),
	}
	go c.writePump()
	return c
}

func (c *client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

func (c *client) close() {
	close(c.send)
}

// Hub fans status snapshots out to every connected dashboard. It is the
// status.Sink for the tracker.
type Hub struct {
	controller transport.Client
	token      string
	upgrader   websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]bool
	last    *status.Snapshot
}

// NewHub returns a Hub that forwards disconnect/reset commands to the
// controller. token gates the upgrade; empty means open access.
func NewHub(controller transport.Client, token string) *Hub {
	return &Hub{
		controller: controller,
		token:      token,
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		clients: make(map[*client]bool),
	}
}

// SetController configures the transport client driven by dashboard
// commands. Must be called before the hub starts serving.
func (h *Hub) SetController(c transport.Client) {
	h.controller = c
}

// Publish broadcasts a status snapshot to all connected dashboards.
func (h *Hub) Publish(snap status.Snapshot) {
	data, err := encode("status", snap)
	if err != nil {
		log.Printf("[ws] encode status: %v", err)
		return
	}

	h.mu.Lock()
	h.last = &snap
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			// Slow client; it will catch up on the next change.
		}
	}
	h.mu.Unlock()
}

// ServeHTTP upgrades a dashboard connection, replays the latest status
// and then serves commands until the peer goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.token != "" && r.URL.Query().Get("token") != h.token {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade: %v", err)
		return
	}

	c := newClient(conn)

	h.mu.Lock()
	h.clients[c] = true
	last := h.last
	h.mu.Unlock()

	if last != nil {
		if data, err := encode("status", *last); err == nil {
			c.send <- data
		}
	}

	go h.readPump(c)
}

func (h *Hub) readPump(c *client) {
	defer h.remove(c)

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("[ws] bad command payload: %v", err)
			continue
		}
		h.handleCommand(msg)
	}
}

func (h *Hub) handleCommand(msg Message) {
	if h.controller == nil {
		return
	}

	switch msg.Type {
	case "disconnect":
		if err := h.controller.Disconnect(context.Background()); err != nil {
			log.Printf("[ws] disconnect command: %v", err)
		}
	case "reset":
		if err := h.controller.Reset(context.Background()); err != nil {
			log.Printf("[ws] reset command: %v", err)
		}
	default:
		log.Printf("[ws] unknown command type %q", msg.Type)
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		c.close()
	}
	h.mu.Unlock()
}

func encode(msgType string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Message{Type: msgType, Payload: raw})
}
