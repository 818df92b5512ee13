package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"nexusmarket/pkg/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Client is one authenticated WebSocket connection.
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte
}

// Event is the envelope pushed to connected clients.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// Presence is notified when a user's first connection opens or last
// connection closes. The user usecase satisfies it.
type Presence interface {
	SetOnline(ctx context.Context, userID string, online bool) error
}

// Hub tracks active connections per user and fans events out to them.
// A user may hold several connections (tabs, devices) at once.
type Hub struct {
	clients    map[string]map[*Client]bool
	Register   chan *Client
	Unregister chan *Client
	presence   Presence
	mutex      sync.RWMutex
}

func NewHub(presence Presence) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		presence:   presence,
	}
}

// Start runs the hub loop until the context is cancelled.
func (h *Hub) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-h.Register:
				h.mutex.Lock()
				first := len(h.clients[client.UserID]) == 0
				if h.clients[client.UserID] == nil {
					h.clients[client.UserID] = make(map[*Client]bool)
				}
				h.clients[client.UserID][client] = true
				h.mutex.Unlock()

				if first && h.presence != nil {
					if err := h.presence.SetOnline(ctx, client.UserID, true); err != nil {
						logger.Warn("Failed to mark user %s online: %v", client.UserID, err)
					}
				}
				logger.Debug("Client registered: %s", client.UserID)

			case client := <-h.Unregister:
				h.mutex.Lock()
				removed := false
				if conns, ok := h.clients[client.UserID]; ok && conns[client] {
					delete(conns, client)
					close(client.Send)
					removed = true
					if len(conns) == 0 {
						delete(h.clients, client.UserID)
					}
				}
				// Only a removed connection can be the user's last one;
				// an unknown client must not flip presence.
				last := removed && len(h.clients[client.UserID]) == 0
				h.mutex.Unlock()

				if last && h.presence != nil {
					if err := h.presence.SetOnline(ctx, client.UserID, false); err != nil {
						logger.Warn("Failed to mark user %s offline: %v", client.UserID, err)
					}
				}
				logger.Debug("Client unregistered: %s", client.UserID)

			case <-ctx.Done():
				return
			}
		}
	}()
}

// NotifyUser pushes an event to every connection of the user. Satisfies the
// order usecase's Notifier. Slow connections are dropped rather than blocked
// on.
func (h *Hub) NotifyUser(userID string, event string, payload interface{}) {
	data, err := json.Marshal(Event{Type: event, Payload: payload})
	if err != nil {
		logger.Error("Failed to marshal event %s: %v", event, err)
		return
	}

	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for client := range h.clients[userID] {
		select {
		case client.Send <- data:
		default:
			logger.Warn("Dropping slow connection for user %s", userID)
		}
	}
}

// ReadPump drains the connection until it closes, keeping the pong deadline
// fresh. Incoming frames are ignored; the socket is push-only.
func (c *Client) ReadPump(h *Hub) {
	defer func() {
		h.Unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(4096)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Debug("Read error for %s: %v", c.UserID, err)
			}
			break
		}
	}
}

// WritePump writes queued events and pings until the send channel closes.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
