// Package wsclient manages one WebSocket subscriber connection.
package wsclient

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mgaribay43/bok-choy-league-sub001/pkg/models"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 512

	// Buffer size for outbound messages
	sendBufferSize = 256
)

// Message types for WebSocket communication
const (
	MessageTypeWinProbUpdate = "winprob_update"
	MessageTypeSubscribe     = "subscribe"
	MessageTypeUnsubscribe   = "unsubscribe"
)

// ClientMessage is a message from client to server.
type ClientMessage struct {
	Type    string             `json:"type"`
	Payload SubscriptionFilter `json:"payload,omitempty"`
}

// ServerMessage is a message from server to client.
type ServerMessage struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// SubscriptionFilter narrows which matchups a client receives.
type SubscriptionFilter struct {
	Matchups []string `json:"matchups,omitempty"` // matchup IDs; empty = all
}

// Hub is the part of the broadcast hub a client needs.
type Hub interface {
	Unregister(c *Client)
}

// Client represents one WebSocket subscriber.
type Client struct {
	ID       string
	conn     *websocket.Conn
	Send     chan ServerMessage // exported for hub access
	hub      Hub
	filter   SubscriptionFilter
	filterMu sync.RWMutex
}

// New creates a client over an upgraded connection.
func New(id string, conn *websocket.Conn, hub Hub) *Client {
	return &Client{
		ID:   id,
		conn: conn,
		Send: make(chan ServerMessage, sendBufferSize),
		hub:  hub,
	}
}

// ReadPump pumps subscription messages from the connection to the client.
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-ctx.Done():
			return
		default:
			var msg ClientMessage
			if err := c.conn.ReadJSON(&msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Printf("[ws] client %s unexpected close: %v", c.ID, err)
				}
				return
			}
			c.handleClientMessage(msg)
		}
	}
}

// WritePump pumps messages from the hub to the connection.
func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case message, ok := <-c.Send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(message); err != nil {
				log.Printf("[ws] client %s write error: %v", c.ID, err)
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

// TrySend sends a message without blocking. Returns false when the client's
// buffer is full.
func (c *Client) TrySend(msg ServerMessage) bool {
	select {
	case c.Send <- msg:
		return true
	default:
		return false
	}
}

// MatchesFilter reports whether the client subscribed to this update.
func (c *Client) MatchesFilter(update models.WinProbUpdate) bool {
	c.filterMu.RLock()
	defer c.filterMu.RUnlock()

	if len(c.filter.Matchups) == 0 {
		return true
	}
	for _, id := range c.filter.Matchups {
		if id == update.MatchupID {
			return true
		}
	}
	return false
}

func (c *Client) handleClientMessage(msg ClientMessage) {
	switch msg.Type {
	case MessageTypeSubscribe:
		c.filterMu.Lock()
		c.filter = msg.Payload
		c.filterMu.Unlock()
	case MessageTypeUnsubscribe:
		c.filterMu.Lock()
		c.filter = SubscriptionFilter{}
		c.filterMu.Unlock()
	default:
		log.Printf("[ws] client %s sent unknown message type %q", c.ID, msg.Type)
	}
}
