// Package hub fans win-probability updates out to WebSocket clients.
package hub

import (
	"context"
	"log"
	"time"

	"github.com/mgaribay43/bok-choy-league-sub001/internal/metrics"
	"github.com/mgaribay43/bok-choy-league-sub001/internal/wsclient"
	"github.com/mgaribay43/bok-choy-league-sub001/pkg/models"
)

const broadcastBufferSize = 1000

// Hub maintains the set of active clients and broadcasts updates to them.
type Hub struct {
	clients    map[*wsclient.Client]bool
	broadcast  chan models.WinProbUpdate
	register   chan *wsclient.Client
	unregister chan *wsclient.Client
	done       chan struct{}
}

// New creates a new Hub.
func New() *Hub {
	return &Hub{
		clients:    make(map[*wsclient.Client]bool),
		broadcast:  make(chan models.WinProbUpdate, broadcastBufferSize),
		register:   make(chan *wsclient.Client),
		unregister: make(chan *wsclient.Client),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's main loop and blocks until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	log.Printf("[hub] started")

	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case c := <-h.register:
			h.clients[c] = true
			metrics.WSConnections.Set(float64(len(h.clients)))
			log.Printf("[hub] client %s connected (total: %d)", c.ID, len(h.clients))

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.Send)
				metrics.WSConnections.Set(float64(len(h.clients)))
				log.Printf("[hub] client %s disconnected (total: %d)", c.ID, len(h.clients))
			}

		case update := <-h.broadcast:
			h.broadcastUpdate(update)
		}
	}
}

// Register adds a client to the hub. No-op once the hub has shut down.
func (h *Hub) Register(c *wsclient.Client) {
	select {
	case h.register <- c:
	case <-h.done:
	}
}

// Unregister removes a client from the hub. No-op once the hub has shut
// down, so late disconnects never block on an unserviced channel.
func (h *Hub) Unregister(c *wsclient.Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Broadcast queues an update for fanout. Non-blocking; drops when the
// buffer is full rather than stalling the stream consumer.
func (h *Hub) Broadcast(update models.WinProbUpdate) {
	select {
	case h.broadcast <- update:
	default:
		log.Printf("[hub] broadcast buffer full, dropping update for matchup %s", update.MatchupID)
	}
}

func (h *Hub) broadcastUpdate(update models.WinProbUpdate) {
	message := wsclient.ServerMessage{
		Type:      wsclient.MessageTypeWinProbUpdate,
		Payload:   update,
		Timestamp: time.Now(),
	}

	for c := range h.clients {
		if !c.MatchesFilter(update) {
			continue
		}
		if c.TrySend(message) {
			metrics.WSMessagesSent.Inc()
		} else {
			// Buffer full means the client stopped draining; cut it loose.
			log.Printf("[hub] client %s buffer full, disconnecting", c.ID)
			go h.Unregister(c)
		}
	}
}

func (h *Hub) shutdown() {
	log.Printf("[hub] shutting down (%d active clients)", len(h.clients))
	close(h.done)
	for c := range h.clients {
		close(c.Send)
		delete(h.clients, c)
	}
}
