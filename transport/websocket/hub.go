package websocket

import (
	"log/slog"
	"sync"
)

// Hub maps player ids to live connections and delivers outgoing messages to them.
type Hub struct {
	logger *slog.Logger

	mu      sync.RWMutex
	clients map[string]*client
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:  logger.With("component", "ws_hub"),
		clients: make(map[string]*client),
	}
}

func (that *Hub) register(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.clients[c.id] = c
}

func (that *Hub) unregister(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if current, ok := that.clients[c.id]; ok && current == c {
		delete(that.clients, c.id)
	}

	c.close()
}

// Send - encodes the message and queues it on the player's connection.
// It never blocks. A connection whose buffer is full is closed, its read loop then disconnects the player.
func (that *Hub) Send(playerID, action string, payload any) {
	log := that.logger.With("method", "Send", "playerID", playerID, "action", action)

	data, err := encode(action, payload)
	if err != nil {
		log.Error("failed to encode message", "error", err)
		return
	}

	that.mu.RLock()
	c, ok := that.clients[playerID]
	that.mu.RUnlock()

	if !ok {
		log.Debug("player is not connected, message dropped")
		return
	}

	if !c.enqueue(data) {
		log.Warn("send buffer is full, closing connection")
		that.unregister(c)
	}
}
