package websocket

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/battleship-backend/internal/entity"
)

func newTestHub() *Hub {
	return NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func isClosed(c *client) bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

func TestHub_Send(t *testing.T) {
	t.Run("Message is queued for a live client", func(t *testing.T) {
		hub := newTestHub()
		c := newClient("a", nil, 4)
		hub.register(c)

		hub.Send("a", entity.ActionIncomingAttack, entity.IncomingAttackPayload{TargetIndex: 7, AttackerID: "b"})

		require.Len(t, c.send, 1)
		assert.JSONEq(t, `{"action":"incoming_attack","payload":{"targetIndex":7,"attackerId":"b"}}`, string(<-c.send))
		assert.False(t, isClosed(c))
	})

	t.Run("Full buffer closes the connection", func(t *testing.T) {
		// Given: a client whose buffer holds a single message
		hub := newTestHub()
		c := newClient("a", nil, 1)
		hub.register(c)

		// When: two events are sent before the writer drains the buffer
		hub.Send("a", entity.ActionIncomingAttack, entity.IncomingAttackPayload{TargetIndex: 0, AttackerID: "b"})
		hub.Send("a", entity.ActionGameWon, entity.GameWonPayload{WinnerName: "Alice"})

		// Then: the client is closed and no longer registered
		assert.True(t, isClosed(c))

		hub.mu.RLock()
		_, registered := hub.clients["a"]
		hub.mu.RUnlock()
		assert.False(t, registered)

		// And: later events are not queued
		hub.Send("a", entity.ActionOpponentLeft, nil)
		assert.Len(t, c.send, 1)
	})

	t.Run("Unknown player is ignored", func(t *testing.T) {
		hub := newTestHub()

		assert.NotPanics(t, func() {
			hub.Send("ghost", entity.ActionWaiting, entity.WaitingPayload{Text: entity.WaitingText})
		})
	})

	t.Run("Stale client does not unregister its replacement", func(t *testing.T) {
		hub := newTestHub()
		old := newClient("a", nil, 1)
		replacement := newClient("a", nil, 1)
		hub.register(old)
		hub.register(replacement)

		hub.unregister(old)

		hub.mu.RLock()
		current := hub.clients["a"]
		hub.mu.RUnlock()
		assert.Same(t, replacement, current)
		assert.True(t, isClosed(old))
	})
}
