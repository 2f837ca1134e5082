package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 8 << 10
)

// client is one websocket connection. Only writePump writes to conn.
type client struct {
	id   string
	conn *websocket.Conn

	send chan []byte
	done chan struct{}
	once sync.Once
}

func newClient(id string, conn *websocket.Conn, sendBuffer int) *client {
	return &client{
		id:   id,
		conn: conn,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}
}

func (that *client) enqueue(data []byte) bool {
	select {
	case <-that.done:
		return false
	default:
	}

	select {
	case that.send <- data:
		return true
	default:
		return false
	}
}

func (that *client) close() {
	that.once.Do(func() {
		close(that.done)
	})
}

// readPump - reads frames until the connection fails and passes every text frame to handle.
func (that *client) readPump(readTimeout time.Duration, handle func(data []byte)) error {
	that.conn.SetReadLimit(maxMessageSize)

	if err := that.conn.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
		return err
	}

	that.conn.SetPongHandler(func(string) error {
		return that.conn.SetReadDeadline(time.Now().Add(readTimeout))
	})

	for {
		_, data, err := that.conn.ReadMessage()
		if err != nil {
			return err
		}

		handle(data)
	}
}

// writePump - drains the send buffer and keeps the connection alive with pings.
func (that *client) writePump(pingInterval time.Duration) error {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case data := <-that.send:
			if err := that.write(websocket.TextMessage, data); err != nil {
				return err
			}
		case <-ticker.C:
			if err := that.write(websocket.PingMessage, nil); err != nil {
				return err
			}
		case <-that.done:
			_ = that.write(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return nil
		}
	}
}

func (that *client) write(messageType int, data []byte) error {
	if err := that.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}

	return that.conn.WriteMessage(messageType, data)
}
