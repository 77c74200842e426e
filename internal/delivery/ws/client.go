package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/mmuslimabdulj/goat-wolf/internal/domain"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second // Relaxed to 60s for mobile stability

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10
)

// Client is a single websocket connection attached to one room's hub.
// The ID doubles as the connection identity the engine tracks seats by.
type Client struct {
	ID   string
	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	done      chan struct{}
	closeOnce sync.Once
}

// NewClient creates a client for an upgraded connection
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		ID:   uuid.New().String(),
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 256),
		done: make(chan struct{}),
	}
}

// ReadPump pumps messages from the websocket connection into the hub
func (c *Client) ReadPump() {
	defer func() {
		c.hub.ClientClosed(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(int64(c.hub.maxMessageSize))
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.Debug().Str("conn", c.ID).Err(err).Msg("unexpected close")
			}
			break
		}

		var incoming struct {
			Type    domain.MessageType `json:"type"`
			Payload json.RawMessage    `json:"payload"`
		}
		if err := json.Unmarshal(raw, &incoming); err != nil {
			c.hub.log.Debug().Str("conn", c.ID).Msg("malformed frame dropped")
			continue
		}

		c.hub.route(c, incoming.Type, incoming.Payload)
	}
}

// WritePump pumps messages from the hub to the websocket connection
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current websocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
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

// Send queues a frame for delivery, dropping it if the client is slow
// or already gone. The engine relies on this never blocking.
func (c *Client) Send(msg []byte) {
	select {
	case <-c.done:
	case c.send <- msg:
	default:
	}
}

// Close signals the write pump to send a close frame and stop. Safe to
// call from multiple goroutines.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}
