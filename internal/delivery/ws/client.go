package ws

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/mmuslimabdulj/spyroom/internal/domain"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second // Relaxed to 60s for mobile stability

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Outgoing buffer per connection
	sendBuffer = 256
)

// Client represents a single websocket connection. Its ID is the transport
// id the coordinator binds players to; a reconnect gets a fresh one.
type Client struct {
	ID         string
	RemoteAddr string
	hub        *Hub
	conn       *websocket.Conn
	send       chan []byte
	limiter    *rate.Limiter
	closeOnce  sync.Once
}

// NewClient creates a new Client
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	c := &Client{
		ID:      uuid.New().String(),
		hub:     hub,
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
		limiter: rate.NewLimiter(hub.opts.IntentRate, hub.opts.IntentBurst),
	}
	if conn != nil {
		c.RemoteAddr = conn.RemoteAddr().String()
	}
	return c
}

// ReadPump pumps intents from the websocket connection to the handler
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(c.hub.opts.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.Debug("read failed", "transport", c.ID, "err", err)
			}
			break
		}
		c.dispatch(message)
	}
}

// dispatch forwards one raw intent, subject to the per-connection limiter
func (c *Client) dispatch(message []byte) {
	if !c.limiter.Allow() {
		c.hub.SendToTransport(c.ID, domain.MessageTypeError, domain.ErrorPayload{
			Code:   "rate_limited",
			Reason: "Too many requests, slow down.",
		})
		return
	}
	if c.hub.handler != nil {
		c.hub.handler.Handle(c.ID, message)
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
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			// One JSON document per frame
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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

// Send adds a message to the client's send queue. A slow reader loses
// messages rather than stalling everyone else.
func (c *Client) Send(msg []byte) {
	select {
	case c.send <- msg:
	default:
		c.hub.log.Warn("send buffer full, dropping message", "transport", c.ID)
	}
}

// terminate closes the socket; ReadPump then unregisters the client.
// Connectionless clients (tests) unregister directly.
func (c *Client) terminate() {
	c.closeOnce.Do(func() {
		if c.conn != nil {
			c.conn.Close()
			return
		}
		c.hub.Unregister(c)
	})
}
