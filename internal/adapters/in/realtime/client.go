package realtime

import (
	"sync"

	"craftorders/internal/core/ports"
)

// sendBufferSize bounds the per-connection outbound queue. A client that
// cannot drain this many events is considered dead and disconnected.
const sendBufferSize = 64

// wsConn is the subset of the websocket connection the client uses.
// *websocket.Conn satisfies it; tests substitute an in-memory fake.
type wsConn interface {
	ReadJSON(v any) error
	WriteJSON(v any) error
	Close() error
}

// Client is one authenticated websocket connection. Outbound events pass
// through a single buffered channel, so every client observes events in the
// order they were enqueued.
type Client struct {
	identity ports.Identity
	conn     wsConn

	send      chan OutboundEnvelope
	closeOnce sync.Once
	done      chan struct{}
}

// NewClient wraps an accepted connection with its verified identity.
func NewClient(identity ports.Identity, conn wsConn) *Client {
	return &Client{
		identity: identity,
		conn:     conn,
		send:     make(chan OutboundEnvelope, sendBufferSize),
		done:     make(chan struct{}),
	}
}

// Identity returns the verified claims of this connection.
func (c *Client) Identity() ports.Identity {
	return c.identity
}

// ID returns the connection's user id.
func (c *Client) ID() string {
	return c.identity.ID
}

// Enqueue queues an event for delivery. Returns false when the client's
// buffer is full or the connection is closing; the caller then drops the
// client.
func (c *Client) Enqueue(env OutboundEnvelope) bool {
	select {
	case <-c.done:
		return false
	default:
	}

	select {
	case c.send <- env:
		return true
	default:
		return false
	}
}

// WritePump drains the send queue onto the connection. Runs in its own
// goroutine per connection and exits when Close is called or a write fails.
func (c *Client) WritePump() {
	for {
		select {
		case <-c.done:
			return
		case env := <-c.send:
			if err := c.conn.WriteJSON(env); err != nil {
				c.Close()
				return
			}
		}
	}
}

// Read blocks for the next inbound frame.
func (c *Client) Read() (InboundEnvelope, error) {
	var env InboundEnvelope
	err := c.conn.ReadJSON(&env)
	return env, err
}

// Close tears the connection down. Idempotent.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}
