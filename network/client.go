package network

import (
	"sync"
	"time"

	"whackamole/protocol"

	"github.com/gorilla/websocket"
)

// Client wraps one websocket connection. gorilla allows a single writer at a
// time and we write from the read loop, timer callbacks, and the ping loop,
// so every write goes through c.mu.
type Client struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func newClient(conn *websocket.Conn) *Client {
	return &Client{conn: conn}
}

func (c *Client) Send(b []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(protocol.WriteTimeoutSec * time.Second))
	return c.conn.WriteMessage(websocket.TextMessage, b)
}

func (c *Client) Ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(protocol.WriteTimeoutSec * time.Second))
	return c.conn.WriteMessage(websocket.PingMessage, nil)
}

func (c *Client) Close() error {
	return c.conn.Close()
}
