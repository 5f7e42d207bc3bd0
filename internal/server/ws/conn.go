package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 4096
	sendBufferSize = 32
)

// Conn wraps one authenticated websocket connection. Writes go through the
// send channel so only the write pump touches the underlying socket.
type Conn struct {
	ws       *websocket.Conn
	send     chan []byte
	username string

	mu      sync.Mutex
	created []string // rooms this connection created, for cleanup on close
}

func newConn(ws *websocket.Conn, username string) *Conn {
	return &Conn{
		ws:       ws,
		send:     make(chan []byte, sendBufferSize),
		username: username,
	}
}

func (c *Conn) trackCreated(roomID string) {
	c.mu.Lock()
	c.created = append(c.created, roomID)
	c.mu.Unlock()
}

func (c *Conn) createdRooms() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.created...)
}

// writePump drains the send channel onto the socket and keeps the connection
// alive with pings. It exits when the send channel is closed or a write
// fails.
func (c *Conn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
