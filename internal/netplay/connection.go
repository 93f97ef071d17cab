package netplay

import (
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 64
)

// MessageHandler handles one inbound frame. Calls are strictly sequential
// for a given connection.
type MessageHandler interface {
	HandleMessage(conn *Connection, message []byte)
}

// Connection wraps the WebSocket connection with an outbound queue
type Connection struct {
	ws     *websocket.Conn
	send   chan []byte
	logger *zap.Logger
}

// NewConnection creates a new connection wrapper
func NewConnection(ws *websocket.Conn, logger *zap.Logger) *Connection {
	return &Connection{
		ws:     ws,
		send:   make(chan []byte, sendBuffer),
		logger: logger,
	}
}

// ReadPump reads frames and hands them to h one at a time. It returns when
// the peer goes away and closes the outbound queue.
func (c *Connection) ReadPump(h MessageHandler) {
	defer func() {
		close(c.send)
		c.ws.Close()
	}()

	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("error reading message", zap.Error(err))
			}
			return
		}
		h.HandleMessage(c, message)
	}
}

// WritePump drains the outbound queue and keeps the connection alive with pings
func (c *Connection) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
				c.logger.Debug("write failed", zap.Error(err))
				return
			}
		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Send queues an encoded frame. A client that stops reading is dropped.
func (c *Connection) Send(t MessageType, payload any) {
	data, err := encode(t, payload)
	if err != nil {
		c.logger.Error("failed to encode message", zap.String("type", string(t)), zap.Error(err))
		return
	}

	select {
	case c.send <- data:
	default:
		c.logger.Warn("send queue full, closing connection")
		c.ws.Close()
	}
}
