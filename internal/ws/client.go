// Package ws is the websocket transport for the table: it owns the
// connections, feeds inbound messages into the game one at a time, and
// delivers the game's per-player projections.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const sendBufferSize = 64

var errSendBufferFull = errors.New("send buffer full")

// Client wraps one websocket connection. It is the game's message sink
// for the player behind it.
type Client struct {
	id   uuid.UUID
	conn *websocket.Conn
	send chan []byte
	log  *logrus.Entry
}

func newClient(conn *websocket.Conn, log *logrus.Logger) *Client {
	return &Client{
		conn: conn,
		send: make(chan []byte, sendBufferSize),
		log:  log.WithField("component", "ws"),
	}
}

// Send marshals a message and queues it for delivery. A slow consumer
// whose buffer is full loses the message rather than stalling the table.
func (c *Client) Send(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	select {
	case c.send <- data:
		return nil
	default:
		return errSendBufferFull
	}
}

// writePump drains the send queue onto the wire and keeps the
// connection alive with pings. Exits when the queue closes or a write
// fails.
func (c *Client) writePump(ctx context.Context) {
	ping := time.NewTicker(15 * time.Second)
	defer func() {
		ping.Stop()
		_ = c.conn.Close(websocket.StatusNormalClosure, "bye")
	}()
	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.conn.Write(ctx, websocket.MessageText, msg); err != nil {
				c.log.WithField("player", c.id).WithError(err).Debug("write failed")
				return
			}
		case <-ping.C:
			if err := c.conn.Ping(ctx); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
