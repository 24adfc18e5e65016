package ws

import (
	"context"
	"encoding/json"
	"time"

	"pulse-server/internal/domain"
	"pulse-server/internal/logger"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
	sendBuffer     = 16
)

type Client struct {
	ctx    context.Context
	cancel context.CancelFunc

	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	log logger.Logger

	ID string
}

func NewClient(hub *Hub, conn *websocket.Conn, log logger.Logger, id string) *Client {
	ctx, cancel := context.WithCancel(hub.ctx)

	return &Client{
		ctx:    ctx,
		cancel: cancel,

		hub:  hub,
		conn: conn,
		send: make(chan []byte, sendBuffer),

		log: log,

		ID: id,
	}
}

func (c *Client) readPump() {
	defer func() {
		c.cancel()
		select {
		case c.hub.unregister <- c:
		case <-c.hub.ctx.Done():
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.Warn("ws: client disconnected unexpected", "error", err)
			}
			return
		}

		var msg domain.WsClientMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			c.log.Debug("ws: invalid client message", "error", err)
			continue
		}

		sub := &Subscription{client: c, channel: msg.Channel}
		switch msg.Type {
		case domain.WsSubscribe:
			c.forward(c.hub.subscribe, sub)
		case domain.WsUnsubscribe:
			c.forward(c.hub.unsubscribe, sub)
		default:
			c.log.Debug("ws: unknown client message type", "type", msg.Type)
		}
	}
}

func (c *Client) forward(ch chan *Subscription, sub *Subscription) {
	select {
	case ch <- sub:
	case <-c.ctx.Done():
	}
}

func (c *Client) writePump() {
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
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

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
