// Package ws
package ws

import (
	"context"
	"encoding/json"

	"pulse-server/internal/domain"
	"pulse-server/internal/logger"
)

// Hub fans published events out to websocket clients. All client and
// channel bookkeeping happens on the Run goroutine.
type Hub struct {
	ctx    context.Context
	cancel context.CancelFunc

	clients  map[*Client]bool
	channels map[string]map[*Client]bool

	register    chan *Client
	unregister  chan *Client
	subscribe   chan *Subscription
	unsubscribe chan *Subscription
	events      chan *domain.WsInternalEvent
	stats       chan chan int

	log logger.Logger
}

type Subscription struct {
	client  *Client
	channel string
}

func NewHub(parent context.Context, log logger.Logger) *Hub {
	ctx, cancel := context.WithCancel(parent)

	return &Hub{
		ctx:    ctx,
		cancel: cancel,

		clients:  make(map[*Client]bool),
		channels: make(map[string]map[*Client]bool),

		register:    make(chan *Client, 64),
		unregister:  make(chan *Client, 64),
		subscribe:   make(chan *Subscription, 64),
		unsubscribe: make(chan *Subscription, 64),
		events:      make(chan *domain.WsInternalEvent, 16),
		stats:       make(chan chan int),

		log: log,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.ctx.Done():
			h.log.Info("ws: hub shutting down...")
			for client := range h.clients {
				close(client.send)
			}
			return

		case c := <-h.register:
			h.clients[c] = true
			h.join(c, domain.WsChannelMetrics)
			h.log.Info("ws: client registered", "id", c.ID, "total_clients", len(h.clients))

		case c := <-h.unregister:
			h.remove(c)

		case sub := <-h.subscribe:
			if h.clients[sub.client] {
				h.join(sub.client, sub.channel)
			}

		case sub := <-h.unsubscribe:
			if subs, ok := h.channels[sub.channel]; ok {
				delete(subs, sub.client)
				if len(subs) == 0 {
					delete(h.channels, sub.channel)
				}
			}

		case ev := <-h.events:
			h.handleEvent(ev)

		case reply := <-h.stats:
			reply <- len(h.clients)
		}
	}
}

func (h *Hub) Stop() {
	h.cancel()
}

// Broadcast queues an event without blocking. When the queue is full the
// event is dropped; the next tick supersedes it anyway.
func (h *Hub) Broadcast(channel, event string, payload any) {
	ev := &domain.WsInternalEvent{Channel: channel, Event: event, Payload: payload}

	select {
	case h.events <- ev:
	case <-h.ctx.Done():
	default:
		h.log.Warn("ws: broadcast buffer full, dropping event", "event", event)
	}
}

// PublishSnapshot is the scheduler sink for live dashboards.
func (h *Hub) PublishSnapshot(m domain.Snapshot) {
	h.Broadcast(domain.WsChannelMetrics, domain.WsEventMetricsUpdated, m)
}

// Clients returns the number of connected clients, or -1 once the hub stopped.
func (h *Hub) Clients() int {
	reply := make(chan int, 1)
	select {
	case h.stats <- reply:
		return <-reply
	case <-h.ctx.Done():
		return -1
	}
}

func (h *Hub) join(c *Client, channel string) {
	if h.channels[channel] == nil {
		h.channels[channel] = make(map[*Client]bool)
	}
	h.channels[channel][c] = true
}

func (h *Hub) remove(c *Client) {
	if !h.clients[c] {
		return
	}

	delete(h.clients, c)
	close(c.send)
	h.log.Info("ws: client unregistered", "id", c.ID, "total_clients", len(h.clients))

	for chID, subs := range h.channels {
		if _, subscribed := subs[c]; subscribed {
			delete(subs, c)
			if len(subs) == 0 {
				delete(h.channels, chID)
			}
		}
	}
}

func (h *Hub) handleEvent(ev *domain.WsInternalEvent) {
	message, err := json.Marshal(ev)
	if err != nil {
		h.log.Error("ws: failed to marshal server event", "error", err)
		return
	}

	subs, ok := h.channels[ev.Channel]
	if !ok {
		h.log.Debug("ws: event channel has no subscribers", "channel", ev.Channel)
		return
	}

	for client := range subs {
		select {
		case client.send <- message:
		default:
			h.log.Warn("ws: client channel full, dropping client", "id", client.ID)
			h.remove(client)
		}
	}
}
