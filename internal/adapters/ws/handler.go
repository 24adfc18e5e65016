package ws

import (
	"encoding/json"
	"net/http"

	"pulse-server/internal/config"
	"pulse-server/internal/domain"
	"pulse-server/internal/logger"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
	latest   func() (domain.Snapshot, error)
	log      logger.Logger
}

// NewHandler accepts same-origin and non-browser clients, plus any origin
// listed in cfg.AllowedOrigins.
func NewHandler(hub *Hub, cfg *config.Config, latest func() (domain.Snapshot, error), log logger.Logger) *Handler {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || origin == "http://"+r.Host || origin == "https://"+r.Host {
				return true
			}

			if !cfg.OriginAllowed(origin) {
				log.Warn("ws: origin rejected", "origin", origin)
				return false
			}
			return true
		},
	}

	return &Handler{
		hub:      hub,
		upgrader: upgrader,
		latest:   latest,
		log:      log,
	}
}

func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("ws: upgrade failed", "error", err)
		return
	}

	id := uuid.NewString()
	c := NewClient(h.hub, conn, h.log.With("client_id", id), id)

	// a new dashboard gets the current snapshot without waiting a tick
	if h.latest != nil {
		if m, err := h.latest(); err == nil {
			if msg, err := json.Marshal(&domain.WsInternalEvent{
				Channel: domain.WsChannelMetrics,
				Event:   domain.WsEventMetricsUpdated,
				Payload: m,
			}); err == nil {
				c.send <- msg
			}
		}
	}

	select {
	case h.hub.register <- c:
	case <-h.hub.ctx.Done():
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()

	h.log.Debug("ws: client connected", "id", c.ID, "remote_addr", conn.RemoteAddr())
}
