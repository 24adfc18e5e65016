package http

import (
	"net/http"

	"pulse-server/internal/adapters/http/middleware"
	"pulse-server/internal/adapters/http/response"
	"pulse-server/internal/adapters/ws"
	"pulse-server/internal/config"
	"pulse-server/internal/domain"
	"pulse-server/internal/logger"
)

type RouterDeps struct {
	WS      *ws.Handler
	Metrics *MetricsHandler
	Res     response.ResponseWriter
	Log     logger.Logger
}

var endpoints = []string{
	"GET /api/stats",
	"GET /api/snapshot",
	"GET /api/history",
	"GET /api/history/{series}",
	"GET /api/status",
	"GET /health",
	"GET /ws",
}

type indexMeta struct {
	Series []domain.SeriesID `json:"series"`
}

func NewRouter(cfg *config.Config, deps *RouterDeps) http.Handler {
	mux := http.NewServeMux()

	global := middleware.New(
		middleware.Recover(deps.Log),
		middleware.RequestLog(deps.Log),
		middleware.CORS(cfg),
	)

	// HEALTH
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// INDEX
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		deps.Res.Write(w, http.StatusOK, &response.Response{
			Message: "pulse",
			Data:    endpoints,
			Meta:    indexMeta{Series: domain.AllSeries},
		})
	})

	// METRICS
	mux.HandleFunc("GET /api/stats", deps.Metrics.Stats)
	mux.HandleFunc("GET /api/snapshot", deps.Metrics.Stats)
	mux.HandleFunc("GET /api/history", deps.Metrics.History)
	mux.HandleFunc("GET /api/history/{series}", deps.Metrics.Series)
	mux.HandleFunc("GET /api/status", deps.Metrics.Status)

	// WEBSOCKET
	if deps.WS != nil {
		mux.HandleFunc("GET /ws", deps.WS.Serve)
	}

	return global.Then(mux)
}
