// Package http
package http

import (
	"net/http"
	"time"
)

// NewServer has no WriteTimeout because /ws connections are long-lived; the
// websocket client sets its own write deadlines.
func NewServer(handler http.Handler, addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
