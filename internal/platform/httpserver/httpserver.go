package httpserver

import (
	"net/http"
	"time"
)

// writeMargin is the time left to render a view after the slowest upstream
// call (a purchase) returns.
const writeMargin = 5 * time.Second

// New builds the session API server. upstreamTimeout is the outbound HTTP
// client timeout; the write deadline is kept past it so a slow purchase
// still gets its response written.
func New(addr string, handler http.Handler, upstreamTimeout time.Duration) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      upstreamTimeout + writeMargin,
		IdleTimeout:       60 * time.Second,
	}
}
