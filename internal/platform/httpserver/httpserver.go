// Package httpserver constructs the inference server with its timeouts in
// one place so main only wires the handler.
package httpserver

import (
	"net/http"
	"time"
)

// New builds the HTTP server. Prediction requests are small and CPU-bound,
// so read and write timeouts stay short; the per-request middleware timeout
// governs handler work.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
