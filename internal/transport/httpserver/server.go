package httpserver

import (
	"net/http"
	"time"

	"team-tracker-go/internal/config"
)

// New builds the API server. There is no write timeout so large exports can stream.
func New(cfg config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
}
