package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"team-tracker-go/internal/app"
	"team-tracker-go/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	log := logger.NewFromEnv()
	os.Exit(run(log))
}

func run(log logger.Logger) int {
	log.Info("team-tracker: starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(log)
	if err != nil {
		log.Critical("team-tracker: init failed", "err", err)
		return 1
	}

	srv := application.HTTPServer()
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.ListenAndServe()
	}()
	log.Info("team-tracker: ready", append([]any{"addr", srv.Addr}, application.StartupFields()...)...)

	code := 0
	select {
	case <-ctx.Done():
		log.Info("team-tracker: shutdown requested")
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Critical("http: server failed", "addr", srv.Addr, "err", err)
			code = 1
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("http: graceful shutdown failed", "err", err)
		code = 1
	}

	// Close stops the session pruner before releasing the database.
	if err := application.Close(); err != nil {
		log.Error("team-tracker: close failed", "err", err)
		code = 1
	}
	log.Info("team-tracker: stopped", "exit_code", code)
	return code
}
