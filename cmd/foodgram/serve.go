package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodgram-go/internal/app"
	"foodgram-go/internal/db"
	"foodgram-go/pkg/logger"
	"go.uber.org/multierr"
)

const shutdownTimeout = 5 * time.Second

type ServeCmd struct {
	Migrate bool `env:"DB_AUTO_MIGRATE" help:"Apply migrations before serving."`
}

func (s *ServeCmd) Run(c *Context) error {
	log := c.Log
	log.Info("app: starting")

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(cfg, log)
	if err != nil {
		log.Critical("app: init failed", "err", err)
		return err
	}

	if s.Migrate || cfg.DB.Driver == db.DriverSQLite {
		applied, err := application.Migrate()
		if err != nil {
			_ = application.Close()
			return fmt.Errorf("migrate: %w", err)
		}
		log.Info("db: schema ready", "applied", applied)
	}

	srv := application.HTTPServer()
	log.Info("http: listening", "addr", srv.Addr)

	serverErrCh := make(chan error, 1)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("app: shutdown signal received")
	case err := <-serverErrCh:
		if err != nil {
			log.Critical("http: server failed", "addr", srv.Addr, "err", err)
			runErr = err
		}
	}

	return shutdown(srv, application, log, runErr)
}

// shutdown drains srv, releases closer and returns every error seen on the
// way down, including runErr.
func shutdown(srv *http.Server, closer io.Closer, log logger.Logger, runErr error) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("http: graceful shutdown failed", "err", err)
		runErr = multierr.Append(runErr, err)
	}

	if err := closer.Close(); err != nil {
		log.Error("app: close failed", "err", err)
		runErr = multierr.Append(runErr, err)
	}

	if runErr == nil {
		log.Info("app: stopped")
	}
	return runErr
}
