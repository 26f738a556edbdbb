// Command travelctl is an interactive client for a travel-destinations
// backend. It keeps the session state in memory, drives it from a readline
// shell and optionally serves the same state as JSON on a local view API.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/Lynguyen817/Travel-Itinerary-Manager/internal/api"
	"github.com/Lynguyen817/Travel-Itinerary-Manager/internal/core/service"
	"github.com/Lynguyen817/Travel-Itinerary-Manager/internal/infrastructure/backend"
	"github.com/Lynguyen817/Travel-Itinerary-Manager/internal/infrastructure/queue"
	"github.com/Lynguyen817/Travel-Itinerary-Manager/internal/pkg/config"
	"github.com/Lynguyen817/Travel-Itinerary-Manager/internal/shell"
	"github.com/Lynguyen817/Travel-Itinerary-Manager/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "travelctl:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "travelctl",
	})
	log.Debug().Str("env", cfg.Env).Str("backend", cfg.Backend.URL).Msg("configuration loaded")

	client, err := backend.New(backend.Config{
		BaseURL: cfg.Backend.URL,
		Timeout: cfg.Backend.RequestTimeout,
	}, logger.For("backend"))
	if err != nil {
		return err
	}
	ctrl := service.NewSessionController(client, logger.For("controller"))

	dispatcher := queue.NewDispatcher(cfg.Queue.Workers, ctrl, logger.For("queue"))
	dispatcher.Start(ctx)

	// Restore an existing backend session before the first render.
	_ = ctrl.CheckAuth(ctx)

	if cfg.View.Enabled {
		e := api.NewRouter(api.Deps{Controller: ctrl, Queue: dispatcher, Log: logger.For("view_api")})
		go func() {
			log.Info().Str("addr", cfg.View.Addr).Msg("view api listening")
			if err := e.Start(cfg.View.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("view api stopped")
			}
		}()
		defer shutdown(log, e.Shutdown)
	}

	rl, err := shell.NewReadline(cfg.Shell.HistoryFile)
	if err != nil {
		return fmt.Errorf("readline: %w", err)
	}
	defer rl.Close()

	sh := shell.New(ctrl, rl, rl.Stdout(), shell.Options{ShowErrors: cfg.ShowErrors})
	err = sh.Run(ctx)

	stop()
	dispatcher.Wait()
	return err
}

func shutdown(log zerolog.Logger, fn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := fn(ctx); err != nil {
		log.Warn().Err(err).Msg("view api shutdown")
	}
}
