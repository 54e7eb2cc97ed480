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

	"github.com/mmuslimabdulj/spyroom/internal/config"
	httpHandler "github.com/mmuslimabdulj/spyroom/internal/delivery/http"
	"github.com/mmuslimabdulj/spyroom/internal/delivery/ws"
	"github.com/mmuslimabdulj/spyroom/internal/logger"
	"github.com/mmuslimabdulj/spyroom/internal/middleware"
	"github.com/mmuslimabdulj/spyroom/internal/usecase"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	level, silent := logger.ParseLevel(cfg.LogLevel)
	log := logger.Init(logger.Config{
		Service: "spyroom",
		Version: version,
		Env:     logger.ParseEnv(cfg.Env),
		Backend: logger.Backend(cfg.LogBackend),
		Level:   level,
		Silent:  silent,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize dependencies
	hub := ws.NewHub(ws.HubOptions{
		IntentRate:     cfg.RateLimitIntent,
		MaxMessageSize: int64(cfg.MaxMessageSize),
		Logger:         log,
	})
	settings := cfg.DefaultSettings
	coordinator := usecase.NewCoordinator(hub, usecase.Options{
		ResetDelay:      cfg.ResetDelay,
		HostLeavePolicy: usecase.HostLeavePolicy(cfg.HostLeavePolicy),
		RoomCodePolicy:  usecase.RoomCodePolicy(cfg.RoomCodePolicy),
		DefaultSettings: &settings,
		Names:           usecase.NewPersonaGenerator(),
		Logger:          log,
	})
	hub.SetHandler(coordinator)

	apiLimiter := middleware.NewIPRateLimiter(cfg.RateLimitAPI, int(cfg.RateLimitAPI)*2)
	wsLimiter := middleware.NewIPRateLimiter(cfg.RateLimitWS, int(cfg.RateLimitWS)*2)
	go apiLimiter.Cleanup(ctx)
	go wsLimiter.Cleanup(ctx)

	go hub.Run(ctx)
	go coordinator.Run(ctx)

	handler := httpHandler.NewHandler(coordinator, hub, cfg.AllowedOrigins, log)
	router := httpHandler.NewRouter(handler, httpHandler.Limits{API: apiLimiter, WebSocket: wsLimiter}, log)

	// Create server with timeouts
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("spyroom listening", "addr", "http://localhost:"+cfg.Port,
			"host_leave", cfg.HostLeavePolicy, "room_codes", cfg.RoomCodePolicy)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
	case <-ctx.Done():
	}
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "err", err)
		return err
	}

	log.Info("server exited gracefully")
	return nil
}
