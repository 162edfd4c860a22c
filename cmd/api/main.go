package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/Tomlord1122/taskflow/internal/assistant"
	"github.com/Tomlord1122/taskflow/internal/bootstrap"
	"github.com/Tomlord1122/taskflow/internal/config"
	"github.com/Tomlord1122/taskflow/internal/server"
	"github.com/Tomlord1122/taskflow/internal/service"
	"github.com/Tomlord1122/taskflow/internal/store"
)

func gracefulShutdown(apiServer *http.Server, closers []func() error, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Info("Shutting down gracefully, press Ctrl+C again to force")
	stop() // Allow Ctrl+C to force shutdown

	// The server has 5 seconds to finish the requests it is handling.
	ctxTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctxTimeout); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	for _, closeFn := range closers {
		if err := closeFn(); err != nil {
			log.WithError(err).Error("Error releasing backend")
		}
	}

	log.Info("Server exiting")

	done <- true
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Invalid configuration")
	}
	cfg.ApplyLogging()

	// 1. Storage backend
	storage, err := bootstrap.OpenStorage(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to open storage")
	}

	// 2. Assistant; a missing key disables it without failing startup
	ai, err := assistant.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.WithError(err).Fatal("Failed to create assistant client")
	}

	// 3. Controller
	app := service.NewAppService(
		store.New(storage.Repo),
		service.WithAssistant(ai),
		service.WithRestorePolicy(cfg.RestorePolicy),
	)
	app.Load(ctx)

	// 4. Offline shell cache
	worker, closeCache, err := bootstrap.OfflineWorker(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to create offline cache")
	}
	var assets http.Handler
	if worker != nil {
		if err := worker.Install(ctx); err != nil {
			log.WithError(err).Warn("Offline cache install failed; serving network only")
		}
		if err := worker.Activate(ctx); err != nil {
			log.WithError(err).Warn("Offline cache activation failed")
		}
		assets = worker
	}

	// 5. HTTP server
	apiServer := server.NewServer(cfg, app, storage, assets)

	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, []func() error{storage.Close, closeCache}, done)

	log.Infof("Starting server on %s", apiServer.Addr)
	err = apiServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("HTTP server ListenAndServe error")
	}

	<-done
	log.Info("Graceful shutdown complete.")
}
