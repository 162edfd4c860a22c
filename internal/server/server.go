package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Tomlord1122/taskflow/internal/config"
	"github.com/Tomlord1122/taskflow/internal/service"
)

// HealthChecker reports the state of the configured slot store.
type HealthChecker interface {
	Health() map[string]string
}

type Server struct {
	port   int
	app    service.AppService
	health HealthChecker
	// assets serves the offline web shell under /app; nil disables it.
	assets http.Handler
}

func NewServer(cfg *config.Config, app service.AppService, health HealthChecker, assets http.Handler) *http.Server {
	appServer := &Server{
		port:   cfg.Port,
		app:    app,
		health: health,
		assets: assets,
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", appServer.port),
		Handler:      appServer.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	return server
}
