// Package bootstrap opens the backends selected by the configuration.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/Tomlord1122/taskflow/internal/config"
	"github.com/Tomlord1122/taskflow/internal/database"
	"github.com/Tomlord1122/taskflow/internal/offline"
	"github.com/Tomlord1122/taskflow/internal/repository"
	"github.com/Tomlord1122/taskflow/internal/store"
)

// Storage is the opened slot repository with its health and close hooks.
type Storage struct {
	Repo repository.SlotRepository

	kind config.StoreKind
	db   database.Service
}

// OpenStorage connects the slot repository named by cfg.Store.
func OpenStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	switch cfg.Store {
	case config.StorePostgres:
		db, err := database.New(cfg.Database, cfg.Debug)
		if err != nil {
			return nil, err
		}
		return &Storage{Repo: repository.NewGormSlotRepository(db.GetDB()), kind: cfg.Store, db: db}, nil

	case config.StoreAzure:
		svc, err := aztables.NewServiceClientFromConnectionString(cfg.TableConnectionString, nil)
		if err != nil {
			return nil, fmt.Errorf("create table service client: %w", err)
		}
		client := svc.NewClient(cfg.TableName)
		if err := repository.EnsureTable(ctx, client); err != nil {
			return nil, fmt.Errorf("ensure table %s: %w", cfg.TableName, err)
		}
		log.WithField("table", cfg.TableName).Info("Using Azure Table storage")
		return &Storage{Repo: repository.NewTableSlotRepository(client), kind: cfg.Store}, nil

	case config.StoreMemory:
		log.Warn("Using in-memory storage; state is lost on exit")
		return &Storage{Repo: repository.NewMemorySlotRepository(nil), kind: cfg.Store}, nil
	}
	return nil, fmt.Errorf("unsupported store %q", cfg.Store)
}

// Health reports the backend status in the shape of the database health map.
func (s *Storage) Health() map[string]string {
	if s.db != nil {
		return s.db.Health()
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	stats := map[string]string{"store": string(s.kind)}
	if _, _, err := s.Repo.Load(ctx, store.KeyTheme); err != nil {
		stats["status"] = "down"
		stats["error"] = err.Error()
		log.WithError(err).Warn("store down")
		return stats
	}
	stats["status"] = "up"
	stats["message"] = "It's healthy"
	return stats
}

// Close releases the connection pool, if any.
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// OfflineWorker builds the asset cache worker, or returns nil when no asset
// origin is configured. The returned close function releases the cache.
func OfflineWorker(ctx context.Context, cfg *config.Config) (*offline.Worker, func() error, error) {
	noop := func() error { return nil }
	if cfg.AssetOrigin == "" {
		return nil, noop, nil
	}

	var cache offline.Cache = offline.NewMemoryCache()
	closeCache := noop
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, noop, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, noop, fmt.Errorf("connect to redis: %w", err)
		}
		cache = offline.NewRedisCache(client)
		closeCache = client.Close
	}

	w, err := offline.NewWorker(cfg.AssetOrigin, cache, nil)
	if err != nil {
		_ = closeCache()
		return nil, noop, err
	}
	return w, closeCache, nil
}
