package consumers

import (
	"context"
	"log/slog"

	"basstatic/internal/cache"
	"basstatic/internal/config"
	"basstatic/internal/database"
	"basstatic/internal/messaging"
	"basstatic/internal/models"
	"basstatic/internal/repository"
)

type ConsumerService struct {
	db       *database.DB
	nats     *messaging.NATSClient
	cache    *cache.DocumentCache
	handlers *Handlers
}

func NewConsumerService(cfg *config.Config) (*ConsumerService, error) {
	cs := &ConsumerService{}

	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		return nil, err
	}
	cs.nats = natsClient

	var commits CommitRecorder
	if cfg.Database.Enabled {
		db, err := database.Connect(cfg.Database)
		if err != nil {
			cs.Shutdown(context.Background())
			return nil, err
		}
		if err := db.RunMigrations(); err != nil {
			db.Close()
			cs.Shutdown(context.Background())
			return nil, err
		}
		cs.db = db
		commits = repository.NewRepositories(db).Commits
	}

	var invalidator Invalidator
	if cfg.Cache.Enabled {
		dc, err := cache.NewDocumentCache(cfg.Cache)
		if err != nil {
			slog.Warn("Document cache unavailable, skipping invalidation", "error", err)
		} else {
			cs.cache = dc
			invalidator = dc
		}
	}

	cs.handlers = NewHandlers(commits, invalidator)
	return cs, nil
}

func (cs *ConsumerService) Start() error {
	slog.Info("Starting NATS consumers...")

	if _, err := cs.nats.SubscribeQueue(models.EventDocumentPublished, "consumers", cs.handlers.HandleDocumentPublished); err != nil {
		return err
	}
	if _, err := cs.nats.SubscribeQueue(models.EventMediaUploaded, "consumers", cs.handlers.HandleMediaUploaded); err != nil {
		return err
	}

	slog.Info("All consumers started successfully")
	return nil
}

func (cs *ConsumerService) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down consumer service...")

	if cs.nats != nil {
		if err := cs.nats.Close(); err != nil {
			slog.Error("Error closing NATS connection", "error", err)
		}
	}

	if cs.cache != nil {
		if err := cs.cache.Close(); err != nil {
			slog.Error("Error closing cache connection", "error", err)
		}
	}

	if cs.db != nil {
		if err := cs.db.Close(); err != nil {
			slog.Error("Error closing database connection", "error", err)
			return err
		}
	}

	return nil
}
