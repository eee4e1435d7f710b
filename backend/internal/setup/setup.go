package setup

import (
	"context"
	"fmt"
	"time"

	"github.com/itchan-dev/simpleboard/backend/internal/feed"
	"github.com/itchan-dev/simpleboard/backend/internal/handler"
	"github.com/itchan-dev/simpleboard/backend/internal/service"
	"github.com/itchan-dev/simpleboard/backend/internal/service/utils"
	"github.com/itchan-dev/simpleboard/backend/internal/storage/fs"
	"github.com/itchan-dev/simpleboard/backend/internal/storage/pg"
	"github.com/itchan-dev/simpleboard/shared/config"
	jwt_internal "github.com/itchan-dev/simpleboard/shared/jwt"
	"github.com/itchan-dev/simpleboard/shared/logger"
	mw "github.com/itchan-dev/simpleboard/shared/middleware"
	"github.com/redis/go-redis/v9"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config         *config.Config
	Storage        *pg.Storage
	Media          *fs.Storage
	Redis          *redis.Client // nil when the feed stays in-process
	Broker         feed.Broker
	Hub            *feed.Hub
	Handler        *handler.Handler
	AuthMiddleware *mw.Auth
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(ctx, cfg.Private.Pg)
	if err != nil {
		return nil, err
	}

	media, err := fs.New(cfg.Public.MediaPath)
	if err != nil {
		storage.Cleanup()
		return nil, fmt.Errorf("media storage: %w", err)
	}

	rdb, err := connectRedis(ctx, cfg)
	if err != nil {
		storage.Cleanup()
		return nil, err
	}

	var broker feed.Broker = feed.NewLocalBroker()
	if rdb != nil {
		broker = feed.NewRedisBroker(rdb)
	}
	hub := feed.NewHub()
	publisher := feed.NewPublisher(broker)

	jwt := jwt_internal.New(cfg.JwtKey(), cfg.JwtTTL())

	services := handler.Services{
		Auth:     service.NewAuth(jwt, cfg.Private.AdminEmail, cfg.Private.AdminPasswordHash),
		Board:    service.NewBoard(storage, media, publisher, cfg.Public.RecentBoardsLimit),
		Category: service.NewCategory(storage, publisher),
		Content:  service.NewContent(storage, utils.NewTextProcessor(), publisher),
		Like:     service.NewLike(storage, publisher),
		Media:    service.NewMedia(media, storage, cfg.Public.PublicBaseURL),
	}

	return &Dependencies{
		Config:         cfg,
		Storage:        storage,
		Media:          media,
		Redis:          rdb,
		Broker:         broker,
		Hub:            hub,
		Handler:        handler.New(services, hub, storage, cfg),
		AuthMiddleware: mw.NewAuth(jwt),
	}, nil
}

// Start attaches the feed hub to the broker. Events published before Start
// are not delivered.
func (d *Dependencies) Start(ctx context.Context) error {
	return d.Hub.Start(ctx, d.Broker)
}

// Cleanup closes feed subscribers and the connections opened by SetupDependencies.
func (d *Dependencies) Cleanup(ctx context.Context) {
	if err := d.Hub.Shutdown(ctx); err != nil {
		logger.Log.Error("feed shutdown", "error", err)
	}
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			logger.Log.Error("close redis", "error", err)
		}
	}
	if err := d.Storage.Cleanup(); err != nil {
		logger.Log.Error("close database", "error", err)
	}
}

func connectRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	if cfg.Public.Redis.Addr == "" {
		logger.Log.Info("redis not configured, change feed is in-process")
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Public.Redis.Addr,
		DB:       cfg.Public.Redis.DB,
		Password: cfg.Private.RedisPassword,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connect redis %s: %w", cfg.Public.Redis.Addr, err)
	}
	logger.Log.Info("redis connected, change feed is shared", "addr", cfg.Public.Redis.Addr)
	return rdb, nil
}
