// Package bootstrap connects the stores selected by configuration.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"gorm.io/gorm"

	"devconnector/internal/cache"
	"devconnector/internal/config"
	"devconnector/internal/database"
	"devconnector/internal/middleware"
	"devconnector/internal/repository"
	"devconnector/internal/repository/mongorepo"
)

// Runtime bundles the initialized stores handed to the server and the seeder.
type Runtime struct {
	Repos  repository.Repositories
	Redis  *redis.Client
	Driver string

	ping    func(context.Context) error
	closers []func() error
}

// NewRuntime wraps already-initialized dependencies. ping may be nil.
func NewRuntime(driver string, repos repository.Repositories, rdb *redis.Client, ping func(context.Context) error) *Runtime {
	return &Runtime{Repos: repos, Redis: rdb, Driver: driver, ping: ping}
}

// FromGorm builds a Runtime on top of an open SQL database.
func FromGorm(driver string, db *gorm.DB, rdb *redis.Client) *Runtime {
	rt := NewRuntime(driver, repository.NewGormRepositories(db), rdb, func(ctx context.Context) error {
		return database.Ping(ctx, db)
	})
	rt.closers = append(rt.closers, func() error { return database.Close(db) })
	return rt
}

// FromMongo builds a Runtime on top of a connected MongoDB database.
func FromMongo(client *mongo.Client, db *mongo.Database, rdb *redis.Client) *Runtime {
	rt := NewRuntime(config.DriverMongo, mongorepo.NewRepositories(db), rdb, func(ctx context.Context) error {
		return client.Ping(ctx, readpref.Primary())
	})
	rt.closers = append(rt.closers, func() error { return client.Disconnect(context.Background()) })
	return rt
}

// Init connects the database selected by cfg.DBDriver and, when configured, Redis.
// An unreachable Redis is logged and left nil so rate limiting degrades instead of blocking startup.
func Init(ctx context.Context, cfg *config.Config) (*Runtime, error) {
	rdb := connectRedis(ctx, cfg.RedisURL)

	var rt *Runtime
	switch cfg.DBDriver {
	case config.DriverMongo:
		client, db, err := database.ConnectMongo(ctx, cfg)
		if err != nil {
			closeRedis(rdb)
			return nil, err
		}
		if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			closeRedis(rdb)
			return nil, fmt.Errorf("mongo indexes: %w", err)
		}
		rt = FromMongo(client, db, rdb)
	default:
		db, err := database.Connect(cfg)
		if err != nil {
			closeRedis(rdb)
			return nil, fmt.Errorf("database connection failed: %w", err)
		}
		rt = FromGorm(cfg.DBDriver, db, rdb)
	}

	if rdb != nil {
		rt.closers = append(rt.closers, rdb.Close)
	}
	return rt, nil
}

func connectRedis(ctx context.Context, url string) *redis.Client {
	if url == "" {
		return nil
	}
	rdb, err := cache.NewRedis(ctx, url)
	if err != nil {
		middleware.Logger.Warn("Redis unavailable, continuing without it", slog.String("error", err.Error()))
		return nil
	}
	middleware.Logger.Info("Redis connected")
	return rdb
}

func closeRedis(rdb *redis.Client) {
	if rdb != nil {
		_ = rdb.Close()
	}
}

// Ping checks the primary store. A Runtime without a ping function is always ready.
func (r *Runtime) Ping(ctx context.Context) error {
	if r.ping == nil {
		return nil
	}
	return r.ping(ctx)
}

// PingRedis reports "healthy", "unhealthy" or "disabled" for the optional Redis client.
func (r *Runtime) PingRedis(ctx context.Context) string {
	if r.Redis == nil {
		return "disabled"
	}
	if err := r.Redis.Ping(ctx).Err(); err != nil {
		return "unhealthy"
	}
	return "healthy"
}

// Close releases every connection opened by Init, in order.
func (r *Runtime) Close() error {
	var errs []error
	for _, c := range r.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	r.closers = nil
	return errors.Join(errs...)
}
