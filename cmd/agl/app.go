package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rooman-dev/agl-new/internal/api/handler"
	"github.com/rooman-dev/agl-new/internal/infrastructure/db/postgres"
	"github.com/rooman-dev/agl-new/internal/infrastructure/db/redis"
	mongodb "github.com/rooman-dev/agl-new/internal/infrastructure/db/mongo"
	"github.com/rooman-dev/agl-new/internal/pkg/config"
	"github.com/rooman-dev/agl-new/pkg/logger"
)

// app holds the process-wide connections. Redis and Mongo are optional and
// stay nil when not configured.
type app struct {
	cfg   *config.Config
	log   zerolog.Logger
	pool  *pgxpool.Pool
	redis *goredis.Client
	mongo *mongo.Client
	db    *mongo.Database
}

func loadApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "agl",
	})

	pool, err := postgres.Connect(ctx, postgres.Config{DSN: cfg.Postgres.URL, MaxConns: cfg.Postgres.MaxConns})
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, log: log, pool: pool}

	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			a.close()
			return nil, err
		}
		a.redis = rdb
	} else {
		log.Warn().Msg("REDIS_ADDR not set, form dedup and login throttling disabled")
	}

	if cfg.Mongo.URI != "" {
		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			a.close()
			return nil, err
		}
		a.mongo, a.db = client, db
	} else {
		log.Info().Msg("MONGO_URI not set, form submissions will not be archived")
	}

	return a, nil
}

func (a *app) readinessChecks() []handler.DependencyCheck {
	checks := []handler.DependencyCheck{{Name: "postgres", Ping: postgres.Pinger(a.pool)}}
	if a.redis != nil {
		checks = append(checks, handler.DependencyCheck{Name: "redis", Ping: redis.Pinger(a.redis)})
	}
	if a.mongo != nil {
		checks = append(checks, handler.DependencyCheck{Name: "mongodb", Ping: mongodb.Pinger(a.mongo)})
	}
	return checks
}

func (a *app) close() {
	if a.mongo != nil {
		if err := a.mongo.Disconnect(context.Background()); err != nil {
			a.log.Warn().Err(err).Msg("mongo disconnect")
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Warn().Err(err).Msg("redis close")
		}
	}
	if a.pool != nil {
		a.pool.Close()
	}
}

func (a *app) addr() string {
	return fmt.Sprintf(":%s", a.cfg.Port)
}
