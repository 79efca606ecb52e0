package main

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/kanso-wellness/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/kanso-wellness/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-wellness/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-wellness/internal/config"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/clock"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/services"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/workers"
	"github.com/comitanigiacomo/kanso-wellness/internal/logger"
)

type app struct {
	router   *gin.Engine
	wellness *services.WellnessService
	idleTTL  time.Duration
	store    *repository.Store
	redis    *redis.Client
	worker   *workers.PersistWorker
	tokens   *services.TokenService
	log      logger.Logger
}

func newApp(ctx context.Context, cfg *config.Config, log logger.Logger, clk clock.Clock) (*app, error) {
	startTime := time.Now()

	var rdb *redis.Client
	if cfg.RedisEnabled() {
		client, err := cache.NewRedisClient(ctx, cfg)
		if err != nil {
			log.Warnf("redis unavailable, continuing without cache and with local rate limiting: %v", err)
		} else {
			rdb = client
			log.Info("redis connected")
		}
	}

	store, err := repository.Open(ctx, cfg, rdb, log)
	if err != nil {
		if rdb != nil {
			_ = rdb.Close()
		}
		return nil, err
	}

	worker := workers.NewPersistWorker(store.Repo, cfg.PersistQueueSize, log.With("component", "persist_worker"))

	loc := cfg.Location()
	wellnessService := services.NewWellnessService(store.Repo, worker, clk, log)
	statsService := services.NewStatsService(wellnessService, clk)
	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenExpiry, clk)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		WellnessHandler:    adapterHTTP.NewWellnessHandler(wellnessService, loc, log),
		StatsHandler:       adapterHTTP.NewStatsHandler(statsService, loc, log),
		TokenService:       tokenService,
		StoragePing:        store.Ping,
		Redis:              rdb,
		Logger:             log,
		AllowedOrigins:     cfg.AllowedOrigins,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		StartTime:          startTime,
	})

	return &app{
		router:   router,
		wellness: wellnessService,
		idleTTL:  cfg.SessionIdleTTL,
		store:    store,
		redis:    rdb,
		worker:   worker,
		tokens:   tokenService,
		log:      log,
	}, nil
}

// start runs the background persister and the idle session sweeper until
// ctx is cancelled. A zero SESSION_IDLE_TTL keeps sessions forever.
func (a *app) start(ctx context.Context) {
	a.worker.Start(ctx)
	if a.idleTTL > 0 {
		go a.wellness.RunSweeper(ctx, a.idleTTL, a.idleTTL/2)
	}
}

// shutdown flushes queued snapshots before closing storage.
func (a *app) shutdown(ctx context.Context) error {
	flushed := a.worker.Drain(ctx)
	a.log.Infof("flushed %d pending snapshots", flushed)

	var errs []error
	if err := a.store.Close(); err != nil {
		errs = append(errs, err)
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
