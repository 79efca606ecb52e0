package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/kanso-wellness/internal/config"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
	"github.com/comitanigiacomo/kanso-wellness/internal/logger"
)

// Store is an opened snapshot repository plus whatever must be closed on shutdown.
type Store struct {
	Repo  domain.SnapshotRepository
	Ping  func(ctx context.Context) error
	Close func() error
}

// Open builds the repository selected by STORAGE_BACKEND. A non-nil rdb puts
// the Redis read-through cache in front of it.
func Open(ctx context.Context, cfg *config.Config, rdb *redis.Client, log logger.Logger) (*Store, error) {
	store := &Store{
		Ping:  func(context.Context) error { return nil },
		Close: func() error { return nil },
	}

	switch cfg.StorageBackend {
	case config.BackendMemory:
		store.Repo = NewInMemorySnapshotRepository()

	case config.BackendFile:
		repo, err := NewFileSnapshotRepository(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		store.Repo = repo

	case config.BackendSQLite:
		db, err := OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		store.Repo = NewSQLiteSnapshotRepository(db)
		store.Ping = db.PingContext
		store.Close = db.Close

	case config.BackendPostgres:
		db, err := ConnectPostgres(cfg.PostgresDSN())
		if err != nil {
			return nil, err
		}
		if err := MigratePostgres(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		store.Repo = NewPostgresSnapshotRepository(db)
		store.Ping = db.PingContext
		store.Close = db.Close

	case config.BackendMySQL:
		db, err := OpenMySQL(cfg.MySQLDSN, cfg.LogLevel, log)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		store.Repo = NewGormSnapshotRepository(db)
		store.Ping = sqlDB.PingContext
		store.Close = sqlDB.Close

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}

	log.Infof("snapshot storage ready (backend=%s)", cfg.StorageBackend)

	if rdb != nil {
		store.Repo = NewCachedSnapshotRepository(store.Repo, rdb, cfg.CacheTTL, log)
		log.Info("snapshot cache enabled (redis)")
	}

	return store, nil
}
