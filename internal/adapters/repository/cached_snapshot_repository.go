package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
	"github.com/comitanigiacomo/kanso-wellness/internal/logger"
)

var _ domain.SnapshotRepository = (*CachedSnapshotRepository)(nil)

// CachedSnapshotRepository is a read-through Redis cache in front of another
// repository. Saves go to the backing store first, then drop the cached copy.
type CachedSnapshotRepository struct {
	next  domain.SnapshotRepository
	cache *redis.Client
	ttl   time.Duration
	log   logger.Logger
}

func NewCachedSnapshotRepository(next domain.SnapshotRepository, cache *redis.Client, ttl time.Duration, log logger.Logger) *CachedSnapshotRepository {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &CachedSnapshotRepository{
		next:  next,
		cache: cache,
		ttl:   ttl,
		log:   log,
	}
}

func (r *CachedSnapshotRepository) cacheKey(userID string) string {
	return fmt.Sprintf("snapshot:%s", userID)
}

func (r *CachedSnapshotRepository) invalidate(ctx context.Context, userID string) {
	if err := r.cache.Del(ctx, r.cacheKey(userID)).Err(); err != nil {
		r.log.Warnf("[CACHE] failed to invalidate snapshot for user %s: %v", userID, err)
	}
}

func (r *CachedSnapshotRepository) Load(ctx context.Context, userID string) (*domain.Snapshot, error) {
	key := r.cacheKey(userID)

	val, err := r.cache.Get(ctx, key).Bytes()
	if err == nil {
		snap, decodeErr := domain.DecodeSnapshot(val)
		if decodeErr == nil {
			return snap, nil
		}

		r.log.Warnf("[CACHE] corrupted snapshot for user %s, cleaning up key", userID)
		r.cache.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		r.log.Warnf("[CACHE] redis read error: %v", err)
	}

	snap, err := r.next.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if data, err := snap.Encode(); err == nil {
		if setErr := r.cache.Set(ctx, key, data, r.ttl).Err(); setErr != nil {
			r.log.Warnf("[CACHE] redis set error: %v", setErr)
		}
	}

	return snap, nil
}

func (r *CachedSnapshotRepository) Save(ctx context.Context, userID string, snapshot *domain.Snapshot) error {
	if err := r.next.Save(ctx, userID, snapshot); err != nil {
		return err
	}
	r.invalidate(ctx, userID)
	return nil
}
