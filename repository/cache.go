package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"uzazi-salama-backend/section"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CachedUserDataRepository is a read-through Redis cache in front of a
// UserDataStore. Writes go to the inner store first and then overwrite the
// cached blob. Read-side cache failures are logged; a write that leaves a
// stale blob behind fails with ErrCacheStale.
type CachedUserDataRepository struct {
	inner UserDataStore
	rdb   *redis.Client
	ttl   time.Duration
	log   *zap.SugaredLogger
}

// NewCachedUserDataRepository wraps inner with a Redis cache
func NewCachedUserDataRepository(inner UserDataStore, rdb *redis.Client, ttl time.Duration, log *zap.SugaredLogger) *CachedUserDataRepository {
	return &CachedUserDataRepository{inner: inner, rdb: rdb, ttl: ttl, log: log}
}

// NewRedisClient connects and pings Redis
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

// ErrCacheStale means the inner store was updated but the cached copy could be
// neither refreshed nor evicted
var ErrCacheStale = errors.New("section cache may be stale")

func cacheKey(userID uuid.UUID, kind section.Kind) string {
	return fmt.Sprintf("userdata:%s:%s", userID, kind)
}

func (r *CachedUserDataRepository) Get(ctx context.Context, userID uuid.UUID, kind section.Kind) (json.RawMessage, bool, error) {
	key := cacheKey(userID, kind)
	cached, err := r.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		return json.RawMessage(cached), true, nil
	case !errors.Is(err, redis.Nil):
		r.log.Warnw("section cache read failed", "key", key, "error", err)
	}

	data, found, err := r.inner.Get(ctx, userID, kind)
	if err != nil || !found {
		return data, found, err
	}
	if err := r.rdb.Set(ctx, key, []byte(data), r.ttl).Err(); err != nil {
		r.log.Warnw("section cache write failed", "key", key, "error", err)
	}
	return data, true, nil
}

func (r *CachedUserDataRepository) Put(ctx context.Context, userID uuid.UUID, kind section.Kind, data json.RawMessage) error {
	if err := r.inner.Put(ctx, userID, kind, data); err != nil {
		return err
	}
	key := cacheKey(userID, kind)
	setErr := r.rdb.Set(ctx, key, []byte(data), r.ttl).Err()
	if setErr == nil {
		return nil
	}
	r.log.Warnw("section cache write failed, evicting", "key", key, "error", setErr)
	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		r.log.Errorw("section cache evict failed", "key", key, "error", err)
		return fmt.Errorf("%w: %s: %v", ErrCacheStale, key, err)
	}
	return nil
}

func (r *CachedUserDataRepository) GetAll(ctx context.Context, userID uuid.UUID) (map[section.Kind]json.RawMessage, error) {
	return r.inner.GetAll(ctx, userID)
}
