package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spigell/job-radar/internal/jobs"
)

const keyPrefix = "job-radar:"

// redisClient is the part of *redis.Client the cache needs.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// Redis keeps job lists in Redis so several processes can share warm entries.
// Redis failures are reported as misses; the caller refetches.
type Redis struct {
	client redisClient
	ttl    time.Duration
	now    func() time.Time
	logger *zap.Logger
}

// NewRedisClient parses redisURL and verifies connectivity.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL(%q): %w", redisURL, err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return client, nil
}

func NewRedis(logger *zap.Logger, client redisClient, ttl time.Duration) *Redis {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Redis{
		client: client,
		ttl:    ttlOrDefault(ttl),
		now:    time.Now,
		logger: logger.With(zap.String("cache", "redis")),
	}
}

func (r *Redis) Get(ctx context.Context, fingerprint string) (*jobs.Jobs, bool) {
	raw, err := r.client.Get(ctx, keyPrefix+fingerprint).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warn("cache read failed", zap.String("fingerprint", fingerprint), zap.Error(err))
		}
		return nil, false
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		r.logger.Warn("cache entry is corrupted", zap.String("fingerprint", fingerprint), zap.Error(err))
		return nil, false
	}
	if e.Jobs == nil || !e.fresh(r.now(), r.ttl) {
		return nil, false
	}

	r.logger.Debug("cache hit", zap.String("fingerprint", fingerprint), zap.Int("count", e.Jobs.Len()))
	return e.Jobs, true
}

func (r *Redis) Put(ctx context.Context, fingerprint string, list *jobs.Jobs) error {
	payload, err := json.Marshal(entry{Jobs: list, FetchedAt: r.now()})
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}

	if err := r.client.Set(ctx, keyPrefix+fingerprint, payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("store cache entry %s: %w", fingerprint, err)
	}

	return nil
}
