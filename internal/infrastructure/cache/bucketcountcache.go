package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/adli-inc/adli/internal/domain/agency"
	vo "github.com/adli-inc/adli/internal/domain/request/valueobjects"
	"github.com/adli-inc/adli/internal/shared/logger"
)

// BucketCountCache stores per-actor worklist counters. Every lifecycle
// write calls Invalidate, which retires all cached counters at once.
type BucketCountCache interface {
	Get(ctx context.Context, actor agency.Actor) (map[vo.Bucket]int64, error)
	Set(ctx context.Context, actor agency.Actor, counts map[vo.Bucket]int64) error
	Invalidate(ctx context.Context) error
}

const (
	countsKeyPrefix  = "request:counts:"
	countsVersionKey = "request:counts:version"
)

// RedisBucketCountCache keeps counters in a hash under a versioned key.
// Bumping the version orphans old hashes; their TTL cleans them up.
type RedisBucketCountCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Interface
}

func NewRedisBucketCountCache(client *redis.Client, ttl time.Duration, logger logger.Interface) *RedisBucketCountCache {
	return &RedisBucketCountCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *RedisBucketCountCache) version(ctx context.Context) (int64, error) {
	v, err := c.client.Get(ctx, countsVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read counts version: %w", err)
	}
	return v, nil
}

func (c *RedisBucketCountCache) key(version int64, actor agency.Actor) string {
	return fmt.Sprintf("%sv%d:%s:%d:%d", countsKeyPrefix, version, actor.Role, actor.EmployeeID, actor.DepartmentID)
}

// Get returns nil on a miss.
func (c *RedisBucketCountCache) Get(ctx context.Context, actor agency.Actor) (map[vo.Bucket]int64, error) {
	ver, err := c.version(ctx)
	if err != nil {
		return nil, err
	}

	result, err := c.client.HGetAll(ctx, c.key(ver, actor)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get counts from cache: %w", err)
	}
	if len(result) == 0 {
		return nil, nil
	}

	counts := make(map[vo.Bucket]int64, len(result))
	for field, raw := range result {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.logger.Warnw("corrupt cached count, treating as miss", "field", field, "value", raw)
			return nil, nil
		}
		counts[vo.Bucket(field)] = n
	}
	return counts, nil
}

func (c *RedisBucketCountCache) Set(ctx context.Context, actor agency.Actor, counts map[vo.Bucket]int64) error {
	if len(counts) == 0 {
		return nil
	}
	ver, err := c.version(ctx)
	if err != nil {
		return err
	}

	values := make(map[string]interface{}, len(counts))
	for bucket, n := range counts {
		values[bucket.String()] = n
	}

	key := c.key(ver, actor)
	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, key, values)
	pipe.Expire(ctx, key, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to set counts in cache: %w", err)
	}
	return nil
}

func (c *RedisBucketCountCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, countsVersionKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate counts: %w", err)
	}
	return nil
}
