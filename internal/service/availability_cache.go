package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Redis key prefixes for the scheduling engine
const (
	availabilityKeyPrefix = "availability:"
	syncStaleKeyPrefix    = "calendar:stale:"
)

// AvailabilityCache caches resolved availability per doctor and invalidates
// it when schedules, templates or exceptions change. Injected as an
// interface so the in-memory implementation can stand in for Redis in tests
// and single-node deployments.
type AvailabilityCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	InvalidateDoctor(ctx context.Context, doctorID uuid.UUID) error
	MarkSyncStale(ctx context.Context, doctorID uuid.UUID) error
	IsSyncStale(ctx context.Context, doctorID uuid.UUID) bool
}

// AvailabilityCacheKey builds the cache key for one resolve call. Resolves
// with an excluded appointment bypass the cache entirely, so the exclusion
// is not part of the key.
func AvailabilityCacheKey(doctorID uuid.UUID, start, end time.Time, duration int) string {
	return fmt.Sprintf("%s%s:%s:%s:%d",
		availabilityKeyPrefix, doctorID, start.Format("2006-01-02"), end.Format("2006-01-02"), duration)
}

// =============================================================================
// Redis implementation
// =============================================================================

type redisAvailabilityCache struct {
	client *redis.Client
	log    *logrus.Logger
	ttl    time.Duration
}

func NewRedisAvailabilityCache(client *redis.Client, log *logrus.Logger, ttl time.Duration) AvailabilityCache {
	return &redisAvailabilityCache{client: client, log: log, ttl: ttl}
}

func (c *redisAvailabilityCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *redisAvailabilityCache) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

// InvalidateDoctor drops every cached range for the doctor. SCAN instead of
// KEYS so a large keyspace never blocks Redis.
func (c *redisAvailabilityCache) InvalidateDoctor(ctx context.Context, doctorID uuid.UUID) error {
	pattern := fmt.Sprintf("%s%s:*", availabilityKeyPrefix, doctorID)
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			c.log.Warnf("Failed to delete cache key %s: %+v", iter.Val(), err)
		}
	}
	return iter.Err()
}

func (c *redisAvailabilityCache) MarkSyncStale(ctx context.Context, doctorID uuid.UUID) error {
	return c.client.Set(ctx, syncStaleKeyPrefix+doctorID.String(), "1", c.ttl).Err()
}

func (c *redisAvailabilityCache) IsSyncStale(ctx context.Context, doctorID uuid.UUID) bool {
	exists, err := c.client.Exists(ctx, syncStaleKeyPrefix+doctorID.String()).Result()
	if err != nil {
		c.log.Warnf("Failed to check sync staleness for doctor %s: %+v", doctorID, err)
		return false
	}
	return exists > 0
}

// =============================================================================
// In-memory implementation
// =============================================================================

type memoryCacheEntry struct {
	data      []byte
	expiresAt time.Time
}

type memoryAvailabilityCache struct {
	mu      sync.RWMutex
	entries map[string]memoryCacheEntry
	stale   map[string]time.Time
	ttl     time.Duration
}

func NewMemoryAvailabilityCache(ttl time.Duration) AvailabilityCache {
	return &memoryAvailabilityCache{
		entries: map[string]memoryCacheEntry{},
		stale:   map[string]time.Time{},
		ttl:     ttl,
	}
}

func (c *memoryAvailabilityCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return false, nil
	}
	if err := json.Unmarshal(entry.data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *memoryAvailabilityCache) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.entries[key] = memoryCacheEntry{data: data, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()
	return nil
}

func (c *memoryAvailabilityCache) InvalidateDoctor(ctx context.Context, doctorID uuid.UUID) error {
	prefix := availabilityKeyPrefix + doctorID.String() + ":"
	c.mu.Lock()
	for key := range c.entries {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			delete(c.entries, key)
		}
	}
	c.mu.Unlock()
	return nil
}

func (c *memoryAvailabilityCache) MarkSyncStale(ctx context.Context, doctorID uuid.UUID) error {
	c.mu.Lock()
	c.stale[doctorID.String()] = time.Now().Add(c.ttl)
	c.mu.Unlock()
	return nil
}

func (c *memoryAvailabilityCache) IsSyncStale(ctx context.Context, doctorID uuid.UUID) bool {
	c.mu.RLock()
	until, ok := c.stale[doctorID.String()]
	c.mu.RUnlock()
	return ok && time.Now().Before(until)
}
