package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailabilityCacheKey(t *testing.T) {
	doctorID := uuid.New()
	start := date(2026, time.January, 5)
	end := date(2026, time.January, 11)

	key := AvailabilityCacheKey(doctorID, start, end, 30)
	assert.Equal(t, fmt.Sprintf("availability:%s:2026-01-05:2026-01-11:30", doctorID), key)
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	cache := NewMemoryAvailabilityCache(time.Minute)
	ctx := context.Background()

	type payload struct {
		Count int    `json:"count"`
		Name  string `json:"name"`
	}

	var missed payload
	hit, err := cache.Get(ctx, "missing", &missed)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, cache.Set(ctx, "key", payload{Count: 3, Name: "monday"}))

	var got payload
	hit, err = cache.Get(ctx, "key", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, payload{Count: 3, Name: "monday"}, got)
}

func TestMemoryCacheExpiry(t *testing.T) {
	cache := NewMemoryAvailabilityCache(-time.Second)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "key", "value"))

	var got string
	hit, err := cache.Get(ctx, "key", &got)
	require.NoError(t, err)
	assert.False(t, hit, "expired entries never hit")
}

func TestMemoryCacheInvalidateDoctorScoped(t *testing.T) {
	cache := NewMemoryAvailabilityCache(time.Minute)
	ctx := context.Background()

	doctorA := uuid.New()
	doctorB := uuid.New()
	start := date(2026, time.January, 5)
	end := date(2026, time.January, 11)

	keyA := AvailabilityCacheKey(doctorA, start, end, 0)
	keyB := AvailabilityCacheKey(doctorB, start, end, 0)
	require.NoError(t, cache.Set(ctx, keyA, "a"))
	require.NoError(t, cache.Set(ctx, keyB, "b"))

	require.NoError(t, cache.InvalidateDoctor(ctx, doctorA))

	var got string
	hit, err := cache.Get(ctx, keyA, &got)
	require.NoError(t, err)
	assert.False(t, hit)

	hit, err = cache.Get(ctx, keyB, &got)
	require.NoError(t, err)
	assert.True(t, hit, "other doctors' entries survive")
}

func TestMemoryCacheSyncStale(t *testing.T) {
	cache := NewMemoryAvailabilityCache(time.Minute)
	ctx := context.Background()
	doctorID := uuid.New()

	assert.False(t, cache.IsSyncStale(ctx, doctorID))
	require.NoError(t, cache.MarkSyncStale(ctx, doctorID))
	assert.True(t, cache.IsSyncStale(ctx, doctorID))
	assert.False(t, cache.IsSyncStale(ctx, uuid.New()))
}
