package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"camara-gateway/internal/common/logger"
	"camara-gateway/internal/pipeline/response"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return New(rdb, time.Minute, logger.NewTestLogger(t)), mr
}

func TestCache_RoundTrip(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	typed := &response.TypedResponse{
		Operation: "get-catalog",
		Variant:   "catalog",
		Fields: map[string]interface{}{
			"services": []interface{}{map[string]interface{}{"name": "quality-on-demand"}},
		},
	}

	_, hit := cache.Get(ctx, "get-catalog")
	assert.False(t, hit)

	cache.Set(ctx, "get-catalog", typed)

	got, hit := cache.Get(ctx, "get-catalog")
	require.True(t, hit)
	assert.Equal(t, typed, got)
}

func TestCache_EntriesExpire(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	cache.Set(ctx, "get-catalog", &response.TypedResponse{
		Operation: "get-catalog",
		Variant:   "catalog",
		Fields:    map[string]interface{}{"services": []interface{}{}},
	})

	mr.FastForward(2 * time.Minute)

	_, hit := cache.Get(ctx, "get-catalog")
	assert.False(t, hit)
}

func TestCache_UndecodableEntryIsAMiss(t *testing.T) {
	cache, mr := newTestCache(t)

	require.NoError(t, mr.Set(keyPrefix+"get-catalog", "{not json"))

	_, hit := cache.Get(context.Background(), "get-catalog")
	assert.False(t, hit)
}

func TestCache_OperationsAreIsolated(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	cache.Set(ctx, "get-catalog", &response.TypedResponse{
		Operation: "get-catalog",
		Variant:   "catalog",
		Fields:    map[string]interface{}{"services": []interface{}{}},
	})

	_, hit := cache.Get(ctx, "get-app-definitions")
	assert.False(t, hit)
}
