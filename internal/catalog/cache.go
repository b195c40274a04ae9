// Package catalog provides a short-TTL read-through cache for the naturally
// idempotent catalog reads (get-catalog, get-app-definitions). It sits
// beside the translation pipeline, never inside it: pipeline stages stay
// stateless and a cache miss simply falls through to a normal call.
package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"camara-gateway/internal/common/logger"
	"camara-gateway/internal/pipeline/response"
)

const keyPrefix = "camara:catalog:"

type Cache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func New(rdb *redis.Client, ttl time.Duration, log logger.Logger) *Cache {
	return &Cache{rdb: rdb, ttl: ttl, logger: log}
}

// Get returns the cached typed response for an operation, if present and
// decodable. Cache failures degrade to a miss.
func (c *Cache) Get(ctx context.Context, operation string) (*response.TypedResponse, bool) {
	val, err := c.rdb.Get(ctx, keyPrefix+operation).Result()
	if err != nil {
		return nil, false
	}

	var typed response.TypedResponse
	if err := json.Unmarshal([]byte(val), &typed); err != nil {
		c.logger.Warn("discarding undecodable cache entry", map[string]interface{}{
			"operation": operation,
			"error":     err.Error(),
		})
		return nil, false
	}
	return &typed, true
}

// Set stores a typed response under the operation key. Failures are logged
// and otherwise ignored; the cache is best-effort.
func (c *Cache) Set(ctx context.Context, operation string, typed *response.TypedResponse) {
	data, err := json.Marshal(typed)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, keyPrefix+operation, data, c.ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", map[string]interface{}{
			"operation": operation,
			"error":     err.Error(),
		})
	}
}
