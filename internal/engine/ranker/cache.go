// internal/engine/ranker/cache.go
package ranker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"talent-recommender/internal/common/logger"
	"talent-recommender/internal/models"
)

// RedisCache stores ranked result sets as JSON blobs with a short TTL.
// Redis being down never fails a ranking call: reads degrade to misses
// and writes are logged and dropped.
type RedisCache struct {
	client *redis.Client
	log    logger.Logger
}

// NewRedisCache wraps an existing client.
func NewRedisCache(client *redis.Client, log logger.Logger) *RedisCache {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &RedisCache{
		client: client,
		log:    log.WithFields(map[string]interface{}{"component": "result_cache"}),
	}
}

// Get returns the cached result set for key, or a miss on absence,
// connectivity failure or a corrupt payload.
func (c *RedisCache) Get(ctx context.Context, key string) ([]models.RankedResult, bool) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("cache read failed, recomputing", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
		return nil, false
	}

	var results []models.RankedResult
	if err := json.Unmarshal(payload, &results); err != nil {
		c.log.Warn("cache payload corrupt, recomputing", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return nil, false
	}
	return results, true
}

// Set stores the result set under key for ttl. Failures are logged and
// otherwise ignored.
func (c *RedisCache) Set(ctx context.Context, key string, results []models.RankedResult, ttl time.Duration) {
	payload, err := json.Marshal(results)
	if err != nil {
		c.log.Warn("cache encode failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return
	}
	if err := c.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		c.log.Warn("cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}
