// internal/embedding/cache.go
package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"speech-scorer/internal/common/database"
	"speech-scorer/internal/common/logger"
	"speech-scorer/internal/common/metrics"
)

// RedisCache layers a shared Redis cache over another Provider so replicas
// serving the same rubric do not re-embed identical texts. Cache failures
// degrade to the underlying provider, never to the caller.
type RedisCache struct {
	next   Provider
	redis  *database.RedisClient
	model  string
	ttl    time.Duration
	logger logger.Logger
}

func NewRedisCache(next Provider, rdb *database.RedisClient, model string, ttl time.Duration, log logger.Logger) *RedisCache {
	return &RedisCache{
		next:   next,
		redis:  rdb,
		model:  model,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "embedding-cache"}),
	}
}

func (c *RedisCache) Dimensions() int {
	return c.next.Dimensions()
}

func (c *RedisCache) Embed(ctx context.Context, text string) ([]float32, error) {
	key := c.key(text)

	if raw, err := c.redis.Get(ctx, key); err == nil {
		var vector []float32
		if err := json.Unmarshal([]byte(raw), &vector); err == nil && len(vector) > 0 {
			metrics.EmbeddingRequestsTotal.WithLabelValues("redis_hit").Inc()
			return vector, nil
		}
		c.logger.Warn("discarding malformed cached embedding", map[string]interface{}{
			"key": key,
		})
	}

	vector, err := c.next.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(vector); err == nil {
		if err := c.redis.Set(ctx, key, string(raw), c.ttl); err != nil {
			c.logger.Debug("embedding cache write failed", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
	}

	return vector, nil
}

// key hashes the text so arbitrary transcripts produce bounded redis keys.
func (c *RedisCache) key(text string) string {
	sum := sha256.Sum256([]byte(text))
	return fmt.Sprintf("embedding:%s:%s", c.model, hex.EncodeToString(sum[:]))
}
