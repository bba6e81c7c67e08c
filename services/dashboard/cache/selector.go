package cache

import (
	"context"
	"time"

	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("cache")

// NewCacher picks the cache backend once, at startup. A configured and reachable redis server is used
// as the distributed cache, otherwise the process falls back to the local cache. There is no later
// failover: once redis is selected, its errors surface to the callers.
func NewCacher(ctx context.Context, redisAddress string, connectTimeout time.Duration) Cacher {
	if len(redisAddress) == 0 {
		log.Warn("redis connection not configured, using the local fallback cache")
		return NewLocalCache()
	}

	rc, err := NewRedisCache(ctx, redisAddress, connectTimeout)
	if err != nil {
		log.Warn("failed to connect to redis, using the local fallback cache", "error", err)
		return NewLocalCache()
	}

	log.Info("redis cache configured")

	return rc
}
