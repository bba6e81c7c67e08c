package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// redisCache stores the values JSON encoded in a redis server
type redisCache struct {
	client *redis.Client
}

// NewRedisCache connects to the redis server at the provided address and checks it answers to PING.
// The address is either host:port or a redis:// (rediss://) URL.
func NewRedisCache(ctx context.Context, address string, timeout time.Duration) (*redisCache, error) {
	opts, err := parseRedisAddress(address)
	if err != nil {
		return nil, err
	}
	opts.DialTimeout = timeout

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err = client.Ping(pingCtx).Err()
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", opts.Addr, err)
	}

	return &redisCache{
		client: client,
	}, nil
}

func parseRedisAddress(address string) (*redis.Options, error) {
	if strings.Contains(address, "://") {
		opts, err := redis.ParseURL(address)
		if err != nil {
			return nil, fmt.Errorf("invalid redis URL: %w", err)
		}

		return opts, nil
	}

	return &redis.Options{
		Addr: address,
	}, nil
}

// Get decodes the JSON stored under key into dest
func (rc *redisCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := rc.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}

	err = json.UnmarshalFromString(data, dest)
	if err != nil {
		return false, fmt.Errorf("failed to decode cached value for key %s: %w", key, err)
	}

	return true, nil
}

// Set stores the JSON encoding of value under key
func (rc *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.MarshalToString(value)
	if err != nil {
		return fmt.Errorf("failed to encode value for key %s: %w", key, err)
	}
	if ttl < 0 {
		ttl = 0
	}

	err = rc.client.Set(ctx, key, data, ttl).Err()
	if err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}

	return nil
}

// Remove deletes the key
func (rc *redisCache) Remove(ctx context.Context, key string) error {
	err := rc.client.Del(ctx, key).Err()
	if err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}

	return nil
}

// Close closes the redis client
func (rc *redisCache) Close() error {
	return rc.client.Close()
}

// IsInterfaceNil returns true if the value under the interface is nil
func (rc *redisCache) IsInterfaceNil() bool {
	return rc == nil
}
