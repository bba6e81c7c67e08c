package cache

import (
	"context"
	"time"
)

// Cacher defines the operations of a key-value cache with per-key time-to-live
type Cacher interface {
	// Get loads the value stored under key into dest (a non-nil pointer). It returns false if the key is absent or expired.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores the value under key. A ttl <= 0 keeps the entry until it is removed.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Remove deletes the key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	Close() error
	IsInterfaceNil() bool
}
