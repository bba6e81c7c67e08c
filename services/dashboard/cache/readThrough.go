package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/iulianpascalau/metrics-dashboard/services/dashboard/common"
	"github.com/multiversx/mx-chain-core-go/core/check"
	"golang.org/x/sync/singleflight"
)

// ReadThrough consults the cache before the source of truth. Concurrent misses on the same key share a
// single load.
type ReadThrough struct {
	cacher Cacher
	group  singleflight.Group
}

// NewReadThrough creates a read-through helper over the provided cacher
func NewReadThrough(cacher Cacher) (*ReadThrough, error) {
	if check.IfNil(cacher) {
		return nil, common.ErrNilCacher
	}

	return &ReadThrough{
		cacher: cacher,
	}, nil
}

// Remove deletes the provided keys from the underlying cache, stopping at the first error
func (rt *ReadThrough) Remove(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		err := rt.cacher.Remove(ctx, key)
		if err != nil {
			return err
		}
	}

	return nil
}

// Load returns the value cached under key or, on a miss, calls the loader, stores its result with the
// provided ttl and returns it. A cached value is returned as it was stored.
// Concurrent misses on the same key share one load; it keeps the first caller's context values but not its
// cancellation, so a caller that goes away does not fail the others waiting on the key.
func Load[T any](ctx context.Context, rt *ReadThrough, key string, ttl time.Duration, loader func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if loader == nil {
		return zero, errNilLoader
	}

	var cached T
	found, err := rt.cacher.Get(ctx, key, &cached)
	if err != nil {
		return zero, err
	}
	if found {
		log.Trace("cache hit", "key", key)
		return cached, nil
	}

	sharedCtx := context.WithoutCancel(ctx)
	value, err, _ := rt.group.Do(key, func() (interface{}, error) {
		loaded, errLoad := loader(sharedCtx)
		if errLoad != nil {
			return nil, errLoad
		}

		errSet := rt.cacher.Set(sharedCtx, key, loaded, ttl)
		if errSet != nil {
			return nil, errSet
		}

		return loaded, nil
	})
	if err != nil {
		return zero, err
	}

	result, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("%w for key %s", errTypeMismatch, key)
	}

	return result, nil
}
