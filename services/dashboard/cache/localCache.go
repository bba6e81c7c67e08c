package cache

import (
	"context"
	"fmt"
	"reflect"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const localCleanupInterval = time.Minute

// localCache keeps live objects in the process memory, each with an absolute expiration
type localCache struct {
	store *gocache.Cache
}

// NewLocalCache creates an in-process cache
func NewLocalCache() *localCache {
	return &localCache{
		store: gocache.New(gocache.NoExpiration, localCleanupInterval),
	}
}

// Get copies the live object stored under key into dest
func (lc *localCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	value, found := lc.store.Get(key)
	if !found {
		return false, nil
	}

	target := reflect.ValueOf(dest)
	if target.Kind() != reflect.Ptr || target.IsNil() {
		return false, fmt.Errorf("%w for key %s", errInvalidDestination, key)
	}

	source := reflect.ValueOf(value)
	if !source.IsValid() {
		target.Elem().Set(reflect.Zero(target.Elem().Type()))
		return true, nil
	}
	if !source.Type().AssignableTo(target.Elem().Type()) {
		return false, fmt.Errorf("%w: key %s holds %s, requested %s", errTypeMismatch, key, source.Type(), target.Elem().Type())
	}

	target.Elem().Set(source)

	return true, nil
}

// Set stores the live object under key
func (lc *localCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}

	lc.store.Set(key, value, ttl)

	return nil
}

// Remove deletes the key
func (lc *localCache) Remove(_ context.Context, key string) error {
	lc.store.Delete(key)

	return nil
}

// Close empties the cache
func (lc *localCache) Close() error {
	lc.store.Flush()

	return nil
}

// IsInterfaceNil returns true if the value under the interface is nil
func (lc *localCache) IsInterfaceNil() bool {
	return lc == nil
}
