package cache

import "errors"

var errInvalidDestination = errors.New("cache destination must be a non-nil pointer")

var errTypeMismatch = errors.New("cached value type mismatch")

var errNilLoader = errors.New("nil loader")
