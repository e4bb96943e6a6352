package cache

import "errors"

var (
	// ErrCacheMiss is returned when a key is absent or expired
	ErrCacheMiss = errors.New("cache miss")

	// ErrInvalidCacheKey is returned for an empty key
	ErrInvalidCacheKey = errors.New("invalid cache key")
)
