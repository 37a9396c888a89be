package cache

import (
	"context"
	"errors"
	"time"
)

// Helper is a typed read-through wrapper around Cache.
type Helper[T any] struct {
	Cache *Cache
}

func NewHelper[T any](cache *Cache) *Helper[T] {
	return &Helper[T]{Cache: cache}
}

// Handle returns the cached value for key or calls fn and stores its result.
// Errors from fn are returned and nothing is stored. A nil Helper or Cache
// always calls fn.
func (h *Helper[T]) Handle(ctx context.Context, key string, expiration time.Duration, fn func() (T, error)) (T, error) {
	var out T
	if h == nil || h.Cache == nil {
		return fn()
	}
	err := h.Cache.Get(ctx, key, &out)
	if err == nil {
		return out, nil
	}
	if !errors.Is(err, ErrMiss) {
		// backend unavailable, serve uncached
		return fn()
	}
	out, err = fn()
	if err != nil {
		return out, err
	}
	_ = h.Cache.Set(ctx, key, out, expiration)
	return out, nil
}
