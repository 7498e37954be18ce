package cache

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultLoadTimeout bounds a shared LoadFunc call.
const DefaultLoadTimeout = 30 * time.Second

// LoadFunc computes a value on a cache miss together with the TTL to store it with.
type LoadFunc[V any] func(ctx context.Context) (V, time.Duration, error)

// Loader wraps a Cache with read-through loading. Concurrent misses for the
// same key share a single LoadFunc call. Errors are never cached, so the next
// Load after a failure calls LoadFunc again.
//
// The shared call is detached from the cancellation of the caller that
// started it and bounded by the load timeout instead. Each caller stops
// waiting when its own context ends; the others still get the result.
type Loader[V any] struct {
	cache   Cache[V]
	group   singleflight.Group
	timeout time.Duration
}

// LoaderOption configures a Loader.
type LoaderOption func(*loaderConfig)

type loaderConfig struct {
	timeout time.Duration
}

// WithLoadTimeout bounds each shared LoadFunc call. Default: DefaultLoadTimeout.
func WithLoadTimeout(d time.Duration) LoaderOption {
	return func(c *loaderConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// NewLoader creates a Loader over c.
func NewLoader[V any](c Cache[V], opts ...LoaderOption) *Loader[V] {
	cfg := loaderConfig{timeout: DefaultLoadTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Loader[V]{cache: c, timeout: cfg.timeout}
}

// Cache returns the underlying cache.
func (l *Loader[V]) Cache() Cache[V] {
	return l.cache
}

// Load returns the cached value for key or computes it with fn.
func (l *Loader[V]) Load(ctx context.Context, key string, fn LoadFunc[V]) (V, error) {
	var zero V
	if v, err := l.cache.Get(ctx, key); err == nil {
		return v, nil
	}

	ch := l.group.DoChan(key, func() (any, error) {
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.timeout)
		defer cancel()

		// Another caller may have filled the entry while we waited for the group.
		if v, err := l.cache.Get(sctx, key); err == nil {
			return v, nil
		}
		v, ttl, err := fn(sctx)
		if err != nil {
			return nil, err
		}
		// Best effort: a failing backend must not hide a good value.
		_ = l.cache.Set(sctx, key, v, ttl)
		return v, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(V), nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Forget drops key from the cache so the next Load recomputes it.
func (l *Loader[V]) Forget(ctx context.Context, key string) error {
	l.group.Forget(key)
	return l.cache.Delete(ctx, key)
}
