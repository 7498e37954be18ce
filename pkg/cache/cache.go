// Package cache provides a small generic key-value cache with in-memory and
// Redis backends, plus a stampede-safe Loader for read-through caching.
//
// TTL semantics for Set:
//   - positive: the entry expires after the duration
//   - zero: the backend's default TTL applies
//   - negative: the entry never expires
//
// Example:
//
//	docs := cache.NewMemory[string](cache.WithMaxEntries(512))
//	loader := cache.NewLoader[string](docs)
//
//	body, err := loader.Load(ctx, "articles/a.en.md", func(ctx context.Context) (string, time.Duration, error) {
//		body, err := fetch(ctx)
//		return body, cache.NoExpiry, err
//	})
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// NoExpiry keeps an entry until it is deleted or evicted.
const NoExpiry time.Duration = -1

// Cache is a generic key-value cache with TTL support.
type Cache[V any] interface {
	// Get returns ErrNotFound if the key is missing or expired.
	Get(ctx context.Context, key string) (V, error)
	Set(ctx context.Context, key string, value V, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Codec converts values to bytes for byte-oriented backends.
type Codec[V any] interface {
	Encode(v V) ([]byte, error)
	Decode(data []byte) (V, error)
}

// JSONCodec encodes values with encoding/json.
type JSONCodec[V any] struct{}

func (JSONCodec[V]) Encode(v V) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return data, nil
}

func (JSONCodec[V]) Decode(data []byte) (V, error) {
	var v V
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return v, nil
}
