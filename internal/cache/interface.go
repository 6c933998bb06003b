// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cache stores built public pages in memory or in Redis.
package cache

import (
	"context"
	"time"
)

// Cacher is a byte-valued cache. Implementations are safe for concurrent use.
type Cacher interface {
	// Get returns ErrCacheMiss for missing or expired keys.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value; a zero ttl uses the cache default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error

	// Clear removes every entry owned by the cache.
	Clear(ctx context.Context) error

	Close() error
}

// Stats holds cache statistics.
type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Sets   int64 `json:"sets"`
	Items  int   `json:"items"`
}

// Error represents an error type for cache operations.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrCacheMiss indicates the key was not found in cache or has expired.
	ErrCacheMiss Error = "cache miss"

	// ErrCacheClosed indicates the cache has been closed.
	ErrCacheClosed Error = "cache closed"
)
