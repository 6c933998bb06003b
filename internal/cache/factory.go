// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"log/slog"
	"time"
)

// Config selects and sizes the cache backend.
type Config struct {
	// RedisURL enables the Redis backend when set.
	RedisURL   string
	Prefix     string
	DefaultTTL time.Duration
	// MaxSize bounds the memory backend.
	MaxSize int
}

// New returns a Redis cache when RedisURL is set and reachable, and a
// memory cache otherwise.
func New(ctx context.Context, cfg Config, logger *slog.Logger) Cacher {
	if cfg.RedisURL != "" {
		rc, err := NewRedisCache(ctx, RedisCacheOptions{
			URL:        cfg.RedisURL,
			Prefix:     cfg.Prefix,
			DefaultTTL: cfg.DefaultTTL,
		})
		if err == nil {
			logger.Info("using redis page cache", "prefix", cfg.Prefix)
			return rc
		}
		logger.Warn("redis unavailable, falling back to memory cache", "error", err)
	}

	logger.Info("using memory page cache", "max_size", cfg.MaxSize, "ttl", cfg.DefaultTTL)
	return NewMemoryCache(MemoryCacheOptions{
		DefaultTTL:      cfg.DefaultTTL,
		MaxSize:         cfg.MaxSize,
		CleanupInterval: time.Minute,
	})
}
