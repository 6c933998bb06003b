// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"
)

// skipIfNoRedis skips the test if Redis is not configured.
func skipIfNoRedis(t *testing.T) string {
	url := os.Getenv("RNB_TEST_REDIS_URL")
	if url == "" {
		t.Skip("Skipping Redis tests: RNB_TEST_REDIS_URL not set")
	}
	return url
}

func TestRedisCache(t *testing.T) {
	url := skipIfNoRedis(t)
	ctx := context.Background()

	c, err := NewRedisCache(ctx, RedisCacheOptions{URL: url, Prefix: "rnb-test:", DefaultTTL: time.Minute})
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	defer func() { _ = c.Close() }()
	_ = c.Clear(ctx)

	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get(missing) error = %v, want ErrCacheMiss", err)
	}
	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := c.Get(ctx, "k")
	if err != nil || string(got) != "v" {
		t.Fatalf("Get = %q, %v", got, err)
	}

	_ = c.Set(ctx, "k2", []byte("v2"), 0)
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Error("deleted key should miss")
	}

	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := c.Get(ctx, "k2"); !errors.Is(err, ErrCacheMiss) {
		t.Error("cleared key should miss")
	}
}

func TestNewRedisCache_RequiresURL(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), RedisCacheOptions{}); err == nil {
		t.Error("expected error for empty URL")
	}
	if _, err := NewRedisCache(context.Background(), RedisCacheOptions{URL: "not a url"}); err == nil {
		t.Error("expected error for invalid URL")
	}
}
