// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestMemoryCache(maxSize int) (*MemoryCache, *time.Time) {
	c := NewMemoryCache(MemoryCacheOptions{DefaultTTL: time.Minute, MaxSize: maxSize})
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	return c, &now
}

func TestMemoryCache_SetGet(t *testing.T) {
	c, _ := newTestMemoryCache(0)
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	if _, err := c.Get(ctx, "missing"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get(missing) error = %v, want ErrCacheMiss", err)
	}

	value := []byte("hello")
	if err := c.Set(ctx, "k", value, 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	value[0] = 'j'

	got, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "hello" {
		t.Errorf("Get = %q, want %q", got, "hello")
	}

	got[0] = 'x'
	again, _ := c.Get(ctx, "k")
	if string(again) != "hello" {
		t.Errorf("stored value was mutated: %q", again)
	}

	stats := c.Stats()
	if stats.Hits != 2 || stats.Misses != 1 || stats.Sets != 1 || stats.Items != 1 {
		t.Errorf("Stats = %+v", stats)
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c, now := newTestMemoryCache(0)
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	_ = c.Set(ctx, "default", []byte("a"), 0)
	_ = c.Set(ctx, "short", []byte("b"), 10*time.Second)

	*now = now.Add(30 * time.Second)
	if _, err := c.Get(ctx, "short"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("short entry should expire, got %v", err)
	}
	if _, err := c.Get(ctx, "default"); err != nil {
		t.Errorf("default entry should live a minute, got %v", err)
	}

	*now = now.Add(time.Minute)
	if _, err := c.Get(ctx, "default"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("default entry should expire, got %v", err)
	}
}

func TestMemoryCache_MaxSize(t *testing.T) {
	c, now := newTestMemoryCache(2)
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	_ = c.Set(ctx, "a", []byte("1"), time.Minute)
	*now = now.Add(time.Second)
	_ = c.Set(ctx, "b", []byte("2"), time.Minute)

	// Overwriting an existing key never evicts.
	_ = c.Set(ctx, "b", []byte("3"), time.Minute)
	if c.Stats().Items != 2 {
		t.Fatalf("Items = %d, want 2", c.Stats().Items)
	}

	_ = c.Set(ctx, "c", []byte("4"), time.Minute)
	if _, err := c.Get(ctx, "a"); !errors.Is(err, ErrCacheMiss) {
		t.Error("entry closest to expiry should be evicted")
	}
	for _, key := range []string{"b", "c"} {
		if _, err := c.Get(ctx, key); err != nil {
			t.Errorf("Get(%q): %v", key, err)
		}
	}
}

func TestMemoryCache_DeleteClear(t *testing.T) {
	c, _ := newTestMemoryCache(0)
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	for _, key := range []string{"a", "b", "c"} {
		_ = c.Set(ctx, key, []byte(key), 0)
	}

	if err := c.Delete(ctx, "a", "b", "missing"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if c.Stats().Items != 1 {
		t.Errorf("Items after Delete = %d, want 1", c.Stats().Items)
	}

	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if c.Stats().Items != 0 {
		t.Errorf("Items after Clear = %d, want 0", c.Stats().Items)
	}
}

func TestMemoryCache_Closed(t *testing.T) {
	c, _ := newTestMemoryCache(0)
	ctx := context.Background()

	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}

	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Get error = %v, want ErrCacheClosed", err)
	}
	if err := c.Set(ctx, "k", nil, 0); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Set error = %v, want ErrCacheClosed", err)
	}
	if err := c.Delete(ctx, "k"); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Delete error = %v, want ErrCacheClosed", err)
	}
	if err := c.Clear(ctx); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Clear error = %v, want ErrCacheClosed", err)
	}
}
