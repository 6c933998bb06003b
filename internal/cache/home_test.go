// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/rocknbeef-go/internal/content"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHomeCache(t *testing.T) {
	mc := NewMemoryCache(MemoryCacheOptions{DefaultTTL: time.Minute})
	defer func() { _ = mc.Close() }()
	hc := NewHomeCache(mc, time.Minute, discardLogger())
	ctx := context.Background()

	builds := 0
	build := func(lang content.Lang) func(context.Context) (content.HomePage, error) {
		return func(context.Context) (content.HomePage, error) {
			builds++
			return content.HomePage{
				Lang:   lang,
				Blocks: []content.BlockView{{ID: 1, Title: "Menu " + string(lang)}},
			}, nil
		}
	}

	page, err := hc.Get(ctx, content.LangEN, build(content.LangEN))
	require.NoError(t, err)
	assert.Equal(t, "Menu en", page.Blocks[0].Title)

	page, err = hc.Get(ctx, content.LangEN, build(content.LangEN))
	require.NoError(t, err)
	assert.Equal(t, content.LangEN, page.Lang)
	assert.Equal(t, 1, builds, "second read should come from the cache")

	_, err = hc.Get(ctx, content.LangDE, build(content.LangDE))
	require.NoError(t, err)
	assert.Equal(t, 2, builds, "languages are cached separately")

	hc.Invalidate(ctx)
	_, err = hc.Get(ctx, content.LangEN, build(content.LangEN))
	require.NoError(t, err)
	assert.Equal(t, 3, builds, "invalidate drops every language")
}

func TestHomeCache_BuildErrorNotCached(t *testing.T) {
	mc := NewMemoryCache(MemoryCacheOptions{DefaultTTL: time.Minute})
	defer func() { _ = mc.Close() }()
	hc := NewHomeCache(mc, time.Minute, discardLogger())
	ctx := context.Background()

	boom := errors.New("db down")
	_, err := hc.Get(ctx, content.LangPL, func(context.Context) (content.HomePage, error) {
		return content.HomePage{}, boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, mc.Stats().Items)
}

func TestHomeCache_InvalidateOnClosedCacheDoesNotPanic(t *testing.T) {
	mc := NewMemoryCache(MemoryCacheOptions{DefaultTTL: time.Minute})
	require.NoError(t, mc.Close())

	hc := NewHomeCache(mc, time.Minute, discardLogger())
	hc.Invalidate(context.Background())

	page, err := hc.Get(context.Background(), content.LangPL, func(context.Context) (content.HomePage, error) {
		return content.HomePage{Lang: content.LangPL}, nil
	})
	require.NoError(t, err, "a cache failure must not fail the page")
	assert.Equal(t, content.LangPL, page.Lang)
}

func TestNew_FallsBackToMemory(t *testing.T) {
	ctx := context.Background()

	c := New(ctx, Config{DefaultTTL: time.Minute, MaxSize: 10}, discardLogger())
	defer func() { _ = c.Close() }()
	_, ok := c.(*MemoryCache)
	assert.True(t, ok, "no redis URL should give a memory cache")

	bad := New(ctx, Config{RedisURL: "redis://127.0.0.1:1/0", DefaultTTL: time.Minute}, discardLogger())
	defer func() { _ = bad.Close() }()
	_, ok = bad.(*MemoryCache)
	assert.True(t, ok, "unreachable redis should fall back to memory")
}
