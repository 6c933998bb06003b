// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/olegiv/rocknbeef-go/internal/content"
)

// HomeCache caches the built home page per language.
type HomeCache struct {
	pages  *TypedCache[content.HomePage]
	logger *slog.Logger
}

// NewHomeCache wraps c.
func NewHomeCache(c Cacher, ttl time.Duration, logger *slog.Logger) *HomeCache {
	return &HomeCache{
		pages:  NewTypedCache[content.HomePage](c, ttl),
		logger: logger,
	}
}

func homeKey(lang content.Lang) string {
	return "home:" + string(lang)
}

// Get returns the cached page for lang, building it with build on a miss.
func (h *HomeCache) Get(ctx context.Context, lang content.Lang, build func(context.Context) (content.HomePage, error)) (content.HomePage, error) {
	return h.pages.GetOrSet(ctx, homeKey(lang), func() (content.HomePage, error) {
		return build(ctx)
	})
}

// Invalidate drops the page of every language. Errors are logged, never
// returned, so a cache outage cannot fail an admin write.
func (h *HomeCache) Invalidate(ctx context.Context) {
	keys := make([]string, len(content.Languages))
	for i, lang := range content.Languages {
		keys[i] = homeKey(lang)
	}
	if err := h.pages.Delete(ctx, keys...); err != nil {
		h.logger.Warn("failed to invalidate home page cache", "error", err)
	}
}
