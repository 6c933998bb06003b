// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/olegiv/rocknbeef-go/internal/cache"
	"github.com/olegiv/rocknbeef-go/internal/content"
	"github.com/olegiv/rocknbeef-go/internal/editor"
	"github.com/olegiv/rocknbeef-go/internal/i18n"
	"github.com/olegiv/rocknbeef-go/internal/middleware"
	"github.com/olegiv/rocknbeef-go/internal/render"
	"github.com/olegiv/rocknbeef-go/internal/storage"
	"github.com/olegiv/rocknbeef-go/internal/store"
)

// FrontendHandler handles the public site.
type FrontendHandler struct {
	queries   *store.Queries
	bucket    *storage.Bucket
	renderer  *render.Renderer
	homeCache *cache.HomeCache
	logger    *slog.Logger
}

// NewFrontendHandler creates a new FrontendHandler. homeCache may be nil.
func NewFrontendHandler(db *sql.DB, bucket *storage.Bucket, renderer *render.Renderer, homeCache *cache.HomeCache, logger *slog.Logger) *FrontendHandler {
	return &FrontendHandler{
		queries:   store.New(db),
		bucket:    bucket,
		renderer:  renderer,
		homeCache: homeCache,
		logger:    logger,
	}
}

// Home renders the home page in the visitor's language.
func (h *FrontendHandler) Home(w http.ResponseWriter, r *http.Request) {
	lang := content.NormalizeLang(middleware.GetLang(r))

	var (
		page content.HomePage
		err  error
	)
	if h.homeCache != nil {
		page, err = h.homeCache.Get(r.Context(), lang, func(ctx context.Context) (content.HomePage, error) {
			return h.buildHome(ctx, lang)
		})
	} else {
		page, err = h.buildHome(r.Context(), lang)
	}
	if err != nil {
		h.logger.Error("failed to build home page", "lang", lang, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := h.renderer.Render(w, r, "site/home", render.TemplateData{
		Title: i18n.T(string(lang), "site.tagline"),
		Lang:  string(lang),
		Data:  page,
	}); err != nil {
		h.logger.Error("failed to render home page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (h *FrontendHandler) buildHome(ctx context.Context, lang content.Lang) (content.HomePage, error) {
	blockRows, err := h.queries.ListBlocks(ctx)
	if err != nil {
		return content.HomePage{}, fmt.Errorf("listing blocks: %w", err)
	}
	trRows, err := h.queries.ListTranslationsNewestFirst(ctx)
	if err != nil {
		return content.HomePage{}, fmt.Errorf("listing translations: %w", err)
	}
	galleryRows, err := h.queries.ListGalleryItems(ctx)
	if err != nil {
		return content.HomePage{}, fmt.Errorf("listing gallery: %w", err)
	}

	blocks := make([]content.Block, len(blockRows))
	for i, row := range blockRows {
		blocks[i] = editor.BlockFromStore(row)
	}
	translations := make([]content.Translation, len(trRows))
	for i, row := range trRows {
		translations[i] = editor.TranslationFromStore(row)
	}
	gallery := make([]content.GalleryItem, len(galleryRows))
	for i, row := range galleryRows {
		gallery[i] = editor.GalleryItemFromStore(row)
	}

	return content.BuildHome(blocks, translations, gallery, lang, h.bucket.ToPublicURLIfNeeded), nil
}
