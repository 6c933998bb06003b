// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package editor implements the admin operations on blocks, translations
// and the gallery. Every operation takes the current State and returns the
// next one; the State only advances when the store accepted the change.
package editor

import (
	"context"
	"fmt"
	"html"
	"io"
	"log/slog"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/olegiv/rocknbeef-go/internal/content"
	"github.com/olegiv/rocknbeef-go/internal/imaging"
	"github.com/olegiv/rocknbeef-go/internal/storage"
	"github.com/olegiv/rocknbeef-go/internal/store"
	"github.com/olegiv/rocknbeef-go/internal/translate"
)

// Store is the relational part of the content store.
// Each call is independent; none is atomic with another.
type Store interface {
	ListBlocks(ctx context.Context) ([]store.Block, error)
	ListTranslationsNewestFirst(ctx context.Context) ([]store.Translation, error)
	ListGalleryItems(ctx context.Context) ([]store.GalleryItem, error)

	CreateBlock(ctx context.Context, arg store.CreateBlockParams) (store.Block, error)
	UpdateBlock(ctx context.Context, arg store.UpdateBlockParams) error
	UpdateBlockPosition(ctx context.Context, arg store.UpdateBlockPositionParams) error
	UpdateBlockBackground(ctx context.Context, arg store.UpdateBlockBackgroundParams) error
	UpdateBlockPDF(ctx context.Context, arg store.UpdateBlockPDFParams) error
	DeleteBlock(ctx context.Context, id int64) error

	CreateTranslation(ctx context.Context, arg store.CreateTranslationParams) (store.Translation, error)
	UpdateTranslation(ctx context.Context, arg store.UpdateTranslationParams) (store.Translation, error)
	UpsertTranslation(ctx context.Context, arg store.UpsertTranslationParams) (store.Translation, error)
	DeleteTranslationsByBlock(ctx context.Context, blockID int64) error

	CreateGalleryItem(ctx context.Context, arg store.CreateGalleryItemParams) (store.GalleryItem, error)
	UpdateGalleryCaptions(ctx context.Context, arg store.UpdateGalleryCaptionsParams) error
	DeleteGalleryItem(ctx context.Context, id int64) error
}

// Objects is the public object bucket.
type Objects interface {
	Upload(ctx context.Context, objectPath string, r io.Reader, opts storage.UploadOptions) error
	Remove(ctx context.Context, objectPaths ...string) error
	PublicURL(objectPath string) string
	ExtractPath(publicURL string) (string, bool)
	ToPublicURLIfNeeded(v string) string
}

// Images converts uploads before they are stored.
type Images interface {
	ToWebP(r io.Reader) (*imaging.Result, error)
}

// Editor runs admin operations.
type Editor struct {
	store      Store
	objects    Objects
	images     Images
	translator translate.Translator
	jobs       *Jobs
	policy     *bluemonday.Policy
	logger     *slog.Logger
	now        func() time.Time
}

// New creates an editor.
func New(s Store, objects Objects, images Images, translator translate.Translator, logger *slog.Logger) *Editor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Editor{
		store:      s,
		objects:    objects,
		images:     images,
		translator: translator,
		jobs:       NewJobs(),
		policy:     bluemonday.StrictPolicy(),
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Jobs returns the auto-translate tracker.
func (e *Editor) Jobs() *Jobs {
	return e.jobs
}

// Load reads blocks, translations and gallery items and merges them into a
// State editing lang. Gallery image references are normalized to public URLs.
func (e *Editor) Load(ctx context.Context, lang content.Lang) (State, error) {
	rows, err := e.store.ListBlocks(ctx)
	if err != nil {
		return State{}, fmt.Errorf("listing blocks: %w", err)
	}
	trRows, err := e.store.ListTranslationsNewestFirst(ctx)
	if err != nil {
		return State{}, fmt.Errorf("listing translations: %w", err)
	}
	galleryRows, err := e.store.ListGalleryItems(ctx)
	if err != nil {
		return State{}, fmt.Errorf("listing gallery: %w", err)
	}

	blocks := make([]content.Block, 0, len(rows))
	for _, r := range rows {
		blocks = append(blocks, BlockFromStore(r))
	}
	content.SortBlocks(blocks)

	translations := make([]content.Translation, 0, len(trRows))
	for _, r := range trRows {
		translations = append(translations, TranslationFromStore(r))
	}

	st := State{
		Lang:         lang,
		Blocks:       blocks,
		Translations: content.LatestByBlock(translations),
	}
	return st.WithGallery(e.galleryFromStore(galleryRows)), nil
}

func (e *Editor) galleryFromStore(rows []store.GalleryItem) []content.GalleryItem {
	items := make([]content.GalleryItem, 0, len(rows))
	for _, r := range rows {
		item := GalleryItemFromStore(r)
		item.ImageURL = e.objects.ToPublicURLIfNeeded(item.ImageURL)
		items = append(items, item)
	}
	return items
}

// clean strips markup from user input and returns plain text.
func (e *Editor) clean(s string) string {
	return html.UnescapeString(e.policy.Sanitize(s))
}

// BlockFromStore converts a stored block.
func BlockFromStore(r store.Block) content.Block {
	return content.Block{
		ID:              r.ID,
		Slug:            r.Slug,
		Visible:         r.Visible,
		BackgroundImage: r.BackgroundImage,
		PDFURL:          r.PdfUrl.String,
		PDFButtonText:   r.PdfButtonText.String,
		LinkURL:         r.LinkUrl,
		LinkText:        r.LinkText,
		Position:        r.Position,
		CreatedBy:       r.CreatedBy,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// TranslationFromStore converts a stored translation.
func TranslationFromStore(r store.Translation) content.Translation {
	return content.Translation{
		ID:          r.ID,
		BlockID:     r.BlockID,
		Lang:        content.Lang(r.Lang),
		Title:       r.Title,
		Description: r.Description,
		UpdatedAt:   r.UpdatedAt,
		CreatedBy:   r.CreatedBy,
	}
}

// GalleryItemFromStore converts a stored gallery item.
func GalleryItemFromStore(r store.GalleryItem) content.GalleryItem {
	return content.GalleryItem{
		ID:        r.ID,
		ImageURL:  r.ImageUrl,
		CaptionPL: r.CaptionPl,
		CaptionEN: r.CaptionEn,
		CaptionDE: r.CaptionDe,
		CaptionES: r.CaptionEs,
		Position:  r.Position,
		CreatedBy: r.CreatedBy,
		CreatedAt: r.CreatedAt,
	}
}
