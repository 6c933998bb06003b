// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildHome(t *testing.T) {
	blocks := []Block{
		{ID: 3, Slug: "gallery", Visible: true, Position: 3},
		{ID: 1, Slug: "hero", Visible: true, Position: 1, PDFURL: "/menu.pdf", LinkURL: "https://example.com", LinkText: "Book"},
		{ID: 2, Slug: "hidden", Visible: false, Position: 2},
	}
	rows := []Translation{
		tr(1, 1, LangPL, "Witaj", "Opis", 0),
		tr(2, 1, LangEN, "Hello", "", 0),
	}
	gallery := []GalleryItem{
		{ID: 20, ImageURL: "b.webp", Position: 2},
		{ID: 10, ImageURL: "gallery/a.webp", CaptionPL: "Stek", Position: 1},
	}
	resolve := func(s string) string { return "/public/" + s }

	page := BuildHome(blocks, rows, gallery, LangEN, resolve)

	require.Len(t, page.Blocks, 2)
	assert.Equal(t, int64(1), page.Blocks[0].ID)
	assert.Equal(t, "Hello", page.Blocks[0].Title)
	assert.Equal(t, "", page.Blocks[0].Description)
	assert.Equal(t, "View PDF", page.Blocks[0].PDFLabel)
	assert.True(t, page.Blocks[0].HasLink)
	assert.True(t, page.Blocks[0].ExternalLink)
	assert.Equal(t, int64(3), page.Blocks[1].ID)

	require.True(t, page.ShowGallery)
	require.Len(t, page.Gallery, 2)
	assert.Equal(t, "/public/gallery/a.webp", page.Gallery[0].ImageURL)
	assert.Equal(t, "Stek", page.Gallery[0].Caption)
	assert.Equal(t, DefaultPhotoAlt, page.Gallery[1].Alt)
}

func TestBuildHomeHidesGallery(t *testing.T) {
	blocks := []Block{{ID: 1, Slug: "gallery", Visible: false}}
	gallery := []GalleryItem{{ID: 1, ImageURL: "a.webp"}}

	page := BuildHome(blocks, nil, gallery, LangPL, nil)

	assert.Empty(t, page.Blocks)
	assert.False(t, page.ShowGallery)
	assert.Empty(t, page.Gallery)
}

func TestBlockButtonLabel(t *testing.T) {
	assert.Equal(t, "Zobacz PDF", Block{}.ButtonLabel(LangPL))
	assert.Equal(t, "Menu", Block{PDFButtonText: "Menu"}.ButtonLabel(LangEN))
	assert.Equal(t, "Zobacz PDF", Block{}.ButtonLabel(Lang("xx")))
}

func TestGalleryItemCaption(t *testing.T) {
	item := GalleryItem{CaptionPL: "Stek", CaptionEN: "Steak", CaptionDE: "Steak DE"}

	assert.Equal(t, "Steak DE", item.Caption(LangDE))
	assert.Equal(t, "Stek", item.Caption(LangES))
	assert.Equal(t, "Stek", item.Caption(LangUK))
	assert.Equal(t, "Steak", GalleryItem{CaptionEN: "Steak"}.Caption(LangPL))

	updated := item.WithCaption(LangES, "Filete")
	assert.Equal(t, "Filete", updated.CaptionES)
	assert.Equal(t, "", item.CaptionES)
	assert.Equal(t, item, item.WithCaption(LangUK, "ignored"))
}

func TestContactPhoneDigits(t *testing.T) {
	assert.Equal(t, "+48697002234", DefaultContact.PhoneDigits())
}
