// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"strings"
	"time"
)

// GallerySlug marks the block that switches the gallery section on.
const GallerySlug = "gallery"

// DefaultPhotoAlt is the alt text of an uncaptioned gallery photo.
const DefaultPhotoAlt = "Zdjęcie"

var pdfButtonDefaults = map[Lang]string{
	LangPL: "Zobacz PDF",
	LangEN: "View PDF",
	LangDE: "PDF ansehen",
	LangES: "Ver PDF",
	LangUK: "Переглянути PDF",
}

// Block is a visually distinct section of the home page.
type Block struct {
	ID              int64
	Slug            string
	Visible         bool
	BackgroundImage string
	PDFURL          string
	PDFButtonText   string
	LinkURL         string
	LinkText        string
	Position        int64
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HasLink reports whether both link text and URL are set.
func (b Block) HasLink() bool {
	return b.LinkText != "" && b.LinkURL != ""
}

// ExternalLink reports whether the link leaves the site.
func (b Block) ExternalLink() bool {
	return strings.HasPrefix(b.LinkURL, "http")
}

// ButtonLabel returns the PDF button label, falling back to a per-language default.
func (b Block) ButtonLabel(lang Lang) string {
	if b.PDFButtonText != "" {
		return b.PDFButtonText
	}
	if label, ok := pdfButtonDefaults[lang]; ok {
		return label
	}
	return pdfButtonDefaults[DefaultLang]
}

// Translation is the localized text of one block in one language.
type Translation struct {
	ID          int64
	BlockID     int64
	Lang        Lang
	Title       string
	Description string
	UpdatedAt   time.Time
	CreatedBy   string
}

// Text returns the title/description pair.
func (t Translation) Text() Text {
	return Text{Title: t.Title, Description: t.Description}
}

// Text is a resolved title/description pair.
type Text struct {
	Title       string
	Description string
}

// IsEmpty reports whether neither title nor description is set.
func (t Text) IsEmpty() bool {
	return t.Title == "" && t.Description == ""
}

// GalleryItem is one photo of the gallery.
type GalleryItem struct {
	ID        int64
	ImageURL  string
	CaptionPL string
	CaptionEN string
	CaptionDE string
	CaptionES string
	Position  int64
	CreatedBy string
	CreatedAt time.Time
}

// CaptionFor returns the stored caption for lang without fallback.
func (g GalleryItem) CaptionFor(lang Lang) string {
	switch lang {
	case LangPL:
		return g.CaptionPL
	case LangEN:
		return g.CaptionEN
	case LangDE:
		return g.CaptionDE
	case LangES:
		return g.CaptionES
	}
	return ""
}

// WithCaption returns a copy of g with the caption for lang replaced.
// Languages without a caption column leave g unchanged.
func (g GalleryItem) WithCaption(lang Lang, caption string) GalleryItem {
	switch lang {
	case LangPL:
		g.CaptionPL = caption
	case LangEN:
		g.CaptionEN = caption
	case LangDE:
		g.CaptionDE = caption
	case LangES:
		g.CaptionES = caption
	}
	return g
}

// Caption returns the caption in lang, falling back to Polish then English.
func (g GalleryItem) Caption(lang Lang) string {
	if c := g.CaptionFor(lang); c != "" {
		return c
	}
	if g.CaptionPL != "" {
		return g.CaptionPL
	}
	return g.CaptionEN
}

// Alt returns the image alt text in lang.
func (g GalleryItem) Alt(lang Lang) string {
	if c := g.Caption(lang); c != "" {
		return c
	}
	return DefaultPhotoAlt
}
