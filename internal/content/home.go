// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"slices"
	"strings"
)

// Contact holds the restaurant details shown in the footer.
type Contact struct {
	Name          string
	Street        string
	PostalCity    string
	Phone         string
	Facebook      string
	Instagram     string
	GoogleProfile string
	Directions    string
	MapEmbedURL   string
}

// PhoneDigits returns the phone number with whitespace removed, for tel: links.
func (c Contact) PhoneDigits() string {
	return strings.Join(strings.Fields(c.Phone), "")
}

// DefaultContact is the restaurant's footer data.
var DefaultContact = Contact{
	Name:          "Rock’n Beef — Steakhouse",
	Street:        "Zacisze 5C/1",
	PostalCity:    "65-775 Zielona Góra",
	Phone:         "+48 697 002 234",
	Facebook:      "https://www.facebook.com/steakhouse.rock.n.beef/?locale=pl_PL",
	Instagram:     "https://www.instagram.com/steakhouse_rock_n_beef/",
	GoogleProfile: "https://share.google/cqP9mGzrANpxGjYki",
	Directions:    "https://maps.app.goo.gl/GS55DKSvrL4iW8xT8",
	MapEmbedURL: "https://www.google.com/maps/embed?pb=!1m18!1m12!1m3!1d2459.5527136925057!2d15.476904176899577" +
		"!3d51.942111678853266!2m3!1f0!2f0!3f0!3m2!1i1024!2i768!4f13.1!3m3!1m2!1s0x470613f002e97b19%3A0xa29f24cc18ff1b6c" +
		"!2sSteakHouse%20Rock'n%20BEEF!5e0!3m2!1spl!2spl!4v1758896343133!5m2!1spl!2spl",
}

// BlockView is a block ready for rendering.
type BlockView struct {
	ID           int64
	Slug         string
	Background   string
	Title        string
	Description  string
	PDFURL       string
	PDFLabel     string
	LinkURL      string
	LinkText     string
	HasLink      bool
	ExternalLink bool
}

// GalleryView is a gallery photo ready for rendering.
type GalleryView struct {
	ID       int64
	ImageURL string
	Caption  string
	Alt      string
}

// HomePage is the view model of the public home page.
type HomePage struct {
	Lang        Lang
	Languages   []Lang
	Blocks      []BlockView
	ShowGallery bool
	Gallery     []GalleryView
	Contact     Contact
}

// BuildHome merges stored rows into the home page view model for lang.
// resolveURL normalizes gallery image references; nil leaves them unchanged.
func BuildHome(blocks []Block, rows []Translation, gallery []GalleryItem, lang Lang, resolveURL func(string) string) HomePage {
	if resolveURL == nil {
		resolveURL = func(s string) string { return s }
	}

	sorted := slices.Clone(blocks)
	SortBlocks(sorted)
	visible := VisibleBlocks(sorted)
	idx := LatestByBlock(rows)

	page := HomePage{
		Lang:        lang,
		Languages:   Languages,
		Blocks:      make([]BlockView, 0, len(visible)),
		ShowGallery: ShowGallery(visible),
		Contact:     DefaultContact,
	}

	for _, b := range visible {
		text := idx.Resolve(b.ID, lang)
		view := BlockView{
			ID:           b.ID,
			Slug:         b.Slug,
			Background:   b.BackgroundImage,
			Title:        text.Title,
			Description:  text.Description,
			PDFURL:       b.PDFURL,
			LinkURL:      b.LinkURL,
			LinkText:     b.LinkText,
			HasLink:      b.HasLink(),
			ExternalLink: b.ExternalLink(),
		}
		if b.PDFURL != "" {
			view.PDFLabel = b.ButtonLabel(lang)
		}
		page.Blocks = append(page.Blocks, view)
	}

	if page.ShowGallery {
		items := slices.Clone(gallery)
		SortGallery(items)
		page.Gallery = make([]GalleryView, 0, len(items))
		for _, g := range items {
			page.Gallery = append(page.Gallery, GalleryView{
				ID:       g.ID,
				ImageURL: resolveURL(g.ImageURL),
				Caption:  g.Caption(lang),
				Alt:      g.Alt(lang),
			})
		}
	}

	return page
}
