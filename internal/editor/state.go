// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package editor

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/olegiv/rocknbeef-go/internal/content"
)

// State is a snapshot of everything the admin screen edits.
// Reducers never modify their receiver; they return a new State.
type State struct {
	Lang         content.Lang
	Blocks       []content.Block
	Translations content.Index
	Gallery      []content.GalleryItem
}

// BlockField names an editable block column.
type BlockField string

// Editable block fields.
const (
	FieldBackground    BlockField = "background_image"
	FieldLinkURL       BlockField = "link_url"
	FieldLinkText      BlockField = "link_text"
	FieldVisible       BlockField = "visible"
	FieldPosition      BlockField = "position"
	FieldPDFURL        BlockField = "pdf_url"
	FieldPDFButtonText BlockField = "pdf_button_text"
)

// TranslationField names an editable translation column.
type TranslationField string

// Editable translation fields.
const (
	FieldTitle       TranslationField = "title"
	FieldDescription TranslationField = "description"
)

// Block returns the block with id.
func (s State) Block(id int64) (content.Block, bool) {
	i := slices.IndexFunc(s.Blocks, func(b content.Block) bool { return b.ID == id })
	if i == -1 {
		return content.Block{}, false
	}
	return s.Blocks[i], true
}

// GalleryItem returns the gallery item with id.
func (s State) GalleryItem(id int64) (content.GalleryItem, bool) {
	i := slices.IndexFunc(s.Gallery, func(g content.GalleryItem) bool { return g.ID == id })
	if i == -1 {
		return content.GalleryItem{}, false
	}
	return s.Gallery[i], true
}

// Translation returns the editable row for the pair; the zero ID marks a
// row that does not exist in the store yet.
func (s State) Translation(blockID int64, lang content.Lang) content.Translation {
	if t, ok := s.Translations.Lookup(blockID, lang); ok {
		return t
	}
	return content.Translation{BlockID: blockID, Lang: lang}
}

// WithLang returns a copy of s editing lang.
func (s State) WithLang(lang content.Lang) State {
	s.Lang = lang
	return s
}

// WithBlock returns a copy of s with b inserted or replaced, sorted by position.
func (s State) WithBlock(b content.Block) State {
	blocks := slices.Clone(s.Blocks)
	if i := slices.IndexFunc(blocks, func(x content.Block) bool { return x.ID == b.ID }); i >= 0 {
		blocks[i] = b
	} else {
		blocks = append(blocks, b)
	}
	content.SortBlocks(blocks)
	s.Blocks = blocks
	return s
}

// WithoutBlock returns a copy of s without the block and its translations.
func (s State) WithoutBlock(id int64) State {
	s.Blocks = slices.DeleteFunc(slices.Clone(s.Blocks), func(b content.Block) bool { return b.ID == id })
	s.Translations = s.Translations.Without(id)
	return s
}

// WithBlockField returns a copy of s with one block field set from its form value.
func (s State) WithBlockField(id int64, field BlockField, value string) (State, error) {
	b, ok := s.Block(id)
	if !ok {
		return s, fmt.Errorf("block %d: %w", id, ErrBlockNotFound)
	}

	switch field {
	case FieldBackground:
		b.BackgroundImage = value
	case FieldLinkURL:
		b.LinkURL = value
	case FieldLinkText:
		b.LinkText = value
	case FieldVisible:
		b.Visible = parseCheckbox(value)
	case FieldPosition:
		pos, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return s, fmt.Errorf("block %d position %q: %w", id, value, ErrInvalidValue)
		}
		b.Position = pos
	case FieldPDFURL:
		b.PDFURL = value
	case FieldPDFButtonText:
		b.PDFButtonText = value
	default:
		return s, fmt.Errorf("block field %q: %w", field, ErrInvalidValue)
	}

	return s.WithBlock(b), nil
}

// WithTranslation returns a copy of s with row stored under its pair.
func (s State) WithTranslation(row content.Translation) State {
	s.Translations = s.Translations.Set(row)
	return s
}

// WithTranslationField returns a copy of s with one translation field changed.
// A pair without a row gets a new unsaved row.
func (s State) WithTranslationField(blockID int64, lang content.Lang, field TranslationField, value string) (State, error) {
	t := s.Translation(blockID, lang)
	switch field {
	case FieldTitle:
		t.Title = value
	case FieldDescription:
		t.Description = value
	default:
		return s, fmt.Errorf("translation field %q: %w", field, ErrInvalidValue)
	}
	return s.WithTranslation(t), nil
}

// WithGallery returns a copy of s with the gallery replaced.
func (s State) WithGallery(items []content.GalleryItem) State {
	items = slices.Clone(items)
	content.SortGallery(items)
	s.Gallery = items
	return s
}

// WithGalleryCaption returns a copy of s with one caption changed.
// Languages without a caption column leave s unchanged.
func (s State) WithGalleryCaption(id int64, lang content.Lang, caption string) State {
	if !lang.HasGalleryCaption() {
		return s
	}
	i := slices.IndexFunc(s.Gallery, func(g content.GalleryItem) bool { return g.ID == id })
	if i == -1 {
		return s
	}
	gallery := slices.Clone(s.Gallery)
	gallery[i] = gallery[i].WithCaption(lang, caption)
	s.Gallery = gallery
	return s
}

// WithoutGalleryItem returns a copy of s without the gallery item.
func (s State) WithoutGalleryItem(id int64) State {
	s.Gallery = slices.DeleteFunc(slices.Clone(s.Gallery), func(g content.GalleryItem) bool { return g.ID == id })
	return s
}

func parseCheckbox(v string) bool {
	if v == "on" {
		return true
	}
	b, _ := strconv.ParseBool(v)
	return b
}
