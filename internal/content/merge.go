// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"cmp"
	"slices"
)

// CompareNewest orders translations newest first: UpdatedAt descending,
// then ID descending. It never depends on input order.
func CompareNewest(a, b Translation) int {
	if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
		return c
	}
	return cmp.Compare(b.ID, a.ID)
}

// SortNewestFirst sorts rows in place with CompareNewest.
func SortNewestFirst(rows []Translation) {
	slices.SortStableFunc(rows, CompareNewest)
}

// Index holds the authoritative translation per block and language.
type Index map[int64]map[Lang]Translation

// LatestByBlock keeps the newest row for every (block, lang) pair.
// The input slice is not modified.
func LatestByBlock(rows []Translation) Index {
	sorted := slices.Clone(rows)
	SortNewestFirst(sorted)

	idx := make(Index)
	for _, row := range sorted {
		pack, ok := idx[row.BlockID]
		if !ok {
			pack = make(map[Lang]Translation)
			idx[row.BlockID] = pack
		}
		if _, seen := pack[row.Lang]; !seen {
			pack[row.Lang] = row
		}
	}
	return idx
}

// Lookup returns the authoritative row for the pair, if any.
func (idx Index) Lookup(blockID int64, lang Lang) (Translation, bool) {
	t, ok := idx[blockID][lang]
	return t, ok
}

// Resolve returns the text to display for a block in lang.
//
// Fallback order: the requested language when it has a title or description,
// then Polish under the same condition, then the block's newest row in any
// language, then an empty Text.
func (idx Index) Resolve(blockID int64, lang Lang) Text {
	pack := idx[blockID]
	if len(pack) == 0 {
		return Text{}
	}
	if t, ok := pack[lang]; ok && !t.Text().IsEmpty() {
		return t.Text()
	}
	if t, ok := pack[DefaultLang]; ok && !t.Text().IsEmpty() {
		return t.Text()
	}

	rows := make([]Translation, 0, len(pack))
	for _, t := range pack {
		rows = append(rows, t)
	}
	return slices.MinFunc(rows, CompareNewest).Text()
}

// Set returns a copy of idx with the row stored under its (block, lang) pair.
// Other pairs share their maps with idx.
func (idx Index) Set(row Translation) Index {
	out := make(Index, len(idx)+1)
	for id, pack := range idx {
		out[id] = pack
	}
	pack := make(map[Lang]Translation, len(idx[row.BlockID])+1)
	for l, t := range idx[row.BlockID] {
		pack[l] = t
	}
	pack[row.Lang] = row
	out[row.BlockID] = pack
	return out
}

// Without returns a copy of idx with every row of blockID removed.
func (idx Index) Without(blockID int64) Index {
	out := make(Index, len(idx))
	for id, pack := range idx {
		if id != blockID {
			out[id] = pack
		}
	}
	return out
}

// SortBlocks sorts blocks by ascending position; equal positions keep input order.
func SortBlocks(blocks []Block) {
	slices.SortStableFunc(blocks, func(a, b Block) int {
		return cmp.Compare(a.Position, b.Position)
	})
}

// VisibleBlocks returns the visible blocks, preserving order.
func VisibleBlocks(blocks []Block) []Block {
	out := make([]Block, 0, len(blocks))
	for _, b := range blocks {
		if b.Visible {
			out = append(out, b)
		}
	}
	return out
}

// ShowGallery reports whether a visible block with the gallery slug exists.
func ShowGallery(blocks []Block) bool {
	return slices.ContainsFunc(blocks, func(b Block) bool {
		return b.Visible && b.Slug == GallerySlug
	})
}

// NextPosition returns max(0, positions...) + 1.
func NextPosition[T any](items []T, position func(T) int64) int64 {
	var highest int64
	for _, item := range items {
		highest = max(highest, position(item))
	}
	return highest + 1
}

// SortGallery sorts items by ascending position; ties keep input order.
func SortGallery(items []GalleryItem) {
	slices.SortStableFunc(items, func(a, b GalleryItem) int {
		return cmp.Compare(a.Position, b.Position)
	})
}
