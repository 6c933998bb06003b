// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package editor

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/olegiv/rocknbeef-go/internal/content"
	"github.com/olegiv/rocknbeef-go/internal/store"
	"github.com/olegiv/rocknbeef-go/internal/util"
)

// AddBlock creates a visible block with a generated slug after the last one.
func (e *Editor) AddBlock(ctx context.Context, st State, userID string) (State, error) {
	now := e.now()
	row, err := e.store.CreateBlock(ctx, store.CreateBlockParams{
		Slug:      fmt.Sprintf("block-%d", now.UnixMilli()),
		Visible:   true,
		Position:  content.NextPosition(st.Blocks, func(b content.Block) int64 { return b.Position }),
		CreatedBy: userID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return st, fmt.Errorf("creating block: %w", err)
	}
	return st.WithBlock(BlockFromStore(row)), nil
}

// DeleteBlock removes the block's translations, then the block.
// A failure to remove translations is logged; the block delete decides the result.
func (e *Editor) DeleteBlock(ctx context.Context, st State, id int64) (State, error) {
	if err := e.store.DeleteTranslationsByBlock(ctx, id); err != nil {
		e.logger.Warn("failed to delete block translations", "block_id", id, "error", err)
	}
	if err := e.store.DeleteBlock(ctx, id); err != nil {
		return st, fmt.Errorf("deleting block %d: %w", id, err)
	}
	e.jobs.Forget(id)
	return st.WithoutBlock(id), nil
}

// MoveBlock swaps the block with its neighbour in position order;
// dir is -1 for up and 1 for down. Both position updates are always issued.
// If either fails the input state is returned with the error. Moving past
// either end is a no-op.
func (e *Editor) MoveBlock(ctx context.Context, st State, id int64, dir int) (State, error) {
	if dir != -1 && dir != 1 {
		return st, ErrInvalidDirection
	}

	list := slices.Clone(st.Blocks)
	content.SortBlocks(list)

	idx := slices.IndexFunc(list, func(b content.Block) bool { return b.ID == id })
	if idx == -1 {
		return st, fmt.Errorf("block %d: %w", id, ErrBlockNotFound)
	}
	swapIdx := idx + dir
	if swapIdx < 0 || swapIdx >= len(list) {
		return st, nil
	}

	a, b := list[idx], list[swapIdx]
	now := e.now()

	err1 := e.store.UpdateBlockPosition(ctx, store.UpdateBlockPositionParams{Position: b.Position, UpdatedAt: now, ID: a.ID})
	err2 := e.store.UpdateBlockPosition(ctx, store.UpdateBlockPositionParams{Position: a.Position, UpdatedAt: now, ID: b.ID})
	if err1 != nil {
		return st, fmt.Errorf("moving block %d: %w", a.ID, err1)
	}
	if err2 != nil {
		return st, fmt.Errorf("moving block %d: %w", b.ID, err2)
	}

	a.Position, b.Position = b.Position, a.Position
	list[idx], list[swapIdx] = b, a
	st.Blocks = list
	return st, nil
}

// SaveAll writes every block, the current language's translation of every
// block and every gallery caption, one call at a time. A failed call does
// not stop the others; each call is reported as an Outcome. The returned
// state includes rows created by the save.
func (e *Editor) SaveAll(ctx context.Context, st State, userID string) (State, []Outcome) {
	var outcomes []Outcome
	now := e.now()

	for _, b := range st.Blocks {
		outcome := Outcome{Entity: EntityBlock, ID: b.ID, Name: b.Slug}
		if err := validateLink(b.LinkURL); err != nil {
			outcome.Err = err
		} else {
			outcome.Err = e.store.UpdateBlock(ctx, store.UpdateBlockParams{
				BackgroundImage: b.BackgroundImage,
				LinkUrl:         strings.TrimSpace(b.LinkURL),
				LinkText:        e.clean(b.LinkText),
				Visible:         b.Visible,
				Position:        b.Position,
				PdfUrl:          util.NullStringFromValue(b.PDFURL),
				PdfButtonText:   util.NullStringFromValue(e.clean(b.PDFButtonText)),
				UpdatedAt:       now,
				ID:              b.ID,
			})
		}
		outcomes = append(outcomes, outcome)

		var trOutcome *Outcome
		st, trOutcome = e.saveTranslation(ctx, st, b.ID, userID)
		if trOutcome != nil {
			outcomes = append(outcomes, *trOutcome)
		}
	}

	for _, g := range st.Gallery {
		err := e.store.UpdateGalleryCaptions(ctx, store.UpdateGalleryCaptionsParams{
			CaptionPl: e.clean(g.CaptionPL),
			CaptionEn: e.clean(g.CaptionEN),
			CaptionDe: e.clean(g.CaptionDE),
			CaptionEs: e.clean(g.CaptionES),
			ID:        g.ID,
		})
		outcomes = append(outcomes, Outcome{Entity: EntityGallery, ID: g.ID, Err: err})
	}

	return st, outcomes
}

// saveTranslation updates the pair's known row, or inserts one when the
// editor typed a title or description. Nothing to save yields a nil outcome.
func (e *Editor) saveTranslation(ctx context.Context, st State, blockID int64, userID string) (State, *Outcome) {
	tr := st.Translation(blockID, st.Lang)
	title, desc := e.clean(tr.Title), e.clean(tr.Description)
	now := e.now()

	if tr.ID != 0 {
		row, err := e.store.UpdateTranslation(ctx, store.UpdateTranslationParams{
			Title:       title,
			Description: desc,
			UpdatedAt:   now,
			ID:          tr.ID,
		})
		if err != nil {
			return st, &Outcome{Entity: EntityTranslation, ID: tr.ID, Name: string(st.Lang), Err: err}
		}
		return st.WithTranslation(TranslationFromStore(row)), &Outcome{Entity: EntityTranslation, ID: row.ID, Name: string(st.Lang)}
	}

	if title == "" && desc == "" {
		return st, nil
	}

	row, err := e.store.CreateTranslation(ctx, store.CreateTranslationParams{
		BlockID:     blockID,
		Lang:        string(st.Lang),
		Title:       title,
		Description: desc,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return st, &Outcome{Entity: EntityTranslation, ID: blockID, Name: string(st.Lang), Err: err}
	}
	return st.WithTranslation(TranslationFromStore(row)), &Outcome{Entity: EntityTranslation, ID: row.ID, Name: string(st.Lang)}
}

// validateLink accepts relative links and the http, https, mailto and tel schemes.
func validateLink(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "#") {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%q: %w", raw, ErrInvalidLink)
	}
	switch strings.ToLower(u.Scheme) {
	case "", "http", "https", "mailto", "tel":
		return nil
	}
	return fmt.Errorf("%q: %w", raw, ErrInvalidLink)
}
