// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package editor

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/olegiv/rocknbeef-go/internal/content"
	"github.com/olegiv/rocknbeef-go/internal/store"
)

// AutoTranslate translates the block's Polish title and description into
// target and stores the result as the newest (block, target) translation.
// Without Polish source text it fails with ErrNoSourceText before any
// provider call. On failure the state is returned unchanged.
func (e *Editor) AutoTranslate(ctx context.Context, st State, blockID int64, target content.Lang, userID string) (State, error) {
	target, ok := content.ParseLang(string(target))
	if !ok || target == content.DefaultLang {
		return st, ErrInvalidTarget
	}
	if _, ok := st.Block(blockID); !ok {
		return st, fmt.Errorf("block %d: %w", blockID, ErrBlockNotFound)
	}

	source := st.Translation(blockID, content.DefaultLang)
	title := strings.TrimSpace(source.Title)
	desc := strings.TrimSpace(source.Description)
	if title == "" && desc == "" {
		return st, ErrNoSourceText
	}

	if err := e.jobs.Start(blockID, target); err != nil {
		return st, err
	}

	next, err := e.translateAndSave(ctx, st, blockID, target, title, desc, userID)
	e.jobs.Finish(blockID, target, err)
	if err != nil {
		e.logger.Error("auto-translate failed", "block_id", blockID, "lang", target, "error", err)
		return st, err
	}

	e.logger.Info("block translated", "block_id", blockID, "lang", target)
	return next, nil
}

func (e *Editor) translateAndSave(ctx context.Context, st State, blockID int64, target content.Lang, title, desc, userID string) (State, error) {
	var translatedTitle, translatedDesc string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out, err := e.translator.Translate(gctx, title, target.Upper())
		if err != nil {
			return fmt.Errorf("translating title: %w", err)
		}
		translatedTitle = out
		return nil
	})
	g.Go(func() error {
		out, err := e.translator.Translate(gctx, desc, target.Upper())
		if err != nil {
			return fmt.Errorf("translating description: %w", err)
		}
		translatedDesc = out
		return nil
	})
	if err := g.Wait(); err != nil {
		return st, err
	}

	row, err := e.store.UpsertTranslation(ctx, store.UpsertTranslationParams{
		BlockID:     blockID,
		Lang:        string(target),
		Title:       e.clean(translatedTitle),
		Description: e.clean(translatedDesc),
		CreatedBy:   userID,
		UpdatedAt:   e.now(),
	})
	if err != nil {
		return st, fmt.Errorf("saving translation: %w", err)
	}
	return st.WithTranslation(TranslationFromStore(row)), nil
}
