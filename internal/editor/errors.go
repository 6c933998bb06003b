// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package editor

import "errors"

var (
	// ErrNoSourceText means the block has no Polish title or description to translate from.
	ErrNoSourceText = errors.New("no polish source text")
	// ErrJobRunning means the pair is already being translated.
	ErrJobRunning = errors.New("translation already running")
	// ErrInvalidTarget means the target language is unsupported or the source language.
	ErrInvalidTarget = errors.New("invalid translation target")
	// ErrBlockNotFound means the block is not part of the current state.
	ErrBlockNotFound = errors.New("block not found")
	// ErrGalleryItemNotFound means the gallery item is not part of the current state.
	ErrGalleryItemNotFound = errors.New("gallery item not found")
	// ErrInvalidValue means a form value could not be applied.
	ErrInvalidValue = errors.New("invalid value")
	// ErrInvalidDirection means a move direction other than -1 or 1.
	ErrInvalidDirection = errors.New("invalid move direction")
	// ErrNotPDF means an uploaded document is not a PDF.
	ErrNotPDF = errors.New("file is not a PDF")
	// ErrInvalidLink means a link URL with a scheme other than http, https, mailto or tel.
	ErrInvalidLink = errors.New("invalid link URL")
)

// Entities reported in outcomes.
const (
	EntityBlock       = "block"
	EntityTranslation = "translation"
	EntityGallery     = "gallery"
	EntityObject      = "object"
)

// Outcome is the result of one step of a multi-step operation.
// Err marks a failed step; Warning marks a step that failed without
// affecting the primary operation.
type Outcome struct {
	Entity  string
	ID      int64
	Name    string
	Err     error
	Warning string
}

// OK reports whether the step completed without error.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Failed returns the outcomes with an error.
func Failed(outcomes []Outcome) []Outcome {
	var out []Outcome
	for _, o := range outcomes {
		if o.Err != nil {
			out = append(out, o)
		}
	}
	return out
}

// Warnings returns the outcomes carrying a warning.
func Warnings(outcomes []Outcome) []Outcome {
	var out []Outcome
	for _, o := range outcomes {
		if o.Warning != "" {
			out = append(out, o)
		}
	}
	return out
}
