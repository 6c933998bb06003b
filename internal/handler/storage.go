// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/rocknbeef-go/internal/storage"
)

// StorageHandler serves public bucket objects.
type StorageHandler struct {
	bucket *storage.Bucket
}

// NewStorageHandler creates a new StorageHandler.
func NewStorageHandler(bucket *storage.Bucket) *StorageHandler {
	return &StorageHandler{bucket: bucket}
}

// Object handles GET /storage/v1/object/public/{bucket}/*.
// Object names carry an upload timestamp, so responses are cacheable for long.
func (h *StorageHandler) Object(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "bucket") != h.bucket.Name() {
		http.NotFound(w, r)
		return
	}

	f, info, err := h.bucket.Open(chi.URLParam(r, "*"))
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) && !errors.Is(err, storage.ErrInvalidPath) {
			slog.Error("failed to open stored object", "path", chi.URLParam(r, "*"), "error", err)
		}
		http.NotFound(w, r)
		return
	}
	defer func() { _ = f.Close() }()

	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}
