// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/olegiv/rocknbeef-go/internal/translate"
)

// maxTranslateBody limits the JSON body of a translation request.
const maxTranslateBody = 1 << 20

// TranslateHandler exposes the translation provider as a JSON endpoint.
type TranslateHandler struct {
	translator translate.Translator
}

// NewTranslateHandler creates a new TranslateHandler.
func NewTranslateHandler(t translate.Translator) *TranslateHandler {
	return &TranslateHandler{translator: t}
}

// TranslateRequest is the body of POST /api/translate.
type TranslateRequest struct {
	Text   string `json:"text"`
	Target string `json:"target"`
}

// TranslateResponse is the success body of POST /api/translate.
type TranslateResponse struct {
	Text string `json:"text"`
}

// Translate handles POST /api/translate. A provider error status is relayed
// with the provider's message.
func (h *TranslateHandler) Translate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSONError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}

	var req TranslateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxTranslateBody)).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.Text == "" || strings.TrimSpace(req.Target) == "" {
		writeJSONError(w, http.StatusBadRequest, "text & target required")
		return
	}

	text, err := h.translator.Translate(r.Context(), req.Text, req.Target)
	if err != nil {
		var providerErr *translate.ProviderError
		switch {
		case errors.As(err, &providerErr):
			slog.Warn("translation provider rejected request", "status", providerErr.Status, "target", req.Target)
			status := providerErr.Status
			if status < http.StatusBadRequest {
				status = http.StatusBadGateway
			}
			writeJSONError(w, status, providerErr.Message)
		case errors.Is(err, translate.ErrMissingCredential):
			slog.Error("translation provider credential missing")
			writeJSONError(w, http.StatusInternalServerError, "Missing translation API key in env")
		default:
			slog.Error("translation failed", "target", req.Target, "error", err)
			writeJSONError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, TranslateResponse{Text: text})
}
