// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package translate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOpenAITranslate(t *testing.T) {
	var prompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("path = %q", r.URL.Path)
		}
		var body struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(body.Messages) > 0 {
			prompt = body.Messages[0].Content
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"chatcmpl-1","object":"chat.completion","created":1,"model":"gpt-4o-mini",
			"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":" Hallo \n"}}]}`))
	}))
	defer srv.Close()

	o := NewOpenAI("sk-test", "", srv.URL+"/v1/")
	text, err := o.Translate(context.Background(), "Witaj", "de")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if text != "Hallo" {
		t.Errorf("text = %q, want %q", text, "Hallo")
	}
	if !strings.Contains(prompt, "German") {
		t.Errorf("system prompt %q does not name the target language", prompt)
	}
}

func TestOpenAIProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key","type":"invalid_request_error","code":"invalid_api_key"}}`))
	}))
	defer srv.Close()

	_, err := NewOpenAI("sk-bad", "", srv.URL+"/v1/").Translate(context.Background(), "Witaj", "EN")

	var perr *ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *ProviderError", err)
	}
	if perr.Status != http.StatusUnauthorized {
		t.Errorf("Status = %d, want %d", perr.Status, http.StatusUnauthorized)
	}
}

func TestOpenAIMissingKey(t *testing.T) {
	_, err := NewOpenAI("", "", "").Translate(context.Background(), "Witaj", "EN")
	if !errors.Is(err, ErrMissingCredential) {
		t.Errorf("error = %v, want ErrMissingCredential", err)
	}
}

func TestSystemPromptUnknownLanguage(t *testing.T) {
	if got := systemPrompt("FR"); !strings.Contains(got, " FR.") {
		t.Errorf("systemPrompt(FR) = %q", got)
	}
}
