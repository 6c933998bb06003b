// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package translate

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestDeepLTranslate(t *testing.T) {
	var got struct {
		authKey, text, target, contentType string
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm: %v", err)
		}
		got.authKey = r.PostForm.Get("auth_key")
		got.text = r.PostForm.Get("text")
		got.target = r.PostForm.Get("target_lang")
		got.contentType = r.Header.Get("Content-Type")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"translations":[{"detected_source_language":"PL","text":"Hello"}]}`))
	}))
	defer srv.Close()

	d := NewDeepL("secret", srv.URL)
	text, err := d.Translate(context.Background(), "Witaj", "en")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}

	if text != "Hello" {
		t.Errorf("text = %q, want %q", text, "Hello")
	}
	if got.authKey != "secret:fx" {
		t.Errorf("auth_key = %q, want %q", got.authKey, "secret:fx")
	}
	if got.target != "EN" {
		t.Errorf("target_lang = %q, want %q", got.target, "EN")
	}
	if got.text != "Witaj" {
		t.Errorf("text param = %q, want %q", got.text, "Witaj")
	}
	if got.contentType != "application/x-www-form-urlencoded" {
		t.Errorf("Content-Type = %q", got.contentType)
	}
}

func TestDeepLKeepsFreeSuffix(t *testing.T) {
	d := NewDeepL("secret:fx", "")
	if got := d.authKey(); got != "secret:fx" {
		t.Errorf("authKey() = %q, want %q", got, "secret:fx")
	}
	if d.endpoint != DefaultDeepLURL {
		t.Errorf("endpoint = %q, want default", d.endpoint)
	}
}

func TestDeepLEmptyTextSkipsCall(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	text, err := NewDeepL("secret", srv.URL).Translate(context.Background(), "", "EN")
	if err != nil || text != "" {
		t.Errorf("Translate(\"\") = %q, %v; want empty, nil", text, err)
	}
	if calls.Load() != 0 {
		t.Errorf("provider called %d times, want 0", calls.Load())
	}
}

func TestDeepLMissingKey(t *testing.T) {
	_, err := NewDeepL("", "").Translate(context.Background(), "Witaj", "EN")
	if !errors.Is(err, ErrMissingCredential) {
		t.Errorf("error = %v, want ErrMissingCredential", err)
	}
}

func TestDeepLProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"Wrong endpoint"}`))
	}))
	defer srv.Close()

	_, err := NewDeepL("secret", srv.URL).Translate(context.Background(), "Witaj", "EN")

	var perr *ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *ProviderError", err)
	}
	if perr.Status != http.StatusForbidden {
		t.Errorf("Status = %d, want %d", perr.Status, http.StatusForbidden)
	}
	if perr.Message != `{"message":"Wrong endpoint"}` {
		t.Errorf("Message = %q", perr.Message)
	}
}

func TestDeepLMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	_, err := NewDeepL("secret", srv.URL).Translate(context.Background(), "Witaj", "EN")
	if err == nil {
		t.Fatal("expected error for malformed response")
	}
	var perr *ProviderError
	if errors.As(err, &perr) {
		t.Errorf("malformed body should not be a ProviderError")
	}
}

func TestDeepLNoTranslations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"translations":[]}`))
	}))
	defer srv.Close()

	text, err := NewDeepL("secret", srv.URL).Translate(context.Background(), "Witaj", "EN")
	if err != nil || text != "" {
		t.Errorf("Translate() = %q, %v; want empty, nil", text, err)
	}
}

func TestNew(t *testing.T) {
	tr, err := New(Config{})
	if err != nil {
		t.Fatalf("New(default): %v", err)
	}
	if _, ok := tr.(*DeepL); !ok {
		t.Errorf("default provider = %T, want *DeepL", tr)
	}

	tr, err = New(Config{Provider: "OpenAI"})
	if err != nil {
		t.Fatalf("New(openai): %v", err)
	}
	if _, ok := tr.(*OpenAI); !ok {
		t.Errorf("provider = %T, want *OpenAI", tr)
	}

	if _, err := New(Config{Provider: "babelfish"}); err == nil {
		t.Error("New(unknown) should fail")
	}
}
