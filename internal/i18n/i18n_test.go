// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package i18n

import (
	"encoding/json"
	"fmt"
	"testing"
)

func TestInit(t *testing.T) {
	if err := Init(nil); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	for _, lang := range SupportedLanguages {
		if TranslationCount(lang) == 0 {
			t.Errorf("expected %s translations to be loaded", lang)
		}
	}
}

func TestT(t *testing.T) {
	if err := Init(nil); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	tests := []struct {
		lang     string
		key      string
		args     []any
		expected string
	}{
		{"pl", "site.gallery", nil, "Galeria"},
		{"en", "site.gallery", nil, "Gallery"},
		{"de", "site.directions", nil, "Anfahrt"},
		{"uk", "site.gallery", nil, "Галерея"},
		{"es", "site.language", []any{"ES"}, "Idioma ES"},
		{"pl", "msg.translated", []any{"EN"}, "✅ Przetłumaczono i zapisano (EN)"},
		// Admin strings exist only in Polish.
		{"en", "msg.saved", nil, "✅ Zapisano zmiany"},
		// Unknown language uses the default.
		{"fr", "site.gallery", nil, "Galeria"},
		{"pl", "nonexistent.key", nil, "nonexistent.key"},
	}

	for _, tt := range tests {
		t.Run(tt.lang+"_"+tt.key, func(t *testing.T) {
			if got := T(tt.lang, tt.key, tt.args...); got != tt.expected {
				t.Errorf("T(%q, %q, %v) = %q, want %q", tt.lang, tt.key, tt.args, got, tt.expected)
			}
		})
	}
}

func TestMatchLanguage(t *testing.T) {
	if err := Init(nil); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	tests := []struct {
		input    string
		expected string
	}{
		{"pl", "pl"},
		{"en-US", "en"},
		{"de-AT", "de"},
		{"es-419", "es"},
		{"uk-UA", "uk"},
		{"fr", "pl"},
		{"invalid", "pl"},
		{"", "pl"},
		{"fr-FR, de;q=0.9, en;q=0.8", "de"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := MatchLanguage(tt.input); got != tt.expected {
				t.Errorf("MatchLanguage(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestIsSupported(t *testing.T) {
	for _, lang := range []string{"pl", "EN", "uk"} {
		if !IsSupported(lang) {
			t.Errorf("IsSupported(%q) = false", lang)
		}
	}
	if IsSupported("ru") {
		t.Error("IsSupported(\"ru\") = true")
	}
}

func TestLocaleFilesHaveSameSiteKeys(t *testing.T) {
	keys := func(lang string) map[string]bool {
		data, err := localesFS.ReadFile(fmt.Sprintf("locales/%s/messages.json", lang))
		if err != nil {
			t.Fatalf("reading %s: %v", lang, err)
		}
		var f MessageFile
		if err := json.Unmarshal(data, &f); err != nil {
			t.Fatalf("parsing %s: %v", lang, err)
		}
		out := make(map[string]bool)
		for _, m := range f.Messages {
			if len(m.ID) > 5 && m.ID[:5] == "site." {
				out[m.ID] = true
			}
		}
		return out
	}

	want := keys(DefaultLanguage)
	for _, lang := range SupportedLanguages[1:] {
		got := keys(lang)
		for k := range want {
			if !got[k] {
				t.Errorf("%s is missing %s", lang, k)
			}
		}
	}
}
