// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package translate provides machine translation of block text through an
// external provider.
package translate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Provider identifiers.
const (
	ProviderDeepL  = "deepl"
	ProviderOpenAI = "openai"
)

const httpTimeout = 30 * time.Second

// ErrMissingCredential is returned when the provider has no API key configured.
var ErrMissingCredential = errors.New("missing translation provider credential")

// ProviderError is a non-success answer from the provider.
type ProviderError struct {
	Status  int
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("translation provider error (status %d): %s", e.Status, e.Message)
}

// Translator translates text into a target language.
// Empty text yields an empty result without contacting the provider.
type Translator interface {
	Translate(ctx context.Context, text, target string) (string, error)
}

// Func adapts a function to the Translator interface.
type Func func(ctx context.Context, text, target string) (string, error)

// Translate calls f.
func (f Func) Translate(ctx context.Context, text, target string) (string, error) {
	return f(ctx, text, target)
}

// Config selects and configures a provider.
type Config struct {
	Provider     string
	DeepLKey     string
	DeepLURL     string
	OpenAIKey    string
	OpenAIModel  string
	OpenAIAPIURL string
}

// New returns the configured provider. A missing key is not an error here;
// the provider reports ErrMissingCredential when it is used.
func New(cfg Config) (Translator, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", ProviderDeepL:
		return NewDeepL(cfg.DeepLKey, cfg.DeepLURL), nil
	case ProviderOpenAI:
		return NewOpenAI(cfg.OpenAIKey, cfg.OpenAIModel, cfg.OpenAIAPIURL), nil
	default:
		return nil, fmt.Errorf("unknown translation provider %q", cfg.Provider)
	}
}

// normalizeTarget upper-cases a language code as providers expect it.
func normalizeTarget(target string) string {
	return strings.ToUpper(strings.TrimSpace(target))
}
