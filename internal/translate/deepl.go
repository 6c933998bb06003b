// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// DefaultDeepLURL is the DeepL Free API endpoint.
const DefaultDeepLURL = "https://api-free.deepl.com/v2/translate"

// freeKeySuffix marks DeepL Free API keys.
const freeKeySuffix = ":fx"

// DeepL translates through the DeepL v2 API.
type DeepL struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewDeepL creates a DeepL client. An empty endpoint selects DefaultDeepLURL.
func NewDeepL(apiKey, endpoint string) *DeepL {
	if endpoint == "" {
		endpoint = DefaultDeepLURL
	}
	return &DeepL{
		apiKey:   apiKey,
		endpoint: endpoint,
		client:   &http.Client{Timeout: httpTimeout},
	}
}

// authKey returns the key with the Free API suffix applied.
func (d *DeepL) authKey() string {
	if strings.HasSuffix(d.apiKey, freeKeySuffix) {
		return d.apiKey
	}
	return d.apiKey + freeKeySuffix
}

// Translate sends a single form-encoded request; there are no retries.
func (d *DeepL) Translate(ctx context.Context, text, target string) (string, error) {
	if text == "" {
		return "", nil
	}
	if d.apiKey == "" {
		return "", ErrMissingCredential
	}

	form := url.Values{
		"auth_key":    {d.authKey()},
		"text":        {text},
		"target_lang": {normalizeTarget(target)},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("deepl call: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &ProviderError{Status: resp.StatusCode, Message: string(body)}
	}

	var result struct {
		Translations []struct {
			DetectedSourceLanguage string `json:"detected_source_language"`
			Text                   string `json:"text"`
		} `json:"translations"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("deepl decode: %w", err)
	}
	if len(result.Translations) == 0 {
		return "", nil
	}
	return result.Translations[0].Text, nil
}
