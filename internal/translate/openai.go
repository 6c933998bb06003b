// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package translate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// DefaultOpenAIModel is used when no model is configured.
const DefaultOpenAIModel = openai.ChatModelGPT4oMini

var languageNames = map[string]string{
	"PL": "Polish",
	"EN": "English",
	"DE": "German",
	"ES": "Spanish",
	"UK": "Ukrainian",
}

// OpenAI translates with a chat completion model.
type OpenAI struct {
	apiKey string
	model  string
	client openai.Client
}

// NewOpenAI creates an OpenAI translator. baseURL may be empty.
func NewOpenAI(apiKey, model, baseURL string) *OpenAI {
	if model == "" {
		model = DefaultOpenAIModel
	}
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(&http.Client{Timeout: httpTimeout}),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAI{
		apiKey: apiKey,
		model:  model,
		client: openai.NewClient(opts...),
	}
}

// Translate asks the model for a translation of text only.
func (o *OpenAI) Translate(ctx context.Context, text, target string) (string, error) {
	if text == "" {
		return "", nil
	}
	if o.apiKey == "" {
		return "", ErrMissingCredential
	}

	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: o.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt(normalizeTarget(target))),
			openai.UserMessage(text),
		},
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", &ProviderError{Status: apiErr.StatusCode, Message: apiErr.Message}
		}
		return "", fmt.Errorf("openai call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: no choices returned")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func systemPrompt(target string) string {
	name, ok := languageNames[target]
	if !ok {
		name = target
	}
	return "You translate restaurant website copy. Translate the user's text to " + name +
		". Keep Markdown formatting and proper names. Reply with the translated text only."
}
