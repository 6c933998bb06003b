// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the site configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/olegiv/rocknbeef-go/internal/translate"
)

// knownWeakSecrets contains example secrets that must never be used.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"RNB_DB_PATH" envDefault:"./data/rocknbeef.db"`
	SessionSecret string `env:"RNB_SESSION_SECRET,required"`
	ServerHost    string `env:"RNB_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"RNB_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"RNB_ENV" envDefault:"development"`
	LogLevel      string `env:"RNB_LOG_LEVEL" envDefault:"info"`

	// Object storage
	StorageBucket string `env:"RNB_STORAGE_BUCKET" envDefault:"rocknbeef"`
	StorageDir    string `env:"RNB_STORAGE_DIR" envDefault:"./data/storage"`
	PublicBaseURL string `env:"RNB_PUBLIC_BASE_URL"` // Empty means site-relative object URLs
	MaxUploadMB   int64  `env:"RNB_MAX_UPLOAD_MB" envDefault:"20"`
	SweepSchedule string `env:"RNB_STORAGE_SWEEP" envDefault:"@daily"` // Cron spec; empty disables the orphan sweep

	// Translation provider
	TranslateProvider string `env:"RNB_TRANSLATE_PROVIDER" envDefault:"deepl"`
	DeepLAPIKey       string `env:"DEEPL_API_KEY"`
	DeepLAPIToken     string `env:"DEEPL_API_TOKEN"` // Accepted alias of DEEPL_API_KEY
	DeepLURL          string `env:"RNB_DEEPL_URL" envDefault:"https://api-free.deepl.com/v2/translate"`
	OpenAIAPIKey      string `env:"OPENAI_API_KEY"`
	OpenAIModel       string `env:"RNB_OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	OpenAIBaseURL     string `env:"RNB_OPENAI_BASE_URL"`

	// Page cache
	RedisURL     string `env:"RNB_REDIS_URL"`
	CachePrefix  string `env:"RNB_CACHE_PREFIX" envDefault:"rnb:"`
	CacheTTL     int    `env:"RNB_CACHE_TTL" envDefault:"300"`
	CacheMaxSize int    `env:"RNB_CACHE_MAX_SIZE" envDefault:"1000"`

	// Seed admin account
	AdminEmail    string `env:"RNB_ADMIN_EMAIL"`
	AdminPassword string `env:"RNB_ADMIN_PASSWORD"`
	SeedContent   bool   `env:"RNB_SEED_CONTENT" envDefault:"true"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// DeepLKey returns DEEPL_API_KEY, falling back to DEEPL_API_TOKEN.
func (c Config) DeepLKey() string {
	if c.DeepLAPIKey != "" {
		return c.DeepLAPIKey
	}
	return c.DeepLAPIToken
}

// MaxUploadBytes returns the request body limit for uploads.
func (c Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

// Translate returns the translation provider configuration.
func (c Config) Translate() translate.Config {
	return translate.Config{
		Provider:     c.TranslateProvider,
		DeepLKey:     c.DeepLKey(),
		DeepLURL:     c.DeepLURL,
		OpenAIKey:    c.OpenAIAPIKey,
		OpenAIModel:  c.OpenAIModel,
		OpenAIAPIURL: c.OpenAIBaseURL,
	}
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("RNB_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("RNB_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	switch cfg.TranslateProvider {
	case translate.ProviderDeepL, translate.ProviderOpenAI:
	default:
		return nil, fmt.Errorf("RNB_TRANSLATE_PROVIDER must be %q or %q, got %q",
			translate.ProviderDeepL, translate.ProviderOpenAI, cfg.TranslateProvider)
	}

	if cfg.MaxUploadMB <= 0 {
		return nil, fmt.Errorf("RNB_MAX_UPLOAD_MB must be positive, got %d", cfg.MaxUploadMB)
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("RNB_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	// The key is only needed when someone translates; a missing one is reported per request.
	if cfg.TranslateProvider == translate.ProviderDeepL && cfg.DeepLKey() == "" {
		slog.Warn("DEEPL_API_KEY is not set; auto-translate will fail")
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
