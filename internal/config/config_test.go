// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"os"
	"strings"
	"testing"
)

const testSecret = "test-Secret-key-32-bytes-long!!!"

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set %s: %v", key, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()
	setEnv(t, "RNB_SESSION_SECRET", testSecret)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"DBPath", cfg.DBPath, "./data/rocknbeef.db"},
		{"ServerHost", cfg.ServerHost, "localhost"},
		{"ServerPort", cfg.ServerPort, 8080},
		{"Env", cfg.Env, "development"},
		{"LogLevel", cfg.LogLevel, "info"},
		{"StorageBucket", cfg.StorageBucket, "rocknbeef"},
		{"StorageDir", cfg.StorageDir, "./data/storage"},
		{"SweepSchedule", cfg.SweepSchedule, "@daily"},
		{"PublicBaseURL", cfg.PublicBaseURL, ""},
		{"TranslateProvider", cfg.TranslateProvider, "deepl"},
		{"DeepLURL", cfg.DeepLURL, "https://api-free.deepl.com/v2/translate"},
		{"OpenAIModel", cfg.OpenAIModel, "gpt-4o-mini"},
		{"CachePrefix", cfg.CachePrefix, "rnb:"},
		{"CacheTTL", cfg.CacheTTL, 300},
		{"MaxUploadBytes", cfg.MaxUploadBytes(), int64(20 << 20)},
		{"SeedContent", cfg.SeedContent, true},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	setEnv(t, "RNB_SESSION_SECRET", testSecret)
	setEnv(t, "RNB_DB_PATH", "/custom/path.db")
	setEnv(t, "RNB_SERVER_HOST", "0.0.0.0")
	setEnv(t, "RNB_SERVER_PORT", "3000")
	setEnv(t, "RNB_ENV", "production")
	setEnv(t, "RNB_PUBLIC_BASE_URL", "https://rocknbeef.pl")
	setEnv(t, "RNB_TRANSLATE_PROVIDER", "openai")
	setEnv(t, "OPENAI_API_KEY", "sk-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBPath != "/custom/path.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "/custom/path.db")
	}
	if cfg.ServerAddr() != "0.0.0.0:3000" {
		t.Errorf("ServerAddr() = %q, want %q", cfg.ServerAddr(), "0.0.0.0:3000")
	}
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() = true, want false")
	}
	if cfg.PublicBaseURL != "https://rocknbeef.pl" {
		t.Errorf("PublicBaseURL = %q", cfg.PublicBaseURL)
	}
	tc := cfg.Translate()
	if tc.Provider != "openai" || tc.OpenAIKey != "sk-test" {
		t.Errorf("Translate() = %+v", tc)
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	os.Clearenv()

	if _, err := Load(); err == nil {
		t.Fatal("Load() should fail without RNB_SESSION_SECRET")
	}
}

func TestLoad_ShortSecret(t *testing.T) {
	os.Clearenv()
	setEnv(t, "RNB_SESSION_SECRET", "too-short")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() should fail for a short secret")
	}
	if !strings.Contains(err.Error(), "at least 32 bytes") {
		t.Errorf("error = %v", err)
	}
}

func TestLoad_WeakSecret(t *testing.T) {
	for _, weak := range knownWeakSecrets {
		os.Clearenv()
		setEnv(t, "RNB_SESSION_SECRET", weak)

		if _, err := Load(); err == nil {
			t.Errorf("Load() accepted known weak secret %q", weak)
		}
	}
}

func TestLoad_UnknownProvider(t *testing.T) {
	os.Clearenv()
	setEnv(t, "RNB_SESSION_SECRET", testSecret)
	setEnv(t, "RNB_TRANSLATE_PROVIDER", "babelfish")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should reject an unknown provider")
	}
}

func TestDeepLKey(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		token string
		want  string
	}{
		{"key only", "k", "", "k"},
		{"token only", "", "t", "t"},
		{"key wins", "k", "t", "k"},
		{"neither", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{DeepLAPIKey: tt.key, DeepLAPIToken: tt.token}
			if got := cfg.DeepLKey(); got != tt.want {
				t.Errorf("DeepLKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUseRedisCache(t *testing.T) {
	if (Config{}).UseRedisCache() {
		t.Error("UseRedisCache() = true without URL")
	}
	if !(Config{RedisURL: "redis://localhost:6379"}).UseRedisCache() {
		t.Error("UseRedisCache() = false with URL")
	}
}

func TestHasMinimumEntropy(t *testing.T) {
	tests := []struct {
		secret string
		want   bool
	}{
		{"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", false},
		{"aaaaaaaaaaaaaaaaAAAAAAAAAAAAAAAA", false},
		{"aaaaaaaaaaaaAAAAAAAAAAAA11111111", true},
		{testSecret, true},
	}
	for _, tt := range tests {
		if got := hasMinimumEntropy(tt.secret); got != tt.want {
			t.Errorf("hasMinimumEntropy(%q) = %v, want %v", tt.secret, got, tt.want)
		}
	}
}
