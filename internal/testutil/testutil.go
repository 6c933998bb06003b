// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers for the Rock'n Beef project.
package testutil

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/olegiv/rocknbeef-go/internal/store"
)

// TestLogger creates a silent test logger that only outputs warnings and errors.
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// TestLoggerSilent creates a completely silent test logger (error level only).
func TestLoggerSilent() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// TestDB creates a temporary test database with migrations applied.
// Returns the database and a cleanup function that should be deferred.
func TestDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "rocknbeef-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	_ = f.Close()

	db, err := store.NewDB(dbPath)
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}

	if err := store.Migrate(db); err != nil {
		_ = db.Close()
		t.Fatalf("Migrate: %v", err)
	}

	return db, func() { _ = db.Close() }
}

// CreateTestBlock inserts a visible block.
func CreateTestBlock(t *testing.T, db *sql.DB, slug string, position int64) store.Block {
	t.Helper()

	now := time.Now().UTC()
	b, err := store.New(db).CreateBlock(context.Background(), store.CreateBlockParams{
		Slug:      slug,
		Visible:   true,
		Position:  position,
		CreatedBy: "test-user",
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateBlock: %v", err)
	}
	return b
}

// CreateTestTranslation inserts a translation row.
func CreateTestTranslation(t *testing.T, db *sql.DB, blockID int64, lang, title, description string) store.Translation {
	t.Helper()

	now := time.Now().UTC()
	tr, err := store.New(db).CreateTranslation(context.Background(), store.CreateTranslationParams{
		BlockID:     blockID,
		Lang:        lang,
		Title:       title,
		Description: description,
		CreatedBy:   "test-user",
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		t.Fatalf("CreateTranslation: %v", err)
	}
	return tr
}

// CreateTestUser inserts an admin user with the given password.
func CreateTestUser(t *testing.T, db *sql.DB, email, password string) {
	t.Helper()

	if err := store.SeedAdmin(context.Background(), db, email, password); err != nil {
		t.Fatalf("SeedAdmin: %v", err)
	}
}
