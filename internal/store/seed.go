// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/rocknbeef-go/internal/auth"
)

// SeedAdmin creates the admin account from configuration, or updates its
// password when the configured one no longer matches. Empty credentials skip seeding.
func SeedAdmin(ctx context.Context, db *sql.DB, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		slog.Warn("admin credentials not configured, skipping admin seed")
		return nil
	}

	queries := New(db)

	existing, err := queries.GetUserByEmail(ctx, email)
	if err == nil {
		ok, checkErr := auth.CheckPassword(password, existing.PasswordHash)
		if checkErr == nil && ok && !auth.NeedsRehash(existing.PasswordHash) {
			slog.Info("admin user already exists, skipping seed", "email", email)
			return nil
		}
		hash, err := auth.HashPassword(password)
		if err != nil {
			return fmt.Errorf("hashing password: %w", err)
		}
		if err := queries.UpdateUserPassword(ctx, UpdateUserPasswordParams{PasswordHash: hash, ID: existing.ID}); err != nil {
			return fmt.Errorf("updating admin password: %w", err)
		}
		slog.Info("admin password updated from configuration", "email", email)
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for admin user: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	user, err := queries.CreateUser(ctx, CreateUserParams{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	slog.Info("created admin user", "id", user.ID, "email", user.Email)
	return nil
}

type starterBlock struct {
	slug  string
	title string
	desc  string
}

var starterBlocks = []starterBlock{
	{slug: "hero", title: "Rock’n Beef", desc: "Steakhouse w Zielonej Górze"},
	{slug: "menu", title: "Menu", desc: ""},
	{slug: "gallery", title: "Galeria", desc: ""},
}

// SeedContent inserts starter blocks with Polish text into an empty database.
func SeedContent(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	count, err := queries.CountBlocks(ctx)
	if err != nil {
		return fmt.Errorf("counting blocks: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	for i, sb := range starterBlocks {
		block, err := queries.CreateBlock(ctx, CreateBlockParams{
			Slug:      sb.slug,
			Visible:   true,
			Position:  int64(i + 1),
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return fmt.Errorf("creating block %s: %w", sb.slug, err)
		}
		if _, err := queries.CreateTranslation(ctx, CreateTranslationParams{
			BlockID:     block.ID,
			Lang:        "pl",
			Title:       sb.title,
			Description: sb.desc,
			CreatedAt:   now,
			UpdatedAt:   now,
		}); err != nil {
			return fmt.Errorf("creating translation for %s: %w", sb.slug, err)
		}
	}

	slog.Info("seeded starter content", "blocks", len(starterBlocks))
	return nil
}
