// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs periodic maintenance on the object bucket.
package scheduler

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/olegiv/rocknbeef-go/internal/storage"
	"github.com/olegiv/rocknbeef-go/internal/store"
)

// DefaultGracePeriod keeps fresh objects whose row may not be written yet.
const DefaultGracePeriod = time.Hour

// Bucket is the part of the object bucket the sweep needs.
type Bucket interface {
	List(ctx context.Context, prefix string) ([]storage.ObjectInfo, error)
	Remove(ctx context.Context, objectPaths ...string) error
	ExtractPath(publicURL string) (string, bool)
	ToPublicURLIfNeeded(v string) string
}

// Scheduler removes bucket objects that no block or gallery row points to.
// They are left behind when a best-effort storage cleanup fails.
type Scheduler struct {
	queries *store.Queries
	bucket  Bucket
	cron    *cron.Cron
	logger  *slog.Logger
	grace   time.Duration
	now     func() time.Time
}

// New creates a new scheduler instance.
func New(db *sql.DB, bucket Bucket, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		queries: store.New(db),
		bucket:  bucket,
		cron:    cron.New(),
		logger:  logger,
		grace:   DefaultGracePeriod,
		now:     time.Now,
	}
}

// Start schedules the sweep with a cron spec such as "@daily" or "0 4 * * *".
func (s *Scheduler) Start(spec string) error {
	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		if _, err := s.SweepOrphans(ctx); err != nil {
			s.logger.Error("failed to sweep orphaned objects", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("scheduling sweep %q: %w", spec, err)
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "spec", spec, "jobs", len(s.cron.Entries()))
	return nil
}

// Stop waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// SweepOrphans deletes unreferenced objects older than the grace period
// and returns their paths.
func (s *Scheduler) SweepOrphans(ctx context.Context) ([]string, error) {
	referenced, err := s.referencedPaths(ctx)
	if err != nil {
		return nil, err
	}

	objects, err := s.bucket.List(ctx, "")
	if err != nil {
		return nil, err
	}

	cutoff := s.now().Add(-s.grace)
	var orphans []string
	for _, o := range objects {
		if referenced[o.Path] || o.ModTime.After(cutoff) {
			continue
		}
		orphans = append(orphans, o.Path)
	}
	if len(orphans) == 0 {
		s.logger.Debug("no orphaned objects", "objects", len(objects))
		return nil, nil
	}

	if err := s.bucket.Remove(ctx, orphans...); err != nil {
		return nil, fmt.Errorf("removing orphaned objects: %w", err)
	}
	s.logger.Info("removed orphaned objects", "count", len(orphans), "paths", orphans)
	return orphans, nil
}

func (s *Scheduler) referencedPaths(ctx context.Context) (map[string]bool, error) {
	blocks, err := s.queries.ListBlocks(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing blocks: %w", err)
	}
	gallery, err := s.queries.ListGalleryItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing gallery: %w", err)
	}

	refs := make(map[string]bool, len(blocks)*2+len(gallery))
	// Rows hold either public URLs or object paths.
	add := func(v string) {
		if v == "" {
			return
		}
		if !strings.HasPrefix(v, "http") && !strings.HasPrefix(v, "/") {
			refs[strings.TrimPrefix(path.Clean(v), "./")] = true
		}
		if p, ok := s.bucket.ExtractPath(s.bucket.ToPublicURLIfNeeded(v)); ok {
			refs[p] = true
		}
	}
	for _, b := range blocks {
		add(b.BackgroundImage)
		add(b.PdfUrl.String)
	}
	for _, g := range gallery {
		add(g.ImageUrl)
	}
	return refs, nil
}
