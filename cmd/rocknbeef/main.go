// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/rocknbeef-go/internal/cache"
	"github.com/olegiv/rocknbeef-go/internal/config"
	"github.com/olegiv/rocknbeef-go/internal/editor"
	"github.com/olegiv/rocknbeef-go/internal/handler"
	"github.com/olegiv/rocknbeef-go/internal/i18n"
	"github.com/olegiv/rocknbeef-go/internal/imaging"
	"github.com/olegiv/rocknbeef-go/internal/middleware"
	"github.com/olegiv/rocknbeef-go/internal/render"
	"github.com/olegiv/rocknbeef-go/internal/scheduler"
	"github.com/olegiv/rocknbeef-go/internal/session"
	"github.com/olegiv/rocknbeef-go/internal/storage"
	"github.com/olegiv/rocknbeef-go/internal/store"
	"github.com/olegiv/rocknbeef-go/internal/translate"
	"github.com/olegiv/rocknbeef-go/internal/version"
	"github.com/olegiv/rocknbeef-go/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Rock'n Beef - restaurant site and content admin\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  RNB_SESSION_SECRET     Session and CSRF key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  RNB_DB_PATH            SQLite database path (default: ./data/rocknbeef.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  RNB_STORAGE_DIR        Object storage directory (default: ./data/storage)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  RNB_SERVER_PORT        Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  RNB_ENV                Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  DEEPL_API_KEY          DeepL key for auto-translate\n")
		_, _ = fmt.Fprintf(os.Stderr, "  RNB_REDIS_URL          Redis URL for the page cache (optional)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Printf("rocknbeef %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional outside development
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	versionInfo := version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	if err := i18n.Init(logger); err != nil {
		return fmt.Errorf("initializing i18n: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}()

	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if err := store.SeedAdmin(ctx, db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			return fmt.Errorf("seeding admin: %w", err)
		}
	} else {
		slog.Warn("RNB_ADMIN_EMAIL or RNB_ADMIN_PASSWORD not set; no admin account seeded")
	}
	if cfg.SeedContent {
		if err := store.SeedContent(ctx, db); err != nil {
			return fmt.Errorf("seeding content: %w", err)
		}
	}
	slog.Info("database ready")

	sessionManager := session.New(db, cfg.IsDevelopment())

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}

	bucket, err := storage.NewBucket(cfg.StorageBucket, cfg.StorageDir, cfg.PublicBaseURL)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	slog.Info("object storage ready", "bucket", cfg.StorageBucket, "dir", cfg.StorageDir)

	translator, err := translate.New(cfg.Translate())
	if err != nil {
		return fmt.Errorf("initializing translator: %w", err)
	}

	pageCache := cache.New(ctx, cache.Config{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: time.Duration(cfg.CacheTTL) * time.Second,
		MaxSize:    cfg.CacheMaxSize,
	}, logger)
	defer func() {
		if err := pageCache.Close(); err != nil {
			slog.Error("error closing page cache", "error", err)
		}
	}()
	homeCache := cache.NewHomeCache(pageCache, time.Duration(cfg.CacheTTL)*time.Second, logger)

	if cfg.SweepSchedule != "" {
		sweeper := scheduler.New(db, bucket, logger)
		if err := sweeper.Start(cfg.SweepSchedule); err != nil {
			return fmt.Errorf("starting scheduler: %w", err)
		}
		defer sweeper.Stop()
	}

	ed := editor.New(store.New(db), bucket, imaging.NewProcessor(), translator, logger)

	loginProtection := middleware.NewLoginProtection(ctx, middleware.DefaultLoginProtectionConfig())
	translateLimiter := middleware.NewGlobalRateLimiter(1, 10)
	publicLimiter := middleware.NewGlobalRateLimiter(10, 40)

	authHandler := handler.NewAuthHandler(db, renderer, sessionManager, loginProtection)
	adminHandler := handler.NewAdminHandler(ed, renderer, homeCache, cfg.MaxUploadBytes())
	frontendHandler := handler.NewFrontendHandler(db, bucket, renderer, homeCache, logger)
	translateHandler := handler.NewTranslateHandler(translator)
	storageHandler := handler.NewStorageHandler(bucket)
	healthHandler := handler.NewHealthHandler(db, sessionManager, cfg.StorageDir, versionInfo)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(chimw.StripSlashes)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	r.Use(sessionManager.LoadAndSave)
	r.Use(middleware.SkipCSRF(handler.RouteAPITranslate))
	r.Use(middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment(), cfg.ServerAddr())))
	r.Use(middleware.LoadUser(sessionManager, db))

	// Health checks
	r.Get("/health", healthHandler.Health)
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	staticFS, err := fs.Sub(web.Static, "static/dist")
	if err != nil {
		return fmt.Errorf("getting static fs: %w", err)
	}
	r.Handle("/static/*", middleware.StaticCache(7*24*time.Hour)(http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))))
	r.Get(handler.RouteStorageObject, storageHandler.Object)

	r.With(publicLimiter.HTMLMiddleware(), middleware.Language).Get(handler.RouteRoot, frontendHandler.Home)

	// Any method reaches the handler so it can answer 405 itself.
	r.With(translateLimiter.Middleware()).HandleFunc(handler.RouteAPITranslate, translateHandler.Translate)

	r.Route(handler.RouteAdmin, func(r chi.Router) {
		r.Use(middleware.NoStore)

		r.Get(handler.RouteLogin, authHandler.LoginForm)
		r.With(loginProtection.Middleware()).Post(handler.RouteLogin, authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(sessionManager))

			r.Get(handler.RouteRoot, adminHandler.Dashboard)
			r.Post(handler.RouteLogout, authHandler.Logout)

			r.Post(handler.RouteBlocks, adminHandler.AddBlock)
			r.Route(handler.RouteBlocks+handler.RouteParamID, func(r chi.Router) {
				r.Post(handler.RouteSuffixDelete, adminHandler.DeleteBlock)
				r.Post(handler.RouteSuffixMove, adminHandler.MoveBlock)
				r.Post(handler.RouteSuffixBackground, adminHandler.UploadBackground)
				r.Post(handler.RouteSuffixPDF, adminHandler.UploadPDF)
				r.Post(handler.RouteSuffixPDF+handler.RouteSuffixDelete, adminHandler.RemovePDF)
				r.Post(handler.RouteSuffixTranslate, adminHandler.AutoTranslate)
			})

			r.Post(handler.RouteGallery, adminHandler.UploadGallery)
			r.Post(handler.RouteGallery+handler.RouteParamID+handler.RouteSuffixDelete, adminHandler.RemoveGalleryItem)
			r.Post(handler.RouteSave, adminHandler.SaveAll)
		})
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      120 * time.Second, // auto-translate waits on the provider
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", versionInfo.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
