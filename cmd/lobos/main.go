// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
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

	"github.com/joho/godotenv"

	"github.com/olegiv/lobos/internal/auth"
	"github.com/olegiv/lobos/internal/client"
	"github.com/olegiv/lobos/internal/config"
	"github.com/olegiv/lobos/internal/content"
	"github.com/olegiv/lobos/internal/handler"
	"github.com/olegiv/lobos/internal/logging"
	"github.com/olegiv/lobos/internal/middleware"
	"github.com/olegiv/lobos/internal/render"
	"github.com/olegiv/lobos/internal/scheduler"
	"github.com/olegiv/lobos/internal/session"
	"github.com/olegiv/lobos/internal/storage"
	"github.com/olegiv/lobos/internal/store"
	"github.com/olegiv/lobos/internal/version"
	"github.com/olegiv/lobos/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "CDG LOBOS - club portal\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  LOBOS_SESSION_SECRET     Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  LOBOS_DB_PATH            SQLite database path (default: ./data/lobos.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  LOBOS_SERVER_PORT        Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  LOBOS_ENV                Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  LOBOS_STORAGE_BACKEND    Client storage: sqlite|redis|memory (default: sqlite)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  LOBOS_REDIS_URL          Redis URL when the storage backend is redis\n")
		_, _ = fmt.Fprintf(os.Stderr, "  LOBOS_CLIENT_IDLE_TTL    Idle time before a client is evicted (default: 30m)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	versionInfo := version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}
	if *showVersion {
		_, _ = fmt.Println(versionInfo.String())
		os.Exit(0)
	}

	if err := run(versionInfo); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(versionInfo version.Info) error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
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

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	// Ensure data directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// WARN and ERROR records also go to the operator event log.
	logger = slog.New(logging.NewEventLogHandler(
		slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}), db))
	slog.SetDefault(logger)

	backend, err := storage.NewBackend(storage.Config{
		Type:     cfg.StorageBackend,
		DB:       db,
		RedisURL: cfg.RedisURL,
		Prefix:   cfg.StoragePrefix,
	})
	if err != nil {
		return fmt.Errorf("initializing client storage: %w", err)
	}
	defer func() {
		if err := backend.Close(); err != nil {
			slog.Error("error closing client storage", "error", err)
		}
	}()
	slog.Info("client storage ready", "backend", cfg.StorageBackend)

	registry := client.NewRegistry(client.RegistryConfig{
		Backend:       backend,
		Provider:      auth.NewMockProvider(),
		Logger:        logger,
		ToastDuration: cfg.ToastDuration,
	})
	defer registry.Close()

	repo, err := content.Load()
	if err != nil {
		return fmt.Errorf("loading content: %w", err)
	}

	sched := scheduler.New(logger)
	jobs := []scheduler.Job{
		scheduler.EvictionJob(registry, cfg.ClientIdleTTL, cfg.EvictionPeriod),
		scheduler.EventPruneJob(store.New(db), cfg.EventRetention, cfg.EventPruneSchedule),
	}
	for _, job := range jobs {
		if err := sched.Add(job); err != nil {
			return fmt.Errorf("scheduling %s: %w", job.Name, err)
		}
	}
	sched.Start()
	defer sched.Stop()

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}
	renderer, err := render.New(render.Config{TemplatesFS: templatesFS, IsDev: cfg.IsDevelopment()})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}
	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		return fmt.Errorf("getting static fs: %w", err)
	}

	router := handler.NewRouter(handler.RouterConfig{
		Renderer:      renderer,
		Content:       repo,
		Sessions:      session.NewManager(db, cfg.IsDevelopment()),
		Registry:      registry,
		StaticFS:      staticFS,
		Health:        handler.NewHealthHandler(db, backend, versionInfo.Version),
		Events:        store.New(db),
		Jobs:          sched,
		CSRF:          middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment(), cfg.ServerAddr()),
		Security:      middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment()),
		GuardWait:     cfg.GuardWait,
		AuthRateLimit: cfg.AuthRateLimit,
		AuthBurst:     cfg.AuthBurst,
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", versionInfo.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
