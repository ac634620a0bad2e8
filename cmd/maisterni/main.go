// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
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

	"github.com/ykovalchuk/maisterni/internal/cache"
	"github.com/ykovalchuk/maisterni/internal/config"
	"github.com/ykovalchuk/maisterni/internal/handler"
	"github.com/ykovalchuk/maisterni/internal/langcode"
	"github.com/ykovalchuk/maisterni/internal/localize"
	"github.com/ykovalchuk/maisterni/internal/logging"
	"github.com/ykovalchuk/maisterni/internal/mail"
	"github.com/ykovalchuk/maisterni/internal/service"
	"github.com/ykovalchuk/maisterni/internal/store"
	"github.com/ykovalchuk/maisterni/internal/translate"
	"github.com/ykovalchuk/maisterni/internal/version"
	"github.com/ykovalchuk/maisterni/internal/worker"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

// Blog articles carry long markdown bodies, so their pipeline gets a
// wider concurrency cap than the shared default.
const articleConcurrency = 5

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Maisterni - multilingual freelance marketplace API\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  MAISTERNI_DB_PATH              SQLite database path (default: ./data/maisterni.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  MAISTERNI_SERVER_PORT          Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  MAISTERNI_ENV                  Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  MAISTERNI_TRANSLATE_PROVIDER   Translation backend: google|openai (default: google)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  MAISTERNI_OPENAI_API_KEY       OpenAI API key (required with the openai provider)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  MAISTERNI_REDIS_URL            Redis URL for the verification-code cache (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  MAISTERNI_SMTP_HOST            SMTP relay for verification emails (required in production)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}
	if *showVersion {
		info := version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}
		_, _ = fmt.Printf("maisterni %s\n", info)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := logging.ParseLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Ensure data directory exists
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
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

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger to also write WARN and ERROR logs to the event log table
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)
	slog.Info("event log integration enabled", "min_level", "warn")

	ctx := context.Background()
	queries := store.New(db)

	// Verification-code cache: Redis when configured, in-process otherwise
	codeCache, err := cache.New(ctx, cache.Options{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: cfg.CacheTTL,
	}, logger)
	if err != nil {
		return fmt.Errorf("initializing cache: %w", err)
	}
	defer func() {
		if err := codeCache.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()
	if cfg.UseRedisCache() {
		slog.Info("cache initialized", "backend", "redis", "url", cfg.RedisURL)
	} else {
		slog.Info("cache initialized", "backend", "memory")
	}

	// Translation pipelines
	var provider translate.Provider
	switch cfg.TranslateProvider {
	case "openai":
		provider = translate.NewOpenAIProvider(translate.OpenAIOptions{
			APIKey:      cfg.OpenAIAPIKey,
			Model:       cfg.OpenAIModel,
			CallTimeout: cfg.TranslateTimeout,
		})
	default:
		provider = translate.NewGoogleProvider(translate.GoogleOptions{
			CallTimeout: cfg.TranslateTimeout,
		})
	}
	slog.Info("translation provider initialized",
		"provider", cfg.TranslateProvider, "languages", langcode.All)

	pipeline := translate.NewPipeline(translate.NewOrchestrator(provider, cfg.TranslateConcurrency, logger))
	articlePipeline := translate.NewPipeline(translate.NewOrchestrator(provider, articleConcurrency, logger))
	localizer := localize.NewService(pipeline, articlePipeline)

	// Services. The bid service and the translation worker reference each
	// other, so the queue is attached after both exist.
	bids := service.NewBidService(queries, localizer, codeCache, cfg.VerificationTTL, nil, logger)
	companies := service.NewCompanyService(queries, localizer)
	catalog := service.NewCatalogService(queries, localizer)
	blog := service.NewBlogService(queries, localizer)
	users := service.NewUserService(queries, localizer, codeCache, cfg.VerificationTTL, logger)
	places := service.NewPlaceService(queries)
	chats := service.NewChatService(queries, logger)

	translationWorker := worker.New(queries, bids, logger)
	bids.SetEnqueuer(translationWorker)
	if err := translationWorker.Start(cfg.SweepSchedule); err != nil {
		return fmt.Errorf("starting translation worker: %w", err)
	}
	defer translationWorker.Stop()

	var mailer mail.Mailer
	if cfg.UseSMTP() {
		mailer = mail.NewSMTP(mail.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		})
		slog.Info("SMTP mailer initialized", "host", cfg.SMTPHost, "port", cfg.SMTPPort)
	} else {
		mailer = mail.NewLogMailer(logger)
		slog.Warn("no SMTP host configured, verification codes go to the log")
	}

	h := handler.New(bids, companies, catalog, blog, users, places, chats, mailer, logger)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Mount("/api/v1", h.Routes())

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
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
