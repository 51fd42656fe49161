// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command menu runs the multilingual restaurant menu API server.
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

	"github.com/olegiv/menu-go/internal/api"
	"github.com/olegiv/menu-go/internal/config"
	"github.com/olegiv/menu-go/internal/imaging"
	"github.com/olegiv/menu-go/internal/logging"
	"github.com/olegiv/menu-go/internal/middleware"
	"github.com/olegiv/menu-go/internal/scheduler"
	"github.com/olegiv/menu-go/internal/service"
	"github.com/olegiv/menu-go/internal/session"
	"github.com/olegiv/menu-go/internal/store"
	"github.com/olegiv/menu-go/internal/version"
)

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "menu - Multilingual Restaurant Menu API\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  MENU_SESSION_SECRET        Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  MENU_DB_PATH               SQLite database path (default: ./data/menu.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  MENU_SERVER_PORT           Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  MENU_ENV                   Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  MENU_UPLOADS_DIR           Upload directory (default: ./uploads)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  MENU_DEFAULT_LOCALE        Default menu locale (default: en)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  MENU_CORS_ORIGINS          Comma-separated allowed browser origins\n")
		_, _ = fmt.Fprintf(os.Stderr, "  MENU_EVENT_RETENTION_DAYS  Audit event retention (default: 90)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  MENU_DO_SEED               Seed the demo menu on startup (default: false)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}
	if *showVersion {
		info := version.Get()
		_, _ = fmt.Printf("menu %s (commit: %s, built: %s)\n", info.Version, info.GitCommit, info.BuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Setup logger
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

	// Ensure data and upload directories exist
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	if err := os.MkdirAll(cfg.UploadsDir, 0755); err != nil {
		return fmt.Errorf("creating uploads directory: %w", err)
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

	// Upgrade logger to also write WARN and ERROR logs to the audit log
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)
	slog.Info("event log integration enabled", "min_level", "warn")

	// Seed the default admin, and the demo menu when enabled
	ctx := context.Background()
	if err := store.Seed(ctx, db); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}
	if cfg.DoSeed {
		if err := store.SeedDemo(ctx, db); err != nil {
			return fmt.Errorf("seeding demo menu: %w", err)
		}
	}

	sessionManager := session.New(db, cfg.IsDevelopment())
	slog.Info("session manager initialized")

	eventService := service.NewEventService(db, logger)
	processor := imaging.NewProcessor(cfg.UploadsDir)

	// Nightly audit event pruning
	sched := scheduler.New(db, cfg.EventRetentionDays, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	slog.Info("login protection initialized",
		"ip_rate_limit", "0.5 req/s",
		"max_failed_attempts", 5,
		"lockout_duration", "15m",
	)

	// Global API rate limiter per client IP
	rateLimiter := middleware.NewGlobalRateLimiter(10.0, 20)
	slog.Info("rate limiter initialized", "rate", "10 req/s", "burst", 20)

	csrfConfig := middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment(), cfg.CORSOrigins)
	csrfMiddleware := middleware.CSRF(csrfConfig)
	slog.Info("CSRF protection initialized", "secure", !cfg.IsDevelopment())

	apiHandler := api.NewHandler(db, sessionManager, loginProtection, processor, eventService, cfg)
	healthHandler := api.NewHealthHandler(db)

	// Create router
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(rateLimiter.Middleware())
	r.Use(sessionManager.LoadAndSave)
	r.Use(middleware.Locale(cfg.DefaultLocale))
	r.Use(middleware.LoadProfile(sessionManager, db))

	// Health check routes (minimal for anonymous, detailed for admins)
	r.Get("/health", healthHandler.Health)
	r.Get("/health/live", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)

	// Uploaded images
	uploadsDir, err := filepath.Abs(cfg.UploadsDir)
	if err != nil {
		return fmt.Errorf("resolving uploads directory: %w", err)
	}
	r.Handle("/uploads/*", http.StripPrefix("/uploads/",
		http.FileServer(http.Dir(uploadsDir))))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/status", apiHandler.Status)

		// Public menu routes
		r.Get("/menu/categories", apiHandler.ListMenuCategories)
		r.Get("/menu/categories/{slug}", apiHandler.GetMenuCategory)
		r.Get("/menu/items/{id}", apiHandler.GetMenuItem)

		// Session routes, CSRF protected
		r.Group(func(r chi.Router) {
			r.Use(csrfMiddleware)
			r.With(loginProtection.Middleware()).Post("/auth/login", apiHandler.Login)
			r.Post("/auth/logout", apiHandler.Logout)
			r.Get("/auth/me", apiHandler.Me)
		})

		// Management routes for staff and admins
		r.Route("/admin", func(r chi.Router) {
			r.Use(csrfMiddleware)
			r.Use(middleware.RequireMenuAccess())

			r.Get("/categories", apiHandler.ListCategories)
			r.Post("/categories", apiHandler.CreateCategory)
			r.Get("/categories/{id}", apiHandler.GetCategory)
			r.Put("/categories/{id}", apiHandler.UpdateCategory)
			r.Delete("/categories/{id}", apiHandler.DeleteCategory)

			r.Get("/items", apiHandler.ListItems)
			r.Post("/items", apiHandler.CreateItem)
			r.Get("/items/{id}", apiHandler.GetItem)
			r.Put("/items/{id}", apiHandler.UpdateItem)
			r.Delete("/items/{id}", apiHandler.DeleteItem)

			r.Post("/upload", apiHandler.Upload)
			r.Get("/events", apiHandler.ListEvents)

			// Admin-only profile management
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin())
				r.Get("/profiles", apiHandler.ListProfiles)
				r.Post("/profiles", apiHandler.CreateProfile)
				r.Put("/profiles/{id}/role", apiHandler.UpdateProfileRole)
			})
		})
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second, // Allow large uploads on slow connections
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
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
