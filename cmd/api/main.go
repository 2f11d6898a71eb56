// Package main is the entry point for the Rupal Adventures API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/rupaladventures/basecamp/internal/auth"
	"github.com/rupaladventures/basecamp/internal/catalog"
	"github.com/rupaladventures/basecamp/internal/changefeed"
	"github.com/rupaladventures/basecamp/internal/config"
	"github.com/rupaladventures/basecamp/internal/handler"
	"github.com/rupaladventures/basecamp/internal/handoff"
	"github.com/rupaladventures/basecamp/internal/middleware"
	"github.com/rupaladventures/basecamp/internal/repo"
	"github.com/rupaladventures/basecamp/internal/service"
	"github.com/rupaladventures/basecamp/migrations"
)

func main() {
	// --- Config -----------------------------------------------------------
	if err := config.LoadDotEnv(".env"); err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Record store (Postgres) -----------------------------------------
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(ctx); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	sqlDB := stdlib.OpenDBFromPool(pool)
	defer sqlDB.Close()
	if err := migrations.UpPostgres(ctx, sqlDB); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	// --- Post store (sqlite) ---------------------------------------------
	postsDB, err := repo.OpenPostsDB(ctx, cfg.PostsDBPath)
	if err != nil {
		slog.Error("failed to open posts database", "path", cfg.PostsDBPath, "error", err)
		os.Exit(1)
	}
	defer postsDB.Close()

	cat, err := catalog.Load()
	if err != nil {
		slog.Error("failed to load expedition catalog", "error", err)
		os.Exit(1)
	}

	// --- Change feed ------------------------------------------------------
	// Postgres notifies from a trigger. With Redis the services publish each
	// committed mutation themselves.
	hub := changefeed.NewHub(logger)
	opts := service.Options{StoreTimeout: cfg.StoreTimeout, Logger: logger}
	var source changefeed.Source
	switch cfg.ChangefeedDriver {
	case config.DriverRedis:
		rdb, err := changefeed.OpenRedis(ctx, changefeed.RedisConfig{Addr: cfg.RedisAddr})
		if err != nil {
			slog.Error("failed to connect to redis", "addr", cfg.RedisAddr, "error", err)
			os.Exit(1)
		}
		defer rdb.Close()
		source = changefeed.NewRedisSource(rdb, logger)
		opts.Publisher = changefeed.NewRedisPublisher(rdb)
	default:
		source = changefeed.NewPGSource(pool, logger)
	}
	go func() {
		if err := hub.Run(ctx, source); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("change feed stopped", "driver", cfg.ChangefeedDriver, "error", err)
		}
	}()

	// --- Services ---------------------------------------------------------
	inquiries := service.NewInquiryService(repo.NewInquiryRepo(pool), opts)
	bookings := service.NewBookingService(repo.NewBookingRepo(pool), opts)
	posts := service.NewPostService(repo.NewPostRepo(postsDB), opts)
	catalogSvc := service.NewCatalogService(cat)

	if _, err := posts.Seed(ctx, catalogSvc.SamplePosts()); err != nil {
		slog.Warn("failed to seed sample posts", "error", err)
	}

	verifier, err := auth.NewVerifier(cfg.JWTSecret, cfg.AdminEmails)
	if err != nil {
		slog.Error("failed to create token verifier", "error", err)
		os.Exit(1)
	}

	server := handler.NewServer(handler.Deps{
		Inquiries:       inquiries,
		Bookings:        bookings,
		Analytics:       service.NewAnalyticsService(inquiries, bookings, opts),
		Export:          service.NewExportService(inquiries, bookings, opts),
		Posts:           posts,
		Catalog:         catalogSvc,
		Hub:             hub,
		Handoff:         handoff.New(cfg.WhatsAppNumber, cfg.ContactEmail),
		Logger:          logger,
		RefreshDebounce: cfg.RefreshDebounce,
	})

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer
	// → CORS → body limit.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	r.Mount("/", server.Routes(verifier))

	// --- HTTP Server ------------------------------------------------------
	// The admin stream clears its own write deadline.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "changefeed", cfg.ChangefeedDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
