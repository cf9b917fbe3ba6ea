// Package main is the entry point for the GlobeTrotter API server.
// Its sole responsibility is wiring dependencies together and starting the
// server. No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/globe-trotter/backend/internal/auth"
	"github.com/globe-trotter/backend/internal/config"
	"github.com/globe-trotter/backend/internal/handler"
	"github.com/globe-trotter/backend/internal/mail"
	"github.com/globe-trotter/backend/internal/middleware"
	"github.com/globe-trotter/backend/internal/otp"
	"github.com/globe-trotter/backend/internal/places"
	"github.com/globe-trotter/backend/internal/repo"
	"github.com/globe-trotter/backend/internal/service"
	"github.com/globe-trotter/backend/migrations"
	"github.com/globe-trotter/backend/spec"
)

func main() {
	// --- Config -----------------------------------------------------------
	// .env is optional; real deployments set environment variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// log/slog JSON handler writes machine-readable output suitable for log
	// aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	// pgxpool manages a pool of Postgres connections.
	// New() does not open connections immediately — the first query does.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	// Apply pending migrations from the embedded FS. goose needs database/sql,
	// so borrow one connection config from the pool.
	if err := migrate(pool); err != nil {
		slog.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	// --- Infrastructure ---------------------------------------------------
	var otpStore otp.Store
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			slog.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer rdb.Close()
		otpStore = otp.NewRedisStore(rdb)
		slog.Info("otp store: redis", "addr", cfg.RedisAddr)
	} else {
		otpStore = otp.NewMemoryStore()
		slog.Info("otp store: in-memory")
	}

	var mailer mail.Sender
	if cfg.SMTPHost != "" {
		mailer = mail.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom, cfg.SMTPUsername, cfg.SMTPPassword)
	} else {
		mailer = mail.NewLogSender(logger)
		slog.Warn("SMTP_HOST not set; password-reset codes will be logged, not emailed")
	}

	issuer := auth.NewIssuer([]byte(cfg.JWTSecret), auth.DefaultTTL)

	var placesOpts []places.Option
	if cfg.PlacesBaseURL != "" {
		placesOpts = append(placesOpts, places.WithBaseURL(cfg.PlacesBaseURL))
	}
	placesClient := places.NewClient(cfg.PlacesAPIKey, placesOpts...)

	// --- Repos and services ----------------------------------------------
	users := repo.NewUserRepo(pool)
	trips := repo.NewTripRepo(pool)
	stops := repo.NewStopRepo(pool)
	cities := repo.NewCityRepo(pool)
	activities := repo.NewTripActivityRepo(pool)
	budgets := repo.NewBudgetRepo(pool)
	shares := repo.NewShareRepo(pool)

	userSvc := service.NewUserService(users, trips, otpStore, mailer, issuer)
	tripSvc := service.NewTripService(trips, users, stops, activities, budgets, shares)
	stopSvc := service.NewStopService(trips, stops, cities)
	activitySvc := service.NewActivityService(trips, stops, activities)
	budgetSvc := service.NewBudgetService(trips, budgets)
	shareSvc := service.NewShareService(trips, shares, tripSvc)
	citySvc := service.NewCityService(cities, stops)

	// --- Router -----------------------------------------------------------
	// Middleware order: RequestID → RealIP → Logger → Recoverer → CORS →
	// body cap → metrics. Recoverer catches panics and returns HTTP 500
	// instead of crashing.
	metrics := middleware.NewMetrics(prometheus.DefaultRegisterer)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	r.Use(metrics.Handler)

	srvHandler := handler.NewServer(
		userSvc, tripSvc, stopSvc, activitySvc, budgetSvc, shareSvc, citySvc,
		placesClient, issuer, spec.OpenAPI,
	)
	r.Mount("/api", srvHandler.Routes())
	r.Handle("/metrics", promhttp.Handler())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// migrate applies the embedded goose migrations over a database/sql view of
// the pool's connection config.
func migrate(pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return err
	}
	results, err := provider.Up(context.Background())
	if err != nil {
		return err
	}
	if len(results) > 0 {
		slog.Info("migrations applied", "count", len(results))
	}
	return nil
}
