package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"stellium/internal/astro"
	"stellium/internal/compatibility"
	httpapi "stellium/internal/http"
	"stellium/internal/numerology"
	"stellium/internal/platform/config"
	"stellium/internal/platform/httpserver"
	"stellium/internal/platform/logger"
	platformredis "stellium/internal/platform/redis"
	"stellium/internal/profile"
	profilehandler "stellium/internal/profile/handler"
	profilemetrics "stellium/internal/profile/metrics"
	"stellium/internal/validation"
	validationhandler "stellium/internal/validation/handler"
	validationmetrics "stellium/internal/validation/metrics"
	validationstore "stellium/internal/validation/store"
	"stellium/internal/zodiac"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogFormat)

	oracle := buildOracle(cfg.Oracle, log)
	approximator := astro.NewApproximator(oracle,
		astro.WithLogger(log),
		astro.WithTimeout(cfg.Oracle.Timeout),
	)

	history, checkers, cleanup, err := buildHistory(cfg, log)
	if err != nil {
		log.Error("failed to build history store", "error", err.Error())
		os.Exit(1)
	}
	defer cleanup()

	resolver := zodiac.NewResolver()
	engine := numerology.NewEngine()
	scorer := compatibility.NewScorer()

	validator, err := validation.NewValidator(history, oracle,
		validation.WithLogger(log),
		validation.WithMetrics(validationmetrics.New()),
	)
	if err != nil {
		log.Error("failed to build validator", "error", err.Error())
		os.Exit(1)
	}
	subjects := validation.Subjects{
		Resolver:     resolver,
		Engine:       engine,
		Approximator: approximator,
	}

	profileSvc, err := profile.NewService(resolver, engine, scorer, approximator,
		profile.WithLogger(log),
		profile.WithMetrics(profilemetrics.New()),
	)
	if err != nil {
		log.Error("failed to build profile service", "error", err.Error())
		os.Exit(1)
	}

	router := httpapi.NewRouter(checkers,
		profilehandler.New(profileSvc, log),
		validationhandler.New(validator, subjects, history, log),
	)
	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting stellium", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err.Error())
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err.Error())
		os.Exit(1)
	}
}

// buildOracle selects the HTTP ephemeris client, or the deterministic mock
// when no URL is configured.
func buildOracle(cfg config.OracleConfig, log *slog.Logger) astro.Oracle {
	if cfg.URL == "" {
		log.Info("no oracle URL configured, using deterministic mock oracle")
		return astro.MockOracle{}
	}
	return astro.NewHTTPOracle(cfg.URL, cfg.Timeout)
}

// pgHealth adapts a *sql.DB to the router's health check.
type pgHealth struct {
	db *sql.DB
}

func (p pgHealth) Health(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

// buildHistory picks the history store backend: postgres when a DSN is set,
// redis when a URL is set, in-memory otherwise. The cleanup func closes
// whatever connection was opened.
func buildHistory(cfg config.Server, log *slog.Logger) (validation.History, map[string]httpapi.HealthChecker, func(), error) {
	noop := func() {}

	if cfg.Postgres.DSN != "" {
		db, err := sql.Open("postgres", cfg.Postgres.DSN)
		if err != nil {
			return nil, nil, noop, err
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, nil, noop, err
		}
		log.Info("using postgres history store")
		checkers := map[string]httpapi.HealthChecker{"postgres": pgHealth{db: db}}
		return validationstore.NewPostgresHistory(db), checkers, func() { db.Close() }, nil
	}

	if cfg.Redis.URL != "" {
		client, err := platformredis.New(cfg.Redis)
		if err != nil {
			return nil, nil, noop, err
		}
		log.Info("using redis history store")
		checkers := map[string]httpapi.HealthChecker{"redis": client}
		return validationstore.NewRedisHistory(client.Client, validationstore.WithRedisRetention(cfg.HistoryRetention)),
			checkers, func() { client.Close() }, nil
	}

	log.Info("using in-memory history store", "retention", cfg.HistoryRetention)
	return validationstore.NewInMemoryHistory(validationstore.WithRetention(cfg.HistoryRetention)), nil, noop, nil
}
