package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/actuallystonmai/movie-recommendation-service/internal/cache"
	"github.com/actuallystonmai/movie-recommendation-service/internal/catalog"
	"github.com/actuallystonmai/movie-recommendation-service/internal/config"
	"github.com/actuallystonmai/movie-recommendation-service/internal/handler"
	"github.com/actuallystonmai/movie-recommendation-service/internal/logging"
	"github.com/actuallystonmai/movie-recommendation-service/internal/model"
	"github.com/actuallystonmai/movie-recommendation-service/internal/recommend"
	"github.com/actuallystonmai/movie-recommendation-service/internal/repository"
	"github.com/actuallystonmai/movie-recommendation-service/internal/router"
	"github.com/actuallystonmai/movie-recommendation-service/internal/service"
	"github.com/actuallystonmai/movie-recommendation-service/seeds"
)

const (
	appReferer = "http://localhost:8080"
	appTitle   = "Movie Recommendation Service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load config")
	}

	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: os.Stdout})
	log := logging.With("server")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ------------ PostgreSQL ---------------
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse database config")
	}
	poolConfig.MaxConns = int32(cfg.DBPoolSize)
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	if err := waitForDB(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("database not ready")
	}
	log.Info().Msg("connected to PostgreSQL")

	// ------------ Run Migrations ---------------
	// for migrate-down using CLI command
	if len(os.Args) > 1 && os.Args[1] == "migrate-down" {
		if err := migrateDown(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate down")
		}
		return
	}

	if err := migrateUp(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate up")
	}

	// ------------ Setup Seed Data ---------------
	if err := checkSeed(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("failed to check seed")
	}

	// ------------ Redis ---------------
	var recCache service.Cache
	if c, err := connectRedis(ctx, cfg); err != nil {
		log.Warn().Err(err).Msg("redis unavailable, caching disabled")
	} else {
		defer c.Close()
		recCache = cache.NewCache(c, cfg.CacheTTL)
		log.Info().Msg("connected to Redis")
	}

	// ------------ Engine ---------------
	rng := recommend.NewRand(cfg.RandomSeed)
	repo := repository.NewRepository(pool)

	var completer recommend.Completer
	if cfg.HasCompletionKey() {
		completer = model.NewClient(model.Config{
			URL:     cfg.CompletionURL,
			APIKey:  cfg.CompletionAPIKey,
			Timeout: cfg.CompletionTimeout,
			Referer: appReferer,
			Title:   appTitle,
		})
	} else {
		log.Warn().Msg("no completion key configured, AI recommendations disabled")
	}

	omdbKey := ""
	if cfg.HasCatalogKey() {
		omdbKey = cfg.OMDbAPIKey
	}
	catalogClient := catalog.NewClient(catalog.Config{
		URL:     cfg.OMDbURL,
		APIKey:  omdbKey,
		Timeout: cfg.OMDbTimeout,
	}, rng)

	engine := recommend.NewEngine(repo, completer, rng, recommend.Options{
		Model:       cfg.CompletionModel,
		Temperature: cfg.CompletionTemperature,
		MaxTokens:   cfg.CompletionMaxTokens,
	})

	svc := service.NewService(repo, engine, catalogClient, recCache)
	h := handler.NewHandler(svc)

	// ---------------- Server --------------------
	routes := router.Setup(h, router.Options{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitRequests:  cfg.RateLimitRequests,
		RateLimitWindow:    cfg.RateLimitWindow,
	})
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           routes,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Bool("ai_enabled", engine.AIEnabled()).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func waitForDB(ctx context.Context, pool *pgxpool.Pool) error {
	log := logging.With("server")
	for i := 0; i < 30; i++ {
		if err := pool.Ping(ctx); err == nil {
			return nil
		}
		log.Info().Msgf("waiting for database... (%d/30)", i+1)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
		}
	}
	return fmt.Errorf("database connection timeout after 30s")
}

func connectRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func migrateDown(ctx context.Context, pool *pgxpool.Pool) error {
	sql, err := os.ReadFile("migrations/create_tables.down.sql")
	if err != nil {
		return fmt.Errorf("read migration file: %w", err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("execute migration: %w", err)
	}
	logging.With("server").Info().Msg("migrations dropped successfully")
	return nil
}

func migrateUp(ctx context.Context, pool *pgxpool.Pool) error {
	sql, err := os.ReadFile("migrations/create_tables.up.sql")
	if err != nil {
		return fmt.Errorf("read migration file: %w", err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("execute migration: %w", err)
	}
	logging.With("server").Info().Msg("migrations applied successfully")
	return nil
}

func checkSeed(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("check users count: %w", err)
	}
	if count > 0 {
		logging.With("server").Info().Int("users", count).Msg("database already seeded, skipping")
		return nil
	}
	return seeds.Setup(ctx, pool)
}
