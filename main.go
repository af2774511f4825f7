package main

import (
	"context"
	"errors"
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/redis/go-redis/v9"

	"github.com/shopassist-poc/server/internal/agent/classify"
	"github.com/shopassist-poc/server/internal/agent/model"
	"github.com/shopassist-poc/server/internal/agent/pipeline"
	"github.com/shopassist-poc/server/internal/agent/store"
	"github.com/shopassist-poc/server/internal/agent/tools"
	"github.com/shopassist-poc/server/internal/api"
	"github.com/shopassist-poc/server/internal/core"
	logx "github.com/shopassist-poc/server/pkg/logger"
	pkgredis "github.com/shopassist-poc/server/pkg/redis"
)

// AppConfig defines all configurable parameters for the service, sourced
// from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"APP_ENV" default:"development"`

	// Infrastructure. Redis is optional; without it the catalog and order
	// datasets come from the embedded mock data.
	Redis pkgredis.Config

	// LLM provider. Without an API key, intent classification runs on the
	// keyword heuristic only.
	APIKey  string `envconfig:"GEMINI_API_KEY"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	Classifier model.ClassifierModelConfig
	Server     model.ServerConfig
}

func main() {
	ctx := context.Background()

	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(cfg.Environment)})

	catalog, orders := loadStores(ctx, cfg)
	logx.Info().Int("products", catalog.Len()).Int("orders", orders.Len()).Msg("datasets loaded")

	var svc classify.Classifier
	if cfg.APIKey != "" {
		llm, err := classify.NewLLMClassifier(ctx, classify.LLMConfig{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Classifier,
		})
		if err != nil {
			logx.Fatal().Err(err).Msg("failed to initialise classifier model")
		}
		svc = llm
	} else {
		logx.Warn().Msg("GEMINI_API_KEY not set; classification uses the keyword heuristic only")
	}

	runner, err := pipeline.New(pipeline.Config{
		Classifier: svc,
		Catalog:    catalog,
		Orders:     orders,
	})
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to build pipeline")
	}

	registry := tools.NewRegistry(catalog, orders, nil)

	srv := api.NewServer(cfg.Server, runner, registry)
	logx.Info().Str("addr", cfg.Server.Addr).Msg("shop assist server starting")
	srv.Spin()
}

// loadStores prefers Redis-hosted datasets and falls back to the embedded
// mock data, seeding Redis with it when the keys are simply absent.
func loadStores(ctx context.Context, cfg AppConfig) (*store.Catalog, *store.Orders) {
	var rdb *redis.Client
	if cfg.Redis.Enabled() {
		client, err := cfg.Redis.New()
		if err != nil {
			logx.Warn().Err(err).Msg("redis unavailable; using embedded datasets")
		} else {
			rdb = client
		}
	}
	if rdb != nil {
		defer rdb.Close()
		catalog, orders, err := store.LoadFromRedis(ctx, rdb)
		if err == nil {
			return catalog, orders
		}
		if !errors.Is(err, redis.Nil) {
			logx.Warn().Err(err).Msg("failed to load datasets from redis; using embedded datasets")
		}
	}

	catalog, orders, err := store.LoadEmbedded()
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to load embedded datasets")
	}

	if rdb != nil {
		if err := store.Seed(ctx, rdb, catalog, orders); err != nil {
			logx.Warn().Err(err).Msg("failed to seed redis with embedded datasets")
		} else {
			logx.Info().Msg("seeded redis with embedded datasets")
		}
	}
	return catalog, orders
}
