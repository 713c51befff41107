package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"sentiment-trading-bot/internal/engine"
	"sentiment-trading-bot/internal/feed"
	"sentiment-trading-bot/internal/gateway"
	"sentiment-trading-bot/internal/interfaces"
	"sentiment-trading-bot/internal/llm/gemini"
	"sentiment-trading-bot/internal/llm/llmobs"
	"sentiment-trading-bot/internal/llm/noop"
	"sentiment-trading-bot/internal/llm/openai"
	"sentiment-trading-bot/internal/logger"
	"sentiment-trading-bot/internal/price"
	"sentiment-trading-bot/internal/report"
	"sentiment-trading-bot/internal/sentiment"
	"sentiment-trading-bot/internal/store"
	"sentiment-trading-bot/internal/trace"
)

// initializeSystem initializes environment, logger and tracer
func initializeSystem() error {
	// Load environment variables
	_ = godotenv.Load()

	// Initialize logger
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Initialize tracer
	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}

	return nil
}

// loadConfig loads and returns the configuration
func loadConfig(ctx context.Context) (*store.Config, error) {
	path := os.Getenv("BOT_CONFIG")
	if path == "" {
		path = "config.yaml"
	}
	cfg, err := store.LoadConfig(path)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err, "path", path)
		return nil, err
	}
	return cfg, nil
}

// initializeAudit creates the audit log and compresses stale files
func initializeAudit(ctx context.Context, env *store.Env) *report.Log {
	audit := report.New(env.LogDir)
	if env.LogRetention > 0 {
		if err := audit.CompressOlder(env.LogRetention); err != nil {
			logger.Warn(ctx, "Failed to compress old logs", "error", err)
		}
	}
	return audit
}

// initializeClassifier builds the provider failover chain from config,
// each provider wrapped with observability middleware.
func initializeClassifier(ctx context.Context, cfg *store.Config, env *store.Env) *sentiment.Classifier {
	var providers []interfaces.Provider
	for _, name := range cfg.LLM.Providers {
		switch strings.ToUpper(name) {
		case "GEMINI":
			if env.GeminiAPIKey == "" {
				logger.Warn(ctx, "GEMINI_API_KEY not set - skipping Gemini provider")
				continue
			}
			providers = append(providers, llmobs.Wrap(gemini.New(cfg)))
		case "OPENAI":
			if env.OpenAIAPIKey == "" {
				logger.Warn(ctx, "OPENAI_API_KEY not set - skipping OpenAI provider")
				continue
			}
			providers = append(providers, llmobs.Wrap(openai.New(cfg)))
		case "NOOP":
			providers = append(providers, llmobs.Wrap(noop.New()))
		}
	}

	if len(providers) == 0 {
		logger.Warn(ctx, "No usable sentiment provider configured - using Noop (always neutral)")
		providers = append(providers, llmobs.Wrap(noop.New()))
	}

	return sentiment.NewClassifier(providers,
		sentiment.WithTimeout(time.Duration(cfg.LLM.TimeoutSeconds)*time.Second),
		sentiment.WithRateLimit(cfg.LLM.RatePerSecond),
	)
}

// initializeSource picks the post source for the configured mode.
func initializeSource(ctx context.Context, cfg *store.Config) interfaces.Source {
	if cfg.Mode == "DRY_RUN" {
		logger.Warn(ctx, "Running in DRY_RUN mode - using static sample posts")
		return feed.NewStaticSource()
	}
	logger.Info(ctx, "Using live feed scraper", "mirror", cfg.Feed.Mirror)
	return feed.NewScraper(cfg.Feed.Mirror, time.Duration(cfg.LLM.TimeoutSeconds)*time.Second)
}

// initializeGateway returns the execution gateway. Settlement is always
// simulated; a live wallet integration would slot in behind the same
// interface.
func initializeGateway(ctx context.Context, cfg *store.Config) interfaces.Gateway {
	if cfg.Mode == "DRY_RUN" {
		logger.Warn(ctx, "Running in DRY_RUN mode - trades will be simulated")
	}
	return gateway.NewMock()
}

// initializeEngine wires the decision engine with price enrichment and
// the audit log.
func initializeEngine(cfg *store.Config, classifier *sentiment.Classifier, audit *report.Log) *engine.Engine {
	prices := price.NewLookup(cfg.Price.FallbackUSD, time.Duration(cfg.Price.TimeoutSeconds)*time.Second)
	return engine.New(classifier, cfg,
		engine.WithPriceLookup(prices),
		engine.WithAuditLog(audit),
	)
}
