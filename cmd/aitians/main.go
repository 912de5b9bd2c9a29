package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/Krsh-hub/AITians-News/internal/cache"
	"github.com/Krsh-hub/AITians-News/internal/config"
	"github.com/Krsh-hub/AITians-News/internal/gemini"
	"github.com/Krsh-hub/AITians-News/internal/logger"
	"github.com/Krsh-hub/AITians-News/internal/news"
	"github.com/Krsh-hub/AITians-News/internal/ratelimit"
	"github.com/Krsh-hub/AITians-News/internal/retry"
	"github.com/Krsh-hub/AITians-News/internal/server"
	"github.com/Krsh-hub/AITians-News/internal/sources"
)

func main() {
	// Local development convenience; in production the env is already set
	_ = godotenv.Load()
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	retryCfg := retry.Config{
		MaxAttempts: cfg.RetryAttempts,
		Delay:       cfg.RetryDelay,
		Backoff:     true,
	}

	srcs := buildSources(cfg, retryCfg)
	aggregator := news.NewAggregator(srcs...)

	var summarizer server.Summarizer
	var limiter *ratelimit.DigestLimiter
	if cfg.GeminiAPIKey != "" {
		client, err := gemini.NewClient(context.Background(), cfg.GeminiAPIKey)
		if err != nil {
			logger.Error("gemini client init failed, digest disabled", "error", err)
		} else {
			defer client.Close()
			summarizer = client
			limiter = ratelimit.NewDigestLimiter(cfg.MaxDigestRequests)
		}
	}

	srv := server.New(aggregator, cache.New(), cfg, summarizer, limiter)
	router := srv.NewRouter()

	logger.Info("starting server",
		"port", cfg.Port,
		"sources", len(srcs),
		"digest_enabled", summarizer != nil)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// buildSources registers every provider. Clients with missing credentials
// stay registered and simply contribute zero items.
func buildSources(cfg *config.Config, retryCfg retry.Config) []news.Source {
	srcs := []news.Source{
		sources.NewNewsAPIClient(cfg.NewsAPIKey, cfg.RequestTimeout, retryCfg),
		sources.NewGuardianClient(cfg.GuardianAPIKey, cfg.RequestTimeout, retryCfg),
	}

	feeds, err := sources.LoadFeeds(cfg.FeedsConfigPath)
	if err != nil {
		logger.Warn("feeds config not loaded, RSS source disabled", "path", cfg.FeedsConfigPath, "error", err)
	}
	srcs = append(srcs, sources.NewRSSSource(feeds, cfg.RequestTimeout))

	return srcs
}
