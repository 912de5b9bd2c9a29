package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Krsh-hub/AITians-News/internal/cache"
	"github.com/Krsh-hub/AITians-News/internal/config"
	"github.com/Krsh-hub/AITians-News/internal/logger"
	"github.com/Krsh-hub/AITians-News/internal/metrics"
	"github.com/Krsh-hub/AITians-News/internal/news"
	"github.com/Krsh-hub/AITians-News/internal/ratelimit"
)

const (
	articlesCacheKey = "articles"
	digestCacheKey   = "digest"
)

// Fetcher produces the aggregated article set for one request cycle.
type Fetcher interface {
	FetchNews(ctx context.Context) []news.Article
}

// Summarizer turns the trending set into a short text digest.
type Summarizer interface {
	SummarizeTrending(ctx context.Context, articles []news.Article) (string, error)
}

// Server wires the aggregation pipeline to the HTTP surface. The cache
// gives served results a revalidation window so a burst of page loads does
// not hammer the upstream APIs.
type Server struct {
	aggregator Fetcher
	cache      *cache.Cache
	cfg        *config.Config
	summarizer Summarizer // nil when GEMINI_API_KEY is absent
	limiter    *ratelimit.DigestLimiter
}

func New(aggregator Fetcher, c *cache.Cache, cfg *config.Config, summarizer Summarizer, limiter *ratelimit.DigestLimiter) *Server {
	return &Server{
		aggregator: aggregator,
		cache:      c,
		cfg:        cfg,
		summarizer: summarizer,
		limiter:    limiter,
	}
}

// NewRouter constructs a Gin engine with registered routes.
func (s *Server) NewRouter() *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery only, request logging stays on slog.
	// A panic degrades to an empty article list, never a broken response.
	r.Use(gin.CustomRecovery(func(c *gin.Context, err any) {
		logger.Error("request panicked", "error", err)
		metrics.Global.SetError(fmt.Sprintf("%v", err))
		c.JSON(http.StatusOK, gin.H{"articles": []news.Article{}})
	}))

	r.GET("/api/news", s.handleNews)
	r.GET("/api/digest", s.handleDigest)
	r.GET("/health", s.handleHealth)
	r.GET("/metrics", s.handleMetrics)
	return r
}

// handleNews serves the aggregated set. Query surface: type=trending for
// the trending view, category=<label> for an exact-label view, neither for
// the full sorted set. Unknown categories come back as an empty list.
func (s *Server) handleNews(c *gin.Context) {
	metrics.Global.IncrementRequestsServed()

	articles := s.articles(c.Request.Context())

	if c.Query("type") == "trending" {
		c.JSON(http.StatusOK, gin.H{"articles": news.Trending(articles, s.cfg.TrendingLimit)})
		return
	}

	if category := c.Query("category"); category != "" {
		c.JSON(http.StatusOK, gin.H{"articles": news.ByCategory(articles, category)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"articles": articles})
}

// handleDigest serves the Gemini digest of the current trending set. The
// endpoint degrades to 503 when the summarizer is unconfigured or today's
// request budget is spent and nothing is cached.
func (s *Server) handleDigest(c *gin.Context) {
	if s.summarizer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "digest not configured"})
		return
	}

	if cached, ok := s.cache.Get(digestCacheKey); ok {
		c.JSON(http.StatusOK, gin.H{"digest": cached.(string)})
		return
	}

	// Reserve budget before calling the model, so concurrent requests
	// cannot both pass a check and overrun the daily cap
	if err := s.limiter.Use(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "digest budget exhausted, try later"})
		return
	}

	trending := news.Trending(s.articles(c.Request.Context()), s.cfg.TrendingLimit)
	digest, err := s.summarizer.SummarizeTrending(c.Request.Context(), trending)
	if err != nil {
		logger.Error("digest generation failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "digest unavailable"})
		return
	}
	metrics.Global.IncrementDigestsGenerated()

	s.cache.Set(digestCacheKey, digest, s.cfg.CacheTTL)
	c.JSON(http.StatusOK, gin.H{"digest": digest})
}

func (s *Server) handleHealth(c *gin.Context) {
	stats := metrics.Global.GetStats()

	status := "ok"
	code := http.StatusOK
	if !stats["is_healthy"].(bool) {
		status = "error"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":     status,
		"last_run":   stats["last_run_time"],
		"last_error": stats["last_error"],
	})
}

func (s *Server) handleMetrics(c *gin.Context) {
	stats := metrics.Global.GetStats()
	if s.limiter != nil {
		for k, v := range s.limiter.GetStats() {
			stats[k] = v
		}
	}
	c.JSON(http.StatusOK, stats)
}

// articles returns the aggregate for this request, reusing the cached set
// while the revalidation window lasts. The pipeline itself never fails; on
// total upstream failure it yields the placeholder article.
func (s *Server) articles(ctx context.Context) []news.Article {
	if cached, ok := s.cache.Get(articlesCacheKey); ok {
		return cached.([]news.Article)
	}

	articles := s.aggregator.FetchNews(ctx)
	s.cache.Set(articlesCacheKey, articles, s.cfg.CacheTTL)
	return articles
}
