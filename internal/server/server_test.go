package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Krsh-hub/AITians-News/internal/cache"
	"github.com/Krsh-hub/AITians-News/internal/config"
	"github.com/Krsh-hub/AITians-News/internal/news"
	"github.com/Krsh-hub/AITians-News/internal/ratelimit"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeFetcher struct {
	articles []news.Article
	calls    int
}

func (f *fakeFetcher) FetchNews(ctx context.Context) []news.Article {
	f.calls++
	return f.articles
}

type fakeSummarizer struct {
	digest string
	err    error
}

func (f *fakeSummarizer) SummarizeTrending(ctx context.Context, articles []news.Article) (string, error) {
	return f.digest, f.err
}

func testConfig() *config.Config {
	return &config.Config{
		Port:           "8080",
		CacheTTL:       time.Minute,
		RequestTimeout: time.Second,
		TrendingLimit:  6,
	}
}

func testArticles() []news.Article {
	now := time.Now()
	mk := func(title, category string, age time.Duration) news.Article {
		return news.Article{
			ID:          title,
			Title:       title,
			Description: "d",
			URL:         "https://example.com/" + title,
			Image:       news.DefaultImage,
			Source:      "Test",
			Category:    category,
			PublishedAt: now.Add(-age).UTC().Format(time.RFC3339),
		}
	}
	return []news.Article{
		mk("fresh tools", "tools", time.Hour),
		mk("fresh policy", "policy", 2*time.Hour),
		mk("stale general", "general", 30*time.Hour),
	}
}

type articlesResponse struct {
	Articles []news.Article `json:"articles"`
}

func doRequest(t *testing.T, router *gin.Engine, path string) (*httptest.ResponseRecorder, articlesResponse) {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)

	var body articlesResponse
	if w.Code == http.StatusOK {
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("bad JSON response: %v", err)
		}
	}
	return w, body
}

func TestHandleNewsFullSet(t *testing.T) {
	fetcher := &fakeFetcher{articles: testArticles()}
	s := New(fetcher, cache.New(), testConfig(), nil, nil)
	router := s.NewRouter()

	w, body := doRequest(t, router, "/api/news")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if len(body.Articles) != 3 {
		t.Errorf("articles len = %d, want 3", len(body.Articles))
	}
}

func TestHandleNewsTrending(t *testing.T) {
	fetcher := &fakeFetcher{articles: testArticles()}
	s := New(fetcher, cache.New(), testConfig(), nil, nil)
	router := s.NewRouter()

	_, body := doRequest(t, router, "/api/news?type=trending")

	if len(body.Articles) != 2 {
		t.Fatalf("trending len = %d, want 2 (stale article excluded)", len(body.Articles))
	}
	for _, a := range body.Articles {
		if a.Title == "stale general" {
			t.Error("trending contains a stale article")
		}
	}
}

func TestHandleNewsByCategory(t *testing.T) {
	fetcher := &fakeFetcher{articles: testArticles()}
	s := New(fetcher, cache.New(), testConfig(), nil, nil)
	router := s.NewRouter()

	_, body := doRequest(t, router, "/api/news?category=tools")
	if len(body.Articles) != 1 || body.Articles[0].Category != "tools" {
		t.Errorf("category view = %+v, want the single tools article", body.Articles)
	}

	// Unknown category: empty list, not an error
	w, body := doRequest(t, router, "/api/news?category=sports")
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 for unknown category", w.Code)
	}
	if body.Articles == nil || len(body.Articles) != 0 {
		t.Errorf("unknown category articles = %v, want empty list", body.Articles)
	}
}

func TestHandleNewsUsesCacheWithinWindow(t *testing.T) {
	fetcher := &fakeFetcher{articles: testArticles()}
	s := New(fetcher, cache.New(), testConfig(), nil, nil)
	router := s.NewRouter()

	doRequest(t, router, "/api/news")
	doRequest(t, router, "/api/news?type=trending")
	doRequest(t, router, "/api/news?category=tools")

	if fetcher.calls != 1 {
		t.Errorf("fetcher calls = %d, want 1 within the revalidation window", fetcher.calls)
	}
}

func TestHandleDigest(t *testing.T) {
	fetcher := &fakeFetcher{articles: testArticles()}
	s := New(fetcher, cache.New(), testConfig(), &fakeSummarizer{digest: "today in AI"}, ratelimit.NewDigestLimiter(10))
	router := s.NewRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/digest", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["digest"] != "today in AI" {
		t.Errorf("digest = %q", body["digest"])
	}

	// Second request must come from cache, not a second Gemini call
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/api/digest", nil))
	if w2.Code != http.StatusOK {
		t.Errorf("cached digest status = %d, want 200", w2.Code)
	}
}

func TestHandleDigestUnconfigured(t *testing.T) {
	s := New(&fakeFetcher{}, cache.New(), testConfig(), nil, nil)
	router := s.NewRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/digest", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503 when digest is not configured", w.Code)
	}
}

func TestHandleDigestBudgetExhausted(t *testing.T) {
	limiter := ratelimit.NewDigestLimiter(1)
	if err := limiter.Use(); err != nil {
		t.Fatal(err)
	}

	s := New(&fakeFetcher{articles: testArticles()}, cache.New(), testConfig(), &fakeSummarizer{digest: "x"}, limiter)
	router := s.NewRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/digest", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503 when budget is spent and nothing is cached", w.Code)
	}
}

// blockingSummarizer parks inside the model call until released, so a test
// can issue a second request while the first one is still in flight.
type blockingSummarizer struct {
	entered chan struct{}
	release chan struct{}
	calls   int32
}

func (b *blockingSummarizer) SummarizeTrending(ctx context.Context, articles []news.Article) (string, error) {
	atomic.AddInt32(&b.calls, 1)
	select {
	case b.entered <- struct{}{}:
	default:
	}
	<-b.release
	return "digest", nil
}

func TestHandleDigestBudgetUnderConcurrency(t *testing.T) {
	sum := &blockingSummarizer{
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	s := New(&fakeFetcher{articles: testArticles()}, cache.New(), testConfig(), sum, ratelimit.NewDigestLimiter(1))
	router := s.NewRouter()

	done := make(chan int, 1)
	go func() {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/digest", nil))
		done <- w.Code
	}()
	<-sum.entered

	// First request holds the only budget slot and has not cached yet
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/digest", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("concurrent request status = %d, want 503 while budget is held", w.Code)
	}

	close(sum.release)
	if code := <-done; code != http.StatusOK {
		t.Errorf("first request status = %d, want 200", code)
	}
	if got := atomic.LoadInt32(&sum.calls); got != 1 {
		t.Errorf("summarizer calls = %d, want 1 with a budget of 1", got)
	}
}

func TestHandleDigestSummarizerFailure(t *testing.T) {
	s := New(&fakeFetcher{articles: testArticles()}, cache.New(), testConfig(),
		&fakeSummarizer{err: errors.New("model unavailable")}, ratelimit.NewDigestLimiter(10))
	router := s.NewRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/digest", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503 on summarizer failure", w.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	s := New(&fakeFetcher{}, cache.New(), testConfig(), nil, nil)
	router := s.NewRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Errorf("health status = %d, want 200", w.Code)
	}
}

func TestHandleMetrics(t *testing.T) {
	s := New(&fakeFetcher{}, cache.New(), testConfig(), nil, ratelimit.NewDigestLimiter(5))
	router := s.NewRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("metrics status = %d, want 200", w.Code)
	}
	var stats map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatal(err)
	}
	if _, ok := stats["requests_served"]; !ok {
		t.Error("metrics missing requests_served")
	}
	if _, ok := stats["digest_limit"]; !ok {
		t.Error("metrics missing digest_limit from the limiter")
	}
}
