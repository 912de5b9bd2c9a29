package news

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Krsh-hub/AITians-News/internal/logger"
	"github.com/Krsh-hub/AITians-News/internal/metrics"
)

// Source is one upstream news provider. A source with missing credentials
// returns (nil, nil): not configured is not an error. A failing source
// returns an error which the aggregator contains and logs; it never aborts
// the pipeline.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]Article, error)
}

// FetchResult carries one source's outcome through the pipeline instead of
// relying on suppressed errors.
type FetchResult struct {
	Source   string
	Articles []Article
	Err      error
}

// Aggregator runs the fetch-merge-dedupe-sort pipeline over its sources.
type Aggregator struct {
	sources []Source
}

func NewAggregator(sources ...Source) *Aggregator {
	return &Aggregator{sources: sources}
}

// FetchNews queries all sources concurrently and returns the merged,
// deduplicated, sorted article set. Always non-empty: when every source
// fails or is unconfigured the result is a single placeholder article.
func (a *Aggregator) FetchNews(ctx context.Context) []Article {
	start := time.Now()
	defer func() {
		metrics.Global.RecordFetchTime(time.Since(start))
		metrics.Global.SetLastRun()
	}()

	results := a.fetchAll(ctx)

	var merged []Article
	for _, res := range results {
		if res.Err != nil {
			logger.Warn("source fetch failed", "source", res.Source, "error", res.Err)
			metrics.Global.IncrementSourceFailures()
			continue
		}
		logger.Debug("source fetched", "source", res.Source, "articles", len(res.Articles))
		metrics.Global.AddArticlesFetched(len(res.Articles))
		merged = append(merged, res.Articles...)
	}

	if len(merged) == 0 {
		logger.Warn("no articles from any source, serving placeholder")
		metrics.Global.IncrementPlaceholderServed()
		return []Article{placeholderArticle()}
	}

	deduped := Dedupe(merged)
	SortByPublished(deduped)
	logger.Info("pipeline complete",
		"fetched", len(merged),
		"unique", len(deduped),
		"took", time.Since(start).Round(time.Millisecond))
	return deduped
}

// fetchAll runs one goroutine per source and collects every result in
// source registration order. Each goroutine writes only its own slot, so
// no locking is needed.
func (a *Aggregator) fetchAll(ctx context.Context) []FetchResult {
	results := make([]FetchResult, len(a.sources))

	var wg sync.WaitGroup
	for i, src := range a.sources {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()
			articles, err := src.Fetch(ctx)
			results[i] = FetchResult{Source: src.Name(), Articles: articles, Err: err}
		}(i, src)
	}
	wg.Wait()

	return results
}

// Dedupe keeps the first article seen for each distinct title. Comparison
// is exact and case-sensitive: titles differing only in case are treated as
// different articles. Input order is preserved for the survivors.
func Dedupe(articles []Article) []Article {
	seen := make(map[string]struct{}, len(articles))
	out := make([]Article, 0, len(articles))

	for _, a := range articles {
		if _, dup := seen[a.Title]; dup {
			metrics.Global.IncrementDuplicatesFiltered()
			continue
		}
		seen[a.Title] = struct{}{}
		out = append(out, a)
	}
	return out
}

// SortByPublished orders articles newest first, in place. The sort is
// stable so equal timestamps keep their pre-sort order.
func SortByPublished(articles []Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].PublishedTime().After(articles[j].PublishedTime())
	})
}

// placeholderArticle is returned when zero sources produced items, so the
// caller always gets a well-formed non-empty result and the end user sees
// why there is no content.
func placeholderArticle() Article {
	return Article{
		ID:          "1",
		Title:       "No API keys configured - Add NewsAPI or Guardian API keys",
		Description: "Add NEWSAPI_KEY or GUARDIAN_API_KEY to your environment (or .env file) to fetch real news.",
		URL:         "https://newsapi.org",
		Image:       DefaultImage,
		Source:      "System",
		Category:    CategoryGeneral,
		PublishedAt: NowTimestamp(),
	}
}
