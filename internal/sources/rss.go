package sources

import (
	"context"
	"os"
	"time"

	"github.com/mmcdole/gofeed"
	"gopkg.in/yaml.v3"

	"github.com/Krsh-hub/AITians-News/internal/logger"
	"github.com/Krsh-hub/AITians-News/internal/metrics"
	"github.com/Krsh-hub/AITians-News/internal/news"
	"github.com/Krsh-hub/AITians-News/internal/sanitize"
)

// FeedsConfig is the YAML config structure
// feeds:
//   - https://...
type FeedsConfig struct {
	Feeds []string `yaml:"feeds"`
}

// LoadFeeds reads the RSS feeds list from a YAML file. A missing file means
// the RSS source is simply not configured.
func LoadFeeds(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg FeedsConfig
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, err
	}
	return cfg.Feeds, nil
}

// RSSSource aggregates a configured list of AI-topic RSS/Atom feeds. Unlike
// the API providers, feed content is not pre-filtered by a search query, so
// the relevance filter does real work here.
type RSSSource struct {
	feeds   []string
	timeout time.Duration
}

func NewRSSSource(feeds []string, timeout time.Duration) *RSSSource {
	return &RSSSource{
		feeds:   feeds,
		timeout: timeout,
	}
}

func (s *RSSSource) Name() string { return "RSS" }

// Fetch downloads and parses every configured feed. Individual feed
// failures are logged and skipped; the source only errors as a whole when
// the context is done. No configured feeds means zero items, no error.
func (s *RSSSource) Fetch(ctx context.Context) ([]news.Article, error) {
	if len(s.feeds) == 0 {
		return nil, nil
	}

	// A parser per call: gofeed parsers are not safe for concurrent reuse
	parser := gofeed.NewParser()

	var articles []news.Article
	for _, feedURL := range s.feeds {
		if err := ctx.Err(); err != nil {
			return articles, err
		}

		feedCtx, cancel := context.WithTimeout(ctx, s.timeout)
		feed, err := parser.ParseURLWithContext(feedURL, feedCtx)
		cancel()
		if err != nil {
			logger.Warn("rss feed failed", "url", feedURL, "error", err)
			continue
		}

		for _, item := range feed.Items {
			description := sanitize.Strip(item.Description)
			if !news.IsAIRelated(item.Title, description) {
				metrics.Global.IncrementRelevanceRejected()
				continue
			}
			articles = append(articles, s.normalize(feed, item, description))
		}
		logger.Debug("rss feed loaded", "url", feedURL, "items", len(feed.Items))
	}
	return articles, nil
}

func (s *RSSSource) normalize(feed *gofeed.Feed, item *gofeed.Item, description string) news.Article {
	id := item.GUID
	if id == "" {
		id = item.Link
	}

	publishedAt := ""
	if item.PublishedParsed != nil {
		publishedAt = item.PublishedParsed.UTC().Format(time.RFC3339)
	} else if item.UpdatedParsed != nil {
		publishedAt = item.UpdatedParsed.UTC().Format(time.RFC3339)
	}

	a := news.Article{
		ID:          id,
		Title:       item.Title,
		Description: description,
		URL:         item.Link,
		Source:      feed.Title,
		PublishedAt: publishedAt,
	}

	if item.Image != nil {
		a.Image = item.Image.URL
	}

	if a.Title == "" {
		a.Title = news.DefaultTitle
	}
	if a.Description == "" {
		a.Description = news.DefaultDescription
	}
	if a.Image == "" {
		a.Image = news.DefaultImage
	}
	if a.Source == "" {
		a.Source = s.Name()
	}
	if a.PublishedAt == "" {
		a.PublishedAt = news.NowTimestamp()
	}
	a.Category = news.Categorize(item.Title, description)

	return a
}
