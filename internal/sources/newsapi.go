package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Krsh-hub/AITians-News/internal/metrics"
	"github.com/Krsh-hub/AITians-News/internal/news"
	"github.com/Krsh-hub/AITians-News/internal/retry"
)

const defaultNewsAPIBaseURL = "https://newsapi.org"

// NewsAPIClient fetches AI coverage from the NewsAPI.org "everything"
// search endpoint.
type NewsAPIClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
	retry   retry.Config
}

func NewNewsAPIClient(apiKey string, timeout time.Duration, retryCfg retry.Config) *NewsAPIClient {
	return &NewsAPIClient{
		apiKey:  apiKey,
		baseURL: defaultNewsAPIBaseURL,
		client:  &http.Client{Timeout: timeout},
		retry:   retryCfg,
	}
}

func (c *NewsAPIClient) Name() string { return "NewsAPI" }

type newsAPIResponse struct {
	Status   string           `json:"status"`
	Articles []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
}

// Fetch queries NewsAPI for recent AI articles. A missing API key disables
// the source silently: zero items, no error.
func (c *NewsAPIClient) Fetch(ctx context.Context) ([]news.Article, error) {
	if c.apiKey == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("q", "artificial intelligence")
	params.Set("language", "en")
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", "50")
	params.Set("apiKey", c.apiKey)
	endpoint := c.baseURL + "/v2/everything?" + params.Encode()

	var payload newsAPIResponse
	err := retry.WithRetry(ctx, c.retry, func() error {
		return getJSON(ctx, c.client, endpoint, &payload)
	})
	if err != nil {
		return nil, fmt.Errorf("newsapi: %w", err)
	}
	if payload.Status != "ok" {
		return nil, fmt.Errorf("newsapi: unexpected status %q", payload.Status)
	}

	articles := make([]news.Article, 0, len(payload.Articles))
	for _, item := range payload.Articles {
		if !news.IsAIRelated(item.Title, item.Description) {
			metrics.Global.IncrementRelevanceRejected()
			continue
		}
		articles = append(articles, c.normalize(item))
	}
	return articles, nil
}

// normalize maps one raw NewsAPI item into the unified article shape,
// filling the documented defaults for absent fields.
func (c *NewsAPIClient) normalize(item newsAPIArticle) news.Article {
	a := news.Article{
		ID:          item.URL,
		Title:       item.Title,
		Description: item.Description,
		URL:         item.URL,
		Image:       item.URLToImage,
		Source:      item.Source.Name,
		PublishedAt: item.PublishedAt,
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
		a.Source = c.Name()
	}
	if a.PublishedAt == "" {
		a.PublishedAt = news.NowTimestamp()
	}
	a.Category = news.Categorize(item.Title, item.Description)

	return a
}

// getJSON performs one GET and decodes the JSON body into out. Non-2xx
// responses are errors so the retry layer can take another attempt.
func getJSON(ctx context.Context, client *http.Client, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected HTTP status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
