package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Krsh-hub/AITians-News/internal/metrics"
	"github.com/Krsh-hub/AITians-News/internal/news"
	"github.com/Krsh-hub/AITians-News/internal/retry"
	"github.com/Krsh-hub/AITians-News/internal/sanitize"
)

const (
	defaultGuardianBaseURL     = "https://content.guardianapis.com"
	guardianDefaultDescription = "Read more on The Guardian"
)

// GuardianClient fetches AI coverage from the Guardian content API, asking
// for the thumbnail and trailText supplementary fields.
type GuardianClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
	retry   retry.Config
}

func NewGuardianClient(apiKey string, timeout time.Duration, retryCfg retry.Config) *GuardianClient {
	return &GuardianClient{
		apiKey:  apiKey,
		baseURL: defaultGuardianBaseURL,
		client:  &http.Client{Timeout: timeout},
		retry:   retryCfg,
	}
}

func (c *GuardianClient) Name() string { return "The Guardian" }

type guardianResponse struct {
	Response struct {
		Results []guardianResult `json:"results"`
	} `json:"response"`
}

type guardianResult struct {
	ID                 string `json:"id"`
	WebTitle           string `json:"webTitle"`
	WebURL             string `json:"webUrl"`
	WebPublicationDate string `json:"webPublicationDate"`
	Fields             struct {
		Thumbnail string `json:"thumbnail"`
		TrailText string `json:"trailText"`
	} `json:"fields"`
}

// Fetch queries the Guardian search API. A missing API key disables the
// source silently: zero items, no error.
func (c *GuardianClient) Fetch(ctx context.Context) ([]news.Article, error) {
	if c.apiKey == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("q", "artificial intelligence")
	params.Set("show-fields", "thumbnail,trailText")
	params.Set("page-size", "30")
	params.Set("api-key", c.apiKey)
	endpoint := c.baseURL + "/search?" + params.Encode()

	var payload guardianResponse
	err := retry.WithRetry(ctx, c.retry, func() error {
		return getJSON(ctx, c.client, endpoint, &payload)
	})
	if err != nil {
		return nil, fmt.Errorf("guardian: %w", err)
	}

	articles := make([]news.Article, 0, len(payload.Response.Results))
	for _, item := range payload.Response.Results {
		// trailText arrives as an HTML fragment
		description := sanitize.Strip(item.Fields.TrailText)
		if !news.IsAIRelated(item.WebTitle, description) {
			metrics.Global.IncrementRelevanceRejected()
			continue
		}
		articles = append(articles, c.normalize(item, description))
	}
	return articles, nil
}

func (c *GuardianClient) normalize(item guardianResult, description string) news.Article {
	a := news.Article{
		ID:          item.ID,
		Title:       item.WebTitle,
		Description: description,
		URL:         item.WebURL,
		Image:       item.Fields.Thumbnail,
		Source:      c.Name(),
		PublishedAt: item.WebPublicationDate,
	}

	if a.Title == "" {
		a.Title = news.DefaultTitle
	}
	if a.Description == "" {
		a.Description = guardianDefaultDescription
	}
	if a.Image == "" {
		a.Image = news.DefaultImage
	}
	if a.PublishedAt == "" {
		a.PublishedAt = news.NowTimestamp()
	}
	a.Category = news.Categorize(item.WebTitle, description)

	return a
}
