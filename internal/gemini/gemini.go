package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/Krsh-hub/AITians-News/internal/news"
)

const digestModel = "gemini-1.5-flash"

// Client wraps the Gemini API for the trending-digest feature.
type Client struct {
	client *genai.Client
}

func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{client: client}, nil
}

func (c *Client) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

// SummarizeTrending produces a short reader-facing digest of the trending
// articles.
func (c *Client) SummarizeTrending(ctx context.Context, articles []news.Article) (string, error) {
	if len(articles) == 0 {
		return "", fmt.Errorf("no articles to summarize")
	}

	model := c.client.GenerativeModel(digestModel)
	prompt := buildDigestPrompt(articles)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate digest: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini")
	}

	text := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("empty digest from Gemini")
	}
	return text, nil
}

func buildDigestPrompt(articles []news.Article) string {
	var b strings.Builder
	b.WriteString("Write a short digest (3-5 sentences) of today's AI news for a general audience.\n")
	b.WriteString("Plain text only, no markdown, no preamble. Base it strictly on these headlines:\n\n")

	for i, a := range articles {
		fmt.Fprintf(&b, "%d. %s", i+1, a.Title)
		if a.Description != "" && a.Description != news.DefaultDescription {
			fmt.Fprintf(&b, ": %s", truncate(a.Description, 200))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
