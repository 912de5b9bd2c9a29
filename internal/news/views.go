package news

import "time"

// DefaultTrendingLimit caps the trending view when callers pass no limit.
const DefaultTrendingLimit = 6

// Trending returns the articles published within the last 24 hours, at most
// limit of them, keeping the order of the input slice. The input is assumed
// already sorted newest first by the pipeline. Pure: never mutates articles.
func Trending(articles []Article, limit int) []Article {
	if limit <= 0 {
		limit = DefaultTrendingLimit
	}

	cutoff := time.Now().Add(-24 * time.Hour)
	out := make([]Article, 0, limit)
	for _, a := range articles {
		if !a.PublishedTime().After(cutoff) {
			continue
		}
		out = append(out, a)
		if len(out) >= limit {
			break
		}
	}
	return out
}

// ByCategory returns the articles whose category exactly equals the given
// label. Unknown labels yield an empty slice, not an error.
func ByCategory(articles []Article, category string) []Article {
	out := make([]Article, 0)
	for _, a := range articles {
		if a.Category == category {
			out = append(out, a)
		}
	}
	return out
}
