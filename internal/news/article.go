package news

import "time"

// Default values substituted by the normalizers when a provider omits a field.
const (
	DefaultTitle       = "No Title"
	DefaultDescription = "No description available."
	DefaultImage       = "https://images.unsplash.com/photo-1677442136019-21780ecad995?w=800"
)

// Article is the unified record every provider response is mapped into.
// Once the pipeline has produced the aggregated set, articles are never
// mutated again for the rest of the request.
type Article struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Image       string `json:"image"`
	Source      string `json:"source"`
	Category    string `json:"category"`
	PublishedAt string `json:"publishedAt"`
}

// PublishedTime parses the PublishedAt timestamp. Returns the zero time if
// the value does not parse; normalizers default missing dates to now, so in
// practice this only happens for hand-built articles.
func (a Article) PublishedTime() time.Time {
	t, err := time.Parse(time.RFC3339, a.PublishedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}

// NowTimestamp formats the current time the way PublishedAt is stored.
func NowTimestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
