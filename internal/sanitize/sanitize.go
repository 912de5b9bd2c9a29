// Package sanitize cleans provider-supplied description fields. Guardian
// trailText and RSS descriptions regularly carry HTML markup that must not
// leak into the unified article set or the keyword matchers.
package sanitize

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// Strip removes HTML markup and collapses whitespace. Plain text passes
// through untouched apart from trimming.
func Strip(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || !strings.Contains(s, "<") {
		return collapseWhitespace(s)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		// Malformed markup: fall back to a crude tag strip
		return collapseWhitespace(tagPattern.ReplaceAllString(s, " "))
	}

	return collapseWhitespace(doc.Text())
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
