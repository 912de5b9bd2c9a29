package news

import (
	"regexp"
	"strings"
)

// CategoryGeneral is the catch-all label assigned when no rule matches.
const CategoryGeneral = "general"

// Categories lists every label the categorizer can assign, in rule order
// with the catch-all last.
var Categories = []string{
	"finance",
	"education",
	"startups",
	"tools",
	"policy",
	"medical",
	"environment",
	"media",
	"business",
	CategoryGeneral,
}

type categoryRule struct {
	label   string
	pattern *regexp.Regexp
}

// Rule order is significant: an article about an AI startup launching a
// payment tool matches finance, startups and tools, and must resolve to
// finance because that rule is listed first. Do not reorder.
var categoryRules = []categoryRule{
	{"finance", regexp.MustCompile(`finance|banking|fintech|payment`)},
	{"education", regexp.MustCompile(`education|learning|student|course`)},
	{"startups", regexp.MustCompile(`startup|funding|venture|founder`)},
	{"tools", regexp.MustCompile(`tool|product|launch|chatgpt|claude`)},
	{"policy", regexp.MustCompile(`regulation|policy|law|governance`)},
	{"medical", regexp.MustCompile(`health|medical|drug|patient|diagnos`)},
	{"environment", regexp.MustCompile(`climate|energy|environment|sustainab`)},
	{"media", regexp.MustCompile(`content|media|creative|video|image`)},
	{"business", regexp.MustCompile(`business|enterprise|company`)},
}

// Categorize assigns exactly one label to the article text. First matching
// rule wins; no rule means "general".
func Categorize(title, description string) string {
	text := strings.ToLower(title + " " + description)
	for _, rule := range categoryRules {
		if rule.pattern.MatchString(text) {
			return rule.label
		}
	}
	return CategoryGeneral
}
