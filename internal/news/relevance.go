package news

import (
	"regexp"
	"strings"
)

// AI-domain keywords for the relevance filter. Phrases and longer tokens
// match as plain substrings; tokens of three characters or less go through
// a word-boundary match so "ai" does not hit inside "said" or "daily".
var aiKeywords = []string{
	"ai",
	"artificial intelligence",
	"machine learning",
	"deep learning",
	"neural network",
	"chatgpt",
	"claude",
	"gemini",
	"openai",
	"anthropic",
	"llm",
	"large language model",
	"generative",
	"gpt",
	"copilot",
	"robotics",
}

var shortTokenPatterns = buildShortTokenPatterns(aiKeywords)

func buildShortTokenPatterns(keywords []string) map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(keywords))
	for _, k := range keywords {
		if len(k) <= 3 && !strings.Contains(k, " ") {
			patterns[k] = regexp.MustCompile(`\b` + regexp.QuoteMeta(k) + `\b`)
		}
	}
	return patterns
}

// IsAIRelated reports whether title+description mention at least one
// AI-domain keyword. Case-insensitive.
func IsAIRelated(title, description string) bool {
	text := strings.ToLower(title + " " + description)
	for _, k := range aiKeywords {
		if re, ok := shortTokenPatterns[k]; ok {
			if re.MatchString(text) {
				return true
			}
			continue
		}
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
