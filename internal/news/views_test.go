package news

import (
	"testing"
	"time"
)

func TestTrending(t *testing.T) {
	now := time.Now()
	articles := []Article{
		article("fresh 1", "s", now.Add(-1*time.Hour)),
		article("fresh 2", "s", now.Add(-2*time.Hour)),
		article("stale", "s", now.Add(-25*time.Hour)),
		article("fresh 3", "s", now.Add(-23*time.Hour)),
	}

	got := Trending(articles, 0)

	if len(got) != 3 {
		t.Fatalf("Trending() len = %d, want 3", len(got))
	}
	cutoff := now.Add(-24 * time.Hour)
	for _, a := range got {
		if !a.PublishedTime().After(cutoff) {
			t.Errorf("Trending() returned stale article %q (%s)", a.Title, a.PublishedAt)
		}
	}
}

func TestTrendingLimit(t *testing.T) {
	now := time.Now()
	var articles []Article
	for i := 0; i < 10; i++ {
		articles = append(articles, article(string(rune('a'+i)), "s", now.Add(-time.Duration(i)*time.Minute)))
	}

	if got := Trending(articles, 4); len(got) != 4 {
		t.Errorf("Trending(limit=4) len = %d, want 4", len(got))
	}
	// default limit kicks in for limit <= 0
	if got := Trending(articles, 0); len(got) != DefaultTrendingLimit {
		t.Errorf("Trending(limit=0) len = %d, want %d", len(got), DefaultTrendingLimit)
	}
}

func TestTrendingDoesNotMutateInput(t *testing.T) {
	now := time.Now()
	articles := []Article{
		article("a", "s", now),
		article("b", "s", now.Add(-time.Hour)),
	}
	before := make([]Article, len(articles))
	copy(before, articles)

	Trending(articles, 1)

	for i := range articles {
		if articles[i] != before[i] {
			t.Fatalf("Trending() mutated input at %d", i)
		}
	}
}

func TestByCategory(t *testing.T) {
	now := time.Now()
	a := article("tools news", "s", now)
	a.Category = "tools"
	b := article("policy news", "s", now)
	b.Category = "policy"
	articles := []Article{a, b}

	tests := []struct {
		name     string
		category string
		want     int
	}{
		{"matching label", "tools", 1},
		{"other label", "policy", 1},
		{"unknown label yields empty, not error", "sports", 0},
		{"exact match only", "Tools", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ByCategory(articles, tt.category)
			if got == nil {
				t.Fatal("ByCategory() returned nil, want empty slice")
			}
			if len(got) != tt.want {
				t.Errorf("ByCategory(%q) len = %d, want %d", tt.category, len(got), tt.want)
			}
		})
	}
}
