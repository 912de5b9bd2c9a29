package metrics

import (
	"sync"
	"time"
)

// Metrics tracks pipeline and serving counters for /metrics and /health.
type Metrics struct {
	mu sync.RWMutex

	// Counters
	ArticlesFetched    int64
	SourceFailures     int64
	DuplicatesFiltered int64
	RelevanceRejected  int64
	RequestsServed     int64
	PlaceholderServed  int64
	DigestsGenerated   int64

	// Timings
	LastFetchTime    time.Duration
	AverageFetchTime time.Duration
	totalFetchTime   time.Duration
	fetchCount       int64

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) AddArticlesFetched(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesFetched += int64(n)
}

func (m *Metrics) IncrementSourceFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SourceFailures++
}

func (m *Metrics) IncrementDuplicatesFiltered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesFiltered++
}

func (m *Metrics) IncrementRelevanceRejected() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RelevanceRejected++
}

func (m *Metrics) IncrementRequestsServed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestsServed++
}

func (m *Metrics) IncrementPlaceholderServed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PlaceholderServed++
}

func (m *Metrics) IncrementDigestsGenerated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DigestsGenerated++
}

func (m *Metrics) RecordFetchTime(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastFetchTime = duration
	m.totalFetchTime += duration
	m.fetchCount++

	if m.fetchCount > 0 {
		m.AverageFetchTime = m.totalFetchTime / time.Duration(m.fetchCount)
	}
}

func (m *Metrics) SetLastRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"articles_fetched":      m.ArticlesFetched,
		"source_failures":       m.SourceFailures,
		"duplicates_filtered":   m.DuplicatesFiltered,
		"relevance_rejected":    m.RelevanceRejected,
		"requests_served":       m.RequestsServed,
		"placeholder_served":    m.PlaceholderServed,
		"digests_generated":     m.DigestsGenerated,
		"last_fetch_time_ms":    m.LastFetchTime.Milliseconds(),
		"average_fetch_time_ms": m.AverageFetchTime.Milliseconds(),
		"last_run_time":         m.LastRunTime.Format(time.RFC3339),
		"last_error_time":       m.LastErrorTime.Format(time.RFC3339),
		"last_error":            m.LastError,
		"is_healthy":            m.IsHealthy,
	}
}
