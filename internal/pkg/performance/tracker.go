package performance

import (
	"log/slog"
	"sync"
	"time"
)

// maxKeptRuns bounds the per-run history kept in memory.
const maxKeptRuns = 100

// Tracker accumulates timing metrics across feed runs
type Tracker struct {
	mu sync.RWMutex

	// Overall metrics
	TotalRuns     int
	TotalArticles int
	TotalWithOdds int
	TotalErrors   int

	// Timing metrics
	TotalDuration     time.Duration
	FeedFetchDuration time.Duration
	PageFetchDuration time.Duration
	NormalizeDuration time.Duration
	PublishDuration   time.Duration

	// Per-run metrics
	RunTimings []RunTiming
}

// RunTiming tracks one feed run
type RunTiming struct {
	StartedAt time.Time
	Articles  int
	WithOdds  int
	Errors    int
	FeedFetch time.Duration
	PageFetch time.Duration
	Normalize time.Duration
	Publish   time.Duration
	Total     time.Duration
}

var globalTracker = &Tracker{
	RunTimings: make([]RunTiming, 0, maxKeptRuns),
}

// GetTracker returns the global performance tracker
func GetTracker() *Tracker {
	return globalTracker
}

// Reset resets all metrics
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.TotalRuns = 0
	t.TotalArticles = 0
	t.TotalWithOdds = 0
	t.TotalErrors = 0
	t.TotalDuration = 0
	t.FeedFetchDuration = 0
	t.PageFetchDuration = 0
	t.NormalizeDuration = 0
	t.PublishDuration = 0
	t.RunTimings = t.RunTimings[:0]
}

// RecordRun records a complete feed run
func (t *Tracker) RecordRun(run RunTiming) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.TotalRuns++
	t.TotalArticles += run.Articles
	t.TotalWithOdds += run.WithOdds
	t.TotalErrors += run.Errors
	t.TotalDuration += run.Total
	t.FeedFetchDuration += run.FeedFetch
	t.PageFetchDuration += run.PageFetch
	t.NormalizeDuration += run.Normalize
	t.PublishDuration += run.Publish

	t.RunTimings = append(t.RunTimings, run)
	if len(t.RunTimings) > maxKeptRuns {
		t.RunTimings = t.RunTimings[len(t.RunTimings)-maxKeptRuns:]
	}
}

// PrintSummary prints a detailed performance summary
func (t *Tracker) PrintSummary() {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.TotalRuns == 0 {
		slog.Info("No performance data collected yet")
		return
	}

	runs := float64(t.TotalRuns)

	slog.Info("Overall Statistics",
		"total_runs", t.TotalRuns,
		"total_articles", t.TotalArticles,
		"avg_articles_per_run", float64(t.TotalArticles)/runs,
		"total_with_odds", t.TotalWithOdds,
		"total_errors", t.TotalErrors)

	avgTotal := t.TotalDuration / time.Duration(t.TotalRuns)
	avgFeedFetch := t.FeedFetchDuration / time.Duration(t.TotalRuns)
	avgPageFetch := t.PageFetchDuration / time.Duration(t.TotalRuns)
	avgNormalize := t.NormalizeDuration / time.Duration(t.TotalRuns)
	avgPublish := t.PublishDuration / time.Duration(t.TotalRuns)

	feedPercent := 0.0
	pagePercent := 0.0
	normalizePercent := 0.0
	publishPercent := 0.0
	if t.TotalDuration > 0 {
		feedPercent = float64(t.FeedFetchDuration) / float64(t.TotalDuration) * 100
		pagePercent = float64(t.PageFetchDuration) / float64(t.TotalDuration) * 100
		normalizePercent = float64(t.NormalizeDuration) / float64(t.TotalDuration) * 100
		publishPercent = float64(t.PublishDuration) / float64(t.TotalDuration) * 100
	}

	slog.Info("Timing Breakdown (average per run)",
		"feed_fetch", avgFeedFetch, "feed_fetch_percent", feedPercent,
		"page_fetch", avgPageFetch, "page_fetch_percent", pagePercent,
		"normalize", avgNormalize, "normalize_percent", normalizePercent,
		"publish", avgPublish, "publish_percent", publishPercent,
		"total", avgTotal)

	if len(t.RunTimings) > 0 {
		var slowest RunTiming
		for _, run := range t.RunTimings {
			if run.Total > slowest.Total {
				slowest = run
			}
		}
		slog.Info("Slowest Recent Run",
			"started_at", slowest.StartedAt.UTC().Format(time.RFC3339),
			"articles", slowest.Articles,
			"total", slowest.Total,
			"page_fetch", slowest.PageFetch)
	}
}
