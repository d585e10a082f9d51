package models

import (
	"time"

	"github.com/savelyev/oddsfeed/internal/pkg/enums"
)

// Heading is one h1-h4 element extracted from an article page.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// RawTable is a generic HTML-table shape: headers plus string cell rows.
// Headers may be empty; interpretation then treats row 0 as headers.
type RawTable struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// RawArticleBundle is the per-article extraction result handed to the
// normalization pipeline. It is read-only input: the pipeline never mutates it.
type RawArticleBundle struct {
	Title      string     `json:"title"`
	URL        string     `json:"url"`
	PubDate    string     `json:"pub_date"`
	Category   string     `json:"category"`
	Text       string     `json:"text"`
	Tables     []RawTable `json:"tables"`
	Headings   []Heading  `json:"headings"`
	Paragraphs []string   `json:"paragraphs"`
	Lists      [][]string `json:"lists"`
}

// Annotation is an opaque enrichment result appended to an article after
// normalization. It never alters the normalized fields.
type Annotation struct {
	Provider  string    `json:"provider"`
	Summary   string    `json:"summary"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NormalizedArticle is the structured record produced per article.
// Created once by the normalizer; only Annotation may be attached later.
type NormalizedArticle struct {
	Title             string         `json:"title"`
	URL               string         `json:"url"`
	PubDate           string         `json:"pub_date"`
	Category          string         `json:"category"`
	Sport             enums.Sport    `json:"sport"`
	CleanedParagraphs []string       `json:"cleaned_paragraphs"`
	CleanedHeadings   []string       `json:"cleaned_headings"`
	CleanedLists      []string       `json:"cleaned_lists"`
	BettingTrends     []string       `json:"betting_trends"`
	Picks             []string       `json:"picks"`
	Analysis          []string       `json:"analysis"`
	KeyInsights       []string       `json:"key_insights"`
	Tables            []RawTable     `json:"tables"`
	OddsPatterns      []string       `json:"odds_patterns"`
	Odds              NormalizedOdds `json:"normalized_odds"`
	Error             string         `json:"error,omitempty"`
	Annotation        *Annotation    `json:"annotation,omitempty"`
}

// ChannelMeta is the feed-level metadata supplied by the RSS source.
type ChannelMeta struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

// FeedSnapshot is the full normalization result for one run.
// Always rebuilt from scratch; no incremental update.
type FeedSnapshot struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Link        string              `json:"link"`
	Items       []NormalizedArticle `json:"items"`
	LastUpdated time.Time           `json:"last_updated"`
}
