package normalize

import (
	"fmt"
	"log/slog"

	"github.com/savelyev/oddsfeed/internal/pkg/models"
)

// Normalizer converts raw article bundles into normalized articles. It holds
// no mutable state: the same bundle always produces the same article, and
// bundles are never written to.
type Normalizer struct {
	recognizer *Recognizer
	sanitizer  *Sanitizer
	deriver    *SnippetDeriver
	logger     *slog.Logger
}

func NewNormalizer(d Dictionaries, logger *slog.Logger) (*Normalizer, error) {
	sanitizer, err := NewSanitizer(d.Junk)
	if err != nil {
		return nil, fmt.Errorf("building sanitizer: %w", err)
	}
	return &Normalizer{
		recognizer: NewRecognizer(d),
		sanitizer:  sanitizer,
		deriver:    NewSnippetDeriver(d),
		logger:     logger,
	}, nil
}

// NormalizeArticle runs the full pipeline over one bundle: entity recognition
// on the title, pattern extraction on the text, table interpretation over
// every table with entries accumulated across tables, fallback moneyline
// pairing, snippet derivation and sanitization of all seven collections.
// A panic inside the pipeline is contained here: the bundle comes back as an
// explicit error-marker article so one bad article never sinks the feed run.
func (n *Normalizer) NormalizeArticle(bundle models.RawArticleBundle) (article models.NormalizedArticle) {
	defer func() {
		if r := recover(); r != nil {
			n.logger.Error("article normalization failed",
				"url", bundle.URL,
				"panic", r)
			article = errorMarker(bundle, r)
		}
	}()

	sport, _ := n.recognizer.RecognizeSport(bundle.Title)
	teams := n.recognizer.RecognizeTeams(bundle.Title)
	patterns := ExtractOddsPatterns(bundle.Text)

	tableOdds := make([]TableOdds, 0, len(bundle.Tables))
	for _, table := range bundle.Tables {
		tableOdds = append(tableOdds, InterpretTable(table))
	}

	snippets := n.deriver.Derive(bundle)

	headings := make([]string, 0, len(bundle.Headings))
	for _, h := range bundle.Headings {
		headings = append(headings, h.Text)
	}
	var listItems []string
	for _, list := range bundle.Lists {
		listItems = append(listItems, list...)
	}

	return models.NormalizedArticle{
		Title:             bundle.Title,
		URL:               bundle.URL,
		PubDate:           bundle.PubDate,
		Category:          bundle.Category,
		Sport:             sport,
		CleanedParagraphs: n.sanitizer.Sanitize(bundle.Paragraphs, minTextLen),
		CleanedHeadings:   n.sanitizer.Sanitize(headings, minHeadingLen),
		CleanedLists:      n.sanitizer.Sanitize(listItems, minTextLen),
		BettingTrends:     n.sanitizer.Sanitize(snippets.Trends, minTextLen),
		Picks:             n.sanitizer.Sanitize(snippets.Picks, minTextLen),
		Analysis:          n.sanitizer.Sanitize(snippets.Analysis, minTextLen),
		KeyInsights:       n.sanitizer.Sanitize(snippets.Insights, minTextLen),
		Tables:            bundle.Tables,
		OddsPatterns:      patterns,
		Odds:              BuildOdds(teams, tableOdds, patterns),
	}
}

// errorMarker represents a failed article without dropping it from the feed,
// keeping item counts stable for callers.
func errorMarker(bundle models.RawArticleBundle, cause any) models.NormalizedArticle {
	return models.NormalizedArticle{
		Title: bundle.Title,
		URL:   bundle.URL,
		Error: fmt.Sprintf("normalization failed: %v", cause),
	}
}
