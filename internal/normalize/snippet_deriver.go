package normalize

import (
	"strings"

	"github.com/savelyev/oddsfeed/internal/pkg/models"
)

// Snippets are the derived editorial collections of one article, later
// cleaned by the sanitizer like any other collection.
type Snippets struct {
	Trends   []string
	Picks    []string
	Analysis []string
	Insights []string
}

// SnippetDeriver routes paragraphs and list items into editorial collections
// by keyword match. The four category scans are independent, so one sentence
// may land in several collections.
type SnippetDeriver struct {
	trends   []string
	picks    []string
	analysis []string
	insights []string
}

func NewSnippetDeriver(d Dictionaries) *SnippetDeriver {
	return &SnippetDeriver{
		trends:   lowerAll(d.Trends),
		picks:    lowerAll(d.Picks),
		analysis: lowerAll(d.Analysis),
		insights: lowerAll(d.Insights),
	}
}

// Derive scans the bundle's paragraphs, then its list items, in document
// order. Matching is case-insensitive substring; output order is input order.
func (sd *SnippetDeriver) Derive(bundle models.RawArticleBundle) Snippets {
	candidates := make([]string, 0, len(bundle.Paragraphs))
	candidates = append(candidates, bundle.Paragraphs...)
	for _, list := range bundle.Lists {
		candidates = append(candidates, list...)
	}

	var out Snippets
	for _, c := range candidates {
		lower := strings.ToLower(c)
		if containsAny(lower, sd.trends) {
			out.Trends = append(out.Trends, c)
		}
		if containsAny(lower, sd.picks) {
			out.Picks = append(out.Picks, c)
		}
		if containsAny(lower, sd.analysis) {
			out.Analysis = append(out.Analysis, c)
		}
		if containsAny(lower, sd.insights) {
			out.Insights = append(out.Insights, c)
		}
	}
	return out
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func lowerAll(keywords []string) []string {
	out := make([]string, len(keywords))
	for i, kw := range keywords {
		out[i] = strings.ToLower(kw)
	}
	return out
}
