package normalize

import (
	"reflect"
	"testing"

	"github.com/savelyev/oddsfeed/internal/pkg/models"
)

func TestDeriveSnippets(t *testing.T) {
	sd := NewSnippetDeriver(DefaultDictionaries())

	bundle := models.RawArticleBundle{
		Paragraphs: []string{
			"The Bills are on a 7-2 run against the spread this season.",
			"Our best bet is Buffalo -2.5 at home.",
			"Buffalo holds a clear edge in the trenches.",
			"Nothing noteworthy happened at practice.",
		},
		Lists: [][]string{
			{"Josh Allen is questionable with an ankle sprain."},
		},
	}

	got := sd.Derive(bundle)

	wantTrends := []string{"The Bills are on a 7-2 run against the spread this season."}
	if !reflect.DeepEqual(got.Trends, wantTrends) {
		t.Errorf("Derive trends = %v, want %v", got.Trends, wantTrends)
	}
	wantPicks := []string{"Our best bet is Buffalo -2.5 at home."}
	if !reflect.DeepEqual(got.Picks, wantPicks) {
		t.Errorf("Derive picks = %v, want %v", got.Picks, wantPicks)
	}
	wantAnalysis := []string{"Buffalo holds a clear edge in the trenches."}
	if !reflect.DeepEqual(got.Analysis, wantAnalysis) {
		t.Errorf("Derive analysis = %v, want %v", got.Analysis, wantAnalysis)
	}
	wantInsights := []string{"Josh Allen is questionable with an ankle sprain."}
	if !reflect.DeepEqual(got.Insights, wantInsights) {
		t.Errorf("Derive insights = %v, want %v", got.Insights, wantInsights)
	}
}

func TestDeriveSnippetsIndependentScans(t *testing.T) {
	sd := NewSnippetDeriver(DefaultDictionaries())

	// One sentence hits both a trend keyword and a pick keyword.
	bundle := models.RawArticleBundle{
		Paragraphs: []string{"Pick the Celtics to extend their home streak."},
	}

	got := sd.Derive(bundle)
	if len(got.Trends) != 1 || len(got.Picks) != 1 {
		t.Errorf("Derive() = trends %v picks %v, want the sentence in both", got.Trends, got.Picks)
	}
}

func TestDeriveSnippetsCaseInsensitive(t *testing.T) {
	sd := NewSnippetDeriver(DefaultDictionaries())

	bundle := models.RawArticleBundle{
		Paragraphs: []string{"PREDICTION: Rangers win in regulation."},
	}

	got := sd.Derive(bundle)
	if len(got.Picks) != 1 {
		t.Errorf("Derive picks = %v, want one entry", got.Picks)
	}
}

func TestDeriveSnippetsEmptyBundle(t *testing.T) {
	sd := NewSnippetDeriver(DefaultDictionaries())

	got := sd.Derive(models.RawArticleBundle{})
	if !reflect.DeepEqual(got, Snippets{}) {
		t.Errorf("Derive(empty) = %v, want zero value", got)
	}
}
