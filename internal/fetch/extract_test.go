package fetch

import (
	"reflect"
	"strings"
	"testing"

	"github.com/savelyev/oddsfeed/internal/pkg/models"
)

const articleHTML = `
<div class="article">
  <h2>Betting Preview</h2>
  <p>The Chiefs are favored by -2.5 points on the road.</p>
  <p>
    Kansas City has covered in
    five straight games.
  </p>
  <ul>
    <li>Patrick Mahomes: 285.5 passing yards</li>
    <li>Travis Kelce: 5.5 receptions</li>
  </ul>
  <table>
    <thead>
      <tr><th>Team</th><th>Spread</th><th>Moneyline</th><th>Total</th></tr>
    </thead>
    <tbody>
      <tr><td>Chiefs</td><td>-2.5 (-110)</td><td>-140</td><td>48.5</td></tr>
      <tr><td>Bills</td><td>+2.5 (-110)</td><td>+120</td><td>48.5</td></tr>
    </tbody>
  </table>
</div>`

func TestExtractBundle(t *testing.T) {
	bundle, err := ExtractBundle("Chiefs at Bills", "https://www.oddsshark.com/nfl/chiefs-bills", articleHTML)
	if err != nil {
		t.Fatalf("ExtractBundle() error = %v", err)
	}

	if bundle.Title != "Chiefs at Bills" || bundle.URL != "https://www.oddsshark.com/nfl/chiefs-bills" {
		t.Errorf("ExtractBundle identity = %q %q", bundle.Title, bundle.URL)
	}

	wantHeadings := []models.Heading{{Level: 2, Text: "Betting Preview"}}
	if !reflect.DeepEqual(bundle.Headings, wantHeadings) {
		t.Errorf("ExtractBundle headings = %v, want %v", bundle.Headings, wantHeadings)
	}

	wantParagraphs := []string{
		"The Chiefs are favored by -2.5 points on the road.",
		"Kansas City has covered in five straight games.",
	}
	if !reflect.DeepEqual(bundle.Paragraphs, wantParagraphs) {
		t.Errorf("ExtractBundle paragraphs = %v, want %v", bundle.Paragraphs, wantParagraphs)
	}

	wantLists := [][]string{{
		"Patrick Mahomes: 285.5 passing yards",
		"Travis Kelce: 5.5 receptions",
	}}
	if !reflect.DeepEqual(bundle.Lists, wantLists) {
		t.Errorf("ExtractBundle lists = %v, want %v", bundle.Lists, wantLists)
	}

	if len(bundle.Tables) != 1 {
		t.Fatalf("ExtractBundle tables = %d, want 1", len(bundle.Tables))
	}
	table := bundle.Tables[0]
	if want := []string{"Team", "Spread", "Moneyline", "Total"}; !reflect.DeepEqual(table.Headers, want) {
		t.Errorf("ExtractBundle table headers = %v, want %v", table.Headers, want)
	}
	if want := []string{"Chiefs", "-2.5 (-110)", "-140", "48.5"}; !reflect.DeepEqual(table.Rows[0], want) {
		t.Errorf("ExtractBundle table row = %v, want %v", table.Rows[0], want)
	}

	for _, part := range []string{"Chiefs at Bills", "Betting Preview", "-2.5 points"} {
		if !strings.Contains(bundle.Text, part) {
			t.Errorf("ExtractBundle text missing %q", part)
		}
	}
}

func TestExtractBundleTableWithoutThead(t *testing.T) {
	html := `<table>
  <tr><th>Fighter</th><th>Odds</th></tr>
  <tr><td>Jon Jones</td><td>-300</td></tr>
  <tr><td>Stipe Miocic</td><td>+240</td></tr>
</table>`

	bundle, err := ExtractBundle("UFC 309 Odds", "https://www.oddsshark.com/ufc/309", html)
	if err != nil {
		t.Fatalf("ExtractBundle() error = %v", err)
	}
	if len(bundle.Tables) != 1 {
		t.Fatalf("ExtractBundle tables = %d, want 1", len(bundle.Tables))
	}

	table := bundle.Tables[0]
	if want := []string{"Fighter", "Odds"}; !reflect.DeepEqual(table.Headers, want) {
		t.Errorf("ExtractBundle headers = %v, want first row %v", table.Headers, want)
	}
	wantRows := [][]string{{"Jon Jones", "-300"}, {"Stipe Miocic", "+240"}}
	if !reflect.DeepEqual(table.Rows, wantRows) {
		t.Errorf("ExtractBundle rows = %v, want %v", table.Rows, wantRows)
	}
}

func TestExtractBundleSparsePage(t *testing.T) {
	bundle, err := ExtractBundle("Empty", "https://www.oddsshark.com/empty", "<div> </div>")
	if err != nil {
		t.Fatalf("ExtractBundle() error = %v", err)
	}
	if len(bundle.Tables) != 0 || len(bundle.Paragraphs) != 0 || len(bundle.Headings) != 0 {
		t.Errorf("ExtractBundle(sparse) = %+v, want empty sections", bundle)
	}
	if bundle.Text != "Empty" {
		t.Errorf("ExtractBundle text = %q, want title only", bundle.Text)
	}
}

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  plain  ", "plain"},
		{"line one\n   line two\n\n", "line one line two"},
		{"\n \n", ""},
		{"already clean", "already clean"},
	}

	for _, tt := range tests {
		if got := normalizeText(tt.in); got != tt.want {
			t.Errorf("normalizeText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
