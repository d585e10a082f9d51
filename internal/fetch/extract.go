package fetch

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/savelyev/oddsfeed/internal/pkg/models"
)

// ExtractBundle parses rendered article HTML into a raw bundle for the
// normalization pipeline: tables, h1-h4 headings, paragraphs and list items,
// all whitespace-normalized. Text is the title, headings and paragraphs
// joined, the block the odds-pattern scans run over. goquery is best-effort
// on malformed markup; sparse pages yield sparse bundles, not errors.
func ExtractBundle(title, pageURL, html string) (models.RawArticleBundle, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return models.RawArticleBundle{}, fmt.Errorf("parsing article html: %w", err)
	}

	bundle := models.RawArticleBundle{
		Title: title,
		URL:   pageURL,
	}

	doc.Find("table").Each(func(_ int, sel *goquery.Selection) {
		table := extractTable(sel)
		if len(table.Headers) > 0 || len(table.Rows) > 0 {
			bundle.Tables = append(bundle.Tables, table)
		}
	})

	doc.Find("h1,h2,h3,h4").Each(func(_ int, sel *goquery.Selection) {
		text := normalizeText(sel.Text())
		if text == "" {
			return
		}
		level := int(goquery.NodeName(sel)[1] - '0')
		bundle.Headings = append(bundle.Headings, models.Heading{Level: level, Text: text})
	})

	doc.Find("p").Each(func(_ int, sel *goquery.Selection) {
		if text := normalizeText(sel.Text()); text != "" {
			bundle.Paragraphs = append(bundle.Paragraphs, text)
		}
	})

	doc.Find("ul,ol").Each(func(_ int, sel *goquery.Selection) {
		var items []string
		sel.Find("li").Each(func(_ int, li *goquery.Selection) {
			if text := normalizeText(li.Text()); text != "" {
				items = append(items, text)
			}
		})
		if len(items) > 0 {
			bundle.Lists = append(bundle.Lists, items)
		}
	})

	parts := make([]string, 0, 1+len(bundle.Headings)+len(bundle.Paragraphs))
	if title != "" {
		parts = append(parts, title)
	}
	for _, h := range bundle.Headings {
		parts = append(parts, h.Text)
	}
	parts = append(parts, bundle.Paragraphs...)
	bundle.Text = strings.Join(parts, "\n")

	return bundle, nil
}

// extractTable reads headers from thead cells, falling back to the first row
// when the table has no thead. Cell text is whitespace-normalized.
func extractTable(sel *goquery.Selection) models.RawTable {
	var table models.RawTable

	sel.Find("thead tr th").Each(func(_ int, th *goquery.Selection) {
		table.Headers = append(table.Headers, normalizeText(th.Text()))
	})

	rowSel := sel.Find("tbody tr")
	if rowSel.Length() == 0 {
		rowSel = sel.Find("tr").Not("thead tr")
	}

	var rows [][]string
	rowSel.Each(func(_ int, tr *goquery.Selection) {
		var row []string
		tr.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
			row = append(row, normalizeText(cell.Text()))
		})
		if len(row) > 0 {
			rows = append(rows, row)
		}
	})

	if len(table.Headers) == 0 && len(rows) > 0 {
		table.Headers = rows[0]
		rows = rows[1:]
	}
	table.Rows = rows
	return table
}

// normalizeText trims each line and joins non-empty lines with single spaces.
func normalizeText(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	scanner := bufio.NewScanner(strings.NewReader(input))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			b.WriteString(line)
			b.WriteString(" ")
		}
	}
	return strings.TrimSpace(b.String())
}
