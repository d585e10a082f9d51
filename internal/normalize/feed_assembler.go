package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/savelyev/oddsfeed/internal/pkg/models"
)

// maxShownProps caps the player-prop section of an item description.
const maxShownProps = 5

// FeedAssembler builds feed snapshots out of normalized articles.
// The clock is a field so tests can pin it.
type FeedAssembler struct {
	now func() time.Time
}

func NewFeedAssembler() *FeedAssembler {
	return &FeedAssembler{now: time.Now}
}

// AssembleFeed wraps the items into a full snapshot. LastUpdated is the most
// recent enrichment timestamp when any item carries an annotation, otherwise
// the assembly time.
func (a *FeedAssembler) AssembleFeed(meta models.ChannelMeta, items []models.NormalizedArticle) models.FeedSnapshot {
	var last time.Time
	for _, item := range items {
		if item.Annotation != nil && item.Annotation.UpdatedAt.After(last) {
			last = item.Annotation.UpdatedAt
		}
	}
	if last.IsZero() {
		last = a.now()
	}

	return models.FeedSnapshot{
		Title:       meta.Title,
		Description: meta.Description,
		Link:        meta.Link,
		Items:       items,
		LastUpdated: last,
	}
}

// DescribeItem renders one article's odds as a display line: teams, spreads,
// moneylines, total, player props, fighters, in that fixed order, with empty
// sections omitted. Presentation only; it never parses anything.
func DescribeItem(article models.NormalizedArticle) string {
	odds := article.Odds
	var sections []string

	if len(odds.Teams) > 0 {
		sections = append(sections, strings.Join(odds.Teams, " vs "))
	}

	if len(odds.Spread) > 0 {
		parts := make([]string, 0, len(odds.Spread))
		for _, s := range odds.Spread {
			parts = append(parts, fmt.Sprintf("%s %s (%s)", s.Team, s.Line, s.Odds))
		}
		sections = append(sections, "Spread: "+strings.Join(parts, ", "))
	}

	if len(odds.Moneyline) > 0 {
		parts := make([]string, 0, len(odds.Moneyline))
		for _, m := range odds.Moneyline {
			parts = append(parts, fmt.Sprintf("%s %s", m.Team, m.Odds))
		}
		sections = append(sections, "Moneyline: "+strings.Join(parts, ", "))
	}

	if odds.Total != nil {
		sections = append(sections, fmt.Sprintf("Total: %s (O %s / U %s)",
			odds.Total.Line, odds.Total.Over, odds.Total.Under))
	}

	if len(odds.PlayerProps) > 0 {
		shown := odds.PlayerProps
		extra := 0
		if len(shown) > maxShownProps {
			extra = len(shown) - maxShownProps
			shown = shown[:maxShownProps]
		}
		parts := make([]string, 0, len(shown))
		for _, p := range shown {
			parts = append(parts, fmt.Sprintf("%s (%s) %s %s", p.Player, p.Team, p.Prop, p.Odds))
		}
		section := "Props: " + strings.Join(parts, ", ")
		if extra > 0 {
			section += fmt.Sprintf(" and %d more", extra)
		}
		sections = append(sections, section)
	}

	if len(odds.Fighters) > 0 {
		parts := make([]string, 0, len(odds.Fighters))
		for _, f := range odds.Fighters {
			parts = append(parts, fmt.Sprintf("%s %s", f.Name, f.Odds))
		}
		sections = append(sections, "Fight: "+strings.Join(parts, ", "))
	}

	return strings.Join(sections, " | ")
}
