package normalize

import (
	"strings"
	"testing"
	"time"

	"github.com/savelyev/oddsfeed/internal/pkg/models"
)

func TestAssembleFeed(t *testing.T) {
	fixed := time.Date(2025, 1, 13, 18, 0, 0, 0, time.UTC)
	a := &FeedAssembler{now: func() time.Time { return fixed }}

	meta := models.ChannelMeta{
		Title:       "Odds Shark Articles",
		Description: "Latest betting articles",
		Link:        "https://www.oddsshark.com",
	}
	items := []models.NormalizedArticle{{Title: "Lakers vs Warriors"}}

	got := a.AssembleFeed(meta, items)

	if got.Title != meta.Title || got.Link != meta.Link {
		t.Errorf("AssembleFeed meta = %q %q, want %q %q", got.Title, got.Link, meta.Title, meta.Link)
	}
	if len(got.Items) != 1 {
		t.Errorf("AssembleFeed items = %d, want 1", len(got.Items))
	}
	if !got.LastUpdated.Equal(fixed) {
		t.Errorf("AssembleFeed lastUpdated = %v, want assembly time %v", got.LastUpdated, fixed)
	}
}

func TestAssembleFeedUsesLatestAnnotationTime(t *testing.T) {
	a := NewFeedAssembler()

	early := time.Date(2025, 1, 13, 10, 0, 0, 0, time.UTC)
	late := time.Date(2025, 1, 13, 12, 30, 0, 0, time.UTC)
	items := []models.NormalizedArticle{
		{Annotation: &models.Annotation{Provider: "mock", UpdatedAt: early}},
		{},
		{Annotation: &models.Annotation{Provider: "mock", UpdatedAt: late}},
	}

	got := a.AssembleFeed(models.ChannelMeta{}, items)
	if !got.LastUpdated.Equal(late) {
		t.Errorf("AssembleFeed lastUpdated = %v, want %v", got.LastUpdated, late)
	}
}

func TestDescribeItem(t *testing.T) {
	article := models.NormalizedArticle{
		Odds: models.NormalizedOdds{
			Teams: []string{"Chiefs", "Bills"},
			Spread: []models.SpreadEntry{
				{Team: "Chiefs", Line: "-2.5", Odds: "-110"},
			},
			Moneyline: []models.MoneylineEntry{
				{Team: "Chiefs", Odds: "-140"},
				{Team: "Bills", Odds: "+120"},
			},
			Total: &models.TotalEntry{Line: "48.5", Over: "-110", Under: "-110"},
		},
	}

	got := DescribeItem(article)
	want := "Chiefs vs Bills | Spread: Chiefs -2.5 (-110) | " +
		"Moneyline: Chiefs -140, Bills +120 | Total: 48.5 (O -110 / U -110)"
	if got != want {
		t.Errorf("DescribeItem() = %q, want %q", got, want)
	}
}

func TestDescribeItemOmitsEmptySections(t *testing.T) {
	article := models.NormalizedArticle{
		Odds: models.NormalizedOdds{
			Fighters: []models.FighterEntry{
				{Name: "Jon Jones", Odds: "-300"},
				{Name: "Stipe Miocic", Odds: "+240"},
			},
		},
	}

	got := DescribeItem(article)
	want := "Fight: Jon Jones -300, Stipe Miocic +240"
	if got != want {
		t.Errorf("DescribeItem() = %q, want %q", got, want)
	}

	if got := DescribeItem(models.NormalizedArticle{}); got != "" {
		t.Errorf("DescribeItem(empty) = %q, want empty", got)
	}
}

func TestDescribeItemCapsPlayerProps(t *testing.T) {
	props := make([]models.PlayerPropEntry, 7)
	for i := range props {
		props[i] = models.PlayerPropEntry{
			Player: "Player " + string(rune('A'+i)),
			Team:   "Team",
			Prop:   "Points",
			Odds:   "-110",
		}
	}
	article := models.NormalizedArticle{
		Odds: models.NormalizedOdds{PlayerProps: props},
	}

	got := DescribeItem(article)
	if !strings.HasSuffix(got, "and 2 more") {
		t.Errorf("DescribeItem() = %q, want suffix %q", got, "and 2 more")
	}
	if strings.Contains(got, "Player F") {
		t.Errorf("DescribeItem() = %q, shows more than %d props", got, maxShownProps)
	}
}
