package normalize

import (
	"github.com/savelyev/oddsfeed/internal/pkg/models"
)

// A matchup is two sides; recognized team lists are capped accordingly.
const maxTeams = 2

// BuildOdds merges the per-table extractions of one article into a single
// NormalizedOdds. Spread, moneyline, prop and fighter entries accumulate in
// table order; the first total wins and later totals are ignored. When no
// table produced a moneyline, the fallback pairing over the raw odds
// patterns runs instead.
func BuildOdds(teams []string, tables []TableOdds, patterns []string) models.NormalizedOdds {
	if len(teams) > maxTeams {
		teams = teams[:maxTeams]
	}
	odds := models.NormalizedOdds{Teams: teams}

	for _, t := range tables {
		odds.Spread = append(odds.Spread, t.Spread...)
		odds.Moneyline = append(odds.Moneyline, t.Moneyline...)
		odds.PlayerProps = append(odds.PlayerProps, t.PlayerProps...)
		odds.Fighters = append(odds.Fighters, t.Fighters...)
		if odds.Total == nil && t.Total != nil {
			total := *t.Total
			odds.Total = &total
		}
	}

	if len(odds.Moneyline) == 0 {
		odds.Moneyline = fallbackMoneyline(&odds, patterns)
	}

	odds.KeyOdds = deriveKeyOdds(odds)
	return odds
}

// fallbackMoneyline pairs the first two bare American-odds patterns with the
// best available side names. It yields exactly two entries or none.
func fallbackMoneyline(odds *models.NormalizedOdds, patterns []string) []models.MoneylineEntry {
	var bare []string
	for _, p := range patterns {
		if isBareOdds(p) {
			bare = append(bare, p)
		}
	}
	if len(bare) < 2 {
		return nil
	}

	names := fallbackNames(odds)
	return []models.MoneylineEntry{
		{Team: names[0], Odds: bare[0]},
		{Team: names[1], Odds: bare[1]},
	}
}

// fallbackNames picks side names by priority: recognized teams, then fighter
// names, then player-prop players, then generic placeholders.
func fallbackNames(odds *models.NormalizedOdds) [2]string {
	if len(odds.Teams) >= 2 {
		return [2]string{odds.Teams[0], odds.Teams[1]}
	}
	if len(odds.Fighters) >= 2 {
		return [2]string{odds.Fighters[0].Name, odds.Fighters[1].Name}
	}
	if len(odds.PlayerProps) >= 2 {
		return [2]string{odds.PlayerProps[0].Player, odds.PlayerProps[1].Player}
	}
	return [2]string{"Team 1", "Team 2"}
}

// deriveKeyOdds flattens the structured entries into display-ready summaries.
func deriveKeyOdds(odds models.NormalizedOdds) []models.KeyOdd {
	var out []models.KeyOdd
	for _, s := range odds.Spread {
		out = append(out, models.KeyOdd{
			Type:        "spread",
			Description: s.Team + " " + s.Line,
			Value:       s.Odds,
		})
	}
	for _, m := range odds.Moneyline {
		out = append(out, models.KeyOdd{
			Type:        "moneyline",
			Description: m.Team,
			Value:       m.Odds,
		})
	}
	if odds.Total != nil {
		out = append(out, models.KeyOdd{
			Type:        "total",
			Description: "O/U " + odds.Total.Line,
			Value:       odds.Total.Over,
		})
	}
	return out
}
