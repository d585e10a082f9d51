package models

// SpreadEntry represents one team's point-spread line from an odds table.
// Line is a signed decimal string ("-2.5"), Odds a signed integer string ("-110").
type SpreadEntry struct {
	Team string `json:"team"`
	Line string `json:"line"`
	Odds string `json:"odds"`
}

// MoneylineEntry represents a straight-win price for a team or named entity.
type MoneylineEntry struct {
	Team string `json:"team"`
	Odds string `json:"odds"`
}

// TotalEntry represents an over/under line. Over/Under odds are not present in
// the source tables and default to a fixed "-110" placeholder.
type TotalEntry struct {
	Line  string `json:"line"`
	Over  string `json:"over"`
	Under string `json:"under"`
}

// PlayerPropEntry represents a player proposition line.
type PlayerPropEntry struct {
	Player string `json:"player"`
	Team   string `json:"team"`
	Prop   string `json:"prop"`
	Odds   string `json:"odds"`
}

// FighterEntry represents a fight-odds line (name and odds taken verbatim).
type FighterEntry struct {
	Name string `json:"name"`
	Odds string `json:"odds"`
}

// KeyOdd is a flat display summary of one extracted line.
type KeyOdd struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Value       string `json:"value"`
}

// NormalizedOdds is the structured odds record for one article.
// Teams holds at most two entries, sourced from the title dictionary match only.
type NormalizedOdds struct {
	Teams       []string          `json:"teams"`
	Spread      []SpreadEntry     `json:"spread"`
	Moneyline   []MoneylineEntry  `json:"moneyline"`
	Total       *TotalEntry       `json:"total"`
	PlayerProps []PlayerPropEntry `json:"player_props"`
	Fighters    []FighterEntry    `json:"fighters"`
	KeyOdds     []KeyOdd          `json:"key_odds"`
}

// HasLines reports whether any odds were extracted for the article.
func (o *NormalizedOdds) HasLines() bool {
	return len(o.Spread) > 0 || len(o.Moneyline) > 0 || o.Total != nil ||
		len(o.PlayerProps) > 0 || len(o.Fighters) > 0
}
