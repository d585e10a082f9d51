package normalize

import (
	"strings"

	"github.com/savelyev/oddsfeed/internal/pkg/enums"
)

// Recognizer matches free text against the sport and team dictionaries.
// Matching is plain substring over lower-cased text: short keywords can
// false-positive on unrelated words, which is an accepted trade-off.
type Recognizer struct {
	sports []SportKeyword
	teams  []TeamKeyword
}

// NewRecognizer creates a recognizer over the given dictionaries.
func NewRecognizer(d Dictionaries) *Recognizer {
	return &Recognizer{
		sports: d.Sports,
		teams:  d.Teams,
	}
}

// RecognizeSport returns the first sport whose keyword occurs in text.
// Scan order is dictionary declaration order; at most one classification.
// ok is false when no keyword matches (not an error: the article is simply
// not recognizable as a sports article).
func (r *Recognizer) RecognizeSport(text string) (sport enums.Sport, ok bool) {
	lower := strings.ToLower(text)
	for _, sk := range r.sports {
		if strings.Contains(lower, sk.Keyword) {
			return sk.Sport, true
		}
	}
	return enums.Unknown, false
}

// RecognizeTeams returns the distinct canonical team names whose keyword occurs
// in text, in dictionary declaration order. Two keywords mapping to the same
// canonical name count once.
func (r *Recognizer) RecognizeTeams(text string) []string {
	lower := strings.ToLower(text)
	var teams []string
	seen := make(map[string]bool)
	for _, tk := range r.teams {
		if !strings.Contains(lower, tk.Keyword) {
			continue
		}
		if seen[tk.Team] {
			continue
		}
		seen[tk.Team] = true
		teams = append(teams, tk.Team)
	}
	return teams
}
