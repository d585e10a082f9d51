package normalize

import (
	"reflect"
	"testing"

	"github.com/savelyev/oddsfeed/internal/pkg/enums"
)

func TestRecognizeSport(t *testing.T) {
	r := NewRecognizer(DefaultDictionaries())

	tests := []struct {
		text   string
		want   enums.Sport
		wantOK bool
	}{
		{"Lakers vs Warriors - NBA Game Tonight", enums.Basketball, true},
		{"NFL Week 3 betting preview", enums.Football, true},
		{"College basketball picks", enums.Basketball, true},
		{"MLB odds for tonight", enums.Baseball, true},
		{"NHL season openers", enums.Hockey, true},
		{"Premier League title race", enums.Soccer, true},
		{"UFC 300 main card odds", enums.MMA, true},
		// "nba" is declared before "nfl": first dictionary match wins
		{"NBA and NFL doubleheader", enums.Basketball, true},
		{"Stock market closes higher", enums.Unknown, false},
		{"", enums.Unknown, false},
	}
	for _, tt := range tests {
		got, ok := r.RecognizeSport(tt.text)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("RecognizeSport(%q) = (%q, %v), want (%q, %v)",
				tt.text, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestRecognizeTeams(t *testing.T) {
	r := NewRecognizer(DefaultDictionaries())

	tests := []struct {
		text string
		want []string
	}{
		// Order follows dictionary declaration, not title order
		{"Warriors host the Lakers tonight", []string{"Lakers", "Warriors"}},
		{"Chiefs at Eagles rematch", []string{"Chiefs", "Eagles"}},
		// Two keywords mapping to one canonical name count once
		{"Mavs news: Mavericks sign a center", []string{"Mavericks"}},
		{"Sixers and 76ers fans agree", []string{"76ers"}},
		{"No teams mentioned here", nil},
		{"", nil},
	}
	for _, tt := range tests {
		got := r.RecognizeTeams(tt.text)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("RecognizeTeams(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestRecognizeTeamsCaseInsensitive(t *testing.T) {
	r := NewRecognizer(DefaultDictionaries())

	got := r.RecognizeTeams("LAKERS VS WARRIORS - NBA GAME TONIGHT")
	want := []string{"Lakers", "Warriors"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RecognizeTeams(upper) = %v, want %v", got, want)
	}
}
