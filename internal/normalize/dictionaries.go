package normalize

import (
	"github.com/savelyev/oddsfeed/internal/pkg/config"
	"github.com/savelyev/oddsfeed/internal/pkg/enums"
)

// SportKeyword maps one lower-case surface form to a canonical sport.
// Slice order is the recognizer's scan order: first match wins.
type SportKeyword struct {
	Keyword string
	Sport   enums.Sport
}

// TeamKeyword maps one lower-case surface form to a canonical team display name.
// Several keywords may map to the same canonical name.
type TeamKeyword struct {
	Keyword string
	Team    string
}

// Dictionaries is the static recognition data injected into the pipeline.
// Immutable after construction; per-deployment overrides come from config.
type Dictionaries struct {
	Sports   []SportKeyword
	Teams    []TeamKeyword
	Junk     []string // case-insensitive regex sources for boilerplate removal
	Trends   []string
	Picks    []string
	Analysis []string
	Insights []string
}

var defaultSportKeywords = []SportKeyword{
	{"nba", enums.Basketball},
	{"basketball", enums.Basketball},
	{"nfl", enums.Football},
	{"football", enums.Football},
	{"mlb", enums.Baseball},
	{"baseball", enums.Baseball},
	{"nhl", enums.Hockey},
	{"hockey", enums.Hockey},
	{"soccer", enums.Soccer},
	{"premier league", enums.Soccer},
	{"mls", enums.Soccer},
	{"ufc", enums.MMA},
	{"mma", enums.MMA},
}

// Nicknames shared between leagues ("cardinals", "giants", "jets", "kings",
// "panthers", "rangers") are listed once; the canonical name is the nickname.
var defaultTeamKeywords = []TeamKeyword{
	// NBA
	{"bucks", "Bucks"},
	{"bulls", "Bulls"},
	{"cavaliers", "Cavaliers"},
	{"cavs", "Cavaliers"},
	{"celtics", "Celtics"},
	{"clippers", "Clippers"},
	{"grizzlies", "Grizzlies"},
	{"hawks", "Hawks"},
	{"heat", "Heat"},
	{"hornets", "Hornets"},
	{"jazz", "Jazz"},
	{"kings", "Kings"},
	{"knicks", "Knicks"},
	{"lakers", "Lakers"},
	{"magic", "Magic"},
	{"mavericks", "Mavericks"},
	{"mavs", "Mavericks"},
	{"nets", "Nets"},
	{"nuggets", "Nuggets"},
	{"pacers", "Pacers"},
	{"pelicans", "Pelicans"},
	{"pistons", "Pistons"},
	{"raptors", "Raptors"},
	{"rockets", "Rockets"},
	{"spurs", "Spurs"},
	{"suns", "Suns"},
	{"thunder", "Thunder"},
	{"timberwolves", "Timberwolves"},
	{"trail blazers", "Trail Blazers"},
	{"blazers", "Trail Blazers"},
	{"warriors", "Warriors"},
	{"wizards", "Wizards"},
	{"76ers", "76ers"},
	{"sixers", "76ers"},
	// NFL
	{"bears", "Bears"},
	{"bengals", "Bengals"},
	{"bills", "Bills"},
	{"broncos", "Broncos"},
	{"browns", "Browns"},
	{"buccaneers", "Buccaneers"},
	{"cardinals", "Cardinals"},
	{"chargers", "Chargers"},
	{"chiefs", "Chiefs"},
	{"colts", "Colts"},
	{"commanders", "Commanders"},
	{"cowboys", "Cowboys"},
	{"dolphins", "Dolphins"},
	{"eagles", "Eagles"},
	{"falcons", "Falcons"},
	{"49ers", "49ers"},
	{"niners", "49ers"},
	{"giants", "Giants"},
	{"jaguars", "Jaguars"},
	{"jets", "Jets"},
	{"lions", "Lions"},
	{"packers", "Packers"},
	{"panthers", "Panthers"},
	{"patriots", "Patriots"},
	{"raiders", "Raiders"},
	{"rams", "Rams"},
	{"ravens", "Ravens"},
	{"saints", "Saints"},
	{"seahawks", "Seahawks"},
	{"steelers", "Steelers"},
	{"texans", "Texans"},
	{"titans", "Titans"},
	{"vikings", "Vikings"},
	// MLB
	{"angels", "Angels"},
	{"astros", "Astros"},
	{"athletics", "Athletics"},
	{"blue jays", "Blue Jays"},
	{"braves", "Braves"},
	{"brewers", "Brewers"},
	{"cubs", "Cubs"},
	{"diamondbacks", "Diamondbacks"},
	{"dodgers", "Dodgers"},
	{"guardians", "Guardians"},
	{"mariners", "Mariners"},
	{"marlins", "Marlins"},
	{"mets", "Mets"},
	{"nationals", "Nationals"},
	{"orioles", "Orioles"},
	{"padres", "Padres"},
	{"phillies", "Phillies"},
	{"pirates", "Pirates"},
	{"rangers", "Rangers"},
	{"rays", "Rays"},
	{"red sox", "Red Sox"},
	{"reds", "Reds"},
	{"rockies", "Rockies"},
	{"royals", "Royals"},
	{"tigers", "Tigers"},
	{"twins", "Twins"},
	{"white sox", "White Sox"},
	{"yankees", "Yankees"},
	// NHL
	{"avalanche", "Avalanche"},
	{"blackhawks", "Blackhawks"},
	{"blue jackets", "Blue Jackets"},
	{"blues", "Blues"},
	{"bruins", "Bruins"},
	{"canadiens", "Canadiens"},
	{"canucks", "Canucks"},
	{"capitals", "Capitals"},
	{"devils", "Devils"},
	{"ducks", "Ducks"},
	{"flames", "Flames"},
	{"flyers", "Flyers"},
	{"golden knights", "Golden Knights"},
	{"hurricanes", "Hurricanes"},
	{"islanders", "Islanders"},
	{"kraken", "Kraken"},
	{"lightning", "Lightning"},
	{"maple leafs", "Maple Leafs"},
	{"oilers", "Oilers"},
	{"penguins", "Penguins"},
	{"predators", "Predators"},
	{"red wings", "Red Wings"},
	{"sabres", "Sabres"},
	{"senators", "Senators"},
	{"sharks", "Sharks"},
	{"stars", "Stars"},
	{"wild", "Wild"},
}

// defaultJunkPatterns covers the boilerplate categories seen on odds sites:
// responsible-gambling helplines, bonus-bet fine print, site disclaimers and
// navigation labels. The list is hand-curated and inherently incomplete.
var defaultJunkPatterns = []string{
	`gambling problem`,
	`1-800-gambler`,
	`call 1-800`,
	`call or text`,
	`problem gambl`,
	`responsible gaming`,
	`ncpgambling`,
	`gamblingtherapy`,
	`bonus bets?`,
	`must be 21`,
	`new customers? only`,
	`first bet`,
	`deposit required`,
	`wagering requirements?`,
	`promo code`,
	`sign.?up offer`,
	`t&cs? apply`,
	`odds subject to change`,
	`for entertainment purposes`,
	`check your local`,
	`see sportsbook for details`,
	`terms and conditions`,
	`on this page`,
}

var defaultTrendKeywords = []string{
	"trend",
	"streak",
	"against the spread",
	"ats",
	"last 10",
	"last five",
	"straight up",
	"covered",
	"record",
}

var defaultPickKeywords = []string{
	"pick",
	"prediction",
	"best bet",
	"take the",
	"lean",
	"play of the day",
}

var defaultAnalysisKeywords = []string{
	"analysis",
	"breakdown",
	"matchup",
	"keys to",
	"edge",
	"advantage",
}

var defaultInsightKeywords = []string{
	"key",
	"insight",
	"important",
	"injury",
	"questionable",
	"ruled out",
	"watch for",
}

// DefaultDictionaries returns the compiled-in recognition data.
func DefaultDictionaries() Dictionaries {
	return Dictionaries{
		Sports:   defaultSportKeywords,
		Teams:    defaultTeamKeywords,
		Junk:     defaultJunkPatterns,
		Trends:   defaultTrendKeywords,
		Picks:    defaultPickKeywords,
		Analysis: defaultAnalysisKeywords,
		Insights: defaultInsightKeywords,
	}
}

// DictionariesFromConfig builds dictionaries from the pipeline config section.
// Empty sections fall back to the defaults; unknown sport keys are dropped.
func DictionariesFromConfig(cfg config.PipelineConfig) Dictionaries {
	d := DefaultDictionaries()

	if len(cfg.SportKeywords) > 0 {
		var sports []SportKeyword
		for _, sk := range cfg.SportKeywords {
			sport, ok := enums.ParseSport(sk.Sport)
			if !ok {
				continue
			}
			sports = append(sports, SportKeyword{Keyword: sk.Keyword, Sport: sport})
		}
		if len(sports) > 0 {
			d.Sports = sports
		}
	}
	if len(cfg.TeamKeywords) > 0 {
		teams := make([]TeamKeyword, 0, len(cfg.TeamKeywords))
		for _, tk := range cfg.TeamKeywords {
			teams = append(teams, TeamKeyword{Keyword: tk.Keyword, Team: tk.Team})
		}
		d.Teams = teams
	}
	if len(cfg.JunkPatterns) > 0 {
		d.Junk = cfg.JunkPatterns
	}
	if len(cfg.TrendKeywords) > 0 {
		d.Trends = cfg.TrendKeywords
	}
	if len(cfg.PickKeywords) > 0 {
		d.Picks = cfg.PickKeywords
	}
	if len(cfg.AnalysisKeywords) > 0 {
		d.Analysis = cfg.AnalysisKeywords
	}
	if len(cfg.InsightKeywords) > 0 {
		d.Insights = cfg.InsightKeywords
	}
	return d
}
