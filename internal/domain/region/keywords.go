package region

import "strings"

// Priority ranks a sport for a viewer's region. Lower sorts first.
type Priority int

const (
	PriorityRegional Priority = 1
	PriorityOther    Priority = 2
)

// Fallback is used when no region can be detected.
const Fallback = "AU"

// keywordsByRegion lists lowercase fragments matched against league and sport
// names. Regions missing from the table have no keywords.
var keywordsByRegion = map[string][]string{
	"AU": {
		"afl", "australian football", "nrl", "rugby league", "super rugby", "wallabies",
		"rugby championship", "state of origin", "a-league", "big bash", "sheffield shield",
		"nbl", "supercars",
	},
	"NZ": {
		"super rugby", "all blacks", "nrl", "rugby championship", "black caps",
		"npc", "a-league", "nbl",
	},
	"US": {
		"nfl", "american football", "ncaa", "nba", "mlb", "nhl", "mls", "wnba",
	},
	"CA": {
		"nhl", "cfl", "nba", "mlb", "mls", "ice hockey",
	},
	"GB": {
		"premier league", "efl", "fa cup", "scottish premiership", "six nations",
		"premiership rugby", "super league", "county championship", "the hundred",
	},
	"IE": {
		"league of ireland", "urc", "six nations", "gaelic", "hurling",
	},
	"ZA": {
		"urc", "currie cup", "springboks", "rugby championship", "psl", "sa20",
	},
	"IN": {
		"ipl", "indian premier league", "ranji trophy", "isl", "pro kabaddi",
	},
	"ID": {
		"liga 1", "bri liga", "ibl", "proliga",
	},
}

// Normalize upper-cases and trims a region code.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Keywords returns the keyword list for a region, nil when unmapped.
func Keywords(code string) []string {
	return keywordsByRegion[Normalize(code)]
}

// IsMapped reports whether the region has any keywords.
func IsMapped(code string) bool {
	return len(Keywords(code)) > 0
}

// Matches reports whether any of texts contains a keyword of the region,
// ignoring case.
func Matches(code string, texts ...string) bool {
	keywords := Keywords(code)
	if len(keywords) == 0 {
		return false
	}

	for _, text := range texts {
		lowered := strings.ToLower(text)
		if lowered == "" {
			continue
		}
		for _, keyword := range keywords {
			if strings.Contains(lowered, keyword) {
				return true
			}
		}
	}
	return false
}
