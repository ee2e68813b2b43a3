package sport

import (
	"sort"
	"strings"
)

// DefaultIcon is shown for sports missing from the catalog.
const DefaultIcon = "🏈"

// Sport describes a sport or competition family the viewer knows how to label.
type Sport struct {
	Name         string
	Icon         string
	Competitions []string
}

var catalog = []Sport{
	{Name: "Australian Football", Icon: "🏈", Competitions: []string{"AFL", "AFL Finals", "AFLW"}},
	{Name: "Rugby League", Icon: "🏉", Competitions: []string{"NRL", "NRL Finals", "State of Origin", "Super League"}},
	{Name: "Rugby Union", Icon: "🏉", Competitions: []string{"Super Rugby Pacific", "Rugby Championship", "Six Nations", "URC"}},
	{Name: "Soccer", Icon: "⚽", Competitions: []string{"Premier League", "La Liga", "Bundesliga", "Serie A", "Champions League", "A-League"}},
	{Name: "Basketball", Icon: "🏀", Competitions: []string{"NBA", "EuroLeague", "NBL", "FIBA World Cup"}},
	{Name: "Cricket", Icon: "🏏", Competitions: []string{"ICC World Cup", "IPL", "Ashes Series", "Big Bash League"}},
	{Name: "Tennis", Icon: "🎾", Competitions: []string{"Australian Open", "French Open", "Wimbledon", "US Open"}},
	{Name: "Golf", Icon: "⛳"},
	{Name: "Boxing", Icon: "🥊"},
	{Name: "Fighting", Icon: "🥊"},
	{Name: "MMA", Icon: "🥊"},
	{Name: "Motorsport", Icon: "🏎️", Competitions: []string{"Formula 1", "Supercars", "MotoGP"}},
	{Name: "Ice Hockey", Icon: "🏒", Competitions: []string{"NHL", "KHL"}},
	{Name: "Baseball", Icon: "⚾", Competitions: []string{"MLB", "NPB"}},
	{Name: "American Football", Icon: "🏈", Competitions: []string{"NFL", "NCAA Football"}},
	{Name: "Athletics", Icon: "🏃"},
	{Name: "Swimming", Icon: "🏊"},
	{Name: "Cycling", Icon: "🚴"},
	{Name: "Surfing", Icon: "🏄"},
	{Name: "Skateboarding", Icon: "🛹"},
	{Name: "Climbing", Icon: "🧗"},
	{Name: "Archery", Icon: "🏹"},
	{Name: "Shooting", Icon: "🎯"},
	{Name: "Weightlifting", Icon: "🏋️"},
}

var (
	byName        = make(map[string]Sport, len(catalog))
	byCompetition = make(map[string]Sport)
)

func init() {
	for _, item := range catalog {
		byName[strings.ToLower(item.Name)] = item
		for _, competition := range item.Competitions {
			byCompetition[strings.ToLower(competition)] = item
		}
	}
	// Feeds label association football either way.
	byName["football"] = byName["soccer"]
}

// All returns the catalog sorted by name.
func All() []Sport {
	out := make([]Sport, len(catalog))
	copy(out, catalog)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup resolves a sport or competition name.
func Lookup(name string) (Sport, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if item, ok := byName[key]; ok {
		return item, true
	}
	item, ok := byCompetition[key]
	return item, ok
}

// Icon returns the icon for a sport or competition name.
func Icon(name string) string {
	if item, ok := Lookup(name); ok && item.Icon != "" {
		return item.Icon
	}
	return DefaultIcon
}
