package fixturefeed

import (
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/sports-fixtures/internal/domain/fixture"
)

const syntheticEventCount = 40

type syntheticSport struct {
	sport     string
	leagues   []string
	teams     [][2]string
	venues    []string
	countries []string
	days      []int
	hours     []int
	minute    int
}

// syntheticCatalog is the September 2025 finals schedule shown when the
// upstream feed is unavailable.
var syntheticCatalog = []syntheticSport{
	{
		sport:   "Australian Football",
		leagues: []string{"AFL", "AFL Finals"},
		teams: [][2]string{
			{"Collingwood Magpies", "Carlton Blues"},
			{"Essendon Bombers", "Richmond Tigers"},
			{"Geelong Cats", "Hawthorn Hawks"},
			{"Sydney Swans", "GWS Giants"},
			{"Adelaide Crows", "Port Adelaide Power"},
			{"West Coast Eagles", "Fremantle Dockers"},
			{"Brisbane Lions", "Gold Coast Suns"},
			{"Melbourne Demons", "Western Bulldogs"},
		},
		venues:    []string{"MCG", "Marvel Stadium", "Adelaide Oval", "Optus Stadium", "Gabba", "Metricon Stadium", "GMHBA Stadium", "University of Tasmania Stadium"},
		countries: []string{"Australia"},
		days:      []int{5, 6, 7, 12, 13, 19, 20, 27},
		hours:     []int{19, 20, 15},
		minute:    20,
	},
	{
		sport:   "Rugby League",
		leagues: []string{"NRL", "NRL Finals"},
		teams: [][2]string{
			{"Sydney Roosters", "Melbourne Storm"},
			{"Brisbane Broncos", "Penrith Panthers"},
			{"Parramatta Eels", "Cronulla Sharks"},
			{"Manly Sea Eagles", "South Sydney Rabbitohs"},
			{"Newcastle Knights", "Canberra Raiders"},
			{"North Queensland Cowboys", "Gold Coast Titans"},
			{"St George Illawarra Dragons", "Wests Tigers"},
			{"Canterbury Bulldogs", "New Zealand Warriors"},
		},
		venues:    []string{"Allianz Stadium", "AAMI Park", "Suncorp Stadium", "Penrith Stadium", "McDonald Jones Stadium", "Queensland Country Bank Stadium", "Netstrata Jubilee Stadium", "ANZ Stadium"},
		countries: []string{"Australia"},
		days:      []int{5, 6, 7, 12, 13, 19, 20, 26, 27},
		hours:     []int{19, 20, 15},
		minute:    35,
	},
	{
		sport:   "Rugby Union",
		leagues: []string{"Rugby Championship", "Super Rugby Pacific"},
		teams: [][2]string{
			{"New Zealand All Blacks", "South Africa Springboks"},
			{"Australia Wallabies", "Argentina Pumas"},
			{"Crusaders", "Blues"},
			{"Hurricanes", "Chiefs"},
			{"Highlanders", "Moana Pasifika"},
			{"Brumbies", "Reds"},
			{"Waratahs", "Force"},
			{"Rebels", "Fijian Drua"},
		},
		venues:    []string{"Eden Park", "Ellis Park", "Suncorp Stadium", "Estadio José Amalfitani", "Orangetheory Stadium", "Eden Park", "Forsyth Barr Stadium", "Apia Park"},
		countries: []string{"New Zealand", "South Africa", "Australia", "Argentina", "New Zealand", "New Zealand", "New Zealand", "Samoa"},
		days:      []int{6, 13, 20, 27},
		hours:     []int{19, 20},
		minute:    30,
	},
}

// SyntheticEvents builds the deterministic demonstration catalog. Every field
// is picked by index, so repeated calls return identical events.
func SyntheticEvents() []fixture.SportEvent {
	out := make([]fixture.SportEvent, 0, syntheticEventCount)
	for i := 0; i < syntheticEventCount; i++ {
		entry := syntheticCatalog[i%len(syntheticCatalog)]
		teams := entry.teams[i%len(entry.teams)]

		date := time.Date(2025, time.September, entry.days[i%len(entry.days)], 0, 0, 0, 0, time.UTC)
		kickoff := fmt.Sprintf("%02d:%02d:00", entry.hours[i%len(entry.hours)], entry.minute)

		out = append(out, fixture.Normalize(fixture.SportEvent{
			ID:       fmt.Sprintf("mock_%s_%d", strings.ToLower(entry.sport), i),
			Title:    teams[0] + " vs " + teams[1],
			Sport:    entry.sport,
			League:   entry.leagues[i%len(entry.leagues)],
			HomeTeam: teams[0],
			AwayTeam: teams[1],
			Date:     date.Format(fixture.DateLayout),
			Time:     kickoff,
			Status:   "NS",
			Venue:    entry.venues[i%len(entry.venues)],
			Country:  entry.countries[i%len(entry.countries)],
			Season:   "2025",
		}))
	}
	return out
}
