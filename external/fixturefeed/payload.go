package fixturefeed

import (
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/sports-fixtures/internal/domain/fixture"
)

// eventsEnvelope is the worker response: {"events": [...] | null, "error"?: ...}.
type eventsEnvelope struct {
	Events []eventDTO `json:"events"`
	Error  flexText   `json:"error"`
}

// eventDTO keeps the provider's field names.
type eventDTO struct {
	ID        flexID   `json:"idEvent"`
	Title     string   `json:"strEvent"`
	Sport     string   `json:"strSport"`
	League    string   `json:"strLeague"`
	HomeTeam  string   `json:"strHomeTeam"`
	AwayTeam  string   `json:"strAwayTeam"`
	Date      string   `json:"dateEvent"`
	Time      string   `json:"strTime"`
	Status    string   `json:"strStatus"`
	HomeScore flexInt  `json:"intHomeScore"`
	AwayScore flexInt  `json:"intAwayScore"`
	Venue     string   `json:"strVenue"`
	City      string   `json:"strCity"`
	Country   string   `json:"strCountry"`
	Round     flexText `json:"strRound"`
	Season    string   `json:"strSeason"`
	Thumb     string   `json:"strThumb"`
}

func (e eventsEnvelope) toEvents() []fixture.SportEvent {
	out := make([]fixture.SportEvent, 0, len(e.Events))
	for _, item := range e.Events {
		out = append(out, item.toDomain())
	}
	return out
}

func (d eventDTO) toDomain() fixture.SportEvent {
	return fixture.Normalize(fixture.SportEvent{
		ID:        d.ID.text,
		Title:     d.Title,
		Sport:     d.Sport,
		League:    d.League,
		HomeTeam:  d.HomeTeam,
		AwayTeam:  d.AwayTeam,
		Date:      d.Date,
		Time:      d.Time,
		Status:    d.Status,
		HomeScore: d.HomeScore.value,
		AwayScore: d.AwayScore.value,
		Venue:     d.Venue,
		City:      d.City,
		Country:   d.Country,
		Round:     d.Round.text,
		Season:    d.Season,
		Thumb:     d.Thumb,
	})
}

// flexText accepts a JSON string or any scalar and keeps its text. set is
// false for null, false, 0 and blank strings.
type flexText struct {
	text string
	set  bool
}

func (t *flexText) UnmarshalJSON(raw []byte) error {
	value := strings.TrimSpace(string(raw))
	switch {
	case value == "", value == "null", value == "false", value == "0", value == `""`:
		t.text, t.set = "", false
		return nil
	case value[0] == '"':
		var decoded string
		if err := sonic.Unmarshal(raw, &decoded); err != nil {
			return err
		}
		t.text = strings.TrimSpace(decoded)
		t.set = t.text != ""
		return nil
	default:
		t.text, t.set = value, true
		return nil
	}
}

// flexID keeps every scalar id as text, numeric zero included. Only null,
// false and blank strings leave it empty.
type flexID struct {
	text string
}

func (id *flexID) UnmarshalJSON(raw []byte) error {
	value := strings.TrimSpace(string(raw))
	switch {
	case value == "", value == "null", value == "false":
		id.text = ""
		return nil
	case value[0] == '"':
		var decoded string
		if err := sonic.Unmarshal(raw, &decoded); err != nil {
			return err
		}
		id.text = strings.TrimSpace(decoded)
		return nil
	default:
		id.text = value
		return nil
	}
}

// flexInt accepts scores sent as numbers, numeric strings or null.
// Anything non-numeric is treated as absent.
type flexInt struct {
	value *int
}

func (n *flexInt) UnmarshalJSON(raw []byte) error {
	value := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	value = strings.TrimSpace(value)
	if value == "" || value == "null" {
		n.value = nil
		return nil
	}

	if parsed, err := strconv.Atoi(value); err == nil {
		n.value = &parsed
		return nil
	}
	if parsed, err := strconv.ParseFloat(value, 64); err == nil {
		asInt := int(parsed)
		n.value = &asInt
		return nil
	}

	n.value = nil
	return nil
}
