package fixture

import (
	"strings"
	"time"
)

// Kind is the closed status variant derived once from the provider status string.
type Kind string

const (
	KindLive      Kind = "LIVE"
	KindUpcoming  Kind = "UPCOMING"
	KindFinished  Kind = "FINISHED"
	KindPostponed Kind = "POSTPONED"
	KindCancelled Kind = "CANCELLED"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"

	// TimeTBD is displayed when the provider did not publish a kick-off time.
	TimeTBD = "TBD"
)

// SportEvent is one fixture as received from the fixtures feed.
type SportEvent struct {
	ID        string
	Title     string
	Sport     string
	League    string
	HomeTeam  string
	AwayTeam  string
	Date      string
	Time      string
	Status    string
	Kind      Kind
	HomeScore *int
	AwayScore *int
	Venue     string
	City      string
	Country   string
	Round     string
	Season    string
	Thumb     string
	KickoffAt *time.Time
}

// liveStatuses is matched exactly, without case folding.
var liveStatuses = map[string]struct{}{
	"Live": {},
	"1H":   {},
	"2H":   {},
}

var finishedStatuses = map[string]struct{}{
	"FT":             {},
	"AET":            {},
	"PEN":            {},
	"AOT":            {},
	"MATCH FINISHED": {},
	"FINISHED":       {},
}

var postponedStatuses = map[string]struct{}{
	"PST":       {},
	"POSTPONED": {},
}

var cancelledStatuses = map[string]struct{}{
	"CANC":      {},
	"CANCELLED": {},
	"CANCELED":  {},
	"ABD":       {},
	"ABANDONED": {},
}

// IsLiveStatus reports whether the raw provider status denotes an in-progress match.
func IsLiveStatus(status string) bool {
	_, ok := liveStatuses[status]
	return ok
}

// ClassifyStatus maps a raw provider status to a Kind. Unknown and empty
// values are Upcoming.
func ClassifyStatus(status string) Kind {
	if IsLiveStatus(status) {
		return KindLive
	}

	normalized := strings.ToUpper(strings.TrimSpace(status))
	if _, ok := finishedStatuses[normalized]; ok {
		return KindFinished
	}
	if _, ok := postponedStatuses[normalized]; ok {
		return KindPostponed
	}
	if _, ok := cancelledStatuses[normalized]; ok {
		return KindCancelled
	}
	return KindUpcoming
}

// IsLive reports whether the event is currently being played.
func IsLive(event SportEvent) bool {
	return IsLiveStatus(event.Status)
}

// Normalize trims provider strings and derives Kind and KickoffAt.
func Normalize(event SportEvent) SportEvent {
	event.ID = strings.TrimSpace(event.ID)
	event.Title = strings.TrimSpace(event.Title)
	event.Sport = strings.TrimSpace(event.Sport)
	event.League = strings.TrimSpace(event.League)
	event.HomeTeam = strings.TrimSpace(event.HomeTeam)
	event.AwayTeam = strings.TrimSpace(event.AwayTeam)
	event.Date = strings.TrimSpace(event.Date)
	event.Time = strings.TrimSpace(event.Time)
	event.Status = strings.TrimSpace(event.Status)
	event.Venue = strings.TrimSpace(event.Venue)
	event.City = strings.TrimSpace(event.City)
	event.Country = strings.TrimSpace(event.Country)
	event.Round = strings.TrimSpace(event.Round)
	event.Season = strings.TrimSpace(event.Season)
	event.Thumb = strings.TrimSpace(event.Thumb)

	if event.Title == "" && event.HomeTeam != "" && event.AwayTeam != "" {
		event.Title = event.HomeTeam + " vs " + event.AwayTeam
	}

	event.Kind = ClassifyStatus(event.Status)
	event.KickoffAt = parseKickoff(event.Date, event.Time)
	return event
}

// NormalizeAll normalizes every event and returns a new slice.
func NormalizeAll(events []SportEvent) []SportEvent {
	out := make([]SportEvent, 0, len(events))
	for _, event := range events {
		out = append(out, Normalize(event))
	}
	return out
}

// DisplayTime returns HH:MM or TimeTBD when no kick-off time is known.
func (e SportEvent) DisplayTime() string {
	if e.Time == "" {
		return TimeTBD
	}
	if len(e.Time) >= 5 {
		return e.Time[:5]
	}
	return e.Time
}

// HasScore is true once both sides carry a score.
func (e SportEvent) HasScore() bool {
	return e.HomeScore != nil && e.AwayScore != nil
}

func parseKickoff(date, clock string) *time.Time {
	if date == "" || clock == "" {
		return nil
	}

	layouts := []string{DateLayout + " " + TimeLayout, DateLayout + " 15:04"}
	for _, layout := range layouts {
		parsed, err := time.ParseInLocation(layout, date+" "+clock, time.UTC)
		if err == nil {
			return &parsed
		}
	}
	// Some feeds append a zone offset, e.g. "19:30:00+00:00".
	if parsed, err := time.Parse(time.RFC3339, date+"T"+clock); err == nil {
		utc := parsed.UTC()
		return &utc
	}
	return nil
}
