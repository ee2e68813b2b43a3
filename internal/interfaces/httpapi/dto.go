package httpapi

import (
	"time"

	"github.com/riskibarqy/sports-fixtures/internal/domain/fixture"
	"github.com/riskibarqy/sports-fixtures/internal/domain/sport"
	"github.com/riskibarqy/sports-fixtures/internal/usecase"
)

const localKickoffLayout = "2006-01-02 15:04"

type eventDTO struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Sport        string     `json:"sport"`
	SportIcon    string     `json:"sportIcon"`
	League       string     `json:"league"`
	HomeTeam     string     `json:"homeTeam"`
	AwayTeam     string     `json:"awayTeam"`
	Date         string     `json:"date"`
	Time         string     `json:"time"`
	Status       string     `json:"status"`
	Kind         string     `json:"kind"`
	IsLive       bool       `json:"isLive"`
	HomeScore    *int       `json:"homeScore,omitempty"`
	AwayScore    *int       `json:"awayScore,omitempty"`
	Venue        string     `json:"venue,omitempty"`
	City         string     `json:"city,omitempty"`
	Country      string     `json:"country,omitempty"`
	Round        string     `json:"round,omitempty"`
	Season       string     `json:"season,omitempty"`
	Thumb        string     `json:"thumb,omitempty"`
	KickoffAt    *time.Time `json:"kickoffAt,omitempty"`
	KickoffLocal string     `json:"kickoffLocal,omitempty"`
}

type sportGroupDTO struct {
	Sport    string     `json:"sport"`
	Icon     string     `json:"icon"`
	Priority int        `json:"priority"`
	Count    int        `json:"count"`
	Events   []eventDTO `json:"events"`
}

type leagueGroupDTO struct {
	League string     `json:"league"`
	Count  int        `json:"count"`
	Events []eventDTO `json:"events"`
}

type filterOptionsDTO struct {
	Dates     []string `json:"dates"`
	Sports    []string `json:"sports"`
	Countries []string `json:"countries"`
	Leagues   []string `json:"leagues"`
}

type eventListDTO struct {
	Date           string     `json:"date,omitempty"`
	Start          string     `json:"start,omitempty"`
	Days           int        `json:"days,omitempty"`
	Count          int        `json:"count"`
	Synthetic      bool       `json:"synthetic"`
	FallbackReason string     `json:"fallbackReason,omitempty"`
	Events         []eventDTO `json:"events"`
}

type boardDTO struct {
	Source         string           `json:"source"`
	Region         string           `json:"region"`
	Total          int              `json:"total"`
	Filtered       int              `json:"filtered"`
	LiveCount      int              `json:"liveCount"`
	UpcomingCount  int              `json:"upcomingCount"`
	Synthetic      bool             `json:"synthetic"`
	FallbackReason string           `json:"fallbackReason,omitempty"`
	Live           []sportGroupDTO  `json:"live"`
	Upcoming       []sportGroupDTO  `json:"upcoming"`
	Options        filterOptionsDTO `json:"options"`
}

type leagueBoardDTO struct {
	Source         string           `json:"source"`
	Total          int              `json:"total"`
	Filtered       int              `json:"filtered"`
	Synthetic      bool             `json:"synthetic"`
	FallbackReason string           `json:"fallbackReason,omitempty"`
	Leagues        []leagueGroupDTO `json:"leagues"`
}

type overviewSectionDTO struct {
	Count          int             `json:"count"`
	Synthetic      bool            `json:"synthetic,omitempty"`
	FallbackReason string          `json:"fallbackReason,omitempty"`
	Error          string          `json:"error,omitempty"`
	Groups         []sportGroupDTO `json:"groups"`
}

type overviewDTO struct {
	Region   string             `json:"region"`
	Today    overviewSectionDTO `json:"today"`
	Week     overviewSectionDTO `json:"week"`
	Upcoming overviewSectionDTO `json:"upcoming"`
	Live     overviewSectionDTO `json:"live"`
}

type sportDTO struct {
	Name         string   `json:"name"`
	Icon         string   `json:"icon"`
	Competitions []string `json:"competitions"`
}

func sportToDTO(item sport.Sport) sportDTO {
	return sportDTO{
		Name:         item.Name,
		Icon:         item.Icon,
		Competitions: nonNil(item.Competitions),
	}
}

type regionDTO struct {
	Code     string   `json:"code"`
	Source   string   `json:"source"`
	Mapped   bool     `json:"mapped"`
	Keywords []string `json:"keywords"`
}

func eventToDTO(event fixture.SportEvent, loc *time.Location) eventDTO {
	out := eventDTO{
		ID:        event.ID,
		Title:     event.Title,
		Sport:     event.Sport,
		SportIcon: sport.Icon(event.Sport),
		League:    event.League,
		HomeTeam:  event.HomeTeam,
		AwayTeam:  event.AwayTeam,
		Date:      event.Date,
		Time:      event.DisplayTime(),
		Status:    event.Status,
		Kind:      string(event.Kind),
		IsLive:    fixture.IsLive(event),
		HomeScore: event.HomeScore,
		AwayScore: event.AwayScore,
		Venue:     event.Venue,
		City:      event.City,
		Country:   event.Country,
		Round:     event.Round,
		Season:    event.Season,
		Thumb:     event.Thumb,
		KickoffAt: event.KickoffAt,
	}
	if loc != nil && event.KickoffAt != nil {
		out.KickoffLocal = event.KickoffAt.In(loc).Format(localKickoffLayout)
	}
	return out
}

func eventsToDTO(events []fixture.SportEvent, loc *time.Location) []eventDTO {
	out := make([]eventDTO, 0, len(events))
	for _, event := range events {
		out = append(out, eventToDTO(event, loc))
	}
	return out
}

func sportGroupsToDTO(groups []fixture.SportGroup, loc *time.Location) []sportGroupDTO {
	out := make([]sportGroupDTO, 0, len(groups))
	for _, group := range groups {
		out = append(out, sportGroupDTO{
			Sport:    group.Sport,
			Icon:     sport.Icon(group.Sport),
			Priority: int(group.Priority),
			Count:    len(group.Events),
			Events:   eventsToDTO(group.Events, loc),
		})
	}
	return out
}

func optionsToDTO(options fixture.Options) filterOptionsDTO {
	return filterOptionsDTO{
		Dates:     nonNil(options.Dates),
		Sports:    nonNil(options.Sports),
		Countries: nonNil(options.Countries),
		Leagues:   nonNil(options.Leagues),
	}
}

func boardToDTO(board usecase.Board, loc *time.Location) boardDTO {
	return boardDTO{
		Source:         string(board.Source),
		Region:         board.Region,
		Total:          board.Total,
		Filtered:       board.Filtered,
		LiveCount:      board.LiveCount,
		UpcomingCount:  board.UpcomingCount,
		Synthetic:      board.Synthetic,
		FallbackReason: board.FallbackReason,
		Live:           sportGroupsToDTO(board.Live, loc),
		Upcoming:       sportGroupsToDTO(board.Upcoming, loc),
		Options:        optionsToDTO(board.Options),
	}
}

func leagueBoardToDTO(board usecase.LeagueBoard, loc *time.Location) leagueBoardDTO {
	leagues := make([]leagueGroupDTO, 0, len(board.Leagues))
	for _, group := range board.Leagues {
		leagues = append(leagues, leagueGroupDTO{
			League: group.League,
			Count:  len(group.Events),
			Events: eventsToDTO(group.Events, loc),
		})
	}

	return leagueBoardDTO{
		Source:         string(board.Source),
		Total:          board.Total,
		Filtered:       board.Filtered,
		Synthetic:      board.Synthetic,
		FallbackReason: board.FallbackReason,
		Leagues:        leagues,
	}
}

func overviewSectionToDTO(section usecase.OverviewSection, loc *time.Location) overviewSectionDTO {
	return overviewSectionDTO{
		Count:          section.Count,
		Synthetic:      section.Synthetic,
		FallbackReason: section.FallbackReason,
		Error:          section.Error,
		Groups:         sportGroupsToDTO(section.Groups, loc),
	}
}

func overviewToDTO(overview usecase.Overview, loc *time.Location) overviewDTO {
	return overviewDTO{
		Region:   overview.Region,
		Today:    overviewSectionToDTO(overview.Today, loc),
		Week:     overviewSectionToDTO(overview.Week, loc),
		Upcoming: overviewSectionToDTO(overview.Upcoming, loc),
		Live:     overviewSectionToDTO(overview.Live, loc),
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
