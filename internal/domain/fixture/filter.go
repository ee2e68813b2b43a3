package fixture

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Criteria is the immutable set of user-selected filters. Empty fields do not
// constrain the result.
type Criteria struct {
	Date       string
	Sport      string
	Country    string
	Team       string
	SearchText string
}

// IsZero reports whether no filter is set.
func (c Criteria) IsZero() bool {
	return c == Criteria{}
}

// Options lists the distinct values the viewer can filter on.
type Options struct {
	Dates     []string
	Sports    []string
	Countries []string
	Leagues   []string
}

// ApplyFilters returns the events matching every set criterion, in input order.
func ApplyFilters(events []SportEvent, criteria Criteria) []SportEvent {
	team := strings.ToLower(criteria.Team)
	search := strings.ToLower(criteria.SearchText)

	out := make([]SportEvent, 0, len(events))
	for _, event := range events {
		if criteria.Date != "" && event.Date != criteria.Date {
			continue
		}
		if criteria.Sport != "" && event.Sport != criteria.Sport {
			continue
		}
		if criteria.Country != "" && event.Country != criteria.Country {
			continue
		}
		if team != "" && !containsFold(team, event.HomeTeam, event.AwayTeam) {
			continue
		}
		if search != "" && !containsFold(search, event.Title, event.League, event.HomeTeam, event.AwayTeam) {
			continue
		}
		out = append(out, event)
	}
	return out
}

// FilterOptions collects sorted distinct dates, sports, countries and leagues.
func FilterOptions(events []SportEvent) Options {
	dates := make(map[string]struct{})
	sports := make(map[string]struct{})
	countries := make(map[string]struct{})
	leagues := make(map[string]struct{})
	for _, event := range events {
		addNonEmpty(dates, event.Date)
		addNonEmpty(sports, event.Sport)
		addNonEmpty(countries, event.Country)
		addNonEmpty(leagues, event.League)
	}

	return Options{
		Dates:     sortedSet(dates),
		Sports:    sortedSet(sports),
		Countries: sortedSet(countries),
		Leagues:   sortedSet(leagues),
	}
}

// SuggestTeams returns up to limit team names fuzzily matching query, best
// ranked first.
func SuggestTeams(events []SportEvent, query string, limit int) []string {
	query = strings.TrimSpace(query)
	if query == "" || limit <= 0 {
		return nil
	}

	names := make(map[string]struct{})
	for _, event := range events {
		addNonEmpty(names, event.HomeTeam)
		addNonEmpty(names, event.AwayTeam)
	}
	candidates := sortedSet(names)

	ranks := fuzzy.RankFindFold(query, candidates)
	sort.Stable(ranks)

	out := make([]string, 0, minInt(limit, len(ranks)))
	for _, rank := range ranks {
		if len(out) == limit {
			break
		}
		out = append(out, rank.Target)
	}
	return out
}

func containsFold(needle string, haystacks ...string) bool {
	for _, value := range haystacks {
		if strings.Contains(strings.ToLower(value), needle) {
			return true
		}
	}
	return false
}

func addNonEmpty(set map[string]struct{}, value string) {
	if value == "" {
		return
	}
	set[value] = struct{}{}
}

func sortedSet(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for value := range set {
		out = append(out, value)
	}
	sort.Strings(out)
	return out
}

func minInt(left, right int) int {
	if left < right {
		return left
	}
	return right
}
