package fixture

import (
	"sort"

	"github.com/riskibarqy/sports-fixtures/internal/domain/region"
)

// OtherLeague labels events whose league is empty.
const OtherLeague = "Other"

// Grouped maps a group key (sport or league) to its events in input order.
type Grouped map[string][]SportEvent

// SportGroup is one ordered entry of a priority-sorted board.
type SportGroup struct {
	Sport    string
	Priority region.Priority
	Events   []SportEvent
}

// Dedupe keeps the first event seen for each ID. Events without an ID cannot
// be matched and are kept.
func Dedupe(events []SportEvent) []SportEvent {
	seen := make(map[string]struct{}, len(events))
	out := make([]SportEvent, 0, len(events))
	for _, event := range events {
		if event.ID == "" {
			out = append(out, event)
			continue
		}
		if _, ok := seen[event.ID]; ok {
			continue
		}
		seen[event.ID] = struct{}{}
		out = append(out, event)
	}
	return out
}

// GroupBySport partitions events by sport.
func GroupBySport(events []SportEvent) Grouped {
	out := make(Grouped)
	for _, event := range events {
		out[event.Sport] = append(out[event.Sport], event)
	}
	return out
}

// GroupByLeague partitions events by league, using OtherLeague for blanks.
func GroupByLeague(events []SportEvent) Grouped {
	out := make(Grouped)
	for _, event := range events {
		key := event.League
		if key == "" {
			key = OtherLeague
		}
		out[key] = append(out[key], event)
	}
	return out
}

// SortedKeys returns the group keys in lexicographic order.
func (g Grouped) SortedKeys() []string {
	keys := make([]string, 0, len(g))
	for key := range g {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Len counts events across all groups.
func (g Grouped) Len() int {
	total := 0
	for _, events := range g {
		total += len(events)
	}
	return total
}

// PartitionLiveUpcoming splits every group into live and non-live events. A
// key only appears on a side that has at least one event.
func PartitionLiveUpcoming(grouped Grouped) (Grouped, Grouped) {
	live := make(Grouped)
	upcoming := make(Grouped)
	for key, events := range grouped {
		for _, event := range events {
			if IsLive(event) {
				live[key] = append(live[key], event)
			} else {
				upcoming[key] = append(upcoming[key], event)
			}
		}
	}
	return live, upcoming
}

// RegionalPriority is PriorityRegional when any event's league or sport
// mentions a keyword of the viewer's region. The group key is not consulted.
func RegionalPriority(_ string, events []SportEvent, regionCode string) region.Priority {
	for _, event := range events {
		if region.Matches(regionCode, event.League, event.Sport) {
			return region.PriorityRegional
		}
	}
	return region.PriorityOther
}

// SortByPriority orders groups by regional priority, then by name.
func SortByPriority(grouped Grouped, regionCode string) []SportGroup {
	out := make([]SportGroup, 0, len(grouped))
	for key, events := range grouped {
		out = append(out, SportGroup{
			Sport:    key,
			Priority: RegionalPriority(key, events, regionCode),
			Events:   events,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].Sport < out[j].Sport
	})
	return out
}
