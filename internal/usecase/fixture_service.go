package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/sports-fixtures/internal/domain/fixture"
	"github.com/riskibarqy/sports-fixtures/internal/domain/region"
	"go.opentelemetry.io/otel/attribute"
)

const (
	DefaultRangeDays = 7
	MaxRangeDays     = 31
)

// SourceKind selects which feed query backs a board.
type SourceKind string

const (
	SourceDay      SourceKind = "day"
	SourceRange    SourceKind = "range"
	SourceUpcoming SourceKind = "upcoming"
)

// BoardQuery describes one viewer request. Zero Date/Start mean today (UTC)
// and zero Days means the service default.
type BoardQuery struct {
	Source   SourceKind
	Date     time.Time
	Start    time.Time
	Days     int
	Criteria fixture.Criteria
	// Region orders sports by relevance. Empty or unmapped codes rank every
	// sport equally, leaving name order.
	Region string
}

// Board is the filtered, grouped and priority-ordered view of one source.
type Board struct {
	Source         SourceKind
	Region         string
	Live           []fixture.SportGroup
	Upcoming       []fixture.SportGroup
	Total          int
	Filtered       int
	LiveCount      int
	UpcomingCount  int
	Options        fixture.Options
	Synthetic      bool
	FallbackReason string
}

type LeagueGroup struct {
	League string
	Events []fixture.SportEvent
}

type LeagueBoard struct {
	Source         SourceKind
	Leagues        []LeagueGroup
	Total          int
	Filtered       int
	Synthetic      bool
	FallbackReason string
}

type FixtureService struct {
	source           fixture.Source
	defaultRangeDays int
	now              func() time.Time
}

func NewFixtureService(source fixture.Source, defaultRangeDays int) *FixtureService {
	if defaultRangeDays <= 0 || defaultRangeDays > MaxRangeDays {
		defaultRangeDays = DefaultRangeDays
	}

	return &FixtureService{
		source:           source,
		defaultRangeDays: defaultRangeDays,
		now:              time.Now,
	}
}

// Day returns the deduplicated fixtures of one calendar day.
func (s *FixtureService) Day(ctx context.Context, day time.Time) ([]fixture.SportEvent, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.Day",
		attribute.String("fixtures.day", day.Format(fixture.DateLayout)),
	)
	defer span.End()

	events, err := s.source.FetchByDay(ctx, day)
	if err != nil {
		recordSpanError(span, err)
		return nil, fmt.Errorf("fetch fixtures for %s: %w", day.Format(fixture.DateLayout), err)
	}
	return fixture.Dedupe(events), nil
}

// Range returns the deduplicated fixtures of days consecutive days from start.
func (s *FixtureService) Range(ctx context.Context, start time.Time, days int) ([]fixture.SportEvent, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.Range",
		attribute.String("fixtures.start", start.Format(fixture.DateLayout)),
		attribute.Int("fixtures.days", days),
	)
	defer span.End()

	if days < 1 || days > MaxRangeDays {
		return nil, fmt.Errorf("%w: days must be between 1 and %d", ErrInvalidInput, MaxRangeDays)
	}

	events, err := s.source.FetchRange(ctx, start, days)
	if err != nil {
		recordSpanError(span, err)
		return nil, fmt.Errorf("fetch fixtures from %s for %d days: %w", start.Format(fixture.DateLayout), days, err)
	}
	return fixture.Dedupe(events), nil
}

// Upcoming never fails; feed problems surface as a synthetic batch.
func (s *FixtureService) Upcoming(ctx context.Context) fixture.Batch {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.Upcoming")
	defer span.End()

	batch := s.source.FetchAllUpcoming(ctx)
	batch.Events = fixture.Dedupe(batch.Events)
	span.SetAttributes(attribute.Bool("fixtures.synthetic", batch.Synthetic))
	return batch
}

// Board runs the viewer pipeline: load, dedupe, filter, group by sport, split
// live from upcoming and order both halves by regional priority.
func (s *FixtureService) Board(ctx context.Context, query BoardQuery) (Board, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.Board",
		attribute.String("fixtures.source", string(query.Source)),
	)
	defer span.End()

	loaded, err := s.load(ctx, query)
	if err != nil {
		recordSpanError(span, err)
		return Board{}, err
	}

	regionCode := region.Normalize(query.Region)

	filtered := fixture.ApplyFilters(loaded.batch.Events, query.Criteria)
	live, upcoming := fixture.PartitionLiveUpcoming(fixture.GroupBySport(filtered))

	return Board{
		Source:         loaded.source,
		Region:         regionCode,
		Live:           fixture.SortByPriority(live, regionCode),
		Upcoming:       fixture.SortByPriority(upcoming, regionCode),
		Total:          len(loaded.batch.Events),
		Filtered:       len(filtered),
		LiveCount:      live.Len(),
		UpcomingCount:  upcoming.Len(),
		Options:        fixture.FilterOptions(loaded.batch.Events),
		Synthetic:      loaded.batch.Synthetic,
		FallbackReason: loaded.batch.FallbackReason,
	}, nil
}

// Leagues runs the same pipeline as Board but groups by league name.
func (s *FixtureService) Leagues(ctx context.Context, query BoardQuery) (LeagueBoard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.Leagues",
		attribute.String("fixtures.source", string(query.Source)),
	)
	defer span.End()

	loaded, err := s.load(ctx, query)
	if err != nil {
		recordSpanError(span, err)
		return LeagueBoard{}, err
	}

	filtered := fixture.ApplyFilters(loaded.batch.Events, query.Criteria)
	grouped := fixture.GroupByLeague(filtered)

	leagues := make([]LeagueGroup, 0, len(grouped))
	for _, key := range grouped.SortedKeys() {
		leagues = append(leagues, LeagueGroup{League: key, Events: grouped[key]})
	}

	return LeagueBoard{
		Source:         loaded.source,
		Leagues:        leagues,
		Total:          len(loaded.batch.Events),
		Filtered:       len(filtered),
		Synthetic:      loaded.batch.Synthetic,
		FallbackReason: loaded.batch.FallbackReason,
	}, nil
}

// SuggestTeams offers team names close to text from the query's source,
// restricted by the query's criteria.
func (s *FixtureService) SuggestTeams(ctx context.Context, query BoardQuery, text string, limit int) ([]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.SuggestTeams")
	defer span.End()

	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: suggestion text is required", ErrInvalidInput)
	}

	loaded, err := s.load(ctx, query)
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}
	candidates := fixture.ApplyFilters(loaded.batch.Events, query.Criteria)
	return fixture.SuggestTeams(candidates, strings.TrimSpace(text), limit), nil
}

type loadedEvents struct {
	source SourceKind
	batch  fixture.Batch
}

func (s *FixtureService) load(ctx context.Context, query BoardQuery) (loadedEvents, error) {
	source := query.Source
	if source == "" {
		source = SourceUpcoming
	}

	switch source {
	case SourceDay:
		events, err := s.Day(ctx, s.dayOrToday(query.Date))
		if err != nil {
			return loadedEvents{}, err
		}
		return loadedEvents{source: source, batch: fixture.Batch{Events: events}}, nil
	case SourceRange:
		days := query.Days
		if days == 0 {
			days = s.defaultRangeDays
		}
		events, err := s.Range(ctx, s.dayOrToday(query.Start), days)
		if err != nil {
			return loadedEvents{}, err
		}
		return loadedEvents{source: source, batch: fixture.Batch{Events: events}}, nil
	case SourceUpcoming:
		return loadedEvents{source: source, batch: s.Upcoming(ctx)}, nil
	default:
		return loadedEvents{}, fmt.Errorf("%w: unknown source %q", ErrInvalidInput, query.Source)
	}
}

func (s *FixtureService) dayOrToday(day time.Time) time.Time {
	if day.IsZero() {
		day = s.now()
	}
	day = day.UTC()
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
}

// DefaultRangeDays is the range length used when a query does not set one.
func (s *FixtureService) DefaultRangeDays() int {
	return s.defaultRangeDays
}
