package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/sports-fixtures/internal/domain/fixture"
	"github.com/riskibarqy/sports-fixtures/internal/domain/region"
	fixturemock "github.com/riskibarqy/sports-fixtures/internal/mocks/domain/fixture"
)

var finalsDay = time.Date(2025, time.September, 20, 0, 0, 0, 0, time.UTC)

func intPtr(v int) *int {
	return &v
}

func boardEvents() []fixture.SportEvent {
	return fixture.NormalizeAll([]fixture.SportEvent{
		{ID: "1", Sport: "Rugby Union", League: "Super Rugby Pacific", HomeTeam: "Crusaders", AwayTeam: "Blues", Date: "2025-09-20", Time: "07:05:00", Status: "Live", HomeScore: intPtr(14), AwayScore: intPtr(10), Country: "New Zealand"},
		{ID: "1", Sport: "Rugby Union", League: "Super Rugby Pacific", HomeTeam: "Crusaders", AwayTeam: "Blues", Date: "2025-09-20", Time: "07:05:00", Status: "Live", HomeScore: intPtr(14), AwayScore: intPtr(10), Country: "New Zealand"},
		{ID: "2", Sport: "American Football", League: "NFL", HomeTeam: "Chiefs", AwayTeam: "Eagles", Date: "2025-09-20", Time: "20:20:00", Status: "NS", Country: "USA"},
		{ID: "3", Sport: "Australian Football", League: "AFL Finals", HomeTeam: "Geelong Cats", AwayTeam: "Hawthorn Hawks", Date: "2025-09-20", Time: "19:20:00", Status: "NS", Country: "Australia"},
		{ID: "4", Sport: "Soccer", League: "Premier League", HomeTeam: "Arsenal", AwayTeam: "Chelsea", Date: "2025-09-20", Time: "", Status: "FT", Country: "England"},
	})
}

func TestFixtureService_Day_DedupesUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.WithValue(context.Background(), "trace_id", "trace-123")
	source := fixturemock.NewSource(t)
	service := NewFixtureService(source, 7)

	source.
		On("FetchByDay", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), finalsDay).
		Return(boardEvents(), nil).
		Once()

	got, err := service.Day(ctx, finalsDay)
	if err != nil {
		t.Fatalf("day fixtures: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("expected duplicates removed, got=%d", len(got))
	}
	if got[0].ID != "1" || got[1].ID != "2" {
		t.Fatalf("expected input order preserved, got=%s,%s", got[0].ID, got[1].ID)
	}
}

func TestFixtureService_Day_PropagatesSourceErrorUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	source := fixturemock.NewSource(t)
	service := NewFixtureService(source, 7)

	source.
		On("FetchByDay", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), finalsDay).
		Return(nil, fmt.Errorf("%w: status=503", ErrDependencyUnavailable)).
		Once()

	_, err := service.Day(ctx, finalsDay)
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestFixtureService_Range_RejectsInvalidDays(t *testing.T) {
	t.Parallel()

	source := fixturemock.NewSource(t)
	service := NewFixtureService(source, 7)

	for _, days := range []int{-1, 0, MaxRangeDays + 1} {
		if _, err := service.Range(context.Background(), finalsDay, days); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("days=%d: expected ErrInvalidInput, got %v", days, err)
		}
	}
}

func TestFixtureService_Board_DuplicateLiveRugbyUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	source := fixturemock.NewSource(t)
	service := NewFixtureService(source, 7)

	source.
		On("FetchByDay", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), finalsDay).
		Return(boardEvents(), nil).
		Once()

	board, err := service.Board(ctx, BoardQuery{Source: SourceDay, Date: finalsDay, Region: "au"})
	if err != nil {
		t.Fatalf("board: %v", err)
	}

	if board.LiveCount != 1 || len(board.Live) != 1 {
		t.Fatalf("expected exactly one live event, got count=%d groups=%d", board.LiveCount, len(board.Live))
	}
	live := board.Live[0]
	if live.Sport != "Rugby Union" || len(live.Events) != 1 || live.Events[0].Kind != fixture.KindLive {
		t.Fatalf("unexpected live group: %+v", live)
	}

	if board.Region != "AU" || board.Total != 4 || board.UpcomingCount != 3 {
		t.Fatalf("unexpected board totals: region=%s total=%d upcoming=%d", board.Region, board.Total, board.UpcomingCount)
	}
	// AU keywords lift Australian Football above the alphabetical order.
	if board.Upcoming[0].Sport != "Australian Football" || board.Upcoming[0].Priority != region.PriorityRegional {
		t.Fatalf("expected Australian Football first, got %s", board.Upcoming[0].Sport)
	}
	if board.Upcoming[1].Sport != "American Football" || board.Upcoming[2].Sport != "Soccer" {
		t.Fatalf("unexpected upcoming order: %s, %s", board.Upcoming[1].Sport, board.Upcoming[2].Sport)
	}
}

func TestFixtureService_Board_RegionChangesOrderUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	source := fixturemock.NewSource(t)
	service := NewFixtureService(source, 7)

	source.
		On("FetchAllUpcoming", mock.MatchedBy(func(v context.Context) bool { return v == ctx })).
		Return(fixture.Batch{Events: boardEvents()}).
		Once()

	board, err := service.Board(ctx, BoardQuery{Region: "US"})
	if err != nil {
		t.Fatalf("board: %v", err)
	}
	if board.Source != SourceUpcoming {
		t.Fatalf("expected upcoming source by default, got %s", board.Source)
	}
	if board.Upcoming[0].Sport != "American Football" || board.Upcoming[0].Priority != region.PriorityRegional {
		t.Fatalf("expected NFL first for US viewers, got %s", board.Upcoming[0].Sport)
	}
}

func TestFixtureService_Board_EmptyRegionKeepsNameOrderUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	source := fixturemock.NewSource(t)
	service := NewFixtureService(source, 7)

	source.
		On("FetchAllUpcoming", mock.MatchedBy(func(v context.Context) bool { return v == ctx })).
		Return(fixture.Batch{Events: boardEvents()}).
		Once()

	board, err := service.Board(ctx, BoardQuery{})
	if err != nil {
		t.Fatalf("board: %v", err)
	}
	if board.Region != "" {
		t.Fatalf("expected empty region to pass through, got %q", board.Region)
	}

	want := []string{"American Football", "Australian Football", "Soccer"}
	if len(board.Upcoming) != len(want) {
		t.Fatalf("expected %d upcoming groups, got %d", len(want), len(board.Upcoming))
	}
	for i, group := range board.Upcoming {
		if group.Sport != want[i] || group.Priority != region.PriorityOther {
			t.Fatalf("unexpected group %d: sport=%s priority=%d", i, group.Sport, group.Priority)
		}
	}
}

func TestFixtureService_Board_FiltersAndKeepsOptionsUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	source := fixturemock.NewSource(t)
	service := NewFixtureService(source, 7)

	source.
		On("FetchAllUpcoming", mock.MatchedBy(func(v context.Context) bool { return v == ctx })).
		Return(fixture.Batch{Events: boardEvents(), Synthetic: true, FallbackReason: "status=503"}).
		Once()

	board, err := service.Board(ctx, BoardQuery{
		Source:   SourceUpcoming,
		Criteria: fixture.Criteria{Team: "hawks"},
	})
	if err != nil {
		t.Fatalf("board: %v", err)
	}
	if board.Filtered != 1 || board.LiveCount != 0 || board.UpcomingCount != 1 {
		t.Fatalf("expected one filtered event, got filtered=%d", board.Filtered)
	}
	if len(board.Options.Sports) != 4 {
		t.Fatalf("expected options from unfiltered events, got=%v", board.Options.Sports)
	}
	if !board.Synthetic || board.FallbackReason != "status=503" {
		t.Fatalf("expected synthetic flag to carry through")
	}
}

func TestFixtureService_Board_RangeUsesDefaultDaysUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	source := fixturemock.NewSource(t)
	service := NewFixtureService(source, 5)
	service.now = func() time.Time { return finalsDay.Add(13 * time.Hour) }

	source.
		On("FetchRange", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), finalsDay, 5).
		Return([]fixture.SportEvent{}, nil).
		Once()

	board, err := service.Board(ctx, BoardQuery{Source: SourceRange})
	if err != nil {
		t.Fatalf("board: %v", err)
	}
	if board.Total != 0 || len(board.Live) != 0 || len(board.Upcoming) != 0 {
		t.Fatalf("expected empty board, got %+v", board)
	}
}

func TestFixtureService_Board_UnknownSource(t *testing.T) {
	t.Parallel()

	service := NewFixtureService(fixturemock.NewSource(t), 7)
	if _, err := service.Board(context.Background(), BoardQuery{Source: "weekly"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestFixtureService_Leagues_GroupsByLeagueUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	source := fixturemock.NewSource(t)
	service := NewFixtureService(source, 7)

	events := append(boardEvents(), fixture.Normalize(fixture.SportEvent{
		ID: "5", Sport: "Basketball", HomeTeam: "Kings", AwayTeam: "Bullets", Date: "2025-09-20", Status: "NS",
	}))
	source.
		On("FetchByDay", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), finalsDay).
		Return(events, nil).
		Once()

	board, err := service.Leagues(ctx, BoardQuery{Source: SourceDay, Date: finalsDay})
	if err != nil {
		t.Fatalf("leagues: %v", err)
	}

	want := []string{"AFL Finals", "NFL", fixture.OtherLeague, "Premier League", "Super Rugby Pacific"}
	if len(board.Leagues) != len(want) {
		t.Fatalf("unexpected league count: got=%d want=%d", len(board.Leagues), len(want))
	}
	for i, name := range want {
		if board.Leagues[i].League != name {
			t.Fatalf("league %d: got=%s want=%s", i, board.Leagues[i].League, name)
		}
	}
}

func TestFixtureService_SuggestTeamsUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	source := fixturemock.NewSource(t)
	service := NewFixtureService(source, 7)

	source.
		On("FetchAllUpcoming", mock.MatchedBy(func(v context.Context) bool { return v == ctx })).
		Return(fixture.Batch{Events: boardEvents()}).
		Once()

	got, err := service.SuggestTeams(ctx, BoardQuery{}, "hawk", 5)
	if err != nil {
		t.Fatalf("suggest teams: %v", err)
	}
	if len(got) != 1 || got[0] != "Hawthorn Hawks" {
		t.Fatalf("unexpected suggestions: %v", got)
	}

	if _, err := service.SuggestTeams(ctx, BoardQuery{}, "  ", 5); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank text, got %v", err)
	}
}
