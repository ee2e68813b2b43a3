package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/sports-fixtures/internal/domain/fixture"
	fixturemock "github.com/riskibarqy/sports-fixtures/internal/mocks/domain/fixture"
)

func newOverviewForTest(t *testing.T) (*OverviewService, *fixturemock.Source) {
	t.Helper()

	source := fixturemock.NewSource(t)
	fixtures := NewFixtureService(source, 7)
	fixtures.now = func() time.Time { return finalsDay.Add(9 * time.Hour) }
	return NewOverviewService(fixtures, nil), source
}

func TestOverviewService_Load_AllSectionsUsingMockery(t *testing.T) {
	t.Parallel()

	service, source := newOverviewForTest(t)
	events := boardEvents()

	source.On("FetchByDay", mock.Anything, finalsDay).Return(events[:2], nil).Once()
	source.On("FetchRange", mock.Anything, finalsDay, 7).Return(events, nil).Once()
	source.On("FetchAllUpcoming", mock.Anything).Return(fixture.Batch{Events: events[2:]}).Once()

	got := service.Load(context.Background(), "au")

	if got.Region != "AU" {
		t.Fatalf("expected AU region, got=%s", got.Region)
	}
	if got.Today.Error != "" || got.Today.Count != 1 {
		t.Fatalf("unexpected today section: %+v", got.Today)
	}
	if got.Week.Count != 4 || got.Upcoming.Count != 3 {
		t.Fatalf("unexpected counts: week=%d upcoming=%d", got.Week.Count, got.Upcoming.Count)
	}
	if got.Live.Count != 1 || got.Live.Groups[0].Sport != "Rugby Union" {
		t.Fatalf("expected one live rugby event across sections, got %+v", got.Live)
	}
}

func TestOverviewService_Load_PartialFailureUsingMockery(t *testing.T) {
	t.Parallel()

	service, source := newOverviewForTest(t)
	events := boardEvents()

	source.On("FetchByDay", mock.Anything, finalsDay).Return(nil, fmt.Errorf("%w: status=502", ErrDependencyUnavailable)).Once()
	source.On("FetchRange", mock.Anything, finalsDay, 7).Return(events, nil).Once()
	source.On("FetchAllUpcoming", mock.Anything).
		Return(fixture.Batch{Events: events[2:], Synthetic: true, FallbackReason: "feed down"}).
		Once()

	got := service.Load(context.Background(), "")

	if got.Region != "AU" {
		t.Fatalf("expected fallback region, got=%s", got.Region)
	}
	if got.Today.Error == "" || got.Today.Groups != nil {
		t.Fatalf("expected today section to carry the error, got %+v", got.Today)
	}
	if got.Week.Error != "" || got.Week.Count != 4 {
		t.Fatalf("week section must load independently, got %+v", got.Week)
	}
	if !got.Upcoming.Synthetic || got.Upcoming.FallbackReason != "feed down" {
		t.Fatalf("expected synthetic upcoming section, got %+v", got.Upcoming)
	}
}
