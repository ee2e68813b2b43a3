package usecase

import (
	"context"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/riskibarqy/sports-fixtures/internal/domain/fixture"
	"github.com/riskibarqy/sports-fixtures/internal/domain/region"
	"github.com/riskibarqy/sports-fixtures/internal/platform/logging"
)

// OverviewSection is one independently loaded slice of the landing page.
// Error is set instead of Groups when that slice failed.
type OverviewSection struct {
	Groups         []fixture.SportGroup
	Count          int
	Synthetic      bool
	FallbackReason string
	Error          string
}

type Overview struct {
	Region   string
	Today    OverviewSection
	Week     OverviewSection
	Upcoming OverviewSection
	Live     OverviewSection
}

type OverviewService struct {
	fixtures *FixtureService
	logger   *logging.Logger
}

func NewOverviewService(fixtures *FixtureService, logger *logging.Logger) *OverviewService {
	if logger == nil {
		logger = logging.Default()
	}
	return &OverviewService{fixtures: fixtures, logger: logger}
}

// Load fetches today, the next week and all upcoming fixtures concurrently.
// A failing section does not affect the others. Live collects in-progress
// events from whatever the other sections returned.
func (s *OverviewService) Load(ctx context.Context, regionCode string) Overview {
	ctx, span := startUsecaseSpan(ctx, "usecase.OverviewService.Load")
	defer span.End()

	regionCode = region.Normalize(regionCode)
	if regionCode == "" {
		regionCode = region.Fallback
	}

	today := s.fixtures.dayOrToday(time.Time{})

	var (
		todayEvents, weekEvents []fixture.SportEvent
		todayErr, weekErr       error
		upcoming                fixture.Batch
	)

	var wg conc.WaitGroup
	wg.Go(func() {
		todayEvents, todayErr = s.fixtures.Day(ctx, today)
	})
	wg.Go(func() {
		weekEvents, weekErr = s.fixtures.Range(ctx, today, s.fixtures.defaultRangeDays)
	})
	wg.Go(func() {
		upcoming = s.fixtures.Upcoming(ctx)
	})
	wg.Wait()

	out := Overview{
		Region:   regionCode,
		Today:    s.section(ctx, "today", todayEvents, todayErr, regionCode),
		Week:     s.section(ctx, "week", weekEvents, weekErr, regionCode),
		Upcoming: s.section(ctx, "upcoming", upcoming.Events, nil, regionCode),
	}
	out.Upcoming.Synthetic = upcoming.Synthetic
	out.Upcoming.FallbackReason = upcoming.FallbackReason

	all := make([]fixture.SportEvent, 0, len(todayEvents)+len(weekEvents)+len(upcoming.Events))
	all = append(all, todayEvents...)
	all = append(all, weekEvents...)
	all = append(all, upcoming.Events...)
	live, _ := fixture.PartitionLiveUpcoming(fixture.GroupBySport(fixture.Dedupe(all)))
	out.Live = OverviewSection{
		Groups: fixture.SortByPriority(live, regionCode),
		Count:  live.Len(),
	}

	return out
}

func (s *OverviewService) section(ctx context.Context, name string, events []fixture.SportEvent, err error, regionCode string) OverviewSection {
	if err != nil {
		s.logger.WarnContext(ctx, "overview section failed", "section", name, "error", err)
		return OverviewSection{Error: err.Error()}
	}
	return OverviewSection{
		Groups: fixture.SortByPriority(fixture.GroupBySport(events), regionCode),
		Count:  len(events),
	}
}
