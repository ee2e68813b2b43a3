package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/sports-fixtures/internal/domain/fixture"
	fixturemock "github.com/riskibarqy/sports-fixtures/internal/mocks/domain/fixture"
	"github.com/riskibarqy/sports-fixtures/internal/platform/logging"
	"github.com/riskibarqy/sports-fixtures/internal/usecase"
)

var finalsDay = time.Date(2025, time.September, 20, 0, 0, 0, 0, time.UTC)

func intPtr(v int) *int {
	return &v
}

func finalsEvents() []fixture.SportEvent {
	return fixture.NormalizeAll([]fixture.SportEvent{
		{ID: "1", Sport: "Rugby Union", League: "Super Rugby Pacific", HomeTeam: "Crusaders", AwayTeam: "Blues", Date: "2025-09-20", Time: "07:05:00", Status: "Live", HomeScore: intPtr(14), AwayScore: intPtr(10), Country: "New Zealand"},
		{ID: "1", Sport: "Rugby Union", League: "Super Rugby Pacific", HomeTeam: "Crusaders", AwayTeam: "Blues", Date: "2025-09-20", Time: "07:05:00", Status: "Live", HomeScore: intPtr(14), AwayScore: intPtr(10), Country: "New Zealand"},
		{ID: "2", Sport: "Australian Football", League: "AFL Finals", HomeTeam: "Geelong Cats", AwayTeam: "Hawthorn Hawks", Date: "2025-09-20", Status: "NS", Country: "Australia"},
	})
}

func newTestRouter(t *testing.T) (http.Handler, *fixturemock.Source) {
	t.Helper()

	source := fixturemock.NewSource(t)
	logger := logging.NewNop()
	fixtures := usecase.NewFixtureService(source, 7)
	handler := NewHandler(
		fixtures,
		usecase.NewOverviewService(fixtures, logger),
		usecase.NewRegionService(nil, "AU", logger),
		logger,
	)
	handler.now = func() time.Time { return finalsDay.Add(10 * time.Hour) }

	return NewRouter(handler, logger, fixedIDs("req-test"), []string{"*"}), source
}

func serve(router http.Handler, target string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGetBoard_DayWithDuplicateLiveEvent(t *testing.T) {
	router, source := newTestRouter(t)
	source.On("FetchByDay", mock.Anything, finalsDay).Return(finalsEvents(), nil).Once()

	rec := serve(router, "/v1/board?source=day&date=2025-09-20&region=au&tz=Australia/Sydney", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get(requestIDHeader); got != "req-test" {
		t.Fatalf("expected request id header, got %q", got)
	}

	data, _ := decodeEnvelope(t, rec)["data"].(map[string]any)
	if data["region"] != "AU" || data["liveCount"] != float64(1) || data["upcomingCount"] != float64(1) {
		t.Fatalf("unexpected board summary: %v", data)
	}

	live, _ := data["live"].([]any)
	group, _ := live[0].(map[string]any)
	if group["sport"] != "Rugby Union" || group["icon"] != "🏉" {
		t.Fatalf("unexpected live group: %v", group)
	}
	events, _ := group["events"].([]any)
	event, _ := events[0].(map[string]any)
	if event["time"] != "07:05" || event["kickoffLocal"] != "2025-09-20 17:05" || event["isLive"] != true {
		t.Fatalf("unexpected live event: %v", event)
	}

	upcoming, _ := data["upcoming"].([]any)
	afl, _ := upcoming[0].(map[string]any)
	aflEvents, _ := afl["events"].([]any)
	aflEvent, _ := aflEvents[0].(map[string]any)
	if aflEvent["time"] != fixture.TimeTBD {
		t.Fatalf("expected TBD time for missing kickoff, got %v", aflEvent["time"])
	}
}

func TestGetBoard_EventDateFiltersUpcoming(t *testing.T) {
	router, source := newTestRouter(t)

	events := append(finalsEvents(), fixture.Normalize(fixture.SportEvent{
		ID: "3", Sport: "Rugby League", League: "NRL Finals", HomeTeam: "Brisbane Broncos", AwayTeam: "Penrith Panthers",
		Date: "2025-09-21", Time: "19:35:00", Status: "NS", Country: "Australia",
	}))
	source.On("FetchAllUpcoming", mock.Anything).Return(fixture.Batch{Events: events}).Once()

	rec := serve(router, "/v1/board?source=upcoming&eventDate=2025-09-21&region=AU", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	data, _ := decodeEnvelope(t, rec)["data"].(map[string]any)
	if data["total"] != float64(3) || data["filtered"] != float64(1) || data["liveCount"] != float64(0) {
		t.Fatalf("expected only the 2025-09-21 event, got %v", data)
	}
	upcoming, _ := data["upcoming"].([]any)
	group, _ := upcoming[0].(map[string]any)
	if group["sport"] != "Rugby League" {
		t.Fatalf("unexpected upcoming group: %v", group)
	}

	if rec := serve(router, "/v1/board?eventDate=21-09-2025", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed eventDate, got %d", rec.Code)
	}
}

func TestGetBoard_InvalidQuery(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, target := range []string{
		"/v1/board?source=weekly",
		"/v1/board?source=range&days=0",
		"/v1/board?source=range&days=40",
		"/v1/board?date=20-09-2025",
		"/v1/board?region=AUS",
		"/v1/board?tz=Mars/Olympus",
	} {
		rec := serve(router, target, nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected status 400, got %d", target, rec.Code)
		}
	}
}

func TestListFixturesByDay_DefaultsToTodayAndMapsOutage(t *testing.T) {
	router, source := newTestRouter(t)
	source.
		On("FetchByDay", mock.Anything, finalsDay).
		Return(nil, fmt.Errorf("%w: status=503", usecase.ErrDependencyUnavailable)).
		Once()

	rec := serve(router, "/v1/fixtures/day", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}
	errorObj, _ := decodeEnvelope(t, rec)["error"].(map[string]any)
	if errorObj["message"] != unavailableMessage {
		t.Fatalf("unexpected error message: %v", errorObj["message"])
	}
}

func TestListFixturesByRange_UsesDefaultDays(t *testing.T) {
	router, source := newTestRouter(t)
	source.On("FetchRange", mock.Anything, finalsDay, 7).Return(finalsEvents(), nil).Once()

	rec := serve(router, "/v1/fixtures/range", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	data, _ := decodeEnvelope(t, rec)["data"].(map[string]any)
	if data["start"] != "2025-09-20" || data["days"] != float64(7) || data["count"] != float64(2) {
		t.Fatalf("unexpected range payload: %v", data)
	}
}

func TestListUpcomingFixtures_Synthetic(t *testing.T) {
	router, source := newTestRouter(t)
	source.
		On("FetchAllUpcoming", mock.Anything).
		Return(fixture.Batch{Events: finalsEvents()[2:], Synthetic: true, FallbackReason: "feed down"}).
		Once()

	rec := serve(router, "/v1/fixtures/upcoming", nil)
	data, _ := decodeEnvelope(t, rec)["data"].(map[string]any)
	if data["synthetic"] != true || data["fallbackReason"] != "feed down" || data["count"] != float64(1) {
		t.Fatalf("unexpected upcoming payload: %v", data)
	}
}

func TestListLeagues(t *testing.T) {
	router, source := newTestRouter(t)
	source.On("FetchAllUpcoming", mock.Anything).Return(fixture.Batch{Events: finalsEvents()}).Once()

	rec := serve(router, "/v1/leagues?sport=Rugby%20Union", nil)
	data, _ := decodeEnvelope(t, rec)["data"].(map[string]any)
	leagues, _ := data["leagues"].([]any)
	if len(leagues) != 1 {
		t.Fatalf("expected one league after filtering, got %v", leagues)
	}
	if league, _ := leagues[0].(map[string]any); league["league"] != "Super Rugby Pacific" {
		t.Fatalf("unexpected league: %v", league)
	}
}

func TestGetOverview_PartialFailure(t *testing.T) {
	router, source := newTestRouter(t)
	// The overview always loads the real current day.
	source.On("FetchByDay", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("%w: timeout", usecase.ErrDependencyUnavailable)).Once()
	source.On("FetchRange", mock.Anything, mock.Anything, 7).Return(finalsEvents(), nil).Once()
	source.On("FetchAllUpcoming", mock.Anything).Return(fixture.Batch{Events: finalsEvents()}).Once()

	rec := serve(router, "/v1/overview", map[string]string{"CF-IPCountry": "NZ"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	data, _ := decodeEnvelope(t, rec)["data"].(map[string]any)
	today, _ := data["today"].(map[string]any)
	week, _ := data["week"].(map[string]any)
	if data["region"] != "NZ" || today["error"] == nil || week["count"] != float64(2) {
		t.Fatalf("unexpected overview: %v", data)
	}
}

func TestSuggestTeams(t *testing.T) {
	router, source := newTestRouter(t)
	source.On("FetchAllUpcoming", mock.Anything).Return(fixture.Batch{Events: finalsEvents()}).Once()

	rec := serve(router, "/v1/teams/suggest?q=crus&limit=3", nil)
	data, _ := decodeEnvelope(t, rec)["data"].(map[string]any)
	teams, _ := data["teams"].([]any)
	if len(teams) != 1 || teams[0] != "Crusaders" {
		t.Fatalf("unexpected suggestions: %v", teams)
	}

	if rec := serve(router, "/v1/teams/suggest?q=crus&limit=50", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for oversized limit, got %d", rec.Code)
	}
}

func TestListSportsAndRegion(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := serve(router, "/v1/sports", nil)
	sports, _ := decodeEnvelope(t, rec)["data"].([]any)
	if len(sports) == 0 {
		t.Fatalf("expected sport catalog")
	}

	rec = serve(router, "/v1/region", map[string]string{"CF-IPCountry": "us"})
	data, _ := decodeEnvelope(t, rec)["data"].(map[string]any)
	if data["code"] != "US" || data["source"] != string(usecase.RegionSourceEdge) || data["mapped"] != true {
		t.Fatalf("unexpected region payload: %v", data)
	}

	rec = serve(router, "/v1/region?region=ZA", map[string]string{"CF-IPCountry": "us"})
	data, _ = decodeEnvelope(t, rec)["data"].(map[string]any)
	if data["code"] != "ZA" || data["source"] != string(usecase.RegionSourceOverride) {
		t.Fatalf("expected override to win, got %v", data)
	}
}

func TestGetSport(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := serve(router, "/v1/sports/NRL", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	data, _ := decodeEnvelope(t, rec)["data"].(map[string]any)
	if data["name"] != "Rugby League" {
		t.Fatalf("expected competition to resolve to its sport, got %v", data)
	}

	rec = serve(router, "/v1/sports/quidditch", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
	errorObj, _ := decodeEnvelope(t, rec)["error"].(map[string]any)
	if errorObj["status"] != "NOT_FOUND" {
		t.Fatalf("unexpected error payload: %v", errorObj)
	}
}

func TestHealthz(t *testing.T) {
	router, _ := newTestRouter(t)
	if rec := serve(router, "/healthz", nil); rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestRecoverPanic(t *testing.T) {
	handler := recoverPanic(logging.NewNop(), http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/board", nil).WithContext(context.Background()))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
}
