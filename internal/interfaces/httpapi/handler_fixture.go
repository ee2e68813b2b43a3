package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/sports-fixtures/internal/domain/fixture"
)

func (h *Handler) ListFixturesByDay(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFixturesByDay")
	defer span.End()

	query := readViewerQuery(r)
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}

	day := parseDay(query.Date)
	if day.IsZero() {
		day = h.today()
	}

	events, err := h.fixtureService.Day(ctx, day)
	if err != nil {
		h.logger.WarnContext(ctx, "list fixtures by day failed", "date", day.Format(fixture.DateLayout), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, eventListDTO{
		Date:   day.Format(fixture.DateLayout),
		Count:  len(events),
		Events: eventsToDTO(events, loadLocation(query.TZ)),
	})
}

func (h *Handler) ListFixturesByRange(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFixturesByRange")
	defer span.End()

	query := readViewerQuery(r)
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}
	days, err := parseDays(query.Days)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if days == 0 {
		days = h.fixtureService.DefaultRangeDays()
	}

	start := parseDay(query.Start)
	if start.IsZero() {
		start = h.today()
	}

	events, err := h.fixtureService.Range(ctx, start, days)
	if err != nil {
		h.logger.WarnContext(ctx, "list fixtures by range failed",
			"start", start.Format(fixture.DateLayout),
			"days", days,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, eventListDTO{
		Start:  start.Format(fixture.DateLayout),
		Days:   days,
		Count:  len(events),
		Events: eventsToDTO(events, loadLocation(query.TZ)),
	})
}

func (h *Handler) ListUpcomingFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListUpcomingFixtures")
	defer span.End()

	query := readViewerQuery(r)
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}

	batch := h.fixtureService.Upcoming(ctx)
	writeSuccess(ctx, w, http.StatusOK, eventListDTO{
		Count:          len(batch.Events),
		Synthetic:      batch.Synthetic,
		FallbackReason: batch.FallbackReason,
		Events:         eventsToDTO(batch.Events, loadLocation(query.TZ)),
	})
}

func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetBoard")
	defer span.End()

	query := readViewerQuery(r)
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}

	detected := h.detectRegion(ctx, r, query.Region)
	boardQuery, err := h.boardQuery(query, detected.Code)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	board, err := h.fixtureService.Board(ctx, boardQuery)
	if err != nil {
		h.logger.WarnContext(ctx, "get board failed", "source", query.Source, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, boardToDTO(board, loadLocation(query.TZ)))
}

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagues")
	defer span.End()

	query := readViewerQuery(r)
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}

	boardQuery, err := h.boardQuery(query, "")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	board, err := h.fixtureService.Leagues(ctx, boardQuery)
	if err != nil {
		h.logger.WarnContext(ctx, "list leagues failed", "source", query.Source, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueBoardToDTO(board, loadLocation(query.TZ)))
}

func (h *Handler) GetOverview(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetOverview")
	defer span.End()

	query := readViewerQuery(r)
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}

	detected := h.detectRegion(ctx, r, query.Region)
	overview := h.overviewService.Load(ctx, detected.Code)
	writeSuccess(ctx, w, http.StatusOK, overviewToDTO(overview, loadLocation(query.TZ)))
}

func (h *Handler) SuggestTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SuggestTeams")
	defer span.End()

	query := readViewerQuery(r)
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}
	limit, err := parseSuggestLimit(strings.TrimSpace(r.URL.Query().Get("limit")))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	boardQuery, err := h.boardQuery(query, "")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	// q is the text being completed, not an event filter.
	boardQuery.Criteria.SearchText = ""

	names, err := h.fixtureService.SuggestTeams(ctx, boardQuery, query.Search, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "suggest teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"query": query.Search,
		"teams": nonNil(names),
	})
}
