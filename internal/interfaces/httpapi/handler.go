package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/sports-fixtures/internal/domain/fixture"
	"github.com/riskibarqy/sports-fixtures/internal/domain/region"
	"github.com/riskibarqy/sports-fixtures/internal/domain/sport"
	"github.com/riskibarqy/sports-fixtures/internal/platform/logging"
	"github.com/riskibarqy/sports-fixtures/internal/usecase"
)

const (
	defaultSuggestLimit = 8
	maxSuggestLimit     = 20
)

type Handler struct {
	fixtureService  *usecase.FixtureService
	overviewService *usecase.OverviewService
	regionService   *usecase.RegionService
	logger          *logging.Logger
	validator       *validator.Validate
	now             func() time.Time
}

func NewHandler(
	fixtureService *usecase.FixtureService,
	overviewService *usecase.OverviewService,
	regionService *usecase.RegionService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		fixtureService:  fixtureService,
		overviewService: overviewService,
		regionService:   regionService,
		logger:          logger,
		validator:       validator.New(),
		now:             time.Now,
	}
}

// viewerQuery is the shared query string of the viewer endpoints. date picks
// the day for source=day; eventDate filters events of any source by date.
type viewerQuery struct {
	Source    string `validate:"omitempty,oneof=day range upcoming"`
	Date      string `validate:"omitempty,datetime=2006-01-02"`
	Start     string `validate:"omitempty,datetime=2006-01-02"`
	Days      string `validate:"omitempty,numeric"`
	EventDate string `validate:"omitempty,datetime=2006-01-02"`
	Sport     string `validate:"max=100"`
	Country   string `validate:"max=100"`
	Team      string `validate:"max=100"`
	Search    string `validate:"max=200"`
	Region    string `validate:"omitempty,len=2,alpha"`
	TZ        string `validate:"omitempty,timezone"`
}

func readViewerQuery(r *http.Request) viewerQuery {
	values := r.URL.Query()
	get := func(key string) string {
		return strings.TrimSpace(values.Get(key))
	}

	return viewerQuery{
		Source:    strings.ToLower(get("source")),
		Date:      get("date"),
		Start:     get("start"),
		Days:      get("days"),
		EventDate: get("eventDate"),
		Sport:     get("sport"),
		Country:   get("country"),
		Team:      get("team"),
		Search:    get("q"),
		Region:    get("region"),
		TZ:        get("tz"),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListSports(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSports")
	defer span.End()

	catalog := sport.All()
	items := make([]sportDTO, 0, len(catalog))
	for _, item := range catalog {
		items = append(items, sportToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

// GetSport resolves a sport or competition name, e.g. /v1/sports/nrl.
func (h *Handler) GetSport(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSport")
	defer span.End()

	name := strings.TrimSpace(r.PathValue("name"))
	item, ok := sport.Lookup(name)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: sport %q", usecase.ErrNotFound, name))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sportToDTO(item))
}

func (h *Handler) GetRegion(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRegion")
	defer span.End()

	query := viewerQuery{Region: strings.TrimSpace(r.URL.Query().Get("region"))}
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}

	detected := h.detectRegion(ctx, r, query.Region)
	writeSuccess(ctx, w, http.StatusOK, regionDTO{
		Code:     detected.Code,
		Source:   string(detected.Source),
		Mapped:   detected.Mapped,
		Keywords: nonNil(region.Keywords(detected.Code)),
	})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func (h *Handler) detectRegion(ctx context.Context, r *http.Request, override string) usecase.DetectedRegion {
	return h.regionService.Detect(ctx, usecase.RegionSignals{
		Override:    override,
		EdgeCountry: resolveCountryCode(r),
		ClientIP:    resolveClientIP(r),
	})
}

// boardQuery converts a validated viewerQuery; dates were already checked
// by the validator so parse errors cannot occur here except for days.
func (h *Handler) boardQuery(query viewerQuery, regionCode string) (usecase.BoardQuery, error) {
	days, err := parseDays(query.Days)
	if err != nil {
		return usecase.BoardQuery{}, err
	}

	return usecase.BoardQuery{
		Source: usecase.SourceKind(query.Source),
		Date:   parseDay(query.Date),
		Start:  parseDay(query.Start),
		Days:   days,
		Criteria: fixture.Criteria{
			Date:       query.EventDate,
			Sport:      query.Sport,
			Country:    query.Country,
			Team:       query.Team,
			SearchText: query.Search,
		},
		Region: regionCode,
	}, nil
}

func (h *Handler) today() time.Time {
	now := h.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func parseDay(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	parsed, err := time.Parse(fixture.DateLayout, raw)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

// parseDays returns 0 for an absent value so the service default applies.
func parseDays(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days < 1 || days > usecase.MaxRangeDays {
		return 0, fmt.Errorf("%w: days must be between 1 and %d", usecase.ErrInvalidInput, usecase.MaxRangeDays)
	}
	return days, nil
}

func parseSuggestLimit(raw string) (int, error) {
	if raw == "" {
		return defaultSuggestLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 || limit > maxSuggestLimit {
		return 0, fmt.Errorf("%w: limit must be between 1 and %d", usecase.ErrInvalidInput, maxSuggestLimit)
	}
	return limit, nil
}

// loadLocation is only called on validated tz values.
func loadLocation(name string) *time.Location {
	if name == "" {
		return nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil
	}
	return loc
}
