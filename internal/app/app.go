package app

import (
	"fmt"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/riskibarqy/sports-fixtures/external/fixturefeed"
	"github.com/riskibarqy/sports-fixtures/external/geoip"
	"github.com/riskibarqy/sports-fixtures/internal/config"
	"github.com/riskibarqy/sports-fixtures/internal/domain/region"
	"github.com/riskibarqy/sports-fixtures/internal/interfaces/httpapi"
	idgen "github.com/riskibarqy/sports-fixtures/internal/platform/id"
	"github.com/riskibarqy/sports-fixtures/internal/platform/logging"
	"github.com/riskibarqy/sports-fixtures/internal/platform/resilience"
	"github.com/riskibarqy/sports-fixtures/internal/usecase"
)

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}
	if logger == nil {
		logger = logging.Default()
	}

	feed := fixturefeed.NewClient(fixturefeed.ClientConfig{
		HTTPClient: &http.Client{
			Timeout:   cfg.FixturesTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		BaseURL:          cfg.FixturesBaseURL,
		Timeout:          cfg.FixturesTimeout,
		MaxResponseBytes: cfg.FixturesMaxResponseBytes,
		RangeConcurrency: cfg.FixturesRangeConcurrency,
		RateLimit:        cfg.FixturesRateLimit,
		Logger:           logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FixturesCircuitEnabled,
			FailureThreshold: cfg.FixturesCircuitFailureCount,
			OpenTimeout:      cfg.FixturesCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FixturesCircuitHalfOpenMaxReq,
		},
	})

	var locator region.Locator
	if cfg.GeoIPEnabled {
		locator = geoip.NewClient(geoip.ClientConfig{
			BaseURL:        cfg.GeoIPBaseURL,
			Timeout:        cfg.GeoIPTimeout,
			CacheTTL:       cfg.GeoIPCacheTTL,
			Logger:         logger,
			CircuitBreaker: resilience.DefaultCircuitBreakerConfig(),
		})
	}

	fixtureSvc := usecase.NewFixtureService(feed, cfg.FixturesRangeDays)
	overviewSvc := usecase.NewOverviewService(fixtureSvc, logger)
	regionSvc := usecase.NewRegionService(locator, cfg.DefaultRegion, logger)

	handler := httpapi.NewHandler(fixtureSvc, overviewSvc, regionSvc, logger)
	router := httpapi.NewRouter(handler, logger, idgen.NewUUIDGenerator(), cfg.CORSAllowedOrigins)

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}
