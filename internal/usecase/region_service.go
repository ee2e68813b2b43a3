package usecase

import (
	"context"

	"github.com/riskibarqy/sports-fixtures/internal/domain/region"
	"github.com/riskibarqy/sports-fixtures/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

type RegionSource string

const (
	RegionSourceOverride RegionSource = "override"
	RegionSourceEdge     RegionSource = "edge"
	RegionSourceGeoIP    RegionSource = "geoip"
	RegionSourceDefault  RegionSource = "default"
)

// RegionSignals carries everything a request tells us about the viewer's location.
type RegionSignals struct {
	Override    string
	EdgeCountry string
	ClientIP    string
}

type DetectedRegion struct {
	Code   string
	Source RegionSource
	// Mapped is false for regions without priority keywords; every sport then
	// ranks equally and the board is alphabetical.
	Mapped bool
}

type RegionService struct {
	locator  region.Locator
	fallback string
	logger   *logging.Logger
}

// NewRegionService accepts a nil locator when IP lookups are disabled.
func NewRegionService(locator region.Locator, fallback string, logger *logging.Logger) *RegionService {
	if logger == nil {
		logger = logging.Default()
	}
	fallback = region.Normalize(fallback)
	if !validRegionCode(fallback) {
		fallback = region.Fallback
	}

	return &RegionService{
		locator:  locator,
		fallback: fallback,
		logger:   logger,
	}
}

// Detect never fails. An explicit override wins, then edge country headers,
// then the IP lookup, then the configured default.
func (s *RegionService) Detect(ctx context.Context, signals RegionSignals) DetectedRegion {
	ctx, span := startUsecaseSpan(ctx, "usecase.RegionService.Detect")
	defer span.End()

	detected := s.detect(ctx, signals)
	span.SetAttributes(
		attribute.String("region.code", detected.Code),
		attribute.String("region.source", string(detected.Source)),
	)
	return detected
}

func (s *RegionService) Fallback() string {
	return s.fallback
}

func (s *RegionService) detect(ctx context.Context, signals RegionSignals) DetectedRegion {
	if code := region.Normalize(signals.Override); validRegionCode(code) {
		return newDetectedRegion(code, RegionSourceOverride)
	}
	if code := region.Normalize(signals.EdgeCountry); validRegionCode(code) {
		return newDetectedRegion(code, RegionSourceEdge)
	}

	if s.locator != nil && signals.ClientIP != "" {
		code, err := s.locator.CountryCode(ctx, signals.ClientIP)
		if err != nil {
			s.logger.DebugContext(ctx, "region lookup failed, using fallback", "ip", signals.ClientIP, "error", err)
		} else if code = region.Normalize(code); validRegionCode(code) {
			return newDetectedRegion(code, RegionSourceGeoIP)
		}
	}

	return newDetectedRegion(s.fallback, RegionSourceDefault)
}

func newDetectedRegion(code string, source RegionSource) DetectedRegion {
	return DetectedRegion{Code: code, Source: source, Mapped: region.IsMapped(code)}
}

// validRegionCode accepts two ASCII letters. "ZZ" and "XX" are placeholders
// edge networks send for unknown locations.
func validRegionCode(code string) bool {
	if len(code) != 2 || code == "ZZ" || code == "XX" {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
