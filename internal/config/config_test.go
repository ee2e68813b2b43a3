package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("BETTERSTACK_ENABLED", "false")
	t.Setenv("FIXTURES_BASE_URL", "")
	t.Setenv("FIXTURES_RANGE_DAYS", "")
	t.Setenv("FIXTURES_RANGE_CONCURRENCY", "")
	t.Setenv("DEFAULT_REGION", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.FixturesRangeDays != 7 {
		t.Fatalf("expected 7 range days by default, got=%d", cfg.FixturesRangeDays)
	}
	if cfg.FixturesRangeConcurrency != 1 {
		t.Fatalf("expected sequential range fetch by default, got=%d", cfg.FixturesRangeConcurrency)
	}
	if cfg.DefaultRegion != "AU" {
		t.Fatalf("expected AU default region, got=%s", cfg.DefaultRegion)
	}
	if cfg.FixturesTimeout != 10*time.Second {
		t.Fatalf("unexpected fixtures timeout: %s", cfg.FixturesTimeout)
	}
	if !cfg.FixturesCircuitEnabled {
		t.Fatalf("expected circuit breaker enabled by default")
	}
}

func TestLoad_FixturesValidation(t *testing.T) {
	cases := map[string][2]string{
		"relative base url":  {"FIXTURES_BASE_URL", "/fixtures"},
		"range days too big": {"FIXTURES_RANGE_DAYS", "32"},
		"range days zero":    {"FIXTURES_RANGE_DAYS", "0"},
		"zero concurrency":   {"FIXTURES_RANGE_CONCURRENCY", "0"},
		"negative rate":      {"FIXTURES_RATE_LIMIT", "-1"},
		"bad timeout":        {"FIXTURES_TIMEOUT", "soon"},
		"zero failure count": {"FIXTURES_CIRCUIT_FAILURE_COUNT", "0"},
		"bad region":         {"DEFAULT_REGION", "AUS"},
	}

	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv("UPTRACE_ENABLED", "false")
			t.Setenv("BETTERSTACK_ENABLED", "false")
			t.Setenv(kv[0], kv[1])

			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", kv[0], kv[1])
			}
		})
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `foo=bar, uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_BetterStackConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("BETTERSTACK_ENABLED", "true")
	t.Setenv("BETTERSTACK_ENDPOINT", "s1765114.eu-fsn-3.betterstackdata.com")
	t.Setenv("BETTERSTACK_TOKEN", "token-123")
	t.Setenv("BETTERSTACK_TIMEOUT", "4s")
	t.Setenv("BETTERSTACK_MIN_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.BetterStackEnabled {
		t.Fatalf("expected BetterStackEnabled=true")
	}
	if cfg.BetterStackToken != "token-123" {
		t.Fatalf("unexpected BetterStackToken")
	}
	if cfg.BetterStackTimeout != 4*time.Second {
		t.Fatalf("unexpected BetterStackTimeout: %s", cfg.BetterStackTimeout)
	}
	if cfg.BetterStackMinLevel.String() != "warn" {
		t.Fatalf("unexpected BetterStackMinLevel: %s", cfg.BetterStackMinLevel.String())
	}
}

func TestLoad_RegionAndGeoIP(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("BETTERSTACK_ENABLED", "false")
	t.Setenv("DEFAULT_REGION", " nz ")
	t.Setenv("GEOIP_BASE_URL", "https://geo.example.com/")
	t.Setenv("FIXTURES_RANGE_CONCURRENCY", "4")
	t.Setenv("FIXTURES_RATE_LIMIT", "2.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.DefaultRegion != "NZ" {
		t.Fatalf("expected normalized region NZ, got=%s", cfg.DefaultRegion)
	}
	if cfg.GeoIPBaseURL != "https://geo.example.com" {
		t.Fatalf("expected trailing slash trimmed, got=%s", cfg.GeoIPBaseURL)
	}
	if cfg.FixturesRangeConcurrency != 4 || cfg.FixturesRateLimit != 2.5 {
		t.Fatalf("unexpected fixtures tuning: %+v", cfg)
	}
}
