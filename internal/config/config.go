package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/sports-fixtures/internal/domain/region"
	"github.com/riskibarqy/sports-fixtures/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	CORSAllowedOrigins []string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	LogLevel           logging.Level

	FixturesBaseURL               string
	FixturesTimeout               time.Duration
	FixturesRangeDays             int
	FixturesRangeConcurrency      int
	FixturesRateLimit             float64
	FixturesCircuitEnabled        bool
	FixturesCircuitFailureCount   int
	FixturesCircuitOpenTimeout    time.Duration
	FixturesCircuitHalfOpenMaxReq int
	FixturesMaxResponseBytes      int64

	GeoIPEnabled  bool
	GeoIPBaseURL  string
	GeoIPTimeout  time.Duration
	GeoIPCacheTTL time.Duration
	DefaultRegion string

	PprofEnabled               bool
	PprofAddr                  string
	UptraceEnabled             bool
	UptraceDSN                 string
	BetterStackEnabled         bool
	BetterStackEndpoint        string
	BetterStackToken           string
	BetterStackTimeout         time.Duration
	BetterStackMinLevel        logging.Level
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:             appEnv,
		ServiceName:        getEnv("APP_SERVICE_NAME", "sports-fixtures-api"),
		ServiceVersion:     getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:           getEnv("APP_HTTP_ADDR", ":8080"),
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:           parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	if cfg.ReadTimeout, err = getEnvAsDuration("APP_READ_TIMEOUT", "10s"); err != nil {
		return Config{}, err
	}
	if cfg.WriteTimeout, err = getEnvAsDuration("APP_WRITE_TIMEOUT", "60s"); err != nil {
		return Config{}, err
	}

	if err := loadFixtures(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadGeoIP(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadObservability(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func loadFixtures(cfg *Config) error {
	baseURL := strings.TrimSpace(getEnv("FIXTURES_BASE_URL", "https://sports-fixtures-worker.workers.dev"))
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("FIXTURES_BASE_URL must be an absolute URL, got %q", baseURL)
	}
	cfg.FixturesBaseURL = baseURL

	if cfg.FixturesTimeout, err = getEnvAsDuration("FIXTURES_TIMEOUT", "10s"); err != nil {
		return err
	}

	if cfg.FixturesRangeDays, err = getEnvAsInt("FIXTURES_RANGE_DAYS", 7); err != nil {
		return fmt.Errorf("parse FIXTURES_RANGE_DAYS: %w", err)
	}
	if cfg.FixturesRangeDays < 1 || cfg.FixturesRangeDays > 31 {
		return fmt.Errorf("FIXTURES_RANGE_DAYS must be between 1 and 31")
	}

	if cfg.FixturesRangeConcurrency, err = getEnvAsInt("FIXTURES_RANGE_CONCURRENCY", 1); err != nil {
		return fmt.Errorf("parse FIXTURES_RANGE_CONCURRENCY: %w", err)
	}
	if cfg.FixturesRangeConcurrency < 1 {
		return fmt.Errorf("FIXTURES_RANGE_CONCURRENCY must be >= 1")
	}

	if cfg.FixturesRateLimit, err = strconv.ParseFloat(getEnv("FIXTURES_RATE_LIMIT", "0"), 64); err != nil {
		return fmt.Errorf("parse FIXTURES_RATE_LIMIT: %w", err)
	}
	if cfg.FixturesRateLimit < 0 {
		return fmt.Errorf("FIXTURES_RATE_LIMIT must be >= 0")
	}

	maxBytes, err := getEnvAsInt("FIXTURES_MAX_RESPONSE_BYTES", 8<<20)
	if err != nil {
		return fmt.Errorf("parse FIXTURES_MAX_RESPONSE_BYTES: %w", err)
	}
	if maxBytes <= 0 {
		return fmt.Errorf("FIXTURES_MAX_RESPONSE_BYTES must be > 0")
	}
	cfg.FixturesMaxResponseBytes = int64(maxBytes)

	if cfg.FixturesCircuitEnabled, err = strconv.ParseBool(getEnv("FIXTURES_CIRCUIT_ENABLED", "true")); err != nil {
		return fmt.Errorf("parse FIXTURES_CIRCUIT_ENABLED: %w", err)
	}
	if cfg.FixturesCircuitFailureCount, err = getEnvAsInt("FIXTURES_CIRCUIT_FAILURE_COUNT", 5); err != nil {
		return fmt.Errorf("parse FIXTURES_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if cfg.FixturesCircuitFailureCount < 1 {
		return fmt.Errorf("FIXTURES_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	if cfg.FixturesCircuitOpenTimeout, err = getEnvAsDuration("FIXTURES_CIRCUIT_OPEN_TIMEOUT", "15s"); err != nil {
		return err
	}
	if cfg.FixturesCircuitHalfOpenMaxReq, err = getEnvAsInt("FIXTURES_CIRCUIT_HALF_OPEN_MAX_REQ", 1); err != nil {
		return fmt.Errorf("parse FIXTURES_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if cfg.FixturesCircuitHalfOpenMaxReq < 1 {
		return fmt.Errorf("FIXTURES_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	return nil
}

func loadGeoIP(cfg *Config) error {
	var err error
	if cfg.GeoIPEnabled, err = strconv.ParseBool(getEnv("GEOIP_ENABLED", "true")); err != nil {
		return fmt.Errorf("parse GEOIP_ENABLED: %w", err)
	}
	cfg.GeoIPBaseURL = strings.TrimRight(strings.TrimSpace(getEnv("GEOIP_BASE_URL", "https://ipapi.co")), "/")
	if cfg.GeoIPEnabled && cfg.GeoIPBaseURL == "" {
		return fmt.Errorf("GEOIP_BASE_URL is required when GEOIP_ENABLED=true")
	}
	if cfg.GeoIPTimeout, err = getEnvAsDuration("GEOIP_TIMEOUT", "2s"); err != nil {
		return err
	}
	if cfg.GeoIPCacheTTL, err = getEnvAsDuration("GEOIP_CACHE_TTL", "1h"); err != nil {
		return err
	}

	cfg.DefaultRegion = region.Normalize(getEnv("DEFAULT_REGION", region.Fallback))
	if len(cfg.DefaultRegion) != 2 {
		return fmt.Errorf("DEFAULT_REGION must be a two-letter country code, got %q", cfg.DefaultRegion)
	}
	return nil
}

func loadObservability(cfg *Config) error {
	var err error

	if cfg.UptraceEnabled, err = strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false")); err != nil {
		return fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	cfg.UptraceDSN = strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if cfg.UptraceEnabled && cfg.UptraceDSN == "" {
		return fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	if cfg.BetterStackEnabled, err = strconv.ParseBool(getEnv("BETTERSTACK_ENABLED", "false")); err != nil {
		return fmt.Errorf("parse BETTERSTACK_ENABLED: %w", err)
	}
	cfg.BetterStackEndpoint = strings.TrimSpace(getEnv("BETTERSTACK_ENDPOINT", ""))
	if cfg.BetterStackEnabled && cfg.BetterStackEndpoint == "" {
		return fmt.Errorf("BETTERSTACK_ENDPOINT is required when BETTERSTACK_ENABLED=true")
	}
	cfg.BetterStackToken = strings.TrimSpace(getEnv("BETTERSTACK_TOKEN", ""))
	if cfg.BetterStackTimeout, err = getEnvAsDuration("BETTERSTACK_TIMEOUT", "3s"); err != nil {
		return err
	}
	cfg.BetterStackMinLevel = parseLogLevel(getEnv("BETTERSTACK_MIN_LEVEL", "error"))

	if cfg.PprofEnabled, err = strconv.ParseBool(getEnv("PPROF_ENABLED", "false")); err != nil {
		return fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	cfg.PprofAddr = strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))

	if cfg.PyroscopeEnabled, err = strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false")); err != nil {
		return fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	cfg.PyroscopeServerAddress = strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if cfg.PyroscopeEnabled && cfg.PyroscopeServerAddress == "" {
		return fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	cfg.PyroscopeAuthToken = strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", ""))
	cfg.PyroscopeBasicAuthUser = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", ""))
	cfg.PyroscopeBasicAuthPassword = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", ""))
	if cfg.PyroscopeUploadRate, err = getEnvAsDuration("PYROSCOPE_UPLOAD_RATE", "15s"); err != nil {
		return err
	}

	return nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

// getEnvAsDuration parses a positive duration.
func getEnvAsDuration(key, fallback string) (time.Duration, error) {
	out, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if out <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	for _, item := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			return strings.Trim(strings.TrimSpace(parts[1]), "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
