package geoip

import (
	"context"
	"net"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"

	"github.com/riskibarqy/sports-fixtures/internal/domain/region"
	"github.com/riskibarqy/sports-fixtures/internal/platform/cache"
	"github.com/riskibarqy/sports-fixtures/internal/platform/logging"
	"github.com/riskibarqy/sports-fixtures/internal/platform/resilience"
)

const (
	defaultTimeout   = 2 * time.Second
	defaultCacheTTL  = time.Hour
	defaultCacheSize = 10000
	maxBodyBytes     = 64 << 10
)

var ErrLookupFailed = crerr.New("geoip lookup failed")

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type ClientConfig struct {
	BaseURL        string
	Timeout        time.Duration
	CacheTTL       time.Duration
	CacheSize      int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client resolves client IPs to country codes through an ipapi-style
// endpoint: GET {base}/{ip}/json/ -> {"country_code": "AU"}.
type Client struct {
	http    *fasthttp.Client
	baseURL string
	timeout time.Duration
	cache   *cache.Store[string]
	breaker *resilience.CircuitBreaker
	logger  *logging.Logger
}

var _ region.Locator = (*Client)(nil)

type lookupResponse struct {
	CountryCode string `json:"country_code"`
	Error       bool   `json:"error"`
	Reason      string `json:"reason"`
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("geoip")

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	size := cfg.CacheSize
	if size <= 0 {
		size = defaultCacheSize
	}

	breaker := resilience.NewCircuitBreaker("geoip", cfg.CircuitBreaker)
	breaker.OnStateChange(func(name string, from, to resilience.CircuitState) {
		logger.Warn("circuit breaker state changed", "breaker", name, "from", string(from), "to", string(to))
	})

	return &Client{
		http: &fasthttp.Client{
			Name:                "sports-fixtures-geoip",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxResponseBodySize: maxBodyBytes,
		},
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		timeout: timeout,
		cache:   cache.NewStore[string](ttl, size),
		breaker: breaker,
		logger:  logger,
	}
}

// CountryCode returns the upper-case country code for a public IP. Results
// are cached per IP; failures are not.
func (c *Client) CountryCode(ctx context.Context, ip string) (string, error) {
	addr := net.ParseIP(strings.TrimSpace(ip))
	if addr == nil {
		return "", crerr.Wrapf(ErrLookupFailed, "invalid ip %q", ip)
	}
	if addr.IsLoopback() || addr.IsPrivate() || addr.IsUnspecified() || addr.IsLinkLocalUnicast() {
		return "", crerr.Wrapf(ErrLookupFailed, "non-routable ip %s", addr.String())
	}

	key := addr.String()
	return c.cache.GetOrLoad(ctx, key, func(ctx context.Context) (string, error) {
		return c.lookup(ctx, key)
	})
}

func (c *Client) lookup(ctx context.Context, ip string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", crerr.Mark(err, ErrLookupFailed)
	}

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + "/" + ip + "/json/")
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	var payload lookupResponse
	err := c.breaker.Do(ctx, func(context.Context) error {
		if err := c.http.DoTimeout(req, resp, timeout); err != nil {
			return crerr.Wrap(err, "send geoip request")
		}
		if status := resp.StatusCode(); status != fasthttp.StatusOK {
			return crerr.Newf("geoip status=%d", status)
		}
		if err := json.Unmarshal(resp.Body(), &payload); err != nil {
			return crerr.Wrap(err, "decode geoip payload")
		}
		return nil
	})
	if err != nil {
		c.logger.DebugContext(ctx, "geoip lookup failed", "ip", ip, "error", err)
		return "", crerr.Mark(err, ErrLookupFailed)
	}

	code := region.Normalize(payload.CountryCode)
	if payload.Error || len(code) != 2 {
		return "", crerr.Wrapf(ErrLookupFailed, "no country for ip %s: %s", ip, payload.Reason)
	}
	return code, nil
}
