package fixturefeed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
	"github.com/valyala/bytebufferpool"
	"golang.org/x/time/rate"

	"github.com/riskibarqy/sports-fixtures/internal/domain/fixture"
	"github.com/riskibarqy/sports-fixtures/internal/platform/logging"
	"github.com/riskibarqy/sports-fixtures/internal/platform/resilience"
	"github.com/riskibarqy/sports-fixtures/internal/usecase"
)

const (
	defaultTimeout          = 10 * time.Second
	defaultMaxResponseBytes = 8 << 20
	dayParam                = "day"
	bodyPreviewLimit        = 256
)

var (
	ErrFetch            = crerr.New("fixtures feed request failed")
	ErrUpstreamReported = crerr.New("fixtures feed reported an error")
)

// FetchError describes a failed feed request. It matches ErrFetch and
// usecase.ErrDependencyUnavailable. Responses that carried an embedded error
// message also match ErrUpstreamReported.
type FetchError struct {
	Day        string
	StatusCode int
	Upstream   string
	Err        error
}

func (e *FetchError) Error() string {
	scope := "upcoming"
	if e.Day != "" {
		scope = "day=" + e.Day
	}

	switch {
	case e.Upstream != "":
		return fmt.Sprintf("fixtures feed %s: upstream error: %s", scope, e.Upstream)
	case e.StatusCode != 0:
		return fmt.Sprintf("fixtures feed %s: status=%d", scope, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("fixtures feed %s: %v", scope, e.Err)
	default:
		return fmt.Sprintf("fixtures feed %s: request failed", scope)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func (e *FetchError) Is(target error) bool {
	switch target {
	case ErrFetch, usecase.ErrDependencyUnavailable:
		return true
	case ErrUpstreamReported:
		return e.Upstream != ""
	default:
		return false
	}
}

type ClientConfig struct {
	HTTPClient       *http.Client
	BaseURL          string
	Timeout          time.Duration
	MaxResponseBytes int64
	// RangeConcurrency above 1 fetches range days in parallel.
	RangeConcurrency int
	// RateLimit caps outgoing requests per second; zero disables pacing.
	RateLimit      float64
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the fixtures worker that fronts the sports data provider.
type Client struct {
	httpClient       *http.Client
	baseURL          string
	timeout          time.Duration
	maxResponseBytes int64
	rangeConcurrency int
	limiter          *rate.Limiter
	logger           *logging.Logger
	breaker          *resilience.CircuitBreaker
	flight           resilience.Group[[]byte]
	synthetic        func() []fixture.SportEvent
}

var _ fixture.Source = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("fixturefeed")

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	maxBytes := cfg.MaxResponseBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxResponseBytes
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}

	breaker := resilience.NewCircuitBreaker("fixturefeed", cfg.CircuitBreaker)
	breaker.OnStateChange(func(name string, from, to resilience.CircuitState) {
		logger.Warn("circuit breaker state changed", "breaker", name, "from", string(from), "to", string(to))
	})

	return &Client{
		httpClient:       httpClient,
		baseURL:          strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		timeout:          timeout,
		maxResponseBytes: maxBytes,
		rangeConcurrency: maxInt(cfg.RangeConcurrency, 1),
		limiter:          rate.NewLimiter(limit, 1),
		logger:           logger,
		breaker:          breaker,
		synthetic:        SyntheticEvents,
	}
}

// FetchByDay returns the fixtures the feed lists for one calendar day. A
// missing or null events list is an empty day, not an error.
func (c *Client) FetchByDay(ctx context.Context, day time.Time) ([]fixture.SportEvent, error) {
	dayStr := day.Format(fixture.DateLayout)

	envelope, err := c.fetch(ctx, dayStr)
	if err != nil {
		return nil, err
	}
	if envelope.Error.set {
		return nil, &FetchError{Day: dayStr, Upstream: envelope.Error.text}
	}

	return envelope.toEvents(), nil
}

// FetchRange fetches numDays consecutive days from start and concatenates
// them in day order. The first failing day, in day order, fails the call.
func (c *Client) FetchRange(ctx context.Context, start time.Time, numDays int) ([]fixture.SportEvent, error) {
	if numDays <= 0 {
		return []fixture.SportEvent{}, nil
	}
	if c.rangeConcurrency <= 1 || numDays == 1 {
		out := make([]fixture.SportEvent, 0, numDays*16)
		for i := 0; i < numDays; i++ {
			events, err := c.FetchByDay(ctx, start.AddDate(0, 0, i))
			if err != nil {
				return nil, err
			}
			out = append(out, events...)
		}
		return out, nil
	}

	return c.fetchRangeParallel(ctx, start, numDays)
}

func (c *Client) fetchRangeParallel(ctx context.Context, start time.Time, numDays int) ([]fixture.SportEvent, error) {
	pool, err := ants.NewPool(minInt(c.rangeConcurrency, numDays))
	if err != nil {
		return nil, &FetchError{Day: start.Format(fixture.DateLayout), Err: crerr.Wrap(err, "create range worker pool")}
	}
	defer pool.Release()

	results := make([][]fixture.SportEvent, numDays)
	errs := make([]error, numDays)

	var workers sync.WaitGroup
	for i := 0; i < numDays; i++ {
		idx := i
		day := start.AddDate(0, 0, idx)
		workers.Add(1)
		if submitErr := pool.Submit(func() {
			defer workers.Done()
			results[idx], errs[idx] = c.FetchByDay(ctx, day)
		}); submitErr != nil {
			workers.Done()
			errs[idx] = &FetchError{Day: day.Format(fixture.DateLayout), Err: crerr.Wrap(submitErr, "submit range task")}
		}
	}
	workers.Wait()

	total := 0
	for idx := range results {
		if errs[idx] != nil {
			return nil, errs[idx]
		}
		total += len(results[idx])
	}

	out := make([]fixture.SportEvent, 0, total)
	for _, events := range results {
		out = append(out, events...)
	}
	return out, nil
}

// FetchAllUpcoming never fails: any problem with the feed yields the synthetic
// demonstration catalog.
func (c *Client) FetchAllUpcoming(ctx context.Context) fixture.Batch {
	envelope, err := c.fetch(ctx, "")
	if err == nil && envelope.Error.set {
		err = &FetchError{Upstream: envelope.Error.text}
	}
	if err != nil {
		c.logger.WarnContext(ctx, "upcoming fixtures unavailable, serving synthetic catalog", "error", err)
		return fixture.Batch{
			Events:         c.synthetic(),
			Synthetic:      true,
			FallbackReason: err.Error(),
		}
	}

	return fixture.Batch{Events: envelope.toEvents()}
}

func (c *Client) fetch(ctx context.Context, day string) (eventsEnvelope, error) {
	raw, err := c.doRequest(ctx, day)
	if err != nil {
		return eventsEnvelope{}, err
	}

	var envelope eventsEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		c.logger.WarnContext(ctx, "decode fixtures payload failed", "day", day, "body", abbreviateBody(raw), "error", err)
		return eventsEnvelope{}, &FetchError{Day: day, Err: crerr.Wrap(err, "decode feed payload")}
	}
	return envelope, nil
}

func (c *Client) doRequest(ctx context.Context, day string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &FetchError{Day: day, Err: crerr.Wrap(err, "wait for rate limiter")}
	}

	fullURL := c.requestURL(day)
	raw, err, shared := c.flight.DoContext(ctx, fullURL, func(sharedCtx context.Context) ([]byte, error) {
		sharedCtx, cancel := context.WithTimeout(sharedCtx, c.timeout)
		defer cancel()

		var body []byte
		err := c.breaker.Do(sharedCtx, func(ctx context.Context) error {
			var reqErr error
			body, reqErr = c.executeRequest(ctx, day, fullURL)
			return reqErr
		})
		if crerr.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(sharedCtx, "circuit breaker rejected request", "state", string(c.breaker.State()))
			return nil, &FetchError{Day: day, Err: err}
		}
		return body, err
	})
	if shared {
		c.logger.DebugContext(ctx, "joined in-flight fixtures request", "url", fullURL)
	}
	if err != nil {
		var fetchErr *FetchError
		if !crerr.As(err, &fetchErr) {
			return nil, &FetchError{Day: day, Err: crerr.Wrap(err, "wait for fixtures request")}
		}
		return nil, err
	}
	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, day, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, &FetchError{Day: day, Err: crerr.Wrap(err, "build request")}
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "fixtures request failed", "url", fullURL, "error", err)
		return nil, &FetchError{Day: day, Err: crerr.Wrap(err, "send request")}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, c.maxResponseBytes))
	if err != nil {
		return nil, &FetchError{Day: day, Err: crerr.Wrap(err, "read response body")}
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.WarnContext(ctx, "fixtures request returned non-2xx",
			"url", fullURL,
			"status", resp.StatusCode,
			"body", abbreviateBody(raw),
		)
		return nil, &FetchError{Day: day, StatusCode: resp.StatusCode}
	}

	c.logger.DebugContext(ctx, "fixtures request completed",
		"url", fullURL,
		"bytes", len(raw),
		"duration", time.Since(start),
	)
	return raw, nil
}

func (c *Client) requestURL(day string) string {
	if day == "" {
		return c.baseURL
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(c.baseURL)
	if strings.Contains(c.baseURL, "?") {
		_ = buf.WriteByte('&')
	} else {
		_ = buf.WriteByte('?')
	}
	_, _ = buf.WriteString(dayParam)
	_ = buf.WriteByte('=')
	_, _ = buf.WriteString(url.QueryEscape(day))
	return buf.String()
}

func abbreviateBody(raw []byte) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	trimmed := strings.TrimSpace(string(raw))
	if len(trimmed) > bodyPreviewLimit {
		_, _ = buf.WriteString(trimmed[:bodyPreviewLimit])
		_, _ = buf.WriteString("...")
	} else {
		_, _ = buf.WriteString(trimmed)
	}
	return buf.String()
}

func minInt(left, right int) int {
	if left < right {
		return left
	}
	return right
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}
