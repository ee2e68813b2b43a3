package observability

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/sports-fixtures/internal/config"
	"github.com/riskibarqy/sports-fixtures/internal/platform/logging"
)

type capturedBatches struct {
	mu      sync.Mutex
	bodies  [][]map[string]any
	lastKey string
}

func (c *capturedBatches) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var entries []map[string]any
		if err := sonic.Unmarshal(raw, &entries); err != nil {
			t.Errorf("expected JSON array body, got %s", raw)
		}

		c.mu.Lock()
		c.bodies = append(c.bodies, entries)
		c.lastKey = r.Header.Get("Authorization")
		c.mu.Unlock()
		w.WriteHeader(http.StatusAccepted)
	}
}

func (c *capturedBatches) entries() []map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []map[string]any
	for _, body := range c.bodies {
		out = append(out, body...)
	}
	return out
}

func betterStackConfig(endpoint string) config.Config {
	return config.Config{
		LogLevel:            logging.LevelError,
		BetterStackEnabled:  true,
		BetterStackEndpoint: endpoint,
		BetterStackToken:    "secret-token",
		BetterStackTimeout:  2 * time.Second,
		BetterStackMinLevel: logging.LevelWarn,
		ServiceName:         "sports-fixtures-api",
		AppEnv:              config.EnvDev,
	}
}

func TestInitBetterStackLogger_ShipsBatchedEntries(t *testing.T) {
	t.Parallel()

	captured := &capturedBatches{}
	server := httptest.NewServer(captured.handler(t))
	defer server.Close()

	logger, shutdown, err := InitBetterStackLogger(betterStackConfig(server.URL), logging.NewNop())
	if err != nil {
		t.Fatalf("init betterstack logger: %v", err)
	}

	logger.WarnContext(context.Background(), "feed degraded", "component", "fixturefeed")
	logger.ErrorContext(context.Background(), "feed down", "component", "fixturefeed")
	logger.InfoContext(context.Background(), "info log should not be shipped")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		t.Fatalf("shutdown logger: %v", err)
	}

	entries := captured.entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 shipped entries, got %d", len(entries))
	}
	for _, entry := range entries {
		if msg, _ := entry["msg"].(string); strings.HasPrefix(msg, "info") {
			t.Fatalf("info entry must not be shipped")
		}
	}
	captured.mu.Lock()
	lastKey := captured.lastKey
	captured.mu.Unlock()
	if lastKey != "Bearer secret-token" {
		t.Fatalf("unexpected authorization header: %q", lastKey)
	}
}

func TestInitBetterStackLogger_Disabled(t *testing.T) {
	t.Parallel()

	base := logging.NewNop()
	logger, shutdown, err := InitBetterStackLogger(config.Config{}, base)
	if err != nil {
		t.Fatalf("init betterstack logger: %v", err)
	}
	if logger != base {
		t.Fatalf("expected base logger when disabled")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestNormalizeBetterStackEndpoint(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"":                           "",
		"in.logs.betterstack.com":    "https://in.logs.betterstack.com",
		" http://localhost:9000 ":    "http://localhost:9000",
		"https://in.logs.example.io": "https://in.logs.example.io",
	}
	for in, want := range cases {
		if got := normalizeBetterStackEndpoint(in); got != want {
			t.Fatalf("normalizeBetterStackEndpoint(%q)=%q want=%q", in, got, want)
		}
	}
}
