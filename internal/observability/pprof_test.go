package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/riskibarqy/sports-fixtures/internal/config"
	"github.com/riskibarqy/sports-fixtures/internal/platform/logging"
)

func TestStartPprofServer_Disabled(t *testing.T) {
	if srv := StartPprofServer(config.Config{PprofEnabled: false}, logging.NewNop()); srv != nil {
		t.Fatalf("expected no server when disabled")
	}
	if err := StopPprofServer(nil, nil, time.Second); err != nil {
		t.Fatalf("stopping a nil server must be a no-op: %v", err)
	}
}

func TestPprofMux_ServesIndex(t *testing.T) {
	rec := httptest.NewRecorder()
	pprofMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}
