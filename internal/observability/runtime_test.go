package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/riskibarqy/pickem-league/internal/config"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
)

func TestStart_AllDisabled(t *testing.T) {
	rt, err := Start(config.Config{ServiceName: "pickem-league-api", AppEnv: config.EnvDev}, logging.NewNop())
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if rt.pprof != nil || rt.profiler != nil || rt.shutdownTracing != nil {
		t.Fatalf("expected nothing to start, got %+v", rt)
	}
	if err := rt.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestStart_TracingEnabledWithoutDSNIsNoop(t *testing.T) {
	rt, err := Start(config.Config{UptraceEnabled: true, ServiceName: "pickem-league-api"}, logging.NewNop())
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if rt.shutdownTracing != nil {
		t.Fatalf("expected tracing to stay disabled without a DSN")
	}
}

func TestRuntime_NilShutdown(t *testing.T) {
	var rt *Runtime
	if err := rt.Shutdown(context.Background()); err != nil {
		t.Fatalf("nil runtime shutdown: %v", err)
	}
}

func TestPprofMux_ServesIndex(t *testing.T) {
	rec := httptest.NewRecorder()
	pprofMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected pprof index, got status %d", rec.Code)
	}
}
