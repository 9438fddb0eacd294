package observability

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/grafana/pyroscope-go"
	"github.com/riskibarqy/pickem-league/internal/config"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
)

// Runtime owns the process-wide telemetry: tracing export, continuous
// profiling and the pprof listener. Each piece is optional.
type Runtime struct {
	logger          *logging.Logger
	shutdownTracing func(context.Context) error
	profiler        *pyroscope.Profiler
	pprof           *http.Server
}

func Start(cfg config.Config, logger *logging.Logger) (*Runtime, error) {
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("observability")

	rt := &Runtime{logger: logger}
	rt.shutdownTracing = startTracing(cfg, logger)

	profiler, err := startPyroscope(cfg, logger)
	if err != nil {
		_ = rt.Shutdown(context.Background())
		return nil, fmt.Errorf("start pyroscope: %w", err)
	}
	rt.profiler = profiler
	rt.pprof = startPprof(cfg, logger)
	return rt, nil
}

// Shutdown stops the pprof listener first and flushes traces last so spans
// recorded during shutdown still ship.
func (r *Runtime) Shutdown(ctx context.Context) error {
	if r == nil {
		return nil
	}
	var errs []error
	if r.pprof != nil {
		if err := r.pprof.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("pprof: %w", err))
		}
	}
	if r.profiler != nil {
		if err := r.profiler.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("pyroscope: %w", err))
		}
	}
	if r.shutdownTracing != nil {
		if err := r.shutdownTracing(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracing: %w", err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	r.logger.Info("observability stopped")
	return nil
}
