package observability

import (
	"context"
	"strings"

	"github.com/riskibarqy/pickem-league/internal/config"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
	"go.opentelemetry.io/otel/attribute"
)

// startTracing installs the global OpenTelemetry providers. Without a DSN the
// otel globals stay no-op and every span helper degrades to a no-op span.
func startTracing(cfg config.Config, logger *logging.Logger) func(context.Context) error {
	if !cfg.UptraceEnabled || strings.TrimSpace(cfg.UptraceDSN) == "" {
		logger.Info("tracing disabled", "uptrace_enabled", cfg.UptraceEnabled)
		return nil
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithResourceAttributes(
			attribute.String("pickem.storage_driver", cfg.StorageDriver),
			attribute.String("pickem.email_provider", cfg.EmailProvider),
		),
	)
	logger.Info("tracing enabled", "exporter", "uptrace", "service_version", cfg.ServiceVersion)
	return uptrace.Shutdown
}
