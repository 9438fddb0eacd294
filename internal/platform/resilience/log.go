package resilience

import "github.com/riskibarqy/pickem-league/internal/platform/logging"

// LogTransitions reports breaker transitions; opening is a warning, the rest
// are informational.
func LogTransitions(logger *logging.Logger) StateListener {
	if logger == nil {
		logger = logging.Default()
	}
	return func(name string, from, to CircuitState) {
		if to == CircuitStateOpen {
			logger.Warn("circuit breaker opened", "breaker", name, "from", string(from))
			return
		}
		logger.Info("circuit breaker state changed", "breaker", name, "from", string(from), "to", string(to))
	}
}
