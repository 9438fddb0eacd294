package app

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/pickem-league/internal/config"
	"github.com/riskibarqy/pickem-league/internal/domain/blog"
	"github.com/riskibarqy/pickem-league/internal/domain/game"
	"github.com/riskibarqy/pickem-league/internal/domain/pick"
	"github.com/riskibarqy/pickem-league/internal/domain/user"
	"github.com/riskibarqy/pickem-league/internal/domain/weeksettings"
	cacherepo "github.com/riskibarqy/pickem-league/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/pickem-league/internal/infrastructure/repository/fallback"
	"github.com/riskibarqy/pickem-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/pickem-league/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/pickem-league/internal/infrastructure/repository/rest"
	"github.com/riskibarqy/pickem-league/internal/platform/cache"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	"github.com/riskibarqy/pickem-league/internal/platform/resilience"
)

type repositories struct {
	games    game.Repository
	settings weeksettings.Repository
	picks    pick.Repository
	users    user.Repository
	posts    blog.Repository
	closers  []func() error
}

func (r *repositories) close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		_ = r.closers[i]()
	}
}

func baasCircuitConfig(cfg config.Config) resilience.CircuitBreakerConfig {
	return resilience.CircuitBreakerConfig{
		Enabled:          cfg.BaaSCircuitEnabled,
		FailureThreshold: cfg.BaaSCircuitFailureCount,
		OpenTimeout:      cfg.BaaSCircuitOpenTimeout,
		HalfOpenMaxReq:   cfg.BaaSCircuitHalfOpenMaxReq,
	}
}

func newRESTClient(cfg config.Config, logger *logging.Logger) *rest.Client {
	return rest.NewClient(rest.ClientConfig{
		BaseURL:        cfg.BaaSURL,
		APIKey:         cfg.BaaSAnonKey,
		ServiceKey:     cfg.BaaSServiceKey,
		Timeout:        cfg.BaaSTimeout,
		Logger:         logger.Named("baas-rest"),
		CircuitBreaker: baasCircuitConfig(cfg),
	})
}

// buildRepositories selects the storage driver, then layers the REST read
// fallback and the read-through cache over game and week-settings reads.
func buildRepositories(ctx context.Context, cfg config.Config, store *cache.Store, logger *logging.Logger) (*repositories, error) {
	repos := &repositories{}

	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		now := time.Now()
		repos.games = memory.NewGameRepository(memory.SeedGames(now))
		repos.settings = memory.NewWeekSettingsRepository()
		repos.picks = memory.NewPickRepository()
		repos.users = memory.NewUserRepository(memory.SeedUsers(now))
		repos.posts = memory.NewBlogRepository()
	case config.StorageDriverREST:
		client := newRESTClient(cfg, logger)
		repos.games = rest.NewGameRepository(client)
		repos.settings = rest.NewWeekSettingsRepository(client)
		repos.picks = rest.NewPickRepository(client)
		repos.users = rest.NewUserRepository(client)
		repos.posts = rest.NewBlogRepository(client)
	case config.StorageDriverPostgres:
		db, err := OpenDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		repos.closers = append(repos.closers, db.Close)
		repos.games = postgres.NewGameRepository(db)
		repos.settings = postgres.NewWeekSettingsRepository(db)
		repos.picks = postgres.NewPickRepository(db)
		repos.users = postgres.NewUserRepository(db)
		repos.posts = postgres.NewBlogRepository(db)

		if cfg.FallbackEnabled {
			client := newRESTClient(cfg, logger)
			fallbackCfg := fallback.Config{
				Timeout: cfg.FallbackTimeout,
				Breaker: resilience.NewCircuitBreakerFromConfig(baasCircuitConfig(cfg),
					resilience.WithName("storage-fallback"),
					resilience.WithStateListener(resilience.LogTransitions(logger)),
				),
				Logger: logger.Named("storage-fallback"),
			}
			repos.games = fallback.NewGameRepository(repos.games, rest.NewGameRepository(client), fallbackCfg)
			repos.settings = fallback.NewWeekSettingsRepository(repos.settings, rest.NewWeekSettingsRepository(client), fallbackCfg)
			logger.Info("storage fallback enabled", "timeout", cfg.FallbackTimeout.String())
		}
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}

	if store != nil {
		repos.games = cacherepo.NewGameRepository(repos.games, store, logger)
		repos.settings = cacherepo.NewWeekSettingsRepository(repos.settings, store, logger)
	}
	logger.Info("storage ready", "driver", cfg.StorageDriver, "cache", store != nil)
	return repos, nil
}
