package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/pickem-league/internal/config"
	"github.com/riskibarqy/pickem-league/internal/domain/pick"
	"github.com/riskibarqy/pickem-league/internal/infrastructure/account/baas"
	"github.com/riskibarqy/pickem-league/internal/infrastructure/scheduler"
	"github.com/riskibarqy/pickem-league/internal/interfaces/httpapi"
	"github.com/riskibarqy/pickem-league/internal/platform/cache"
	idgen "github.com/riskibarqy/pickem-league/internal/platform/id"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	"github.com/riskibarqy/pickem-league/internal/usecase"
)

const (
	JobLockWeeks     = "lock-weeks"
	JobSendReminders = "send-reminders"
)

// Services is the usecase layer built over the configured storage, shared by
// the API server and the admin CLI.
type Services struct {
	Games       *usecase.GameService
	Picks       *usecase.PickService
	Weeks       *usecase.WeekService
	Leaderboard *usecase.LeaderboardService
	Users       *usecase.UserService
	Blog        *usecase.BlogService
	Email       *usecase.EmailService
	Reminders   *usecase.ReminderService

	repos *repositories
}

func (s *Services) Close() {
	if s != nil && s.repos != nil {
		s.repos.close()
	}
}

// newCacheStore returns nil when caching is disabled. A zero ttl uses
// CACHE_TTL.
func newCacheStore(cfg config.Config, prefix string, ttl time.Duration) (*cache.Store, error) {
	if !cfg.CacheEnabled {
		return nil, nil
	}
	duration := cfg.CacheTTL
	if ttl > 0 {
		duration = ttl
	}
	store, err := cache.New(cache.Options{
		Driver:    cfg.CacheDriver,
		TTL:       duration,
		RedisAddr: cfg.CacheRedisAddr,
		Prefix:    cfg.ServiceName + ":" + prefix,
	})
	if err != nil {
		return nil, fmt.Errorf("build %s cache: %w", prefix, err)
	}
	return store, nil
}

func NewServices(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Services, error) {
	if logger == nil {
		logger = logging.Default()
	}

	store, err := newCacheStore(cfg, "data:", 0)
	if err != nil {
		return nil, err
	}
	repos, err := buildRepositories(ctx, cfg, store, logger)
	if err != nil {
		return nil, err
	}

	ids := idgen.NewUUIDGenerator()
	sender, err := buildEmailSender(ctx, cfg, ids, logger)
	if err != nil {
		repos.close()
		return nil, err
	}

	limits := pick.Limits{MaxPicksPerWeek: cfg.MaxPicksPerWeek, MaxLocksPerWeek: cfg.MaxLocksPerWeek}
	scoring := pick.ScoringRules{
		Win:      cfg.ScoringWinPoints,
		LockWin:  cfg.ScoringLockWin,
		Push:     cfg.ScoringPushPoints,
		Loss:     cfg.ScoringLossPoints,
		LockLoss: cfg.ScoringLockLoss,
	}

	leaderboardSvc := usecase.NewLeaderboardService(repos.picks, repos.users, store, logger)
	emailSvc := usecase.NewEmailService(sender, cfg.EmailFrom, logger)
	return &Services{
		Games:       usecase.NewGameService(repos.games, repos.picks, scoring, ids, leaderboardSvc, logger, cfg.RegradeWorkerCount),
		Picks:       usecase.NewPickService(repos.games, repos.settings, repos.picks, limits, ids, leaderboardSvc, logger),
		Weeks:       usecase.NewWeekService(repos.settings, logger),
		Leaderboard: leaderboardSvc,
		Users:       usecase.NewUserService(repos.users, logger),
		Blog:        usecase.NewBlogService(repos.posts, ids, logger),
		Email:       emailSvc,
		Reminders: usecase.NewReminderService(repos.settings, repos.users, repos.picks, emailSvc, usecase.ReminderConfig{
			Lead:      cfg.ReminderLead,
			PublicURL: cfg.PublicURL,
			Workers:   cfg.ReminderWorkerCount,
			MaxPicks:  cfg.MaxPicksPerWeek,
		}, logger),
		repos: repos,
	}, nil
}

func NewHTTPServer(cfg config.Config, services *Services, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	principalCache, err := newCacheStore(cfg, "auth:", cfg.BaaSAuthCacheTTL)
	if err != nil {
		return nil, err
	}
	verifier := baas.NewClient(baas.Config{
		BaseURL:        cfg.BaaSURL,
		AnonKey:        cfg.BaaSAnonKey,
		Timeout:        cfg.BaaSTimeout,
		CircuitBreaker: baasCircuitConfig(cfg),
		PrincipalCache: principalCache,
		Logger:         logger.Named("baas-auth"),
	})

	handler := httpapi.NewHandler(
		services.Games,
		services.Picks,
		services.Weeks,
		services.Leaderboard,
		services.Users,
		services.Blog,
		services.Email,
		services.Reminders,
		logger,
	)
	router := httpapi.NewRouter(handler, verifier, services.Users, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}

// NewScheduler registers the periodic week lock and reminder jobs. It
// returns nil when the scheduler is disabled.
func NewScheduler(cfg config.Config, services *Services, logger *logging.Logger) (*scheduler.Scheduler, error) {
	if !cfg.SchedulerEnabled {
		return nil, nil
	}

	s, err := scheduler.New(logger)
	if err != nil {
		return nil, err
	}
	jobs := []scheduler.Job{
		{
			Name:     JobLockWeeks,
			Interval: cfg.JobLockWeeksInterval,
			Timeout:  cfg.JobLockWeeksInterval,
			Run: func(ctx context.Context) error {
				_, err := services.Weeks.LockExpired(ctx)
				return err
			},
		},
		{
			Name:     JobSendReminders,
			Interval: cfg.JobReminderInterval,
			Timeout:  cfg.JobReminderInterval,
			Run: func(ctx context.Context) error {
				_, err := services.Reminders.SendDeadlineReminders(ctx)
				return err
			},
		},
	}
	for _, job := range jobs {
		if err := s.Add(job); err != nil {
			_ = s.Stop()
			return nil, err
		}
	}
	return s, nil
}
